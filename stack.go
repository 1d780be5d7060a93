package forth

func (vm *VM) push(vals ...int) { vm.stack = append(vm.stack, vals...) }

func (vm *VM) pop() (val int) {
	i := len(vm.stack) - 1
	if i < 0 {
		vm.halt(StackUnderflowError{"data"})
	}
	val, vm.stack = vm.stack[i], vm.stack[:i]
	return val
}

// pop2 pops b then a, returning them in stack order.
func (vm *VM) pop2() (a, b int) {
	b = vm.pop()
	a = vm.pop()
	return a, b
}

func (vm *VM) peek(depth int) int {
	i := len(vm.stack) - 1 - depth
	if i < 0 {
		vm.halt(StackUnderflowError{"data"})
	}
	return vm.stack[i]
}

func (vm *VM) pushr(val int) { vm.rstack = append(vm.rstack, val) }

func (vm *VM) popr() (val int) {
	i := len(vm.rstack) - 1
	if i < 0 {
		vm.halt(StackUnderflowError{"return"})
	}
	val, vm.rstack = vm.rstack[i], vm.rstack[:i]
	return val
}

func (vm *VM) peekr() int {
	i := len(vm.rstack) - 1
	if i < 0 {
		vm.halt(StackUnderflowError{"return"})
	}
	return vm.rstack[i]
}

func (vm *VM) dup()   { vm.push(vm.peek(0)) }
func (vm *VM) drop()  { vm.pop() }
func (vm *VM) over()  { vm.push(vm.peek(1)) }
func (vm *VM) depth() { vm.push(len(vm.stack)) }

func (vm *VM) swap() {
	a, b := vm.pop2()
	vm.push(b, a)
}

func (vm *VM) rot() {
	c := vm.pop()
	a, b := vm.pop2()
	vm.push(b, c, a)
}

func (vm *VM) nip() {
	b := vm.pop()
	vm.pop()
	vm.push(b)
}

func (vm *VM) tuck() {
	a, b := vm.pop2()
	vm.push(b, a, b)
}

func (vm *VM) qdup() {
	if a := vm.peek(0); a != 0 {
		vm.push(a)
	}
}

func (vm *VM) dup2() {
	a, b := vm.peek(1), vm.peek(0)
	vm.push(a, b)
}

func (vm *VM) drop2() {
	vm.pop()
	vm.pop()
}

func (vm *VM) swap2() {
	c, d := vm.pop2()
	a, b := vm.pop2()
	vm.push(c, d, a, b)
}

func (vm *VM) toR()    { vm.pushr(vm.pop()) }
func (vm *VM) fromR()  { vm.push(vm.popr()) }
func (vm *VM) fetchR() { vm.push(vm.peekr()) }

// loopIndex pushes the index of the do loop nested depth levels out, where
// 1 is the innermost. Intervening loop parameter pairs are moved onto the
// data stack and back again, since the return stack has no random access.
func (vm *VM) loopIndex(depth int) {
	for n := 1; n < depth; n++ {
		vm.fromR()
		vm.fromR()
	}
	vm.fetchR()
	for n := 1; n < depth; n++ {
		vm.rot()
		vm.rot()
		vm.toR()
		vm.toR()
	}
}
