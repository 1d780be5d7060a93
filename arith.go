package forth

// Truth is all bits set; any nonzero cell counts as true.
const (
	flagTrue  = -1
	flagFalse = 0
)

func flag(b bool) int {
	if b {
		return flagTrue
	}
	return flagFalse
}

func (vm *VM) add() { a, b := vm.pop2(); vm.push(a + b) }
func (vm *VM) sub() { a, b := vm.pop2(); vm.push(a - b) }
func (vm *VM) mul() { a, b := vm.pop2(); vm.push(a * b) }

func (vm *VM) div() {
	a, b := vm.pop2()
	if b == 0 {
		vm.halt(runtimeErrorf("division by zero"))
	}
	vm.push(a / b)
}

func (vm *VM) mod() {
	a, b := vm.pop2()
	if b == 0 {
		vm.halt(runtimeErrorf("division by zero"))
	}
	vm.push(a % b)
}

func (vm *VM) incr()   { vm.push(vm.pop() + 1) }
func (vm *VM) decr()   { vm.push(vm.pop() - 1) }
func (vm *VM) negate() { vm.push(-vm.pop()) }

func (vm *VM) abs() {
	if a := vm.pop(); a < 0 {
		vm.push(-a)
	} else {
		vm.push(a)
	}
}

func (vm *VM) min() {
	if a, b := vm.pop2(); b < a {
		vm.push(b)
	} else {
		vm.push(a)
	}
}

func (vm *VM) max() {
	if a, b := vm.pop2(); b > a {
		vm.push(b)
	} else {
		vm.push(a)
	}
}

func (vm *VM) eq() { a, b := vm.pop2(); vm.push(flag(a == b)) }
func (vm *VM) ne() { a, b := vm.pop2(); vm.push(flag(a != b)) }
func (vm *VM) lt() { a, b := vm.pop2(); vm.push(flag(a < b)) }
func (vm *VM) gt() { a, b := vm.pop2(); vm.push(flag(a > b)) }

func (vm *VM) zeq() { vm.push(flag(vm.pop() == 0)) }
func (vm *VM) zlt() { vm.push(flag(vm.pop() < 0)) }
func (vm *VM) zgt() { vm.push(flag(vm.pop() > 0)) }

func (vm *VM) and()    { a, b := vm.pop2(); vm.push(a & b) }
func (vm *VM) or()     { a, b := vm.pop2(); vm.push(a | b) }
func (vm *VM) xor()    { a, b := vm.pop2(); vm.push(a ^ b) }
func (vm *VM) invert() { vm.push(^vm.pop()) }
