package forth

// frame is one in-progress call: the code being run and the index of the
// next atom to dispatch.
type frame struct {
	code []Atom
	ip   int
}

// execute runs code in a new frame until its instruction pointer runs off
// the end. Calls between defined words nest through here, so call depth is
// bounded only by the Go stack.
func (vm *VM) execute(code []Atom) {
	vm.frames = append(vm.frames, frame{code: code})
	fi := len(vm.frames) - 1
	if vm.logfn != nil {
		defer vm.withLogPrefix("	")()
	}
	for {
		// nested calls may grow (and so move) the frames slice
		f := &vm.frames[fi]
		if f.ip >= len(f.code) {
			break
		}
		at := f.ip
		atom := f.code[at]
		f.ip++
		vm.step(at, atom)
		vm.checkContext()
	}
	vm.frames = vm.frames[:fi]
}

// checkContext halts once the run's context is done; long running natives
// call it between units of work.
func (vm *VM) checkContext() {
	if vm.ctx != nil {
		vm.haltif(vm.ctx.Err())
	}
}

func (vm *VM) step(at int, atom Atom) {
	switch atom.Kind {
	case AtomNative:
		if vm.logfn != nil {
			vm.logf("@", "exec @%v %v -- r:%v s:%v", at, atom.XT.Name, vm.rstack, vm.stack)
		}
		atom.XT.Native(vm)
	case AtomCall:
		xt := vm.lookup(atom.Name)
		if xt == nil {
			vm.halt(compileErrorf("undefined word %q", atom.Name))
		}
		vm.logf("@", "exec @%v call %v", at, atom.Name)
		vm.call(xt)
	default:
		vm.halt(runtimeErrorf("malformed code: literal %v dispatched @%v", atom.Value, at))
	}
}

// call invokes xt: natives directly, defined words in a new frame.
func (vm *VM) call(xt *XT) {
	if xt.Defined() {
		vm.execute(xt.Code)
	} else {
		xt.Native(vm)
	}
}

func (vm *VM) topFrame() *frame {
	i := len(vm.frames) - 1
	if i < 0 {
		vm.halt(runtimeErrorf("no code running"))
	}
	return &vm.frames[i]
}

// operand consumes the literal atom following the running native.
func (vm *VM) operand() int {
	f := vm.topFrame()
	if f.ip >= len(f.code) {
		vm.halt(runtimeErrorf("malformed code: missing operand @%v", f.ip))
	}
	atom := f.code[f.ip]
	if atom.Kind != AtomLiteral {
		vm.halt(runtimeErrorf("malformed code: expected operand @%v", f.ip))
	}
	f.ip++
	return atom.Value
}

func (vm *VM) jump(addr int) {
	vm.topFrame().ip = addr
}

// Operand carrying primitives, compiled by the compiler but never bound in
// the dictionary.
var (
	xtPush *XT
	xtJZ   *XT
	xtJNZ  *XT
	xtJMP  *XT
	xtDotQ *XT
)

func init() {
	xtPush = &XT{Name: "lit", Native: func(vm *VM) { vm.push(vm.operand()) }}
	xtJZ = &XT{Name: "jz", Native: func(vm *VM) {
		addr := vm.operand()
		if vm.pop() == 0 {
			vm.jump(addr)
		}
	}}
	xtJNZ = &XT{Name: "jnz", Native: func(vm *VM) {
		addr := vm.operand()
		if vm.pop() != 0 {
			vm.jump(addr)
		}
	}}
	xtJMP = &XT{Name: "jmp", Native: func(vm *VM) { vm.jump(vm.operand()) }}
	xtDotQ = &XT{Name: `(.")`, Native: func(vm *VM) { vm.writeString(vm.stringAt(vm.operand())) }}
}
