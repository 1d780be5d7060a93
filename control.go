package forth

// Control words run at compile time, building jumps into the current
// definition and tracking what they leave open on the control stack.

func (vm *VM) colon() {
	if len(vm.control) > 0 {
		vm.halt(compileErrorf(": inside open %v", vm.control[len(vm.control)-1].kind))
	}
	name := vm.nextWord()
	vm.logf("+", "define %v", name)
	vm.compiling = true
	vm.current = nil
	vm.pushControl(control{kind: ctlColon, name: name})
}

func (vm *VM) semicolon() {
	ctl := vm.popControl(";", ctlColon)
	vm.patch(ctl.exits...)
	code := make([]Atom, len(vm.current))
	copy(code, vm.current)
	vm.latest = vm.define(ctl.name, &XT{Code: code})
	vm.logf("+", "defined %v %v", ctl.name, len(code))
	vm.compiling = false
	vm.current = nil
}

func (vm *VM) ifWord() {
	vm.requireCompiling("if")
	slot := vm.compileJump(xtJZ, 0)
	vm.pushControl(control{kind: ctlIf, slot: slot})
}

func (vm *VM) elseWord() {
	vm.requireCompiling("else")
	ctl := vm.popControl("else", ctlIf)
	slot := vm.compileJump(xtJMP, 0)
	vm.patch(ctl.slot)
	vm.pushControl(control{kind: ctlElse, slot: slot})
}

func (vm *VM) then() {
	vm.requireCompiling("then")
	ctl := vm.popControl("then", ctlIf, ctlElse)
	vm.patch(ctl.slot)
}

func (vm *VM) begin() {
	vm.requireCompiling("begin")
	vm.pushControl(control{kind: ctlBegin, slot: len(vm.current)})
}

func (vm *VM) until() {
	vm.requireCompiling("until")
	ctl := vm.popControl("until", ctlBegin)
	vm.compileJump(xtJZ, ctl.slot)
	vm.forwardExits(ctl.exits)
}

func (vm *VM) again() {
	vm.requireCompiling("again")
	ctl := vm.popControl("again", ctlBegin)
	vm.compileJump(xtJMP, ctl.slot)
	vm.forwardExits(ctl.exits)
}

func (vm *VM) while() {
	vm.requireCompiling("while")
	vm.pushControl(vm.popControl("while", ctlBegin))
	slot := vm.compileJump(xtJZ, 0)
	vm.pushControl(control{kind: ctlWhile, slot: slot})
}

func (vm *VM) repeat() {
	vm.requireCompiling("repeat")
	w := vm.popControl("repeat", ctlWhile)
	b := vm.popControl("repeat", ctlBegin)
	vm.compileJump(xtJMP, b.slot)
	vm.patch(w.slot)
	vm.forwardExits(b.exits)
}

// do moves the limit and starting index onto the return stack, skipping
// the loop entirely when they are already equal.
func (vm *VM) do() {
	vm.requireCompiling("do")
	vm.compile(nativeAtom(xtOver), nativeAtom(xtOver), nativeAtom(xtEq))
	skip := vm.compileJump(xtJNZ, 0)
	vm.compile(nativeAtom(xtSwap), nativeAtom(xtToR), nativeAtom(xtToR))
	vm.pushControl(control{kind: ctlDo, slot: len(vm.current), skip: skip})
}

// loop increments the index, loops back until it reaches the limit, then
// drops both from the return stack. Any EXITs within the loop are routed
// through a stub that drops the loop parameters on their way out.
func (vm *VM) loop() {
	vm.requireCompiling("loop")
	ctl := vm.popControl("loop", ctlDo)
	vm.compile(
		nativeAtom(xtFromR),
		nativeAtom(xtPush), literalAtom(1),
		nativeAtom(xtAdd),
		nativeAtom(xtFetchR),
		nativeAtom(xtSwap),
		nativeAtom(xtDup),
		nativeAtom(xtToR),
		nativeAtom(xtEq),
	)
	vm.compileJump(xtJZ, ctl.slot)
	vm.compileUnloop()

	done := vm.compileJump(xtJMP, 0)
	vm.patch(ctl.skip)
	vm.compile(nativeAtom(xtDrop), nativeAtom(xtDrop))
	vm.patch(done)

	if len(ctl.exits) > 0 {
		over := vm.compileJump(xtJMP, 0)
		vm.patch(ctl.exits...)
		vm.compileUnloop()
		out := vm.compileJump(xtJMP, 0)
		vm.patch(over)
		vm.forwardExits([]int{out})
	}
}

func (vm *VM) compileUnloop() {
	vm.compile(
		nativeAtom(xtFromR),
		nativeAtom(xtFromR),
		nativeAtom(xtDrop),
		nativeAtom(xtDrop),
	)
}

// exit jumps to the end of the definition, once that is known.
func (vm *VM) exit() {
	vm.requireCompiling("exit")
	slot := vm.compileJump(xtJMP, 0)
	ctl := vm.exitTarget()
	if ctl == nil {
		vm.halt(compileErrorf("exit outside of definition"))
	}
	ctl.exits = append(ctl.exits, slot)
}

func (vm *VM) recurse() {
	vm.requireCompiling("recurse")
	vm.compile(callAtom(vm.definingName()))
}

// postpone compiles the compilation behavior of the next word: immediate
// words are compiled as is, others as code that compiles them.
func (vm *VM) postpone() {
	vm.requireCompiling("postpone")
	name := vm.nextWord()
	xt := vm.lookup(name)
	if xt == nil {
		vm.halt(compileErrorf("unknown word %q", name))
	}
	if xt.Immediate {
		vm.compile(compiledForm(xt))
	} else {
		vm.compile(nativeAtom(xtPush), literalAtom(xt.id), nativeAtom(xtCompileComma))
	}
}

func (vm *VM) immediate() {
	if vm.latest == nil {
		vm.halt(compileErrorf("no definition to make immediate"))
	}
	vm.latest.Immediate = true
}

func (vm *VM) literalWord() {
	vm.requireCompiling("literal")
	vm.compile(nativeAtom(xtPush), literalAtom(vm.pop()))
}

func (vm *VM) leftBracket()  { vm.compiling = false }
func (vm *VM) rightBracket() { vm.compiling = true }
