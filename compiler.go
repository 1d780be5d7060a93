package forth

import (
	"errors"
	"strconv"
	"strings"
)

type controlKind uint8

const (
	ctlColon controlKind = iota
	ctlIf
	ctlElse
	ctlBegin
	ctlWhile
	ctlDo
)

var controlNames = [...]string{"COLON", "IF", "ELSE", "BEGIN", "WHILE", "DO"}

func (kind controlKind) String() string {
	if int(kind) < len(controlNames) {
		return controlNames[kind]
	}
	return "control(" + strconv.Itoa(int(kind)) + ")"
}

// control is an open control structure: a forward jump operand awaiting its
// target (IF ELSE WHILE), or a backward jump target (BEGIN DO). COLON,
// BEGIN, and DO entries also collect the operands of any EXITs within them.
type control struct {
	kind  controlKind
	slot  int
	skip  int
	name  string
	exits []int
}

type compiler struct {
	compiling   bool
	control     []control
	current     []Atom
	latest      *XT
	forwardRefs bool
}

func (vm *VM) resetCompiler() {
	vm.compiling = false
	vm.control = vm.control[:0]
	vm.current = nil
	vm.frames = vm.frames[:0]
}

// interpret handles one token: immediate words run now, other words compile
// while compiling and run otherwise, anything else must be a number.
func (vm *VM) interpret(token string) {
	if xt := vm.lookup(token); xt != nil {
		switch {
		case xt.Immediate:
			vm.logf(">", "immediate %v", token)
			vm.call(xt)
		case vm.compiling:
			vm.logf("+", "compile %v", token)
			vm.compile(compiledForm(xt))
		default:
			vm.logf(">", "exec %v", token)
			vm.call(xt)
		}
		return
	}

	if val, ok := vm.literal(token); ok {
		if vm.compiling {
			vm.logf("+", "compile literal %v", val)
			vm.compile(nativeAtom(xtPush), literalAtom(val))
		} else {
			vm.logf(">", "push %v", val)
			vm.push(val)
		}
		return
	}

	if vm.compiling && vm.forwardRefs {
		vm.logf("+", "compile forward reference %v", token)
		vm.compile(callAtom(token))
		return
	}
	vm.halt(compileErrorf("unknown word %q", token))
}

// literal parses an integer in the current base, or a fixed point decimal
// if token contains a point. Numbers that do not fit in a cell halt.
func (vm *VM) literal(token string) (int, bool) {
	if strings.Contains(token, ".") {
		val, err := parseFixed(token, vm.precision())
		if errors.Is(err, errFixedRange) {
			vm.halt(compileErrorf("malformed literal %q: %v", token, err))
		}
		return val, err == nil
	}
	n, err := strconv.ParseInt(token, vm.numBase(), strconv.IntSize)
	if err == nil {
		return int(n), true
	}
	if errors.Is(err, strconv.ErrRange) {
		vm.halt(compileErrorf("malformed literal %q: out of range", token))
	}
	return 0, false
}

func (vm *VM) compile(atoms ...Atom) {
	vm.current = append(vm.current, atoms...)
}

// compileJump appends a jump primitive and its operand, returning the
// operand's offset for later backpatching.
func (vm *VM) compileJump(xt *XT, addr int) int {
	vm.compile(nativeAtom(xt), literalAtom(addr))
	return len(vm.current) - 1
}

// patch points the jump operand at slot to the end of the current
// definition.
func (vm *VM) patch(slots ...int) {
	for _, slot := range slots {
		vm.current[slot].Value = len(vm.current)
	}
}

func (vm *VM) requireCompiling(word string) {
	if !vm.compiling {
		vm.halt(compileErrorf("%v is compile only", word))
	}
}

func (vm *VM) pushControl(ctl control) {
	vm.control = append(vm.control, ctl)
}

// popControl pops the innermost open control structure, which must be one
// of the given kinds.
func (vm *VM) popControl(closer string, kinds ...controlKind) control {
	i := len(vm.control) - 1
	if i < 0 {
		vm.halt(compileErrorf("unbalanced %v: expected %v, found nothing open", closer, kindList(kinds)))
	}
	ctl := vm.control[i]
	for _, kind := range kinds {
		if ctl.kind == kind {
			vm.control = vm.control[:i]
			return ctl
		}
	}
	vm.halt(compileErrorf("unbalanced %v: expected %v, found %v", closer, kindList(kinds), ctl.kind))
	return control{}
}

func kindList(kinds []controlKind) string {
	parts := make([]string, len(kinds))
	for i, kind := range kinds {
		parts[i] = kind.String()
	}
	return strings.Join(parts, " or ")
}

// exitTarget returns the innermost open structure that can collect EXIT
// jumps, passing over any IF ELSE or WHILE.
func (vm *VM) exitTarget() *control {
	for i := len(vm.control) - 1; i >= 0; i-- {
		switch vm.control[i].kind {
		case ctlColon, ctlBegin, ctlDo:
			return &vm.control[i]
		}
	}
	return nil
}

// forwardExits hands pending EXIT operands from a just closed structure to
// the next enclosing one.
func (vm *VM) forwardExits(exits []int) {
	if len(exits) == 0 {
		return
	}
	ctl := vm.exitTarget()
	if ctl == nil {
		vm.halt(compileErrorf("exit outside of definition"))
	}
	ctl.exits = append(ctl.exits, exits...)
}

func (vm *VM) definingName() string {
	for i := len(vm.control) - 1; i >= 0; i-- {
		if vm.control[i].kind == ctlColon {
			return vm.control[i].name
		}
	}
	vm.halt(compileErrorf("recurse outside of definition"))
	return ""
}
