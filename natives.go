package forth

type nativeWord struct {
	name      string
	fn        Native
	immediate bool
}

// nativeWords is the host primitive word set bound into every new VM.
var nativeWords []nativeWord

// Primitives compiled directly by control words, independent of whatever
// the dictionary currently binds to their names.
var (
	xtAdd          *XT
	xtSwap         *XT
	xtDup          *XT
	xtDrop         *XT
	xtOver         *XT
	xtEq           *XT
	xtToR          *XT
	xtFromR        *XT
	xtFetchR       *XT
	xtCompileComma *XT
)

func init() {
	nativeWords = []nativeWord{
		// arithmetic
		{"+", (*VM).add, false},
		{"-", (*VM).sub, false},
		{"*", (*VM).mul, false},
		{"/", (*VM).div, false},
		{"mod", (*VM).mod, false},
		{"1+", (*VM).incr, false},
		{"1-", (*VM).decr, false},
		{"negate", (*VM).negate, false},
		{"abs", (*VM).abs, false},
		{"min", (*VM).min, false},
		{"max", (*VM).max, false},

		// comparison and logic
		{"=", (*VM).eq, false},
		{"<>", (*VM).ne, false},
		{"<", (*VM).lt, false},
		{">", (*VM).gt, false},
		{"0=", (*VM).zeq, false},
		{"0<", (*VM).zlt, false},
		{"0>", (*VM).zgt, false},
		{"and", (*VM).and, false},
		{"or", (*VM).or, false},
		{"xor", (*VM).xor, false},
		{"invert", (*VM).invert, false},

		// stacks
		{"dup", (*VM).dup, false},
		{"drop", (*VM).drop, false},
		{"swap", (*VM).swap, false},
		{"over", (*VM).over, false},
		{"rot", (*VM).rot, false},
		{"nip", (*VM).nip, false},
		{"tuck", (*VM).tuck, false},
		{"depth", (*VM).depth, false},
		{"?dup", (*VM).qdup, false},
		{"2dup", (*VM).dup2, false},
		{"2drop", (*VM).drop2, false},
		{"2swap", (*VM).swap2, false},
		{">r", (*VM).toR, false},
		{"r>", (*VM).fromR, false},
		{"r@", (*VM).fetchR, false},
		{"i", func(vm *VM) { vm.loopIndex(1) }, false},
		{"j", func(vm *VM) { vm.loopIndex(2) }, false},
		{"k", func(vm *VM) { vm.loopIndex(3) }, false},

		// heap
		{"@", (*VM).fetch, false},
		{"!", (*VM).store, false},
		{"+!", (*VM).plusStore, false},
		{",", (*VM).comma, false},
		{"allot", (*VM).allotWord, false},
		{"here", (*VM).hereWord, false},
		{"create", (*VM).create, false},
		{"does>", (*VM).does, false},
		{"base", (*VM).baseWord, false},
		{"precision", (*VM).precisionWord, false},
		{"decimal", (*VM).decimal, false},
		{"hex", (*VM).hex, false},
		{"binary", (*VM).binary, false},

		// output
		{".", (*VM).dot, false},
		{".f", (*VM).dotFixed, false},
		{"emit", (*VM).emit, false},
		{"spaces", (*VM).spaces, false},
		{"type", (*VM).typeWord, false},
		{".s", (*VM).dotS, false},
		{"dump", (*VM).dump, false},
		{"words", (*VM).words, false},
		{"see", (*VM).see, false},
		{`."`, (*VM).dotQuote, true},
		{`s"`, (*VM).sQuote, true},

		// fixed point
		{"f*", (*VM).fmul, false},
		{"f/", (*VM).fdiv, false},
		{"fsqrt", (*VM).fsqrt, false},
		{"fln", (*VM).fln, false},
		{"fexp", (*VM).fexp, false},

		// compiler
		{":", (*VM).colon, true},
		{";", (*VM).semicolon, true},
		{"if", (*VM).ifWord, true},
		{"else", (*VM).elseWord, true},
		{"then", (*VM).then, true},
		{"begin", (*VM).begin, true},
		{"until", (*VM).until, true},
		{"again", (*VM).again, true},
		{"while", (*VM).while, true},
		{"repeat", (*VM).repeat, true},
		{"do", (*VM).do, true},
		{"loop", (*VM).loop, true},
		{"exit", (*VM).exit, true},
		{"recurse", (*VM).recurse, true},
		{"postpone", (*VM).postpone, true},
		{"[compile]", (*VM).postpone, true},
		{"immediate", (*VM).immediate, false},
		{"literal", (*VM).literalWord, true},
		{"[", (*VM).leftBracket, true},
		{"]", (*VM).rightBracket, false},
		{"(", (*VM).paren, true},
		{`\`, (*VM).backslash, true},

		// execution tokens
		{"'", (*VM).tick, false},
		{"[']", (*VM).bracketTick, true},
		{"execute", (*VM).executeWord, false},
		{"compile,", (*VM).compileComma, false},
		{"char", (*VM).char, false},
		{"[char]", (*VM).bracketChar, true},
	}

	xtAdd = &XT{Name: "+", Native: (*VM).add}
	xtSwap = &XT{Name: "swap", Native: (*VM).swap}
	xtDup = &XT{Name: "dup", Native: (*VM).dup}
	xtDrop = &XT{Name: "drop", Native: (*VM).drop}
	xtOver = &XT{Name: "over", Native: (*VM).over}
	xtEq = &XT{Name: "=", Native: (*VM).eq}
	xtToR = &XT{Name: ">r", Native: (*VM).toR}
	xtFromR = &XT{Name: "r>", Native: (*VM).fromR}
	xtFetchR = &XT{Name: "r@", Native: (*VM).fetchR}
	xtCompileComma = &XT{Name: "compile,", Native: (*VM).compileComma}
}

func (vm *VM) defineNatives() {
	for _, nw := range nativeWords {
		vm.define(nw.name, &XT{Native: nw.fn, Immediate: nw.immediate})
	}
}

// tick pushes the execution token of the next word.
func (vm *VM) tick() { vm.push(vm.tickXT().id) }

func (vm *VM) bracketTick() {
	vm.requireCompiling("[']")
	vm.compile(nativeAtom(xtPush), literalAtom(vm.tickXT().id))
}

func (vm *VM) tickXT() *XT {
	name := vm.nextWord()
	xt := vm.lookup(name)
	if xt == nil {
		vm.halt(compileErrorf("unknown word %q", name))
	}
	return xt
}

func (vm *VM) popXT() *XT {
	id := vm.pop()
	xt := vm.byID(id)
	if xt == nil {
		vm.halt(runtimeErrorf("invalid execution token %v", id))
	}
	return xt
}

func (vm *VM) executeWord() { vm.call(vm.popXT()) }

func (vm *VM) compileComma() {
	xt := vm.popXT()
	vm.requireCompiling("compile,")
	vm.compile(compiledForm(xt))
}
