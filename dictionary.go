package forth

import "sort"

// Native is a host primitive. Natives that carry an inline operand, or that
// jump, work on the running code through VM.operand and VM.jump.
type Native func(vm *VM)

// XT is an execution token: either a Native primitive, or a Defined sequence
// of atoms. Immediate tokens run even while compiling.
type XT struct {
	Name      string
	Native    Native
	Code      []Atom
	Immediate bool

	id int
}

// ID returns the number that names xt on the data stack, as pushed by ' and
// consumed by execute.
func (xt *XT) ID() int { return xt.id }

// Defined returns true for a threaded code token.
func (xt *XT) Defined() bool { return xt.Native == nil }

// AtomKind discriminates Atom.
type AtomKind uint8

// Atom kinds.
const (
	AtomNative AtomKind = iota
	AtomLiteral
	AtomCall
)

// Atom is one cell of threaded code: a native primitive, an integer literal
// (operand to the preceding native), or a late bound call by word name.
type Atom struct {
	Kind  AtomKind
	XT    *XT
	Value int
	Name  string
}

func nativeAtom(xt *XT) Atom    { return Atom{Kind: AtomNative, XT: xt} }
func literalAtom(v int) Atom    { return Atom{Kind: AtomLiteral, Value: v} }
func callAtom(name string) Atom { return Atom{Kind: AtomCall, Name: name} }

type dictionary struct {
	words map[string]*XT
	xts   []*XT
}

// define binds name to xt, replacing any prior binding; code compiled
// against the old binding by name sees the new one from now on.
func (dict *dictionary) define(name string, xt *XT) *XT {
	if dict.words == nil {
		dict.words = make(map[string]*XT)
	}
	xt.Name = name
	xt.id = len(dict.xts)
	dict.xts = append(dict.xts, xt)
	if name != "" {
		dict.words[name] = xt
	}
	return xt
}

func (dict *dictionary) lookup(name string) *XT {
	return dict.words[name]
}

func (dict *dictionary) byID(id int) *XT {
	if id >= 0 && id < len(dict.xts) {
		return dict.xts[id]
	}
	return nil
}

func (dict *dictionary) names() []string {
	names := make([]string, 0, len(dict.words))
	for name := range dict.words {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// compiledForm returns the atom that invokes xt from threaded code: natives
// bind eagerly, defined words by name.
func compiledForm(xt *XT) Atom {
	if xt.Defined() {
		return callAtom(xt.Name)
	}
	return nativeAtom(xt)
}
