package forth

import (
	"strconv"
	"strings"

	"github.com/jcorbin/goforth/internal/runeio"
)

func (vm *VM) writeString(s string) {
	_, err := runeio.WriteString(&vm.out, s)
	vm.haltif(err)
}

func (vm *VM) writeRune(r rune) {
	_, err := runeio.WriteRune(&vm.out, r)
	vm.haltif(err)
}

// formatInt renders a cell in the current base, with upper case digits.
func (vm *VM) formatInt(v int) string {
	return strings.ToUpper(strconv.FormatInt(int64(v), vm.numBase()))
}

func (vm *VM) dot()  { vm.writeString(vm.formatInt(vm.pop())) }
func (vm *VM) emit() { vm.writeRune(runeio.Rune(vm.pop())) }

func (vm *VM) spaces() {
	for n := vm.pop(); n > 0; n-- {
		vm.checkContext()
		vm.writeRune(' ')
	}
}

// typeWord writes len characters stored one per cell from addr.
func (vm *VM) typeWord() {
	addr, n := vm.pop2()
	if n < 0 {
		vm.halt(runtimeErrorf("negative string length %v", n))
	}
	if addr < 0 || n > vm.heapSize-addr {
		vm.halt(runtimeErrorf("type of %v cells from @%v exceeds heap size %v", n, addr, vm.heapSize))
	}
	buf := make([]int, n)
	vm.haltif(heapError(vm.heap.LoadInto(addr, buf)))
	_, err := runeio.WriteCells(&vm.out, buf)
	vm.haltif(err)
}

func (vm *VM) dotS() {
	for _, v := range vm.stack {
		vm.writeString(vm.formatInt(v))
		vm.writeRune(' ')
	}
}

func (vm *VM) dump() {
	vm.haltif(vmDumper{vm: vm, out: &vm.out}.dump())
}

func (vm *VM) words() {
	vm.writeString(strings.Join(vm.names(), " "))
	vm.writeRune('\n')
}

func (vm *VM) see() {
	name := vm.nextWord()
	xt := vm.lookup(name)
	if xt == nil {
		vm.halt(compileErrorf("unknown word %q", name))
	}
	vm.haltif(xtDumper{vm: vm, out: &vm.out}.dump(xt))
}

//// strings

func (vm *VM) intern(s string) int {
	vm.strings = append(vm.strings, s)
	return len(vm.strings) - 1
}

func (vm *VM) stringAt(id int) string {
	if id < 0 || id >= len(vm.strings) {
		vm.halt(runtimeErrorf("invalid string #%v", id))
	}
	return vm.strings[id]
}

// parseString reads raw characters up to a closing delimiter.
func (vm *VM) parseString(delim rune) string {
	var sb strings.Builder
	for {
		r := vm.nextChar()
		if r == delim {
			return sb.String()
		}
		sb.WriteRune(r)
	}
}

// dotQuote prints a string now, or compiles it for later.
func (vm *VM) dotQuote() {
	s := vm.parseString('"')
	if vm.compiling {
		vm.compile(nativeAtom(xtDotQ), literalAtom(vm.intern(s)))
	} else {
		vm.writeString(s)
	}
}

// sQuote stores a counted string in the heap, at compile time when
// compiling, leaving the address of its first character and its length.
func (vm *VM) sQuote() {
	s := []rune(vm.parseString('"'))
	addr := vm.allot(len(s) + 1)
	cells := make([]int, 0, len(s)+1)
	cells = append(cells, len(s))
	for _, r := range s {
		cells = append(cells, int(r))
	}
	vm.stor(addr, cells...)
	if vm.compiling {
		vm.compile(
			nativeAtom(xtPush), literalAtom(addr+1),
			nativeAtom(xtPush), literalAtom(len(s)))
	} else {
		vm.push(addr+1, len(s))
	}
}

func (vm *VM) paren()     { vm.parseString(')') }
func (vm *VM) backslash() { vm.rd.skipLine() }

func (vm *VM) char() {
	r, ok := runeio.LiteralRune(vm.nextToken())
	if !ok {
		vm.halt(compileErrorf("missing character"))
	}
	vm.push(int(r))
}

func (vm *VM) bracketChar() {
	vm.requireCompiling("[char]")
	vm.char()
	vm.literalWord()
}
