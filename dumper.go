package forth

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
)

type fmtBuf interface {
	Len() int
	Write(p []byte) (n int, err error)
	WriteByte(c byte) error
	WriteRune(r rune) (n int, err error)
	WriteString(s string) (n int, err error)
}

// xtDumper decompiles execution tokens back into source-like listings.
type xtDumper struct {
	vm  *VM
	out io.Writer

	rawCode bool
}

func (dump xtDumper) dump(xt *XT) error {
	var buf bytes.Buffer
	dump.format(&buf, xt)
	buf.WriteByte('\n')
	_, err := buf.WriteTo(dump.out)
	return err
}

func (dump xtDumper) format(buf fmtBuf, xt *XT) {
	if !xt.Defined() {
		buf.WriteString(": ")
		buf.WriteString(xt.Name)
		buf.WriteString(" <native> ;")
	} else {
		buf.WriteString(": ")
		buf.WriteString(xt.Name)
		for i := 0; i < len(xt.Code); {
			buf.WriteByte(' ')
			i = dump.formatCode(buf, xt.Code, i)
		}
		buf.WriteString(" ;")
	}
	if xt.Immediate {
		buf.WriteString(" immediate")
	}
	if dump.rawCode && xt.Defined() {
		fmt.Fprintf(buf, "\n  %v", xt.Code)
	}
}

// formatCode writes the atom at i, along with any operand it consumes,
// returning the index of the next atom.
func (dump xtDumper) formatCode(buf fmtBuf, code []Atom, i int) int {
	atom := code[i]
	i++
	switch atom.Kind {
	case AtomCall:
		buf.WriteString(atom.Name)
		return i

	case AtomLiteral:
		// stray operand
		buf.WriteByte('#')
		buf.WriteString(strconv.Itoa(atom.Value))
		return i
	}

	var operand Atom
	hasOperand := i < len(code) && code[i].Kind == AtomLiteral
	if hasOperand {
		operand = code[i]
	}

	switch {
	case atom.XT == xtPush && hasOperand:
		buf.WriteString(strconv.Itoa(operand.Value))
		return i + 1

	case atom.XT == xtDotQ && hasOperand:
		buf.WriteString(`." `)
		if dump.vm != nil && operand.Value >= 0 && operand.Value < len(dump.vm.strings) {
			buf.WriteString(dump.vm.strings[operand.Value])
		} else {
			fmt.Fprintf(buf, "UNDEFINED_STRING_%v", operand.Value)
		}
		buf.WriteByte('"')
		return i + 1

	case (atom.XT == xtJZ || atom.XT == xtJNZ || atom.XT == xtJMP) && hasOperand:
		buf.WriteString(atom.XT.Name)
		buf.WriteByte('(')
		buf.WriteString(strconv.Itoa(operand.Value))
		buf.WriteByte(')')
		return i + 1
	}

	if atom.XT == nil {
		buf.WriteRune('ø')
	} else {
		buf.WriteString(atom.XT.Name)
	}
	return i
}

// vmDumper writes a summary of interpreter state.
type vmDumper struct {
	vm  *VM
	out io.Writer
}

func (dump vmDumper) dump() error {
	var buf bytes.Buffer
	vm := dump.vm
	fmt.Fprintf(&buf, "# VM Dump\n")
	fmt.Fprintf(&buf, "  stack: %v\n", vm.stack)
	fmt.Fprintf(&buf, "  rstack: %v\n", vm.rstack)
	fmt.Fprintf(&buf, "  here: %v fence: %v\n", vm.here, vm.fence)
	fmt.Fprintf(&buf, "  heap: %v\n", vm.Heap())
	if vm.compiling || len(vm.control) > 0 {
		fmt.Fprintf(&buf, "  compiling:")
		for _, ctl := range vm.control {
			fmt.Fprintf(&buf, " %v@%v", ctl.kind, ctl.slot)
			if ctl.name != "" {
				fmt.Fprintf(&buf, "(%v)", ctl.name)
			}
		}
		buf.WriteString("\n   ")
		for i := 0; i < len(vm.current); {
			buf.WriteByte(' ')
			i = xtDumper{vm: vm}.formatCode(&buf, vm.current, i)
		}
		buf.WriteByte('\n')
	}
	for i := range vm.frames {
		f := &vm.frames[i]
		fmt.Fprintf(&buf, "  frame[%v] @%v/%v\n", i, f.ip, len(f.code))
	}
	_, err := buf.WriteTo(dump.out)
	return err
}
