package forth

import (
	"context"
	"io"
	"strings"

	"github.com/jcorbin/goforth/internal/fileinput"
	"github.com/jcorbin/goforth/internal/panicerr"
)

// Run interprets source until it runs out or reaches the word bye.
//
// In batch mode (interactive false) the first error ends the run and is
// returned, wrapped with the input location. In interactive mode errors
// raised by Forth code are written to the output and the run continues with
// the next line; prompts are written whenever more input is needed.
//
// Definitions, stacks, and heap contents carry over from one run to the
// next; use Reset to start a fresh session.
func (vm *VM) Run(source string, interactive bool) error {
	return vm.RunInput(context.Background(), fileinput.Named("<input>", strings.NewReader(source)), interactive)
}

// RunInput is like Run, but reads from r a line at a time. The run halts
// with ctx.Err() once ctx is done.
func (vm *VM) RunInput(ctx context.Context, r io.Reader, interactive bool) error {
	vm.ctx = ctx
	vm.in.Queue = append(vm.in.Queue, r)
	defer func() {
		vm.ctx = nil
		vm.rd = reader{}
		vm.in.Close()
	}()

	err := panicerr.Recover("forth", func() error {
		return vm.session(interactive)
	})
	if err != nil {
		vm.resetCompiler()
	}
	if ferr := vm.out.Flush(); err == nil {
		err = ferr
	}
	return err
}

// Reset clears the data and return stacks and any partial definition, and
// releases heap storage allocated since the startup extensions loaded.
func (vm *VM) Reset() {
	vm.stack = vm.stack[:0]
	vm.rstack = vm.rstack[:0]
	vm.resetCompiler()
	vm.latest = nil
	vm.here = vm.fence
}

// DataStack returns a copy of the data stack, bottom first.
func (vm *VM) DataStack() []int { return append([]int{}, vm.stack...) }

// ReturnStack returns a copy of the return stack, bottom first.
func (vm *VM) ReturnStack() []int { return append([]int{}, vm.rstack...) }

// Heap returns a copy of the user heap cells: those allocated since the
// startup extensions loaded.
func (vm *VM) Heap() []int {
	cells := make([]int, vm.here-vm.fence)
	if err := vm.heap.LoadInto(vm.fence, cells); err != nil {
		return nil
	}
	return cells
}

// Words returns the sorted names of all defined words.
func (vm *VM) Words() []string { return vm.names() }

// Lookup returns the execution token bound to name, if any.
func (vm *VM) Lookup(name string) (*XT, bool) {
	xt := vm.lookup(strings.ToLower(name))
	return xt, xt != nil
}

// Close flushes output.
func (vm *VM) Close() error {
	return vm.out.Flush()
}
