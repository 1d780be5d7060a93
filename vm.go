package forth

import (
	"context"
	"fmt"
	"strings"

	"github.com/jcorbin/goforth/internal/fileinput"
	"github.com/jcorbin/goforth/internal/flushio"
	"github.com/jcorbin/goforth/internal/mem"
)

// Heap cells below heapStart hold session variables reachable from Forth
// code through the base and precision words.
const (
	addrBase = iota
	addrPrecision
	heapStart
)

const (
	defaultHeapSize  = 1024
	defaultPrecision = 5
	defaultBase      = 10

	defaultPrompt             = "Forth> "
	defaultContinuationPrompt = "... "
)

// VM is a single interpreter instance: dictionary, stacks, heap, and the
// compiler state that goes with them. VMs share nothing with each other, and
// are not safe for concurrent use.
type VM struct {
	logging
	out flushio.Output

	dictionary
	stack  []int
	rstack []int

	heap     mem.Ints
	here     int
	fence    int
	heapSize int

	startPrecision int
	startBase      int

	compiler
	frames  []frame
	strings []string

	rd          reader
	in          fileinput.Input
	interactive bool
	prompt      string
	contPrompt  string
	ctx         context.Context

	extensions []Extension
}

// Extension is a named body of Forth source replayed through the compiler
// when a VM is constructed.
type Extension struct {
	Name   string
	Source string
}

// New builds a VM with the native word set, then loads any startup
// extensions (by default the embedded core word set) in batch mode. Heap
// storage allocated by extensions survives Reset.
func New(opts ...Option) (*VM, error) {
	var vm VM
	vm.apply(opts...)
	if err := vm.init(); err != nil {
		return nil, err
	}
	for _, ext := range vm.extensions {
		if err := vm.loadExtension(ext); err != nil {
			return nil, fmt.Errorf("failed to load %v: %w", ext.Name, err)
		}
	}
	return &vm, nil
}

func (vm *VM) init() error {
	if vm.heapSize <= heapStart {
		return runtimeErrorf("heap size %v too small, must exceed %v", vm.heapSize, heapStart)
	}
	if vm.startBase < 2 || vm.startBase > 36 {
		return runtimeErrorf("unsupported numeric base %v", vm.startBase)
	}
	if vm.startPrecision < 0 {
		return runtimeErrorf("negative precision %v", vm.startPrecision)
	}
	vm.heap.Limit = vm.heapSize
	if err := vm.heap.Stor(addrBase, vm.startBase, vm.startPrecision); err != nil {
		return err
	}
	vm.here = heapStart
	vm.fence = heapStart
	vm.defineNatives()
	return nil
}

func (vm *VM) loadExtension(ext Extension) error {
	err := vm.RunInput(context.Background(), fileinput.Named(ext.Name, strings.NewReader(ext.Source)), false)
	vm.fence = vm.here
	return err
}
