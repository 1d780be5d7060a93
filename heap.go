package forth

import (
	"errors"

	"github.com/jcorbin/goforth/internal/mem"
)

func (vm *VM) load(addr int) int {
	val, err := vm.heap.Load(addr)
	vm.haltif(heapError(err))
	return val
}

func (vm *VM) stor(addr int, vals ...int) {
	vm.haltif(heapError(vm.heap.Stor(addr, vals...)))
}

func heapError(err error) error {
	var lim mem.LimitError
	if errors.As(err, &lim) {
		return RuntimeError{lim.Error()}
	}
	return err
}

// numBase returns the current numeric base, from its heap cell.
func (vm *VM) numBase() int {
	base := vm.load(addrBase)
	if base < 2 || base > 36 {
		vm.halt(runtimeErrorf("unsupported numeric base %v", base))
	}
	return base
}

// precision returns the current number of fixed point fraction digits,
// from its heap cell.
func (vm *VM) precision() int {
	p := vm.load(addrPrecision)
	if p < 0 {
		vm.halt(runtimeErrorf("negative precision %v", p))
	}
	return p
}

// allot reserves n cells at the heap cursor, returning their address.
func (vm *VM) allot(n int) int {
	addr := vm.here
	end := addr + n
	if end < vm.fence || end > vm.heapSize {
		vm.halt(runtimeErrorf("allot %v from @%v leaves heap bounds [%v, %v)", n, addr, vm.fence, vm.heapSize))
	}
	vm.here = end
	return addr
}

func (vm *VM) fetch() { vm.push(vm.load(vm.pop())) }

func (vm *VM) store() {
	addr := vm.pop()
	vm.stor(addr, vm.pop())
}

func (vm *VM) plusStore() {
	addr := vm.pop()
	vm.stor(addr, vm.load(addr)+vm.pop())
}

func (vm *VM) comma() {
	val := vm.pop()
	vm.stor(vm.allot(1), val)
}

func (vm *VM) allotWord()     { vm.allot(vm.pop()) }
func (vm *VM) hereWord()      { vm.push(vm.here) }
func (vm *VM) baseWord()      { vm.push(addrBase) }
func (vm *VM) precisionWord() { vm.push(addrPrecision) }

func (vm *VM) decimal() { vm.stor(addrBase, 10) }
func (vm *VM) hex()     { vm.stor(addrBase, 16) }
func (vm *VM) binary()  { vm.stor(addrBase, 2) }

// create defines the next word to push the address of the heap cursor.
func (vm *VM) create() {
	name := vm.nextWord()
	vm.latest = vm.define(name, &XT{Code: []Atom{nativeAtom(xtPush), literalAtom(vm.here)}})
	vm.logf("+", "create %v @%v", name, vm.here)
}

// does moves the rest of the running code onto the most recently created
// word, then skips over it.
func (vm *VM) does() {
	f := vm.topFrame()
	if vm.latest == nil || !vm.latest.Defined() {
		vm.halt(runtimeErrorf("does> without create"))
	}
	rest := f.code[f.ip:]
	code := make([]Atom, 0, len(vm.latest.Code)+len(rest))
	code = append(code, vm.latest.Code...)
	code = append(code, rest...)
	vm.latest.Code = code
	vm.jump(len(f.code))
}
