package forth

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/jcorbin/goforth/internal/fileinput"
	"github.com/jcorbin/goforth/internal/logio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type vmTestCases []vmTestCase

func (vmts vmTestCases) run(t *testing.T) {
	{
		var exclusive []vmTestCase
		for _, vmt := range vmts {
			if vmt.exclusive {
				exclusive = append(exclusive, vmt)
			}
		}
		if len(exclusive) > 0 {
			vmts = exclusive
		}
	}
	for _, vmt := range vmts {
		t.Run(vmt.name, vmt.run)
	}
}

func vmTest(name string) (vmt vmTestCase) {
	vmt.name = name
	return vmt
}

type vmTestInput struct {
	source      string
	interactive bool
}

type vmTestCase struct {
	name     string
	opts     []interface{}
	inputs   []vmTestInput
	expect   []func(t *testing.T, vm *VM)
	timeout  time.Duration
	checkErr func(t *testing.T, err error)

	exclusive bool
}

func (vmt vmTestCase) exclusiveTest() vmTestCase {
	vmt.exclusive = true
	return vmt
}

func (vmt vmTestCase) withOptions(opts ...Option) vmTestCase {
	for _, opt := range opts {
		vmt.opts = append(vmt.opts, opt)
	}
	return vmt
}

func (vmt vmTestCase) withInput(source string) vmTestCase {
	vmt.inputs = append(vmt.inputs, vmTestInput{source, false})
	return vmt
}

func (vmt vmTestCase) withInteractiveInput(source string) vmTestCase {
	vmt.inputs = append(vmt.inputs, vmTestInput{source, true})
	return vmt
}

func (vmt vmTestCase) withTimeout(timeout time.Duration) vmTestCase {
	vmt.timeout = timeout
	return vmt
}

func (vmt vmTestCase) expectError(want error) vmTestCase {
	vmt.checkErr = func(t *testing.T, err error) {
		assert.True(t, errors.Is(err, want), "expected error: %v\ngot: %+v", want, err)
	}
	return vmt
}

func (vmt vmTestCase) expectCompilationError(msg string) vmTestCase {
	vmt.checkErr = func(t *testing.T, err error) {
		var ce CompilationError
		if assert.True(t, errors.As(err, &ce), "expected compilation error, got: %+v", err) {
			assert.Contains(t, ce.Msg, msg)
		}
	}
	return vmt
}

func (vmt vmTestCase) expectRuntimeError(msg string) vmTestCase {
	vmt.checkErr = func(t *testing.T, err error) {
		var re RuntimeError
		if assert.True(t, errors.As(err, &re), "expected runtime error, got: %+v", err) {
			assert.Contains(t, re.Msg, msg)
		}
	}
	return vmt
}

func (vmt vmTestCase) expectUnderflow(stack string) vmTestCase {
	vmt.checkErr = func(t *testing.T, err error) {
		var ue StackUnderflowError
		if assert.True(t, errors.As(err, &ue), "expected stack underflow, got: %+v", err) {
			assert.Equal(t, stack, ue.Stack)
		}
	}
	return vmt
}

func (vmt vmTestCase) expectErrorString(s string) vmTestCase {
	vmt.checkErr = func(t *testing.T, err error) {
		if assert.Error(t, err) {
			assert.Equal(t, s, err.Error())
		}
	}
	return vmt
}

func (vmt vmTestCase) expectStack(values ...int) vmTestCase {
	vmt.expect = append(vmt.expect, func(t *testing.T, vm *VM) {
		if values == nil {
			values = []int{}
		}
		assert.Equal(t, values, vm.DataStack(), "expected stack values")
	})
	return vmt
}

func (vmt vmTestCase) expectRStack(values ...int) vmTestCase {
	vmt.expect = append(vmt.expect, func(t *testing.T, vm *VM) {
		if values == nil {
			values = []int{}
		}
		assert.Equal(t, values, vm.ReturnStack(), "expected return stack values")
	})
	return vmt
}

func (vmt vmTestCase) expectHeap(values ...int) vmTestCase {
	vmt.expect = append(vmt.expect, func(t *testing.T, vm *VM) {
		if values == nil {
			values = []int{}
		}
		assert.Equal(t, values, vm.Heap(), "expected user heap values")
	})
	return vmt
}

func (vmt vmTestCase) expectOutput(output string) vmTestCase {
	var out strings.Builder
	vmt.opts = append(vmt.opts, func(t *testing.T) Option {
		out.Reset()
		return WithOutput(&out)
	})
	vmt.expect = append(vmt.expect, func(t *testing.T, vm *VM) {
		assert.Equal(t, output, out.String(), "expected output")
	})
	return vmt
}

func (vmt vmTestCase) expectWord(name, listing string) vmTestCase {
	vmt.expect = append(vmt.expect, func(t *testing.T, vm *VM) {
		xt, defined := vm.Lookup(name)
		if assert.True(t, defined, "expected %q to be defined", name) {
			var sb strings.Builder
			xtDumper{vm: vm}.format(&sb, xt)
			assert.Equal(t, listing, sb.String(), "expected %q listing", name)
		}
	})
	return vmt
}

func (vmt vmTestCase) expectCompiling(compiling bool) vmTestCase {
	vmt.expect = append(vmt.expect, func(t *testing.T, vm *VM) {
		assert.Equal(t, compiling, vm.compiling, "expected compiling flag")
		if !compiling {
			assert.Empty(t, vm.control, "expected empty control stack")
		}
	})
	return vmt
}

func (vmt vmTestCase) do(op func(t *testing.T, vm *VM)) vmTestCase {
	vmt.expect = append(vmt.expect, op)
	return vmt
}

func (vmt vmTestCase) withTestOutput() vmTestCase {
	vmt.opts = append(vmt.opts, func(t *testing.T) Option {
		return WithTee(&logio.Writer{Logf: func(mess string, args ...interface{}) {
			t.Logf("out: "+mess, args...)
		}})
	})
	return vmt
}

func (vmt vmTestCase) run(t *testing.T) {
	defer func(then time.Time) {
		label := "PASS"
		if t.Failed() {
			label = "FAIL"
		}
		t.Logf("%v\t%v\t%v", label, t.Name(), time.Since(then))
	}(time.Now())

	if testFails(func(t *testing.T) {
		vmt.runVMTest(context.Background(), t, nil, false)
	}) {
		vmt.runVMTest(context.Background(), t, WithLogf(t.Logf), true)
	}
}

func (vmt vmTestCase) runVMTest(ctx context.Context, t *testing.T, extra Option, dump bool) {
	const defaultTimeout = time.Second
	timeout := vmt.timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	vm, err := New(vmt.buildOptions(t, extra)...)
	require.NoError(t, err, "unexpected VM construction error")
	defer func() {
		if dump && t.Failed() {
			vmt.dumpToTest(t, vm)
		}
	}()

	err = vmt.runVM(ctx, vm)
	if vmt.checkErr != nil {
		vmt.checkErr(t, err)
	} else {
		assert.NoError(t, err, "unexpected VM run error")
	}

	if !t.Failed() {
		for _, expect := range vmt.expect {
			expect(t, vm)
		}
	}
}

func (vmt vmTestCase) runVM(ctx context.Context, vm *VM) (rerr error) {
	defer func() {
		if err := vm.Close(); err != nil && rerr == nil {
			rerr = fmt.Errorf("vm.Close failed: %w", err)
		}
	}()
	for i, in := range vmt.inputs {
		name := "input"
		if i > 0 {
			name += "_" + strconv.Itoa(i+1)
		}
		if err := vm.RunInput(ctx, fileinput.Named(name, strings.NewReader(in.source)), in.interactive); err != nil {
			return err
		}
	}
	return nil
}

func (vmt vmTestCase) buildOptions(t *testing.T, extra Option) []Option {
	var opts []Option
	for _, o := range vmt.opts {
		switch impl := o.(type) {
		case func(t *testing.T) Option:
			opts = append(opts, impl(t))
		case Option:
			opts = append(opts, impl)
		default:
			t.Logf("unsupported vmTestCase opt type %T", o)
			t.FailNow()
		}
	}
	return append(opts, extra)
}

func (vmt vmTestCase) dumpToTest(t *testing.T, vm *VM) {
	lw := logio.Writer{Logf: t.Logf}
	defer lw.Close()
	vmDumper{vm: vm, out: &lw}.dump()
}

//// utilities

func testFails(fn func(t *testing.T)) bool {
	var fakeT testing.T
	done := make(chan struct{})
	go func() {
		defer close(done)
		fn(&fakeT)
	}()
	<-done
	return fakeT.Failed()
}

func lines(parts ...string) string {
	return strings.Join(parts, "\n") + "\n"
}
