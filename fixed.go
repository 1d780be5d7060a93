package forth

import (
	"errors"

	"github.com/cockroachdb/apd/v3"
)

// Fixed point cells hold a value scaled by 10^precision, where precision
// lives in a heap cell so that Forth code may change it.

const fixedDigits = 50

var errFixedRange = errors.New("fixed point value out of range")

func fixedContext(rounding apd.Rounder) *apd.Context {
	ctx := apd.BaseContext.WithPrecision(fixedDigits)
	ctx.Rounding = rounding
	return ctx
}

// parseFixed scales a decimal string to a cell, rounding half to even.
func parseFixed(s string, precision int) (int, error) {
	d, _, err := apd.NewFromString(s)
	if err != nil {
		return 0, err
	}
	return fixedCell(fixedContext(apd.RoundHalfEven), d, precision)
}

// formatFixed renders a cell with exactly precision fraction digits.
func formatFixed(v, precision int) string {
	return fixedDecimal(v, precision).Text('f')
}

func fixedDecimal(v, precision int) *apd.Decimal {
	return apd.New(int64(v), -int32(precision))
}

func fixedCell(ctx *apd.Context, d *apd.Decimal, precision int) (int, error) {
	if d.Form != apd.Finite {
		return 0, errFixedRange
	}
	var q apd.Decimal
	if _, err := ctx.Quantize(&q, d, -int32(precision)); err != nil {
		return 0, errFixedRange
	}
	q.Exponent = 0
	n, err := q.Int64()
	if err != nil || int64(int(n)) != n {
		return 0, errFixedRange
	}
	return int(n), nil
}

type decimalOp func(ctx *apd.Context, d, x, y *apd.Decimal) (apd.Condition, error)
type decimalFunc func(ctx *apd.Context, d, x *apd.Decimal) (apd.Condition, error)

// fixedBinary applies op to the top two cells, flooring the result.
func (vm *VM) fixedBinary(name string, op decimalOp) {
	p := vm.precision()
	a, b := vm.pop2()
	ctx := fixedContext(apd.RoundFloor)
	var d apd.Decimal
	if _, err := op(ctx, &d, fixedDecimal(a, p), fixedDecimal(b, p)); err != nil {
		vm.halt(runtimeErrorf("%v: %v", name, err))
	}
	v, err := fixedCell(ctx, &d, p)
	if err != nil {
		vm.halt(runtimeErrorf("%v: %v", name, err))
	}
	vm.push(v)
}

func (vm *VM) fixedUnary(name string, fn decimalFunc) {
	p := vm.precision()
	x := fixedDecimal(vm.pop(), p)
	ctx := fixedContext(apd.RoundHalfEven)
	var d apd.Decimal
	if _, err := fn(ctx, &d, x); err != nil {
		vm.halt(runtimeErrorf("%v: math domain error: %v", name, err))
	}
	v, err := fixedCell(ctx, &d, p)
	if err != nil {
		vm.halt(runtimeErrorf("%v: math domain error: %v", name, err))
	}
	vm.push(v)
}

func (vm *VM) fmul() { vm.fixedBinary("f*", (*apd.Context).Mul) }

func (vm *VM) fdiv() {
	if vm.peek(0) == 0 {
		vm.halt(runtimeErrorf("division by zero"))
	}
	vm.fixedBinary("f/", (*apd.Context).Quo)
}

func (vm *VM) fsqrt() { vm.fixedUnary("fsqrt", (*apd.Context).Sqrt) }
func (vm *VM) fln()   { vm.fixedUnary("fln", (*apd.Context).Ln) }
func (vm *VM) fexp()  { vm.fixedUnary("fexp", (*apd.Context).Exp) }

func (vm *VM) dotFixed() { vm.writeString(formatFixed(vm.pop(), vm.precision())) }
