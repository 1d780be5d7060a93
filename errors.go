package forth

import (
	"errors"
	"fmt"
)

// CompilationError reports a malformed program: unbalanced or mismatched
// control words, unknown words, bad literals.
type CompilationError struct{ Msg string }

// StackUnderflowError reports a pop from an empty data or return stack.
type StackUnderflowError struct{ Stack string }

// RuntimeError reports a failure while running otherwise well formed code,
// such as division by zero or an out of range heap address.
type RuntimeError struct{ Msg string }

func (err CompilationError) Error() string    { return "compilation error: " + err.Msg }
func (err StackUnderflowError) Error() string { return err.Stack + " stack underflow" }
func (err RuntimeError) Error() string        { return "runtime error: " + err.Msg }

func compileErrorf(mess string, args ...interface{}) CompilationError {
	return CompilationError{fmt.Sprintf(mess, args...)}
}

func runtimeErrorf(mess string, args ...interface{}) RuntimeError {
	return RuntimeError{fmt.Sprintf(mess, args...)}
}

// IsForthError returns true if err wraps one of CompilationError,
// StackUnderflowError, or RuntimeError; such errors leave the VM usable for
// further statements.
func IsForthError(err error) bool {
	var (
		compErr  CompilationError
		underErr StackUnderflowError
		runErr   RuntimeError
	)
	return errors.As(err, &compErr) ||
		errors.As(err, &underErr) ||
		errors.As(err, &runErr)
}

var errNeedInput = errors.New("need more input")

type haltError struct{ error }

func (err haltError) Error() string {
	if err.error != nil {
		return fmt.Sprintf("halted: %v", err.error)
	}
	return "halted"
}
func (err haltError) Unwrap() error { return err.error }

func (vm *VM) halt(err error) {
	// ignore any panics while trying to flush output
	func() {
		defer func() { recover() }()
		if ferr := vm.out.Flush(); err == nil {
			err = ferr
		}
	}()
	vm.logf("#", "halt error: %v", err)
	panic(haltError{err})
}

func (vm *VM) haltif(err error) {
	if err != nil {
		vm.halt(err)
	}
}

// catch runs f, recovering any halt into an error return; any other panic
// passes through.
func (vm *VM) catch(f func()) (err error) {
	defer func() {
		if e := recover(); e != nil {
			he, ok := e.(haltError)
			if !ok {
				panic(e)
			}
			err = he.error
		}
	}()
	f()
	return nil
}
