// Package panicerr turns abnormal goroutine exits into ordinary errors.
package panicerr

import (
	"fmt"
	"runtime/debug"
)

// Error is a panic or runtime.Goexit recovered by Recover.
type Error struct {
	Name string

	// Value is the value passed to panic; it is nil after runtime.Goexit.
	Value interface{}

	// Stack is the panicking goroutine's stack trace.
	Stack []byte

	Exited bool
}

// Recover runs f in a new goroutine, converting any panic or runtime.Goexit
// into an *Error. The caller blocks until f is done, so f may safely share
// state with it.
func Recover(name string, f func() error) error {
	errch := make(chan error, 1)
	go func() {
		completed := false
		defer func() {
			if completed {
				return
			}
			perr := &Error{Name: name}
			if perr.Value = recover(); perr.Value != nil {
				perr.Stack = debug.Stack()
			} else {
				perr.Exited = true
			}
			errch <- perr
		}()
		err := f()
		completed = true
		errch <- err
	}()
	return <-errch
}

func (perr *Error) Error() string { return fmt.Sprint(perr) }

// Format adds the panic stack under "%+v".
func (perr *Error) Format(f fmt.State, c rune) {
	if perr.Name != "" {
		fmt.Fprintf(f, "%v ", perr.Name)
	}
	if perr.Exited {
		fmt.Fprint(f, "called runtime.Goexit")
		return
	}
	fmt.Fprintf(f, "panicked: %v", perr.Value)
	if c == 'v' && f.Flag('+') {
		fmt.Fprintf(f, "\npanic stack: %s", perr.Stack)
	}
}

// Unwrap returns the panic value when it is an error.
func (perr *Error) Unwrap() error {
	err, _ := perr.Value.(error)
	return err
}
