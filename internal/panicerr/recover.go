// Package panicerr turns panics and runtime.Goexit calls into error values.
package panicerr

import (
	"errors"
	"fmt"
	"runtime/debug"
)

// Error is a recovered abnormal exit of a function run by Recover.
type Error struct {
	// Name identifies what was being run, e.g. "compile saw.fb".
	Name string

	// Value is what was passed to panic; it is nil after runtime.Goexit.
	Value interface{}

	// Stack is the panicking goroutine's stack trace.
	Stack []byte

	exit bool
}

// Recover runs f in a new goroutine, converting a panic or runtime.Goexit
// inside it into an *Error.
func Recover(name string, f func() error) error {
	errch := make(chan error, 1)
	go func() {
		defer close(errch)
		defer func() {
			// only reached without a send on Goexit
			select {
			case errch <- &Error{Name: name, exit: true}:
			default:
			}
		}()
		defer func() {
			if e := recover(); e != nil {
				errch <- &Error{Name: name, Value: e, Stack: debug.Stack()}
			}
		}()
		errch <- f()
	}()
	return <-errch
}

func (pe *Error) Error() string { return fmt.Sprint(pe) }

// Format supports "%+v" to include the stack trace.
func (pe *Error) Format(f fmt.State, c rune) {
	switch {
	case pe.exit && pe.Name == "":
		fmt.Fprint(f, "runtime.Goexit called")
	case pe.exit:
		fmt.Fprintf(f, "%v called runtime.Goexit", pe.Name)
	case pe.Name == "":
		fmt.Fprintf(f, "paniced: %v", pe.Value)
	default:
		fmt.Fprintf(f, "%v paniced: %v", pe.Name, pe.Value)
	}
	if c == 'v' && f.Flag('+') && len(pe.Stack) > 0 {
		fmt.Fprintf(f, "\nPanic stack: %s", pe.Stack)
	}
}

// Unwrap returns the panic value if it was an error.
func (pe *Error) Unwrap() error {
	err, _ := pe.Value.(error)
	return err
}

// IsPanic reports whether err contains a recovered panic.
func IsPanic(err error) bool {
	var pe *Error
	return errors.As(err, &pe) && !pe.exit
}

// IsExit reports whether err contains a recovered runtime.Goexit.
func IsExit(err error) bool {
	var pe *Error
	return errors.As(err, &pe) && pe.exit
}

// PanicStack returns the stack trace of a recovered panic, if err holds one.
func PanicStack(err error) string {
	var pe *Error
	if errors.As(err, &pe) {
		return string(pe.Stack)
	}
	return ""
}
