// This module implements the errors returned by the numeric packages. Every
// error carries the stack of the call that created it and an optional
// wrapped inner error.
//
// NOTE: This package intentionally mirrors the standard "errors" module, so
// callers can use errors.Is / errors.As on anything it returns.
package errors

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"runtime"
	"sync"
)

// This interface exposes additional information about the error.
type DropboxError interface {
	// This returns the error message without the stack trace.
	GetMessage() string

	// This returns the wrapped error.  This returns nil if this does not wrap
	// another error.
	GetInner() error

	// Implements the built-in error interface.
	Error() string

	// Returns string representation of stack frames, one function per
	// line followed by an indented file:line.
	GetStack() string
}

// Marks errors caused by a caller handing in a value the operation cannot
// accept (empty input, non-finite values, mismatched options).  This is the
// only error class the numeric packages produce.
type InvalidArgumentError interface {
	DropboxError

	// No-op marker method.
	IsInvalidArgument()
}

type baseError struct {
	msg   string
	inner error

	stack      []uintptr
	framesOnce sync.Once
	frames     string
}

type invalidArgumentError struct {
	*baseError
}

func (e invalidArgumentError) IsInvalidArgument() {}

// This returns the error string without stack trace information.
func GetMessage(err error) string {
	if dbxErr, ok := err.(DropboxError); ok {
		return fullMessage(dbxErr, false)
	}
	if err == nil {
		return ""
	}
	return err.Error()
}

// This returns a string with all available error information, including inner
// errors that are wrapped by this errors.
func (e *baseError) Error() string {
	return fullMessage(e, true)
}

// Implements DropboxError interface.
func (e *baseError) GetMessage() string {
	return e.msg
}

// Implements DropboxError interface.
func (e *baseError) GetInner() error {
	return e.inner
}

// Lets the standard library walk the chain.
func (e *baseError) Unwrap() error {
	return e.inner
}

// Implements DropboxError interface.
func (e *baseError) GetStack() string {
	e.framesOnce.Do(func() {
		buf := bytes.NewBuffer(make([]byte, 0, 256))
		frames := runtime.CallersFrames(e.stack)
		for {
			frame, more := frames.Next()
			if frame.Function != "" {
				_, _ = buf.WriteString(frame.Function)
				_, _ = buf.WriteString("\n")
				fmt.Fprintf(buf, "\t%s:%d\n", frame.File, frame.Line)
			}
			if !more {
				break
			}
		}
		e.frames = buf.String()
	})
	return e.frames
}

// This returns a new error initialized with the given message and
// the current stack trace.
func New(msg string) DropboxError {
	return newBase(nil, msg)
}

// Same as New, but with fmt.Printf-style parameters.
func Newf(format string, args ...interface{}) DropboxError {
	return newBase(nil, fmt.Sprintf(format, args...))
}

// Wraps another error in a new error.
func Wrap(err error, msg string) DropboxError {
	return newBase(err, msg)
}

// Same as Wrap, but with fmt.Printf-style parameters.
func Wrapf(err error, format string, args ...interface{}) DropboxError {
	return newBase(err, fmt.Sprintf(format, args...))
}

// Returns an InvalidArgumentError with the given message.
func InvalidArgument(msg string) InvalidArgumentError {
	return invalidArgumentError{newBase(nil, msg)}
}

// Same as InvalidArgument, but with fmt.Printf-style parameters.
func InvalidArgumentf(format string, args ...interface{}) InvalidArgumentError {
	return invalidArgumentError{newBase(nil, fmt.Sprintf(format, args...))}
}

// Returns true if err, or any error it wraps, is an InvalidArgumentError.
func IsInvalidArgument(err error) bool {
	var target InvalidArgumentError
	return stderrors.As(err, &target)
}

// Reports whether errConst appears anywhere in err's chain.
func Is(err, errConst error) bool {
	return stderrors.Is(err, errConst)
}

// Keep peeling away layers of context until a primitive error is revealed.
func RootError(err error) error {
	for i := 0; i < 20; i++ {
		inner := stderrors.Unwrap(err)
		if inner == nil {
			return err
		}
		err = inner
	}
	return fmt.Errorf("too many iterations: %T", err)
}

// Stack collection starts at the caller of New/Wrap/etc, so if there is more
// than one level of redirection to this function, the extra level shows up
// in the stack too.
func newBase(err error, msg string) *baseError {
	stack := make([]uintptr, 200)
	stackLength := runtime.Callers(3, stack)
	return &baseError{
		msg:   msg,
		stack: stack[:stackLength],
		inner: err,
	}
}

// Builds the full message by walking all inner errors.  If includeStack is
// true the stack of the deepest DropboxError in the chain is appended.
func fullMessage(e DropboxError, includeStack bool) string {
	var last DropboxError
	msg := bytes.NewBuffer(make([]byte, 0, 256))

	dbxErr := e
	for {
		last = dbxErr
		msg.WriteString(dbxErr.GetMessage())

		inner := dbxErr.GetInner()
		if inner == nil {
			break
		}
		next, ok := inner.(DropboxError)
		if !ok {
			msg.WriteString("\n")
			msg.WriteString(inner.Error())
			break
		}
		msg.WriteString("\n")
		dbxErr = next
	}
	if includeStack {
		msg.WriteString("\nORIGINAL STACK TRACE:\n")
		msg.WriteString(last.GetStack())
	}
	return msg.String()
}
