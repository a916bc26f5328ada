package dispatch

import (
	"errors"
	"fmt"
)

var (
	// ErrCannotDispatch indicates a callable that cannot be resolved or invoked.
	ErrCannotDispatch = errors.New("callable cannot be dispatched")

	// ErrBoundReference is returned when a bound method reference is asked for
	// a portable string form. The bound instance's identity cannot survive a
	// serialization boundary; hitting this is a programming error, not a
	// runtime failure.
	ErrBoundReference = errors.New("bound method reference has no portable string form")

	// ErrInlineReference is returned when an inline function is asked for a
	// portable string form.
	ErrInlineReference = errors.New("inline function has no portable string form")

	// ErrBindFailed indicates parameter binding against the value bag failed.
	ErrBindFailed = errors.New("parameter binding failed")

	// ErrInvalidRef indicates a malformed "Type@method" reference string.
	ErrInvalidRef = errors.New("invalid type@method reference")

	// ErrAlreadyRegistered is returned on duplicate handler registration.
	ErrAlreadyRegistered = errors.New("handler already registered")
)

// DispatchError reports a callable that cannot be resolved or invoked, naming
// the type and method. It is distinct from a semantic guard or hook failure.
type DispatchError struct {
	TypeName string
	Method   string
	Reason   string
}

func (e *DispatchError) Error() string {
	return fmt.Sprintf("cannot dispatch %s@%s: %s", e.TypeName, e.Method, e.Reason)
}

func (e *DispatchError) Unwrap() error { return ErrCannotDispatch }

// BindError reports a parameter that could not be bound from the value bag.
type BindError struct {
	Param  string
	Reason string
}

func (e *BindError) Error() string {
	return fmt.Sprintf("cannot bind parameter %q: %s", e.Param, e.Reason)
}

func (e *BindError) Unwrap() error { return ErrBindFailed }

func IsDispatchError(err error) bool {
	var e *DispatchError
	return errors.As(err, &e)
}

func IsBindError(err error) bool {
	var e *BindError
	return errors.As(err, &e)
}
