package fsm

import (
	"errors"
	"fmt"
)

var (
	// ErrNoTransition indicates the definition declares no transition for the
	// requested state change. Distinct from a guard rejection.
	ErrNoTransition = errors.New("no transition declared for the requested state change")

	// ErrNotQueueable is returned when a queued hook is built from a callable
	// that has no portable reference (bound method or inline function).
	ErrNotQueueable = errors.New("queued hook requires a static type@method reference")

	// ErrContextHydration indicates a serialized context payload could not be
	// rebuilt.
	ErrContextHydration = errors.New("context payload hydration failed")
)

// NoTransitionError reports the states for which no transition is declared.
type NoTransitionError struct {
	FromState string
	ToState   string
}

func (e *NoTransitionError) Error() string {
	return fmt.Sprintf("no transition available from state %q to state %q", e.FromState, e.ToState)
}

func (e *NoTransitionError) Unwrap() error { return ErrNoTransition }

func NewNoTransitionError(from, to string) *NoTransitionError {
	return &NoTransitionError{FromState: from, ToState: to}
}

func IsNoTransitionError(err error) bool {
	var e *NoTransitionError
	return errors.As(err, &e)
}

// HydrationError reports a malformed serialized context, naming the runtime
// type actually received as the class discriminator.
type HydrationError struct {
	Type string
}

func (e *HydrationError) Error() string {
	return fmt.Sprintf("context class discriminator must be a string, got %s", e.Type)
}

func (e *HydrationError) Unwrap() error { return ErrContextHydration }

// NewHydrationError captures the runtime type of the offending discriminator.
func NewHydrationError(got any) *HydrationError {
	return &HydrationError{Type: fmt.Sprintf("%T", got)}
}

func IsHydrationError(err error) bool {
	var e *HydrationError
	return errors.As(err, &e)
}
