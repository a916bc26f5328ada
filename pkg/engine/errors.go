package engine

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrymomot/fsmkit/pkg/fsm"
)

var (
	// ErrNilRegistry is returned when the engine is built without a registry.
	ErrNilRegistry = errors.New("definition registry cannot be nil")

	// ErrNilPersister is returned when the engine is built without a persister.
	ErrNilPersister = errors.New("persister cannot be nil")

	// ErrDefinitionNotFound indicates the registry has no definition for the
	// entity type and attribute.
	ErrDefinitionNotFound = errors.New("state machine definition not found")

	// ErrNoTransitionAvailable indicates the resolver found no declared
	// transition for the requested change.
	ErrNoTransitionAvailable = errors.New("no transition available")

	// ErrGuardRejected indicates a guard prevented the transition.
	ErrGuardRejected = errors.New("transition rejected by guard")

	// ErrHookFailed indicates an action or callback failed mid-transition.
	ErrHookFailed = errors.New("transition hook failed")

	// ErrPersistenceFailed indicates the persistence collaborator failed.
	ErrPersistenceFailed = errors.New("entity persistence failed")

	// ErrNoEnqueuer is returned when a queued hook fires with no
	// deferred-execution collaborator configured.
	ErrNoEnqueuer = errors.New("no deferred-execution collaborator configured")
)

// TransitionError is the single failure type a transition attempt surfaces.
// It wraps the specific failure kind and the original cause. ToState holds
// the caller's requested target exactly as given, without normalization, so
// enum-like state values keep their concrete type.
type TransitionError struct {
	FromState string
	ToState   fsm.State
	Label     string

	kind  error
	cause error
}

func newTransitionError(kind error, from string, to fsm.State, label string, cause error) *TransitionError {
	return &TransitionError{
		FromState: from,
		ToState:   to,
		Label:     label,
		kind:      kind,
		cause:     cause,
	}
}

func (e *TransitionError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "transition %q -> %q failed: %s", e.FromState, fsm.ValueOf(e.ToState), e.kind)
	if e.Label != "" {
		fmt.Fprintf(&b, " (%s)", e.Label)
	}
	if e.cause != nil {
		fmt.Fprintf(&b, ": %s", e.cause)
	}
	return b.String()
}

// Kind returns the failure kind sentinel (ErrGuardRejected etc).
func (e *TransitionError) Kind() error { return e.kind }

// Cause returns the original underlying error, if any.
func (e *TransitionError) Cause() error { return e.cause }

func (e *TransitionError) Unwrap() []error {
	if e.cause == nil {
		return []error{e.kind}
	}
	return []error{e.kind, e.cause}
}

func IsDefinitionNotFound(err error) bool { return errors.Is(err, ErrDefinitionNotFound) }
func IsNoTransitionAvailable(err error) bool {
	return errors.Is(err, ErrNoTransitionAvailable)
}
func IsGuardRejected(err error) bool      { return errors.Is(err, ErrGuardRejected) }
func IsHookFailed(err error) bool         { return errors.Is(err, ErrHookFailed) }
func IsPersistenceFailed(err error) bool  { return errors.Is(err, ErrPersistenceFailed) }
