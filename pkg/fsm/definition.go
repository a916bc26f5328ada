package fsm

import (
	"fmt"
	"sort"

	"github.com/dmitrymomot/fsmkit/pkg/dispatch"
)

// Guard is a predicate evaluated before a transition proceeds. Guards run in
// ascending Priority order with declaration order breaking ties. A guard
// passes only when its callable returns the untyped boolean true; any other
// result, an error, or a panic counts as a failure.
type Guard struct {
	Label         string
	Callable      dispatch.Callable
	Priority      int
	StopOnFailure bool
}

// Hook is a side-effecting callable attached to a transition (action) or to
// state entry/exit (callback). A queued hook crosses an execution boundary
// and therefore requires a static type@method reference.
type Hook struct {
	Label    string
	Callable dispatch.Callable
	Queued   bool
	Metadata map[string]any
}

// NewHook builds a hook, rejecting queued hooks whose callable cannot be
// rendered as a portable reference. The rejection happens here, at definition
// time, rather than at dispatch time.
func NewHook(label string, c dispatch.Callable, queued bool) (Hook, error) {
	if queued && !c.Queueable() {
		return Hook{}, fmt.Errorf("%w: hook %q uses a %s callable", ErrNotQueueable, label, c)
	}
	return Hook{Label: label, Callable: c, Queued: queued}, nil
}

// MustHook is NewHook that panics on error, for package-level wiring.
func MustHook(label string, c dispatch.Callable, queued bool) Hook {
	h, err := NewHook(label, c, queued)
	if err != nil {
		panic(err)
	}
	return h
}

// StateDefinition describes one declared state: its identifier, optional
// display label, and ordered entry/exit callbacks.
type StateDefinition struct {
	State   State
	Label   string
	OnEnter []Hook
	OnExit  []Hook
}

// Transition declares a permitted state change. From may be nil (no prior
// state), Wildcard (any state), or a concrete state. Guards, Actions and
// OnTransition callbacks keep their declaration order.
type Transition struct {
	From         State
	To           State
	Event        string
	Guards       []Guard
	Actions      []Hook
	OnTransition []Hook
}

// Definition is the immutable runtime description of one attribute's state
// machine for one entity type. Built once; read-only during engine operation.
type Definition struct {
	EntityType  string
	Attribute   string
	States      []StateDefinition
	Transitions []Transition
	Initial     State
}

// StateDef returns the declared definition for a state, if any.
func (d *Definition) StateDef(s State) (*StateDefinition, bool) {
	for i := range d.States {
		if Equal(d.States[i].State, s) {
			return &d.States[i], true
		}
	}
	return nil, false
}

// SortGuards returns guards ordered by ascending priority, preserving
// declaration order for equal priorities. The input slice is not modified.
func SortGuards(guards []Guard) []Guard {
	sorted := make([]Guard, len(guards))
	copy(sorted, guards)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Priority < sorted[j].Priority
	})
	return sorted
}
