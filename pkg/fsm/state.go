package fsm

// State is a state identifier with a stable primitive key. Comparisons always
// operate on the key, never on instance identity, so enum-like value types and
// plain strings can be mixed freely.
type State interface {
	Value() string
}

// StringState is the simplest State implementation for string-keyed machines.
type StringState string

func (s StringState) Value() string { return string(s) }

// Wildcard is the sentinel from-state matching any current state when no
// exact match exists for the requested target.
const Wildcard = StringState("*")

// Equal reports whether two states share the same primitive key. Two nil
// states (meaning "no prior state") are equal.
func Equal(a, b State) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Value() == b.Value()
}

// IsWildcard reports whether s is the any-state sentinel.
func IsWildcard(s State) bool {
	return s != nil && s.Value() == Wildcard.Value()
}

// ValueOf returns the primitive key of s, or the empty string for nil.
func ValueOf(s State) string {
	if s == nil {
		return ""
	}
	return s.Value()
}
