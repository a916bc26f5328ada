package fsm

// Resolve finds the transition matching a current → target request.
//
// Transitions are scanned in declaration order. A candidate matches when its
// target equals the requested target and its from-state equals the current
// state or is the wildcard sentinel. The first exact-from match wins; when
// several transitions declare the same (from, to) pair, the first declared
// one is used. A wildcard match is a fallback returned only when no exact
// match exists. When nothing matches, a NoTransitionError is returned — a
// condition distinct from a guard rejection.
func (d *Definition) Resolve(current, target State) (*Transition, error) {
	var wildcard *Transition
	for i := range d.Transitions {
		t := &d.Transitions[i]
		if !Equal(t.To, target) {
			continue
		}
		if IsWildcard(t.From) {
			if wildcard == nil {
				wildcard = t
			}
			continue
		}
		if Equal(t.From, current) {
			return t, nil
		}
	}
	if wildcard != nil {
		return wildcard, nil
	}
	return nil, NewNoTransitionError(ValueOf(current), ValueOf(target))
}
