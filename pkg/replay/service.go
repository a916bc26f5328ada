package replay

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrymomot/fsmkit/pkg/audit"
)

// Service reads the ordered transition log and reconstructs, validates, and
// summarizes state history.
type Service struct {
	storage audit.Storage
}

// NewService creates a replay service over the given log storage.
func NewService(storage audit.Storage) *Service {
	if storage == nil {
		panic("replay: storage cannot be nil")
	}
	return &Service{storage: storage}
}

// Step is one replayed transition.
type Step struct {
	FromState  *string   `json:"from_state"`
	ToState    string    `json:"to_state"`
	Event      string    `json:"event,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Result is the reconstructed history of one entity attribute.
type Result struct {
	InitialState    *string `json:"initial_state"`
	FinalState      *string `json:"final_state"`
	TransitionCount int     `json:"transition_count"`
	Transitions     []Step  `json:"transitions"`
}

// Replay reconstructs the state history for the entity attribute. An empty
// log yields nil initial/final states, a zero count, and an empty list.
func (s *Service) Replay(ctx context.Context, entityType, entityID, attribute string) (*Result, error) {
	entries, err := s.load(ctx, entityType, entityID, attribute)
	if err != nil {
		return nil, err
	}

	res := &Result{Transitions: make([]Step, 0, len(entries))}
	for _, entry := range entries {
		res.Transitions = append(res.Transitions, Step{
			FromState:  entry.FromState,
			ToState:    entry.ToState,
			Event:      entry.Event,
			OccurredAt: entry.CreatedAt,
		})
	}
	res.TransitionCount = len(res.Transitions)
	if len(entries) > 0 {
		res.InitialState = entries[0].FromState
		final := entries[len(entries)-1].ToState
		res.FinalState = &final
	}
	return res, nil
}

// ValidationResult reports chain continuity over the log.
type ValidationResult struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors"`
}

// Validate checks that each entry's from-state equals the previous entry's
// to-state. The first entry's from-state is exempt. Every mismatch is
// recorded; validation does not stop at the first one.
func (s *Service) Validate(ctx context.Context, entityType, entityID, attribute string) (*ValidationResult, error) {
	entries, err := s.load(ctx, entityType, entityID, attribute)
	if err != nil {
		return nil, err
	}

	res := &ValidationResult{Valid: true, Errors: []string{}}
	for i := 1; i < len(entries); i++ {
		prev := entries[i-1].ToState
		from := stateOrNull(entries[i].FromState)
		if from != prev {
			res.Valid = false
			res.Errors = append(res.Errors, fmt.Sprintf(
				"entry %d: from state %q does not match previous to state %q", i, from, prev))
		}
	}
	return res, nil
}

// Statistics summarizes transition counts over the log.
type Statistics struct {
	TotalTransitions    int            `json:"total_transitions"`
	UniqueStates        int            `json:"unique_states"`
	StateFrequency      map[string]int `json:"state_frequency"`
	TransitionFrequency map[string]int `json:"transition_frequency"`
}

// Statistics computes totals, distinct resulting states, and per-state and
// per-pair frequencies. A nil from-state renders as the literal "null" in
// the transition pair key.
func (s *Service) Statistics(ctx context.Context, entityType, entityID, attribute string) (*Statistics, error) {
	entries, err := s.load(ctx, entityType, entityID, attribute)
	if err != nil {
		return nil, err
	}

	stats := &Statistics{
		TotalTransitions:    len(entries),
		StateFrequency:      make(map[string]int),
		TransitionFrequency: make(map[string]int),
	}
	for _, entry := range entries {
		stats.StateFrequency[entry.ToState]++
		pair := fmt.Sprintf("%s → %s", stateOrNull(entry.FromState), entry.ToState)
		stats.TransitionFrequency[pair]++
	}
	stats.UniqueStates = len(stats.StateFrequency)
	return stats, nil
}

// load validates arguments and returns the successful entries in order.
func (s *Service) load(ctx context.Context, entityType, entityID, attribute string) ([]audit.Entry, error) {
	if strings.TrimSpace(entityID) == "" {
		return nil, &ArgumentError{Param: "entityID"}
	}
	if strings.TrimSpace(attribute) == "" {
		return nil, &ArgumentError{Param: "attribute"}
	}

	entries, err := s.storage.List(ctx, entityType, entityID, attribute)
	if err != nil {
		return nil, err
	}

	transitions := entries[:0:0]
	for _, entry := range entries {
		if entry.Result == audit.ResultSuccess {
			transitions = append(transitions, entry)
		}
	}
	return transitions, nil
}

func stateOrNull(s *string) string {
	if s == nil {
		return "null"
	}
	return *s
}
