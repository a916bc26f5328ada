package audit

import (
	"context"
	"fmt"
	"time"
)

// Result marks the outcome an Entry records.
type Result string

const (
	ResultSuccess Result = "success"
	ResultFailure Result = "failure"
)

// Entry is one append-only transition log record.
type Entry struct {
	ID          string         `json:"id"`
	EntityType  string         `json:"entity_type"`
	EntityID    string         `json:"entity_id"`
	Attribute   string         `json:"attribute"`
	FromState   *string        `json:"from_state"`
	ToState     string         `json:"to_state"`
	Event       string         `json:"event,omitempty"`
	Result      Result         `json:"result"`
	Context     map[string]any `json:"context,omitempty"`
	Metadata    map[string]any `json:"metadata,omitempty"`
	Duration    time.Duration  `json:"duration"`
	Error       string         `json:"error,omitempty"`
	SubjectID   string         `json:"subject_id,omitempty"`
	SubjectType string         `json:"subject_type,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
}

// Validate checks the entry carries the fields every record needs.
func (e *Entry) Validate() error {
	switch {
	case e.EntityType == "":
		return fmt.Errorf("%w: entity type is required", ErrEntryValidation)
	case e.EntityID == "":
		return fmt.Errorf("%w: entity id is required", ErrEntryValidation)
	case e.Attribute == "":
		return fmt.Errorf("%w: attribute is required", ErrEntryValidation)
	case e.ToState == "":
		return fmt.Errorf("%w: to state is required", ErrEntryValidation)
	}
	return nil
}

// Storage persists and reads back ordered log entries.
type Storage interface {
	Store(ctx context.Context, entry Entry) error
	// List returns the entries for one (entityType, entityID, attribute) key
	// ordered by occurrence time.
	List(ctx context.Context, entityType, entityID, attribute string) ([]Entry, error)
}

// Logger records transition outcomes to a storage backend.
type Logger interface {
	LogSuccess(ctx context.Context, entry Entry) error
	LogFailure(ctx context.Context, entry Entry) error
}
