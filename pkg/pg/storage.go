package pg

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dmitrymomot/fsmkit/pkg/audit"
)

// Storage is the PostgreSQL-backed transition log store. Writes issued inside
// RunInTransaction join the ambient transaction from the context, so a rolled
// back attempt leaves no log row behind it.
type Storage struct {
	pool *pgxpool.Pool
}

// NewStorage creates a Storage over the pool. Run Migrate first.
func NewStorage(pool *pgxpool.Pool) *Storage {
	if pool == nil {
		panic("pg: pool cannot be nil")
	}
	return &Storage{pool: pool}
}

// querier is satisfied by both pgxpool.Pool and pgx.Tx.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

func (s *Storage) conn(ctx context.Context) querier {
	if tx, ok := TxFromContext(ctx); ok {
		return tx
	}
	return s.pool
}

// Store appends one log entry.
func (s *Storage) Store(ctx context.Context, entry audit.Entry) error {
	contextJSON, err := marshalJSONB(entry.Context)
	if err != nil {
		return fmt.Errorf("marshal entry context: %w", err)
	}
	metadataJSON, err := marshalJSONB(entry.Metadata)
	if err != nil {
		return fmt.Errorf("marshal entry metadata: %w", err)
	}

	_, err = s.conn(ctx).Exec(ctx, `
		INSERT INTO transition_log (
			id, entity_type, entity_id, attribute, from_state, to_state,
			event, result, context, metadata, duration_us, error,
			subject_id, subject_type, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
		entry.ID, entry.EntityType, entry.EntityID, entry.Attribute,
		entry.FromState, entry.ToState, entry.Event, string(entry.Result),
		contextJSON, metadataJSON, entry.Duration.Microseconds(), entry.Error,
		entry.SubjectID, entry.SubjectType, entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert transition log entry: %w", err)
	}
	return nil
}

// List returns the entries for one entity key ordered by occurrence time.
func (s *Storage) List(ctx context.Context, entityType, entityID, attribute string) ([]audit.Entry, error) {
	rows, err := s.conn(ctx).Query(ctx, `
		SELECT id, entity_type, entity_id, attribute, from_state, to_state,
		       event, result, context, metadata, duration_us, error,
		       subject_id, subject_type, created_at
		FROM transition_log
		WHERE entity_type = $1 AND entity_id = $2 AND attribute = $3
		ORDER BY created_at, id`,
		entityType, entityID, attribute,
	)
	if err != nil {
		return nil, fmt.Errorf("query transition log: %w", err)
	}
	defer rows.Close()

	var entries []audit.Entry
	for rows.Next() {
		var (
			entry       audit.Entry
			result      string
			contextRaw  []byte
			metadataRaw []byte
			durationUS  int64
		)
		if err := rows.Scan(
			&entry.ID, &entry.EntityType, &entry.EntityID, &entry.Attribute,
			&entry.FromState, &entry.ToState, &entry.Event, &result,
			&contextRaw, &metadataRaw, &durationUS, &entry.Error,
			&entry.SubjectID, &entry.SubjectType, &entry.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan transition log entry: %w", err)
		}
		entry.Result = audit.Result(result)
		entry.Duration = time.Duration(durationUS) * time.Microsecond
		if err := unmarshalJSONB(contextRaw, &entry.Context); err != nil {
			return nil, fmt.Errorf("unmarshal entry context: %w", err)
		}
		if err := unmarshalJSONB(metadataRaw, &entry.Metadata); err != nil {
			return nil, fmt.Errorf("unmarshal entry metadata: %w", err)
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

func marshalJSONB(m map[string]any) ([]byte, error) {
	if m == nil {
		return nil, nil
	}
	return json.Marshal(m)
}

func unmarshalJSONB(raw []byte, dst *map[string]any) error {
	if len(raw) == 0 {
		return nil
	}
	return json.Unmarshal(raw, dst)
}
