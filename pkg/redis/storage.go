package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/fsmkit/pkg/audit"
)

// DefaultKeyPrefix namespaces the per-entity log lists.
const DefaultKeyPrefix = "fsm:log"

// Storage is a Redis-backed transition log store. Each entity key maps to a
// list of JSON entries in append (occurrence) order.
type Storage struct {
	client *redis.Client
	prefix string
}

// StorageOption configures the storage.
type StorageOption func(*Storage)

// WithKeyPrefix overrides the default key namespace.
func WithKeyPrefix(prefix string) StorageOption {
	return func(s *Storage) {
		if prefix != "" {
			s.prefix = prefix
		}
	}
}

// NewStorage creates a Storage over the client.
func NewStorage(client *redis.Client, opts ...StorageOption) *Storage {
	if client == nil {
		panic("redis: client cannot be nil")
	}

	s := &Storage{client: client, prefix: DefaultKeyPrefix}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Store appends one log entry to the entity's list.
func (s *Storage) Store(ctx context.Context, entry audit.Entry) error {
	body, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshal transition log entry: %w", err)
	}
	key := s.key(entry.EntityType, entry.EntityID, entry.Attribute)
	if err := s.client.RPush(ctx, key, body).Err(); err != nil {
		return fmt.Errorf("append transition log entry: %w", err)
	}
	return nil
}

// List returns the entries for one entity key in append order.
func (s *Storage) List(ctx context.Context, entityType, entityID, attribute string) ([]audit.Entry, error) {
	key := s.key(entityType, entityID, attribute)
	values, err := s.client.LRange(ctx, key, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("read transition log: %w", err)
	}

	entries := make([]audit.Entry, 0, len(values))
	for _, v := range values {
		var entry audit.Entry
		if err := json.Unmarshal([]byte(v), &entry); err != nil {
			return nil, fmt.Errorf("unmarshal transition log entry: %w", err)
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func (s *Storage) key(entityType, entityID, attribute string) string {
	return fmt.Sprintf("%s:%s:%s:%s", s.prefix, entityType, entityID, attribute)
}
