package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/dmitrymomot/fsmkit/pkg/audit"
)

// DefaultCollection is the collection name used when none is specified.
const DefaultCollection = "transition_log"

// Storage is the MongoDB-backed transition log store.
type Storage struct {
	coll *mongo.Collection
}

// NewStorage creates a Storage over the database. An empty collection name
// falls back to DefaultCollection.
func NewStorage(db *mongo.Database, collection string) *Storage {
	if db == nil {
		panic("mongo: database cannot be nil")
	}
	if collection == "" {
		collection = DefaultCollection
	}
	return &Storage{coll: db.Collection(collection)}
}

// entryDoc mirrors audit.Entry with bson tags and a driver-friendly duration.
type entryDoc struct {
	ID          string         `bson:"_id"`
	EntityType  string         `bson:"entity_type"`
	EntityID    string         `bson:"entity_id"`
	Attribute   string         `bson:"attribute"`
	FromState   *string        `bson:"from_state"`
	ToState     string         `bson:"to_state"`
	Event       string         `bson:"event,omitempty"`
	Result      string         `bson:"result"`
	Context     map[string]any `bson:"context,omitempty"`
	Metadata    map[string]any `bson:"metadata,omitempty"`
	DurationUS  int64          `bson:"duration_us"`
	Error       string         `bson:"error,omitempty"`
	SubjectID   string         `bson:"subject_id,omitempty"`
	SubjectType string         `bson:"subject_type,omitempty"`
	CreatedAt   time.Time      `bson:"created_at"`
}

// Store appends one log entry.
func (s *Storage) Store(ctx context.Context, entry audit.Entry) error {
	doc := entryDoc{
		ID:          entry.ID,
		EntityType:  entry.EntityType,
		EntityID:    entry.EntityID,
		Attribute:   entry.Attribute,
		FromState:   entry.FromState,
		ToState:     entry.ToState,
		Event:       entry.Event,
		Result:      string(entry.Result),
		Context:     entry.Context,
		Metadata:    entry.Metadata,
		DurationUS:  entry.Duration.Microseconds(),
		Error:       entry.Error,
		SubjectID:   entry.SubjectID,
		SubjectType: entry.SubjectType,
		CreatedAt:   entry.CreatedAt,
	}
	if _, err := s.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert transition log entry: %w", err)
	}
	return nil
}

// List returns the entries for one entity key ordered by occurrence time.
func (s *Storage) List(ctx context.Context, entityType, entityID, attribute string) ([]audit.Entry, error) {
	filter := bson.M{
		"entity_type": entityType,
		"entity_id":   entityID,
		"attribute":   attribute,
	}
	cursor, err := s.coll.Find(ctx, filter,
		options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("query transition log: %w", err)
	}
	defer cursor.Close(ctx)

	var entries []audit.Entry
	for cursor.Next(ctx) {
		var doc entryDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode transition log entry: %w", err)
		}
		entries = append(entries, audit.Entry{
			ID:          doc.ID,
			EntityType:  doc.EntityType,
			EntityID:    doc.EntityID,
			Attribute:   doc.Attribute,
			FromState:   doc.FromState,
			ToState:     doc.ToState,
			Event:       doc.Event,
			Result:      audit.Result(doc.Result),
			Context:     doc.Context,
			Metadata:    doc.Metadata,
			Duration:    time.Duration(doc.DurationUS) * time.Microsecond,
			Error:       doc.Error,
			SubjectID:   doc.SubjectID,
			SubjectType: doc.SubjectType,
			CreatedAt:   doc.CreatedAt,
		})
	}
	return entries, cursor.Err()
}

// Healthcheck returns a closure validating server connectivity.
func Healthcheck(client *mongo.Client) func(context.Context) error {
	return func(ctx context.Context) error {
		if err := client.Ping(ctx, nil); err != nil {
			return fmt.Errorf("%w: %w", ErrHealthcheckFailed, err)
		}
		return nil
	}
}
