package logger

import "log/slog"

// Error creates an attribute for a single error under the key "error".
// If err is nil, it returns an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// EntityType records the entity type under the key "entity_type".
func EntityType(name string) slog.Attr {
	return slog.String("entity_type", name)
}

// EntityID records the entity identifier under the key "entity_id".
func EntityID(id string) slog.Attr {
	return slog.String("entity_id", id)
}

// Attribute records the state attribute name under the key "attribute".
func Attribute(name string) slog.Attr {
	return slog.String("attribute", name)
}

// FromState records the source state under the key "from_state".
// A nil value marks an initial transition.
func FromState(state any) slog.Attr {
	if state == nil {
		return slog.Attr{}
	}
	return slog.Any("from_state", state)
}

// ToState records the target state under the key "to_state".
func ToState(state any) slog.Attr {
	return slog.Any("to_state", state)
}

// Event records the triggering event name under the key "event".
func Event(name string) slog.Attr {
	return slog.String("event", name)
}

// Duration records a duration under the key "duration".
func Duration(d any) slog.Attr {
	return slog.Any("duration", d)
}

// Component records the component name under the key "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// JobID records the queue job identifier under the key "job_id".
// If id is nil, it returns an empty Attr.
func JobID(id any) slog.Attr {
	if id == nil {
		return slog.Attr{}
	}
	return slog.Any("job_id", id)
}

// RetryCount records the retry count under the key "retry_count".
func RetryCount(count int) slog.Attr {
	return slog.Int("retry_count", count)
}
