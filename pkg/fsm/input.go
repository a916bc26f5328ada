package fsm

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// Payload is an arbitrary serializable context value carried through a
// transition attempt and into the audit log.
type Payload interface {
	ToMap() map[string]any
}

// MapConstructible is implemented by payloads that can rebuild themselves
// from a keyed field set, e.g. after redaction or queue-boundary hydration.
// The factory receives the filtered fields and returns the rebuilt payload.
type MapConstructible interface {
	FromMap(fields map[string]any) (Payload, error)
}

// MapPayload is a plain keyed payload.
type MapPayload map[string]any

func (p MapPayload) ToMap() map[string]any {
	m := make(map[string]any, len(p))
	for k, v := range p {
		m[k] = v
	}
	return m
}

func (p MapPayload) FromMap(fields map[string]any) (Payload, error) {
	return MapPayload(fields), nil
}

// Input is the canonical named-value bag handed to every guard, action and
// callback of one transition attempt. It is constructed fresh per attempt and
// never mutated after construction.
type Input struct {
	Entity    any
	From      State
	To        State
	Context   Payload
	Event     string
	DryRun    bool
	Mode      string
	Source    string
	Metadata  map[string]any
	Timestamp time.Time
}

// Bag exposes the input fields under stable names for parameter binding.
// A nil from-state and a nil context stay nil rather than collapsing to
// empty values.
func (in *Input) Bag() map[string]any {
	bag := map[string]any{
		"entity":     in.Entity,
		"to_state":   ValueOf(in.To),
		"event":      in.Event,
		"is_dry_run": in.DryRun,
		"mode":       in.Mode,
		"source":     in.Source,
		"metadata":   in.Metadata,
		"timestamp":  in.Timestamp,
	}
	if in.From != nil {
		bag["from_state"] = in.From.Value()
	} else {
		bag["from_state"] = nil
	}
	if in.Context != nil {
		bag["context"] = in.Context.ToMap()
	} else {
		bag["context"] = nil
	}
	return bag
}

// MarshalMap renders the input as a serializable map for queued hook
// payloads. The context payload travels under a class discriminator so a
// worker can rebuild the typed value on the other side of the boundary. The
// live entity reference is replaced by its type and id when it exposes them.
func (in *Input) MarshalMap() map[string]any {
	m := map[string]any{
		"to_state":   ValueOf(in.To),
		"event":      in.Event,
		"is_dry_run": in.DryRun,
		"mode":       in.Mode,
		"source":     in.Source,
		"metadata":   in.Metadata,
		"timestamp":  in.Timestamp.Format(time.RFC3339Nano),
	}
	if in.From != nil {
		m["from_state"] = in.From.Value()
	}
	if ref, ok := in.Entity.(interface {
		EntityType() string
		EntityID() string
	}); ok {
		m["entity_type"] = ref.EntityType()
		m["entity_id"] = ref.EntityID()
	}
	if in.Context != nil {
		m["context"] = map[string]any{
			"class": payloadClass(in.Context),
			"data":  in.Context.ToMap(),
		}
	}
	return m
}

// HydrateInput rebuilds an Input from its serialized map form. The context
// class discriminator must be a string; anything else fails with a
// HydrationError naming the runtime type actually received. Unregistered
// classes hydrate as a MapPayload of the raw fields.
func HydrateInput(raw map[string]any) (*Input, error) {
	in := &Input{}
	if v, ok := raw["from_state"].(string); ok {
		in.From = StringState(v)
	}
	if v, ok := raw["to_state"].(string); ok {
		in.To = StringState(v)
	}
	if v, ok := raw["event"].(string); ok {
		in.Event = v
	}
	if v, ok := raw["mode"].(string); ok {
		in.Mode = v
	}
	if v, ok := raw["source"].(string); ok {
		in.Source = v
	}
	if v, ok := raw["is_dry_run"].(bool); ok {
		in.DryRun = v
	}
	if v, ok := raw["metadata"].(map[string]any); ok {
		in.Metadata = v
	}
	if v, ok := raw["timestamp"].(string); ok {
		if ts, err := time.Parse(time.RFC3339Nano, v); err == nil {
			in.Timestamp = ts
		}
	}

	rawCtx, ok := raw["context"]
	if !ok || rawCtx == nil {
		return in, nil
	}
	ctxMap, ok := rawCtx.(map[string]any)
	if !ok {
		return nil, NewHydrationError(rawCtx)
	}
	class, ok := ctxMap["class"].(string)
	if !ok {
		return nil, NewHydrationError(ctxMap["class"])
	}
	data, _ := ctxMap["data"].(map[string]any)
	if factory := lookupPayload(class); factory != nil {
		p, err := factory(data)
		if err != nil {
			return nil, fmt.Errorf("%w: class %q: %w", ErrContextHydration, class, err)
		}
		in.Context = p
		return in, nil
	}
	in.Context = MapPayload(data)
	return in, nil
}

var payloadRegistry = struct {
	mu        sync.RWMutex
	factories map[string]func(map[string]any) (Payload, error)
}{factories: make(map[string]func(map[string]any) (Payload, error))}

// RegisterPayload associates a class discriminator with a payload factory so
// hydrated inputs can rebuild typed context values.
func RegisterPayload(class string, factory func(map[string]any) (Payload, error)) {
	if class == "" || factory == nil {
		return
	}
	payloadRegistry.mu.Lock()
	payloadRegistry.factories[class] = factory
	payloadRegistry.mu.Unlock()
}

func lookupPayload(class string) func(map[string]any) (Payload, error) {
	payloadRegistry.mu.RLock()
	defer payloadRegistry.mu.RUnlock()
	return payloadRegistry.factories[class]
}

func payloadClass(p Payload) string {
	return strings.TrimLeft(fmt.Sprintf("%T", p), "*")
}
