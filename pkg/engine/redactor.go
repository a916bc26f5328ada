package engine

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/dmitrymomot/fsmkit/pkg/fsm"
)

// Redactor strips configured sensitive fields from a context payload before
// it reaches the audit log. Redaction never fails a transition: when a
// payload cannot be rebuilt from the filtered field set, the original is
// returned untouched and a warning is logged. Those are the only two
// outcomes — a fully redacted copy or the original as-is.
type Redactor struct {
	excluded []string
	log      *slog.Logger
}

// NewRedactor creates a redactor for the given excluded field names.
func NewRedactor(excluded []string, log *slog.Logger) *Redactor {
	if log == nil {
		log = slog.Default()
	}
	return &Redactor{excluded: excluded, log: log}
}

// Redact returns the payload with excluded fields removed. A nil payload or
// an empty exclusion list returns the payload unchanged, same instance, with
// no reconstruction attempted.
func (r *Redactor) Redact(p fsm.Payload) fsm.Payload {
	if p == nil || len(r.excluded) == 0 {
		return p
	}

	fields := p.ToMap()
	filtered := make(map[string]any, len(fields))
	for k, v := range fields {
		if !r.isExcluded(k) {
			filtered[k] = v
		}
	}

	mc, ok := p.(fsm.MapConstructible)
	if !ok {
		r.log.Warn("context payload cannot be rebuilt from filtered fields, logging original",
			slog.String("payload_type", fmt.Sprintf("%T", p)))
		return p
	}

	rebuilt, err := mc.FromMap(filtered)
	if err != nil || rebuilt == nil {
		r.log.Warn("context redaction failed, logging original payload",
			slog.String("payload_type", fmt.Sprintf("%T", p)),
			slog.Any("error", err))
		return p
	}
	return rebuilt
}

func (r *Redactor) isExcluded(key string) bool {
	for _, ex := range r.excluded {
		if strings.EqualFold(ex, key) {
			return true
		}
	}
	return false
}
