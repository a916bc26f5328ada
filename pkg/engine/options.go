package engine

import (
	"log/slog"

	"github.com/dmitrymomot/fsmkit/pkg/audit"
	"github.com/dmitrymomot/fsmkit/pkg/dispatch"
	"github.com/dmitrymomot/fsmkit/pkg/fsm"
)

// Option configures the engine during construction.
type Option func(*Engine)

// WithConfig replaces the default engine configuration.
func WithConfig(cfg Config) Option {
	return func(e *Engine) { e.cfg = cfg }
}

// WithTransactor installs the transaction collaborator. It is only exercised
// when Config.UseTransactions is set.
func WithTransactor(tx Transactor) Option {
	return func(e *Engine) { e.transactor = tx }
}

// WithAuditLogger installs the audit logging collaborator.
func WithAuditLogger(l audit.Logger) Option {
	return func(e *Engine) { e.auditor = l }
}

// WithMetrics installs the metrics collaborator.
func WithMetrics(m Metrics) Option {
	return func(e *Engine) { e.metrics = m }
}

// WithEnqueuer installs the deferred-execution collaborator for queued hooks.
func WithEnqueuer(q Enqueuer) Option {
	return func(e *Engine) { e.enqueuer = q }
}

// WithHookRegistry installs the registry static hook references resolve
// through.
func WithHookRegistry(r *dispatch.Registry) Option {
	return func(e *Engine) { e.dispatcher = dispatch.NewDispatcher(r) }
}

// WithLogger sets the structured logger used for degraded-path reporting.
// Nil loggers are ignored.
func WithLogger(log *slog.Logger) Option {
	return func(e *Engine) {
		if log != nil {
			e.log = log
		}
	}
}

// TransitionOption customizes one transition attempt's input.
type TransitionOption func(*fsm.Input)

// WithEvent names the event triggering the transition.
func WithEvent(name string) TransitionOption {
	return func(in *fsm.Input) { in.Event = name }
}

// WithContext attaches the context payload handed to guards and hooks and,
// redacted, to the audit log.
func WithContext(p fsm.Payload) TransitionOption {
	return func(in *fsm.Input) { in.Context = p }
}

// WithMetadata adds one metadata key to the attempt.
func WithMetadata(key string, value any) TransitionOption {
	return func(in *fsm.Input) {
		if in.Metadata == nil {
			in.Metadata = make(map[string]any)
		}
		in.Metadata[key] = value
	}
}

// WithMode tags the attempt with an execution mode.
func WithMode(mode string) TransitionOption {
	return func(in *fsm.Input) { in.Mode = mode }
}

// WithSource tags the attempt with its originating source.
func WithSource(source string) TransitionOption {
	return func(in *fsm.Input) { in.Source = source }
}
