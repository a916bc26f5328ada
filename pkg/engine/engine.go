package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dmitrymomot/fsmkit/pkg/audit"
	"github.com/dmitrymomot/fsmkit/pkg/dispatch"
	"github.com/dmitrymomot/fsmkit/pkg/fsm"
)

// Engine executes transition attempts against entity attributes. Construct
// with New; collaborators are injected through options and never reached for
// globally.
type Engine struct {
	registry   Registry
	persister  Persister
	transactor Transactor
	auditor    audit.Logger
	metrics    Metrics
	enqueuer   Enqueuer
	dispatcher *dispatch.Dispatcher
	redactor   *Redactor
	cfg        Config
	log        *slog.Logger
}

// New creates a transition engine with the required collaborators.
func New(registry Registry, persister Persister, opts ...Option) (*Engine, error) {
	if registry == nil {
		return nil, ErrNilRegistry
	}
	if persister == nil {
		return nil, ErrNilPersister
	}

	e := &Engine{
		registry:  registry,
		persister: persister,
		cfg:       DefaultConfig(),
		log:       slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.dispatcher == nil {
		e.dispatcher = dispatch.NewDispatcher(nil)
	}
	e.redactor = NewRedactor(e.cfg.ExcludedContextProperties, e.log)
	return e, nil
}

// attempt carries the state of one transition attempt across engine phases.
// requested keeps the caller's target value untouched for error reporting.
type attempt struct {
	entity    Entity
	attribute string
	def       *fsm.Definition
	tr        *fsm.Transition
	prev      fsm.State
	requested fsm.State
	in        *fsm.Input
	start     time.Time
}

// Transition runs one synchronous transition attempt and returns the mutated,
// persisted entity on success. On failure a *TransitionError is returned; the
// attribute is guaranteed to hold its pre-attempt value only when
// transactional mode is enabled.
//
// Requesting the current state with no declared loopback transition is an
// idempotent no-op: the same instance comes back unsaved and unchanged, and
// nothing is logged.
func (e *Engine) Transition(ctx context.Context, entity Entity, attribute string, to fsm.State, opts ...TransitionOption) (Entity, error) {
	a := &attempt{
		entity:    entity,
		attribute: attribute,
		prev:      entity.State(attribute),
		requested: to,
		start:     time.Now(),
	}

	def, err := e.registry.Definition(entity.EntityType(), attribute)
	if err != nil {
		return nil, e.fail(ctx, a, newTransitionError(ErrDefinitionNotFound, fsm.ValueOf(a.prev), to, "", err))
	}
	a.def = def

	tr, err := def.Resolve(a.prev, to)
	if err != nil {
		if fsm.Equal(a.prev, to) {
			return entity, nil
		}
		return nil, e.fail(ctx, a, newTransitionError(ErrNoTransitionAvailable, fsm.ValueOf(a.prev), to, "", err))
	}
	a.tr = tr
	a.in = buildInput(entity, a.prev, tr.To, false, opts)

	if terr := e.evaluateGuards(ctx, a); terr != nil {
		return nil, e.fail(ctx, a, terr)
	}

	if terr := e.execute(ctx, a); terr != nil {
		return nil, e.fail(ctx, a, terr)
	}

	e.logSuccess(ctx, a)
	e.record(ctx, "fsm.transition.success", a)
	return entity, nil
}

// DryRunResult reports resolvability and guard outcome without side effects.
type DryRunResult struct {
	CanTransition bool   `json:"can_transition"`
	FromState     string `json:"from_state"`
	ToState       string `json:"to_state"`
	Message       string `json:"message"`
}

// DryRun evaluates resolution and guards for a prospective transition with no
// mutation, persistence, hooks, or logging. Guards see IsDryRun set on the
// input. Only a missing definition is an error; unresolvable or rejected
// transitions come back as a result with CanTransition false.
func (e *Engine) DryRun(ctx context.Context, entity Entity, attribute string, to fsm.State, opts ...TransitionOption) (*DryRunResult, error) {
	current := entity.State(attribute)
	res := &DryRunResult{
		FromState: fsm.ValueOf(current),
		ToState:   fsm.ValueOf(to),
	}

	def, err := e.registry.Definition(entity.EntityType(), attribute)
	if err != nil {
		return nil, newTransitionError(ErrDefinitionNotFound, res.FromState, to, "", err)
	}

	tr, err := def.Resolve(current, to)
	if err != nil {
		if fsm.Equal(current, to) {
			res.CanTransition = true
			res.Message = fmt.Sprintf("entity already in state %q; request is a no-op", res.ToState)
			return res, nil
		}
		res.Message = fmt.Sprintf("no transition declared from %q to %q", res.FromState, res.ToState)
		return res, nil
	}

	a := &attempt{
		entity:    entity,
		attribute: attribute,
		def:       def,
		tr:        tr,
		prev:      current,
		requested: to,
		in:        buildInput(entity, current, tr.To, true, opts),
		start:     time.Now(),
	}
	if terr := e.evaluateGuards(ctx, a); terr != nil {
		res.Message = fmt.Sprintf("guard %q rejected the transition", terr.Label)
		return res, nil
	}

	res.CanTransition = true
	res.Message = fmt.Sprintf("transition from %q to %q is allowed", res.FromState, res.ToState)
	return res, nil
}

func buildInput(entity Entity, from, to fsm.State, dryRun bool, opts []TransitionOption) *fsm.Input {
	in := &fsm.Input{
		Entity:    entity,
		From:      from,
		To:        to,
		DryRun:    dryRun,
		Timestamp: time.Now(),
	}
	for _, opt := range opts {
		opt(in)
	}
	return in
}

// evaluateGuards runs the transition's guards in ascending priority order.
// The first failing guard with StopOnFailure aborts evaluation immediately
// and reports its label; otherwise every guard runs and the first recorded
// failure reports. Any failure prevents the transition.
func (e *Engine) evaluateGuards(ctx context.Context, a *attempt) *TransitionError {
	bag := a.in.Bag()
	var failed *fsm.Guard
	for _, g := range fsm.SortGuards(a.tr.Guards) {
		if e.guardPasses(ctx, g, bag) {
			continue
		}
		if g.StopOnFailure {
			g := g
			failed = &g
			break
		}
		if failed == nil {
			g := g
			failed = &g
		}
	}
	if failed != nil {
		return newTransitionError(ErrGuardRejected, fsm.ValueOf(a.prev), a.requested, failed.Label, nil)
	}
	return nil
}

// guardPasses runs one guard. Only the untyped boolean true passes; an error
// result or a panicking callable counts as a failing guard, not a crash.
func (e *Engine) guardPasses(ctx context.Context, g fsm.Guard, bag map[string]any) (pass bool) {
	defer func() {
		if r := recover(); r != nil {
			e.log.WarnContext(ctx, "guard panicked, treating as failed",
				slog.String("guard", g.Label), slog.Any("panic", r))
			pass = false
		}
	}()

	res, err := e.dispatcher.Invoke(ctx, g.Callable, bag)
	if err != nil {
		if e.cfg.Debug {
			e.log.DebugContext(ctx, "guard returned error",
				slog.String("guard", g.Label), slog.Any("error", err))
		}
		return false
	}
	b, ok := res.(bool)
	return ok && b
}

// execute runs the mutate/hook/persist phases, transactionally when enabled.
// With transactions on, the in-memory attribute is restored to its
// pre-attempt value on any failure; without them the attribute may stay
// mutated and recovery is the caller's responsibility.
func (e *Engine) execute(ctx context.Context, a *attempt) *TransitionError {
	work := func(ctx context.Context) error {
		a.entity.SetState(a.attribute, a.tr.To)
		if err := e.runHooks(ctx, a); err != nil {
			return err
		}
		if err := e.persister.Save(ctx, a.entity); err != nil {
			return newTransitionError(ErrPersistenceFailed, fsm.ValueOf(a.prev), a.requested, "", err)
		}
		return nil
	}

	var err error
	if e.cfg.UseTransactions && e.transactor != nil {
		err = e.transactor.RunInTransaction(ctx, work)
		if err != nil {
			a.entity.SetState(a.attribute, a.prev)
		}
	} else {
		err = work(ctx)
	}
	if err == nil {
		return nil
	}

	var terr *TransitionError
	if !errors.As(err, &terr) {
		// Only the transaction boundary itself produces untyped errors here.
		terr = newTransitionError(ErrPersistenceFailed, fsm.ValueOf(a.prev), a.requested, "", err)
	}
	return terr
}

// runHooks executes, in order: the prior state's exit callbacks, the
// transition's actions, its on-transition callbacks, and the new state's
// entry callbacks.
func (e *Engine) runHooks(ctx context.Context, a *attempt) error {
	if sd, ok := a.def.StateDef(a.prev); ok {
		if err := e.runHookList(ctx, sd.OnExit, a); err != nil {
			return err
		}
	}
	if err := e.runHookList(ctx, a.tr.Actions, a); err != nil {
		return err
	}
	if err := e.runHookList(ctx, a.tr.OnTransition, a); err != nil {
		return err
	}
	if sd, ok := a.def.StateDef(a.tr.To); ok {
		if err := e.runHookList(ctx, sd.OnEnter, a); err != nil {
			return err
		}
	}
	return nil
}

func (e *Engine) runHookList(ctx context.Context, hooks []fsm.Hook, a *attempt) error {
	for _, h := range hooks {
		if err := e.runHook(ctx, h, a); err != nil {
			return newTransitionError(ErrHookFailed, fsm.ValueOf(a.prev), a.requested, h.Label, err)
		}
	}
	return nil
}

func (e *Engine) runHook(ctx context.Context, h fsm.Hook, a *attempt) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("hook panicked: %v", r)
		}
	}()

	if h.Queued {
		ref, err := h.Callable.Ref()
		if err != nil {
			// NewHook rejects these at definition time; this is the
			// dispatch-time backstop for hand-built hooks.
			return err
		}
		if e.enqueuer == nil {
			return ErrNoEnqueuer
		}
		return e.enqueuer.Enqueue(ctx, ref, a.in.MarshalMap())
	}

	_, err = e.dispatcher.Invoke(ctx, h.Callable, a.in.Bag())
	return err
}

// fail finalizes a failed attempt: audit-log it (when configured), emit the
// failure metric, and hand the error back.
func (e *Engine) fail(ctx context.Context, a *attempt, terr *TransitionError) error {
	if e.auditor != nil && e.cfg.LoggingEnabled && e.cfg.LogFailures {
		entry := e.buildEntry(a, terr.Error())
		if err := e.auditor.LogFailure(ctx, entry); err != nil {
			e.log.DebugContext(ctx, "audit failure entry dropped", slog.Any("error", err))
		}
	}
	e.record(ctx, "fsm.transition.failure", a)
	return terr
}

func (e *Engine) logSuccess(ctx context.Context, a *attempt) {
	if e.auditor == nil || !e.cfg.LoggingEnabled {
		return
	}
	if err := e.auditor.LogSuccess(ctx, e.buildEntry(a, "")); err != nil {
		e.log.DebugContext(ctx, "audit success entry dropped", slog.Any("error", err))
	}
}

// buildEntry assembles the redacted audit record for the attempt.
func (e *Engine) buildEntry(a *attempt, errSummary string) audit.Entry {
	entry := audit.Entry{
		EntityType: a.entity.EntityType(),
		EntityID:   a.entity.EntityID(),
		Attribute:  a.attribute,
		ToState:    fsm.ValueOf(a.requested),
		Duration:   time.Since(a.start),
		Error:      errSummary,
	}
	if a.tr != nil {
		entry.ToState = fsm.ValueOf(a.tr.To)
	}
	if a.prev != nil {
		v := a.prev.Value()
		entry.FromState = &v
	}
	if a.in != nil {
		entry.Event = a.in.Event
		entry.Metadata = a.in.Metadata
		if p := e.redactor.Redact(a.in.Context); p != nil {
			entry.Context = p.ToMap()
		}
	}
	return entry
}

// record emits one metrics event. The collaborator is isolated: a panic is
// swallowed so metric failures can never mask the transition outcome.
func (e *Engine) record(ctx context.Context, event string, a *attempt) {
	if e.metrics == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			e.log.WarnContext(ctx, "metrics emission failed", slog.Any("panic", r))
		}
	}()

	to := fsm.ValueOf(a.requested)
	if a.tr != nil {
		to = fsm.ValueOf(a.tr.To)
	}
	e.metrics.Record(event, map[string]string{
		"entity_type": a.entity.EntityType(),
		"attribute":   a.attribute,
		"from":        fsm.ValueOf(a.prev),
		"to":          to,
	})
}
