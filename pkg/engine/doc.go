// Package engine executes state transitions for persisted entities.
//
// One call to Engine.Transition runs a single attempt synchronously:
// resolve the transition (exact match first, wildcard fallback), evaluate
// guards in priority order, mutate the attribute on the in-memory entity,
// run exit/action/entry hooks, persist through the collaborator, then write
// a redacted audit entry and emit metrics. With transactions enabled the
// mutate/hook/persist phases run inside the transaction collaborator and the
// attribute is restored to its pre-attempt value on failure.
//
// Requesting the state an entity is already in, with no declared loopback,
// is an idempotent no-op: the same instance is returned unsaved and
// unchanged. DryRun evaluates resolvability and guards only, with no side
// effects.
//
// All collaborators — definition registry, persister, transactor, audit
// logger, metrics, deferred-execution enqueuer — are injected explicitly.
// Audit, redaction and metrics failures degrade locally and never change a
// transition's outcome.
//
// The engine does not coordinate concurrent attempts against the same
// entity instance; exclusivity is the caller's or the persistence layer's
// concern.
package engine
