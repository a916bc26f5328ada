// Package audit records transition attempts as append-only log entries.
//
// The engine builds one Entry per attempt — success or failure — with the
// context payload already redacted, and forwards it through a Logger to a
// Storage backend. Entries are never mutated after they are stored; the
// replay package reads the same Storage to reconstruct state history.
//
// In-memory storage ships here for tests and local development; durable
// backends live in the pg, mongo and redis packages.
package audit
