// Package fsm holds the immutable definition model for attribute state
// machines: states, transitions, guards, hooks, and the canonical transition
// input handed to every callable during an attempt.
//
// A Definition describes one attribute of one entity type. It is built once,
// owned by a definition registry, and read-only during engine operation.
// State identity is always the primitive key returned by State.Value; two
// states compare equal when their keys match, never by instance identity.
//
// Transition lookup follows declaration order: the first transition whose
// from-state matches the current state exactly wins, and wildcard transitions
// are a fallback used only when no exact match exists.
package fsm
