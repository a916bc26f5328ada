// Package replay reconstructs state history from the ordered transition log.
//
// The service reads the same storage the audit logger writes to and never
// calls back into the engine. Failed attempts recorded in the log did not
// change state, so all three operations consider successful entries only.
// The service is read-only and side-effect-free; it is safe for concurrent
// use by multiple readers.
package replay
