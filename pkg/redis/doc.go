// Package redis provides the Redis collaborators: a retrying client
// constructor and an append-only audit.Storage keeping one list of entries
// per (entityType, entityID, attribute) key. List append order is the
// occurrence order, which makes the store naturally replay-friendly.
package redis
