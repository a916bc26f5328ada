// Package mongo provides the MongoDB collaborators: a retrying client
// constructor and a durable audit.Storage implementation for the transition
// log.
package mongo
