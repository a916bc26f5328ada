// Package pg provides the PostgreSQL collaborators: a pgx connection pool
// with retry logic, goose-driven schema migrations for the transition log
// table, a durable audit.Storage implementation, and a Transactor that runs
// engine work inside a single database transaction shared through the
// context.
package pg
