// Package testdb locates and opens the Postgres database used by
// integration tests. Tests skip when no database is configured, except in
// CI where a missing database is a failure.
package testdb
