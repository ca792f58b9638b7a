// Package testdb provides helpers for tests that need a real PostgreSQL
// database. Tests using it carry the integration build tag and are skipped
// unless a test database URL is configured.
package testdb
