// Package sqlstore is a reference implementation of execcache.Store backed
// by github.com/uptrace/bun, exercised against SQLite
// (github.com/mattn/go-sqlite3) in tests and against
// PostgreSQL (github.com/lib/pq) in production deployments. It exists so
// the cache's contract against a durable collaborator can be checked
// end-to-end; its schema and query plans are not part of the cache's
// correctness surface.
package sqlstore
