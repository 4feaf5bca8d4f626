// Package history stores finished crawl runs in SQLite.
//
// Each saved run is a model.RunReport identified by a UUID. Only results
// are stored: a crawl never resumes from history, it only compares
// against it.
//
// Design decision: We use SQLite (via modernc.org/sqlite) instead of other
// databases because:
// 1. No external dependencies - the database is a single file
// 2. CGO-free implementation allows easy cross-compilation
// 3. WAL mode lets "compare" read while a crawl writes
package history
