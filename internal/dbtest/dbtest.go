// Package dbtest opens migrated in-memory databases for tests.
package dbtest

import (
	"context"
	"database/sql"
	"testing"

	"xnews/pkg/database"
)

// Open returns a private, migrated in-memory database closed at test end.
func Open(t testing.TB) *sql.DB {
	t.Helper()

	db, err := database.Open(database.Config{Path: database.MemoryPath})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := database.Migrate(context.Background(), db); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

// Category inserts a category and returns its id.
func Category(t testing.TB, db *sql.DB, name string) int64 {
	t.Helper()

	res, err := db.ExecContext(context.Background(), `INSERT INTO categories (name) VALUES (?)`, name)
	if err != nil {
		t.Fatalf("insert category %q: %v", name, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		t.Fatalf("category id: %v", err)
	}
	return id
}

// Count returns the number of rows in table.
func Count(t testing.TB, db *sql.DB, table string) int {
	t.Helper()

	var n int
	// table names come from test code only
	if err := db.QueryRowContext(context.Background(), `SELECT COUNT(*) FROM `+table).Scan(&n); err != nil {
		t.Fatalf("count %s: %v", table, err)
	}
	return n
}
