package testsupport

import (
	"context"
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	"github.com/goliatone/go-fpl-sync/repository"
)

// OpenDB returns an in-memory sqlite bun handle with the entity tables
// created. The handle is closed when the test finishes.
func OpenDB(t *testing.T) *bun.DB {
	t.Helper()

	sqldb, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	sqldb.SetMaxOpenConns(1)

	db := bun.NewDB(sqldb, sqlitedialect.New())
	t.Cleanup(func() { db.Close() })

	if err := repository.CreateTables(context.Background(), db); err != nil {
		t.Fatalf("failed to create tables: %v", err)
	}
	return db
}
