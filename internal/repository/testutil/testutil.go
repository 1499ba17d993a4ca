package testutil

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"grammarguide/internal/db"
	"grammarguide/internal/model"
	"grammarguide/internal/repository"
)

// NewTestDB opens a migrated sqlite entry store in a temp dir.
func NewTestDB(t *testing.T) *sqlx.DB {
	t.Helper()
	conn, err := db.Open(context.Background(), db.Config{
		Driver: db.DriverSQLite,
		DSN:    filepath.Join(t.TempDir(), "grammar.db"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

// NewLocalTestDB opens a migrated client state database in a temp dir.
func NewLocalTestDB(t *testing.T) *sqlx.DB {
	t.Helper()
	conn, err := db.OpenLocal(context.Background(), filepath.Join(t.TempDir(), "state.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

// SeedEntry inserts an entry through the repository and returns it with its ID.
func SeedEntry(t *testing.T, conn *sqlx.DB, entry model.Entry) model.Entry {
	t.Helper()
	if entry.Definition == "" {
		entry.Definition = "definition of " + entry.Title
	}
	if entry.Category == "" {
		entry.Category = model.CategoryTense
	}
	stored, err := repository.NewEntryRepository(conn).Insert(context.Background(), entry)
	require.NoError(t, err)
	return stored
}
