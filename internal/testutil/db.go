// Package testutil hosts helpers shared by package tests.  It opens a
// private in-memory SQLite database migrated with the real migrations so
// repository, service and handler tests exercise the same schema as
// production.
package testutil

import (
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/iliyamo/superhero-sightings/internal/database"
	"github.com/iliyamo/superhero-sightings/internal/repository"
)

// NewDB returns a migrated in-memory database closed at test cleanup.
func NewDB(t testing.TB) *sqlx.DB {
	t.Helper()
	db, err := database.OpenSQLite(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, database.Migrate(db, zap.NewNop()))
	return db
}

// NewStore returns a Store over a fresh database.
func NewStore(t testing.TB) *repository.Store {
	t.Helper()
	return repository.NewStore(NewDB(t))
}
