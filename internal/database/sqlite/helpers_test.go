package sqlite

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tradepost-hq/tradepost/internal/database"
)

// openTestDB opens a fresh migrated cache database in a temp directory.
func openTestDB(t *testing.T) *sql.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "cache.db")
	db, err := database.Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, database.RunMigrations(db))
	return db
}
