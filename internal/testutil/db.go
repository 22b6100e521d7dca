package testutil

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/roach88/chatstate/internal/database"
)

// PostgresDSNEnv names the environment variable that enables PostgreSQL
// tests.
const PostgresDSNEnv = "CHATSTATE_TEST_POSTGRES_DSN"

// OpenSQLite opens a fresh, migrated SQLite database in a temp dir using
// driver (database.DriverSQLite3 or database.DriverSQLite). The database is
// closed when the test ends.
func OpenSQLite(t testing.TB, driver string) *database.DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "state.db")
	db, err := database.Open(context.Background(), database.Config{Driver: driver, DSN: path})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

// OpenPostgres opens the PostgreSQL database named by PostgresDSNEnv, or
// skips the test when the variable is unset.
func OpenPostgres(t testing.TB) *database.DB {
	t.Helper()
	dsn := os.Getenv(PostgresDSNEnv)
	if dsn == "" {
		t.Skip(PostgresDSNEnv + " not set")
	}
	db, err := database.Open(context.Background(), database.Config{Driver: database.DriverPostgres, DSN: dsn})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}
