package db

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestOpen(t *testing.T) {
	t.Run("opens database successfully", func(t *testing.T) {
		tmpDir := t.TempDir()
		dbPath := filepath.Join(tmpDir, "test.db")

		db, err := Open(dbPath, nil)
		require.NoError(t, err)
		require.NotNil(t, db)
		defer db.Close()

		// Verify WAL mode enabled
		var journalMode string
		err = db.QueryRow("PRAGMA journal_mode").Scan(&journalMode)
		require.NoError(t, err)
		assert.Equal(t, "wal", journalMode)

		// Verify foreign keys enabled
		var foreignKeys int
		err = db.QueryRow("PRAGMA foreign_keys").Scan(&foreignKeys)
		require.NoError(t, err)
		assert.Equal(t, 1, foreignKeys)

		// Verify busy timeout set
		var busyTimeout int
		err = db.QueryRow("PRAGMA busy_timeout").Scan(&busyTimeout)
		require.NoError(t, err)
		assert.Equal(t, SQLiteBusyTimeoutMS, busyTimeout)
	})

	t.Run("returns error for invalid path", func(t *testing.T) {
		invalidPath := "/invalid/nonexistent/path/db.sqlite"

		db, err := Open(invalidPath, nil)

		// If Open() succeeds (lazy connection on some platforms), the first
		// PRAGMA fails instead, so either way we end up with an error
		if err == nil && db != nil {
			err = db.Ping()
			db.Close()
		}
		assert.Error(t, err)
	})

	t.Run("logs when logger provided", func(t *testing.T) {
		tmpDir := t.TempDir()
		dbPath := filepath.Join(tmpDir, "test.db")

		logger := zaptest.NewLogger(t).Sugar()
		db, err := Open(dbPath, logger)
		require.NoError(t, err)
		db.Close()
	})
}

func TestOpenWithMigrations(t *testing.T) {
	t.Run("opens database and runs migrations", func(t *testing.T) {
		tmpDir := t.TempDir()
		dbPath := filepath.Join(tmpDir, "test.db")

		db, err := OpenWithMigrations(dbPath, nil)
		require.NoError(t, err)
		require.NotNil(t, db)
		defer db.Close()

		for _, table := range []string{"schema_migrations", "terms", "edges", "gaf_association", "term_closure", "rule_violation", "gpi_entry"} {
			var exists int
			err = db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&exists)
			require.NoError(t, err)
			assert.Equal(t, 1, exists, "table %s should exist after migrations", table)
		}
	})

	t.Run("is idempotent", func(t *testing.T) {
		tmpDir := t.TempDir()
		dbPath := filepath.Join(tmpDir, "test.db")

		db, err := OpenWithMigrations(dbPath, nil)
		require.NoError(t, err)
		db.Close()

		// Reopening must skip already-applied migrations
		db, err = OpenWithMigrations(dbPath, nil)
		require.NoError(t, err)
		defer db.Close()

		var applied int
		err = db.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&applied)
		require.NoError(t, err)
		assert.Equal(t, 5, applied)
	})
}

func TestIsDatabaseClosed(t *testing.T) {
	t.Run("nil error", func(t *testing.T) {
		assert.False(t, IsDatabaseClosed(nil))
	})

	t.Run("wrapped sentinel", func(t *testing.T) {
		assert.True(t, IsDatabaseClosed(ErrDatabaseClosed))
	})

	t.Run("raw driver error after close", func(t *testing.T) {
		tmpDir := t.TempDir()
		db, err := Open(filepath.Join(tmpDir, "test.db"), nil)
		require.NoError(t, err)
		require.NoError(t, db.Close())

		_, err = db.Exec("SELECT 1")
		require.Error(t, err)
		assert.True(t, IsDatabaseClosed(err))
	})
}
