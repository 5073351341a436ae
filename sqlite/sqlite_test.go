package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/fwojciec/harvest"
	"github.com/fwojciec/harvest/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) *sqlite.DB {
	t.Helper()
	db := sqlite.NewDB(":memory:")
	require.NoError(t, db.Open())
	t.Cleanup(func() { db.Close() })
	return db
}

// fixedClock returns a clock that starts at start and advances by one
// second on every call.
func fixedClock(start time.Time) func() time.Time {
	now := start
	return func() time.Time {
		t := now
		now = now.Add(time.Second)
		return t
	}
}

func TestDB_Open(t *testing.T) {
	t.Parallel()

	t.Run("creates schema on first open", func(t *testing.T) {
		t.Parallel()

		db := sqlite.NewDB(":memory:")
		err := db.Open()
		require.NoError(t, err)
		defer db.Close()

		ctx := context.Background()
		for _, table := range []string{"records", "product_pages", "products", "attempts"} {
			var count int
			err = db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+table).Scan(&count)
			require.NoError(t, err, table)
			assert.Zero(t, count, table)
		}
	})

	t.Run("returns error for invalid path", func(t *testing.T) {
		t.Parallel()

		db := sqlite.NewDB("/nonexistent/path/db.sqlite")
		err := db.Open()
		require.Error(t, err)
	})

	t.Run("enables WAL mode for file-based databases", func(t *testing.T) {
		t.Parallel()

		dbPath := t.TempDir() + "/test.db"
		db := sqlite.NewDB(dbPath)
		err := db.Open()
		require.NoError(t, err)
		defer db.Close()

		ctx := context.Background()
		var journalMode string
		err = db.QueryRowContext(ctx, "PRAGMA journal_mode").Scan(&journalMode)
		require.NoError(t, err)
		require.Equal(t, "wal", journalMode)
	})

	t.Run("keeps existing data when reopened", func(t *testing.T) {
		t.Parallel()

		dbPath := t.TempDir() + "/test.db"
		ctx := context.Background()

		db := sqlite.NewDB(dbPath)
		require.NoError(t, db.Open())
		_, err := sqlite.NewRecordService(db).UpsertRecord(ctx, &harvest.GeneralRecord{URL: "https://example.com"})
		require.NoError(t, err)
		require.NoError(t, db.Close())

		db = sqlite.NewDB(dbPath)
		require.NoError(t, db.Open())
		defer db.Close()

		rec, err := sqlite.NewRecordService(db).FindRecordByURL(ctx, "https://example.com")
		require.NoError(t, err)
		assert.Equal(t, "https://example.com", rec.URL)
	})
}

func TestDB_Reset(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	ctx := context.Background()

	_, err := sqlite.NewRecordService(db).UpsertRecord(ctx, &harvest.GeneralRecord{URL: "https://example.com"})
	require.NoError(t, err)
	require.NoError(t, sqlite.NewAttemptService(db).LogAttempt(ctx, &harvest.Attempt{
		URL:    "https://example.com",
		Mode:   harvest.ModeGeneral,
		Status: harvest.AttemptInserted,
	}))

	require.NoError(t, db.Reset(ctx))

	recs, err := sqlite.NewRecordService(db).FindRecords(ctx)
	require.NoError(t, err)
	assert.Empty(t, recs)

	attempts, err := sqlite.NewAttemptService(db).FindAttempts(ctx, harvest.AttemptFilter{})
	require.NoError(t, err)
	assert.Empty(t, attempts)

	// Attempt ids restart after a reset.
	a := &harvest.Attempt{URL: "https://example.com", Status: harvest.AttemptError, ErrorMessage: "boom"}
	require.NoError(t, sqlite.NewAttemptService(db).LogAttempt(ctx, a))
	assert.Equal(t, int64(1), a.ID)
}
