package database

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tempPath(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "nested", "mf.db")
	return path
}

func TestOpenMigrateVersion(t *testing.T) {
	ctx := context.Background()
	path := tempPath(t)

	db, err := Open(path)
	require.NoError(t, err)
	defer db.Close()

	pending, err := HasPending(ctx, db)
	require.NoError(t, err)
	assert.True(t, pending, "fresh database has every migration pending")

	results, err := Migrate(ctx, db)
	require.NoError(t, err)
	assert.Len(t, results, 4)

	version, err := Version(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, int64(4), version)

	pending, err = HasPending(ctx, db)
	require.NoError(t, err)
	assert.False(t, pending)

	t.Run("second migrate is a no-op", func(t *testing.T) {
		results, err := Migrate(ctx, db)
		require.NoError(t, err)
		assert.Empty(t, results)
	})

	t.Run("foreign keys are enforced", func(t *testing.T) {
		_, err := db.Exec(`INSERT INTO purchase (id, fund_id, amount, nav, units, date)
			VALUES ('p1', 'missing', 100, 10, 10, '2024-01-01')`)
		assert.Error(t, err)
	})

	assert.NoError(t, HealthCheck(db))
}
