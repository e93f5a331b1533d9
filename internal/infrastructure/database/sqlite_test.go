package database

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenSQLiteAppliesMigrations(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "catalog.db")

	db, err := OpenSQLite(ctx, path)
	require.NoError(t, err)
	defer db.Close()

	for _, table := range []string{"books", "authors"} {
		var name string
		err := db.QueryRowContext(ctx,
			`SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, table).Scan(&name)
		require.NoError(t, err, table)
		assert.Equal(t, table, name)
	}

	var version int
	require.NoError(t, db.QueryRowContext(ctx, `SELECT MAX(version) FROM schema_version`).Scan(&version))
	assert.Equal(t, 1, version)
}

func TestOpenSQLiteIsIdempotent(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "catalog.db")

	db, err := OpenSQLite(ctx, path)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	db, err = OpenSQLite(ctx, path)
	require.NoError(t, err)
	defer db.Close()

	var count int
	require.NoError(t, db.QueryRowContext(ctx, `SELECT COUNT(*) FROM schema_version`).Scan(&count))
	assert.Equal(t, 1, count)
}

func TestOpenSQLiteRegistersFold(t *testing.T) {
	ctx := context.Background()
	db, err := OpenSQLite(ctx, filepath.Join(t.TempDir(), "catalog.db"))
	require.NoError(t, err)
	defer db.Close()

	var folded string
	require.NoError(t, db.QueryRowContext(ctx, `SELECT fold(?)`, "ÉMILE Zola").Scan(&folded))
	assert.Equal(t, "émile zola", folded)

	var matched bool
	require.NoError(t, db.QueryRowContext(ctx, `SELECT fold('Émile') LIKE fold(?)`, "émile").Scan(&matched))
	assert.True(t, matched)
}

func TestListMigrationsOrdersByVersion(t *testing.T) {
	for _, dialect := range []string{"postgres", "sqlite"} {
		files, err := listMigrations(dialect)
		require.NoError(t, err)
		require.NotEmpty(t, files)
		for i := 1; i < len(files); i++ {
			assert.Less(t, files[i-1].version, files[i].version)
		}
	}
}
