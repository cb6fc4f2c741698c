package database

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_EmptyPath(t *testing.T) {
	_, err := Open(Config{})
	require.Error(t, err)
}

func TestMigrate_Idempotent(t *testing.T) {
	db, err := Open(Config{Path: MemoryPath})
	require.NoError(t, err)
	defer db.Close()

	ctx := context.Background()
	require.NoError(t, Migrate(ctx, db))
	require.NoError(t, Migrate(ctx, db))

	for _, table := range []string{"categories", "news", "reviews"} {
		var name string
		err := db.QueryRowContext(ctx,
			`SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, table).Scan(&name)
		require.NoError(t, err, table)
		assert.Equal(t, table, name)
	}
}

func TestOpen_FileCreatesDataDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "xnews.db")

	db, err := Open(Config{Path: path})
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, Migrate(context.Background(), db))
	assert.FileExists(t, path)
}

func TestDSN_EscapesPath(t *testing.T) {
	got := Config{Path: "/data/a?b#c/50%/x y.db"}.dsn()
	assert.Equal(t, "file:/data/a%3Fb%23c/50%25/x%20y.db?_foreign_keys=on&_journal_mode=WAL&_busy_timeout=5000", got)
	assert.Equal(t, "file::memory:?_foreign_keys=on", Config{Path: MemoryPath}.dsn())
}

func TestOpen_PathWithURICharacters(t *testing.T) {
	path := filepath.Join(t.TempDir(), "odd?dir#1", "x y%.db")

	db, err := Open(Config{Path: path})
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, Migrate(context.Background(), db))
	assert.FileExists(t, path)
}

func TestDefaultConfig_EnvOverride(t *testing.T) {
	t.Setenv("XNEWS_DB_PATH", "/tmp/custom.db")
	assert.Equal(t, "/tmp/custom.db", DefaultConfig().Path)
}

func TestClassify(t *testing.T) {
	db, err := Open(Config{Path: MemoryPath})
	require.NoError(t, err)
	defer db.Close()

	ctx := context.Background()
	require.NoError(t, Migrate(ctx, db))

	_, err = db.ExecContext(ctx, `INSERT INTO categories (name) VALUES ('World')`)
	require.NoError(t, err)

	t.Run("foreign key", func(t *testing.T) {
		_, err := db.ExecContext(ctx,
			`INSERT INTO news (category_id, title, text) VALUES (?, ?, ?)`, 999, "Orphan", "body")
		err = Classify(err)
		assert.ErrorIs(t, err, ErrForeignKeyViolation)
		assert.ErrorIs(t, err, ErrConstraintViolation)
	})

	t.Run("unique", func(t *testing.T) {
		_, err := db.ExecContext(ctx,
			`INSERT INTO news (category_id, title, text) VALUES (1, 'Same', 'a')`)
		require.NoError(t, err)
		_, err = db.ExecContext(ctx,
			`INSERT INTO news (category_id, title, text) VALUES (1, 'Same', 'b')`)
		err = Classify(err)
		assert.ErrorIs(t, err, ErrUniqueViolation)
		assert.NotErrorIs(t, err, ErrForeignKeyViolation)
	})

	t.Run("check", func(t *testing.T) {
		_, err := db.ExecContext(ctx,
			`INSERT INTO reviews (name, text, email, rating) VALUES ('a', 'b', 'c', 11)`)
		assert.ErrorIs(t, Classify(err), ErrCheckViolation)
	})

	t.Run("passthrough", func(t *testing.T) {
		assert.NoError(t, Classify(nil))
		plain := errors.New("boom")
		assert.Same(t, plain, Classify(plain))
	})
}
