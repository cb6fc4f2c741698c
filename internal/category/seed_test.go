package category_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"xnews/internal/category"
	"xnews/internal/dbtest"
)

func TestParseSeed(t *testing.T) {
	names, err := category.ParseSeed([]byte(`
categories:
  - name: World
  - name: "  Tech  "
`))
	require.NoError(t, err)
	assert.Equal(t, []string{"World", "Tech"}, names)
}

func TestParseSeed_Errors(t *testing.T) {
	tests := map[string]string{
		"empty name":   "categories:\n  - name: '  '\n",
		"invalid yaml": "categories: [",
		"too long":     "categories:\n  - name: " + strings.Repeat("a", 256) + "\n",
	}
	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := category.ParseSeed([]byte(doc))
			assert.Error(t, err)
		})
	}
}

func TestLoadSeedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "categories.yaml")
	require.NoError(t, os.WriteFile(path, []byte("categories:\n  - name: Sport\n"), 0o600))

	names, err := category.LoadSeedFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"Sport"}, names)

	_, err = category.LoadSeedFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestSeed_Idempotent(t *testing.T) {
	db := dbtest.Open(t)
	repo := category.NewRepo(db)
	ctx := context.Background()

	created, err := category.Seed(ctx, repo, []string{"World", "Tech"})
	require.NoError(t, err)
	assert.Equal(t, 2, created)

	created, err = category.Seed(ctx, repo, []string{"Tech", "Science"})
	require.NoError(t, err)
	assert.Equal(t, 1, created)

	assert.Equal(t, 3, dbtest.Count(t, db, "categories"))
}
