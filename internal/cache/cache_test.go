package cache

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestCache(t *testing.T) *Cache {
	t.Helper()
	dir := t.TempDir()
	c, err := Open(filepath.Join(dir, "cache.db"))
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	return c
}

func TestHasFreshChunksMissing(t *testing.T) {
	c := openTestCache(t)
	fresh, err := c.HasFreshChunks("a.go", time.Now())
	require.NoError(t, err)
	assert.False(t, fresh)
}

func TestPutAndFetchChunks(t *testing.T) {
	c := openTestCache(t)
	mtime := time.Now()

	require.NoError(t, c.PutFile("a.go", "package a\n", mtime, "go"))
	require.NoError(t, c.PutChunks("a.go", []ChunkRow{
		{Content: "package a", StartLine: 1, EndLine: 1, Kind: "section", Name: ""},
	}))

	fresh, err := c.HasFreshChunks("a.go", mtime)
	require.NoError(t, err)
	assert.True(t, fresh)

	fresh, err = c.HasFreshChunks("a.go", mtime.Add(time.Hour))
	require.NoError(t, err)
	assert.False(t, fresh, "a newer mtime than stored should be a miss")

	rows, err := c.GetChunks("a.go")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "package a", rows[0].Content)
}

func TestPutChunksReplacesAtomically(t *testing.T) {
	c := openTestCache(t)
	mtime := time.Now()
	require.NoError(t, c.PutFile("a.go", "x", mtime, "go"))
	require.NoError(t, c.PutChunks("a.go", []ChunkRow{{Content: "old", StartLine: 1, EndLine: 1}}))
	require.NoError(t, c.PutChunks("a.go", []ChunkRow{{Content: "new", StartLine: 1, EndLine: 1}}))

	rows, err := c.GetChunks("a.go")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "new", rows[0].Content)
}

func TestClearEmptiesBothRelations(t *testing.T) {
	c := openTestCache(t)
	mtime := time.Now()
	require.NoError(t, c.PutFile("a.go", "x", mtime, "go"))
	require.NoError(t, c.PutChunks("a.go", []ChunkRow{{Content: "x", StartLine: 1, EndLine: 1}}))

	require.NoError(t, c.Clear())

	fresh, err := c.HasFreshChunks("a.go", mtime)
	require.NoError(t, err)
	assert.False(t, fresh)
}

func TestPruneIsMonotone(t *testing.T) {
	c := openTestCache(t)
	mtime := time.Now()
	require.NoError(t, c.PutFile("a.go", "x", mtime, "go"))
	require.NoError(t, c.PutChunks("a.go", []ChunkRow{{Content: "x", StartLine: 1, EndLine: 1}}))

	require.NoError(t, c.Prune())
	fresh1, err := c.HasFreshChunks("a.go", mtime)
	require.NoError(t, err)

	require.NoError(t, c.Prune())
	fresh2, err := c.HasFreshChunks("a.go", mtime)
	require.NoError(t, err)

	assert.Equal(t, fresh1, fresh2, "pruning twice in succession must be a no-op")
}
