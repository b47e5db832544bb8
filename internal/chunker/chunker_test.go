package chunker

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCounter struct{}

func (fakeCounter) Count(text string) int { return len(strings.Fields(text)) }

func TestChunkFallsBackToSizeChunking(t *testing.T) {
	reg := NewRegistry() // no patterns registered for "text"
	src := strings.Repeat("plain line\n", 50)

	chunks := ChunkFile("notes.txt", src, "text", reg, fakeCounter{})
	require.Len(t, chunks, 1)
	assert.Equal(t, KindSection, chunks[0].Kind)
}

func TestChunkSplitsOversizedFile(t *testing.T) {
	reg := NewRegistry()
	src := strings.Repeat("line\n", 500)

	chunks := ChunkFile("big.txt", src, "text", reg, fakeCounter{})
	require.Greater(t, len(chunks), 1)
	for _, c := range chunks {
		assert.LessOrEqual(t, c.EndLine-c.StartLine+1, maxLines)
	}
}
