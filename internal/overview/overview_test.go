package overview

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Abdulmumin1/lmfetch/internal/chunker"
)

func TestBuildEmptyFilesReturnsEmptyString(t *testing.T) {
	assert.Equal(t, "", Build(nil, nil))
}

func TestBuildOrdersFilesByScoreDescending(t *testing.T) {
	files := []FileStats{
		{Path: "low.go", Language: "go", ChunkCount: 1, Score: 0.2},
		{Path: "high.go", Language: "go", ChunkCount: 1, Score: 0.9},
	}
	out := Build(files, nil)
	assert.Less(t, indexOf(out, "high.go"), indexOf(out, "low.go"))
}

func TestBuildListsNamedChunksUnderTheirFile(t *testing.T) {
	files := []FileStats{{Path: "a.go", Language: "go", ChunkCount: 1, Score: 0.5}}
	chunks := []chunker.Chunk{
		{FilePath: "a.go", Kind: chunker.KindFunction, Name: "Run", StartLine: 1},
	}
	out := Build(files, chunks)
	assert.Contains(t, out, "function: Run")
}

func indexOf(s, sub string) int {
	for i := 0; i+len(sub) <= len(s); i++ {
		if s[i:i+len(sub)] == sub {
			return i
		}
	}
	return -1
}
