package selector

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Abdulmumin1/lmfetch/internal/chunker"
	"github.com/Abdulmumin1/lmfetch/internal/rank"
)

func chunkWithTokens(path string, tokens int, score float64) rank.ScoredChunk {
	return rank.ScoredChunk{
		Chunk: chunker.Chunk{FilePath: path, Tokens: tokens},
		Score: score,
	}
}

func TestSelectStopsWithinBudget(t *testing.T) {
	scored := []rank.ScoredChunk{
		chunkWithTokens("a.go", 100, 10),
		chunkWithTokens("b.go", 100, 9),
		chunkWithTokens("c.go", 100, 8),
	}
	selected := Select(scored, 300)
	total := 0
	for _, s := range selected {
		total += s.Chunk.Tokens + headerOverhead
	}
	assert.LessOrEqual(t, total, int(300*effectiveRatio))
}

func TestSelectSkipsOverflowingChunk(t *testing.T) {
	scored := []rank.ScoredChunk{
		chunkWithTokens("big.go", 1000, 10),
		chunkWithTokens("small.go", 10, 9),
	}
	selected := Select(scored, 100)
	assert.Len(t, selected, 1)
	assert.Equal(t, "small.go", selected[0].Chunk.FilePath)
}

func TestSelectEmptyInput(t *testing.T) {
	assert.Empty(t, Select(nil, 1000))
}

func TestSelectRelatedFillsHeadroomWithRelatedFilesOnly(t *testing.T) {
	scored := []rank.ScoredChunk{
		chunkWithTokens("a.go", 100, 10),
		chunkWithTokens("b.go", 50, 9),
		chunkWithTokens("unrelated.go", 50, 8),
	}
	selectedPaths := map[string]bool{"a.go": true}
	related := map[string]bool{"a.go": true, "b.go": true}
	running := TotalCost([]rank.ScoredChunk{scored[0]})

	added := SelectRelated(scored, selectedPaths, related, running, 1000)
	assert.Len(t, added, 1)
	assert.Equal(t, "b.go", added[0].Chunk.FilePath)
}

func TestSelectRelatedRespectsFullBudget(t *testing.T) {
	scored := []rank.ScoredChunk{
		chunkWithTokens("a.go", 100, 10),
		chunkWithTokens("b.go", 1000, 9),
	}
	selectedPaths := map[string]bool{"a.go": true}
	related := map[string]bool{"a.go": true, "b.go": true}
	running := TotalCost([]rank.ScoredChunk{scored[0]})

	added := SelectRelated(scored, selectedPaths, related, running, 200)
	assert.Empty(t, added)
}

func TestTotalCostSumsTokensPlusOverhead(t *testing.T) {
	selected := []rank.ScoredChunk{chunkWithTokens("a.go", 100, 10), chunkWithTokens("b.go", 50, 9)}
	assert.Equal(t, 100+headerOverhead+50+headerOverhead, TotalCost(selected))
}
