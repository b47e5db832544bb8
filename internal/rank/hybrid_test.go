package rank

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Abdulmumin1/lmfetch/internal/chunker"
)

type fakeEmbedder struct {
	dim     int
	vectors map[string][]float32
}

func (f *fakeEmbedder) Dimension() int { return f.dim }

func (f *fakeEmbedder) Embed(_ context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, t := range texts {
		if v, ok := f.vectors[t]; ok {
			out[i] = v
			continue
		}
		out[i] = make([]float32, f.dim)
	}
	return out, nil
}

type fakeGenerator struct{ response string }

func (f *fakeGenerator) Generate(_ context.Context, _ string) (string, error) {
	return f.response, nil
}

func TestHybridRankFusesSignals(t *testing.T) {
	chunks := []chunker.Chunk{
		{FilePath: "src/auth.go", Content: "func authenticate() {}", Name: "authenticate", Kind: chunker.KindFunction, Language: "go"},
		{FilePath: "src/math.go", Content: "func add(a, b int) int { return a + b }", Name: "add", Kind: chunker.KindFunction, Language: "go"},
	}

	vectors := map[string][]float32{
		"hyde doc": {1, 0},
	}
	vectors[enrich(chunks[0])] = []float32{1, 0}
	vectors[enrich(chunks[1])] = []float32{0, 1}

	h := &Hybrid{
		Embedder:  &fakeEmbedder{dim: 2, vectors: vectors},
		Generator: &fakeGenerator{response: "hyde doc"},
		Cache:     NewEmbedCache(""),
		FileScore: map[string]float64{"src/auth.go": 0.9, "src/math.go": 0.9},
	}

	scored := h.Rank(context.Background(), chunks, "authenticate user")
	assert.Equal(t, "src/auth.go", scored[0].Chunk.FilePath)
	assert.GreaterOrEqual(t, scored[0].Score, scored[1].Score)
}

func TestHybridMarkdownPenaltyAppliesToFileImportance(t *testing.T) {
	chunks := []chunker.Chunk{
		{FilePath: "README.md", Content: "docs about authenticate", Language: "markdown"},
	}
	h := &Hybrid{
		Embedder:  &fakeEmbedder{dim: 2, vectors: map[string][]float32{}},
		Generator: &fakeGenerator{response: "doc"},
		Cache:     NewEmbedCache(""),
		FileScore: map[string]float64{"README.md": 1.0},
	}
	assert.InDelta(t, 0.6, h.fileScoreFor(chunks[0]), 1e-9)
}
