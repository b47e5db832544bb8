package rerank

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Abdulmumin1/lmfetch/internal/chunker"
	"github.com/Abdulmumin1/lmfetch/internal/rank"
)

type stubGenerator struct {
	scores map[string]string
	err    error
}

func (s *stubGenerator) Generate(_ context.Context, prompt string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	for content, score := range s.scores {
		if strings.Contains(prompt, content) {
			return score, nil
		}
	}
	return "0.5", nil
}

func TestLLMBlendsGeneratorScoreWithInitialScore(t *testing.T) {
	scored := []rank.ScoredChunk{
		{Chunk: chunker.Chunk{FilePath: "a.go", Content: "func authenticate() {}"}, Score: 0.2},
		{Chunk: chunker.Chunk{FilePath: "b.go", Content: "func unrelated() {}"}, Score: 0.9},
	}
	gen := &stubGenerator{scores: map[string]string{
		"func authenticate() {}": "1.0",
		"func unrelated() {}":    "0.0",
	}}

	out := LLM(context.Background(), gen, "authenticate", scored, 10)
	assert.Equal(t, "a.go", out[0].Chunk.FilePath)
	assert.InDelta(t, 0.2*0.4+1.0*0.6, out[0].Score, 1e-9)
	assert.InDelta(t, 0.9*0.4+0.0*0.6, out[1].Score, 1e-9)
}

func TestLLMLeavesChunksOutsidePoolUntouched(t *testing.T) {
	scored := []rank.ScoredChunk{
		{Chunk: chunker.Chunk{FilePath: "a.go", Content: "a"}, Score: 1.0},
		{Chunk: chunker.Chunk{FilePath: "b.go", Content: "b"}, Score: 0.5},
	}
	gen := &stubGenerator{scores: map[string]string{"a": "1.0"}}

	out := LLM(context.Background(), gen, "q", scored, 1)
	var outside rank.ScoredChunk
	for _, s := range out {
		if s.Chunk.FilePath == "b.go" {
			outside = s
		}
	}
	assert.Equal(t, 0.5, outside.Score)
}

func TestLLMFallsBackOnGeneratorError(t *testing.T) {
	scored := []rank.ScoredChunk{{Chunk: chunker.Chunk{FilePath: "a.go", Content: "a"}, Score: 0.2}}
	gen := &stubGenerator{err: assert.AnError}

	out := LLM(context.Background(), gen, "q", scored, 10)
	assert.InDelta(t, 0.2*0.4+0.5*0.6, out[0].Score, 1e-9)
}

func TestLLMNilGeneratorReturnsUnchanged(t *testing.T) {
	scored := []rank.ScoredChunk{{Chunk: chunker.Chunk{FilePath: "a.go"}, Score: 0.3}}
	out := LLM(context.Background(), nil, "q", scored, 10)
	assert.Equal(t, scored, out)
}
