// Package rerank implements the optional LLM-powered reranking
// suspension point: a second scoring pass over the top ranked
// candidates using a downstream text generator, blended with the
// ranker's own score. Off by default, mirroring the original
// implementation's own disposition toward this feature.
package rerank

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/Abdulmumin1/lmfetch/internal/generate"
	"github.com/Abdulmumin1/lmfetch/internal/rank"
)

const (
	defaultTopK   = 20
	candidatePool = 2
	concurrency   = 5
	contentLimit  = 2000
	initialWeight = 0.4
	llmWeight     = 0.6
	fallbackScore = 0.5
)

const relevanceSystemPrompt = "You are a relevance scorer. Output ONLY a number from 0.0 to 1.0 indicating how relevant the code is to the query. Just the number, nothing else."

// LLM reranks the top topK*2 candidates of scored (already sorted
// descending) by asking generator for a 0..1 relevance score per
// candidate and blending it with the existing score:
// 0.4*initial + 0.6*llm. Chunks outside the reranked pool keep their
// original score. Returns scored unchanged if generator is nil or
// scored is empty.
func LLM(ctx context.Context, generator generate.Generator, query string, scored []rank.ScoredChunk, topK int) []rank.ScoredChunk {
	if generator == nil || len(scored) == 0 {
		return scored
	}
	if topK <= 0 {
		topK = defaultTopK
	}
	poolSize := topK * candidatePool
	if poolSize > len(scored) {
		poolSize = len(scored)
	}
	pool := scored[:poolSize]
	rest := scored[poolSize:]

	rescored := make([]rank.ScoredChunk, len(pool))
	sem := make(chan struct{}, concurrency)
	var wg sync.WaitGroup
	for i, s := range pool {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int, s rank.ScoredChunk) {
			defer wg.Done()
			defer func() { <-sem }()
			llmScore := scoreRelevance(ctx, generator, query, s.Chunk.Content)
			rescored[i] = rank.ScoredChunk{Chunk: s.Chunk, Score: s.Score*initialWeight + llmScore*llmWeight}
		}(i, s)
	}
	wg.Wait()

	out := make([]rank.ScoredChunk, 0, len(scored))
	out = append(out, rescored...)
	out = append(out, rest...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	return out
}

func scoreRelevance(ctx context.Context, generator generate.Generator, query, content string) float64 {
	if len(content) > contentLimit {
		content = content[:contentLimit]
	}
	prompt := relevanceSystemPrompt + "\n\nQuery: " + query + "\n\nCode:\n" + content
	text, err := generator.Generate(ctx, prompt)
	if err != nil {
		return fallbackScore
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil {
		return fallbackScore
	}
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
