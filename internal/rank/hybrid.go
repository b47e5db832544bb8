package rank

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/Abdulmumin1/lmfetch/internal/chunker"
	"github.com/Abdulmumin1/lmfetch/internal/embed"
	"github.com/Abdulmumin1/lmfetch/internal/generate"
)

const enrichedContentLimit = 8000

// Hybrid composes the keyword ranker with embedding similarity and the
// static file-importance prior. It only runs when the caller opts out
// of the fast path, since it makes external generator and embedding
// calls.
type Hybrid struct {
	Embedder  embed.Provider
	Generator generate.Generator
	Cache     *EmbedCache
	// FileScore is the combined importance/centrality score per
	// relative path (see analyze.CombinedScore); missing entries
	// default to 0.5, matching the analyzer's own default.
	FileScore map[string]float64
}

// Rank scores chunks against query, fusing keyword, embedding, and
// file-importance signals 0.4/0.4/0.2.
func (h *Hybrid) Rank(ctx context.Context, chunks []chunker.Chunk, query string) []ScoredChunk {
	kw := Keyword(chunks, query)
	normKeyword := normalizeLinear(kw)

	hyde := generate.HyDE(ctx, h.Generator, query)
	embeddingScores := h.embeddingSimilarities(ctx, chunks, hyde)

	out := make([]ScoredChunk, len(chunks))
	for i, c := range chunks {
		fi := h.fileScoreFor(c)
		final := 0.4*normKeyword[i] + 0.4*embeddingScores[i] + 0.2*fi
		out[i] = ScoredChunk{Chunk: c, Score: final}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	return out
}

func (h *Hybrid) fileScoreFor(c chunker.Chunk) float64 {
	score, ok := h.FileScore[c.FilePath]
	if !ok {
		score = 0.5
	}
	lang := strings.ToLower(c.Language)
	if lang == "markdown" || lang == "mdx" {
		score *= 0.6
	}
	return score
}

func normalizeLinear(scored []ScoredChunk) []float64 {
	if len(scored) == 0 {
		return nil
	}
	min, max := scored[0].Score, scored[0].Score
	for _, s := range scored {
		if s.Score < min {
			min = s.Score
		}
		if s.Score > max {
			max = s.Score
		}
	}
	out := make([]float64, len(scored))
	if max == min {
		for i := range out {
			out[i] = 0.5
		}
		return out
	}
	for i, s := range scored {
		out[i] = (s.Score - min) / (max - min)
	}
	return out
}

func (h *Hybrid) embeddingSimilarities(ctx context.Context, chunks []chunker.Chunk, hydeDoc string) []float64 {
	texts := make([]string, len(chunks))
	for i, c := range chunks {
		texts[i] = enrich(c)
	}

	vectors := h.embedWithCache(ctx, texts)
	queryVec := h.embedWithCache(ctx, []string{hydeDoc})[0]

	out := make([]float64, len(chunks))
	for i, v := range vectors {
		out[i] = cosineSimilarity(v, queryVec)
	}
	return out
}

// embedWithCache resolves each text from the cache where possible,
// batching only the cache misses through the embedding provider.
func (h *Hybrid) embedWithCache(ctx context.Context, texts []string) [][]float32 {
	result := make([][]float32, len(texts))
	var missIdx []int
	var missTexts []string
	for i, t := range texts {
		if v, ok := h.Cache.Get(t); ok {
			result[i] = v
			continue
		}
		missIdx = append(missIdx, i)
		missTexts = append(missTexts, t)
	}
	if len(missTexts) > 0 {
		vecs := embed.Batch(ctx, h.Embedder, missTexts)
		for j, idx := range missIdx {
			result[idx] = vecs[j]
			h.Cache.Put(missTexts[j], vecs[j])
		}
	}
	return result
}

func enrich(c chunker.Chunk) string {
	content := c.Content
	if len(content) > enrichedContentLimit {
		content = content[:enrichedContentLimit]
	}
	return fmt.Sprintf("File: %s\n%s: %s\n%s", c.FilePath, c.Kind, c.Name, content)
}

func cosineSimilarity(a, b []float32) float64 {
	if len(a) == 0 || len(b) == 0 || len(a) != len(b) {
		return 0
	}
	var dot, na, nb float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
