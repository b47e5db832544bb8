// Package rank scores chunks against a query, either with a standalone
// keyword ranker or a hybrid of keyword, embedding similarity, and file
// importance.
package rank

import (
	"math"
	"strings"

	"github.com/Abdulmumin1/lmfetch/internal/chunker"
)

// ScoredChunk pairs a chunk with its rank score.
type ScoredChunk struct {
	Chunk chunker.Chunk
	Score float64
}

const (
	testPenaltyFactor    = 0.5
	codemodPenaltyFactor = 0.3
	preparePenaltyFactor = 0.7
)

// Keyword scores chunks against query using only term matching —
// no embedding calls, no randomness, deterministic given (chunks, query).
func Keyword(chunks []chunker.Chunk, query string) []ScoredChunk {
	important := ImportantTerms(query)
	qTokens := QueryTokens(query)

	out := make([]ScoredChunk, len(chunks))
	if len(qTokens) == 0 {
		for i, c := range chunks {
			out[i] = ScoredChunk{Chunk: c, Score: 0}
		}
		return out
	}

	for i, c := range chunks {
		out[i] = ScoredChunk{Chunk: c, Score: scoreChunk(c, qTokens, important)}
	}
	return out
}

func scoreChunk(c chunker.Chunk, qTokens []string, important map[string]bool) float64 {
	contentTokens := Tokenize(c.Content)
	pathTokens := Tokenize(c.FilePath)
	var nameTokens []string
	if c.Name != "" {
		nameTokens = Tokenize(c.Name)
	}

	density := math.Min(1.0, 200.0/math.Max(float64(len(contentTokens)), 1))

	total := 0.0
	allMatch := true
	for _, q := range qTokens {
		boost := 1.0
		if important[q] {
			boost = 5.0
		}

		contentMatches := substringMatches(q, contentTokens)
		pathMatches := substringMatches(q, pathTokens)
		nameMatches := substringMatches(q, nameTokens)

		if contentMatches > 0 {
			total += (1 + math.Log(float64(contentMatches))) * (1 + density) * boost
		}
		total += float64(pathMatches) * 2.0 * boost
		total += float64(nameMatches) * 3.0 * boost

		if containsExact(contentTokens, q) {
			total += 2.0 * boost
		}
		if containsExact(pathTokens, q) {
			total += 10.0 * boost
		}
		if containsExact(nameTokens, q) {
			total += 20.0 * boost
		}

		if contentMatches == 0 && pathMatches == 0 && nameMatches == 0 {
			allMatch = false
		}
	}

	if len(qTokens) >= 2 && allMatch {
		total *= 1.5
	}

	total *= penalty(c.FilePath, qTokens)
	return total
}

func substringMatches(q string, tokens []string) int {
	n := 0
	for _, t := range tokens {
		if strings.Contains(t, q) || strings.Contains(q, t) {
			n++
		}
	}
	return n
}

func containsExact(tokens []string, q string) bool {
	for _, t := range tokens {
		if t == q {
			return true
		}
	}
	return false
}

func penalty(path string, qTokens []string) float64 {
	p := 1.0
	if strings.Contains(path, ".test.") || strings.Contains(path, ".spec.") ||
		strings.Contains(path, "__fixtures__") || strings.Contains(path, "__tests__") {
		p *= testPenaltyFactor
	}
	if strings.Contains(path, "/codemod/") || strings.Contains(path, "/codemods/") {
		p *= codemodPenaltyFactor
	}
	if strings.Contains(path, "prepare") {
		stemsToPrepar := false
		for _, q := range qTokens {
			if q == "prepar" {
				stemsToPrepar = true
				break
			}
		}
		if !stemsToPrepar {
			p *= preparePenaltyFactor
		}
	}
	return p
}
