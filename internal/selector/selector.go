// Package selector packs ranked chunks into a token budget.
package selector

import (
	"github.com/Abdulmumin1/lmfetch/internal/rank"
)

const (
	headerOverhead = 50
	effectiveRatio = 0.95
	stopRatio      = 0.98
)

// Select greedily packs scored, already sorted descending by score,
// into totalBudget tokens, reserving a 5% slack for formatting
// overhead and stopping once it has filled 98% of that effective
// budget.
func Select(scored []rank.ScoredChunk, totalBudget int) []rank.ScoredChunk {
	effective := int(float64(totalBudget) * effectiveRatio)
	stopAt := int(float64(effective) * stopRatio)

	var selected []rank.ScoredChunk
	running := 0
	for _, s := range scored {
		cost := s.Chunk.Tokens + headerOverhead
		if running+cost > effective {
			continue
		}
		selected = append(selected, s)
		running += cost
		if running >= stopAt {
			break
		}
	}
	return selected
}

// TotalCost sums the per-chunk cost (tokens + header overhead) of an
// already-selected set, the running total SelectRelated resumes from.
func TotalCost(selected []rank.ScoredChunk) int {
	total := 0
	for _, s := range selected {
		total += s.Chunk.Tokens + headerOverhead
	}
	return total
}

// SelectRelated extends an already-selected set with chunks from files
// reachable through the import graph, spending whatever headroom
// Select's 5% slack left against the full totalBudget rather than the
// effective budget. It mirrors the original two-pass builder: a first
// pass that reserves budget, and a second pass that spends the
// remainder on import-related context not already pulled in by
// relevance alone.
func SelectRelated(scored []rank.ScoredChunk, selectedPaths map[string]bool, related map[string]bool, running, totalBudget int) []rank.ScoredChunk {
	var added []rank.ScoredChunk
	for _, s := range scored {
		path := s.Chunk.FilePath
		if selectedPaths[path] || !related[path] {
			continue
		}
		cost := s.Chunk.Tokens + headerOverhead
		if running+cost > totalBudget {
			continue
		}
		added = append(added, s)
		running += cost
	}
	return added
}
