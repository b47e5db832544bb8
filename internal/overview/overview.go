// Package overview synthesizes a short architecture summary from the
// same file/chunk metadata the ranker already computed — entirely
// offline heuristic text assembly, no model call.
package overview

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Abdulmumin1/lmfetch/internal/chunker"
)

// FileStats is the per-file metadata the overview draws from.
type FileStats struct {
	Path       string
	Language   string
	ChunkCount int
	Score      float64 // combined importance/centrality score
}

const topFileCount = 8

// Build assembles a Markdown overview from files (already discovered)
// and chunks (already produced by the chunker), ranking files by
// combined score and listing the named chunks of the highest-scoring
// ones.
func Build(files []FileStats, chunks []chunker.Chunk) string {
	if len(files) == 0 {
		return ""
	}

	sorted := make([]FileStats, len(files))
	copy(sorted, files)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Score > sorted[j].Score })

	byLang := make(map[string]int)
	for _, f := range files {
		byLang[f.Language]++
	}

	namedByFile := make(map[string][]chunker.Chunk)
	for _, c := range chunks {
		if c.Name != "" {
			namedByFile[c.FilePath] = append(namedByFile[c.FilePath], c)
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "## Project Overview\n\n%d files across %d language(s).\n\n", len(files), len(byLang))

	b.WriteString("### Key files\n\n")
	top := sorted
	if len(top) > topFileCount {
		top = top[:topFileCount]
	}
	for _, f := range top {
		fmt.Fprintf(&b, "- **%s** (%s, %d chunks, score %.2f)\n", f.Path, f.Language, f.ChunkCount, f.Score)
		named := namedByFile[f.Path]
		sort.SliceStable(named, func(i, j int) bool { return named[i].StartLine < named[j].StartLine })
		for i, c := range named {
			if i >= 5 {
				fmt.Fprintf(&b, "  - … %d more\n", len(named)-5)
				break
			}
			fmt.Fprintf(&b, "  - %s: %s\n", c.Kind, c.Name)
		}
	}
	return b.String()
}
