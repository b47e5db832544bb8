// Package format renders selected chunks into the Markdown context
// document handed to a downstream model.
package format

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Abdulmumin1/lmfetch/internal/rank"
)

// Format renders scored as Markdown (mode "" or "markdown") or as the
// flat XML rendering (mode "xml").
func Format(scored []rank.ScoredChunk, mode string) string {
	if mode == "xml" {
		return XML(scored)
	}
	return Markdown(scored)
}

// XML renders scored in selection order (no grouping by file) as one
// <file> element per chunk wrapping its content, carrying its path, name/kind
// when named, line range, and language — a second render mode
// alongside Markdown.
func XML(scored []rank.ScoredChunk) string {
	var b strings.Builder
	for i, s := range scored {
		if i > 0 {
			b.WriteString("\n\n")
		}
		c := s.Chunk
		fmt.Fprintf(&b, "<file path=%q", c.FilePath)
		if c.Name != "" {
			fmt.Fprintf(&b, " name=%q type=%q", c.Name, c.Kind)
		}
		fmt.Fprintf(&b, " lines=%q", fmt.Sprintf("%d-%d", c.StartLine, c.EndLine))
		if c.Language != "" {
			fmt.Fprintf(&b, " language=%q", c.Language)
		}
		fmt.Fprintf(&b, ">\n%s\n</file>", c.Content)
	}
	return b.String()
}

// Markdown groups scored by file path, preserving first-seen path
// order, sorts each file's chunks by ascending start line, and emits
// one heading plus fenced code block per chunk.
func Markdown(scored []rank.ScoredChunk) string {
	order := make([]string, 0)
	byFile := make(map[string][]rank.ScoredChunk)
	seen := make(map[string]bool)
	for _, s := range scored {
		path := s.Chunk.FilePath
		if !seen[path] {
			seen[path] = true
			order = append(order, path)
		}
		byFile[path] = append(byFile[path], s)
	}

	var b strings.Builder
	for i, path := range order {
		if i > 0 {
			b.WriteString("\n")
		}
		chunks := byFile[path]
		sort.SliceStable(chunks, func(a, c int) bool {
			return chunks[a].Chunk.StartLine < chunks[c].Chunk.StartLine
		})

		fmt.Fprintf(&b, "## %s\n\n", path)
		for _, s := range chunks {
			c := s.Chunk
			lineLabel := fmt.Sprintf("Lines %d-%d", c.StartLine, c.EndLine)
			if c.StartLine == c.EndLine {
				lineLabel = fmt.Sprintf("Line %d", c.StartLine)
			}
			if c.Name != "" {
				fmt.Fprintf(&b, "### %s (%s: %s)\n", lineLabel, c.Kind, c.Name)
			} else {
				fmt.Fprintf(&b, "### %s\n", lineLabel)
			}
			fmt.Fprintf(&b, "```%s\n%s\n```\n\n", c.Language, c.Content)
		}
	}
	return b.String()
}
