// Package chunker splits a source file's text into contiguous,
// non-overlapping chunks tagged with a code-construct kind and optional
// name, using fixed, line-anchored regular-expression boundaries per
// language. It deliberately avoids parsing: regex boundary detection is
// cheap, extensible to new languages by adding patterns, and preserves
// the property LLMs need most — retrieve a whole function, not half of
// one — without paying for a parser.
package chunker

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
)

const (
	minLines = 10
	maxLines = 200
)

// Kind identifies the construct a chunk represents.
type Kind string

const (
	KindFunction Kind = "function"
	KindClass    Kind = "class"
	KindMethod   Kind = "method"
	KindInterface Kind = "interface"
	KindType     Kind = "type"
	KindEnum     Kind = "enum"
	KindModule   Kind = "module"
	KindSection  Kind = "section"
	KindConstant Kind = "constant"
	KindVariable Kind = "variable"
)

// Chunk is a contiguous, 1-indexed inclusive line range of a file.
type Chunk struct {
	ID        string
	FilePath  string // relative path
	Content   string
	StartLine int
	EndLine   int
	Kind      Kind
	Name      string
	Language  string
	Tokens    int
}

// TokenCounter is the minimal surface the chunker needs from a token
// counter; internal/token.Counter satisfies it.
type TokenCounter interface {
	Count(text string) int
}

// boundary is a detected construct start within a file.
type boundary struct {
	line int // 0-indexed
	kind Kind
	name string
}

// ChunkFile splits relPath's content into Chunks using reg to resolve
// language to a boundary pattern table. If none is registered, or none
// matches, it falls back to fixed-size chunking.
func ChunkFile(relPath, content, language string, reg *Registry, counter TokenCounter) []Chunk {
	lines := splitLines(content)
	if len(lines) == 0 {
		return nil
	}

	patterns := reg.Lookup(language)
	var boundaries []boundary
	if patterns != nil {
		boundaries = detectBoundaries(lines, patterns)
	}

	var raw []rawChunk
	if len(boundaries) == 0 {
		raw = sizeChunks(lines)
	} else {
		raw = boundaryChunks(lines, boundaries)
	}

	chunks := make([]Chunk, 0, len(raw))
	for _, r := range raw {
		content := joinLines(lines, r.start, r.end)
		chunks = append(chunks, Chunk{
			ID:        ChunkID(relPath, r.start),
			FilePath:  relPath,
			Content:   content,
			StartLine: r.start + 1,
			EndLine:   r.end + 1,
			Kind:      r.kind,
			Name:      r.name,
			Language:  language,
			Tokens:    counter.Count(content),
		})
	}
	return chunks
}

// ChunkID derives a chunk's stable id from its file path and 0-indexed
// start line, so the cache can reproduce the same id across runs.
func ChunkID(relPath string, startLine0 int) string {
	h := sha256.Sum256([]byte(relPath + "#" + strconv.Itoa(startLine0)))
	return hex.EncodeToString(h[:])[:16]
}

func splitLines(content string) []string {
	if content == "" {
		return nil
	}
	return strings.Split(content, "\n")
}

func joinLines(lines []string, start, end int) string {
	if start < 0 {
		start = 0
	}
	if end >= len(lines) {
		end = len(lines) - 1
	}
	return strings.Join(lines[start:end+1], "\n")
}

type rawChunk struct {
	start, end int // 0-indexed inclusive
	kind       Kind
	name       string
}

// detectBoundaries records, for each line, the first pattern that matches.
func detectBoundaries(lines []string, patterns []Pattern) []boundary {
	var bs []boundary
	for i, line := range lines {
		for _, p := range patterns {
			m := p.Regexp.FindStringSubmatch(line)
			if m == nil {
				continue
			}
			name := ""
			if p.NameGroup > 0 && p.NameGroup < len(m) {
				name = m[p.NameGroup]
			}
			bs = append(bs, boundary{line: i, kind: p.Kind, name: name})
			break
		}
	}
	return bs
}

// boundaryChunks turns detected boundaries into raw chunks, applying the
// minLines drop rule, maxLines splitting, and preamble prepending.
func boundaryChunks(lines []string, boundaries []boundary) []rawChunk {
	var out []rawChunk

	if boundaries[0].line > 0 {
		preambleLen := boundaries[0].line
		if preambleLen >= minLines {
			out = append(out, rawChunk{start: 0, end: boundaries[0].line - 1, kind: KindSection, name: "imports/preamble"})
		}
	}

	single := len(boundaries) == 1
	for i, b := range boundaries {
		end := len(lines) - 1
		if i+1 < len(boundaries) {
			end = boundaries[i+1].line - 1
		}
		start := b.line
		if end < start {
			end = start
		}
		length := end - start + 1
		if length < minLines && !single {
			continue
		}
		if length > maxLines {
			out = append(out, splitOversized(start, end, b.kind, b.name)...)
		} else {
			out = append(out, rawChunk{start: start, end: end, kind: b.kind, name: b.name})
		}
	}
	return out
}

func splitOversized(start, end int, kind Kind, name string) []rawChunk {
	var out []rawChunk
	part := 0
	for s := start; s <= end; s += maxLines {
		e := s + maxLines - 1
		if e > end {
			e = end
		}
		n := name
		if part > 0 {
			n = fmt.Sprintf("%s (cont. %d)", name, part+1)
		}
		out = append(out, rawChunk{start: s, end: e, kind: kind, name: n})
		part++
	}
	return out
}

// sizeChunks emits the file as one chunk if it fits within maxLines,
// otherwise cuts it into consecutive fixed-size slices.
func sizeChunks(lines []string) []rawChunk {
	if len(lines) <= maxLines {
		return []rawChunk{{start: 0, end: len(lines) - 1, kind: KindSection, name: ""}}
	}
	var out []rawChunk
	for s := 0; s < len(lines); s += maxLines {
		e := s + maxLines - 1
		if e >= len(lines) {
			e = len(lines) - 1
		}
		out = append(out, rawChunk{start: s, end: e, kind: KindSection, name: ""})
	}
	return out
}
