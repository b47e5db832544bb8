package format

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Abdulmumin1/lmfetch/internal/chunker"
	"github.com/Abdulmumin1/lmfetch/internal/rank"
)

func TestMarkdownGroupsByFileAndSortsLines(t *testing.T) {
	scored := []rank.ScoredChunk{
		{Chunk: chunker.Chunk{FilePath: "a.go", StartLine: 20, EndLine: 25, Kind: chunker.KindFunction, Name: "Run", Language: "go", Content: "func Run() {}"}},
		{Chunk: chunker.Chunk{FilePath: "a.go", StartLine: 1, EndLine: 1, Kind: chunker.KindVariable, Name: "x", Language: "go", Content: "var x int"}},
	}
	out := Markdown(scored)

	firstHeading := "### Line 1 (variable: x)"
	secondHeading := "### Lines 20-25 (function: Run)"
	assert.Contains(t, out, "## a.go")
	assert.Less(t, indexOf(out, firstHeading), indexOf(out, secondHeading))
}

func TestMarkdownOmitsParentheticalWhenNameEmpty(t *testing.T) {
	scored := []rank.ScoredChunk{
		{Chunk: chunker.Chunk{FilePath: "b.go", StartLine: 1, EndLine: 5, Kind: chunker.KindSection, Language: "go", Content: "package b"}},
	}
	out := Markdown(scored)
	assert.Contains(t, out, "### Lines 1-5\n")
	assert.NotContains(t, out, "(")
}

func TestXMLEmitsOneFileElementPerChunkInGivenOrder(t *testing.T) {
	scored := []rank.ScoredChunk{
		{Chunk: chunker.Chunk{FilePath: "a.go", StartLine: 1, EndLine: 3, Kind: chunker.KindFunction, Name: "Run", Language: "go", Content: "func Run() {}"}},
		{Chunk: chunker.Chunk{FilePath: "b.go", StartLine: 4, EndLine: 4, Language: "go", Content: "var x int"}},
	}
	out := XML(scored)
	assert.Less(t, indexOf(out, `path="a.go"`), indexOf(out, `path="b.go"`))
	assert.Contains(t, out, `name="Run" type="function"`)
	assert.Contains(t, out, `lines="1-3"`)
	assert.NotContains(t, out, `name=""`)
}

func TestFormatDispatchesOnMode(t *testing.T) {
	scored := []rank.ScoredChunk{
		{Chunk: chunker.Chunk{FilePath: "a.go", StartLine: 1, EndLine: 1, Language: "go", Content: "x"}},
	}
	assert.Equal(t, Markdown(scored), Format(scored, ""))
	assert.Equal(t, Markdown(scored), Format(scored, "markdown"))
	assert.Equal(t, XML(scored), Format(scored, "xml"))
}

func indexOf(s, sub string) int {
	for i := 0; i+len(sub) <= len(s); i++ {
		if s[i:i+len(sub)] == sub {
			return i
		}
	}
	return -1
}
