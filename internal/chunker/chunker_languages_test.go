package chunker_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Abdulmumin1/lmfetch/internal/chunker"
	"github.com/Abdulmumin1/lmfetch/internal/chunker/languages"
)

type fakeCounter struct{}

func (fakeCounter) Count(text string) int { return len(strings.Fields(text)) }

func TestChunkGoFunctions(t *testing.T) {
	reg := chunker.NewRegistry()
	languages.RegisterGo(reg)

	src := "package main\n\nimport \"fmt\"\n\n" +
		strings.Repeat("// filler\n", 12) +
		"func Hello() {\n\tfmt.Println(\"hi\")\n}\n\n" +
		strings.Repeat("// more filler\n", 12) +
		"func World() {\n\tfmt.Println(\"world\")\n}\n" +
		strings.Repeat("// trailing\n", 8)

	chunks := chunker.ChunkFile("main.go", src, "go", reg, fakeCounter{})
	require.NotEmpty(t, chunks)

	var names []string
	for _, c := range chunks {
		names = append(names, c.Name)
	}
	assert.Contains(t, names, "Hello")
	assert.Contains(t, names, "World")
}

func TestChunkCoverageIsDisjointAndMonotone(t *testing.T) {
	reg := chunker.NewRegistry()
	languages.RegisterGo(reg)

	src := "package main\n\n" + strings.Repeat("func F"+"1"+"() {}\n", 1) +
		strings.Repeat("x := 1\n", 30) +
		"func G() {}\n" + strings.Repeat("y := 2\n", 30)

	chunks := chunker.ChunkFile("f.go", src, "go", reg, fakeCounter{})
	for i := 1; i < len(chunks); i++ {
		assert.Less(t, chunks[i-1].EndLine, chunks[i].StartLine, "chunks must not overlap")
		assert.LessOrEqual(t, chunks[i-1].StartLine, chunks[i].StartLine)
	}
	for _, c := range chunks {
		assert.LessOrEqual(t, c.StartLine, c.EndLine)
	}
}

func TestChunkDropsShortCandidatesUnlessOnlyOne(t *testing.T) {
	reg := chunker.NewRegistry()
	languages.RegisterGo(reg)

	// Two boundaries very close together — the first candidate is short
	// and should be dropped since there is more than one boundary.
	src := "func A() {}\nfunc B() {\n" + strings.Repeat("\tx := 1\n", 20) + "}\n"
	chunks := chunker.ChunkFile("short.go", src, "go", reg, fakeCounter{})
	for _, c := range chunks {
		assert.NotEqual(t, "A", c.Name)
	}
}

func TestChunkPreservesSingleBoundaryEvenIfShort(t *testing.T) {
	reg := chunker.NewRegistry()
	languages.RegisterGo(reg)

	src := "func Only() {}\n"
	chunks := chunker.ChunkFile("one.go", src, "go", reg, fakeCounter{})
	require.Len(t, chunks, 1)
	assert.Equal(t, "Only", chunks[0].Name)
}
