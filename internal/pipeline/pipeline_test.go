package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubEmbedder struct{ dim int }

func (s *stubEmbedder) Embed(_ context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i := range texts {
		v := make([]float32, s.dim)
		v[0] = 1
		out[i] = v
	}
	return out, nil
}

func (s *stubEmbedder) Dimension() int { return s.dim }

type stubGenerator struct {
	calls int
}

func (s *stubGenerator) Generate(_ context.Context, _ string) (string, error) {
	s.calls++
	return "0.9", nil
}

func writeFile(t *testing.T, dir, rel, content string) {
	t.Helper()
	path := filepath.Join(dir, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func newTestPipeline(t *testing.T) *Pipeline {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "cache.db")
	p, err := New(dbPath, "", nil, nil, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = p.Close() })
	return p
}

func TestBuildExactNameHitRanksAboveUnrelated(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "src/auth.py", "def login(user):\n    return check(user)\n\n\n\n\n\n\n\n\n\ndef other():\n    pass\n")
	writeFile(t, dir, "src/util.py", "def helper():\n    return 42\n\n\n\n\n\n\n\n\n\ndef another():\n    pass\n")

	p := newTestPipeline(t)
	result, err := p.Build(context.Background(), Options{
		Path:   dir,
		Query:  "login",
		Budget: "50k",
		Fast:   true,
	})
	require.NoError(t, err)
	require.NotEmpty(t, result.Chunks)

	loginIdx, utilIdx := -1, -1
	for i, c := range result.Chunks {
		if c.FilePath == "src/auth.py" && loginIdx == -1 {
			loginIdx = i
		}
		if c.FilePath == "src/util.py" && utilIdx == -1 {
			utilIdx = i
		}
	}
	require.NotEqual(t, -1, loginIdx)
	if utilIdx != -1 {
		assert.Less(t, loginIdx, utilIdx)
	}
}

func TestBuildStopwordOnlyQueryStillProducesWellFormedResult(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.go", "package a\n\nfunc Foo() {}\n")

	p := newTestPipeline(t)
	result, err := p.Build(context.Background(), Options{
		Path:   dir,
		Query:  "how does the code work",
		Budget: "10k",
		Fast:   true,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, result.FilesProcessed)
}

func TestBuildEmptyRootReturnsEmptyResult(t *testing.T) {
	dir := t.TempDir()
	p := newTestPipeline(t)
	result, err := p.Build(context.Background(), Options{Path: dir, Query: "anything", Budget: "1k", Fast: true})
	require.NoError(t, err)
	assert.Equal(t, 0, result.FilesProcessed)
	assert.Equal(t, "", result.Context)
}

func TestBuildRejectsMalformedBudget(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.go", "package a\n")
	p := newTestPipeline(t)
	_, err := p.Build(context.Background(), Options{Path: dir, Query: "x", Budget: "not-a-budget", Fast: true})
	assert.Error(t, err)
}

func TestBuildCacheReuseAvoidsRechunking(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.go", "package a\n\nfunc Foo() {\n\treturn\n}\n")

	p := newTestPipeline(t)
	first, err := p.Build(context.Background(), Options{Path: dir, Query: "foo", Budget: "10k", Fast: true})
	require.NoError(t, err)

	second, err := p.Build(context.Background(), Options{Path: dir, Query: "foo", Budget: "10k", Fast: true})
	require.NoError(t, err)

	assert.Equal(t, len(first.Chunks), len(second.Chunks))
	for i := range first.Chunks {
		assert.Equal(t, first.Chunks[i].ID, second.Chunks[i].ID)
		assert.Equal(t, first.Chunks[i].Content, second.Chunks[i].Content)
	}
}

func TestBuildFormatXMLRendersFlatFileElements(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.go", "package a\n\nfunc Foo() {}\n")

	p := newTestPipeline(t)
	result, err := p.Build(context.Background(), Options{
		Path:   dir,
		Query:  "foo",
		Budget: "10k",
		Fast:   true,
		Format: "xml",
	})
	require.NoError(t, err)
	assert.Contains(t, result.Context, `<file path="a.go"`)
	assert.NotContains(t, result.Context, "```")
}

func TestBuildFollowImportsResultIncludesImportedFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "src/login.js", "import { check } from './util';\n\nfunction login() {\n\treturn check();\n}\n")
	writeFile(t, dir, "src/util.js", "export function check() {\n\treturn 1;\n}\n")

	p := newTestPipeline(t)
	result, err := p.Build(context.Background(), Options{
		Path:          dir,
		Query:         "login",
		Budget:        "10k",
		Fast:          true,
		FollowImports: true,
		ImportDepth:   1,
	})
	require.NoError(t, err)

	var sawUtil bool
	for _, c := range result.Chunks {
		if c.FilePath == "src/util.js" {
			sawUtil = true
		}
	}
	assert.True(t, sawUtil)
}

func TestBuildFollowImportsOffAddsNoRelatedFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "src/login.js", "import { check } from './util';\n\nfunction login() {\n\treturn check();\n}\n")
	writeFile(t, dir, "src/util.js", "export function check() {\n\treturn 1;\n}\n")

	p := newTestPipeline(t)
	result, err := p.Build(context.Background(), Options{
		Path:          dir,
		Query:         "login",
		Budget:        "10k",
		Fast:          true,
		FollowImports: false,
	})
	require.NoError(t, err)
	assert.Equal(t, 0, result.RelatedFilesAdded)
}

func TestBuildRerankOnlyAppliesWhenNotFastWithGenerator(t *testing.T) {
	dir := t.TempDir()
	for i := 0; i < 3; i++ {
		writeFile(t, dir, fmt.Sprintf("f%d.go", i), "package a\n\nfunc Foo() {\n\t_ = 1\n}\n")
	}

	dbPath := filepath.Join(t.TempDir(), "cache.db")
	gen := &stubGenerator{}
	p, err := New(dbPath, "", &stubEmbedder{dim: 4}, gen, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = p.Close() })

	_, err = p.Build(context.Background(), Options{
		Path:       dir,
		Query:      "foo",
		Budget:     "10k",
		Fast:       false,
		Rerank:     true,
		RerankTopK: 5,
	})
	require.NoError(t, err)
	assert.Greater(t, gen.calls, 1, "rerank should invoke the generator beyond the single HyDE call")
}

func TestBuildRerankSkippedInFastMode(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.go", "package a\n\nfunc Foo() {}\n")

	dbPath := filepath.Join(t.TempDir(), "cache.db")
	gen := &stubGenerator{}
	p, err := New(dbPath, "", &stubEmbedder{dim: 4}, gen, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = p.Close() })

	_, err = p.Build(context.Background(), Options{
		Path:   dir,
		Query:  "foo",
		Budget: "10k",
		Fast:   true,
		Rerank: true,
	})
	require.NoError(t, err)
	assert.Equal(t, 0, gen.calls, "fast mode must not touch the generator at all")
}
