package source

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	p := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
}

func collect(t *testing.T, l *Local) map[string]File {
	t.Helper()
	files := make(map[string]File)
	for f := range l.Discover() {
		files[f.RelPath] = f
	}
	return files
}

func TestDiscoverRespectsNestedIgnoreFile(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "main.go", "package main\n")
	writeFile(t, root, "vendored/.gitignore", "*.gen.go\n")
	writeFile(t, root, "vendored/keep.go", "package vendored\n")
	writeFile(t, root, "vendored/skip.gen.go", "package vendored\n")
	writeFile(t, root, "vendored/sub/skip.gen.go", "package sub\n")

	l, err := NewLocal(Options{Root: root}, nil)
	require.NoError(t, err)

	files := collect(t, l)
	assert.Contains(t, files, "main.go")
	assert.Contains(t, files, "vendored/keep.go")
	assert.NotContains(t, files, "vendored/skip.gen.go")
	assert.NotContains(t, files, "vendored/sub/skip.gen.go")
}

func TestDiscoverNestedIgnoreDoesNotLeakToSiblingDirectory(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "a/.gitignore", "secret.go\n")
	writeFile(t, root, "a/secret.go", "package a\n")
	writeFile(t, root, "b/secret.go", "package b\n")

	l, err := NewLocal(Options{Root: root}, nil)
	require.NoError(t, err)

	files := collect(t, l)
	assert.NotContains(t, files, "a/secret.go")
	assert.Contains(t, files, "b/secret.go")
}

func TestDiscoverSkipsHardSkipDirsEvenWithoutIgnoreFile(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "node_modules/pkg/index.js", "module.exports = {}\n")
	writeFile(t, root, "lib.js", "export const x = 1\n")

	l, err := NewLocal(Options{Root: root}, nil)
	require.NoError(t, err)

	files := collect(t, l)
	assert.Contains(t, files, "lib.js")
	assert.NotContains(t, files, "node_modules/pkg/index.js")
}

func TestDiscoverSkipsBinaryExtensions(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "logo.png", "not-really-png-bytes")
	writeFile(t, root, "readme.md", "# hi\n")

	l, err := NewLocal(Options{Root: root}, nil)
	require.NoError(t, err)

	files := collect(t, l)
	assert.Contains(t, files, "readme.md")
	assert.NotContains(t, files, "logo.png")
}

func TestDiscoverHonorsIncludeGlobs(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "app.go", "package app\n")
	writeFile(t, root, "app.py", "x = 1\n")

	l, err := NewLocal(Options{Root: root, Includes: []string{"*.go"}}, nil)
	require.NoError(t, err)

	files := collect(t, l)
	assert.Contains(t, files, "app.go")
	assert.NotContains(t, files, "app.py")
}

func TestLanguageForPathKnownAndUnknownExtensions(t *testing.T) {
	assert.Equal(t, "go", LanguageForPath("main.go"))
	assert.Equal(t, "python", LanguageForPath("pkg/util.py"))
	assert.Equal(t, "text", LanguageForPath("Makefile"))
}
