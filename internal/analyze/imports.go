// Package analyze builds a directed import graph over a file set, derives
// a PageRank-style centrality score per file, and combines it with a
// static, path-heuristic importance prior.
package analyze

import (
	"path/filepath"
	"regexp"
	"strings"
)

// importPatterns extracts raw module references per language. Only the
// capture group holding the module path/specifier is used; whether that
// reference is relative is decided afterward by resolveImport().
var importPatterns = map[string][]*regexp.Regexp{
	"python": {
		regexp.MustCompile(`^\s*from\s+(\.[\w.]*)\s+import\b`),
		regexp.MustCompile(`^\s*import\s+(\.[\w.]*)`),
	},
	"javascript": jsImportPatterns,
	"typescript": jsImportPatterns,
	"go": {
		regexp.MustCompile(`^\s*import\s+"([^"]+)"`),
		regexp.MustCompile(`^\s*"([^"]+)"\s*$`),
	},
	"rust": {
		regexp.MustCompile(`^\s*use\s+(?:crate|self|super)((?:::\w+)*)`),
		regexp.MustCompile(`^\s*mod\s+(\w+)\s*;`),
	},
	"ruby": {
		regexp.MustCompile(`^\s*require_relative\s+['"]([^'"]+)['"]`),
		regexp.MustCompile(`^\s*require\s+['"](\.[^'"]+)['"]`),
	},
}

var jsImportPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^\s*import\s+.*\s+from\s+['"](\.[^'"]+)['"]`),
	regexp.MustCompile(`^\s*import\s*\(\s*['"](\.[^'"]+)['"]\s*\)`),
	regexp.MustCompile(`require\(\s*['"](\.[^'"]+)['"]\s*\)`),
}

// extensionCandidates lists fallback extensions tried when resolving a
// relative import that doesn't already name a discovered file.
var extensionCandidates = map[string][]string{
	"javascript": {".js", ".jsx", ".mjs", ".cjs"},
	"typescript": {".ts", ".tsx", ".js", ".jsx"},
	"python":     {".py"},
	"rust":       {".rs"},
	"ruby":       {".rb"},
	"go":         {".go"},
}

// ScanImports extracts raw module references from a file's content for
// its language. Results are not yet resolved to other discovered files.
func ScanImports(content, language string) []string {
	patterns := importPatterns[language]
	if patterns == nil {
		return nil
	}
	var refs []string
	for _, line := range strings.Split(content, "\n") {
		for _, p := range patterns {
			m := p.FindStringSubmatch(line)
			if m != nil && len(m) > 1 {
				refs = append(refs, m[1])
				break
			}
		}
	}
	return refs
}

// resolveImport resolves a raw reference found in fromRel (relative to
// root) against the set of discovered relative paths. External
// (non-relative) references resolve to "".
func resolveImport(fromRel, ref, language string, discovered map[string]bool) string {
	if language == "go" {
		// Go's import strings name packages, not relative paths; only a
		// same-module local import (one beginning with "./" conceptually
		// via a resolved relative directory) is considered local. Go's
		// own import paths aren't directory-relative, so local resolution
		// here is limited to same-directory siblings via package name
		// heuristics is out of scope; treat every Go import as external.
		return ""
	}
	if language == "rust" {
		if strings.HasPrefix(ref, "::") || ref == "" {
			base := filepath.Dir(fromRel)
			for _, ext := range extensionCandidates["rust"] {
				cand := filepath.ToSlash(filepath.Join(base, strings.TrimPrefix(ref, "::")+ext))
				if discovered[cand] {
					return cand
				}
			}
		}
		return ""
	}

	if !strings.HasPrefix(ref, ".") {
		return "" // external module
	}

	dir := filepath.Dir(fromRel)
	joined := filepath.ToSlash(filepath.Join(dir, ref))

	if discovered[joined] {
		return joined
	}
	for _, ext := range extensionCandidates[language] {
		if discovered[joined+ext] {
			return joined + ext
		}
	}
	// index.* / __init__.py fallbacks.
	indexNames := []string{"/index.js", "/index.ts", "/index.jsx", "/index.tsx", "/__init__.py"}
	for _, suffix := range indexNames {
		if discovered[joined+suffix] {
			return joined + suffix
		}
	}
	return ""
}
