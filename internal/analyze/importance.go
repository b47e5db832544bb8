package analyze

import (
	"path"
	"regexp"
	"strings"
)

var entryPointNames = map[string]bool{
	"index": true, "main": true, "cli": true, "app": true, "server": true,
	"mod.rs": true, "lib.rs": true,
}

var entryPointExactNames = map[string]bool{
	"__init__.py": true, "mod.rs": true, "lib.rs": true,
	"package.json": true, "go.mod": true, "cargo.toml": true,
	"setup.py": true, "pyproject.toml": true,
}

var coreDirs = map[string]bool{
	"src": true, "lib": true, "core": true, "api": true, "routes": true,
	"controllers": true, "services": true, "models": true,
	"components": true, "hooks": true, "utils": true, "helpers": true,
}

var peripheralDirs = map[string]bool{
	"test": true, "tests": true, "__tests__": true, "spec": true,
	"specs": true, "e2e": true, "fixtures": true, "mocks": true,
	"stubs": true, "examples": true, "docs": true, "scripts": true,
	"tools": true, "config": true, "configs": true,
}

var peripheralFilePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\.test\.`),
	regexp.MustCompile(`\.spec\.`),
	regexp.MustCompile(`_test\.`),
	regexp.MustCompile(`_spec\.`),
	regexp.MustCompile(`\.d\.ts$`),
	regexp.MustCompile(`\.config\.`),
	regexp.MustCompile(`\.mock\.`),
}

// Importance computes the static, query-independent prior for relPath,
// clamped to [0, 1].
func Importance(relPath, language string) float64 {
	score := 0.5

	base := path.Base(relPath)
	baseNoExt := strings.TrimSuffix(base, path.Ext(base))
	if entryPointExactNames[base] || entryPointNames[baseNoExt] {
		score += 0.3
	}

	segments := strings.Split(path.Dir(relPath), "/")
	hasCore, hasPeripheral := false, false
	for _, seg := range segments {
		if coreDirs[seg] {
			hasCore = true
		}
		if peripheralDirs[seg] {
			hasPeripheral = true
		}
	}
	if hasCore {
		score += 0.1
	}
	if hasPeripheral {
		score -= 0.2
	}

	for _, p := range peripheralFilePatterns {
		if p.MatchString(relPath) {
			score -= 0.15
			break
		}
	}

	depth := strings.Count(relPath, "/")
	if depth > 3 {
		score -= 0.05 * float64(depth-3)
	} else if depth == 0 {
		score += 0.1
	}

	switch language {
	case "markdown":
		score -= 0.1
	case "json", "yaml":
		score -= 0.05
	}

	if score < 0 {
		score = 0
	}
	if score > 1 {
		score = 1
	}
	return score
}

// CombinedScore blends the importance prior with centrality, 0.6/0.4,
// over the union of keyed paths. Missing values default to 0.5.
func CombinedScore(importance, centrality map[string]float64) map[string]float64 {
	union := make(map[string]bool, len(importance)+len(centrality))
	for p := range importance {
		union[p] = true
	}
	for p := range centrality {
		union[p] = true
	}

	out := make(map[string]float64, len(union))
	for p := range union {
		imp, ok := importance[p]
		if !ok {
			imp = 0.5
		}
		cen, ok := centrality[p]
		if !ok {
			cen = 0.5
		}
		out[p] = 0.6*imp + 0.4*cen
	}
	return out
}
