package chunker

import (
	"regexp"
	"sync"
)

// Pattern associates a line-anchored regular expression with the
// construct kind it introduces and the capture group (1-indexed) holding
// its name, if any (0 means "no name capture").
type Pattern struct {
	Regexp    *regexp.Regexp
	Kind      Kind
	NameGroup int
}

// Pat compiles a boundary pattern. Panics on a malformed expression,
// since the pattern table is a fixed, build-time constant.
func Pat(expr string, kind Kind, nameGroup int) Pattern {
	return Pattern{Regexp: regexp.MustCompile(expr), Kind: kind, NameGroup: nameGroup}
}

// Registry maps a language name to its ordered boundary pattern table.
type Registry struct {
	mu    sync.RWMutex
	langs map[string][]Pattern
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{langs: make(map[string][]Pattern)}
}

// Register installs the boundary pattern table for a language name.
func (r *Registry) Register(language string, patterns []Pattern) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.langs[language] = patterns
}

// Lookup returns the pattern table for a language, or nil if unregistered
// (the caller falls back to size chunking).
func (r *Registry) Lookup(language string) []Pattern {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.langs[language]
}

