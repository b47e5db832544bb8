package languages

import "github.com/Abdulmumin1/lmfetch/internal/chunker"

// RegisterRuby installs boundary patterns for Ruby source.
func RegisterRuby(r *chunker.Registry) {
	r.Register("ruby", []chunker.Pattern{
		chunker.Pat(`^\s*class\s+(\w+)`, chunker.KindClass, 1),
		chunker.Pat(`^\s*module\s+(\w+)`, chunker.KindModule, 1),
		chunker.Pat(`^\s*def\s+(?:self\.)?(\w+[\?!=]?)`, chunker.KindFunction, 1),
	})
}
