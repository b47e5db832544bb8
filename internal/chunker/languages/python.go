package languages

import (
	"github.com/Abdulmumin1/lmfetch/internal/chunker"
)

// RegisterPython installs boundary patterns for Python source.
func RegisterPython(r *chunker.Registry) {
	r.Register("python", []chunker.Pattern{
		chunker.Pat(`^\s*class\s+(\w+)`, chunker.KindClass, 1),
		chunker.Pat(`^\s*(?:async\s+)?def\s+(\w+)\s*\(`, chunker.KindFunction, 1),
	})
}
