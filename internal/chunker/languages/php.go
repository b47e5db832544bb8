package languages

import "github.com/Abdulmumin1/lmfetch/internal/chunker"

// RegisterPHP installs boundary patterns for PHP source.
func RegisterPHP(r *chunker.Registry) {
	r.Register("php", []chunker.Pattern{
		chunker.Pat(`^\s*(?:abstract\s+)?class\s+(\w+)`, chunker.KindClass, 1),
		chunker.Pat(`^\s*interface\s+(\w+)`, chunker.KindInterface, 1),
		chunker.Pat(`^\s*(?:public|private|protected)?\s*(?:static\s+)?function\s+(\w+)\s*\(`, chunker.KindFunction, 1),
	})
}
