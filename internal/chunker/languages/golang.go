package languages

import "github.com/Abdulmumin1/lmfetch/internal/chunker"

// RegisterGo installs boundary patterns for Go source.
func RegisterGo(r *chunker.Registry) {
	r.Register("go", []chunker.Pattern{
		chunker.Pat(`^func\s+\([^)]*\)\s*(\w+)\s*\(`, chunker.KindMethod, 1),
		chunker.Pat(`^func\s+(\w+)\s*\(`, chunker.KindFunction, 1),
		chunker.Pat(`^type\s+(\w+)\s+interface\b`, chunker.KindInterface, 1),
		chunker.Pat(`^type\s+(\w+)\s+struct\b`, chunker.KindType, 1),
		chunker.Pat(`^type\s+(\w+)\s+`, chunker.KindType, 1),
		chunker.Pat(`^const\s*\(`, chunker.KindConstant, 0),
		chunker.Pat(`^var\s*\(`, chunker.KindVariable, 0),
	})
}
