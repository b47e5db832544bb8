package languages

import "github.com/Abdulmumin1/lmfetch/internal/chunker"

// RegisterRust installs boundary patterns for Rust source.
func RegisterRust(r *chunker.Registry) {
	r.Register("rust", []chunker.Pattern{
		chunker.Pat(`^\s*(?:pub\s+)?fn\s+(\w+)`, chunker.KindFunction, 1),
		chunker.Pat(`^\s*(?:pub\s+)?struct\s+(\w+)`, chunker.KindType, 1),
		chunker.Pat(`^\s*(?:pub\s+)?enum\s+(\w+)`, chunker.KindEnum, 1),
		chunker.Pat(`^\s*(?:pub\s+)?trait\s+(\w+)`, chunker.KindInterface, 1),
		chunker.Pat(`^\s*impl(?:<[^>]*>)?\s+(?:\w+\s+for\s+)?(\w+)`, chunker.KindClass, 1),
		chunker.Pat(`^\s*mod\s+(\w+)`, chunker.KindModule, 1),
	})
}
