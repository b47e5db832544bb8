package languages

import "github.com/Abdulmumin1/lmfetch/internal/chunker"

// RegisterSwift installs boundary patterns for Swift source.
func RegisterSwift(r *chunker.Registry) {
	r.Register("swift", []chunker.Pattern{
		chunker.Pat(`^\s*(?:public\s+|private\s+|internal\s+|fileprivate\s+)?(?:final\s+)?class\s+(\w+)`, chunker.KindClass, 1),
		chunker.Pat(`^\s*(?:public\s+|private\s+)?struct\s+(\w+)`, chunker.KindType, 1),
		chunker.Pat(`^\s*(?:public\s+|private\s+)?protocol\s+(\w+)`, chunker.KindInterface, 1),
		chunker.Pat(`^\s*(?:public\s+|private\s+|internal\s+)?(?:static\s+)?func\s+(\w+)\s*[\(<]`, chunker.KindFunction, 1),
		chunker.Pat(`^\s*enum\s+(\w+)`, chunker.KindEnum, 1),
	})
}
