package languages

import "github.com/Abdulmumin1/lmfetch/internal/chunker"

// cBoundaryPatterns covers struct/enum/typedef/function shapes shared by
// C and (extended) C++.
var cBoundaryPatterns = []chunker.Pattern{
	chunker.Pat(`^\s*struct\s+(\w+)`, chunker.KindType, 1),
	chunker.Pat(`^\s*enum\s+(\w+)`, chunker.KindEnum, 1),
	chunker.Pat(`^\s*typedef\s+.*\s+(\w+)\s*;`, chunker.KindType, 1),
	chunker.Pat(`^[\w*\s]+\s(\w+)\s*\([^;{]*\)\s*\{?\s*$`, chunker.KindFunction, 1),
}

// RegisterC installs boundary patterns for C source.
func RegisterC(r *chunker.Registry) {
	r.Register("c", cBoundaryPatterns)
}

// RegisterCPP installs boundary patterns for C++ source, extending the C
// set with class/namespace/template constructs.
func RegisterCPP(r *chunker.Registry) {
	patterns := append([]chunker.Pattern{}, cBoundaryPatterns...)
	patterns = append(patterns,
		chunker.Pat(`^\s*class\s+(\w+)`, chunker.KindClass, 1),
		chunker.Pat(`^\s*namespace\s+(\w+)`, chunker.KindModule, 1),
	)
	r.Register("cpp", patterns)
}
