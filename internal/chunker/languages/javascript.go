package languages

import "github.com/Abdulmumin1/lmfetch/internal/chunker"

// jsBoundaryPatterns covers JS, JSX, and the ECMAScript subset TS shares.
var jsBoundaryPatterns = []chunker.Pattern{
	chunker.Pat(`^\s*(?:export\s+)?(?:default\s+)?class\s+(\w+)`, chunker.KindClass, 1),
	chunker.Pat(`^\s*(?:export\s+)?(?:default\s+)?(?:async\s+)?function\s*\*?\s*(\w+)\s*\(`, chunker.KindFunction, 1),
	chunker.Pat(`^\s*(?:export\s+)?const\s+(\w+)\s*=\s*(?:async\s+)?\([^)]*\)\s*(?::[^=]*)?=>`, chunker.KindFunction, 1),
	chunker.Pat(`^\s*(?:export\s+)?const\s+(\w+)\s*=\s*(?:async\s+)?function`, chunker.KindFunction, 1),
	chunker.Pat(`^\s*(?:public\s+|private\s+|protected\s+|static\s+|async\s+)*(\w+)\s*\([^)]*\)\s*(?::[^{]*)?{\s*$`, chunker.KindMethod, 1),
}

// RegisterJavaScript installs boundary patterns for JS/JSX.
func RegisterJavaScript(r *chunker.Registry) {
	r.Register("javascript", jsBoundaryPatterns)
}

// RegisterTypeScript installs boundary patterns for TS/TSX, extending the
// JS set with interface/type/enum constructs.
func RegisterTypeScript(r *chunker.Registry) {
	patterns := append([]chunker.Pattern{}, jsBoundaryPatterns...)
	patterns = append(patterns,
		chunker.Pat(`^\s*(?:export\s+)?interface\s+(\w+)`, chunker.KindInterface, 1),
		chunker.Pat(`^\s*(?:export\s+)?type\s+(\w+)\s*=`, chunker.KindType, 1),
		chunker.Pat(`^\s*(?:export\s+)?enum\s+(\w+)`, chunker.KindEnum, 1),
	)
	r.Register("typescript", patterns)
}
