package languages

import "github.com/Abdulmumin1/lmfetch/internal/chunker"

// jvmBoundaryPatterns covers the class/interface/enum/method shapes
// Java, Kotlin, and Scala share.
var jvmBoundaryPatterns = []chunker.Pattern{
	chunker.Pat(`^\s*(?:public|private|protected)?\s*(?:static\s+|final\s+|abstract\s+)*class\s+(\w+)`, chunker.KindClass, 1),
	chunker.Pat(`^\s*(?:public|private|protected)?\s*interface\s+(\w+)`, chunker.KindInterface, 1),
	chunker.Pat(`^\s*(?:public|private|protected)?\s*enum\s+(\w+)`, chunker.KindEnum, 1),
	chunker.Pat(`^\s*(?:public|private|protected)?\s*(?:static\s+|final\s+|abstract\s+|synchronized\s+)*[\w<>\[\],.]+\s+(\w+)\s*\([^;]*$`, chunker.KindMethod, 1),
}

// RegisterJava installs boundary patterns for Java source.
func RegisterJava(r *chunker.Registry) {
	r.Register("java", jvmBoundaryPatterns)
}

// RegisterKotlin installs boundary patterns for Kotlin source.
func RegisterKotlin(r *chunker.Registry) {
	patterns := append([]chunker.Pattern{}, jvmBoundaryPatterns...)
	patterns = append(patterns,
		chunker.Pat(`^\s*fun\s+(\w+)\s*\(`, chunker.KindFunction, 1),
		chunker.Pat(`^\s*data\s+class\s+(\w+)`, chunker.KindClass, 1),
	)
	r.Register("kotlin", patterns)
}

// RegisterScala installs boundary patterns for Scala source.
func RegisterScala(r *chunker.Registry) {
	patterns := append([]chunker.Pattern{}, jvmBoundaryPatterns...)
	patterns = append(patterns,
		chunker.Pat(`^\s*def\s+(\w+)\s*[\[\(]`, chunker.KindFunction, 1),
		chunker.Pat(`^\s*object\s+(\w+)`, chunker.KindModule, 1),
		chunker.Pat(`^\s*trait\s+(\w+)`, chunker.KindInterface, 1),
	)
	r.Register("scala", patterns)
}
