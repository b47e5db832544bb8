package languages

import "github.com/Abdulmumin1/lmfetch/internal/chunker"

// RegisterCSharp installs boundary patterns for C# source.
func RegisterCSharp(r *chunker.Registry) {
	r.Register("csharp", []chunker.Pattern{
		chunker.Pat(`^\s*(?:public|private|protected|internal)?\s*(?:static\s+|abstract\s+|sealed\s+)*class\s+(\w+)`, chunker.KindClass, 1),
		chunker.Pat(`^\s*(?:public|private|protected|internal)?\s*interface\s+(\w+)`, chunker.KindInterface, 1),
		chunker.Pat(`^\s*(?:public|private|protected|internal)?\s*enum\s+(\w+)`, chunker.KindEnum, 1),
		chunker.Pat(`^\s*(?:public|private|protected|internal)?\s*(?:static\s+|virtual\s+|override\s+|async\s+)*[\w<>\[\],.]+\s+(\w+)\s*\([^;]*$`, chunker.KindMethod, 1),
	})
}
