// Package languages holds the per-language boundary pattern tables the
// chunker uses to find construct starts, one file per language family,
// each exposing a Register* function that installs its patterns into a
// chunker.Registry.
package languages

import "github.com/Abdulmumin1/lmfetch/internal/chunker"

// RegisterAll installs every bundled language's boundary patterns.
func RegisterAll(r *chunker.Registry) {
	RegisterPython(r)
	RegisterJavaScript(r)
	RegisterTypeScript(r)
	RegisterGo(r)
	RegisterRust(r)
	RegisterRuby(r)
	RegisterPHP(r)
	RegisterJava(r)
	RegisterKotlin(r)
	RegisterScala(r)
	RegisterSwift(r)
	RegisterCSharp(r)
	RegisterC(r)
	RegisterCPP(r)
}
