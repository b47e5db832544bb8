package analyze

// Graph is a directed import graph: imports[p] lists the local files p
// imports; importedBy is its inverse. Both maps have an entry for every
// discovered file, per spec's DependencyGraph invariant.
type Graph struct {
	Imports    map[string][]string
	ImportedBy map[string][]string
}

// FileSource supplies the (relative path, content, language) triples the
// graph is built from.
type FileSource struct {
	RelPath  string
	Content  string
	Language string
}

// BuildGraph scans every file's content for import statements and
// resolves local (relative) references against the discovered path set.
// External module references are dropped. Cyclic graphs are expected and
// not detected or rejected — PageRank converges under any non-negative
// adjacency.
func BuildGraph(files []FileSource) *Graph {
	discovered := make(map[string]bool, len(files))
	for _, f := range files {
		discovered[f.RelPath] = true
	}

	g := &Graph{
		Imports:    make(map[string][]string, len(files)),
		ImportedBy: make(map[string][]string, len(files)),
	}
	for _, f := range files {
		g.Imports[f.RelPath] = nil
		g.ImportedBy[f.RelPath] = nil
	}

	for _, f := range files {
		refs := ScanImports(f.Content, f.Language)
		seen := make(map[string]bool)
		for _, ref := range refs {
			resolved := resolveImport(f.RelPath, ref, f.Language, discovered)
			if resolved == "" || resolved == f.RelPath || seen[resolved] {
				continue
			}
			seen[resolved] = true
			g.Imports[f.RelPath] = append(g.Imports[f.RelPath], resolved)
			g.ImportedBy[resolved] = append(g.ImportedBy[resolved], f.RelPath)
		}
	}
	return g
}
