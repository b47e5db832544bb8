// Package pipeline wires Source, Chunker, Cache, Analyzers, Ranker,
// Selector, and Formatter into the single builder entry point lmfetch's
// callers (CLI, MCP server) use.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/Abdulmumin1/lmfetch/internal/analyze"
	"github.com/Abdulmumin1/lmfetch/internal/cache"
	"github.com/Abdulmumin1/lmfetch/internal/chunker"
	"github.com/Abdulmumin1/lmfetch/internal/chunker/languages"
	"github.com/Abdulmumin1/lmfetch/internal/embed"
	"github.com/Abdulmumin1/lmfetch/internal/format"
	"github.com/Abdulmumin1/lmfetch/internal/generate"
	"github.com/Abdulmumin1/lmfetch/internal/lmerr"
	"github.com/Abdulmumin1/lmfetch/internal/overview"
	"github.com/Abdulmumin1/lmfetch/internal/rank"
	"github.com/Abdulmumin1/lmfetch/internal/rerank"
	"github.com/Abdulmumin1/lmfetch/internal/selector"
	"github.com/Abdulmumin1/lmfetch/internal/source"
	"github.com/Abdulmumin1/lmfetch/internal/token"
)

// ProgressFunc receives advisory phase-transition messages. Semantics
// never depend on it being called or on its argument.
type ProgressFunc func(message string)

// Options configures a single build.
type Options struct {
	Path       string
	Query      string
	Budget     string // "N", "Nk", or "Nm"
	Includes   []string
	Excludes   []string
	Fast       bool // keyword-only ranking when true (the CLI and MCP default); false runs the hybrid ranker
	ForceLarge bool
	Overview   bool
	OnProgress ProgressFunc

	// Format selects the context rendering: "markdown" (default) or "xml".
	Format string

	// FollowImports runs a second selection pass that spends any
	// leftover budget headroom on chunks from files reachable through
	// the import graph from the already-selected set. ImportDepth
	// bounds how many import/importedBy hops that pass walks (1 if unset).
	FollowImports bool
	ImportDepth   int

	// Rerank runs the optional LLM-powered rerank suspension point
	// over the top RerankTopK*2 ranked chunks before selection. Only
	// takes effect when Fast is false and a generator is configured.
	Rerank     bool
	RerankTopK int
}

// Result is the builder's output.
type Result struct {
	Context           string
	Chunks            []chunker.Chunk
	Tokens            int
	FilesProcessed    int
	ChunksCreated     int
	Overview          string
	RelatedFilesAdded int
}

// Pipeline owns the two process-wide mutables — the token memoization
// map and the cache database — for the lifetime of one caller. Build
// may be called multiple times against the same Pipeline.
type Pipeline struct {
	cache      *cache.Cache
	counter    *token.Counter
	registry   *chunker.Registry
	log        *slog.Logger
	embedCache *rank.EmbedCache
	embedder   embed.Provider
	generator  generate.Generator
}

// New opens the chunk cache at cacheDBPath and prepares the shared
// token counter and chunker registry. embedCacheDir may be empty to
// disable the on-disk embedding cache tier; embedder/generator may be
// nil when the caller only ever uses fast=true builds.
func New(cacheDBPath, embedCacheDir string, embedder embed.Provider, generator generate.Generator, log *slog.Logger) (*Pipeline, error) {
	if log == nil {
		log = slog.Default()
	}
	c, err := cache.Open(cacheDBPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", lmerr.ErrCacheCorrupt, err)
	}
	counter, err := token.NewCounter()
	if err != nil {
		c.Close()
		return nil, fmt.Errorf("create token counter: %w", err)
	}
	reg := chunker.NewRegistry()
	languages.RegisterAll(reg)

	return &Pipeline{
		cache:      c,
		counter:    counter,
		registry:   reg,
		log:        log,
		embedCache: rank.NewEmbedCache(embedCacheDir),
		embedder:   embedder,
		generator:  generator,
	}, nil
}

// Close releases the cache database and clears the token memoization
// map. Callers must invoke this exactly once, after their last Build.
func (p *Pipeline) Close() error {
	p.counter.Clear()
	return p.cache.Close()
}

func (p *Pipeline) progress(fn ProgressFunc, msg string) {
	if fn != nil {
		fn(msg)
	}
	p.log.Info(msg)
}

// Build runs the full retrieval pipeline for opts.
func (p *Pipeline) Build(ctx context.Context, opts Options) (*Result, error) {
	budget, err := token.ParseBudget(defaultString(opts.Budget, "8k"))
	if err != nil {
		return nil, err
	}

	src, err := p.openSource(opts)
	if err != nil {
		return nil, err
	}

	p.progress(opts.OnProgress, "Discovering files")
	var files []source.File
	for f := range src.Discover() {
		files = append(files, f)
	}
	p.progress(opts.OnProgress, fmt.Sprintf("Found %d files", len(files)))

	if len(files) == 0 {
		return &Result{Context: "", Chunks: nil, Tokens: 0, FilesProcessed: 0, ChunksCreated: 0}, nil
	}

	p.progress(opts.OnProgress, "Analyzing dependencies")
	fileScores, graph := p.analyzeFiles(files)

	p.progress(opts.OnProgress, "Chunking files")
	chunks := p.chunkFiles(files)
	p.progress(opts.OnProgress, fmt.Sprintf("Created %d chunks", len(chunks)))

	p.progress(opts.OnProgress, "Ranking chunks")
	scored := p.rankChunks(ctx, opts, chunks, fileScores)

	if !opts.Fast && opts.Rerank && p.generator != nil {
		p.progress(opts.OnProgress, "Reranking with language model")
		scored = rerank.LLM(ctx, p.generator, opts.Query, scored, opts.RerankTopK)
	}

	p.progress(opts.OnProgress, "Selecting best chunks")
	selected := selector.Select(scored, budget)

	var relatedAdded int
	if opts.FollowImports {
		p.progress(opts.OnProgress, "Following import graph")
		selectedPaths := make(map[string]bool, len(selected))
		for _, s := range selected {
			selectedPaths[s.Chunk.FilePath] = true
		}
		depth := opts.ImportDepth
		if depth <= 0 {
			depth = 1
		}
		related := analyze.RelatedFiles(graph, selectedPaths, depth)
		running := selector.TotalCost(selected)
		added := selector.SelectRelated(scored, selectedPaths, related, running, budget)
		if len(added) > 0 {
			addedFiles := make(map[string]bool, len(added))
			for _, s := range added {
				addedFiles[s.Chunk.FilePath] = true
			}
			relatedAdded = len(addedFiles)
			selected = append(selected, added...)
			sort.SliceStable(selected, func(i, j int) bool { return selected[i].Score > selected[j].Score })
		}
	}

	p.progress(opts.OnProgress, "Formatting context")
	doc := format.Format(selected, defaultString(opts.Format, "markdown"))

	result := &Result{
		Context:           doc,
		Chunks:            chunksOf(selected),
		Tokens:            sumTokens(selected),
		FilesProcessed:    len(files),
		ChunksCreated:     len(chunks),
		RelatedFilesAdded: relatedAdded,
	}

	if opts.Overview {
		result.Overview = overview.Build(fileStatsOf(files, chunks, fileScores), chunks)
	}
	return result, nil
}

func (p *Pipeline) openSource(opts Options) (source.Source, error) {
	so := source.Options{
		Root:       opts.Path,
		Includes:   opts.Includes,
		Excludes:   opts.Excludes,
		ForceLarge: opts.ForceLarge,
	}
	if source.IsRemoteURL(opts.Path) {
		return nil, fmt.Errorf("%w: remote preparation is an external collaborator; pass a pre-populated local path", lmerr.ErrRootNotFound)
	}
	local, err := source.NewLocal(so, p.log)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", lmerr.ErrRootNotFound, err)
	}
	return local, nil
}

func (p *Pipeline) analyzeFiles(files []source.File) (map[string]float64, *analyze.Graph) {
	fileSources := make([]analyze.FileSource, len(files))
	for i, f := range files {
		fileSources[i] = analyze.FileSource{RelPath: f.RelPath, Content: f.Content, Language: f.Language}
	}
	graph := analyze.BuildGraph(fileSources)
	centrality := analyze.Centrality(graph)

	importance := make(map[string]float64, len(files))
	for _, f := range files {
		importance[f.RelPath] = analyze.Importance(f.RelPath, f.Language)
	}
	return analyze.CombinedScore(importance, centrality), graph
}

// chunkBatchSize follows §5's parallelism knob: min(20, max(5, ceil(n/10))).
func chunkBatchSize(n int) int {
	batch := int(math.Ceil(float64(n) / 10))
	if batch < 5 {
		batch = 5
	}
	if batch > 20 {
		batch = 20
	}
	return batch
}

func (p *Pipeline) chunkFiles(files []source.File) []chunker.Chunk {
	workers := chunkBatchSize(len(files))
	work := make(chan source.File)
	results := make(chan []chunker.Chunk)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for f := range work {
				results <- p.chunkOneFile(f)
			}
		}()
	}
	go func() {
		for _, f := range files {
			work <- f
		}
		close(work)
	}()
	go func() {
		wg.Wait()
		close(results)
	}()

	var all []chunker.Chunk
	for cs := range results {
		all = append(all, cs...)
	}
	return all
}

func (p *Pipeline) chunkOneFile(f source.File) []chunker.Chunk {
	fresh, err := p.cache.HasFreshChunks(f.RelPath, f.ModTime)
	if err != nil {
		p.log.Warn("cache freshness check failed", "path", f.RelPath, "err", err)
	}
	if fresh {
		rows, err := p.cache.GetChunks(f.RelPath)
		if err == nil {
			chunks := make([]chunker.Chunk, len(rows))
			for i, r := range rows {
				chunks[i] = r.ToChunk(f.RelPath, f.Language, p.counter)
			}
			sort.SliceStable(chunks, func(i, j int) bool { return chunks[i].StartLine < chunks[j].StartLine })
			return chunks
		}
		p.log.Warn("cache read failed, rechunking", "path", f.RelPath, "err", err)
	}

	chunks := chunker.ChunkFile(f.RelPath, f.Content, f.Language, p.registry, p.counter)

	if err := p.cache.PutFile(f.RelPath, f.Content, f.ModTime, f.Language); err != nil {
		p.log.Warn("cache file write failed", "path", f.RelPath, "err", err)
		return chunks
	}
	rows := make([]cache.ChunkRow, len(chunks))
	for i, c := range chunks {
		rows[i] = cache.FromChunk(c)
	}
	if err := p.cache.PutChunks(f.RelPath, rows); err != nil {
		p.log.Warn("cache chunk write failed", "path", f.RelPath, "err", err)
	}
	return chunks
}

func (p *Pipeline) rankChunks(ctx context.Context, opts Options, chunks []chunker.Chunk, fileScores map[string]float64) []rank.ScoredChunk {
	if opts.Fast {
		scored := rank.Keyword(chunks, opts.Query)
		sort.SliceStable(scored, func(i, j int) bool { return scored[i].Score > scored[j].Score })
		return scored
	}

	p.progress(opts.OnProgress, "Computing keyword scores")
	p.progress(opts.OnProgress, "Generating hypothetical answer")
	p.progress(opts.OnProgress, "Computing semantic similarity")
	h := &rank.Hybrid{
		Embedder:  p.embedder,
		Generator: p.generator,
		Cache:     p.embedCache,
		FileScore: fileScores,
	}
	p.progress(opts.OnProgress, "Combining ranking signals")
	return h.Rank(ctx, chunks, opts.Query)
}

func chunksOf(scored []rank.ScoredChunk) []chunker.Chunk {
	out := make([]chunker.Chunk, len(scored))
	for i, s := range scored {
		out[i] = s.Chunk
	}
	return out
}

func sumTokens(scored []rank.ScoredChunk) int {
	total := 0
	for _, s := range scored {
		total += s.Chunk.Tokens
	}
	return total
}

func fileStatsOf(files []source.File, chunks []chunker.Chunk, fileScores map[string]float64) []overview.FileStats {
	chunkCount := make(map[string]int, len(files))
	for _, c := range chunks {
		chunkCount[c.FilePath]++
	}
	out := make([]overview.FileStats, len(files))
	for i, f := range files {
		out[i] = overview.FileStats{
			Path:       f.RelPath,
			Language:   f.Language,
			ChunkCount: chunkCount[f.RelPath],
			Score:      fileScores[f.RelPath],
		}
	}
	return out
}

func defaultString(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

// CachePath returns the default per-run cache database path rooted at
// $HOME/.cache/<appname>/cache.db.
func CachePath(appName string) (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	dir := filepath.Join(home, ".cache", appName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create cache dir: %w", err)
	}
	return filepath.Join(dir, "cache.db"), nil
}

// EmbeddingCacheDir returns the default on-disk embedding cache
// directory rooted at $HOME/.cache/<appname>/embeddings.
func EmbeddingCacheDir(appName string) (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	dir := filepath.Join(home, ".cache", appName, "embeddings")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create embeddings dir: %w", err)
	}
	return dir, nil
}
