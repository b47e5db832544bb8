package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/Abdulmumin1/lmfetch/internal/embed"
	"github.com/Abdulmumin1/lmfetch/internal/generate"
	"github.com/Abdulmumin1/lmfetch/internal/pipeline"
)

const appName = "lmfetch"

var (
	flagIncludes      []string
	flagExcludes      []string
	flagOverview      bool
	flagRender        bool
	flagFormat        string
	flagFollowImports bool
	flagImportDepth   int
	flagRerank        bool
)

var fetchCmd = &cobra.Command{
	Use:   "fetch <path> <query>",
	Short: "Build a ranked, budgeted context document for query against path",
	Args:  cobra.ExactArgs(2),
	RunE:  runFetch,
}

func init() {
	fetchCmd.Flags().StringSliceVar(&flagIncludes, "include", nil, "glob(s) to restrict discovery to")
	fetchCmd.Flags().StringSliceVar(&flagExcludes, "exclude", nil, "additional ignore glob(s)")
	fetchCmd.Flags().BoolVar(&flagOverview, "overview", false, "also synthesize a project overview")
	fetchCmd.Flags().BoolVar(&flagRender, "render", true, "render the Markdown result for a terminal via glamour")
	fetchCmd.Flags().StringVar(&flagFormat, "format", "", "context rendering: markdown or xml (default from config)")
	fetchCmd.Flags().BoolVar(&flagFollowImports, "follow-imports", true, "spend leftover budget on files reachable through the import graph")
	fetchCmd.Flags().IntVar(&flagImportDepth, "import-depth", 1, "import/importedBy hops --follow-imports walks")
	fetchCmd.Flags().BoolVar(&flagRerank, "rerank", false, "rerank top candidates with the configured language model (requires fast=false)")
	rootCmd.AddCommand(fetchCmd)
}

func runFetch(cmd *cobra.Command, args []string) error {
	path, query := args[0], args[1]

	cachePath, err := pipeline.CachePath(appName)
	if err != nil {
		return err
	}
	embedDir, err := pipeline.EmbeddingCacheDir(appName)
	if err != nil {
		return err
	}

	var embedder embed.Provider
	var generator generate.Generator
	fast := appConfig.Fast
	if cmd.Flags().Changed("fast") {
		fast = flagFast
	}
	if !fast {
		embedder = embed.NewOllama(appConfig.Embedding.Endpoint, appConfig.Embedding.Model, appConfig.Embedding.Dimension)
		generator = generate.NewOllama(appConfig.Generator.Endpoint, appConfig.Generator.Model)
	}

	p, err := pipeline.New(cachePath, embedDir, embedder, generator, nil)
	if err != nil {
		return err
	}
	defer p.Close()

	budget := flagBudget
	if budget == "" {
		budget = appConfig.DefaultBudget
	}
	outputFormat := flagFormat
	if outputFormat == "" {
		outputFormat = appConfig.Format
	}
	rerankTopK := appConfig.Rerank.TopK
	followImports := appConfig.FollowImports
	if cmd.Flags().Changed("follow-imports") {
		followImports = flagFollowImports
	}
	importDepth := appConfig.ImportDepth
	if cmd.Flags().Changed("import-depth") {
		importDepth = flagImportDepth
	}
	useRerank := appConfig.Rerank.Enabled
	if cmd.Flags().Changed("rerank") {
		useRerank = flagRerank
	}

	prog := newProgressProgram()
	defer prog.stop()

	result, err := p.Build(context.Background(), pipeline.Options{
		Path:          path,
		Query:         query,
		Budget:        budget,
		Includes:      flagIncludes,
		Excludes:      append(append([]string{}, appConfig.ExtraIgnore...), flagExcludes...),
		Fast:          fast,
		Overview:      flagOverview,
		OnProgress:    prog.update,
		Format:        outputFormat,
		FollowImports: followImports,
		ImportDepth:   importDepth,
		Rerank:        useRerank,
		RerankTopK:    rerankTopK,
	})
	prog.stop()
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "files=%d chunks=%d tokens=%d\n", result.FilesProcessed, result.ChunksCreated, result.Tokens)
	if result.Overview != "" {
		fmt.Println(result.Overview)
		fmt.Println()
	}

	if flagRender {
		rendered, err := renderMarkdown(result.Context)
		if err != nil {
			fmt.Println(result.Context)
			return nil
		}
		fmt.Print(rendered)
		return nil
	}
	fmt.Print(result.Context)
	return nil
}

func renderMarkdown(doc string) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return "", fmt.Errorf("create markdown renderer: %w", err)
	}
	return r.Render(doc)
}
