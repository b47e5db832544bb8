package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Abdulmumin1/lmfetch/internal/embed"
	"github.com/Abdulmumin1/lmfetch/internal/generate"
	"github.com/Abdulmumin1/lmfetch/internal/mcpserver"
	"github.com/Abdulmumin1/lmfetch/internal/pipeline"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start an MCP server exposing fetch_context as a tool",
	RunE:  runMCP,
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(cmd *cobra.Command, args []string) error {
	cachePath, err := pipeline.CachePath(appName)
	if err != nil {
		return err
	}
	embedDir, err := pipeline.EmbeddingCacheDir(appName)
	if err != nil {
		return err
	}

	embedder := embed.NewOllama(appConfig.Embedding.Endpoint, appConfig.Embedding.Model, appConfig.Embedding.Dimension)
	generator := generate.NewOllama(appConfig.Generator.Endpoint, appConfig.Generator.Model)

	p, err := pipeline.New(cachePath, embedDir, embedder, generator, nil)
	if err != nil {
		return fmt.Errorf("start pipeline: %w", err)
	}
	defer p.Close()

	return mcpserver.Serve(p)
}
