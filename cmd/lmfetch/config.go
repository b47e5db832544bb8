package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	lmconfig "github.com/Abdulmumin1/lmfetch/internal/config"
)

var configFormat string

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View and validate lmfetch configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	RunE:  runConfigShow,
}

var configValidateCmd = &cobra.Command{
	Use:   "validate <path>",
	Short: "Strictly validate a .lmfetch.toml file",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigValidate,
}

func init() {
	configShowCmd.Flags().StringVar(&configFormat, "format", "human", "output format: human or json")
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configValidateCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	if configFormat == "json" {
		data, err := json.MarshalIndent(appConfig, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal config: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}

	fmt.Printf("default_budget: %s\n", appConfig.DefaultBudget)
	fmt.Printf("fast: %v\n", appConfig.Fast)
	fmt.Printf("cache_ttl_days: %d\n", appConfig.CacheTTLDays)
	fmt.Printf("format: %s\n", appConfig.Format)
	fmt.Printf("follow_imports: %v\n", appConfig.FollowImports)
	fmt.Printf("import_depth: %d\n", appConfig.ImportDepth)
	fmt.Printf("embedding.endpoint: %s\n", appConfig.Embedding.Endpoint)
	fmt.Printf("embedding.model: %s\n", appConfig.Embedding.Model)
	fmt.Printf("generator.endpoint: %s\n", appConfig.Generator.Endpoint)
	fmt.Printf("generator.model: %s\n", appConfig.Generator.Model)
	fmt.Printf("mcp.transport: %s\n", appConfig.MCP.Transport)
	fmt.Printf("rerank.enabled: %v\n", appConfig.Rerank.Enabled)
	fmt.Printf("rerank.top_k: %d\n", appConfig.Rerank.TopK)
	return nil
}

func runConfigValidate(cmd *cobra.Command, args []string) error {
	if err := lmconfig.Validate(args[0]); err != nil {
		fmt.Fprintf(os.Stderr, "invalid: %v\n", err)
		return err
	}
	fmt.Println("ok")
	return nil
}
