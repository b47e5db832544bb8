// Package config loads optional per-project and per-user defaults,
// merged under explicit CLI flags by the caller.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config holds the defaults lmfetch reads from .lmfetch.toml and
// $HOME/.config/lmfetch/config.toml.
type Config struct {
	DefaultBudget string   `mapstructure:"default_budget"`
	Fast          bool     `mapstructure:"fast"`
	ExtraIgnore   []string `mapstructure:"extra_ignore"`
	CacheTTLDays  int      `mapstructure:"cache_ttl_days"`
	Format        string   `mapstructure:"format"`
	FollowImports bool     `mapstructure:"follow_imports"`
	ImportDepth   int      `mapstructure:"import_depth"`

	Embedding EmbeddingConfig `mapstructure:"embedding"`
	Generator GeneratorConfig `mapstructure:"generator"`
	MCP       MCPConfig       `mapstructure:"mcp"`
	Rerank    RerankConfig    `mapstructure:"rerank"`
}

// EmbeddingConfig configures the batch-embedding provider.
type EmbeddingConfig struct {
	Endpoint  string `mapstructure:"endpoint"`
	Model     string `mapstructure:"model"`
	Dimension int    `mapstructure:"dimension"`
}

// GeneratorConfig configures the HyDE text generator.
type GeneratorConfig struct {
	Endpoint string `mapstructure:"endpoint"`
	Model    string `mapstructure:"model"`
}

// MCPConfig configures the MCP tool server's bind options.
type MCPConfig struct {
	Transport string `mapstructure:"transport"`
	Address   string `mapstructure:"address"`
}

// RerankConfig controls the optional LLM-powered rerank suspension
// point, off by default.
type RerankConfig struct {
	Enabled bool `mapstructure:"enabled"`
	TopK    int  `mapstructure:"top_k"`
}

// Default returns the built-in defaults applied before any config file
// or flag is consulted.
func Default() *Config {
	return &Config{
		DefaultBudget: "8k",
		Fast:          true,
		CacheTTLDays:  30,
		Format:        "markdown",
		FollowImports: true,
		ImportDepth:   1,
		Embedding: EmbeddingConfig{
			Endpoint:  "http://localhost:11434",
			Model:     "nomic-embed-text",
			Dimension: 768,
		},
		Generator: GeneratorConfig{
			Endpoint: "http://localhost:11434",
			Model:    "llama3.2",
		},
		MCP: MCPConfig{
			Transport: "stdio",
		},
		Rerank: RerankConfig{
			Enabled: false,
			TopK:    20,
		},
	}
}

// Load reads .lmfetch.toml from repoRoot and $HOME/.config/lmfetch/config.toml,
// layering repo config over user config over the built-in defaults. A
// missing file at either location is not an error.
func Load(repoRoot string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("toml")

	def := Default()
	v.SetDefault("default_budget", def.DefaultBudget)
	v.SetDefault("fast", def.Fast)
	v.SetDefault("cache_ttl_days", def.CacheTTLDays)
	v.SetDefault("format", def.Format)
	v.SetDefault("follow_imports", def.FollowImports)
	v.SetDefault("import_depth", def.ImportDepth)
	v.SetDefault("embedding.endpoint", def.Embedding.Endpoint)
	v.SetDefault("embedding.model", def.Embedding.Model)
	v.SetDefault("embedding.dimension", def.Embedding.Dimension)
	v.SetDefault("generator.endpoint", def.Generator.Endpoint)
	v.SetDefault("generator.model", def.Generator.Model)
	v.SetDefault("mcp.transport", def.MCP.Transport)
	v.SetDefault("rerank.enabled", def.Rerank.Enabled)
	v.SetDefault("rerank.top_k", def.Rerank.TopK)

	if home, err := os.UserHomeDir(); err == nil {
		userConfig := filepath.Join(home, ".config", "lmfetch", "config.toml")
		if err := mergeFile(v, userConfig); err != nil {
			return nil, err
		}
	}

	repoConfig := filepath.Join(repoRoot, ".lmfetch.toml")
	if err := mergeFile(v, repoConfig); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &cfg, nil
}

func mergeFile(v *viper.Viper, path string) error {
	if _, err := os.Stat(path); err != nil {
		return nil
	}
	v.SetConfigFile(path)
	if err := v.MergeInConfig(); err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	return nil
}
