package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/Abdulmumin1/lmfetch/internal/config"
)

var (
	flagVerbose bool
	flagFast    bool
	flagBudget  string
)

var appConfig *config.Config

var rootCmd = &cobra.Command{
	Use:   "lmfetch",
	Short: "Assemble relevance-ranked, token-budgeted code context for a prompt",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		wd, err := os.Getwd()
		if err != nil {
			return err
		}
		cfg, err := config.Load(wd)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		appConfig = cfg

		level := slog.LevelInfo
		if flagVerbose {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
		return nil
	},
}

// Execute runs the root command, exiting with a non-zero status on
// any failure (§6 Exit conditions).
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&flagFast, "fast", true, "keyword-only ranking (disable for hybrid embedding ranking)")
	rootCmd.PersistentFlags().StringVar(&flagBudget, "budget", "", "token budget, e.g. 8k, 1.5m, 12000 (default from config)")
}

func main() {
	Execute()
}
