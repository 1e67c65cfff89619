package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/naveeak/impact-analyser/internal/config"
	"github.com/naveeak/impact-analyser/internal/logging"
)

var configPath string

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "impactctl",
		Short: "Change-impact analysis for a source repository's dependency graph",
		Long: `impactctl builds and queries dependency graphs of a source
repository, computing which components are impacted by a set of changed
files, how critical each one is, and what the resulting risk level and
test plan should be.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelInfo
			if cfg, err := config.Load(configPath); err == nil {
				level = logging.ParseLevel(cfg.LogLevel)
			}
			slog.SetDefault(logging.New(logging.Config{Level: level, Service: "impact-analyser"}))
		},
	}

	root.PersistentFlags().StringVar(&configPath, "config", "", "path to a YAML config file")

	root.AddCommand(newServeCmd())
	root.AddCommand(newAnalyzeCmd())
	root.AddCommand(newGraphCmd())

	return root
}
