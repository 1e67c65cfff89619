package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/naveeak/impact-analyser/internal/config"
	"github.com/naveeak/impact-analyser/internal/graph"
	"github.com/naveeak/impact-analyser/internal/store"
)

var (
	graphStatsPath   string
	graphStatsRepoID string
	graphStatsBranch string
)

func newGraphCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "graph",
		Short: "Inspect a dependency graph",
	}
	cmd.AddCommand(newGraphStatsCmd())
	return cmd
}

func newGraphStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Print density, DAG-ness, and connectivity metrics for a graph",
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := loadGraphForStats()
			if err != nil {
				return err
			}

			metrics := graph.ComputeMetrics(g)
			encoder := json.NewEncoder(cmd.OutOrStdout())
			encoder.SetIndent("", "  ")
			return encoder.Encode(metrics)
		},
	}
	cmd.Flags().StringVar(&graphStatsPath, "graph", "", "path to a node-link dependency graph JSON file")
	cmd.Flags().StringVar(&graphStatsRepoID, "repo-id", "", "repository identifier (looked up in the configured store)")
	cmd.Flags().StringVar(&graphStatsBranch, "branch", "main", "git branch")
	return cmd
}

func loadGraphForStats() (*graph.Graph, error) {
	if graphStatsPath != "" {
		data, err := os.ReadFile(graphStatsPath)
		if err != nil {
			return nil, fmt.Errorf("impactctl: reading graph file: %w", err)
		}
		var doc graph.NodeLinkDocument
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("impactctl: parsing graph file: %w", err)
		}
		return graph.FromNodeLink(doc), nil
	}

	if graphStatsRepoID == "" {
		return nil, fmt.Errorf("impactctl: one of --graph or --repo-id is required")
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if cfg.StorePath == "" {
		return nil, fmt.Errorf("impactctl: no graph store configured")
	}

	st, err := store.Open(store.DefaultConfig(cfg.StorePath))
	if err != nil {
		return nil, fmt.Errorf("impactctl: opening graph store: %w", err)
	}
	defer st.Close()

	doc, ok, err := st.Get(context.Background(), graphStatsRepoID, graphStatsBranch)
	if err != nil {
		return nil, fmt.Errorf("impactctl: loading graph: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("impactctl: no graph stored for repo %q branch %q", graphStatsRepoID, graphStatsBranch)
	}
	return graph.Decode(doc), nil
}
