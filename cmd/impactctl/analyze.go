package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/naveeak/impact-analyser/internal/config"
	"github.com/naveeak/impact-analyser/internal/graph"
	"github.com/naveeak/impact-analyser/internal/orchestrator"
	"github.com/naveeak/impact-analyser/internal/retrieval"
	"github.com/naveeak/impact-analyser/internal/store"
	"github.com/naveeak/impact-analyser/internal/validation"
)

var (
	analyzeRepoID      string
	analyzeBranch      string
	analyzeDescription string
	analyzeFiles       []string
	analyzeGraphPath   string
)

func newAnalyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Run a one-shot change-impact analysis and print the report as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validation.ValidateRepoID(analyzeRepoID); err != nil {
				return err
			}
			if err := validation.ValidateFilePaths(analyzeFiles); err != nil {
				return err
			}
			if err := validation.ValidateChangeDescription(analyzeDescription); err != nil {
				return err
			}

			branch := analyzeBranch
			if branch == "" {
				branch = "main"
			}

			var depGraph *graph.NodeLinkDocument
			if analyzeGraphPath != "" {
				data, err := os.ReadFile(analyzeGraphPath)
				if err != nil {
					return fmt.Errorf("impactctl: reading graph file: %w", err)
				}
				var doc graph.NodeLinkDocument
				if err := json.Unmarshal(data, &doc); err != nil {
					return fmt.Errorf("impactctl: parsing graph file: %w", err)
				}
				depGraph = &doc
			}

			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}

			var st *store.Store
			if depGraph == nil && cfg.StorePath != "" {
				st, err = store.Open(store.DefaultConfig(cfg.StorePath))
				if err != nil {
					return fmt.Errorf("impactctl: opening graph store: %w", err)
				}
				defer st.Close()
			}

			orch := orchestrator.New(st, retrieval.NewInMemory(nil))
			resp, err := orch.Analyze(context.Background(), orchestrator.Request{
				ChangeDescription: analyzeDescription,
				AffectedFiles:     analyzeFiles,
				RepoID:            analyzeRepoID,
				Branch:            branch,
				DependencyGraph:   depGraph,
			})
			if err != nil {
				return err
			}

			encoder := json.NewEncoder(cmd.OutOrStdout())
			encoder.SetIndent("", "  ")
			return encoder.Encode(resp)
		},
	}

	cmd.Flags().StringVar(&analyzeRepoID, "repo-id", "", "repository identifier")
	cmd.Flags().StringVar(&analyzeBranch, "branch", "main", "git branch")
	cmd.Flags().StringVar(&analyzeDescription, "description", "", "description of the code change")
	cmd.Flags().StringSliceVar(&analyzeFiles, "file", nil, "affected file path (repeatable)")
	cmd.Flags().StringVar(&analyzeGraphPath, "graph", "", "path to a node-link dependency graph JSON file")
	cmd.MarkFlagRequired("repo-id")
	cmd.MarkFlagRequired("description")

	return cmd
}
