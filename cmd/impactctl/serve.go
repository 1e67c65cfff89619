package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/naveeak/impact-analyser/internal/config"
	"github.com/naveeak/impact-analyser/internal/server"
)

var servePort int

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the impact-analyser HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if servePort != 0 {
				cfg.Port = servePort
			}

			svc, err := server.New(cfg)
			if err != nil {
				return fmt.Errorf("impactctl: starting server: %w", err)
			}
			return svc.Run()
		},
	}
	cmd.Flags().IntVar(&servePort, "port", 0, "HTTP port (overrides config)")
	return cmd
}
