package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pario-ai/ragchat/pkg/client"
	"github.com/pario-ai/ragchat/pkg/config"
)

func newHealthCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check that the RAG backend is reachable",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts.configPath)
			if err != nil {
				return err
			}
			return checkHealth(cmd.Context(), cfg.Backend)
		},
	}
}

func checkHealth(ctx context.Context, cfg config.BackendConfig) error {
	c := client.New(cfg)
	if !c.HealthCheck(ctx) {
		return errors.New("backend unavailable at " + c.BaseURL())
	}
	fmt.Printf("backend available at %s\n", c.BaseURL())
	return nil
}
