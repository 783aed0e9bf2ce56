package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/pario-ai/ragchat/pkg/mcp"
)

func newMCPCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve ragchat tools over MCP (stdio)",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(opts)
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			deps := mcp.Deps{Chat: a.chat, Batch: a.client}
			if a.store != nil {
				deps.Cache = a.store
			}
			if a.auditor != nil {
				deps.Audit = a.auditor
			}

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return mcp.New(deps, version).Run(ctx, os.Stdin, os.Stdout)
		},
	}
}
