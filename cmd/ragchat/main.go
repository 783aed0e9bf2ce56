package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/pario-ai/ragchat/pkg/config"
)

var version = "dev"

// rootOptions are the persistent flags shared by every command.
type rootOptions struct {
	configPath string
	envFiles   []string
	verbose    bool
}

func main() {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "ragchat",
		Short:         "ragchat — conversational front end for a RAG backend",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if opts.verbose {
				log.SetOutput(os.Stderr)
			} else {
				log.SetOutput(io.Discard)
			}
			return config.LoadDotEnv(opts.envFiles...)
		},
	}
	root.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "path to config file (default ragchat.yaml when present)")
	root.PersistentFlags().StringSliceVar(&opts.envFiles, "env-file", nil, "load environment from these files (default .env when present)")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "log retries and diagnostics to stderr")

	root.AddCommand(
		newAskCmd(opts),
		newChatCmd(opts),
		newBatchCmd(opts),
		newHealthCmd(opts),
		newCacheCmd(opts),
		newAuditCmd(opts),
		newMCPCmd(opts),
		newStartersCmd(),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
