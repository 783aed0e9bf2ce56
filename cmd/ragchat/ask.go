package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/pario-ai/ragchat/pkg/chat"
	"github.com/pario-ai/ragchat/pkg/models"
)

func newAskCmd(opts *rootOptions) *cobra.Command {
	var (
		strategyName string
		noSources    bool
		detailed     bool
		asJSON       bool
	)

	cmd := &cobra.Command{
		Use:   "ask <question>",
		Short: "Ask a single question",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := models.ParseStrategy(strategyName)
			if err != nil {
				return err
			}

			a, err := newApp(opts)
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			question := strings.Join(args, " ")

			if asJSON {
				resp := a.searcher.Search(ctx, question, st)
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				if err := enc.Encode(resp); err != nil {
					return err
				}
				if resp.IsError() {
					return errors.New(resp.ErrorMessage)
				}
				return nil
			}

			chatOpts := chat.Options{DetailedResponse: detailed}
			if strategyName != "" {
				chatOpts.SearchStrategy = st
			}
			if noSources {
				show := false
				chatOpts.ShowSources = &show
			}
			fmt.Println(a.chat.ProcessMessage(ctx, question, chatOpts))
			return nil
		},
	}

	cmd.Flags().StringVarP(&strategyName, "strategy", "s", "", "search strategy (default from config)")
	cmd.Flags().BoolVar(&noSources, "no-sources", false, "hide the source list")
	cmd.Flags().BoolVarP(&detailed, "detailed", "d", false, "append debug information")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the raw response as JSON")
	return cmd
}
