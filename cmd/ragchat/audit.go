package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/pario-ai/ragchat/pkg/audit"
	"github.com/pario-ai/ragchat/pkg/models"
)

func newAuditCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "audit",
		Short: "Query and manage the question/answer audit log",
	}

	cmd.AddCommand(
		newAuditSearchCmd(opts),
		newAuditShowCmd(opts),
		newAuditStatsCmd(opts),
		newAuditTopCmd(opts),
		newAuditCleanupCmd(opts),
	)
	return cmd
}

func newAuditSearchCmd(opts *rootOptions) *cobra.Command {
	var (
		status   string
		strat    string
		contains string
		since    string
		limit    int
	)

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search audited exchanges",
		RunE: func(cmd *cobra.Command, args []string) error {
			l, cleanup, err := openAuditLogger(opts)
			if err != nil {
				return err
			}
			defer cleanup()

			q := models.ExchangeQuery{
				Status:   status,
				Strategy: strat,
				Contains: contains,
				Limit:    limit,
			}
			if since != "" {
				t, err := time.Parse("2006-01-02", since)
				if err != nil {
					return fmt.Errorf("invalid --since date (use YYYY-MM-DD): %w", err)
				}
				q.Since = t
			}

			entries, err := l.Query(context.Background(), q)
			if err != nil {
				return err
			}
			fmt.Print(formatExchanges(entries))
			return nil
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "filter by status (success or error)")
	cmd.Flags().StringVar(&strat, "strategy", "", "filter by search strategy")
	cmd.Flags().StringVar(&contains, "contains", "", "only questions containing this text")
	cmd.Flags().StringVar(&since, "since", "", "start date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&limit, "limit", 50, "max entries to return")

	return cmd
}

func newAuditShowCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a single exchange",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			l, cleanup, err := openAuditLogger(opts)
			if err != nil {
				return err
			}
			defer cleanup()

			entries, err := l.Query(context.Background(), models.ExchangeQuery{ID: args[0], Limit: 1})
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Println("No exchange found for that ID.")
				return nil
			}

			e := entries[0]
			fmt.Printf("ID:        %s\n", e.ID)
			fmt.Printf("Time:      %s\n", e.CreatedAt.Format(time.RFC3339))
			fmt.Printf("Strategy:  %s\n", e.Strategy)
			fmt.Printf("Status:    %s\n", e.Status)
			fmt.Printf("Sources:   %d\n", e.SourceCount)
			fmt.Printf("Cached:    %t\n", e.Cached)
			fmt.Printf("Latency:   %dms\n", e.LatencyMs)
			fmt.Printf("\n--- Question ---\n%s\n", e.Question)
			if e.ErrorMessage != "" {
				fmt.Printf("\n--- Error ---\n%s\n", e.ErrorMessage)
			}
			if e.Answer != "" {
				fmt.Printf("\n--- Answer ---\n%s\n", e.Answer)
			}
			return nil
		},
	}
}

func newAuditStatsCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show exchange counts by status and day",
		RunE: func(cmd *cobra.Command, args []string) error {
			l, cleanup, err := openAuditLogger(opts)
			if err != nil {
				return err
			}
			defer cleanup()

			stats, err := l.Stats(context.Background())
			if err != nil {
				return err
			}
			fmt.Print(formatExchangeStats(stats))
			return nil
		},
	}
}

func newAuditTopCmd(opts *rootOptions) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "top",
		Short: "Show the most frequently asked questions",
		RunE: func(cmd *cobra.Command, args []string) error {
			l, cleanup, err := openAuditLogger(opts)
			if err != nil {
				return err
			}
			defer cleanup()

			top, err := l.TopQuestions(context.Background(), limit)
			if err != nil {
				return err
			}
			if len(top) == 0 {
				fmt.Println("No exchanges recorded.")
				return nil
			}
			for i, q := range top {
				fmt.Printf("%3d. (%d×) %s\n", i+1, q.Count, q.Question)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 10, "number of questions to show")
	return cmd
}

func newAuditCleanupCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "cleanup",
		Short: "Delete exchanges older than the retention period",
		RunE: func(cmd *cobra.Command, args []string) error {
			l, cleanup, err := openAuditLogger(opts)
			if err != nil {
				return err
			}
			defer cleanup()

			deleted, err := l.Cleanup(context.Background())
			if err != nil {
				return err
			}
			fmt.Printf("Deleted %d exchanges.\n", deleted)
			return nil
		},
	}
}

func openAuditLogger(opts *rootOptions) (*audit.Logger, func(), error) {
	cfg, err := loadConfig(opts.configPath)
	if err != nil {
		return nil, nil, err
	}

	l, err := audit.New(cfg.Audit)
	if err != nil {
		return nil, nil, fmt.Errorf("open audit db: %w", err)
	}
	return l, func() { _ = l.Close() }, nil
}

func formatExchanges(entries []models.Exchange) string {
	if len(entries) == 0 {
		return "No exchanges found.\n"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%-36s %-20s %-8s %-8s %7s %8s  %s\n",
		"ID", "TIME", "STRATEGY", "STATUS", "SOURCES", "LATENCY", "QUESTION")
	b.WriteString(strings.Repeat("-", 120) + "\n")
	for _, e := range entries {
		fmt.Fprintf(&b, "%-36s %-20s %-8s %-8s %7d %6dms  %s\n",
			e.ID, e.CreatedAt.Format("2006-01-02 15:04:05"),
			e.Strategy, e.Status, e.SourceCount, e.LatencyMs, truncate(e.Question, 40))
	}
	return b.String()
}

func formatExchangeStats(stats []models.ExchangeStat) string {
	if len(stats) == 0 {
		return "No audit stats found.\n"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%-12s %-10s %8s\n", "DAY", "STATUS", "COUNT")
	b.WriteString(strings.Repeat("-", 32) + "\n")
	for _, s := range stats {
		fmt.Fprintf(&b, "%-12s %-10s %8d\n", s.Day, s.Status, s.Count)
	}
	return b.String()
}
