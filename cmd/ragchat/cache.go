package main

import (
	"fmt"

	"github.com/spf13/cobra"

	cachepkg "github.com/pario-ai/ragchat/pkg/cache/sqlite"
	"github.com/pario-ai/ragchat/pkg/config"
)

func newCacheCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the persistent answer cache",
	}

	statsCmd := &cobra.Command{
		Use:   "stats",
		Short: "Show cache statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := openAnswerCache(opts)
			if err != nil {
				return err
			}
			defer func() { _ = c.Close() }()

			stats, err := c.Stats()
			if err != nil {
				return err
			}
			fmt.Printf("Entries: %d\n", stats.Entries)
			return nil
		},
	}

	var expiredOnly bool
	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Clear cache entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := openAnswerCache(opts)
			if err != nil {
				return err
			}
			defer func() { _ = c.Close() }()

			n, err := c.Clear(expiredOnly)
			if err != nil {
				return err
			}
			if expiredOnly {
				fmt.Printf("Cleared %d expired cache entries.\n", n)
			} else {
				fmt.Printf("Cleared %d cache entries.\n", n)
			}
			return nil
		},
	}
	clearCmd.Flags().BoolVar(&expiredOnly, "expired", false, "only clear expired entries")

	cmd.AddCommand(statsCmd, clearCmd)
	return cmd
}

// openAnswerCache opens the SQLite answer cache. The in-memory cache lives
// only as long as one process, so there is nothing to inspect.
func openAnswerCache(opts *rootOptions) (*cachepkg.Cache, error) {
	cfg, err := loadConfig(opts.configPath)
	if err != nil {
		return nil, err
	}
	if cfg.Cache.Backend != "sqlite" {
		return nil, fmt.Errorf("cache.backend is %q; only the sqlite cache persists between runs", backendName(cfg))
	}
	return cachepkg.New(cfg.Cache.DBPath, cfg.Cache.TTL)
}

func backendName(cfg *config.Config) string {
	if cfg.Cache.Backend == "" {
		return "memory"
	}
	return cfg.Cache.Backend
}
