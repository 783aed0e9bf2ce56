package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/pario-ai/ragchat/pkg/audit"
	"github.com/pario-ai/ragchat/pkg/cache"
	cachepkg "github.com/pario-ai/ragchat/pkg/cache/sqlite"
	"github.com/pario-ai/ragchat/pkg/chat"
	"github.com/pario-ai/ragchat/pkg/client"
	"github.com/pario-ai/ragchat/pkg/config"
	"github.com/pario-ai/ragchat/pkg/models"
	"github.com/pario-ai/ragchat/pkg/strategy"
)

const defaultConfigFile = "ragchat.yaml"

// answerStore is an answer cache that can report its statistics.
type answerStore interface {
	client.ResponseCache
	Stats() (models.CacheStats, error)
}

// app holds the wired components shared by the commands.
type app struct {
	cfg      *config.Config
	client   *client.Client
	searcher client.Searcher
	store    answerStore
	auditor  *audit.Logger
	chat     *chat.Orchestrator
	closers  []func() error
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		if _, err := os.Stat(defaultConfigFile); err == nil {
			path = defaultConfigFile
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

// newApp wires the client, answer cache, audit log and orchestrator from
// configuration. Callers must Close the app.
func newApp(opts *rootOptions) (*app, error) {
	cfg, err := loadConfig(opts.configPath)
	if err != nil {
		return nil, err
	}

	a := &app{cfg: cfg}
	a.client = client.New(cfg.Backend,
		client.WithLogger(log.Default()),
		client.WithBackendCache(cfg.Search.UseCache),
		client.WithMaxResults(cfg.Search.MaxResults),
	)
	a.searcher = a.client

	if cfg.Cache.Enabled {
		switch cfg.Cache.Backend {
		case "sqlite":
			c, err := cachepkg.New(cfg.Cache.DBPath, cfg.Cache.TTL)
			if err != nil {
				return nil, fmt.Errorf("init cache: %w", err)
			}
			a.closers = append(a.closers, c.Close)
			a.store = c
		default:
			mem := cache.NewTTL[models.SearchResponse](cfg.Cache.TTL)
			a.closers = append(a.closers, startSweep(mem))
			a.store = mem
		}
		a.searcher = client.NewCached(a.client, a.store)
	}

	chatOpts := []chat.Option{
		chat.WithLogger(log.Default()),
		chat.WithShowSources(cfg.Chat.ShowSources),
		chat.WithMaxSources(cfg.Chat.MaxSourcesShown),
		chat.WithDetailed(cfg.Chat.Detailed),
	}

	def, err := models.ParseStrategy(cfg.Search.DefaultStrategy)
	if err != nil {
		a.Close()
		return nil, err
	}
	chatOpts = append(chatOpts, chat.WithSelector(strategy.New(def, cfg.Search.AutoDetect)))

	if cfg.Audit.Enabled {
		l, err := audit.New(cfg.Audit)
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("init audit log: %w", err)
		}
		a.closers = append(a.closers, l.Close)
		a.auditor = l
		chatOpts = append(chatOpts, chat.WithRecorder(l))
	}

	a.chat = chat.New(a.searcher, a.client, chatOpts...)
	return a, nil
}

// startSweep purges expired answers in the background for the life of the
// app. The returned closer stops the sweep and waits for it.
func startSweep(c *cache.TTL[models.SearchResponse]) func() error {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		c.Sweep(ctx, cache.SweepInterval)
	}()
	return func() error {
		cancel()
		<-done
		return nil
	}
}

// Close releases databases in reverse order of opening.
func (a *app) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}
