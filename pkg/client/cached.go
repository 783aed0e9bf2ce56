package client

import (
	"context"

	"github.com/pario-ai/ragchat/pkg/cache"
	"github.com/pario-ai/ragchat/pkg/models"
)

// ResponseCache stores assembled answers. Both cache.TTL and the SQLite
// answer store satisfy it.
type ResponseCache interface {
	Get(key string) (models.SearchResponse, bool)
	Set(key string, resp models.SearchResponse)
}

// Cached memoizes successful answers of the wrapped Searcher.
type Cached struct {
	next  Searcher
	store ResponseCache
}

// NewCached wraps next with store.
func NewCached(next Searcher, store ResponseCache) *Cached {
	return &Cached{next: next, store: store}
}

// CacheKey derives the answer cache key for a question and strategy.
func CacheKey(question string, strategy models.SearchStrategy) string {
	if strategy == "" {
		strategy = models.StrategyHybrid
	}
	return cache.Key("search", []any{Sanitize(question), string(strategy)}, nil)
}

// Search returns a stored answer when present, otherwise asks the wrapped
// Searcher. Error responses are never stored.
func (c *Cached) Search(ctx context.Context, question string, strategy models.SearchStrategy) models.SearchResponse {
	key := CacheKey(question, strategy)
	if resp, ok := c.store.Get(key); ok {
		return resp
	}
	resp := c.next.Search(ctx, question, strategy)
	if !resp.IsError() {
		c.store.Set(key, resp)
	}
	return resp
}
