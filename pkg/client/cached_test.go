package client

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/pario-ai/ragchat/pkg/cache"
	"github.com/pario-ai/ragchat/pkg/models"
)

type fakeSearcher struct {
	calls int
	resp  models.SearchResponse
}

func (f *fakeSearcher) Search(_ context.Context, q string, _ models.SearchStrategy) models.SearchResponse {
	f.calls++
	r := f.resp
	r.Query = models.SearchQuery{Text: q}
	return r
}

func TestCachedReturnsStoredAnswer(t *testing.T) {
	inner := &fakeSearcher{resp: models.SearchResponse{Status: models.StatusSuccess, Answer: "Jakarta"}}
	c := NewCached(inner, cache.NewTTL[models.SearchResponse](cache.AnswerTTL))

	first := c.Search(context.Background(), "ibu kota?", models.StrategyHybrid)
	second := c.Search(context.Background(), "  ibu   kota? ", models.StrategyHybrid)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, inner.calls)
}

func TestCachedSkipsErrors(t *testing.T) {
	inner := &fakeSearcher{resp: models.SearchResponse{Status: models.StatusError, ErrorMessage: ServerErrorMessage}}
	c := NewCached(inner, cache.NewTTL[models.SearchResponse](cache.AnswerTTL))

	c.Search(context.Background(), "q", "")
	c.Search(context.Background(), "q", "")

	assert.Equal(t, 2, inner.calls)
}

func TestCachedExpiry(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	store := cache.NewTTL[models.SearchResponse](10*time.Minute, cache.WithClock(func() time.Time { return now }))
	inner := &fakeSearcher{resp: models.SearchResponse{Status: models.StatusSuccess, Answer: "x"}}
	c := NewCached(inner, store)

	c.Search(context.Background(), "q", "")
	now = now.Add(9 * time.Minute)
	c.Search(context.Background(), "q", "")
	assert.Equal(t, 1, inner.calls)

	now = now.Add(2 * time.Minute)
	c.Search(context.Background(), "q", "")
	assert.Equal(t, 2, inner.calls)
}

func TestCacheKeyStrategy(t *testing.T) {
	assert.Equal(t, CacheKey("q", ""), CacheKey("q", models.StrategyHybrid))
	assert.NotEqual(t, CacheKey("q", models.StrategyHybrid), CacheKey("q", models.StrategyQuick))
}
