package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSearchQuery(t *testing.T) {
	q, err := NewSearchQuery("Apa itu BAAK?", "")
	require.NoError(t, err)
	assert.Equal(t, StrategyHybrid, q.Strategy)
	assert.Equal(t, DefaultMaxResults, q.MaxResults)

	for _, blank := range []string{"", " ", "\t\n"} {
		_, err := NewSearchQuery(blank, StrategyHybrid)
		assert.ErrorIs(t, err, ErrEmptyQuery, "input %q", blank)
	}
}

func TestNewBatchRequest(t *testing.T) {
	req, err := NewBatchRequest([]string{"a?", "b?"})
	require.NoError(t, err)
	assert.True(t, req.UseCache)
	assert.True(t, req.UseHybrid)

	req, err = NewBatchRequest([]string{"a?"}, WithBatchCache(false), WithBatchHybrid(false))
	require.NoError(t, err)
	assert.False(t, req.UseCache)
	assert.False(t, req.UseHybrid)

	_, err = NewBatchRequest(nil)
	assert.ErrorIs(t, err, ErrEmptyBatch)

	_, err = NewBatchRequest([]string{"ok", "  "})
	assert.ErrorIs(t, err, ErrEmptyQuestion)
}

func TestBatchRequestCopiesQuestions(t *testing.T) {
	qs := []string{"a?", "b?"}
	req, err := NewBatchRequest(qs)
	require.NoError(t, err)
	qs[0] = "changed"
	assert.Equal(t, "a?", req.Questions[0])
}

func TestAddResult(t *testing.T) {
	var r SearchResponse
	r.AddResult(SearchResult{SourceURL: "https://a.com"})
	r.AddResult(SearchResult{SourceURL: "https://a.com"})
	r.AddResult(SearchResult{SourceURL: "https://b.com"})

	assert.Len(t, r.Results, 3)
	assert.Equal(t, []string{"https://a.com", "https://b.com"}, r.SourceURLs)
	assert.Equal(t, 2, r.SourceCount)
}

func TestParseStrategy(t *testing.T) {
	s, err := ParseStrategy(" Hybrid ")
	require.NoError(t, err)
	assert.Equal(t, StrategyHybrid, s)

	s, err = ParseStrategy("")
	require.NoError(t, err)
	assert.Equal(t, StrategyHybrid, s)

	s, err = ParseStrategy("academic")
	require.NoError(t, err)
	assert.Equal(t, StrategyAcademic, s)

	_, err = ParseStrategy("telepathy")
	assert.Error(t, err)
}

func TestCacheStatsHitRate(t *testing.T) {
	assert.Equal(t, 0.0, CacheStats{}.HitRate())
	assert.InDelta(t, 66.7, CacheStats{Hits: 10, Misses: 5}.HitRate(), 0.1)
}
