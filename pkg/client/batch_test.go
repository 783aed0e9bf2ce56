package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pario-ai/ragchat/pkg/models"
)

func TestBatchSearchSuccess(t *testing.T) {
	var got models.BatchRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, batchPath, r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		writeJSON(t, w, map[string]any{
			"results": []map[string]any{
				{"answer": "satu", "source_urls": []string{"http://a.com/", "https://www.a.com"}, "status": "success"},
				{"answer": "", "source_urls": []string{"https://b.com"}, "status": "success"},
			},
			"total_questions": 2,
		})
	}))
	defer srv.Close()

	req, err := models.NewBatchRequest([]string{"q1", "  q2  "})
	require.NoError(t, err)

	resp := newTestClient(srv.URL).BatchSearch(context.Background(), req)

	assert.Equal(t, []string{"q1", "q2"}, got.Questions)
	assert.Equal(t, 2, resp.TotalQuestions)
	require.Len(t, resp.Results, 2)
	assert.Equal(t, "satu", resp.Results[0].Answer)
	assert.Equal(t, []string{"https://a.com"}, resp.Results[0].SourceURLs)
	assert.Equal(t, 1, resp.Results[0].SourceCount)
	assert.Empty(t, resp.Results[1].SourceURLs)
	assert.GreaterOrEqual(t, resp.ProcessingTime, 0.0)
}

func TestBatchSearchFailureKeepsOrder(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	req, err := models.NewBatchRequest([]string{"a", "b", "c"})
	require.NoError(t, err)

	resp := newTestClient(srv.URL).BatchSearch(context.Background(), req)

	assert.EqualValues(t, 3, calls.Load())
	assert.Equal(t, 3, resp.TotalQuestions)
	require.Len(t, resp.Results, 3)
	for _, r := range resp.Results {
		assert.True(t, r.IsError())
		assert.Equal(t, ServerErrorMessage, r.ErrorMessage)
	}
}

func TestBatchSearchPadsShortResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, map[string]any{
			"results": []map[string]any{{"answer": "only one", "status": "success"}},
		})
	}))
	defer srv.Close()

	req, err := models.NewBatchRequest([]string{"a", "b"})
	require.NoError(t, err)

	resp := newTestClient(srv.URL).BatchSearch(context.Background(), req)

	require.Len(t, resp.Results, 2)
	assert.False(t, resp.Results[0].IsError())
	assert.True(t, resp.Results[1].IsError())
	assert.Equal(t, MissingResultMessage, resp.Results[1].ErrorMessage)
}

func TestBatchSearchDropsExtraResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, map[string]any{
			"results": []map[string]any{
				{"answer": "1", "status": "success"},
				{"answer": "2", "status": "success"},
			},
		})
	}))
	defer srv.Close()

	resp := newTestClient(srv.URL).BatchSearch(context.Background(), models.BatchRequest{Questions: []string{"a"}, UseCache: true})

	require.Len(t, resp.Results, 1)
	assert.Equal(t, "1", resp.Results[0].Answer)
}

func TestBatchSearchBlankQuestion(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	defer srv.Close()

	resp := newTestClient(srv.URL).BatchSearch(context.Background(), models.BatchRequest{Questions: []string{"ok", "   "}})

	assert.Zero(t, calls.Load())
	require.Len(t, resp.Results, 2)
	assert.Equal(t, EmptyQuestionMessage, resp.Results[0].ErrorMessage)
}
