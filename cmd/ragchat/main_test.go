package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pario-ai/ragchat/pkg/cache"
	"github.com/pario-ai/ragchat/pkg/chat"
	"github.com/pario-ai/ragchat/pkg/client"
	"github.com/pario-ai/ragchat/pkg/models"
)

type echoProcessor struct{ seen []string }

func (e *echoProcessor) ProcessMessage(_ context.Context, text string, _ chat.Options) string {
	e.seen = append(e.seen, text)
	return "echo: " + text
}

func TestRunREPL(t *testing.T) {
	p := &echoProcessor{}
	var out bytes.Buffer

	err := runREPL(context.Background(), p, strings.NewReader("halo\n/help\nexit\nnever\n"), &out, replOptions{prompt: true})
	require.NoError(t, err)

	assert.Equal(t, []string{"halo", "/help"}, p.seen)
	assert.Contains(t, out.String(), "> echo: halo")
	assert.NotContains(t, out.String(), "never")
}

func TestRunREPLStopsAtEOF(t *testing.T) {
	p := &echoProcessor{}
	var out bytes.Buffer

	require.NoError(t, runREPL(context.Background(), p, strings.NewReader("satu"), &out, replOptions{}))
	assert.Equal(t, []string{"satu"}, p.seen)
	assert.Equal(t, "echo: satu\n\n", out.String())
}

func TestReadQuestions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "q.txt")
	require.NoError(t, os.WriteFile(path, []byte("Biaya kuliah?\n\n  Lokasi kampus?  \n"), 0644))

	qs, err := readQuestions(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"Biaya kuliah?", "Lokasi kampus?"}, qs)

	_, err = readQuestions(filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)
}

func TestPrintBatch(t *testing.T) {
	var out bytes.Buffer
	resp := models.BatchResponse{
		Results: []models.BatchResult{
			{Answer: "Jakarta\nadalah ibu kota", Status: "success", SourceCount: 1},
			{Status: "error", ErrorMessage: client.ServerErrorMessage},
		},
		TotalQuestions: 2,
		ProcessingTime: 1.5,
	}

	require.NoError(t, printBatch(&out, []string{"q1", "q2"}, resp))

	text := out.String()
	assert.Contains(t, text, "Jakarta adalah ibu kota")
	assert.Contains(t, text, client.ServerErrorMessage[:20])
	assert.Contains(t, text, "2 questions in 1.50s")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate("abc", 5))
	assert.Equal(t, "ab...", truncate("abcdefgh", 5))
}

func TestNewAppWiring(t *testing.T) {
	for _, k := range []string{"BACKEND_URL", "FASTAPI_BACKEND_URL", "SEARCH_MAX_RESULTS", "CACHE_TTL", "ENABLE_CACHING", "DEFAULT_SEARCH_STRATEGY"} {
		t.Setenv(k, "")
	}
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "ragchat.yaml")
	content := "backend:\n  base_url: http://127.0.0.1:1\n" +
		"cache:\n  enabled: true\n  backend: sqlite\n  db_path: " + filepath.Join(dir, "cache.db") + "\n" +
		"audit:\n  enabled: true\n  db_path: " + filepath.Join(dir, "audit.db") + "\n"
	require.NoError(t, os.WriteFile(cfgPath, []byte(content), 0644))

	a, err := newApp(&rootOptions{configPath: cfgPath})
	require.NoError(t, err)
	defer a.Close()

	assert.NotNil(t, a.store)
	assert.NotNil(t, a.auditor)
	_, cached := a.searcher.(*client.Cached)
	assert.True(t, cached)
	assert.Equal(t, "http://127.0.0.1:1", a.client.BaseURL())

	out := a.chat.ProcessMessage(context.Background(), " ", chat.Options{})
	assert.Equal(t, chat.EmptyMessage, out)
}

func TestNewAppMemoryCacheSweepStopsOnClose(t *testing.T) {
	for _, k := range []string{"BACKEND_URL", "FASTAPI_BACKEND_URL", "SEARCH_MAX_RESULTS", "CACHE_TTL", "ENABLE_CACHING", "DEFAULT_SEARCH_STRATEGY"} {
		t.Setenv(k, "")
	}
	cfgPath := filepath.Join(t.TempDir(), "ragchat.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("cache:\n  enabled: true\n  backend: memory\n"), 0644))

	a, err := newApp(&rootOptions{configPath: cfgPath})
	require.NoError(t, err)
	_, mem := a.store.(*cache.TTL[models.SearchResponse])
	assert.True(t, mem)
	require.Len(t, a.closers, 1)

	done := make(chan error, 1)
	go func() { done <- a.Close() }()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Close did not stop the cache sweep")
	}
}
