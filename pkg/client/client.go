// Package client talks to the RAG backend over HTTP. Every failure is
// folded into an error response; nothing crosses the boundary as a Go error.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/pario-ai/ragchat/pkg/config"
	"github.com/pario-ai/ragchat/pkg/models"
	"github.com/pario-ai/ragchat/pkg/policy"
)

const (
	askPath    = "/api/v1/ask"
	batchPath  = "/api/v1/batch"
	healthPath = "/api/v1/health"
)

// Searcher answers a single question.
type Searcher interface {
	Search(ctx context.Context, question string, strategy models.SearchStrategy) models.SearchResponse
}

// HealthChecker reports backend reachability.
type HealthChecker interface {
	HealthCheck(ctx context.Context) bool
}

// Client is the resilient RAG backend client.
type Client struct {
	cfg        config.BackendConfig
	http       *http.Client
	limiter    *rate.Limiter
	logger     *log.Logger
	useCache   bool
	maxResults int
	now        func() time.Time
	sleep      func(ctx context.Context, d time.Duration) bool
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the HTTP client. Timeouts come from the config,
// not from the HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithLogger sets the logger used for retry diagnostics.
func WithLogger(l *log.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// WithRateLimiter throttles outbound requests.
func WithRateLimiter(l *rate.Limiter) Option {
	return func(c *Client) { c.limiter = l }
}

// WithBackendCache sets the use_cache flag sent to the backend.
func WithBackendCache(v bool) Option {
	return func(c *Client) { c.useCache = v }
}

// WithMaxResults caps the passage details kept on each response.
func WithMaxResults(n int) Option {
	return func(c *Client) { c.maxResults = n }
}

// New creates a Client for the configured backend.
func New(cfg config.BackendConfig, opts ...Option) *Client {
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if cfg.MaxRetries < 1 {
		cfg.MaxRetries = 1
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 60 * time.Second
	}
	if cfg.HealthTimeout <= 0 {
		cfg.HealthTimeout = 5 * time.Second
	}
	c := &Client{
		cfg:      cfg,
		http:     http.DefaultClient,
		logger:   log.Default(),
		useCache: true,
		now:      time.Now,
		sleep:    sleep,
	}
	if cfg.RateLimit > 0 {
		c.limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), 1)
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the backend base URL without a trailing slash.
func (c *Client) BaseURL() string { return c.cfg.BaseURL }

type askRequest struct {
	Question  string `json:"question"`
	UseCache  bool   `json:"use_cache"`
	UseHybrid bool   `json:"use_hybrid"`
}

type sourcePayload struct {
	Content        string         `json:"content"`
	SourceURL      string         `json:"source_url"`
	Title          string         `json:"title"`
	RelevanceScore float64        `json:"relevance_score"`
	Metadata       map[string]any `json:"metadata,omitempty"`
}

// answerPayload is the backend's answer shape, shared by ask and batch.
type answerPayload struct {
	Answer       string          `json:"answer"`
	SourceURLs   []string        `json:"source_urls"`
	Status       string          `json:"status"`
	ErrorMessage string          `json:"error_message"`
	SourceCount  int             `json:"source_count"`
	ResponseTime float64         `json:"response_time"`
	Cached       bool            `json:"cached"`
	CacheType    string          `json:"cache_type"`
	SearchType   string          `json:"search_type"`
	Sources      []sourcePayload `json:"sources"`
}

func (p answerPayload) failed() bool {
	return strings.EqualFold(p.Status, string(models.StatusError))
}

func (p answerPayload) failureMessage() string {
	if p.ErrorMessage != "" {
		return p.ErrorMessage
	}
	if strings.TrimSpace(p.Answer) != "" {
		return p.Answer
	}
	return ServerErrorMessage
}

// Search sends one question to the backend.
func (c *Client) Search(ctx context.Context, question string, strategy models.SearchStrategy) models.SearchResponse {
	start := c.now()
	text := Sanitize(question)

	query, err := models.NewSearchQuery(text, strategy)
	if err != nil {
		return c.errorResponse(models.SearchQuery{Text: text, Strategy: strategy}, EmptyQuestionMessage, start)
	}
	if c.maxResults > 0 {
		query.MaxResults = c.maxResults
	}

	body := askRequest{
		Question:  query.Text,
		UseCache:  c.useCache,
		UseHybrid: query.Strategy.UsesHybrid(),
	}
	var payload answerPayload
	if err := c.do(ctx, http.MethodPost, askPath, body, c.cfg.Timeout, &payload); err != nil {
		return c.errorResponse(query, messageOf(err), start)
	}
	if payload.failed() {
		return c.errorResponse(query, payload.failureMessage(), start)
	}
	return c.buildResponse(query, payload, start)
}

// buildResponse applies the response policy exactly once.
func (c *Client) buildResponse(query models.SearchQuery, p answerPayload, start time.Time) models.SearchResponse {
	answer, urls := policy.Apply(p.Answer, p.SourceURLs)
	resp := models.SearchResponse{
		Query:        query,
		Answer:       answer,
		Status:       models.StatusSuccess,
		SourceURLs:   urls,
		ResponseTime: p.ResponseTime,
		Cached:       p.Cached,
		CacheType:    p.CacheType,
		SearchType:   p.SearchType,
		SourceCount:  len(urls),
		CreatedAt:    c.now(),
	}
	if resp.ResponseTime <= 0 {
		resp.ResponseTime = c.now().Sub(start).Seconds()
	}
	if len(urls) > 0 {
		for _, s := range p.Sources {
			if len(resp.Results) == query.MaxResults {
				break
			}
			resp.Results = append(resp.Results, models.SearchResult{
				Content:        s.Content,
				SourceURL:      s.SourceURL,
				Title:          s.Title,
				RelevanceScore: s.RelevanceScore,
				Metadata:       s.Metadata,
			})
		}
	}
	return resp
}

func (c *Client) errorResponse(query models.SearchQuery, msg string, start time.Time) models.SearchResponse {
	return models.SearchResponse{
		Query:        query,
		Status:       models.StatusError,
		ErrorMessage: msg,
		SourceURLs:   []string{},
		ResponseTime: c.now().Sub(start).Seconds(),
		CreatedAt:    c.now(),
	}
}

// HealthCheck reports whether the backend health endpoint answers 200.
func (c *Client) HealthCheck(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.HealthTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.BaseURL+healthPath, nil)
	if err != nil {
		return false
	}
	req.Header.Set("X-Request-ID", uuid.NewString())

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Printf("health check failed: %v", err)
		return false
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	return resp.StatusCode == http.StatusOK
}

// do runs one logical request with retries. Transient failures are retried
// up to MaxRetries total attempts with a linearly growing delay.
func (c *Client) do(ctx context.Context, method, path string, in any, timeout time.Duration, out any) error {
	body, err := json.Marshal(in)
	if err != nil {
		return unexpectedError(fmt.Errorf("encode request: %w", err), false)
	}

	var lastErr error
	for attempt := 1; attempt <= c.cfg.MaxRetries; attempt++ {
		err := c.attempt(ctx, method, path, body, timeout, out)
		if err == nil {
			return nil
		}
		lastErr = err

		var apiErr *APIError
		if errors.As(err, &apiErr) && !apiErr.Transient {
			return err
		}
		if attempt == c.cfg.MaxRetries {
			break
		}
		c.logger.Printf("backend %s attempt %d/%d failed: %v", path, attempt, c.cfg.MaxRetries, err)
		if !c.sleep(ctx, c.cfg.RetryDelay*time.Duration(attempt)) {
			break
		}
	}
	c.logger.Printf("backend %s failed after retries: %v", path, lastErr)
	return lastErr
}

// attempt performs a single HTTP exchange and decodes a 2xx body into out.
func (c *Client) attempt(ctx context.Context, method, path string, body []byte, timeout time.Duration, out any) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return unexpectedError(fmt.Errorf("rate limit: %w", err), false)
		}
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, method, c.cfg.BaseURL+path, bytes.NewReader(body))
	if err != nil {
		return unexpectedError(fmt.Errorf("create request: %w", err), false)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())

	resp, err := c.http.Do(req)
	if err != nil {
		return networkError(c.cfg.BaseURL, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return networkError(c.cfg.BaseURL, fmt.Errorf("read response: %w", err))
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return statusError(resp.StatusCode)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return unexpectedError(fmt.Errorf("decode response: %w", err), true)
	}
	return nil
}

// sleep waits for d or until ctx is done. It reports whether the full
// delay elapsed.
func sleep(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
