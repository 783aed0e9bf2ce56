package models

import "strings"

// BatchRequest is a validated list of questions sent in one backend call.
type BatchRequest struct {
	Questions []string `json:"questions"`
	UseCache  bool     `json:"use_cache"`
	UseHybrid bool     `json:"use_hybrid"`
}

// BatchOption customizes a BatchRequest.
type BatchOption func(*BatchRequest)

// WithBatchCache sets whether the backend may answer from its cache.
func WithBatchCache(v bool) BatchOption {
	return func(r *BatchRequest) { r.UseCache = v }
}

// WithBatchHybrid sets whether the backend uses hybrid search.
func WithBatchHybrid(v bool) BatchOption {
	return func(r *BatchRequest) { r.UseHybrid = v }
}

// NewBatchRequest validates questions. Cache and hybrid default to true.
func NewBatchRequest(questions []string, opts ...BatchOption) (BatchRequest, error) {
	if len(questions) == 0 {
		return BatchRequest{}, ErrEmptyBatch
	}
	for _, q := range questions {
		if strings.TrimSpace(q) == "" {
			return BatchRequest{}, ErrEmptyQuestion
		}
	}
	req := BatchRequest{
		Questions: append([]string(nil), questions...),
		UseCache:  true,
		UseHybrid: true,
	}
	for _, opt := range opts {
		opt(&req)
	}
	return req, nil
}

// BatchResult is the display view of one answer within a batch.
type BatchResult struct {
	Answer       string   `json:"answer"`
	SourceURLs   []string `json:"source_urls"`
	Status       string   `json:"status"`
	ErrorMessage string   `json:"error_message,omitempty"`
	SourceCount  int      `json:"source_count"`
	ResponseTime float64  `json:"response_time"`
	Cached       bool     `json:"cached"`
	CacheType    string   `json:"cache_type,omitempty"`
	SearchType   string   `json:"search_type,omitempty"`
}

// IsError reports whether this result carries a failure.
func (r BatchResult) IsError() bool {
	return r.Status == string(StatusError)
}

// BatchResponse holds one result per question, in question order.
type BatchResponse struct {
	Results        []BatchResult `json:"results"`
	TotalQuestions int           `json:"total_questions"`
	ProcessingTime float64       `json:"processing_time"`
}
