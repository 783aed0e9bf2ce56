package models

import "time"

// SearchResponse is the assembled answer for one question.
type SearchResponse struct {
	Query        SearchQuery    `json:"query"`
	Answer       string         `json:"answer"`
	Results      []SearchResult `json:"results,omitempty"`
	Status       ResponseStatus `json:"status"`
	ErrorMessage string         `json:"error_message,omitempty"`
	SourceURLs   []string       `json:"source_urls"`
	ResponseTime float64        `json:"response_time"`
	Cached       bool           `json:"cached"`
	CacheType    string         `json:"cache_type,omitempty"`
	SearchType   string         `json:"search_type,omitempty"`
	SourceCount  int            `json:"source_count"`
	CreatedAt    time.Time      `json:"created_at"`
}

// IsError reports whether the response carries a failure.
func (r SearchResponse) IsError() bool {
	return r.Status == StatusError
}

// AddResult appends a result and records its source URL once.
func (r *SearchResponse) AddResult(res SearchResult) {
	r.Results = append(r.Results, res)
	if res.SourceURL != "" && !contains(r.SourceURLs, res.SourceURL) {
		r.SourceURLs = append(r.SourceURLs, res.SourceURL)
	}
	r.SourceCount = len(r.SourceURLs)
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
