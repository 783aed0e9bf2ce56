package models

import (
	"errors"
	"strings"
)

// DefaultMaxResults is the result limit used when none is given.
const DefaultMaxResults = 10

var (
	// ErrEmptyQuery is returned when a query has no text after trimming.
	ErrEmptyQuery = errors.New("search query text cannot be empty")
	// ErrEmptyBatch is returned when a batch has no questions.
	ErrEmptyBatch = errors.New("questions list cannot be empty")
	// ErrEmptyQuestion is returned when any batch question is blank.
	ErrEmptyQuestion = errors.New("all questions must be non-empty strings")
)

// SearchQuery is a validated question bound for the backend.
type SearchQuery struct {
	Text       string         `json:"text"`
	Strategy   SearchStrategy `json:"strategy"`
	MaxResults int            `json:"max_results"`
}

// NewSearchQuery validates text and fills defaults.
func NewSearchQuery(text string, strategy SearchStrategy) (SearchQuery, error) {
	if strings.TrimSpace(text) == "" {
		return SearchQuery{}, ErrEmptyQuery
	}
	if strategy == "" {
		strategy = StrategyHybrid
	}
	return SearchQuery{Text: text, Strategy: strategy, MaxResults: DefaultMaxResults}, nil
}

// SearchResult is one retrieved passage reported by the backend.
type SearchResult struct {
	Content        string         `json:"content"`
	SourceURL      string         `json:"source_url"`
	Title          string         `json:"title"`
	RelevanceScore float64        `json:"relevance_score"`
	Metadata       map[string]any `json:"metadata,omitempty"`
}
