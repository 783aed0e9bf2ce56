package models

import (
	"fmt"
	"strings"
)

// SearchStrategy names the retrieval mode requested from the backend.
type SearchStrategy string

const (
	StrategyHybrid SearchStrategy = "hybrid"

	// Strategies from the keyword-detection era. The backend only serves
	// hybrid search today; the rest stay parseable for the keyword selector.
	StrategySemantic       SearchStrategy = "semantic"
	StrategyKeyword        SearchStrategy = "keyword"
	StrategySmart          SearchStrategy = "smart"
	StrategyAcademic       SearchStrategy = "academic"
	StrategyAdministrative SearchStrategy = "administrative"
	StrategyFacility       SearchStrategy = "facility"
	StrategyQuick          SearchStrategy = "quick"
)

// AvailableStrategies lists the strategies the backend currently serves.
var AvailableStrategies = []SearchStrategy{StrategyHybrid}

var allStrategies = []SearchStrategy{
	StrategyHybrid,
	StrategySemantic,
	StrategyKeyword,
	StrategySmart,
	StrategyAcademic,
	StrategyAdministrative,
	StrategyFacility,
	StrategyQuick,
}

// ParseStrategy converts a name into a SearchStrategy. Empty input yields hybrid.
func ParseStrategy(s string) (SearchStrategy, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return StrategyHybrid, nil
	}
	for _, st := range allStrategies {
		if string(st) == s {
			return st, nil
		}
	}
	return "", fmt.Errorf("unknown search strategy %q", s)
}

// UsesHybrid reports whether requests for this strategy set use_hybrid.
func (s SearchStrategy) UsesHybrid() bool {
	switch s {
	case StrategySemantic, StrategyKeyword, StrategyQuick:
		return false
	default:
		return true
	}
}

// ResponseStatus is the outcome of a request.
type ResponseStatus string

const (
	StatusSuccess ResponseStatus = "success"
	StatusError   ResponseStatus = "error"
)
