// Package strategy picks the search strategy for a question.
package strategy

import (
	"strings"

	"github.com/pario-ai/ragchat/pkg/models"
)

// Selector chooses a strategy for a question.
type Selector interface {
	Select(question string) models.SearchStrategy
}

// Fixed always returns the same strategy.
type Fixed struct {
	Strategy models.SearchStrategy
}

// Select implements Selector. A zero Fixed selects hybrid.
func (f Fixed) Select(string) models.SearchStrategy {
	if f.Strategy == "" {
		return models.StrategyHybrid
	}
	return f.Strategy
}

// Rule maps keyword hits to a strategy.
type Rule struct {
	Strategy models.SearchStrategy
	Keywords []string
}

// DefaultRules covers the campus topics the assistant answers.
var DefaultRules = []Rule{
	{Strategy: models.StrategyAcademic, Keywords: []string{
		"krs", "sks", "ipk", "kuliah", "skripsi", "fakultas", "program studi",
		"jurusan", "kalender akademik", "nilai", "dosen", "semester",
	}},
	{Strategy: models.StrategyAdministrative, Keywords: []string{
		"baak", "pendaftaran", "daftar", "biaya", "pembayaran", "legalisir",
		"ijazah", "transkrip", "ktm", "surat", "cuti", "beasiswa",
	}},
	{Strategy: models.StrategyFacility, Keywords: []string{
		"perpustakaan", "fasilitas", "laboratorium", "lab", "wi-fi", "wifi",
		"poliklinik", "olahraga", "lokasi", "kampus", "ukm", "gedung",
	}},
}

// Keyword thresholds in words.
const (
	QuickMaxWords = 3
	SmartMinWords = 20
)

// Keyword detects a strategy from the question's wording. Questions with
// no clear signal fall back to Fallback.
type Keyword struct {
	Rules    []Rule
	Fallback models.SearchStrategy
}

// NewKeyword creates a Keyword detector with the default rules and a
// hybrid fallback.
func NewKeyword() *Keyword {
	return &Keyword{Rules: DefaultRules, Fallback: models.StrategyHybrid}
}

// Select implements Selector. Rules are tried in order and the one with
// the most keyword hits wins; ties keep the earlier rule.
func (k *Keyword) Select(question string) models.SearchStrategy {
	q := strings.ToLower(strings.TrimSpace(question))
	words := strings.Fields(q)

	if len(words) > 0 && len(words) <= QuickMaxWords {
		return models.StrategyQuick
	}

	var best models.SearchStrategy
	bestHits := 0
	for _, rule := range k.Rules {
		hits := 0
		for _, kw := range rule.Keywords {
			if containsWord(q, kw) {
				hits++
			}
		}
		if hits > bestHits {
			best, bestHits = rule.Strategy, hits
		}
	}
	if bestHits > 0 {
		return best
	}

	if len(words) >= SmartMinWords || strings.Count(q, "?") > 1 {
		return models.StrategySmart
	}
	if k.Fallback == "" {
		return models.StrategyHybrid
	}
	return k.Fallback
}

// containsWord reports whether kw appears in s on word boundaries.
func containsWord(s, kw string) bool {
	for i := 0; ; {
		j := strings.Index(s[i:], kw)
		if j < 0 {
			return false
		}
		start := i + j
		end := start + len(kw)
		if boundary(s, start-1) && boundary(s, end) {
			return true
		}
		i = start + 1
	}
}

func boundary(s string, i int) bool {
	if i < 0 || i >= len(s) {
		return true
	}
	c := s[i]
	return !(c >= 'a' && c <= 'z' || c >= '0' && c <= '9')
}

// New returns the selector the configuration asks for.
func New(defaultStrategy models.SearchStrategy, autoDetect bool) Selector {
	if autoDetect {
		k := NewKeyword()
		if defaultStrategy != "" {
			k.Fallback = defaultStrategy
		}
		return k
	}
	return Fixed{Strategy: defaultStrategy}
}
