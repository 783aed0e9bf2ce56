package chat

import (
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pario-ai/ragchat/pkg/models"
)

func TestFormatSources(t *testing.T) {
	out := FormatSources([]string{"https://a.com", "https://b.com"}, 3)
	assert.Equal(t, "\n\n**📚 Sumber:**\n1. https://a.com\n2. https://b.com\n", out)

	out = FormatSources([]string{"1", "2", "3", "4"}, 0)
	assert.Contains(t, out, "... dan 1 sumber lainnya\n")
}

func TestFormatSuggestionsEmpty(t *testing.T) {
	assert.Equal(t, "💡 Tidak ada saran yang tersedia saat ini.", FormatSuggestions(nil))
}

func TestFormatComparison(t *testing.T) {
	long := strings.Repeat("a", 250)
	out := FormatComparison([]StrategyResult{
		{Strategy: models.StrategyHybrid, Response: models.SearchResponse{Status: models.StatusSuccess, Answer: long}},
		{Strategy: models.StrategySemantic, Response: models.SearchResponse{Status: models.StatusError, ErrorMessage: "down"}},
	})
	assert.Contains(t, out, "**Hybrid:**\n"+strings.Repeat("a", 200)+"...\n")
	assert.Contains(t, out, "**Semantic:**\nError: down\n")
	assert.NotContains(t, out, "📚")
}

func TestStarters(t *testing.T) {
	all := Starters()
	assert.Len(t, all, 28)
	for _, s := range all {
		assert.NotEmpty(t, s.Icon, s.Label)
	}

	picked := PickStarters(rand.New(rand.NewPCG(1, 2)))
	assert.Len(t, picked, 4)
	seen := map[string]bool{}
	for _, s := range picked {
		seen[s.Category] = true
	}
	assert.Len(t, seen, 4)

	assert.Len(t, PickStarters(nil), 4)
}
