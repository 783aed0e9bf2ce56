package chat

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/pario-ai/ragchat/pkg/models"
)

// DefaultMaxSources is how many sources are listed before the remainder
// is summarized.
const DefaultMaxSources = 3

const compareAnswerLimit = 200

// FormatError renders a failure for display.
func FormatError(msg string) string {
	return "Error: " + msg
}

// FormatResponse renders a successful answer with optional sources and
// debug information. Sources are shown as assembled by the client.
func FormatResponse(resp models.SearchResponse, showSources bool, maxSources int, detailed bool) string {
	if resp.IsError() {
		return FormatError(resp.ErrorMessage)
	}
	var b strings.Builder
	b.WriteString(resp.Answer)
	if showSources && len(resp.SourceURLs) > 0 {
		b.WriteString(FormatSources(resp.SourceURLs, maxSources))
	}
	if detailed {
		b.WriteString(formatDebug(resp))
	}
	return b.String()
}

// FormatSources renders a numbered source list of at most limit entries.
func FormatSources(urls []string, limit int) string {
	if limit <= 0 {
		limit = DefaultMaxSources
	}
	var b strings.Builder
	b.WriteString("\n\n**📚 Sumber:**\n")
	for i, u := range urls {
		if i == limit {
			break
		}
		fmt.Fprintf(&b, "%d. %s\n", i+1, u)
	}
	if len(urls) > limit {
		fmt.Fprintf(&b, "... dan %d sumber lainnya\n", len(urls)-limit)
	}
	return b.String()
}

func formatDebug(resp models.SearchResponse) string {
	cached := "No"
	if resp.Cached {
		cached = "Yes"
	}
	var b strings.Builder
	b.WriteString("\n\n**🔧 Debug Info:**\n")
	fmt.Fprintf(&b, "- Response Time: %.2fs\n", resp.ResponseTime)
	fmt.Fprintf(&b, "- Search Type: %s\n", resp.SearchType)
	fmt.Fprintf(&b, "- Cached: %s\n", cached)
	fmt.Fprintf(&b, "- Source Count: %d\n", resp.SourceCount)
	return b.String()
}

// FormatSuggestions renders a numbered suggestion list.
func FormatSuggestions(suggestions []string) string {
	if len(suggestions) == 0 {
		return "💡 Tidak ada saran yang tersedia saat ini."
	}
	var b strings.Builder
	b.WriteString("💡 **Saran Pencarian:**\n\n")
	for i, s := range suggestions {
		fmt.Fprintf(&b, "%d. %s\n", i+1, s)
	}
	return b.String()
}

// StrategyResult pairs a strategy with the answer it produced.
type StrategyResult struct {
	Strategy models.SearchStrategy
	Response models.SearchResponse
}

// FormatComparison renders answers from several strategies side by side,
// abbreviating long answers.
func FormatComparison(results []StrategyResult) string {
	var b strings.Builder
	b.WriteString("🔍 **Perbandingan Hasil Pencarian:**\n\n")
	for _, r := range results {
		fmt.Fprintf(&b, "**%s:**\n", title(string(r.Strategy)))
		if r.Response.IsError() {
			fmt.Fprintf(&b, "Error: %s\n\n", r.Response.ErrorMessage)
			continue
		}
		b.WriteString(abbreviate(r.Response.Answer, compareAnswerLimit))
		b.WriteString("\n")
		if r.Response.SourceCount > 0 {
			fmt.Fprintf(&b, "📚 Sumber: %d dokumen\n", r.Response.SourceCount)
		}
		b.WriteString("\n")
	}
	return b.String()
}

// HealthStatus summarizes service and backend availability.
type HealthStatus struct {
	Service    string
	Backend    string
	Strategies []models.SearchStrategy
}

// FormatHealth renders a HealthStatus.
func FormatHealth(h HealthStatus) string {
	names := make([]string, len(h.Strategies))
	for i, s := range h.Strategies {
		names[i] = string(s)
	}
	var b strings.Builder
	b.WriteString("**🏥 Status Sistem:**\n\n")
	fmt.Fprintf(&b, "**Service:** %s\n", h.Service)
	fmt.Fprintf(&b, "**Backend:** %s\n", h.Backend)
	b.WriteString("**Mode:** Hybrid Search ✅\n\n")
	fmt.Fprintf(&b, "**Strategi Tersedia:** %s\n", strings.Join(names, ", "))
	return b.String()
}

const helpText = `**🔧 Perintah Khusus:**

- ` + "`/help`" + ` - Tampilkan bantuan ini
- ` + "`/suggest [pertanyaan]`" + ` - Dapatkan saran pencarian untuk pertanyaan
- ` + "`/compare [pertanyaan]`" + ` - Bandingkan hasil dari berbagai strategi pencarian
- ` + "`/health`" + ` - Cek status sistem

**💡 Tips:**
- Gunakan pertanyaan yang spesifik untuk hasil yang lebih baik
- Sistem akan otomatis memilih strategi pencarian terbaik
`

func abbreviate(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	return string([]rune(s)[:limit]) + "..."
}

func title(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
