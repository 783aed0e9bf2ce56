package mcp

import (
	"fmt"
	"strings"

	"github.com/pario-ai/ragchat/pkg/chat"
	"github.com/pario-ai/ragchat/pkg/models"
)

// formatBatch renders one block per question.
func formatBatch(questions []string, resp models.BatchResponse) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Batch: %d questions in %.2fs\n\n", resp.TotalQuestions, resp.ProcessingTime)
	for i, r := range resp.Results {
		q := ""
		if i < len(questions) {
			q = questions[i]
		}
		fmt.Fprintf(&b, "%d. %s\n", i+1, q)
		if r.IsError() {
			fmt.Fprintf(&b, "   Error: %s\n\n", r.ErrorMessage)
			continue
		}
		fmt.Fprintf(&b, "   %s\n", r.Answer)
		for _, u := range r.SourceURLs {
			fmt.Fprintf(&b, "   - %s\n", u)
		}
		b.WriteString("\n")
	}
	return b.String()
}

// formatExchanges formats audit exchanges as a text table.
func formatExchanges(entries []models.Exchange) string {
	if len(entries) == 0 {
		return "No exchanges found."
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%-36s %-20s %-8s %-9s %7s %8s  %s\n",
		"ID", "Time", "Strategy", "Status", "Sources", "Latency", "Question")
	b.WriteString(strings.Repeat("-", 120) + "\n")
	for _, e := range entries {
		q := e.Question
		if r := []rune(q); len(r) > 40 {
			q = string(r[:37]) + "..."
		}
		fmt.Fprintf(&b, "%-36s %-20s %-8s %-9s %7d %6dms  %s\n",
			e.ID, e.CreatedAt.Format("2006-01-02 15:04:05"),
			e.Strategy, e.Status, e.SourceCount, e.LatencyMs, q)
	}
	return b.String()
}

// formatCacheStats formats cache stats as text.
func formatCacheStats(stats models.CacheStats) string {
	return fmt.Sprintf("Cache Statistics\n"+
		"  Entries:  %d\n"+
		"  Hits:     %d\n"+
		"  Misses:   %d\n"+
		"  Hit Rate: %.1f%%\n",
		stats.Entries, stats.Hits, stats.Misses, stats.HitRate())
}

func formatStarters(starters []chat.Starter) string {
	var b strings.Builder
	for _, s := range starters {
		fmt.Fprintf(&b, "[%s] %s: %s\n", s.Category, s.Label, s.Message)
	}
	return b.String()
}
