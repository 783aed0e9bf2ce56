// Package chat turns raw user messages into display text. It validates
// input, handles slash commands and delegates questions to the backend
// client.
package chat

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/pario-ai/ragchat/pkg/client"
	"github.com/pario-ai/ragchat/pkg/models"
	"github.com/pario-ai/ragchat/pkg/strategy"
)

// Fixed user-facing messages.
const (
	InvalidMessage    = "Error: Pesan tidak valid. Silakan masukkan pertanyaan Anda."
	EmptyMessage      = "Error: Pesan tidak boleh kosong. Silakan masukkan pertanyaan Anda."
	TooShortMessage   = "Error: Pertanyaan terlalu pendek. Silakan masukkan pertanyaan yang lebih jelas."
	UnknownCommand    = "Error: Perintah tidak dikenali. Ketik `/help` untuk melihat perintah yang tersedia."
	suggestUsage      = "Error: Gunakan format: `/suggest [pertanyaan anda]`"
	compareUsage      = "Error: Gunakan format: `/compare [pertanyaan anda]`"
	unexpectedFormat  = "Terjadi kesalahan saat memproses pertanyaan Anda: %v"
	minQuestionLength = 2
)

// Recorder receives one exchange per backend-bound question.
type Recorder interface {
	Log(ctx context.Context, e models.Exchange) error
}

// Options customizes a single ProcessMessage call.
type Options struct {
	// SearchStrategy overrides the selector when set.
	SearchStrategy models.SearchStrategy
	// ShowSources overrides the orchestrator default when non-nil.
	ShowSources *bool
	// DetailedResponse appends debug information.
	DetailedResponse bool
}

// Orchestrator validates messages and renders backend answers.
type Orchestrator struct {
	search      client.Searcher
	health      client.HealthChecker
	selector    strategy.Selector
	recorder    Recorder
	logger      *log.Logger
	showSources bool
	maxSources  int
	detailed    bool
	now         func() time.Time
}

// Option customizes an Orchestrator.
type Option func(*Orchestrator)

// WithSelector sets the strategy selector. The default always picks hybrid.
func WithSelector(s strategy.Selector) Option {
	return func(o *Orchestrator) { o.selector = s }
}

// WithRecorder records every backend-bound exchange.
func WithRecorder(r Recorder) Option {
	return func(o *Orchestrator) { o.recorder = r }
}

// WithLogger sets the logger for recorder and panic diagnostics.
func WithLogger(l *log.Logger) Option {
	return func(o *Orchestrator) { o.logger = l }
}

// WithShowSources sets whether sources are listed by default.
func WithShowSources(v bool) Option {
	return func(o *Orchestrator) { o.showSources = v }
}

// WithMaxSources sets how many sources are listed before summarizing.
func WithMaxSources(n int) Option {
	return func(o *Orchestrator) { o.maxSources = n }
}

// WithDetailed enables debug information on every answer.
func WithDetailed(v bool) Option {
	return func(o *Orchestrator) { o.detailed = v }
}

// New creates an Orchestrator. health may be nil, in which case /health
// reports the backend as unknown.
func New(search client.Searcher, health client.HealthChecker, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		search:      search,
		health:      health,
		selector:    strategy.Fixed{},
		logger:      log.Default(),
		showSources: true,
		maxSources:  DefaultMaxSources,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// ProcessMessage returns display text for a raw user message. It never
// panics; unexpected failures are rendered as text.
func (o *Orchestrator) ProcessMessage(ctx context.Context, text string, opts Options) (out string) {
	defer func() {
		if r := recover(); r != nil {
			o.logger.Printf("chat: recovered from panic: %v", r)
			out = fmt.Sprintf(unexpectedFormat, r)
		}
	}()

	if !utf8.ValidString(text) || strings.ContainsRune(text, 0) {
		return InvalidMessage
	}
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return EmptyMessage
	}
	if utf8.RuneCountInString(trimmed) < minQuestionLength {
		return TooShortMessage
	}
	if strings.HasPrefix(trimmed, "/") {
		return o.handleCommand(ctx, trimmed, opts)
	}

	st := opts.SearchStrategy
	if st == "" {
		st = o.selector.Select(trimmed)
	}
	resp := o.ask(ctx, trimmed, st)
	if resp.IsError() {
		return FormatError(resp.ErrorMessage)
	}

	show := o.showSources
	if opts.ShowSources != nil {
		show = *opts.ShowSources
	}
	return FormatResponse(resp, show, o.maxSources, o.detailed || opts.DetailedResponse)
}

// ask runs one backend search and records the exchange.
func (o *Orchestrator) ask(ctx context.Context, question string, st models.SearchStrategy) models.SearchResponse {
	start := o.now()
	resp := o.search.Search(ctx, question, st)
	if o.recorder != nil {
		ex := models.Exchange{
			ID:           uuid.NewString(),
			Question:     question,
			Strategy:     string(st),
			Status:       string(resp.Status),
			Answer:       resp.Answer,
			ErrorMessage: resp.ErrorMessage,
			SourceCount:  resp.SourceCount,
			Cached:       resp.Cached,
			LatencyMs:    o.now().Sub(start).Milliseconds(),
			CreatedAt:    start,
		}
		if err := o.recorder.Log(ctx, ex); err != nil {
			o.logger.Printf("chat: record exchange: %v", err)
		}
	}
	return resp
}

func (o *Orchestrator) handleCommand(ctx context.Context, text string, opts Options) string {
	name, arg, _ := strings.Cut(text, " ")
	arg = strings.TrimSpace(arg)

	switch strings.ToLower(name) {
	case "/help":
		return helpText
	case "/health":
		return FormatHealth(o.Health(ctx))
	case "/suggest":
		if arg == "" {
			return suggestUsage
		}
		return FormatSuggestions(Suggestions)
	case "/compare":
		if arg == "" {
			return compareUsage
		}
		return FormatComparison(o.Compare(ctx, arg))
	default:
		return UnknownCommand
	}
}

// Health probes the backend and summarizes availability.
func (o *Orchestrator) Health(ctx context.Context) HealthStatus {
	h := HealthStatus{
		Service:    "unknown",
		Backend:    "unknown",
		Strategies: models.AvailableStrategies,
	}
	if o.health == nil {
		return h
	}
	if o.health.HealthCheck(ctx) {
		h.Service, h.Backend = "healthy", "available"
	} else {
		h.Service, h.Backend = "degraded", "unavailable"
	}
	return h
}

// Compare runs the question through every available strategy in turn.
func (o *Orchestrator) Compare(ctx context.Context, question string) []StrategyResult {
	results := make([]StrategyResult, 0, len(models.AvailableStrategies))
	for _, st := range models.AvailableStrategies {
		results = append(results, StrategyResult{Strategy: st, Response: o.ask(ctx, question, st)})
	}
	return results
}
