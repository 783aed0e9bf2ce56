package mcp

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/pario-ai/ragchat/pkg/chat"
	"github.com/pario-ai/ragchat/pkg/models"
)

type askArgs struct {
	Question    string `json:"question"`
	Strategy    string `json:"strategy"`
	ShowSources *bool  `json:"show_sources"`
	Detailed    bool   `json:"detailed"`
}

type batchArgs struct {
	Questions []string `json:"questions"`
	UseCache  *bool    `json:"use_cache"`
	UseHybrid *bool    `json:"use_hybrid"`
}

type auditSearchArgs struct {
	Status   string `json:"status"`
	Strategy string `json:"strategy"`
	Contains string `json:"contains"`
	Since    string `json:"since"`
	Limit    int    `json:"limit"`
}

// toolHandler is a function that handles a tool call.
type toolHandler func(ctx context.Context, s *Server, args json.RawMessage) ToolCallResult

// toolHandlers maps tool names to their handlers.
var toolHandlers = map[string]toolHandler{
	"rag_ask":          handleAsk,
	"rag_batch":        handleBatch,
	"rag_health":       handleHealth,
	"rag_cache_stats":  handleCacheStats,
	"rag_audit_search": handleAuditSearch,
	"rag_starters":     handleStarters,
}

// allTools is the list of tool definitions exposed via tools/list.
var allTools = []ToolDefinition{
	{
		Name:        "rag_ask",
		Description: "Ask the campus knowledge base a question and get the answer with its sources.",
		InputSchema: map[string]any{
			"type":     "object",
			"required": []string{"question"},
			"properties": map[string]any{
				"question": map[string]any{
					"type":        "string",
					"description": "The question to ask",
				},
				"strategy": map[string]any{
					"type":        "string",
					"description": "Search strategy (optional, defaults to hybrid)",
				},
				"show_sources": map[string]any{
					"type":        "boolean",
					"description": "Include the source list (optional, defaults to true)",
				},
				"detailed": map[string]any{
					"type":        "boolean",
					"description": "Append debug information (optional)",
				},
			},
		},
	},
	{
		Name:        "rag_batch",
		Description: "Ask several questions in one backend call. Returns one answer per question, in order.",
		InputSchema: map[string]any{
			"type":     "object",
			"required": []string{"questions"},
			"properties": map[string]any{
				"questions": map[string]any{
					"type":        "array",
					"items":       map[string]any{"type": "string"},
					"description": "The questions to ask",
				},
				"use_cache": map[string]any{
					"type":        "boolean",
					"description": "Allow the backend to answer from its cache (optional, defaults to true)",
				},
				"use_hybrid": map[string]any{
					"type":        "boolean",
					"description": "Use hybrid search (optional, defaults to true)",
				},
			},
		},
	},
	{
		Name:        "rag_health",
		Description: "Check whether the RAG backend is reachable and list available strategies.",
		InputSchema: map[string]any{
			"type":       "object",
			"properties": map[string]any{},
		},
	},
	{
		Name:        "rag_cache_stats",
		Description: "Show answer cache statistics (entries, hits, misses, hit rate).",
		InputSchema: map[string]any{
			"type":       "object",
			"properties": map[string]any{},
		},
	},
	{
		Name:        "rag_audit_search",
		Description: "Search the question/answer audit log with optional filters.",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"status": map[string]any{
					"type":        "string",
					"description": "Filter by status: success or error (optional)",
				},
				"strategy": map[string]any{
					"type":        "string",
					"description": "Filter by search strategy (optional)",
				},
				"contains": map[string]any{
					"type":        "string",
					"description": "Only questions containing this text (optional)",
				},
				"since": map[string]any{
					"type":        "string",
					"description": "Start date in YYYY-MM-DD format (optional)",
				},
				"limit": map[string]any{
					"type":        "integer",
					"description": "Maximum rows (optional, defaults to 50)",
				},
			},
		},
	},
	{
		Name:        "rag_starters",
		Description: "List suggested starter questions, one per topic.",
		InputSchema: map[string]any{
			"type":       "object",
			"properties": map[string]any{},
		},
	},
}

func textResult(text string) ToolCallResult {
	return ToolCallResult{
		Content: []ContentBlock{{Type: "text", Text: text}},
	}
}

func errorResult(text string) ToolCallResult {
	return ToolCallResult{
		Content: []ContentBlock{{Type: "text", Text: text}},
		IsError: true,
	}
}

func handleAsk(ctx context.Context, s *Server, rawArgs json.RawMessage) ToolCallResult {
	var args askArgs
	if len(rawArgs) > 0 {
		_ = json.Unmarshal(rawArgs, &args)
	}
	if strings.TrimSpace(args.Question) == "" {
		return errorResult("question is required")
	}
	st, err := models.ParseStrategy(args.Strategy)
	if err != nil {
		return errorResult(err.Error())
	}
	opts := chat.Options{ShowSources: args.ShowSources, DetailedResponse: args.Detailed}
	if args.Strategy != "" {
		opts.SearchStrategy = st
	}

	out := s.chat.ProcessMessage(ctx, args.Question, opts)
	if strings.HasPrefix(out, "Error: ") {
		return errorResult(out)
	}
	return textResult(out)
}

func handleBatch(ctx context.Context, s *Server, rawArgs json.RawMessage) ToolCallResult {
	if s.batch == nil {
		return textResult("Batch search is not configured.")
	}
	var args batchArgs
	if len(rawArgs) > 0 {
		_ = json.Unmarshal(rawArgs, &args)
	}
	var opts []models.BatchOption
	if args.UseCache != nil {
		opts = append(opts, models.WithBatchCache(*args.UseCache))
	}
	if args.UseHybrid != nil {
		opts = append(opts, models.WithBatchHybrid(*args.UseHybrid))
	}
	req, err := models.NewBatchRequest(args.Questions, opts...)
	if err != nil {
		return errorResult(err.Error())
	}
	resp := s.batch.BatchSearch(ctx, req)
	return textResult(formatBatch(req.Questions, resp))
}

func handleHealth(ctx context.Context, s *Server, _ json.RawMessage) ToolCallResult {
	return textResult(chat.FormatHealth(s.chat.Health(ctx)))
}

func handleCacheStats(_ context.Context, s *Server, _ json.RawMessage) ToolCallResult {
	if s.cache == nil {
		return textResult("Cache is not configured.")
	}
	stats, err := s.cache.Stats()
	if err != nil {
		return errorResult("Error fetching cache stats: " + err.Error())
	}
	return textResult(formatCacheStats(stats))
}

func handleAuditSearch(ctx context.Context, s *Server, rawArgs json.RawMessage) ToolCallResult {
	if s.auditor == nil {
		return textResult("Audit logging is not configured.")
	}
	var args auditSearchArgs
	if len(rawArgs) > 0 {
		_ = json.Unmarshal(rawArgs, &args)
	}

	opts := models.ExchangeQuery{
		Status:   args.Status,
		Strategy: args.Strategy,
		Contains: args.Contains,
		Limit:    args.Limit,
	}
	if opts.Limit <= 0 {
		opts.Limit = 50
	}
	if args.Since != "" {
		t, err := time.Parse("2006-01-02", args.Since)
		if err != nil {
			return errorResult("Invalid since date (use YYYY-MM-DD): " + err.Error())
		}
		opts.Since = t
	}

	entries, err := s.auditor.Query(ctx, opts)
	if err != nil {
		return errorResult("Error searching audit log: " + err.Error())
	}
	return textResult(formatExchanges(entries))
}

func handleStarters(_ context.Context, _ *Server, _ json.RawMessage) ToolCallResult {
	return textResult(formatStarters(chat.PickStarters(nil)))
}
