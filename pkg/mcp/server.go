package mcp

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"

	"github.com/pario-ai/ragchat/pkg/chat"
	"github.com/pario-ai/ragchat/pkg/models"
)

// Chatter answers questions as display text.
type Chatter interface {
	ProcessMessage(ctx context.Context, text string, opts chat.Options) string
	Health(ctx context.Context) chat.HealthStatus
}

// BatchSearcher answers several questions in one backend call.
type BatchSearcher interface {
	BatchSearch(ctx context.Context, req models.BatchRequest) models.BatchResponse
}

// CacheStatter provides cache statistics without coupling to a concrete cache implementation.
type CacheStatter interface {
	Stats() (models.CacheStats, error)
}

// AuditQuerier reads the exchange audit log.
type AuditQuerier interface {
	Query(ctx context.Context, opts models.ExchangeQuery) ([]models.Exchange, error)
}

// Deps wires the server to the rest of ragchat. Only Chat is required.
type Deps struct {
	Chat  Chatter
	Batch BatchSearcher
	Cache CacheStatter
	Audit AuditQuerier
}

// Server is a minimal MCP server that communicates over stdio using JSON-RPC 2.0.
type Server struct {
	chat    Chatter
	batch   BatchSearcher
	cache   CacheStatter
	auditor AuditQuerier
	version string
	logger  *log.Logger
}

// New creates a new MCP Server.
func New(d Deps, version string) *Server {
	return &Server{
		chat:    d.Chat,
		batch:   d.Batch,
		cache:   d.Cache,
		auditor: d.Audit,
		version: version,
		logger:  log.Default(),
	}
}

// SetLogger replaces the logger used for write failures.
func (s *Server) SetLogger(l *log.Logger) { s.logger = l }

// Run reads JSON-RPC requests from r line-by-line and writes responses to w.
// It blocks until r is closed or ctx is cancelled.
func (s *Server) Run(ctx context.Context, r io.Reader, w io.Writer) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 1024*1024), 1024*1024)

	for scanner.Scan() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var req Request
		if err := json.Unmarshal(line, &req); err != nil {
			s.writeResponse(w, errorResponse(nil, CodeParseError, "parse error"))
			continue
		}

		resp := s.dispatch(ctx, &req)
		if resp == nil {
			continue
		}
		s.writeResponse(w, resp)
	}
	return scanner.Err()
}

func (s *Server) dispatch(ctx context.Context, req *Request) *Response {
	switch req.Method {
	case "initialize":
		return s.handleInitialize(req)
	case "notifications/initialized":
		return nil
	case "ping":
		return resultResponse(req.ID, map[string]any{})
	case "tools/list":
		return s.handleToolsList(req)
	case "tools/call":
		return s.handleToolsCall(ctx, req)
	default:
		return errorResponse(req.ID, CodeMethodNotFound, fmt.Sprintf("unknown method: %s", req.Method))
	}
}

func (s *Server) handleInitialize(req *Request) *Response {
	return resultResponse(req.ID, InitializeResult{
		ProtocolVersion: protocolVersion,
		ServerInfo:      ServerInfo{Name: "ragchat", Version: s.version},
		Capabilities:    map[string]any{"tools": map[string]any{}},
	})
}

func (s *Server) handleToolsList(req *Request) *Response {
	return resultResponse(req.ID, ToolsListResult{Tools: allTools})
}

func (s *Server) handleToolsCall(ctx context.Context, req *Request) *Response {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return errorResponse(req.ID, CodeInvalidParams, "invalid params")
	}

	handler, ok := toolHandlers[params.Name]
	if !ok {
		return resultResponse(req.ID, errorResult(fmt.Sprintf("unknown tool: %s", params.Name)))
	}

	return resultResponse(req.ID, handler(ctx, s, params.Arguments))
}

func (s *Server) writeResponse(w io.Writer, resp *Response) {
	data, err := json.Marshal(resp)
	if err != nil {
		s.logger.Printf("mcp: marshal error: %v", err)
		return
	}
	data = append(data, '\n')
	if _, err := w.Write(data); err != nil {
		s.logger.Printf("mcp: write error: %v", err)
	}
}
