// Package tools registers the MCP tool surface and dispatches calls to
// the backend client. Every tool returns exactly one JSON envelope as
// text content; domain failures never become protocol-level errors.
package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/zagah/PaperlessMCP/internal/config"
	"github.com/zagah/PaperlessMCP/internal/core"
	"github.com/zagah/PaperlessMCP/internal/paperless"
	"github.com/zagah/PaperlessMCP/internal/telemetry"
)

const serverVersion = "1.0.0"

type Server struct {
	client *paperless.Client
	cfg    config.Config
	logger *slog.Logger
	mcp    *server.MCPServer
}

func NewServer(client *paperless.Client, cfg config.Config, logger *slog.Logger) *Server {
	s := &Server{
		client: client,
		cfg:    cfg,
		logger: logger,
		mcp: server.NewMCPServer("paperless-mcp", serverVersion,
			server.WithToolCapabilities(true)),
	}
	s.registerDocumentTools()
	s.registerTagTools()
	s.registerCorrespondentTools()
	s.registerDocumentTypeTools()
	s.registerStoragePathTools()
	s.registerCustomFieldTools()
	s.registerSystemTools()
	return s
}

// MCP exposes the underlying protocol server for transport wiring.
func (s *Server) MCP() *server.MCPServer { return s.mcp }

type toolFunc func(ctx context.Context, req mcp.CallToolRequest) core.Envelope

// handle wraps a tool implementation with tracing, metrics and the
// envelope serialization.
func (s *Server) handle(name string, fn toolFunc) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		traceID := uuid.New().String()
		start := time.Now()
		env := fn(ctx, req)
		elapsed := time.Since(start)
		telemetry.ObserveToolDuration(name, elapsed)

		if env.OK {
			telemetry.IncToolCall(name, "ok")
			s.logger.Info("tool call completed",
				"tool", name, "trace_id", traceID, "duration_ms", elapsed.Milliseconds())
		} else {
			telemetry.IncToolCall(name, env.Error.Code)
			s.logger.Warn("tool call failed",
				"tool", name, "trace_id", traceID, "code", env.Error.Code,
				"duration_ms", elapsed.Milliseconds())
		}

		b, err := json.Marshal(env)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("marshal response: %v", err)), nil
		}
		return mcp.NewToolResultText(string(b)), nil
	}
}

func (s *Server) ok(result any, warnings ...string) core.Envelope {
	return core.Success(s.client.BaseURL(), result, warnings...)
}

func (s *Server) okList(result any, page, pageSize, total int, next *string) core.Envelope {
	return core.SuccessList(s.client.BaseURL(), result, page, pageSize, total, next)
}

func (s *Server) fail(code, message string, details any) core.Envelope {
	return core.Failure(s.client.BaseURL(), code, message, details)
}

// failErr normalizes a backend-call error through the taxonomy.
func (s *Server) failErr(err error) core.Envelope {
	obj := core.MapError(err)
	return core.Failure(s.client.BaseURL(), obj.Code, obj.Message, obj.Details)
}

// deleted is the result body for a confirmed single-item delete.
type deleted struct {
	Deleted bool `json:"deleted"`
	ID      int  `json:"id"`
}
