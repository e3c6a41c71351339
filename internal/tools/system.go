package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/zagah/PaperlessMCP/internal/core"
)

func (s *Server) registerSystemTools() {
	s.mcp.AddTool(mcp.NewTool("system.status",
		mcp.WithDescription("Check backend reachability and report its version, storage, database and task-queue health."),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithIdempotentHintAnnotation(true),
	), s.handle("system.status", s.systemStatus))
}

func (s *Server) systemStatus(ctx context.Context, req mcp.CallToolRequest) core.Envelope {
	status, err := s.client.Status(ctx)
	if err != nil {
		return s.failErr(err)
	}
	return s.ok(status)
}
