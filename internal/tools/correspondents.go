package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/zagah/PaperlessMCP/internal/core"
	"github.com/zagah/PaperlessMCP/internal/paperless"
)

func (s *Server) registerCorrespondentTools() {
	s.mcp.AddTool(mcp.NewTool("correspondents.list",
		mcp.WithDescription("List correspondents with pagination."),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithIdempotentHintAnnotation(true),
		mcp.WithNumber("page", mcp.Description("1-based page number")),
		mcp.WithNumber("page_size", mcp.Description("Items per page, clamped to the server ceiling")),
	), s.handle("correspondents.list", s.correspondentsList))

	s.mcp.AddTool(mcp.NewTool("correspondents.get",
		mcp.WithDescription("Fetch a single correspondent by id."),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithIdempotentHintAnnotation(true),
		mcp.WithNumber("id", mcp.Required(), mcp.Description("Correspondent id")),
	), s.handle("correspondents.get", s.correspondentsGet))

	s.mcp.AddTool(mcp.NewTool("correspondents.create",
		mcp.WithDescription("Create a correspondent."),
		mcp.WithString("name", mcp.Required(), mcp.Description("Correspondent name")),
	), s.handle("correspondents.create", s.correspondentsCreate))

	s.mcp.AddTool(mcp.NewTool("correspondents.update",
		mcp.WithDescription("Rename an existing correspondent."),
		mcp.WithNumber("id", mcp.Required(), mcp.Description("Correspondent id")),
		mcp.WithString("name", mcp.Required(), mcp.Description("New name")),
	), s.handle("correspondents.update", s.correspondentsUpdate))

	s.mcp.AddTool(mcp.NewTool("correspondents.delete",
		mcp.WithDescription("Delete a correspondent. Requires confirm=true; without it, returns a preview."),
		mcp.WithDestructiveHintAnnotation(true),
		mcp.WithNumber("id", mcp.Required(), mcp.Description("Correspondent id")),
		mcp.WithBoolean("confirm", mcp.Description("Set true to actually delete")),
	), s.handle("correspondents.delete", s.correspondentsDelete))

	s.mcp.AddTool(mcp.NewTool("correspondents.bulk_delete",
		mcp.WithDescription("Delete multiple correspondents in one call. Dry-run by default; set dry_run=false and confirm=true to execute."),
		mcp.WithDestructiveHintAnnotation(true),
		mcp.WithString("ids", mcp.Required(), mcp.Description("Comma-separated correspondent ids")),
		mcp.WithBoolean("dry_run", mcp.Description("Preview only (default true)")),
		mcp.WithBoolean("confirm", mcp.Description("Must be true to execute")),
	), s.handle("correspondents.bulk_delete", s.correspondentsBulkDelete))
}

func (s *Server) correspondentsList(ctx context.Context, req mcp.CallToolRequest) core.Envelope {
	page := req.GetInt("page", 1)
	pageSize := s.clampPageSize(req.GetInt("page_size", 0))
	res, err := s.client.ListCorrespondents(ctx, page, pageSize)
	if err != nil {
		return s.failErr(err)
	}
	return s.okList(res.Results, page, pageSize, res.Count, res.Next)
}

func (s *Server) correspondentsGet(ctx context.Context, req mcp.CallToolRequest) core.Envelope {
	id := req.GetInt("id", 0)
	if id <= 0 {
		return s.fail(core.CodeValidation, "id must be a positive integer", nil)
	}
	c, err := s.client.GetCorrespondent(ctx, id)
	if err != nil {
		return s.failErr(err)
	}
	return s.ok(c)
}

func (s *Server) correspondentsCreate(ctx context.Context, req mcp.CallToolRequest) core.Envelope {
	name := req.GetString("name", "")
	if name == "" {
		return s.fail(core.CodeValidation, "name must not be empty", nil)
	}
	c, err := s.client.CreateCorrespondent(ctx, paperless.CorrespondentFields{Name: &name})
	if err != nil {
		return s.failErr(err)
	}
	return s.ok(c)
}

func (s *Server) correspondentsUpdate(ctx context.Context, req mcp.CallToolRequest) core.Envelope {
	id := req.GetInt("id", 0)
	if id <= 0 {
		return s.fail(core.CodeValidation, "id must be a positive integer", nil)
	}
	name := req.GetString("name", "")
	if name == "" {
		return s.fail(core.CodeValidation, "name must not be empty", nil)
	}
	c, err := s.client.UpdateCorrespondent(ctx, id, paperless.CorrespondentFields{Name: &name})
	if err != nil {
		return s.failErr(err)
	}
	return s.ok(c)
}

func (s *Server) correspondentsDelete(ctx context.Context, req mcp.CallToolRequest) core.Envelope {
	return deleteWithConfirm(s, ctx, req, "correspondent",
		s.client.GetCorrespondent,
		func(c *paperless.Correspondent) (string, int) { return c.Name, c.DocumentCount },
		s.client.DeleteCorrespondent)
}

func (s *Server) correspondentsBulkDelete(ctx context.Context, req mcp.CallToolRequest) core.Envelope {
	return s.bulkDeleteObjects(ctx, req, "correspondents")
}
