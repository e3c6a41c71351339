package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/zagah/PaperlessMCP/internal/core"
	"github.com/zagah/PaperlessMCP/internal/paperless"
)

func (s *Server) registerDocumentTypeTools() {
	s.mcp.AddTool(mcp.NewTool("document_types.list",
		mcp.WithDescription("List document types with pagination."),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithIdempotentHintAnnotation(true),
		mcp.WithNumber("page", mcp.Description("1-based page number")),
		mcp.WithNumber("page_size", mcp.Description("Items per page, clamped to the server ceiling")),
	), s.handle("document_types.list", s.documentTypesList))

	s.mcp.AddTool(mcp.NewTool("document_types.get",
		mcp.WithDescription("Fetch a single document type by id."),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithIdempotentHintAnnotation(true),
		mcp.WithNumber("id", mcp.Required(), mcp.Description("Document type id")),
	), s.handle("document_types.get", s.documentTypesGet))

	s.mcp.AddTool(mcp.NewTool("document_types.create",
		mcp.WithDescription("Create a document type."),
		mcp.WithString("name", mcp.Required(), mcp.Description("Document type name")),
	), s.handle("document_types.create", s.documentTypesCreate))

	s.mcp.AddTool(mcp.NewTool("document_types.update",
		mcp.WithDescription("Rename an existing document type."),
		mcp.WithNumber("id", mcp.Required(), mcp.Description("Document type id")),
		mcp.WithString("name", mcp.Required(), mcp.Description("New name")),
	), s.handle("document_types.update", s.documentTypesUpdate))

	s.mcp.AddTool(mcp.NewTool("document_types.delete",
		mcp.WithDescription("Delete a document type. Requires confirm=true; without it, returns a preview."),
		mcp.WithDestructiveHintAnnotation(true),
		mcp.WithNumber("id", mcp.Required(), mcp.Description("Document type id")),
		mcp.WithBoolean("confirm", mcp.Description("Set true to actually delete")),
	), s.handle("document_types.delete", s.documentTypesDelete))

	s.mcp.AddTool(mcp.NewTool("document_types.bulk_delete",
		mcp.WithDescription("Delete multiple document types in one call. Dry-run by default; set dry_run=false and confirm=true to execute."),
		mcp.WithDestructiveHintAnnotation(true),
		mcp.WithString("ids", mcp.Required(), mcp.Description("Comma-separated document type ids")),
		mcp.WithBoolean("dry_run", mcp.Description("Preview only (default true)")),
		mcp.WithBoolean("confirm", mcp.Description("Must be true to execute")),
	), s.handle("document_types.bulk_delete", s.documentTypesBulkDelete))
}

func (s *Server) documentTypesList(ctx context.Context, req mcp.CallToolRequest) core.Envelope {
	page := req.GetInt("page", 1)
	pageSize := s.clampPageSize(req.GetInt("page_size", 0))
	res, err := s.client.ListDocumentTypes(ctx, page, pageSize)
	if err != nil {
		return s.failErr(err)
	}
	return s.okList(res.Results, page, pageSize, res.Count, res.Next)
}

func (s *Server) documentTypesGet(ctx context.Context, req mcp.CallToolRequest) core.Envelope {
	id := req.GetInt("id", 0)
	if id <= 0 {
		return s.fail(core.CodeValidation, "id must be a positive integer", nil)
	}
	dt, err := s.client.GetDocumentType(ctx, id)
	if err != nil {
		return s.failErr(err)
	}
	return s.ok(dt)
}

func (s *Server) documentTypesCreate(ctx context.Context, req mcp.CallToolRequest) core.Envelope {
	name := req.GetString("name", "")
	if name == "" {
		return s.fail(core.CodeValidation, "name must not be empty", nil)
	}
	dt, err := s.client.CreateDocumentType(ctx, paperless.DocumentTypeFields{Name: &name})
	if err != nil {
		return s.failErr(err)
	}
	return s.ok(dt)
}

func (s *Server) documentTypesUpdate(ctx context.Context, req mcp.CallToolRequest) core.Envelope {
	id := req.GetInt("id", 0)
	if id <= 0 {
		return s.fail(core.CodeValidation, "id must be a positive integer", nil)
	}
	name := req.GetString("name", "")
	if name == "" {
		return s.fail(core.CodeValidation, "name must not be empty", nil)
	}
	dt, err := s.client.UpdateDocumentType(ctx, id, paperless.DocumentTypeFields{Name: &name})
	if err != nil {
		return s.failErr(err)
	}
	return s.ok(dt)
}

func (s *Server) documentTypesDelete(ctx context.Context, req mcp.CallToolRequest) core.Envelope {
	return deleteWithConfirm(s, ctx, req, "document type",
		s.client.GetDocumentType,
		func(dt *paperless.DocumentType) (string, int) { return dt.Name, dt.DocumentCount },
		s.client.DeleteDocumentType)
}

func (s *Server) documentTypesBulkDelete(ctx context.Context, req mcp.CallToolRequest) core.Envelope {
	return s.bulkDeleteObjects(ctx, req, "document_types")
}
