package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/zagah/PaperlessMCP/internal/core"
	"github.com/zagah/PaperlessMCP/internal/paperless"
)

func (s *Server) registerStoragePathTools() {
	s.mcp.AddTool(mcp.NewTool("storage_paths.list",
		mcp.WithDescription("List storage paths with pagination."),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithIdempotentHintAnnotation(true),
		mcp.WithNumber("page", mcp.Description("1-based page number")),
		mcp.WithNumber("page_size", mcp.Description("Items per page, clamped to the server ceiling")),
	), s.handle("storage_paths.list", s.storagePathsList))

	s.mcp.AddTool(mcp.NewTool("storage_paths.get",
		mcp.WithDescription("Fetch a single storage path by id."),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithIdempotentHintAnnotation(true),
		mcp.WithNumber("id", mcp.Required(), mcp.Description("Storage path id")),
	), s.handle("storage_paths.get", s.storagePathsGet))

	s.mcp.AddTool(mcp.NewTool("storage_paths.create",
		mcp.WithDescription("Create a storage path. The path is a filename template, e.g. \"invoices/{created_year}/{title}\"."),
		mcp.WithString("name", mcp.Required(), mcp.Description("Storage path name")),
		mcp.WithString("path", mcp.Required(), mcp.Description("Filename template")),
	), s.handle("storage_paths.create", s.storagePathsCreate))

	s.mcp.AddTool(mcp.NewTool("storage_paths.update",
		mcp.WithDescription("Update fields of an existing storage path. Only supplied fields change."),
		mcp.WithNumber("id", mcp.Required(), mcp.Description("Storage path id")),
		mcp.WithString("name", mcp.Description("New name")),
		mcp.WithString("path", mcp.Description("New filename template")),
	), s.handle("storage_paths.update", s.storagePathsUpdate))

	s.mcp.AddTool(mcp.NewTool("storage_paths.delete",
		mcp.WithDescription("Delete a storage path. Requires confirm=true; without it, returns a preview."),
		mcp.WithDestructiveHintAnnotation(true),
		mcp.WithNumber("id", mcp.Required(), mcp.Description("Storage path id")),
		mcp.WithBoolean("confirm", mcp.Description("Set true to actually delete")),
	), s.handle("storage_paths.delete", s.storagePathsDelete))

	s.mcp.AddTool(mcp.NewTool("storage_paths.bulk_delete",
		mcp.WithDescription("Delete multiple storage paths in one call. Dry-run by default; set dry_run=false and confirm=true to execute."),
		mcp.WithDestructiveHintAnnotation(true),
		mcp.WithString("ids", mcp.Required(), mcp.Description("Comma-separated storage path ids")),
		mcp.WithBoolean("dry_run", mcp.Description("Preview only (default true)")),
		mcp.WithBoolean("confirm", mcp.Description("Must be true to execute")),
	), s.handle("storage_paths.bulk_delete", s.storagePathsBulkDelete))
}

func (s *Server) storagePathsList(ctx context.Context, req mcp.CallToolRequest) core.Envelope {
	page := req.GetInt("page", 1)
	pageSize := s.clampPageSize(req.GetInt("page_size", 0))
	res, err := s.client.ListStoragePaths(ctx, page, pageSize)
	if err != nil {
		return s.failErr(err)
	}
	return s.okList(res.Results, page, pageSize, res.Count, res.Next)
}

func (s *Server) storagePathsGet(ctx context.Context, req mcp.CallToolRequest) core.Envelope {
	id := req.GetInt("id", 0)
	if id <= 0 {
		return s.fail(core.CodeValidation, "id must be a positive integer", nil)
	}
	sp, err := s.client.GetStoragePath(ctx, id)
	if err != nil {
		return s.failErr(err)
	}
	return s.ok(sp)
}

func (s *Server) storagePathsCreate(ctx context.Context, req mcp.CallToolRequest) core.Envelope {
	name := req.GetString("name", "")
	path := req.GetString("path", "")
	if name == "" || path == "" {
		return s.fail(core.CodeValidation, "name and path must not be empty", nil)
	}
	sp, err := s.client.CreateStoragePath(ctx, paperless.StoragePathFields{Name: &name, Path: &path})
	if err != nil {
		return s.failErr(err)
	}
	return s.ok(sp)
}

func (s *Server) storagePathsUpdate(ctx context.Context, req mcp.CallToolRequest) core.Envelope {
	id := req.GetInt("id", 0)
	if id <= 0 {
		return s.fail(core.CodeValidation, "id must be a positive integer", nil)
	}
	f := paperless.StoragePathFields{
		Name: optionalString(req.GetString("name", "")),
		Path: optionalString(req.GetString("path", "")),
	}
	if f.Name == nil && f.Path == nil {
		return s.fail(core.CodeValidation, "no fields to update", nil)
	}
	sp, err := s.client.UpdateStoragePath(ctx, id, f)
	if err != nil {
		return s.failErr(err)
	}
	return s.ok(sp)
}

func (s *Server) storagePathsDelete(ctx context.Context, req mcp.CallToolRequest) core.Envelope {
	return deleteWithConfirm(s, ctx, req, "storage path",
		s.client.GetStoragePath,
		func(sp *paperless.StoragePath) (string, int) { return sp.Name, sp.DocumentCount },
		s.client.DeleteStoragePath)
}

func (s *Server) storagePathsBulkDelete(ctx context.Context, req mcp.CallToolRequest) core.Envelope {
	return s.bulkDeleteObjects(ctx, req, "storage_paths")
}
