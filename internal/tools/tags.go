package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/zagah/PaperlessMCP/internal/core"
	"github.com/zagah/PaperlessMCP/internal/paperless"
)

func (s *Server) registerTagTools() {
	s.mcp.AddTool(mcp.NewTool("tags.list",
		mcp.WithDescription("List tags with pagination."),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithIdempotentHintAnnotation(true),
		mcp.WithNumber("page", mcp.Description("1-based page number")),
		mcp.WithNumber("page_size", mcp.Description("Items per page, clamped to the server ceiling")),
	), s.handle("tags.list", s.tagsList))

	s.mcp.AddTool(mcp.NewTool("tags.get",
		mcp.WithDescription("Fetch a single tag by id."),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithIdempotentHintAnnotation(true),
		mcp.WithNumber("id", mcp.Required(), mcp.Description("Tag id")),
	), s.handle("tags.get", s.tagsGet))

	s.mcp.AddTool(mcp.NewTool("tags.create",
		mcp.WithDescription("Create a tag."),
		mcp.WithString("name", mcp.Required(), mcp.Description("Tag name")),
		mcp.WithString("color", mcp.Description("Hex color, e.g. #a6cee3")),
		mcp.WithBoolean("is_inbox_tag", mcp.Description("Mark as an inbox tag")),
	), s.handle("tags.create", s.tagsCreate))

	s.mcp.AddTool(mcp.NewTool("tags.update",
		mcp.WithDescription("Update fields of an existing tag. Only supplied fields change."),
		mcp.WithNumber("id", mcp.Required(), mcp.Description("Tag id")),
		mcp.WithString("name", mcp.Description("New name")),
		mcp.WithString("color", mcp.Description("New hex color")),
		mcp.WithBoolean("is_inbox_tag", mcp.Description("New inbox-tag flag")),
	), s.handle("tags.update", s.tagsUpdate))

	s.mcp.AddTool(mcp.NewTool("tags.delete",
		mcp.WithDescription("Delete a tag. Requires confirm=true; without it, returns a preview of what would be deleted."),
		mcp.WithDestructiveHintAnnotation(true),
		mcp.WithNumber("id", mcp.Required(), mcp.Description("Tag id")),
		mcp.WithBoolean("confirm", mcp.Description("Set true to actually delete")),
	), s.handle("tags.delete", s.tagsDelete))

	s.mcp.AddTool(mcp.NewTool("tags.bulk_delete",
		mcp.WithDescription("Delete multiple tags in one call. Dry-run by default; set dry_run=false and confirm=true to execute."),
		mcp.WithDestructiveHintAnnotation(true),
		mcp.WithString("ids", mcp.Required(), mcp.Description("Comma-separated tag ids, e.g. \"3,7,12\"")),
		mcp.WithBoolean("dry_run", mcp.Description("Preview only (default true)")),
		mcp.WithBoolean("confirm", mcp.Description("Must be true to execute")),
	), s.handle("tags.bulk_delete", s.tagsBulkDelete))
}

func (s *Server) tagsList(ctx context.Context, req mcp.CallToolRequest) core.Envelope {
	page := req.GetInt("page", 1)
	pageSize := s.clampPageSize(req.GetInt("page_size", 0))
	res, err := s.client.ListTags(ctx, page, pageSize)
	if err != nil {
		return s.failErr(err)
	}
	return s.okList(res.Results, page, pageSize, res.Count, res.Next)
}

func (s *Server) tagsGet(ctx context.Context, req mcp.CallToolRequest) core.Envelope {
	id := req.GetInt("id", 0)
	if id <= 0 {
		return s.fail(core.CodeValidation, "id must be a positive integer", nil)
	}
	tag, err := s.client.GetTag(ctx, id)
	if err != nil {
		return s.failErr(err)
	}
	return s.ok(tag)
}

func (s *Server) tagsCreate(ctx context.Context, req mcp.CallToolRequest) core.Envelope {
	name := req.GetString("name", "")
	if name == "" {
		return s.fail(core.CodeValidation, "name must not be empty", nil)
	}
	f := paperless.TagFields{Name: &name, Color: optionalString(req.GetString("color", ""))}
	if req.GetBool("is_inbox_tag", false) {
		v := true
		f.IsInboxTag = &v
	}
	tag, err := s.client.CreateTag(ctx, f)
	if err != nil {
		return s.failErr(err)
	}
	return s.ok(tag)
}

func (s *Server) tagsUpdate(ctx context.Context, req mcp.CallToolRequest) core.Envelope {
	id := req.GetInt("id", 0)
	if id <= 0 {
		return s.fail(core.CodeValidation, "id must be a positive integer", nil)
	}
	f := paperless.TagFields{
		Name:  optionalString(req.GetString("name", "")),
		Color: optionalString(req.GetString("color", "")),
	}
	if inbox, ok := req.GetArguments()["is_inbox_tag"].(bool); ok {
		f.IsInboxTag = &inbox
	}
	if f.Name == nil && f.Color == nil && f.IsInboxTag == nil {
		return s.fail(core.CodeValidation, "no fields to update", nil)
	}
	tag, err := s.client.UpdateTag(ctx, id, f)
	if err != nil {
		return s.failErr(err)
	}
	return s.ok(tag)
}

func (s *Server) tagsDelete(ctx context.Context, req mcp.CallToolRequest) core.Envelope {
	return deleteWithConfirm(s, ctx, req, "tag",
		s.client.GetTag,
		func(t *paperless.Tag) (string, int) { return t.Name, t.DocumentCount },
		s.client.DeleteTag)
}

func (s *Server) tagsBulkDelete(ctx context.Context, req mcp.CallToolRequest) core.Envelope {
	return s.bulkDeleteObjects(ctx, req, "tags")
}
