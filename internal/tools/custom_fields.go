package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/zagah/PaperlessMCP/internal/core"
	"github.com/zagah/PaperlessMCP/internal/paperless"
)

// Custom field data types accepted by the backend.
var customFieldDataTypes = map[string]bool{
	"string": true, "url": true, "date": true, "boolean": true,
	"integer": true, "float": true, "monetary": true, "documentlink": true,
}

func (s *Server) registerCustomFieldTools() {
	s.mcp.AddTool(mcp.NewTool("custom_fields.list",
		mcp.WithDescription("List custom fields with pagination."),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithIdempotentHintAnnotation(true),
		mcp.WithNumber("page", mcp.Description("1-based page number")),
		mcp.WithNumber("page_size", mcp.Description("Items per page, clamped to the server ceiling")),
	), s.handle("custom_fields.list", s.customFieldsList))

	s.mcp.AddTool(mcp.NewTool("custom_fields.get",
		mcp.WithDescription("Fetch a single custom field by id."),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithIdempotentHintAnnotation(true),
		mcp.WithNumber("id", mcp.Required(), mcp.Description("Custom field id")),
	), s.handle("custom_fields.get", s.customFieldsGet))

	s.mcp.AddTool(mcp.NewTool("custom_fields.create",
		mcp.WithDescription("Create a custom field."),
		mcp.WithString("name", mcp.Required(), mcp.Description("Field name")),
		mcp.WithString("data_type", mcp.Required(), mcp.Description("One of: string, url, date, boolean, integer, float, monetary, documentlink")),
	), s.handle("custom_fields.create", s.customFieldsCreate))

	s.mcp.AddTool(mcp.NewTool("custom_fields.update",
		mcp.WithDescription("Rename an existing custom field. The data type cannot change after creation."),
		mcp.WithNumber("id", mcp.Required(), mcp.Description("Custom field id")),
		mcp.WithString("name", mcp.Required(), mcp.Description("New name")),
	), s.handle("custom_fields.update", s.customFieldsUpdate))

	s.mcp.AddTool(mcp.NewTool("custom_fields.delete",
		mcp.WithDescription("Delete a custom field. Requires confirm=true; without it, returns a preview."),
		mcp.WithDestructiveHintAnnotation(true),
		mcp.WithNumber("id", mcp.Required(), mcp.Description("Custom field id")),
		mcp.WithBoolean("confirm", mcp.Description("Set true to actually delete")),
	), s.handle("custom_fields.delete", s.customFieldsDelete))
}

func (s *Server) customFieldsList(ctx context.Context, req mcp.CallToolRequest) core.Envelope {
	page := req.GetInt("page", 1)
	pageSize := s.clampPageSize(req.GetInt("page_size", 0))
	res, err := s.client.ListCustomFields(ctx, page, pageSize)
	if err != nil {
		return s.failErr(err)
	}
	return s.okList(res.Results, page, pageSize, res.Count, res.Next)
}

func (s *Server) customFieldsGet(ctx context.Context, req mcp.CallToolRequest) core.Envelope {
	id := req.GetInt("id", 0)
	if id <= 0 {
		return s.fail(core.CodeValidation, "id must be a positive integer", nil)
	}
	cf, err := s.client.GetCustomField(ctx, id)
	if err != nil {
		return s.failErr(err)
	}
	return s.ok(cf)
}

func (s *Server) customFieldsCreate(ctx context.Context, req mcp.CallToolRequest) core.Envelope {
	name := req.GetString("name", "")
	dataType := req.GetString("data_type", "")
	if name == "" {
		return s.fail(core.CodeValidation, "name must not be empty", nil)
	}
	if !customFieldDataTypes[dataType] {
		return s.fail(core.CodeValidation, "unsupported data_type: "+dataType, nil)
	}
	cf, err := s.client.CreateCustomField(ctx, paperless.CustomFieldFields{Name: &name, DataType: &dataType})
	if err != nil {
		return s.failErr(err)
	}
	return s.ok(cf)
}

func (s *Server) customFieldsUpdate(ctx context.Context, req mcp.CallToolRequest) core.Envelope {
	id := req.GetInt("id", 0)
	if id <= 0 {
		return s.fail(core.CodeValidation, "id must be a positive integer", nil)
	}
	name := req.GetString("name", "")
	if name == "" {
		return s.fail(core.CodeValidation, "name must not be empty", nil)
	}
	cf, err := s.client.UpdateCustomField(ctx, id, paperless.CustomFieldFields{Name: &name})
	if err != nil {
		return s.failErr(err)
	}
	return s.ok(cf)
}

func (s *Server) customFieldsDelete(ctx context.Context, req mcp.CallToolRequest) core.Envelope {
	return deleteWithConfirm(s, ctx, req, "custom field",
		s.client.GetCustomField,
		func(cf *paperless.CustomField) (string, int) { return cf.Name, 0 },
		s.client.DeleteCustomField)
}
