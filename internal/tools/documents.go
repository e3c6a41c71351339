package tools

import (
	"context"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/zagah/PaperlessMCP/internal/core"
	"github.com/zagah/PaperlessMCP/internal/gate"
	"github.com/zagah/PaperlessMCP/internal/paperless"
)

// documentView decorates the backend document with direct download and
// preview links so callers never have to build backend URLs themselves.
type documentView struct {
	paperless.Document
	DownloadURL string `json:"download_url"`
	PreviewURL  string `json:"preview_url"`
}

func (s *Server) docView(d paperless.Document) documentView {
	base := s.client.BaseURL()
	return documentView{
		Document:    d,
		DownloadURL: fmt.Sprintf("%s/api/documents/%d/download/", base, d.ID),
		PreviewURL:  fmt.Sprintf("%s/api/documents/%d/preview/", base, d.ID),
	}
}

func (s *Server) docViews(docs []paperless.Document) []documentView {
	views := make([]documentView, len(docs))
	for i, d := range docs {
		views[i] = s.docView(d)
	}
	return views
}

func (s *Server) registerDocumentTools() {
	s.mcp.AddTool(mcp.NewTool("documents.list",
		mcp.WithDescription("List documents with pagination and optional filters."),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithIdempotentHintAnnotation(true),
		mcp.WithNumber("page", mcp.Description("1-based page number")),
		mcp.WithNumber("page_size", mcp.Description("Items per page, clamped to the server ceiling")),
		mcp.WithString("tags", mcp.Description("Comma-separated tag ids; documents must carry any of them")),
		mcp.WithNumber("correspondent_id", mcp.Description("Filter by correspondent")),
		mcp.WithNumber("document_type_id", mcp.Description("Filter by document type")),
		mcp.WithNumber("storage_path_id", mcp.Description("Filter by storage path")),
	), s.handle("documents.list", s.documentsList))

	s.mcp.AddTool(mcp.NewTool("documents.search",
		mcp.WithDescription("Full-text search over document contents. Results carry relevance scores and highlights."),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithIdempotentHintAnnotation(true),
		mcp.WithString("query", mcp.Required(), mcp.Description("Search query")),
		mcp.WithNumber("page", mcp.Description("1-based page number")),
		mcp.WithNumber("page_size", mcp.Description("Items per page, clamped to the server ceiling")),
	), s.handle("documents.search", s.documentsSearch))

	s.mcp.AddTool(mcp.NewTool("documents.get",
		mcp.WithDescription("Fetch a single document by id, including content and metadata."),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithIdempotentHintAnnotation(true),
		mcp.WithNumber("id", mcp.Required(), mcp.Description("Document id")),
	), s.handle("documents.get", s.documentsGet))

	s.mcp.AddTool(mcp.NewTool("documents.update",
		mcp.WithDescription("Update document metadata. Only supplied fields change."),
		mcp.WithNumber("id", mcp.Required(), mcp.Description("Document id")),
		mcp.WithString("title", mcp.Description("New title")),
		mcp.WithNumber("correspondent_id", mcp.Description("New correspondent")),
		mcp.WithNumber("document_type_id", mcp.Description("New document type")),
		mcp.WithNumber("storage_path_id", mcp.Description("New storage path")),
		mcp.WithString("tags", mcp.Description("Comma-separated tag ids; replaces the full tag set")),
		mcp.WithNumber("archive_serial_number", mcp.Description("New archive serial number")),
	), s.handle("documents.update", s.documentsUpdate))

	s.mcp.AddTool(mcp.NewTool("documents.delete",
		mcp.WithDescription("Delete a document. Requires confirm=true; without it, returns a preview of what would be deleted."),
		mcp.WithDestructiveHintAnnotation(true),
		mcp.WithNumber("id", mcp.Required(), mcp.Description("Document id")),
		mcp.WithBoolean("confirm", mcp.Description("Set true to actually delete")),
	), s.handle("documents.delete", s.documentsDelete))

	s.mcp.AddTool(mcp.NewTool("documents.upload",
		mcp.WithDescription("Upload a document for processing. Supply either an absolute file path on the server host or base64 content with a filename. Returns the backend task id."),
		mcp.WithString("path", mcp.Description("Absolute path to the file (~ is expanded)")),
		mcp.WithString("content_base64", mcp.Description("Base64-encoded file content, alternative to path")),
		mcp.WithString("filename", mcp.Description("Filename for base64 content")),
		mcp.WithString("title", mcp.Description("Document title")),
		mcp.WithNumber("correspondent_id", mcp.Description("Correspondent to assign")),
		mcp.WithNumber("document_type_id", mcp.Description("Document type to assign")),
		mcp.WithNumber("storage_path_id", mcp.Description("Storage path to assign")),
		mcp.WithString("tags", mcp.Description("Comma-separated tag ids to assign")),
		mcp.WithNumber("archive_serial_number", mcp.Description("Archive serial number")),
		mcp.WithString("created", mcp.Description("Creation date as YYYY-MM-DD")),
	), s.handle("documents.upload", s.documentsUpload))

	s.mcp.AddTool(mcp.NewTool("documents.bulk_edit",
		mcp.WithDescription("Apply one mutation to multiple documents: set_correspondent, set_document_type, set_storage_path, add_tag, remove_tag, or delete. Dry-run by default; set dry_run=false and confirm=true to execute."),
		mcp.WithDestructiveHintAnnotation(true),
		mcp.WithString("ids", mcp.Required(), mcp.Description("Comma-separated document ids")),
		mcp.WithString("method", mcp.Required(), mcp.Description("Mutation to apply")),
		mcp.WithNumber("value", mcp.Description("Target id for set_* and *_tag methods")),
		mcp.WithBoolean("dry_run", mcp.Description("Preview only (default true)")),
		mcp.WithBoolean("confirm", mcp.Description("Must be true to execute")),
	), s.handle("documents.bulk_edit", s.documentsBulkEdit))
}

func (s *Server) documentsList(ctx context.Context, req mcp.CallToolRequest) core.Envelope {
	f := paperless.DocumentFilter{
		Page:            req.GetInt("page", 1),
		PageSize:        s.clampPageSize(req.GetInt("page_size", 0)),
		CorrespondentID: req.GetInt("correspondent_id", 0),
		DocumentTypeID:  req.GetInt("document_type_id", 0),
		StoragePathID:   req.GetInt("storage_path_id", 0),
	}
	if raw := req.GetString("tags", ""); raw != "" {
		ids, err := parseIDList(raw)
		if err != nil {
			return s.fail(core.CodeValidation, err.Error(), nil)
		}
		f.TagIDs = ids
	}
	res, err := s.client.ListDocuments(ctx, f)
	if err != nil {
		return s.failErr(err)
	}
	return s.okList(s.docViews(res.Results), f.Page, f.PageSize, res.Count, res.Next)
}

func (s *Server) documentsSearch(ctx context.Context, req mcp.CallToolRequest) core.Envelope {
	query := req.GetString("query", "")
	if query == "" {
		return s.fail(core.CodeValidation, "query must not be empty", nil)
	}
	f := paperless.DocumentFilter{
		Query:    query,
		Page:     req.GetInt("page", 1),
		PageSize: s.clampPageSize(req.GetInt("page_size", 0)),
	}
	res, err := s.client.ListDocuments(ctx, f)
	if err != nil {
		return s.failErr(err)
	}
	return s.okList(s.docViews(res.Results), f.Page, f.PageSize, res.Count, res.Next)
}

func (s *Server) documentsGet(ctx context.Context, req mcp.CallToolRequest) core.Envelope {
	id := req.GetInt("id", 0)
	if id <= 0 {
		return s.fail(core.CodeValidation, "id must be a positive integer", nil)
	}
	doc, err := s.client.GetDocument(ctx, id)
	if err != nil {
		return s.failErr(err)
	}
	return s.ok(s.docView(*doc))
}

func (s *Server) documentsUpdate(ctx context.Context, req mcp.CallToolRequest) core.Envelope {
	id := req.GetInt("id", 0)
	if id <= 0 {
		return s.fail(core.CodeValidation, "id must be a positive integer", nil)
	}
	u := paperless.DocumentUpdate{
		Title:               optionalString(req.GetString("title", "")),
		CorrespondentID:     optionalInt(req.GetInt("correspondent_id", 0)),
		DocumentTypeID:      optionalInt(req.GetInt("document_type_id", 0)),
		StoragePathID:       optionalInt(req.GetInt("storage_path_id", 0)),
		ArchiveSerialNumber: optionalInt(req.GetInt("archive_serial_number", 0)),
	}
	if raw := req.GetString("tags", ""); raw != "" {
		ids, err := parseIDList(raw)
		if err != nil {
			return s.fail(core.CodeValidation, err.Error(), nil)
		}
		u.TagIDs = &ids
	}
	if u == (paperless.DocumentUpdate{}) {
		return s.fail(core.CodeValidation, "no fields to update", nil)
	}
	doc, err := s.client.UpdateDocument(ctx, id, u)
	if err != nil {
		return s.failErr(err)
	}
	return s.ok(s.docView(*doc))
}

func (s *Server) documentsDelete(ctx context.Context, req mcp.CallToolRequest) core.Envelope {
	return deleteWithConfirm(s, ctx, req, "document",
		s.client.GetDocument,
		func(d *paperless.Document) (string, int) { return d.Title, 0 },
		s.client.DeleteDocument)
}

func (s *Server) documentsUpload(ctx context.Context, req mcp.CallToolRequest) core.Envelope {
	path := req.GetString("path", "")
	content := req.GetString("content_base64", "")
	if (path == "") == (content == "") {
		return s.fail(core.CodeValidation, "supply exactly one of path or content_base64", nil)
	}

	meta := paperless.UploadMetadata{
		Title:               req.GetString("title", ""),
		CorrespondentID:     req.GetInt("correspondent_id", 0),
		DocumentTypeID:      req.GetInt("document_type_id", 0),
		StoragePathID:       req.GetInt("storage_path_id", 0),
		ArchiveSerialNumber: req.GetInt("archive_serial_number", 0),
	}
	if raw := req.GetString("tags", ""); raw != "" {
		ids, err := parseIDList(raw)
		if err != nil {
			return s.fail(core.CodeValidation, err.Error(), nil)
		}
		meta.TagIDs = ids
	}
	if raw := req.GetString("created", ""); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return s.fail(core.CodeValidation, "created must be YYYY-MM-DD", nil)
		}
		meta.Created = t
	}

	var taskID string
	var err error
	if path != "" {
		taskID, err = s.client.UploadDocument(ctx, path, meta)
	} else {
		filename := req.GetString("filename", "")
		if filename == "" {
			return s.fail(core.CodeValidation, "filename is required with content_base64", nil)
		}
		var data []byte
		data, err = base64.StdEncoding.DecodeString(content)
		if err != nil {
			return s.fail(core.CodeValidation, "content_base64 is not valid base64", nil)
		}
		taskID, err = s.client.UploadDocumentBytes(ctx, data, filename, meta)
	}
	if err != nil {
		return s.failErr(err)
	}
	return s.ok(map[string]string{"task_id": taskID})
}

// bulkEditParams maps the tool's method names onto the backend's
// parameter shapes. Methods that target a relation need a value.
func bulkEditParams(method string, value int) (map[string]any, error) {
	switch method {
	case paperless.BulkSetCorrespondent:
		if value <= 0 {
			return nil, fmt.Errorf("%s requires a positive value", method)
		}
		return map[string]any{"correspondent": value}, nil
	case paperless.BulkSetDocumentType:
		if value <= 0 {
			return nil, fmt.Errorf("%s requires a positive value", method)
		}
		return map[string]any{"document_type": value}, nil
	case paperless.BulkSetStoragePath:
		if value <= 0 {
			return nil, fmt.Errorf("%s requires a positive value", method)
		}
		return map[string]any{"storage_path": value}, nil
	case paperless.BulkAddTag, paperless.BulkRemoveTag:
		if value <= 0 {
			return nil, fmt.Errorf("%s requires a positive value", method)
		}
		return map[string]any{"tag": value}, nil
	case paperless.BulkDelete:
		return map[string]any{}, nil
	default:
		return nil, fmt.Errorf("unsupported method: %s", method)
	}
}

func (s *Server) documentsBulkEdit(ctx context.Context, req mcp.CallToolRequest) core.Envelope {
	ids, err := parseIDList(req.GetString("ids", ""))
	if err != nil {
		return s.fail(core.CodeValidation, err.Error(), nil)
	}
	method := req.GetString("method", "")
	params, err := bulkEditParams(method, req.GetInt("value", 0))
	if err != nil {
		return s.fail(core.CodeValidation, err.Error(), nil)
	}
	decision := gate.CheckBulk(ids, req.GetBool("dry_run", true), req.GetBool("confirm", false))
	if !decision.Proceed {
		return s.ok(decision.Preview)
	}
	if err := s.client.BulkEditDocuments(ctx, ids, method, params); err != nil {
		return s.failErr(err)
	}
	return s.ok(core.BulkResult{AffectedIDs: ids, Executed: true})
}
