package paperless

import (
	"context"
	"net/http"
)

// Bulk-edit methods accepted by the documents bulk endpoint.
const (
	BulkSetCorrespondent = "set_correspondent"
	BulkSetDocumentType  = "set_document_type"
	BulkSetStoragePath   = "set_storage_path"
	BulkAddTag           = "add_tag"
	BulkRemoveTag        = "remove_tag"
	BulkDelete           = "delete"
)

type bulkEditRequest struct {
	Documents  []int          `json:"documents"`
	Method     string         `json:"method"`
	Parameters map[string]any `json:"parameters"`
}

type bulkEditObjectsRequest struct {
	Objects    []int  `json:"objects"`
	ObjectType string `json:"object_type"`
	Operation  string `json:"operation"`
}

// BulkEditDocuments posts one bulk mutation for the full id list. The
// backend applies it atomically per its own semantics; ids are not
// pre-verified here.
func (c *Client) BulkEditDocuments(ctx context.Context, ids []int, method string, parameters map[string]any) error {
	if parameters == nil {
		parameters = map[string]any{}
	}
	body := bulkEditRequest{Documents: ids, Method: method, Parameters: parameters}
	resp, err := c.send(ctx, http.MethodPost, "/api/documents/bulk_edit/", nil, body)
	if err != nil {
		return err
	}
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		resp.Body.Close()
		return nil
	}
	return apiErrorFrom(resp)
}

// BulkDeleteObjects removes tags, correspondents, document types or
// storage paths in one call. objectType is the backend's plural name.
func (c *Client) BulkDeleteObjects(ctx context.Context, ids []int, objectType string) error {
	body := bulkEditObjectsRequest{Objects: ids, ObjectType: objectType, Operation: "delete"}
	resp, err := c.send(ctx, http.MethodPost, "/api/bulk_edit_objects/", nil, body)
	if err != nil {
		return err
	}
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		resp.Body.Close()
		return nil
	}
	return apiErrorFrom(resp)
}
