package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/zagah/PaperlessMCP/internal/core"
	"github.com/zagah/PaperlessMCP/internal/gate"
)

// deleteWithConfirm implements the single-item delete policy: an
// unconfirmed call fetches the entity and returns CONFIRMATION_REQUIRED
// with a preview of what a confirmed retry would remove (identifying
// name plus the referencing-document count where the backend reports
// one); a missing entity surfaces as NOT_FOUND instead. A confirmed
// call deletes without the preview fetch.
func deleteWithConfirm[T any](
	s *Server, ctx context.Context, req mcp.CallToolRequest, entity string,
	get func(context.Context, int) (*T, error),
	preview func(*T) (name string, documentCount int),
	del func(context.Context, int) error,
) core.Envelope {
	id := req.GetInt("id", 0)
	if id <= 0 {
		return s.fail(core.CodeValidation, "id must be a positive integer", nil)
	}
	if !req.GetBool("confirm", false) {
		item, err := get(ctx, id)
		if err != nil {
			return s.failErr(err)
		}
		name, count := preview(item)
		obj := gate.ConfirmationError(entity, id, name, count)
		return s.fail(obj.Code, obj.Message, obj.Details)
	}
	if err := del(ctx, id); err != nil {
		return s.failErr(err)
	}
	return s.ok(deleted{Deleted: true, ID: id})
}

// bulkDeleteObjects gates and runs one bulk delete through the
// backend's object endpoint. Validation happens before the gate, and
// an executed call hits the endpoint exactly once with the full list.
func (s *Server) bulkDeleteObjects(ctx context.Context, req mcp.CallToolRequest, objectType string) core.Envelope {
	ids, err := parseIDList(req.GetString("ids", ""))
	if err != nil {
		return s.fail(core.CodeValidation, err.Error(), nil)
	}
	decision := gate.CheckBulk(ids, req.GetBool("dry_run", true), req.GetBool("confirm", false))
	if !decision.Proceed {
		return s.ok(decision.Preview)
	}
	if err := s.client.BulkDeleteObjects(ctx, ids, objectType); err != nil {
		return s.failErr(err)
	}
	return s.ok(core.BulkResult{AffectedIDs: ids, Executed: true})
}
