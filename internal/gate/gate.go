// Package gate decides whether destructive operations may proceed.
// Single-item deletes demand explicit confirmation and fail closed;
// bulk mutations default to a dry-run preview and only execute when the
// caller both disables dry_run and sets confirm.
package gate

import (
	"fmt"

	"github.com/zagah/PaperlessMCP/internal/core"
)

// BulkDecision is the outcome of gating one bulk request.
type BulkDecision struct {
	// Proceed is true only when the backend mutation should be issued.
	Proceed bool
	// Preview is the result to return when Proceed is false. Its
	// warnings name every flag still blocking execution.
	Preview core.BulkResult
}

// CheckBulk evaluates the two blocking flags for a bulk mutation over
// ids. dryRun defaults to true and confirm to false at the tool layer,
// so an unadorned call always previews.
func CheckBulk(ids []int, dryRun, confirm bool) BulkDecision {
	if dryRun || !confirm {
		var warnings []string
		if dryRun {
			warnings = append(warnings, "dry_run is enabled; no changes were made. Set dry_run=false to execute.")
		}
		if !confirm {
			warnings = append(warnings, "confirm is not set; no changes were made. Set confirm=true to execute.")
		}
		return BulkDecision{
			Preview: core.BulkResult{AffectedIDs: ids, Warnings: warnings, Executed: false},
		}
	}
	return BulkDecision{Proceed: true}
}

// DeletePreview is attached to a CONFIRMATION_REQUIRED error so the
// caller can see exactly what a confirmed retry would remove.
// DocumentCount is the number of documents still referencing the
// entity, when the backend reports one.
type DeletePreview struct {
	Entity        string `json:"entity"`
	ID            int    `json:"id"`
	Name          string `json:"name,omitempty"`
	DocumentCount int    `json:"document_count,omitempty"`
}

// ConfirmationError builds the error object for an unconfirmed
// single-item delete.
func ConfirmationError(entity string, id int, name string, documentCount int) *core.ErrorObject {
	msg := fmt.Sprintf("deleting %s %d requires confirm=true", entity, id)
	if documentCount > 0 {
		msg = fmt.Sprintf("deleting %s %d (referenced by %d documents) requires confirm=true", entity, id, documentCount)
	}
	return &core.ErrorObject{
		Code:    core.CodeConfirmationRequired,
		Message: msg,
		Details: DeletePreview{Entity: entity, ID: id, Name: name, DocumentCount: documentCount},
	}
}
