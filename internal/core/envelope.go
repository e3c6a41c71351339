// Package core defines the response envelope every tool returns, the
// typed backend error, and the mapping from Go errors to the fixed
// error-code taxonomy.
package core

import (
	"fmt"

	"github.com/google/uuid"
)

// Error codes surfaced to callers. The set is fixed; tools never invent
// codes outside it.
const (
	CodeNotFound             = "NOT_FOUND"
	CodeValidation           = "VALIDATION"
	CodeUpstreamError        = "UPSTREAM_ERROR"
	CodeConfirmationRequired = "CONFIRMATION_REQUIRED"
	CodeAuthFailed           = "AUTH_FAILED"
	CodeRateLimit            = "RATE_LIMIT"
	CodeUnknown              = "UNKNOWN"
)

// APIError is a failed backend interaction: the HTTP status (0 for
// network-level failures), a short message, and the raw response body
// when one could be read. Immutable once constructed.
type APIError struct {
	StatusCode int
	Message    string
	Body       string
}

func (e *APIError) Error() string {
	if e.StatusCode == 0 {
		return e.Message
	}
	return fmt.Sprintf("backend HTTP %d: %s", e.StatusCode, e.Message)
}

// Envelope is the uniform wrapper for every tool response. OK is true
// exactly when Error is nil.
type Envelope struct {
	OK       bool         `json:"ok"`
	Result   any          `json:"result,omitempty"`
	Meta     Meta         `json:"meta"`
	Warnings []string     `json:"warnings,omitempty"`
	Error    *ErrorObject `json:"error,omitempty"`
}

type ErrorObject struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// Meta carries per-call metadata. RequestID is generated fresh on every
// envelope construction and is never caller-supplied. The pagination
// fields are populated only by SuccessList.
type Meta struct {
	RequestID      string  `json:"request_id"`
	Page           *int    `json:"page,omitempty"`
	PageSize       *int    `json:"page_size,omitempty"`
	Total          *int    `json:"total,omitempty"`
	Next           *string `json:"next,omitempty"`
	BackendBaseURL string  `json:"backend_base_url"`
}

// BulkResult reports a bulk operation. Executed is false for dry-run
// previews, which must never reach a backend mutation endpoint.
type BulkResult struct {
	AffectedIDs []int    `json:"affected_ids"`
	Warnings    []string `json:"warnings,omitempty"`
	Executed    bool     `json:"executed"`
}

func newMeta(baseURL string) Meta {
	return Meta{RequestID: uuid.New().String(), BackendBaseURL: baseURL}
}

// Success wraps a result value in an ok envelope.
func Success(baseURL string, result any, warnings ...string) Envelope {
	return Envelope{OK: true, Result: result, Meta: newMeta(baseURL), Warnings: warnings}
}

// SuccessList wraps a page of results and populates the pagination meta.
func SuccessList(baseURL string, result any, page, pageSize, total int, next *string) Envelope {
	meta := newMeta(baseURL)
	meta.Page = &page
	meta.PageSize = &pageSize
	meta.Total = &total
	meta.Next = next
	return Envelope{OK: true, Result: result, Meta: meta}
}

// Failure builds an error envelope with a code from the taxonomy.
func Failure(baseURL, code, message string, details any) Envelope {
	return Envelope{
		OK:    false,
		Meta:  newMeta(baseURL),
		Error: &ErrorObject{Code: code, Message: message, Details: details},
	}
}
