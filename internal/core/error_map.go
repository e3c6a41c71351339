package core

import (
	"errors"
	"net/http"
)

// MapError converts a backend-call error into the taxonomy. Typed
// APIErrors map by status code; anything else is UNKNOWN. UPSTREAM_ERROR
// keeps the backend's status and raw body under details so callers can
// tell a rejected payload from an unreachable backend.
func MapError(err error) *ErrorObject {
	if err == nil {
		return &ErrorObject{Code: CodeUnknown, Message: "unknown error"}
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		switch apiErr.StatusCode {
		case http.StatusNotFound:
			return &ErrorObject{Code: CodeNotFound, Message: apiErr.Message}
		case http.StatusUnauthorized, http.StatusForbidden:
			return &ErrorObject{Code: CodeAuthFailed, Message: apiErr.Message}
		case http.StatusTooManyRequests:
			return &ErrorObject{Code: CodeRateLimit, Message: apiErr.Message}
		default:
			return &ErrorObject{
				Code:    CodeUpstreamError,
				Message: err.Error(),
				Details: map[string]any{
					"status_code":   apiErr.StatusCode,
					"response_body": apiErr.Body,
				},
			}
		}
	}

	return &ErrorObject{Code: CodeUnknown, Message: err.Error()}
}
