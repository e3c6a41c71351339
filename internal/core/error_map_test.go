package core

import (
	"errors"
	"fmt"
	"testing"
)

func TestMapErrorTaxonomy(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode string
	}{
		{name: "404 maps to not found", err: &APIError{StatusCode: 404, Message: "Not Found"}, wantCode: CodeNotFound},
		{name: "401 maps to auth failed", err: &APIError{StatusCode: 401, Message: "Unauthorized"}, wantCode: CodeAuthFailed},
		{name: "403 maps to auth failed", err: &APIError{StatusCode: 403, Message: "Forbidden"}, wantCode: CodeAuthFailed},
		{name: "429 maps to rate limit", err: &APIError{StatusCode: 429, Message: "Too Many Requests"}, wantCode: CodeRateLimit},
		{name: "400 maps to upstream error", err: &APIError{StatusCode: 400, Message: "Bad Request", Body: `{"title":["required"]}`}, wantCode: CodeUpstreamError},
		{name: "500 maps to upstream error", err: &APIError{StatusCode: 500, Message: "Internal Server Error"}, wantCode: CodeUpstreamError},
		{name: "network-level failure maps to upstream error", err: &APIError{Message: "dial tcp: connection refused"}, wantCode: CodeUpstreamError},
		{name: "plain error maps to unknown", err: errors.New("something odd"), wantCode: CodeUnknown},
		{name: "nil maps to unknown", err: nil, wantCode: CodeUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MapError(tt.err)
			if got.Code != tt.wantCode {
				t.Fatalf("want code %q, got %q", tt.wantCode, got.Code)
			}
		})
	}
}

func TestMapErrorWrappedAPIError(t *testing.T) {
	inner := &APIError{StatusCode: 404, Message: "Not Found"}
	wrapped := fmt.Errorf("get tag: %w", inner)

	got := MapError(wrapped)
	if got.Code != CodeNotFound {
		t.Fatalf("want %q through wrapping, got %q", CodeNotFound, got.Code)
	}
}

func TestMapErrorUpstreamDetails(t *testing.T) {
	err := &APIError{StatusCode: 400, Message: "Bad Request", Body: `{"title":["This field is required."]}`}

	got := MapError(err)
	details, ok := got.Details.(map[string]any)
	if !ok {
		t.Fatalf("want details map, got %T", got.Details)
	}
	if details["status_code"] != 400 {
		t.Fatalf("want status_code 400, got %v", details["status_code"])
	}
	if details["response_body"] != err.Body {
		t.Fatalf("want raw body in details, got %v", details["response_body"])
	}
}
