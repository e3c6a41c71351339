// Package paperless is the backend client: it issues authenticated HTTP
// calls against the document-management API, retries transient failures
// with exponential backoff, and normalizes responses into typed values
// or core.APIError. Transport errors never escape this package raw.
package paperless

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/zagah/PaperlessMCP/internal/config"
	"github.com/zagah/PaperlessMCP/internal/core"
	"github.com/zagah/PaperlessMCP/internal/telemetry"
)

// Paginated mirrors the backend's cursor-style list responses.
type Paginated[T any] struct {
	Count    int     `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  []T     `json:"results"`
}

type Client struct {
	baseURL string
	token   string

	// httpClient serves metadata calls and is bounded by the configured
	// timeout. uploadClient has no client-level timeout; uploads are
	// bounded by a per-call context deadline instead.
	httpClient   *http.Client
	uploadClient *http.Client

	logger        *slog.Logger
	maxAttempts   int
	uploadTimeout time.Duration
	backoff       backoffFunc
}

func NewClient(cfg config.Config, logger *slog.Logger) *Client {
	return &Client{
		baseURL:       cfg.BaseURL,
		token:         cfg.Token,
		httpClient:    &http.Client{Timeout: cfg.Timeout},
		uploadClient:  &http.Client{},
		logger:        logger,
		maxAttempts:   cfg.MaxRetries,
		uploadTimeout: cfg.UploadTimeout,
		backoff:       expBackoff,
	}
}

func (c *Client) BaseURL() string { return c.baseURL }

func (c *Client) newRequest(ctx context.Context, method, path string, query url.Values, body any) (*http.Request, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request body: %w", err)
		}
		reader = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Token "+c.token)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}

// send issues the request with the transient-retry policy. Network
// failures, 5xx and 429 are retried up to the attempt ceiling; any other
// status is returned to the caller for normalization. The returned
// response body is open and owned by the caller.
func (c *Client) send(ctx context.Context, method, path string, query url.Values, body any) (*http.Response, error) {
	op := method + " " + path
	var resp *http.Response
	err := withRetry(ctx, c.maxAttempts, c.backoff, func(attempt int) error {
		req, err := c.newRequest(ctx, method, path, query, body)
		if err != nil {
			return err
		}
		r, err := c.httpClient.Do(req)
		if err != nil {
			telemetry.IncBackendError(op, 0)
			c.logger.Warn("backend request failed",
				"method", method, "path", path, "attempt", attempt, "err", err)
			apiErr := &core.APIError{Message: fmt.Sprintf("%s: %v", op, err)}
			if isRetryableNetErr(err) {
				return markTransient(apiErr, 0)
			}
			return apiErr
		}
		if isTransientStatus(r.StatusCode) {
			apiErr := apiErrorFrom(r)
			telemetry.IncBackendError(op, r.StatusCode)
			c.logger.Warn("backend returned transient status",
				"method", method, "path", path, "attempt", attempt,
				"status", r.StatusCode, "body", truncate(apiErr.Body, 256))
			return markTransient(apiErr, retryAfter(r))
		}
		if r.StatusCode >= 400 {
			telemetry.IncBackendError(op, r.StatusCode)
		}
		resp = r
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// apiErrorFrom drains and closes the response body (best-effort) and
// builds the structured backend error.
func apiErrorFrom(resp *http.Response) *core.APIError {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	resp.Body.Close()
	msg := http.StatusText(resp.StatusCode)
	if msg == "" {
		msg = resp.Status
	}
	return &core.APIError{StatusCode: resp.StatusCode, Message: msg, Body: string(body)}
}

// decodeInto consumes resp: non-2xx becomes an APIError, a 2xx body is
// decoded into T, and a missing body where a value is expected becomes a
// synthetic failure rather than a nil success.
func decodeInto[T any](resp *http.Response) (*T, error) {
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, apiErrorFrom(resp)
	}
	defer resp.Body.Close()
	var v T
	if err := json.NewDecoder(resp.Body).Decode(&v); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &core.APIError{StatusCode: resp.StatusCode, Message: "empty response body"}
		}
		return nil, &core.APIError{StatusCode: resp.StatusCode, Message: fmt.Sprintf("decode response: %v", err)}
	}
	return &v, nil
}

func isTransientStatus(code int) bool {
	if code == http.StatusTooManyRequests {
		return true
	}
	return code >= 500 && code <= 599
}

func isRetryableNetErr(err error) bool {
	if err == nil {
		return false
	}
	return !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded)
}

func retryAfter(resp *http.Response) time.Duration {
	v := resp.Header.Get("Retry-After")
	if v == "" {
		return 0
	}
	if secs, err := strconv.Atoi(v); err == nil {
		if secs < 0 {
			return 0
		}
		return time.Duration(secs) * time.Second
	}
	if t, err := http.ParseTime(v); err == nil {
		if d := time.Until(t); d > 0 {
			return d
		}
	}
	return 0
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
