package paperless

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/zagah/PaperlessMCP/internal/config"
	"github.com/zagah/PaperlessMCP/internal/core"
)

func testClient(t *testing.T, backend *httptest.Server) *Client {
	t.Helper()
	c := NewClient(config.Config{
		BaseURL:       backend.URL,
		Token:         "test-token",
		PageSizeLimit: 100,
		Timeout:       5 * time.Second,
		UploadTimeout: 5 * time.Second,
		MaxRetries:    3,
	}, slog.New(slog.NewTextHandler(testWriter{t}, nil)))
	c.backoff = noBackoff
	return c
}

type testWriter struct{ t *testing.T }

func (w testWriter) Write(p []byte) (int, error) {
	w.t.Log(string(p))
	return len(p), nil
}

func TestClientSendsAuthHeader(t *testing.T) {
	var gotAuth, gotAccept string
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotAccept = r.Header.Get("Accept")
		w.Write([]byte(`{"count":0,"next":null,"previous":null,"results":[]}`))
	}))
	defer backend.Close()

	if _, err := testClient(t, backend).ListTags(context.Background(), 1, 10); err != nil {
		t.Fatalf("list: %v", err)
	}
	if gotAuth != "Token test-token" {
		t.Fatalf("want token auth header, got %q", gotAuth)
	}
	if gotAccept != "application/json" {
		t.Fatalf("want json accept header, got %q", gotAccept)
	}
}

func TestClientDecodesPaginatedList(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("page_size"); got != "25" {
			t.Errorf("want page_size=25, got %q", got)
		}
		w.Write([]byte(`{"count":51,"next":"http://x/api/tags/?page=2","previous":null,"results":[{"id":1,"name":"inbox"},{"id":2,"name":"tax"}]}`))
	}))
	defer backend.Close()

	page, err := testClient(t, backend).ListTags(context.Background(), 1, 25)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if page.Count != 51 || len(page.Results) != 2 {
		t.Fatalf("unexpected page: count=%d results=%d", page.Count, len(page.Results))
	}
	if page.Results[0].Name != "inbox" {
		t.Fatalf("unexpected first tag: %+v", page.Results[0])
	}
	if page.Next == nil {
		t.Fatal("want next cursor")
	}
}

func TestClient404BecomesAPIError(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"detail":"Not found."}`, http.StatusNotFound)
	}))
	defer backend.Close()

	_, err := testClient(t, backend).GetTag(context.Background(), 99)
	var apiErr *core.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("want APIError, got %T: %v", err, err)
	}
	if apiErr.StatusCode != http.StatusNotFound {
		t.Fatalf("want 404, got %d", apiErr.StatusCode)
	}
}

func TestClientRetriesServerErrors(t *testing.T) {
	var calls int32
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			http.Error(w, "boom", http.StatusBadGateway)
			return
		}
		w.Write([]byte(`{"id":5,"name":"inbox"}`))
	}))
	defer backend.Close()

	tag, err := testClient(t, backend).GetTag(context.Background(), 5)
	if err != nil {
		t.Fatalf("want eventual success, got %v", err)
	}
	if tag.ID != 5 {
		t.Fatalf("unexpected tag: %+v", tag)
	}
	if got := atomic.LoadInt32(&calls); got != 3 {
		t.Fatalf("want 3 calls, got %d", got)
	}
}

func TestClientDoesNotRetryClientErrors(t *testing.T) {
	var calls int32
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		http.Error(w, `{"name":["This field is required."]}`, http.StatusBadRequest)
	}))
	defer backend.Close()

	name := "x"
	_, err := testClient(t, backend).CreateTag(context.Background(), TagFields{Name: &name})
	var apiErr *core.APIError
	if !errors.As(err, &apiErr) || apiErr.StatusCode != http.StatusBadRequest {
		t.Fatalf("want a 400 APIError, got %v", err)
	}
	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Fatalf("400 must not be retried, got %d calls", got)
	}
}

func TestClientRetryExhaustionKeepsLastError(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusServiceUnavailable)
	}))
	defer backend.Close()

	_, err := testClient(t, backend).GetTag(context.Background(), 1)
	if err == nil || err.Error() != "failed after 3 attempts" {
		t.Fatalf("want exhaustion error, got %v", err)
	}
	var apiErr *core.APIError
	if !errors.As(err, &apiErr) || apiErr.StatusCode != http.StatusServiceUnavailable {
		t.Fatalf("want last 503 preserved through Unwrap, got %v", err)
	}
}

func TestClientDelete204IsSuccess(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			t.Errorf("want DELETE, got %s", r.Method)
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer backend.Close()

	if err := testClient(t, backend).DeleteTag(context.Background(), 3); err != nil {
		t.Fatalf("want nil, got %v", err)
	}
}

func TestClientEmptyBodyWhereValueExpected(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer backend.Close()

	_, err := testClient(t, backend).GetTag(context.Background(), 1)
	var apiErr *core.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("want APIError for empty body, got %v", err)
	}
	if apiErr.Message != "empty response body" {
		t.Fatalf("unexpected message: %q", apiErr.Message)
	}
}

func TestClientPatchSendsOnlySetFields(t *testing.T) {
	var body string
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		body = string(raw)
		w.Write([]byte(`{"id":4,"name":"renamed"}`))
	}))
	defer backend.Close()

	name := "renamed"
	if _, err := testClient(t, backend).UpdateTag(context.Background(), 4, TagFields{Name: &name}); err != nil {
		t.Fatalf("update: %v", err)
	}
	if body != `{"name":"renamed"}` {
		t.Fatalf("unexpected patch body: %s", body)
	}
}
