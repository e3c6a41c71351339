package paperless

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/zagah/PaperlessMCP/internal/core"
)

func writeTempDoc(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scan.pdf")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write temp doc: %v", err)
	}
	return path
}

func TestUploadDocumentMultipartParts(t *testing.T) {
	var gotFile, gotTitle, gotCreated string
	var gotTags []string
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("parse multipart: %v", err)
			return
		}
		f, hdr, err := r.FormFile("document")
		if err != nil {
			t.Errorf("document part: %v", err)
			return
		}
		defer f.Close()
		content, _ := io.ReadAll(f)
		gotFile = hdr.Filename + ":" + string(content)
		gotTitle = r.FormValue("title")
		gotCreated = r.FormValue("created")
		gotTags = r.MultipartForm.Value["tags"]
		w.Write([]byte(`"task-abc-123"`))
	}))
	defer backend.Close()

	path := writeTempDoc(t, "pdf-bytes")
	taskID, err := testClient(t, backend).UploadDocument(context.Background(), path, UploadMetadata{
		Title:   "Invoice March",
		TagIDs:  []int{3, 7},
		Created: time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if taskID != "task-abc-123" {
		t.Fatalf("want task id, got %q", taskID)
	}
	if gotFile != "scan.pdf:pdf-bytes" {
		t.Fatalf("unexpected file part: %q", gotFile)
	}
	if gotTitle != "Invoice March" {
		t.Fatalf("unexpected title: %q", gotTitle)
	}
	if gotCreated != "2024-03-15" {
		t.Fatalf("unexpected created: %q", gotCreated)
	}
	if len(gotTags) != 2 || gotTags[0] != "3" || gotTags[1] != "7" {
		t.Fatalf("unexpected tags parts: %v", gotTags)
	}
}

func TestUploadOmitsUnsetMetadata(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("parse multipart: %v", err)
			return
		}
		for _, field := range []string{"title", "correspondent", "document_type", "storage_path", "tags", "created"} {
			if _, ok := r.MultipartForm.Value[field]; ok {
				t.Errorf("field %q must be omitted when unset", field)
			}
		}
		w.Write([]byte(`"t"`))
	}))
	defer backend.Close()

	path := writeTempDoc(t, "x")
	if _, err := testClient(t, backend).UploadDocument(context.Background(), path, UploadMetadata{}); err != nil {
		t.Fatalf("upload: %v", err)
	}
}

func TestUploadRetriesTransientFailures(t *testing.T) {
	var calls int32
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			http.Error(w, "busy", http.StatusServiceUnavailable)
			return
		}
		io.Copy(io.Discard, r.Body)
		w.Write([]byte(`"task-1"`))
	}))
	defer backend.Close()

	path := writeTempDoc(t, "content")
	c := testClient(t, backend)
	c.backoff = func(int) time.Duration { return 30 * time.Millisecond }

	start := time.Now()
	taskID, err := c.UploadDocument(context.Background(), path, UploadMetadata{})
	if err != nil {
		t.Fatalf("want success after retries, got %v", err)
	}
	if taskID != "task-1" {
		t.Fatalf("unexpected task id: %q", taskID)
	}
	if got := atomic.LoadInt32(&calls); got != 3 {
		t.Fatalf("want 3 attempts, got %d", got)
	}
	// Two failed attempts means two backoff waits before the success.
	if elapsed := time.Since(start); elapsed < 60*time.Millisecond {
		t.Fatalf("want two backoff delays, upload finished in %v", elapsed)
	}
}

func TestUploadExhaustionMessage(t *testing.T) {
	var calls int32
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		http.Error(w, "down", http.StatusBadGateway)
	}))
	defer backend.Close()

	path := writeTempDoc(t, "content")
	_, err := testClient(t, backend).UploadDocument(context.Background(), path, UploadMetadata{})
	if err == nil || !strings.Contains(err.Error(), "failed after 3 attempts") {
		t.Fatalf("want exhaustion message, got %v", err)
	}
	if got := atomic.LoadInt32(&calls); got != 3 {
		t.Fatalf("want 3 attempts, got %d", got)
	}
}

func TestUploadFatalStatusNotRetried(t *testing.T) {
	var calls int32
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		http.Error(w, "unsupported type", http.StatusBadRequest)
	}))
	defer backend.Close()

	path := writeTempDoc(t, "content")
	_, err := testClient(t, backend).UploadDocument(context.Background(), path, UploadMetadata{})
	var apiErr *core.APIError
	if !errors.As(err, &apiErr) || apiErr.StatusCode != http.StatusBadRequest {
		t.Fatalf("want 400 APIError, got %v", err)
	}
	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Fatalf("400 must not be retried, got %d attempts", got)
	}
}

func TestUploadRejectsRelativePath(t *testing.T) {
	c := testClient(t, httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request must be issued for a relative path")
	})))
	_, err := c.UploadDocument(context.Background(), "docs/scan.pdf", UploadMetadata{})
	if err == nil || !strings.Contains(err.Error(), "absolute") {
		t.Fatalf("want absolute-path error, got %v", err)
	}
}

func TestUploadRejectsMissingFile(t *testing.T) {
	c := testClient(t, httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request must be issued for a missing file")
	})))
	_, err := c.UploadDocument(context.Background(), filepath.Join(t.TempDir(), "nope.pdf"), UploadMetadata{})
	if err == nil {
		t.Fatal("want an error for a missing file")
	}
}

func TestUploadRetriesOpenFailures(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.Copy(io.Discard, r.Body)
		w.Write([]byte(`"task-open"`))
	}))
	defer backend.Close()

	c := testClient(t, backend)
	opens := 0
	taskID, err := c.uploadWithRetry(context.Background(), "doc.pdf", UploadMetadata{}, func() (io.ReadCloser, error) {
		opens++
		if opens < 3 {
			return nil, errors.New("device busy")
		}
		return io.NopCloser(strings.NewReader("content")), nil
	})
	if err != nil {
		t.Fatalf("want success once the file opens, got %v", err)
	}
	if taskID != "task-open" {
		t.Fatalf("unexpected task id: %q", taskID)
	}
	if opens != 3 {
		t.Fatalf("open failures must be retried, got %d opens", opens)
	}
}

func TestUploadDocumentBytes(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("parse multipart: %v", err)
			return
		}
		_, hdr, err := r.FormFile("document")
		if err != nil {
			t.Errorf("document part: %v", err)
			return
		}
		if hdr.Filename != "report.pdf" {
			t.Errorf("unexpected filename %q", hdr.Filename)
		}
		w.Write([]byte(`"task-bytes"`))
	}))
	defer backend.Close()

	taskID, err := testClient(t, backend).UploadDocumentBytes(context.Background(), []byte("data"), "report.pdf", UploadMetadata{})
	if err != nil {
		t.Fatalf("upload bytes: %v", err)
	}
	if taskID != "task-bytes" {
		t.Fatalf("unexpected task id: %q", taskID)
	}
}

func TestParseTaskID(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{name: "json string", raw: `"abc-123"`, want: "abc-123"},
		{name: "bare text", raw: "abc-123\n", want: "abc-123"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := parseTaskID([]byte(tt.raw)); got != tt.want {
				t.Fatalf("want %q, got %q", tt.want, got)
			}
		})
	}
}
