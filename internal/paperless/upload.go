package paperless

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/zagah/PaperlessMCP/internal/core"
	"github.com/zagah/PaperlessMCP/internal/telemetry"
)

// UploadMetadata carries the optional fields attached to an uploaded
// document. Zero values mean "omit the part".
type UploadMetadata struct {
	Title               string
	CorrespondentID     int
	DocumentTypeID      int
	StoragePathID       int
	TagIDs              []int
	ArchiveSerialNumber int
	Created             time.Time
}

// UploadDocument streams the file at path to the backend's consume
// endpoint and returns the task id the backend assigned. The path must
// be absolute after ~ expansion; relative paths are rejected before any
// IO. Each retry attempt reopens the file so a failed stream never
// resumes mid-read.
func (c *Client) UploadDocument(ctx context.Context, path string, meta UploadMetadata) (string, error) {
	path = expandHome(path)
	if !filepath.IsAbs(path) {
		return "", fmt.Errorf("document path must be absolute, got %q", path)
	}
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("stat document: %w", err)
	}
	if !info.Mode().IsRegular() {
		return "", fmt.Errorf("document path is not a regular file: %s", path)
	}
	filename := filepath.Base(path)
	return c.uploadWithRetry(ctx, filename, meta, func() (io.ReadCloser, error) {
		return os.Open(path)
	})
}

// UploadDocumentBytes uploads in-memory content under the given
// filename. The slice is re-read on every attempt.
func (c *Client) UploadDocumentBytes(ctx context.Context, data []byte, filename string, meta UploadMetadata) (string, error) {
	if filename == "" {
		return "", fmt.Errorf("upload filename must not be empty")
	}
	return c.uploadWithRetry(ctx, filename, meta, func() (io.ReadCloser, error) {
		return io.NopCloser(bytes.NewReader(data)), nil
	})
}

// uploadWithRetry drives the shared retry loop around one streamed
// multipart POST per attempt. open is called once per attempt and the
// returned reader is closed by the streaming goroutine.
func (c *Client) uploadWithRetry(ctx context.Context, filename string, meta UploadMetadata, open func() (io.ReadCloser, error)) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.uploadTimeout)
	defer cancel()

	var taskID string
	err := withRetry(ctx, c.maxAttempts, c.backoff, func(attempt int) error {
		if attempt > 1 {
			telemetry.IncUploadRetry()
		}
		src, err := open()
		if err != nil {
			// IO errors are retryable like mid-stream failures; the next
			// attempt reopens from scratch.
			return markTransient(fmt.Errorf("open document: %w", err), 0)
		}
		id, err := c.postMultipart(ctx, src, filename, meta)
		if err != nil {
			return err
		}
		taskID = id
		return nil
	})
	if err != nil {
		var exhausted *exhaustedError
		if errors.As(err, &exhausted) {
			return "", fmt.Errorf("upload %s: %w", filename, err)
		}
		return "", err
	}
	return taskID, nil
}

// postMultipart streams one multipart request. The writer side runs in
// a goroutine that owns src and closes it exactly once; the pipe
// propagates its first error to the HTTP client.
func (c *Client) postMultipart(ctx context.Context, src io.ReadCloser, filename string, meta UploadMetadata) (string, error) {
	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)

	go func() {
		defer src.Close()
		err := writeUploadParts(mw, src, filename, meta)
		if cerr := mw.Close(); err == nil {
			err = cerr
		}
		pw.CloseWithError(err)
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/documents/post_document/", pr)
	if err != nil {
		pr.Close()
		return "", err
	}
	req.Header.Set("Authorization", "Token "+c.token)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.uploadClient.Do(req)
	if err != nil {
		telemetry.IncBackendError("POST /api/documents/post_document/", 0)
		c.logger.Warn("upload request failed", "filename", filename, "err", err)
		apiErr := &core.APIError{Message: fmt.Sprintf("upload %s: %v", filename, err)}
		if isRetryableNetErr(err) {
			return "", markTransient(apiErr, 0)
		}
		return "", apiErr
	}
	if isTransientStatus(resp.StatusCode) {
		apiErr := apiErrorFrom(resp)
		telemetry.IncBackendError("POST /api/documents/post_document/", apiErr.StatusCode)
		c.logger.Warn("upload returned transient status",
			"filename", filename, "status", apiErr.StatusCode, "body", truncate(apiErr.Body, 256))
		return "", markTransient(apiErr, retryAfter(resp))
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := apiErrorFrom(resp)
		telemetry.IncBackendError("POST /api/documents/post_document/", apiErr.StatusCode)
		return "", apiErr
	}

	defer resp.Body.Close()
	raw, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil {
		return "", &core.APIError{StatusCode: resp.StatusCode, Message: fmt.Sprintf("read upload response: %v", err)}
	}
	return parseTaskID(raw), nil
}

// writeUploadParts emits the document part followed by the metadata
// parts that are actually set. Tag ids repeat the same field name, one
// part per id, matching the backend's form contract.
func writeUploadParts(mw *multipart.Writer, src io.Reader, filename string, meta UploadMetadata) error {
	part, err := mw.CreateFormFile("document", filename)
	if err != nil {
		return err
	}
	if _, err := io.Copy(part, src); err != nil {
		return err
	}
	if meta.Title != "" {
		if err := mw.WriteField("title", meta.Title); err != nil {
			return err
		}
	}
	if meta.CorrespondentID > 0 {
		if err := mw.WriteField("correspondent", strconv.Itoa(meta.CorrespondentID)); err != nil {
			return err
		}
	}
	if meta.DocumentTypeID > 0 {
		if err := mw.WriteField("document_type", strconv.Itoa(meta.DocumentTypeID)); err != nil {
			return err
		}
	}
	if meta.StoragePathID > 0 {
		if err := mw.WriteField("storage_path", strconv.Itoa(meta.StoragePathID)); err != nil {
			return err
		}
	}
	for _, id := range meta.TagIDs {
		if err := mw.WriteField("tags", strconv.Itoa(id)); err != nil {
			return err
		}
	}
	if meta.ArchiveSerialNumber > 0 {
		if err := mw.WriteField("archive_serial_number", strconv.Itoa(meta.ArchiveSerialNumber)); err != nil {
			return err
		}
	}
	if !meta.Created.IsZero() {
		if err := mw.WriteField("created", meta.Created.Format("2006-01-02")); err != nil {
			return err
		}
	}
	return nil
}

// parseTaskID handles both the documented JSON string body and the
// occasional bare-text response some backend versions emit.
func parseTaskID(raw []byte) string {
	var id string
	if err := json.Unmarshal(raw, &id); err == nil {
		return id
	}
	return strings.TrimSpace(strings.Trim(strings.TrimSpace(string(raw)), `"`))
}

func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}
