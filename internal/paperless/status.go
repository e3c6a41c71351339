package paperless

import (
	"context"
	"net/http"
)

// SystemStatus mirrors the backend's /api/status/ payload. Nested
// blocks are kept as loose maps so new backend fields pass through
// without a client upgrade.
type SystemStatus struct {
	PngxVersion   string         `json:"pngx_version"`
	ServerOS      string         `json:"server_os"`
	InstallType   string         `json:"install_type"`
	Storage       map[string]any `json:"storage"`
	Database      map[string]any `json:"database"`
	Tasks         map[string]any `json:"tasks"`
	Classifier    map[string]any `json:"classifier,omitempty"`
	SanityResults map[string]any `json:"sanity_check,omitempty"`
}

// Status fetches the backend health snapshot.
func (c *Client) Status(ctx context.Context) (*SystemStatus, error) {
	resp, err := c.send(ctx, http.MethodGet, "/api/status/", nil, nil)
	if err != nil {
		return nil, err
	}
	return decodeInto[SystemStatus](resp)
}
