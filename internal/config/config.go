// Package config resolves the server configuration from the environment
// once at boot. The resulting Config is immutable and passed by value into
// constructors; nothing reads the environment after startup.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	defaultPageSizeLimit = 100
	defaultPort          = 5000
	defaultTimeout       = 30 * time.Second
	defaultUploadTimeout = 5 * time.Minute
	defaultMaxRetries    = 3
)

type Config struct {
	// BaseURL is the backend root, without a trailing slash.
	BaseURL string
	// Token is the static API token attached to every outbound request.
	Token string

	// PageSizeLimit caps the page_size accepted by list tools.
	PageSizeLimit int
	// Port is the listen port for the HTTP transport.
	Port int

	// Timeout bounds metadata calls; UploadTimeout bounds document uploads.
	Timeout       time.Duration
	UploadTimeout time.Duration

	// MaxRetries is the attempt ceiling for transient transport failures
	// and for the upload pipeline.
	MaxRetries int
}

// FromEnv builds a Config from the process environment. PAPERLESS_BASE_URL
// and PAPERLESS_API_TOKEN are required; everything else has a default.
func FromEnv() (Config, error) {
	cfg := Config{
		PageSizeLimit: defaultPageSizeLimit,
		Port:          defaultPort,
		Timeout:       defaultTimeout,
		UploadTimeout: defaultUploadTimeout,
		MaxRetries:    defaultMaxRetries,
	}

	cfg.BaseURL = strings.TrimRight(strings.TrimSpace(os.Getenv("PAPERLESS_BASE_URL")), "/")
	if cfg.BaseURL == "" {
		return Config{}, fmt.Errorf("PAPERLESS_BASE_URL is required")
	}
	cfg.Token = strings.TrimSpace(os.Getenv("PAPERLESS_API_TOKEN"))
	if cfg.Token == "" {
		return Config{}, fmt.Errorf("PAPERLESS_API_TOKEN is required")
	}

	var err error
	if cfg.PageSizeLimit, err = intEnv("PAPERLESS_PAGE_SIZE", cfg.PageSizeLimit); err != nil {
		return Config{}, err
	}
	if cfg.Port, err = intEnv("PAPERLESS_PORT", cfg.Port); err != nil {
		return Config{}, err
	}
	if cfg.MaxRetries, err = intEnv("PAPERLESS_MAX_RETRIES", cfg.MaxRetries); err != nil {
		return Config{}, err
	}
	if cfg.Timeout, err = durationEnv("PAPERLESS_TIMEOUT", cfg.Timeout); err != nil {
		return Config{}, err
	}
	if cfg.UploadTimeout, err = durationEnv("PAPERLESS_UPLOAD_TIMEOUT", cfg.UploadTimeout); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func intEnv(key string, fallback int) (int, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		return 0, fmt.Errorf("invalid %s: %q", key, raw)
	}
	return v, nil
}

func durationEnv(key string, fallback time.Duration) (time.Duration, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s: %q", key, raw)
	}
	return d, nil
}
