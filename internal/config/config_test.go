package config

import (
	"testing"
	"time"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("PAPERLESS_BASE_URL", "http://paperless.local:8000")
	t.Setenv("PAPERLESS_API_TOKEN", "secret")
}

func TestFromEnvDefaults(t *testing.T) {
	setRequired(t)

	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv: %v", err)
	}
	if cfg.BaseURL != "http://paperless.local:8000" {
		t.Fatalf("unexpected base url: %q", cfg.BaseURL)
	}
	if cfg.PageSizeLimit != 100 || cfg.Port != 5000 || cfg.MaxRetries != 3 {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.Timeout != 30*time.Second || cfg.UploadTimeout != 5*time.Minute {
		t.Fatalf("unexpected timeout defaults: %+v", cfg)
	}
}

func TestFromEnvTrimsTrailingSlash(t *testing.T) {
	t.Setenv("PAPERLESS_BASE_URL", "http://paperless.local:8000/")
	t.Setenv("PAPERLESS_API_TOKEN", "secret")

	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv: %v", err)
	}
	if cfg.BaseURL != "http://paperless.local:8000" {
		t.Fatalf("trailing slash must be trimmed, got %q", cfg.BaseURL)
	}
}

func TestFromEnvMissingRequired(t *testing.T) {
	t.Setenv("PAPERLESS_BASE_URL", "")
	t.Setenv("PAPERLESS_API_TOKEN", "")
	if _, err := FromEnv(); err == nil {
		t.Fatal("want error when base url is missing")
	}

	t.Setenv("PAPERLESS_BASE_URL", "http://paperless.local")
	if _, err := FromEnv(); err == nil {
		t.Fatal("want error when token is missing")
	}
}

func TestFromEnvOverrides(t *testing.T) {
	setRequired(t)
	t.Setenv("PAPERLESS_PAGE_SIZE", "25")
	t.Setenv("PAPERLESS_TIMEOUT", "10s")
	t.Setenv("PAPERLESS_MAX_RETRIES", "5")

	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv: %v", err)
	}
	if cfg.PageSizeLimit != 25 || cfg.Timeout != 10*time.Second || cfg.MaxRetries != 5 {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
}

func TestFromEnvRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{name: "non numeric page size", key: "PAPERLESS_PAGE_SIZE", value: "lots"},
		{name: "zero retries", key: "PAPERLESS_MAX_RETRIES", value: "0"},
		{name: "negative timeout", key: "PAPERLESS_TIMEOUT", value: "-3s"},
		{name: "bad duration", key: "PAPERLESS_UPLOAD_TIMEOUT", value: "five minutes"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setRequired(t)
			t.Setenv(tt.key, tt.value)
			if _, err := FromEnv(); err == nil {
				t.Fatalf("want error for %s=%q", tt.key, tt.value)
			}
		})
	}
}
