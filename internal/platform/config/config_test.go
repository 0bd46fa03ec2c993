package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

var configKeys = []string{
	"PORT",
	"SERVER_URL",
	"DOCS_PATH",
	"CORS_ALLOWED_ORIGINS",
	"REQUEST_BODY_LIMIT",
	"READ_TIMEOUT",
	"READ_HEADER_TIMEOUT",
	"WRITE_TIMEOUT",
	"IDLE_TIMEOUT",
	"SHUTDOWN_TIMEOUT",
}

// unsetConfigEnv removes all config variables for the duration of the test.
// t.Setenv registers the restore, os.Unsetenv then makes the key truly absent.
func unsetConfigEnv(t *testing.T) {
	t.Helper()
	for _, key := range configKeys {
		t.Setenv(key, "")
		if err := os.Unsetenv(key); err != nil {
			t.Fatalf("unset %s: %v", key, err)
		}
	}
}

func TestParseDefaults(t *testing.T) {
	unsetConfigEnv(t)

	cfg, err := Parse()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != 3000 {
		t.Errorf("expected port 3000, got %d", cfg.Port)
	}
	if cfg.ServerURL != "http://localhost:3000" {
		t.Errorf("expected default server URL, got %q", cfg.ServerURL)
	}
	if cfg.DocsPath != "/docs" {
		t.Errorf("expected /docs, got %q", cfg.DocsPath)
	}
	if len(cfg.CORSAllowedOrigins) != 1 || cfg.CORSAllowedOrigins[0] != "*" {
		t.Errorf("expected wildcard origin, got %v", cfg.CORSAllowedOrigins)
	}
	if cfg.RequestBodyLimit != 1<<20 {
		t.Errorf("expected 1 MiB body limit, got %d", cfg.RequestBodyLimit)
	}
	if cfg.ReadTimeout != 5*time.Second {
		t.Errorf("expected 5s read timeout, got %s", cfg.ReadTimeout)
	}
	if cfg.ShutdownTimeout != 10*time.Second {
		t.Errorf("expected 10s shutdown timeout, got %s", cfg.ShutdownTimeout)
	}
	if cfg.Addr() != ":3000" {
		t.Errorf("expected :3000, got %q", cfg.Addr())
	}
}

func TestParseOverrides(t *testing.T) {
	unsetConfigEnv(t)
	t.Setenv("PORT", "8081")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example,https://b.example")
	t.Setenv("SHUTDOWN_TIMEOUT", "3s")
	t.Setenv("DOCS_PATH", "/reference")

	cfg, err := Parse()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != 8081 {
		t.Errorf("expected port 8081, got %d", cfg.Port)
	}
	if cfg.ServerURL != "http://localhost:8081" {
		t.Errorf("server URL should follow port, got %q", cfg.ServerURL)
	}
	if len(cfg.CORSAllowedOrigins) != 2 || cfg.CORSAllowedOrigins[1] != "https://b.example" {
		t.Errorf("unexpected origins: %v", cfg.CORSAllowedOrigins)
	}
	if cfg.ShutdownTimeout != 3*time.Second {
		t.Errorf("expected 3s, got %s", cfg.ShutdownTimeout)
	}
	if cfg.DocsPath != "/reference" {
		t.Errorf("expected /reference, got %q", cfg.DocsPath)
	}
}

func TestParseExplicitServerURL(t *testing.T) {
	unsetConfigEnv(t)
	t.Setenv("SERVER_URL", "https://tasker.example.com")

	cfg, err := Parse()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.ServerURL != "https://tasker.example.com" {
		t.Errorf("expected explicit server URL, got %q", cfg.ServerURL)
	}
}

func TestParseInvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"non numeric port", "PORT", "http"},
		{"malformed duration", "WRITE_TIMEOUT", "ten seconds"},
		{"non numeric body limit", "REQUEST_BODY_LIMIT", "1MB"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			unsetConfigEnv(t)
			t.Setenv(tt.key, tt.value)
			if _, err := Parse(); err == nil {
				t.Fatalf("expected error for %s=%q", tt.key, tt.value)
			}
		})
	}
}

func TestParsePortOutOfRange(t *testing.T) {
	for _, port := range []string{"0", "70000", "-1"} {
		t.Run(port, func(t *testing.T) {
			unsetConfigEnv(t)
			t.Setenv("PORT", port)
			_, err := Parse()
			if !errors.Is(err, ErrInvalidPort) {
				t.Fatalf("expected ErrInvalidPort, got %v", err)
			}
		})
	}
}

func TestLoadReadsDotenvFile(t *testing.T) {
	unsetConfigEnv(t)

	path := filepath.Join(t.TempDir(), "test.env")
	if err := os.WriteFile(path, []byte("PORT=4100\nDOCS_PATH=\n"), 0o600); err != nil {
		t.Fatalf("write env file: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != 4100 {
		t.Errorf("expected port from dotenv, got %d", cfg.Port)
	}
}

func TestLoadEnvironmentWinsOverDotenv(t *testing.T) {
	unsetConfigEnv(t)
	t.Setenv("PORT", "5200")

	path := filepath.Join(t.TempDir(), "test.env")
	if err := os.WriteFile(path, []byte("PORT=4100\n"), 0o600); err != nil {
		t.Fatalf("write env file: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != 5200 {
		t.Errorf("expected environment port 5200, got %d", cfg.Port)
	}
}

func TestLoadMissingFileFallsBackToEnvironment(t *testing.T) {
	unsetConfigEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != 3000 {
		t.Errorf("expected default port, got %d", cfg.Port)
	}
}
