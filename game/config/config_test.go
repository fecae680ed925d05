package config

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{EnvLogLevel, EnvLogFormat, EnvHistoryFile, EnvSessionTTL} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if diff := cmp.Diff(Default(), cfg); diff != "" {
		t.Errorf("Config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_Environment(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvLogLevel, "DEBUG")
	t.Setenv(EnvLogFormat, "json")
	t.Setenv(EnvHistoryFile, "")
	t.Setenv(EnvSessionTTL, "90m")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	want := &Config{
		LogLevel:    "debug",
		LogFormat:   "json",
		HistoryFile: "",
		SessionTTL:  90 * time.Minute,
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("Config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_EnvFile(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "test.env")
	content := "CHECKERS_LOG_LEVEL=warn\nCHECKERS_LOG_FORMAT=logfmt\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write env file: %v", err)
	}
	t.Cleanup(func() {
		os.Unsetenv(EnvLogLevel)
		os.Unsetenv(EnvLogFormat)
	})

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.LogLevel != "warn" || cfg.LogFormat != "logfmt" {
		t.Errorf("Expected values from env file, got level=%s format=%s", cfg.LogLevel, cfg.LogFormat)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"unknown level", EnvLogLevel, "verbose"},
		{"unknown format", EnvLogFormat, "xml"},
		{"bad duration", EnvSessionTTL, "soon"},
		{"negative duration", EnvSessionTTL, "-1h"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.value)

			_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestValidate_Details(t *testing.T) {
	cfg := Default()
	cfg.LogLevel = ""
	cfg.LogFormat = "xml"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("Expected validation error")
	}
	msg := err.Error()
	if !strings.Contains(msg, "LogLevel is required") {
		t.Errorf("Expected required detail, got %q", msg)
	}
	if !strings.Contains(msg, "LogFormat must be one of") {
		t.Errorf("Expected oneof detail, got %q", msg)
	}
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	cfg := Default()
	cfg.LogLevel = "info"
	cfg.LogFormat = "logfmt"

	logger, err := NewLogger(cfg, &buf)
	if err != nil {
		t.Fatalf("NewLogger failed: %v", err)
	}

	logger.Debug("hidden", "k", 1)
	logger.Info("game created", "game", "abc")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("Expected debug record to be filtered, got %q", out)
	}
	if !strings.Contains(out, "game created") || !strings.Contains(out, "game=abc") {
		t.Errorf("Expected info record in logfmt, got %q", out)
	}
}

func TestNewLogger_InvalidLevel(t *testing.T) {
	cfg := Default()
	cfg.LogLevel = "loud"
	if _, err := NewLogger(cfg, &bytes.Buffer{}); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Expected ErrInvalidConfig, got %v", err)
	}
}

func TestDiscardLogger(t *testing.T) {
	logger := DiscardLogger()
	// Must not panic or write anywhere
	logger.Error("dropped", "k", "v")
}
