package model

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfigFile(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("LoadConfigFile: %v", err)
	}
	if cfg.PollIntervalSec != defaultPollIntervalSec {
		t.Errorf("PollIntervalSec = %d, want %d", cfg.PollIntervalSec, defaultPollIntervalSec)
	}
	if cfg.IncludeRead {
		t.Error("IncludeRead should default to false")
	}
	if cfg.Ignore.Backend != IgnoreBackendFile {
		t.Errorf("Ignore.Backend = %q, want %q", cfg.Ignore.Backend, IgnoreBackendFile)
	}
	if cfg.Review.Editor != "nvim" {
		t.Errorf("Review.Editor = %q, want nvim", cfg.Review.Editor)
	}
}

func TestLoadConfigFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte("poll_interval_sec: 3\ninclude_read: true\nreview:\n  base_dir: /src\nignore:\n  backend: sqlite\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfigFile(path)
	if err != nil {
		t.Fatalf("LoadConfigFile: %v", err)
	}
	if cfg.PollIntervalSec != minPollIntervalSec {
		t.Errorf("PollIntervalSec = %d, want clamp to %d", cfg.PollIntervalSec, minPollIntervalSec)
	}
	if !cfg.IncludeRead {
		t.Error("IncludeRead = false, want true")
	}
	if cfg.Review.BaseDir != "/src" {
		t.Errorf("Review.BaseDir = %q, want /src", cfg.Review.BaseDir)
	}
	if cfg.Review.Editor != "nvim" {
		t.Errorf("Review.Editor = %q, want default nvim", cfg.Review.Editor)
	}
	if cfg.Ignore.Backend != IgnoreBackendSQLite {
		t.Errorf("Ignore.Backend = %q, want sqlite", cfg.Ignore.Backend)
	}
}

func TestLoadConfigRejectsUnknownBackend(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("ignore:\n  backend: redis\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfigFile(path); err == nil {
		t.Fatal("expected error for unknown backend")
	}
}

func TestSaveConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := DefaultAppConfig()
	cfg.PollIntervalSec = 90
	cfg.IncludeRead = true

	if err := SaveConfig(path, cfg); err != nil {
		t.Fatalf("SaveConfig: %v", err)
	}
	got, err := LoadConfigFile(path)
	if err != nil {
		t.Fatalf("LoadConfigFile: %v", err)
	}
	if got.PollIntervalSec != 90 || !got.IncludeRead {
		t.Errorf("round trip = (%d, %v), want (90, true)", got.PollIntervalSec, got.IncludeRead)
	}
}
