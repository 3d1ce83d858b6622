package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "config.json"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.ServerURL != DefaultServerURL {
		t.Fatalf("ServerURL = %q, want %q", cfg.ServerURL, DefaultServerURL)
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.json")
	cfg := &Config{ServerURL: "http://api.example.test", Email: "ada@example.com"}

	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if *loaded != *cfg {
		t.Fatalf("loaded = %+v, want %+v", loaded, cfg)
	}
}

func TestLoadRejectsBadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte("{"), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for malformed config")
	}
}

func TestLoadDirEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()

	if err := (&Config{ServerURL: "http://from-file.test"}).SaveDir(dir); err != nil {
		t.Fatalf("SaveDir() error = %v", err)
	}

	cfg, err := LoadDir(dir)
	if err != nil {
		t.Fatalf("LoadDir() error = %v", err)
	}
	if cfg.ServerURL != "http://from-file.test" {
		t.Fatalf("ServerURL = %q, want file value", cfg.ServerURL)
	}

	t.Setenv("TASKFLOW_API_BASE_URL", "http://from-env.test")
	cfg, err = LoadDir(dir)
	if err != nil {
		t.Fatalf("LoadDir() error = %v", err)
	}
	if cfg.ServerURL != "http://from-env.test" {
		t.Fatalf("ServerURL = %q, want env value", cfg.ServerURL)
	}
}

func TestGetGlobalConfigDirOverride(t *testing.T) {
	t.Setenv("TASKFLOW_CONFIG_DIR", "/tmp/taskflow-test")
	dir, err := GetGlobalConfigDir()
	if err != nil {
		t.Fatalf("GetGlobalConfigDir() error = %v", err)
	}
	if dir != "/tmp/taskflow-test" {
		t.Fatalf("dir = %q", dir)
	}
}

func TestParseEnvError(t *testing.T) {
	cfg := Default()
	t.Setenv("TASKFLOW_DEBUG", "not-a-bool")

	err := ParseEnv(cfg)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "parse env:") {
		t.Fatalf("expected parse env prefix, got %v", err)
	}
}
