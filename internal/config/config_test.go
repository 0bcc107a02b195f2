package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaults(t *testing.T) {
	cfg := Defaults()
	if cfg.Format != "auto" || cfg.Color != "auto" || cfg.LogLevel != "info" {
		t.Fatalf("defaults: %+v", cfg)
	}
	if cfg.Summary || cfg.Only {
		t.Fatalf("summary and only must default off: %+v", cfg)
	}
	if cfg.TasksFile != filepath.Join(".vscode", "tasks.json") {
		t.Fatalf("tasks file: %q", cfg.TasksFile)
	}
}

func TestLoadWithoutFileOrEnv(t *testing.T) {
	t.Setenv("DESMOKE_CONFIG", filepath.Join(t.TempDir(), "absent.yaml"))
	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg != Defaults() {
		t.Fatalf("expected defaults, got %+v", cfg)
	}
}

func TestLoadFileOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "desmoke.yaml")
	data := "format: resmoke\nsummary: true\nlog_level: debug\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("DESMOKE_CONFIG", path)

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Format != "resmoke" || !cfg.Summary || cfg.LogLevel != "debug" {
		t.Fatalf("config: %+v", cfg)
	}
	// Untouched keys keep their defaults.
	if cfg.Color != "auto" {
		t.Fatalf("color: %q", cfg.Color)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "desmoke.yaml")
	if err := os.WriteFile(path, []byte("format: resmoke\n"), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("DESMOKE_CONFIG", path)
	t.Setenv("DESMOKE_FORMAT", "cppunit")
	t.Setenv("DESMOKE_ONLY", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Format != "cppunit" {
		t.Fatalf("format: %q", cfg.Format)
	}
	if !cfg.Only {
		t.Fatal("expected only-mode from env")
	}
}

func TestBadBoolEnvFallsBack(t *testing.T) {
	t.Setenv("DESMOKE_CONFIG", filepath.Join(t.TempDir(), "absent.yaml"))
	t.Setenv("DESMOKE_SUMMARY", "yes-please")
	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Summary {
		t.Fatal("unparsable bool must fall back to default")
	}
}

func TestMalformedFileFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "desmoke.yaml")
	if err := os.WriteFile(path, []byte("format: [unclosed"), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("DESMOKE_CONFIG", path)
	if _, err := Load(); err == nil {
		t.Fatal("expected a parse error")
	}
}
