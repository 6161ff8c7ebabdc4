package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_Missing(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "config.yaml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Source != "" || cfg.Prefix != "" || cfg.Escalator != "" {
		t.Errorf("Load() = %+v, want zero value", cfg)
	}
	if !cfg.PathUpdateEnabled() {
		t.Error("PathUpdateEnabled() should default to true")
	}
}

func TestLoad_EmptyPath(t *testing.T) {
	cfg, err := Load("")
	if err != nil || cfg == nil {
		t.Fatalf("Load(\"\") = %v, %v", cfg, err)
	}
}

func TestLoad_Values(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "source: build/tsdl\nprefix: /opt/tools\nescalator: doas\nupdate_path: false\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Source != "build/tsdl" {
		t.Errorf("Source = %q", cfg.Source)
	}
	if cfg.Prefix != "/opt/tools" {
		t.Errorf("Prefix = %q", cfg.Prefix)
	}
	if cfg.Escalator != "doas" {
		t.Errorf("Escalator = %q", cfg.Escalator)
	}
	if cfg.PathUpdateEnabled() {
		t.Error("PathUpdateEnabled() = true, want false")
	}
}

func TestLoad_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("source: [unterminated\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("Load() should fail on invalid YAML")
	}
}
