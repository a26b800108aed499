package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_ValidConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	doc := `
cache_dir: "/tmp/hdlpm-cache"
catalog_roots:
  - "/opt/ips"
log_level: "debug"
`
	if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.CacheDir != "/tmp/hdlpm-cache" {
		t.Errorf("CacheDir = %q, want %q", cfg.CacheDir, "/tmp/hdlpm-cache")
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, "debug")
	}
	if len(cfg.CatalogRoots) != 1 || cfg.CatalogRoots[0] != "/opt/ips" {
		t.Errorf("CatalogRoots = %v, want [/opt/ips]", cfg.CatalogRoots)
	}
}

func TestLoad_Defaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("{}"), 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want default %q", cfg.LogLevel, "info")
	}
	if cfg.CacheDir == "" {
		t.Error("CacheDir should default to a non-empty path")
	}
}
