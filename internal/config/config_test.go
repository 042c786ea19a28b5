package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Addr != ":8080" || cfg.Server.BasePath != "/api/lodgedoc" {
		t.Fatalf("unexpected server defaults: %+v", cfg.Server)
	}
	if cfg.Bridge.Debounce != 400*time.Millisecond {
		t.Fatalf("unexpected debounce %s", cfg.Bridge.Debounce)
	}
}

func TestLoad_FileThenEnvironment(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lodgedoc.yaml")
	data := []byte(`
server:
  addr: ":9090"
  base_path: docs/
catalog:
  url: https://catalog.example.test
bridge:
  debounce: 250ms
theme:
  name: lodge
log:
  level: debug
`)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("LODGEDOC_THEME_VARIANT", "gold")
	t.Setenv("LODGEDOC_ADDR", ":7070")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Addr != ":7070" {
		t.Fatalf("env should override addr, got %q", cfg.Server.Addr)
	}
	if cfg.Server.BasePath != "/docs" {
		t.Fatalf("base path not normalised: %q", cfg.Server.BasePath)
	}
	if cfg.Catalog.URL != "https://catalog.example.test" {
		t.Fatalf("unexpected catalog url %q", cfg.Catalog.URL)
	}
	if cfg.Bridge.Debounce != 250*time.Millisecond {
		t.Fatalf("unexpected debounce %s", cfg.Bridge.Debounce)
	}
	if cfg.Theme.Name != "lodge" || cfg.Theme.Variant != "gold" {
		t.Fatalf("unexpected theme %+v", cfg.Theme)
	}
	if cfg.LogLevel() != slog.LevelDebug {
		t.Fatalf("unexpected log level %v", cfg.LogLevel())
	}
	if cfg.Settings.Path != "lodgedoc-settings.json" {
		t.Fatalf("default settings path lost: %q", cfg.Settings.Path)
	}
}

func TestLoad_BadDebounce(t *testing.T) {
	t.Setenv("LODGEDOC_BRIDGE_DEBOUNCE", "soon")

	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatalf("expected error for invalid debounce")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.yaml")
	if err := os.WriteFile(path, []byte("server: [\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("expected decode error")
	}
}
