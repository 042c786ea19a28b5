// Package config loads the lodgedoc command configuration from a YAML file,
// an optional .env file and LODGEDOC_* environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultPath is the config file read when no path is given.
const DefaultPath = "lodgedoc.yaml"

type Config struct {
	Server struct {
		Addr     string `yaml:"addr"`
		BasePath string `yaml:"base_path"`
		Token    string `yaml:"token"` // bearer token required by the API; empty disables the guard
	} `yaml:"server"`
	Catalog struct {
		Dir    string `yaml:"dir"` // directory of catalog YAML/JSON files; empty uses the embedded catalogs
		URL    string `yaml:"url"`
		APIKey string `yaml:"api_key"`
	} `yaml:"catalog"`
	Settings struct {
		Path string `yaml:"path"`
	} `yaml:"settings"`
	Bridge struct {
		URL      string        `yaml:"url"` // empty composes in-process
		Token    string        `yaml:"token"`
		Debounce time.Duration `yaml:"debounce"`
	} `yaml:"bridge"`
	Theme struct {
		Manifest string `yaml:"manifest"`
		Name     string `yaml:"name"`
		Variant  string `yaml:"variant"`
	} `yaml:"theme"`
	Log struct {
		Level string `yaml:"level"`
	} `yaml:"log"`
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	var cfg Config
	cfg.Server.Addr = ":8080"
	cfg.Server.BasePath = "/api/lodgedoc"
	cfg.Settings.Path = "lodgedoc-settings.json"
	cfg.Bridge.Debounce = 400 * time.Millisecond
	cfg.Log.Level = "info"
	return cfg
}

// Load reads path over the defaults and applies environment overrides. A
// missing file is not an error.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := Default()
	if path == "" {
		path = DefaultPath
	}
	file, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	default:
		if err := yaml.Unmarshal(file, &cfg); err != nil {
			return nil, fmt.Errorf("config: decode %s: %w", path, err)
		}
	}

	if err := applyEnv(&cfg, os.Getenv); err != nil {
		return nil, err
	}
	cfg.Server.BasePath = "/" + strings.Trim(cfg.Server.BasePath, "/")
	return &cfg, nil
}

func applyEnv(cfg *Config, getenv func(string) string) error {
	strs := map[string]*string{
		"LODGEDOC_ADDR":            &cfg.Server.Addr,
		"LODGEDOC_BASE_PATH":       &cfg.Server.BasePath,
		"LODGEDOC_TOKEN":           &cfg.Server.Token,
		"LODGEDOC_CATALOG_DIR":     &cfg.Catalog.Dir,
		"LODGEDOC_CATALOG_URL":     &cfg.Catalog.URL,
		"LODGEDOC_CATALOG_API_KEY": &cfg.Catalog.APIKey,
		"LODGEDOC_SETTINGS":        &cfg.Settings.Path,
		"LODGEDOC_BRIDGE_URL":      &cfg.Bridge.URL,
		"LODGEDOC_BRIDGE_TOKEN":    &cfg.Bridge.Token,
		"LODGEDOC_THEME_MANIFEST":  &cfg.Theme.Manifest,
		"LODGEDOC_THEME":           &cfg.Theme.Name,
		"LODGEDOC_THEME_VARIANT":   &cfg.Theme.Variant,
		"LODGEDOC_LOG_LEVEL":       &cfg.Log.Level,
	}
	for key, dst := range strs {
		if v := getenv(key); v != "" {
			*dst = v
		}
	}
	if v := getenv("LODGEDOC_BRIDGE_DEBOUNCE"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("config: LODGEDOC_BRIDGE_DEBOUNCE: %w", err)
		}
		cfg.Bridge.Debounce = d
	}
	return nil
}

// LogLevel maps Log.Level to a slog level; unknown values mean info.
func (c Config) LogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return slog.LevelInfo
	}
	return level
}
