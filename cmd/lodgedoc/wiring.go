package main

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/goliatone/go-lodgedoc/internal/config"
	"github.com/goliatone/go-lodgedoc/pkg/bridge"
	"github.com/goliatone/go-lodgedoc/pkg/catalog"
	"github.com/goliatone/go-lodgedoc/pkg/composer"
	"github.com/goliatone/go-lodgedoc/pkg/doctype"
	"github.com/goliatone/go-lodgedoc/pkg/httpapi"
	"github.com/goliatone/go-lodgedoc/pkg/style"
)

func loadConfig() (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel()}))
	return cfg, logger, nil
}

// newCatalog picks the catalog source: a directory, a remote service or the
// bundled catalogs, in that order.
func newCatalog(cfg *config.Config) (catalog.Provider, error) {
	switch {
	case cfg.Catalog.Dir != "":
		return catalog.NewStaticProvider(os.DirFS(cfg.Catalog.Dir))
	case cfg.Catalog.URL != "":
		var opts []catalog.HTTPOption
		if cfg.Catalog.APIKey != "" {
			opts = append(opts, catalog.WithHeader("Authorization", "Bearer "+cfg.Catalog.APIKey))
		}
		return catalog.NewHTTPProvider(cfg.Catalog.URL, opts...), nil
	}
	return catalog.Default(), nil
}

func newComposer(cfg *config.Config, logger *slog.Logger) (*composer.Composer, error) {
	opts := []composer.Option{composer.WithLogger(logger)}
	if cfg.Theme.Manifest != "" {
		f, err := os.Open(cfg.Theme.Manifest)
		if err != nil {
			return nil, fmt.Errorf("open theme manifest: %w", err)
		}
		defer f.Close()
		manifest, err := style.LoadManifest(f)
		if err != nil {
			return nil, err
		}
		themes, err := style.NewThemeSet(manifest)
		if err != nil {
			return nil, err
		}
		opts = append(opts,
			composer.WithThemeSelector(themes),
			composer.WithTheme(cfg.Theme.Name, cfg.Theme.Variant),
		)
	}
	return composer.New(opts...), nil
}

// newBridge previews in-process unless a bridge service is configured.
func newBridge(cfg *config.Config, c *composer.Composer, logger *slog.Logger) bridge.Bridge {
	if cfg.Bridge.URL == "" {
		return bridge.NewLocal(c)
	}
	opts := []bridge.HTTPOption{bridge.WithLogger(logger)}
	if cfg.Bridge.Token != "" {
		opts = append(opts, bridge.WithHeader("Authorization", "Bearer "+cfg.Bridge.Token))
	}
	return bridge.NewHTTP(cfg.Bridge.URL, opts...)
}

func bearerGuard(token string) httpapi.GuardFunc {
	if token == "" {
		return nil
	}
	want := []byte("Bearer " + token)
	return func(r *http.Request) error {
		got := []byte(r.Header.Get("Authorization"))
		if subtle.ConstantTimeCompare(got, want) != 1 {
			return httpapi.StatusError{Code: http.StatusUnauthorized}
		}
		return nil
	}
}

func readSettings(path string) (style.Settings, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return style.Settings{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open settings: %w", err)
	}
	defer f.Close()
	return style.LoadSettings(f)
}

func writeSettings(path string, settings style.Settings) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".lodgedoc-settings-*")
	if err != nil {
		return fmt.Errorf("write settings: %w", err)
	}
	if err := settings.Encode(tmp); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("write settings: %w", err)
	}
	return os.Rename(tmp.Name(), path)
}

// documentSettings returns the stored settings of kind; an unsaved kind
// starts from its skeleton.
func documentSettings(settings style.Settings, kind doctype.Kind) style.DocumentSettings {
	doc, ok := settings[kind.String()]
	if !ok || strings.TrimSpace(doc.ContentTemplate) == "" {
		doc.ContentTemplate = kind.Skeleton()
	}
	return doc
}

func parseKind(raw string) (doctype.Kind, error) {
	kind, err := doctype.Parse(raw)
	if err != nil {
		return kind, fmt.Errorf("%w (known: %s)", err, strings.Join(kindNames(), ", "))
	}
	return kind, nil
}

func kindNames() []string {
	var names []string
	for _, k := range doctype.All() {
		names = append(names, k.String())
	}
	return names
}
