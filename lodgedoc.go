package lodgedoc

import (
	"context"
	"io/fs"
	"net/http"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-lodgedoc/internal/apispec"
	"github.com/goliatone/go-lodgedoc/pkg/composer"
	"github.com/goliatone/go-lodgedoc/pkg/doctype"
	"github.com/goliatone/go-lodgedoc/pkg/httpapi"
	"github.com/goliatone/go-lodgedoc/pkg/regenerate"
	"github.com/goliatone/go-lodgedoc/pkg/style"
)

// Kind identifies a document kind (balaustre, edital, certificado, convite).
type Kind = doctype.Kind

// Context is the data a document is composed against.
type Context = composer.Context

// Request aliases composer.Request for callers composing through the facade.
type Request = composer.Request

// Result aliases composer.Result.
type Result = composer.Result

// DocumentSettings is the persisted configuration of one kind.
type DocumentSettings = style.DocumentSettings

// Settings is the persisted settings object keyed by kind name.
type Settings = style.Settings

// Fields maps skeleton slot keys to regeneration values.
type Fields = regenerate.Fields

// ParseKind resolves a persisted kind name.
func ParseKind(name string) (Kind, error) {
	return doctype.Parse(name)
}

// NewComposer exposes the composer constructor from the top-level module.
func NewComposer(options ...composer.Option) *composer.Composer {
	return composer.New(options...)
}

// Compose renders one document from its stored settings. Unsaved content
// falls back to the kind's skeleton.
func Compose(ctx context.Context, kind Kind, settings DocumentSettings, data Context, options ...composer.Option) (Result, error) {
	if settings.ContentTemplate == "" {
		settings.ContentTemplate = kind.Skeleton()
	}
	return composer.New(options...).Compose(ctx, composer.Request{
		Kind:      kind,
		Styles:    settings.Styles,
		Templates: settings.Templates(),
		Context:   data,
	})
}

// ComposeHTML is Compose returning only the page markup.
func ComposeHTML(ctx context.Context, kind Kind, settings DocumentSettings, data Context, options ...composer.Option) (string, error) {
	res, err := Compose(ctx, kind, settings, data, options...)
	if err != nil {
		return "", err
	}
	return res.HTML, nil
}

// Regenerate rebuilds a kind's content template from field values.
func Regenerate(kind Kind, fields Fields) (string, error) {
	return regenerate.Regenerate(kind, fields)
}

// WithThemeSelector passes a go-theme selector to the composer so the global
// style layer is derived from theme tokens.
func WithThemeSelector(selector theme.ThemeSelector) composer.Option {
	return composer.WithThemeSelector(selector)
}

// WithTheme picks the theme and variant the selector resolves.
func WithTheme(name, variant string) composer.Option {
	return composer.WithTheme(name, variant)
}

// EmbeddedTemplates exposes the built-in page template so callers can reuse
// or override it.
func EmbeddedTemplates() fs.FS {
	return composer.EmbeddedTemplates()
}

// Handler builds the HTTP API.
func Handler(options ...httpapi.OptionFn) http.Handler {
	return httpapi.Handler(options...)
}

// OpenAPI returns the raw API contract.
func OpenAPI() []byte {
	return apispec.Raw()
}
