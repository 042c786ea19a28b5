package composer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"

	theme "github.com/goliatone/go-theme"
	"golang.org/x/sync/errgroup"

	"github.com/goliatone/go-lodgedoc/pkg/doctype"
	"github.com/goliatone/go-lodgedoc/pkg/markup"
	"github.com/goliatone/go-lodgedoc/pkg/render/template"
	"github.com/goliatone/go-lodgedoc/pkg/render/template/gotemplate"
	"github.com/goliatone/go-lodgedoc/pkg/style"
)

// ErrUnresolvedToken classifies warnings about tokens with no context value.
var ErrUnresolvedToken = errors.New("composer: unresolved token")

// ErrRegionFailed classifies warnings about regions that could not render.
var ErrRegionFailed = errors.New("composer: region failed")

// Option customises the composer.
type Option func(*Composer)

// WithTemplateRenderer injects the engine used for the page layout. The
// engine must know a "document" template.
func WithTemplateRenderer(renderer template.TemplateRenderer) Option {
	return func(c *Composer) {
		c.renderer = renderer
	}
}

// WithSchema sets the node schema used to read region markup.
func WithSchema(schema *markup.Schema) Option {
	return func(c *Composer) {
		c.schema = schema
	}
}

// WithThemeSelector resolves the global style layer from a go-theme
// selection.
func WithThemeSelector(selector theme.ThemeSelector) Option {
	return func(c *Composer) {
		c.selector = selector
	}
}

// WithTheme sets the theme and variant used when a request names none.
func WithTheme(name, variant string) Option {
	return func(c *Composer) {
		c.themeName = name
		c.themeVariant = variant
	}
}

// WithDefaults replaces the built-in per-kind style defaults.
func WithDefaults(defaults style.KindDefaults) Option {
	return func(c *Composer) {
		c.defaults = defaults
	}
}

// WithLogger sets the logger for region and theme failures.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Composer) {
		c.logger = logger
	}
}

// Composer turns stored templates, style overrides and context data into a
// self-contained HTML page. It is safe for concurrent use.
type Composer struct {
	renderer     template.TemplateRenderer
	schema       *markup.Schema
	selector     theme.ThemeSelector
	themeName    string
	themeVariant string
	defaults     style.KindDefaults
	logger       *slog.Logger

	initialiseErr error
}

// New constructs a Composer. Missing dependencies use the built-in
// implementations.
func New(options ...Option) *Composer {
	c := &Composer{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(c)
	}
	c.applyDefaults()
	return c
}

func (c *Composer) applyDefaults() {
	if c.schema == nil {
		c.schema = markup.DefaultSchema()
	}
	if c.defaults == nil {
		c.defaults = style.BuiltinDefaults()
	}
	if c.logger == nil {
		c.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if c.renderer == nil {
		engine, err := gotemplate.New(gotemplate.WithFS(EmbeddedTemplates()))
		if err != nil {
			c.initialiseErr = fmt.Errorf("composer: default renderer: %w", err)
			return
		}
		c.renderer = engine
	}
}

// Request describes one document to compose.
type Request struct {
	Kind doctype.Kind

	// Styles holds the stored overrides. Unset fields fall back to the kind
	// defaults and then to the global theme layer.
	Styles style.Config

	// Templates holds the stored markup of each region. A missing region
	// renders empty.
	Templates map[style.RegionName]string

	Context Context

	// Theme and Variant override the composer's default theme selection.
	Theme   string
	Variant string

	// Title becomes the page title. Defaults to the kind label.
	Title string
	Lang  string
}

// Warning is a non-fatal problem found while composing.
type Warning struct {
	Region  style.RegionName `json:"region,omitempty"`
	Message string           `json:"message"`
	Err     error            `json:"-"`
}

func (w Warning) Error() string {
	if w.Region != "" {
		return fmt.Sprintf("%s: %s", w.Region, w.Message)
	}
	return w.Message
}

func (w Warning) Unwrap() error { return w.Err }

// RegionResult is the rendered body of one region.
type RegionResult struct {
	Name   style.RegionName `json:"name"`
	HTML   string           `json:"html"`
	Hidden bool             `json:"hidden,omitempty"`
	Error  string           `json:"error,omitempty"`
}

// Result is a composed document.
type Result struct {
	HTML       string         `json:"html"`
	CSS        string         `json:"css"`
	Page       Page           `json:"page"`
	Regions    []RegionResult `json:"regions"`
	Layers     []Layer        `json:"layers"`
	Unresolved []string       `json:"unresolved"`
	Warnings   []Warning      `json:"warnings,omitempty"`
	Style      style.Config   `json:"style"`
}

// Compose renders req into a full HTML page. The output depends only on the
// request and the composer configuration. Region failures and unresolved
// tokens are reported as warnings; an error means no page could be produced.
func (c *Composer) Compose(ctx context.Context, req Request) (Result, error) {
	if ctx == nil {
		return Result{}, errors.New("composer: context is required")
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	if c.initialiseErr != nil {
		return Result{}, c.initialiseErr
	}
	if !req.Kind.Valid() {
		return Result{}, fmt.Errorf("composer: %w: %d", doctype.ErrUnknownKind, int(req.Kind))
	}

	var result Result
	resolved := c.resolveStyle(req, &result)
	result.Style = resolved
	result.Page = Geometry(resolved.Page)
	result.Layers = Layers(resolved)

	unresolved := make(map[string]struct{})
	for _, name := range style.Regions() {
		if !resolved.Region(name).IsVisible() {
			result.Regions = append(result.Regions, RegionResult{Name: name, Hidden: true})
			continue
		}
		result.Regions = append(result.Regions, c.renderRegion(name, req.Templates[name], req.Context, unresolved, &result))
	}
	result.Unresolved = sortedKeys(unresolved)
	for _, key := range result.Unresolved {
		result.Warnings = append(result.Warnings, Warning{
			Message: fmt.Sprintf("no value for %q", key),
			Err:     ErrUnresolvedToken,
		})
	}

	result.CSS = Stylesheet(resolved, result.Page)

	html, err := c.renderer.RenderTemplate(DocumentTemplate, pageData(req, result))
	if err != nil {
		return Result{}, fmt.Errorf("composer: render page: %w", err)
	}
	result.HTML = html
	return result, nil
}

// ComposeAll composes several requests concurrently. Results keep the order
// of reqs; the first error cancels the rest.
func (c *Composer) ComposeAll(ctx context.Context, reqs []Request) ([]Result, error) {
	results := make([]Result, len(reqs))
	g, gctx := errgroup.WithContext(ctx)
	for i, req := range reqs {
		g.Go(func() error {
			res, err := c.Compose(gctx, req)
			if err != nil {
				return fmt.Errorf("composer: request %d (%s): %w", i, req.Kind, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (c *Composer) resolveStyle(req Request, result *Result) style.Config {
	stored, issues := style.Sanitize(req.Styles)
	for _, issue := range issues {
		result.Warnings = append(result.Warnings, Warning{Message: issue.Error(), Err: issue})
	}
	return style.Resolve(stored, c.defaults.For(req.Kind), c.globalLayer(req, result))
}

func (c *Composer) globalLayer(req Request, result *Result) style.Config {
	if c.selector == nil {
		return style.BuiltinGlobal()
	}
	name, variant := req.Theme, req.Variant
	if name == "" {
		name = c.themeName
	}
	if variant == "" {
		variant = c.themeVariant
	}
	selection, err := c.selector.Select(name, variant)
	if err != nil {
		c.logger.Warn("theme selection failed", "theme", name, "variant", variant, "error", err)
		result.Warnings = append(result.Warnings, Warning{
			Message: fmt.Sprintf("theme %q: %v", name, err),
			Err:     err,
		})
		return style.BuiltinGlobal()
	}
	return style.GlobalDefaults(selection)
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for key := range set {
		out = append(out, key)
	}
	sort.Strings(out)
	return out
}
