package bridge

import (
	"context"
	"fmt"

	"github.com/goliatone/go-lodgedoc/pkg/composer"
)

// LocalName is the registry name of LocalBridge.
const LocalName = "local"

// Converter turns a composed HTML page into a PDF.
type Converter interface {
	Convert(ctx context.Context, html string) ([]byte, error)
}

// ConverterFunc adapts a function to Converter.
type ConverterFunc func(ctx context.Context, html string) ([]byte, error)

func (f ConverterFunc) Convert(ctx context.Context, html string) ([]byte, error) {
	return f(ctx, html)
}

// ContextResolver builds the data context for a ContextRef.
type ContextResolver func(ctx context.Context, ref string) (composer.Context, error)

// LocalOption configures a LocalBridge.
type LocalOption func(*LocalBridge)

// WithConverter enables Render.
func WithConverter(c Converter) LocalOption {
	return func(b *LocalBridge) {
		b.converter = c
	}
}

// WithContextResolver resolves requests that only carry a ContextRef.
func WithContextResolver(resolve ContextResolver) LocalOption {
	return func(b *LocalBridge) {
		b.resolve = resolve
	}
}

// LocalBridge previews through an in-process composer.
type LocalBridge struct {
	composer  *composer.Composer
	converter Converter
	resolve   ContextResolver
}

var _ Bridge = (*LocalBridge)(nil)

// NewLocal creates a bridge over c. A nil composer uses composer.New().
func NewLocal(c *composer.Composer, opts ...LocalOption) *LocalBridge {
	if c == nil {
		c = composer.New()
	}
	b := &LocalBridge{composer: c}
	for _, opt := range opts {
		if opt != nil {
			opt(b)
		}
	}
	return b
}

func (b *LocalBridge) Name() string { return LocalName }

// Preview composes req.
func (b *LocalBridge) Preview(ctx context.Context, req Request) (Preview, error) {
	res, err := b.compose(ctx, req)
	if err != nil {
		return Preview{}, err
	}
	return PreviewOf(res), nil
}

// Render composes req and converts it. Without a converter it returns
// ErrRenderUnavailable.
func (b *LocalBridge) Render(ctx context.Context, req Request) ([]byte, error) {
	if b.converter == nil {
		return nil, ErrRenderUnavailable
	}
	res, err := b.compose(ctx, req)
	if err != nil {
		return nil, err
	}
	pdf, err := b.converter.Convert(ctx, res.HTML)
	if err != nil {
		return nil, fmt.Errorf("bridge: convert: %w", err)
	}
	return pdf, nil
}

func (b *LocalBridge) compose(ctx context.Context, req Request) (composer.Result, error) {
	data := req.Context
	if data == nil && req.ContextRef != "" && b.resolve != nil {
		resolved, err := b.resolve(ctx, req.ContextRef)
		if err != nil {
			return composer.Result{}, fmt.Errorf("bridge: resolve context %q: %w", req.ContextRef, err)
		}
		data = resolved
	}
	res, err := b.composer.Compose(ctx, ComposerRequest(req, data))
	if err != nil {
		return composer.Result{}, fmt.Errorf("bridge: compose: %w", err)
	}
	return res, nil
}

// PreviewOf summarises a composer result.
func PreviewOf(res composer.Result) Preview {
	p := Preview{HTML: res.HTML, Unresolved: res.Unresolved}
	for _, w := range res.Warnings {
		p.Warnings = append(p.Warnings, w.Error())
	}
	return p
}
