package bridge

import (
	"context"
	"errors"

	"github.com/goliatone/go-lodgedoc/pkg/composer"
	"github.com/goliatone/go-lodgedoc/pkg/doctype"
	"github.com/goliatone/go-lodgedoc/pkg/style"
)

// ErrRenderUnavailable is returned when a bridge cannot produce PDFs.
var ErrRenderUnavailable = errors.New("bridge: render unavailable")

// Bridge hands a composed document to a rendering collaborator.
type Bridge interface {
	Name() string
	// Preview returns renderable HTML for live preview.
	Preview(ctx context.Context, req Request) (Preview, error)
	// Render returns the final PDF bytes.
	Render(ctx context.Context, req Request) ([]byte, error)
}

// Request is one document to preview or render.
type Request struct {
	Kind     doctype.Kind           `json:"kind"`
	Settings style.DocumentSettings `json:"settings"`
	// ContextRef names a context the collaborator can build itself, such as a
	// session id. Context, when set, takes precedence.
	ContextRef string           `json:"context_ref,omitempty"`
	Context    composer.Context `json:"context,omitempty"`
	Theme      string           `json:"theme,omitempty"`
	Variant    string           `json:"variant,omitempty"`
}

// Preview is the result of a preview request.
type Preview struct {
	HTML       string   `json:"html"`
	Unresolved []string `json:"unresolved,omitempty"`
	Warnings   []string `json:"warnings,omitempty"`
}

// ComposerRequest converts req into a composer request with resolved data.
func ComposerRequest(req Request, data composer.Context) composer.Request {
	return composer.Request{
		Kind:      req.Kind,
		Styles:    req.Settings.Styles,
		Templates: req.Settings.Templates(),
		Context:   data,
		Theme:     req.Theme,
		Variant:   req.Variant,
	}
}
