package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/goliatone/go-lodgedoc/internal/apispec"
	"github.com/goliatone/go-lodgedoc/pkg/bridge"
	"github.com/goliatone/go-lodgedoc/pkg/catalog"
	"github.com/goliatone/go-lodgedoc/pkg/composer"
	"github.com/goliatone/go-lodgedoc/pkg/doctype"
	"github.com/goliatone/go-lodgedoc/pkg/regenerate"
	"github.com/goliatone/go-lodgedoc/pkg/style"
)

type api struct {
	opts Options
}

// Handler builds the API router with default options plus any overrides.
func Handler(fns ...OptionFn) http.Handler {
	return HandlerWithOptions(NewOptions(fns...))
}

// HandlerWithOptions builds the API router from a pre-constructed Options
// value. Routes live under opts.BasePath.
func HandlerWithOptions(opts Options) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Route(mountPath(opts.BasePath), func(r chi.Router) {
		Routes(r, opts)
	})
	return r
}

// Routes registers the API endpoints on r, relative to its mount point.
func Routes(r chi.Router, opts Options) {
	opts = NewOptions(func(o *Options) { *o = opts })
	a := &api{opts: opts}

	r.Get("/openapi.json", a.openAPI)
	r.Group(func(r chi.Router) {
		r.Use(a.guard)
		r.Get("/kinds", a.listKinds)
		r.With(a.withKind).Get("/catalog/{kind}", a.getCatalog)
		r.With(a.withKind).Get("/settings/{kind}", a.getSettings)
		r.With(a.withKind).Put("/settings/{kind}", a.putSettings)
		r.With(a.withKind).Post("/preview/{kind}", a.preview)
		r.With(a.withKind).Post("/render/{kind}", a.render)
		r.With(a.withKind).Post("/regenerate/{kind}", a.regenerate)
	})
}

func (a *api) guard(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if a.opts.Guard != nil {
			if err := a.opts.Guard(r); err != nil {
				code := statusOf(err, http.StatusForbidden)
				writeError(w, code, errors.New(http.StatusText(code)))
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}

type kindKey struct{}

func (a *api) withKind(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		kind, err := doctype.Parse(chi.URLParam(r, "kind"))
		if err != nil {
			writeError(w, http.StatusNotFound, err)
			return
		}
		ctx := contextWithKind(r.Context(), kind)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (a *api) openAPI(w http.ResponseWriter, r *http.Request) {
	data, err := apispec.JSON(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	_, _ = w.Write(data)
}

type kindResponse struct {
	Name   string          `json:"name"`
	Title  string          `json:"title"`
	Fields []doctype.Field `json:"fields"`
}

func (a *api) listKinds(w http.ResponseWriter, _ *http.Request) {
	kinds := doctype.All()
	out := make([]kindResponse, 0, len(kinds))
	for _, k := range kinds {
		def := k.Definition()
		out = append(out, kindResponse{Name: def.Name, Title: def.Title, Fields: def.Fields})
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": out})
}

func (a *api) getCatalog(w http.ResponseWriter, r *http.Request) {
	kind := kindFrom(r.Context())
	groups, err := a.opts.Catalog.Catalog(r.Context(), kind.String())
	if err != nil {
		code := http.StatusServiceUnavailable
		if errors.Is(err, doctype.ErrUnknownKind) {
			code = http.StatusNotFound
		}
		a.opts.Logger.Warn("catalog unavailable", "kind", kind, "error", err)
		writeError(w, code, err)
		return
	}
	writeJSON(w, http.StatusOK, catalog.Catalog{Kind: kind.String(), Groups: groups})
}

// storedSettings returns the saved settings of kind. A kind that was never
// saved starts from its skeleton body and no style overrides.
func (a *api) storedSettings(kind doctype.Kind) style.DocumentSettings {
	if s, ok := a.opts.Settings.Get(kind.String()); ok {
		return s
	}
	return style.DocumentSettings{ContentTemplate: kind.Skeleton()}
}

func (a *api) getSettings(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, a.storedSettings(kindFrom(r.Context())))
}

func (a *api) putSettings(w http.ResponseWriter, r *http.Request) {
	kind := kindFrom(r.Context())
	var in style.DocumentSettings
	if err := a.decode(w, r, &in); err != nil {
		writeError(w, statusOf(err, http.StatusBadRequest), err)
		return
	}
	if issues := style.Validate(in.Styles); len(issues) > 0 {
		writeError(w, http.StatusUnprocessableEntity, fmt.Errorf("httpapi: %d invalid style values", len(issues)), issues...)
		return
	}
	a.opts.Settings.Put(kind.String(), in)
	writeJSON(w, http.StatusOK, in)
}

type composeRequest struct {
	Settings   *style.DocumentSettings `json:"settings,omitempty"`
	Context    composer.Context        `json:"context,omitempty"`
	ContextRef string                  `json:"context_ref,omitempty"`
	Theme      string                  `json:"theme,omitempty"`
	Variant    string                  `json:"variant,omitempty"`
}

func (a *api) bridgeRequest(w http.ResponseWriter, r *http.Request) (bridge.Request, bool) {
	kind := kindFrom(r.Context())
	var in composeRequest
	if err := a.decode(w, r, &in); err != nil {
		writeError(w, statusOf(err, http.StatusBadRequest), err)
		return bridge.Request{}, false
	}
	settings := a.storedSettings(kind)
	if in.Settings != nil {
		settings = *in.Settings
	}
	return bridge.Request{
		Kind:       kind,
		Settings:   settings,
		Context:    in.Context,
		ContextRef: in.ContextRef,
		Theme:      in.Theme,
		Variant:    in.Variant,
	}, true
}

func (a *api) preview(w http.ResponseWriter, r *http.Request) {
	req, ok := a.bridgeRequest(w, r)
	if !ok {
		return
	}
	out, err := a.opts.Bridge.Preview(r.Context(), req)
	if err != nil {
		a.opts.Logger.Error("preview failed", "kind", req.Kind, "bridge", a.opts.Bridge.Name(), "error", err)
		writeError(w, http.StatusBadGateway, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (a *api) render(w http.ResponseWriter, r *http.Request) {
	req, ok := a.bridgeRequest(w, r)
	if !ok {
		return
	}
	pdf, err := a.opts.Bridge.Render(r.Context(), req)
	if err != nil {
		code := http.StatusBadGateway
		if errors.Is(err, bridge.ErrRenderUnavailable) {
			code = http.StatusNotImplemented
		}
		a.opts.Logger.Error("render failed", "kind", req.Kind, "bridge", a.opts.Bridge.Name(), "error", err)
		writeError(w, code, err)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`inline; filename="%s.pdf"`, req.Kind))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(pdf)
}

type regenerateRequest struct {
	Fields  regenerate.Fields `json:"fields"`
	Confirm bool              `json:"confirm"`
}

func (a *api) regenerate(w http.ResponseWriter, r *http.Request) {
	kind := kindFrom(r.Context())
	var in regenerateRequest
	if err := a.decode(w, r, &in); err != nil {
		writeError(w, statusOf(err, http.StatusBadRequest), err)
		return
	}
	if !in.Confirm {
		writeError(w, http.StatusConflict, regenerate.ErrRegenerationConflict)
		return
	}
	content, err := regenerate.Regenerate(kind, in.Fields)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"content_template": content})
}

func (a *api) decode(w http.ResponseWriter, r *http.Request, v any) error {
	if ct := r.Header.Get("Content-Type"); ct != "" && !strings.HasPrefix(ct, "application/json") {
		return StatusError{Code: http.StatusUnsupportedMediaType, Err: fmt.Errorf("httpapi: unsupported content type %q", ct)}
	}
	body := http.MaxBytesReader(w, r.Body, a.opts.MaxBody)
	dec := json.NewDecoder(body)
	if err := dec.Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return StatusError{Code: http.StatusRequestEntityTooLarge, Err: err}
		}
		if errors.Is(err, io.EOF) {
			return StatusError{Code: http.StatusBadRequest, Err: errors.New("httpapi: request body is empty")}
		}
		return StatusError{Code: http.StatusBadRequest, Err: fmt.Errorf("httpapi: decode body: %w", err)}
	}
	return nil
}
