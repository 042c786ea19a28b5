package httpapi

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/goliatone/go-lodgedoc/pkg/doctype"
)

// RegisterRoutes mounts the API under basePath on r and returns the mount
// path.
func RegisterRoutes(r chi.Router, basePath string, fns ...OptionFn) (string, error) {
	if r == nil {
		return "", fmt.Errorf("httpapi: missing router")
	}
	opts := NewOptions(fns...)
	opts.BasePath = basePath
	pattern := mountPath(basePath)
	r.Route(pattern, func(r chi.Router) {
		Routes(r, opts)
	})
	return pattern, nil
}

func mountPath(basePath string) string {
	basePath = strings.TrimSpace(basePath)
	if basePath == "" || basePath == "/" {
		return "/"
	}
	if !strings.HasPrefix(basePath, "/") {
		basePath = "/" + basePath
	}
	return strings.TrimRight(basePath, "/")
}

func contextWithKind(ctx context.Context, kind doctype.Kind) context.Context {
	return context.WithValue(ctx, kindKey{}, kind)
}

func kindFrom(ctx context.Context) doctype.Kind {
	kind, _ := ctx.Value(kindKey{}).(doctype.Kind)
	return kind
}
