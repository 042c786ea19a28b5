package httpapi

import (
	"log/slog"
	"net/http"

	"github.com/goliatone/go-lodgedoc/pkg/bridge"
	"github.com/goliatone/go-lodgedoc/pkg/catalog"
	"github.com/goliatone/go-lodgedoc/pkg/style"
)

// DefaultBasePath is where the API is mounted.
const DefaultBasePath = "/api/lodgedoc"

const defaultMaxBody = 2 << 20

// GuardFunc authorises a request. Returning a StatusError picks the status.
type GuardFunc func(r *http.Request) error

// Options configures the API handler.
type Options struct {
	BasePath string
	Catalog  catalog.Provider
	Settings *style.Store
	Bridge   bridge.Bridge
	Guard    GuardFunc
	Logger   *slog.Logger
	// MaxBody bounds request bodies in bytes.
	MaxBody int64
}

type OptionFn func(*Options)

// DefaultOptions serves the embedded catalogs, an empty settings store and an
// in-process bridge.
func DefaultOptions() Options {
	return Options{
		BasePath: DefaultBasePath,
		MaxBody:  defaultMaxBody,
	}
}

// NewOptions applies fns over DefaultOptions and fills missing collaborators.
func NewOptions(fns ...OptionFn) Options {
	opts := DefaultOptions()
	for _, fn := range fns {
		if fn == nil {
			continue
		}
		fn(&opts)
	}
	if opts.BasePath == "" {
		opts.BasePath = DefaultBasePath
	}
	if opts.MaxBody <= 0 {
		opts.MaxBody = defaultMaxBody
	}
	if opts.Catalog == nil {
		opts.Catalog = catalog.Default()
	}
	if opts.Settings == nil {
		opts.Settings = style.NewStore(nil)
	}
	if opts.Bridge == nil {
		opts.Bridge = bridge.NewLocal(nil)
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return opts
}

func WithBasePath(path string) OptionFn {
	return func(o *Options) {
		o.BasePath = path
	}
}

func WithCatalog(p catalog.Provider) OptionFn {
	return func(o *Options) {
		o.Catalog = p
	}
}

func WithSettings(store *style.Store) OptionFn {
	return func(o *Options) {
		o.Settings = store
	}
}

func WithBridge(b bridge.Bridge) OptionFn {
	return func(o *Options) {
		o.Bridge = b
	}
}

func WithGuard(guard GuardFunc) OptionFn {
	return func(o *Options) {
		o.Guard = guard
	}
}

func WithLogger(logger *slog.Logger) OptionFn {
	return func(o *Options) {
		o.Logger = logger
	}
}

func WithMaxBody(n int64) OptionFn {
	return func(o *Options) {
		o.MaxBody = n
	}
}
