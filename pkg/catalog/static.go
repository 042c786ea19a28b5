package catalog

import (
	"context"
	"fmt"
	"io/fs"

	"github.com/goliatone/go-lodgedoc/pkg/doctype"
)

// StaticProvider serves catalogs from a loaded Store.
type StaticProvider struct {
	store *Store
}

// NewStaticProvider parses the catalogs in fsys.
func NewStaticProvider(fsys fs.FS) (*StaticProvider, error) {
	store, err := LoadFS(fsys)
	if err != nil {
		return nil, err
	}
	return &StaticProvider{store: store}, nil
}

// Default returns a provider over the bundled catalogs.
func Default() *StaticProvider {
	p, err := NewStaticProvider(EmbeddedFS())
	if err != nil {
		panic(err)
	}
	return p
}

// Store exposes the parsed catalogs.
func (p *StaticProvider) Store() *Store {
	return p.store
}

func (p *StaticProvider) Catalog(ctx context.Context, kind string) ([]Group, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCatalogUnavailable, err)
	}
	k, err := doctype.Parse(kind)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCatalogUnavailable, err)
	}
	groups, ok := p.store.Groups(k.String())
	if !ok {
		return nil, fmt.Errorf("%w: no catalog for %q", ErrCatalogUnavailable, k.String())
	}
	return groups, nil
}
