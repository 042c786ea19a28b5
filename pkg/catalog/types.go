package catalog

import (
	"context"
	"errors"

	"github.com/goliatone/go-lodgedoc/pkg/token"
)

// ErrCatalogUnavailable reports that the catalog for a kind could not be
// obtained. Editors keep working without it.
var ErrCatalogUnavailable = errors.New("catalog: unavailable")

// Entry describes one insertable variable.
type Entry struct {
	Key         string `json:"key" yaml:"key"`
	Label       string `json:"label" yaml:"label"`
	Type        string `json:"type,omitempty" yaml:"type,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Example     string `json:"example,omitempty" yaml:"example,omitempty"`
}

// Token converts the entry to the token inserted into a region.
func (e Entry) Token(group string) token.Token {
	return token.Token{Key: e.Key, Label: e.Label, Group: group}
}

// Group is an ordered, labelled set of entries.
type Group struct {
	ID        string  `json:"id" yaml:"id"`
	Label     string  `json:"label" yaml:"label"`
	Variables []Entry `json:"variables" yaml:"variables"`
}

// Catalog is the wire shape served for one document kind.
type Catalog struct {
	Kind   string  `json:"kind,omitempty" yaml:"kind,omitempty"`
	Groups []Group `json:"groups" yaml:"groups"`
}

// Provider returns the variable catalog for a document kind.
type Provider interface {
	Catalog(ctx context.Context, kind string) ([]Group, error)
}

// ProviderFunc adapts a function to Provider.
type ProviderFunc func(ctx context.Context, kind string) ([]Group, error)

func (f ProviderFunc) Catalog(ctx context.Context, kind string) ([]Group, error) {
	return f(ctx, kind)
}

// Lookup finds the entry for key and the id of its group.
func Lookup(groups []Group, key string) (Entry, string, bool) {
	for _, g := range groups {
		for _, e := range g.Variables {
			if e.Key == key {
				return e, g.ID, true
			}
		}
	}
	return Entry{}, "", false
}

// Keys lists every key in catalog order.
func Keys(groups []Group) []string {
	var out []string
	for _, g := range groups {
		for _, e := range g.Variables {
			out = append(out, e.Key)
		}
	}
	return out
}

// Contains reports whether key is in the catalog. Suitable for
// markup.PromoteBraces.
func Contains(groups []Group) func(key string) bool {
	set := make(map[string]struct{})
	for _, key := range Keys(groups) {
		set[key] = struct{}{}
	}
	return func(key string) bool {
		_, ok := set[key]
		return ok
	}
}

func cloneGroups(groups []Group) []Group {
	if groups == nil {
		return nil
	}
	out := make([]Group, len(groups))
	for i, g := range groups {
		out[i] = Group{ID: g.ID, Label: g.Label, Variables: append([]Entry(nil), g.Variables...)}
	}
	return out
}
