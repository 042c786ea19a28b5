package catalog

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-lodgedoc/pkg/doctype"
	"github.com/goliatone/go-lodgedoc/pkg/token"
)

// Store holds parsed catalogs keyed by kind name.
type Store struct {
	catalogs map[string][]Group
}

// LoadFS walks fsys and parses every JSON/YAML catalog file. Each file holds
// the catalog of a single kind; a kind may not be defined twice.
func LoadFS(fsys fs.FS) (*Store, error) {
	store := &Store{catalogs: make(map[string][]Group)}
	if fsys == nil {
		return store, nil
	}

	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isCatalogFile(path) {
			return nil
		}

		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("catalog: read %s: %w", path, err)
		}

		doc, err := parseDocument(data, path)
		if err != nil {
			return err
		}

		kind, err := doctype.Parse(doc.Kind)
		if err != nil {
			return fmt.Errorf("catalog: file %s: %w", path, err)
		}
		name := kind.String()
		if _, exists := store.catalogs[name]; exists {
			return fmt.Errorf("catalog: duplicate catalog for %q (file %s)", name, path)
		}

		groups, err := normaliseGroups(doc.Groups, path)
		if err != nil {
			return err
		}
		store.catalogs[name] = groups
		return nil
	})
	if err != nil {
		return nil, err
	}

	return store, nil
}

// Groups returns a copy of the catalog for kind.
func (s *Store) Groups(kind string) ([]Group, bool) {
	if s == nil {
		return nil, false
	}
	groups, ok := s.catalogs[kind]
	return cloneGroups(groups), ok
}

// Kinds lists the kinds that have a catalog, in doctype order.
func (s *Store) Kinds() []string {
	if s == nil {
		return nil
	}
	var out []string
	for _, k := range doctype.All() {
		if _, ok := s.catalogs[k.String()]; ok {
			out = append(out, k.String())
		}
	}
	return out
}

// Empty reports whether the store holds any catalog.
func (s *Store) Empty() bool {
	return s == nil || len(s.catalogs) == 0
}

func parseDocument(data []byte, source string) (Catalog, error) {
	var doc Catalog
	if len(strings.TrimSpace(string(data))) == 0 {
		return Catalog{}, fmt.Errorf("catalog: file %s is empty", source)
	}

	if err := json.Unmarshal(data, &doc); err == nil {
		return doc, nil
	}

	if err := yaml.Unmarshal(data, &doc); err == nil {
		return doc, nil
	}

	return Catalog{}, fmt.Errorf("catalog: parse %s: invalid JSON or YAML", source)
}

func normaliseGroups(raw []Group, source string) ([]Group, error) {
	seen := make(map[string]string)
	out := make([]Group, 0, len(raw))
	for idx, g := range raw {
		id := strings.TrimSpace(g.ID)
		if id == "" {
			return nil, fmt.Errorf("catalog: file %s group %d has an empty id", source, idx)
		}
		group := Group{ID: id, Label: strings.TrimSpace(g.Label), Variables: make([]Entry, 0, len(g.Variables))}
		if group.Label == "" {
			group.Label = id
		}
		for _, e := range g.Variables {
			e.Key = strings.TrimSpace(e.Key)
			if !token.ValidKey(e.Key) {
				return nil, fmt.Errorf("catalog: file %s group %q has invalid key %q", source, id, e.Key)
			}
			if prev, dup := seen[e.Key]; dup {
				return nil, fmt.Errorf("catalog: file %s key %q defined in groups %q and %q", source, e.Key, prev, id)
			}
			seen[e.Key] = id
			if strings.TrimSpace(e.Label) == "" {
				e.Label = e.Key
			}
			group.Variables = append(group.Variables, e)
		}
		out = append(out, group)
	}
	return out, nil
}

func isCatalogFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}
