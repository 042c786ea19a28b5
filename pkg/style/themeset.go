package style

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"

	theme "github.com/goliatone/go-theme"
	"gopkg.in/yaml.v3"
)

// ErrThemeNotFound is returned when a selection names an unknown theme.
var ErrThemeNotFound = errors.New("style: theme not found")

type manifestFile struct {
	Name     string                       `yaml:"name" json:"name"`
	Version  string                       `yaml:"version" json:"version"`
	Tokens   map[string]string            `yaml:"tokens" json:"tokens"`
	Variants map[string]map[string]string `yaml:"variants" json:"variants"`
}

// LoadManifest decodes a theme manifest. Variants are given as token maps:
//
//	name: lodge
//	tokens:
//	  text-color: "#222222"
//	variants:
//	  gold:
//	    border-color: "#8a6d1d"
//
// JSON documents decode through the same path.
func LoadManifest(r io.Reader) (*theme.Manifest, error) {
	var file manifestFile
	if err := yaml.NewDecoder(r).Decode(&file); err != nil {
		return nil, fmt.Errorf("style: decode theme manifest: %w", err)
	}
	file.Name = strings.TrimSpace(file.Name)
	if file.Name == "" {
		return nil, errors.New("style: theme manifest: name is required")
	}
	if file.Version == "" {
		file.Version = "0.0.0"
	}
	manifest := &theme.Manifest{
		Name:     file.Name,
		Version:  file.Version,
		Tokens:   file.Tokens,
		Variants: make(map[string]theme.Variant, len(file.Variants)),
	}
	for name, tokens := range file.Variants {
		manifest.Variants[name] = theme.Variant{Tokens: tokens}
	}
	return manifest, nil
}

type themeRegistry interface {
	theme.ThemeProvider
	Register(*theme.Manifest) error
}

// ThemeSet is a theme.ThemeSelector over a fixed set of manifests. Every
// manifest is also held by a go-theme registry, exposed through Provider.
type ThemeSet struct {
	mu        sync.RWMutex
	manifests map[string]*theme.Manifest
	registry  themeRegistry
	fallback  string
}

// NewThemeSet registers manifests; the first one becomes the fallback for
// empty selections.
func NewThemeSet(manifests ...*theme.Manifest) (*ThemeSet, error) {
	set := &ThemeSet{manifests: make(map[string]*theme.Manifest)}
	for _, m := range manifests {
		if err := set.Add(m); err != nil {
			return nil, err
		}
	}
	return set, nil
}

// Add registers a manifest, replacing any manifest of the same name.
func (s *ThemeSet) Add(m *theme.Manifest) error {
	if m == nil {
		return errors.New("style: theme manifest is nil")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	registry := s.registry
	if _, replaced := s.manifests[m.Name]; replaced || registry == nil {
		// Registries do not drop manifests, so a replacement starts a new one.
		registry = theme.NewRegistry()
		for name, prev := range s.manifests {
			if name == m.Name {
				continue
			}
			if err := registry.Register(prev); err != nil {
				return fmt.Errorf("style: register theme %q: %w", name, err)
			}
		}
	}
	if err := registry.Register(m); err != nil {
		return fmt.Errorf("style: register theme %q: %w", m.Name, err)
	}
	s.registry = registry
	s.manifests[m.Name] = m
	if s.fallback == "" {
		s.fallback = m.Name
	}
	return nil
}

// Provider returns the go-theme registry holding the set's manifests, for
// callers that resolve themes through go-theme directly. It is nil until a
// manifest is added.
func (s *ThemeSet) Provider() theme.ThemeProvider {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.registry == nil {
		return nil
	}
	return s.registry
}

// Names lists the registered themes.
func (s *ThemeSet) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.manifests))
	for name := range s.manifests {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Select resolves a theme and variant. An empty name selects the fallback
// theme; an unknown variant selects the base tokens.
func (s *ThemeSet) Select(name, variant string, _ ...theme.QueryOption) (*theme.Selection, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if name == "" {
		name = s.fallback
	}
	m, ok := s.manifests[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrThemeNotFound, name)
	}
	if _, ok := m.Variants[variant]; !ok {
		variant = ""
	}
	return &theme.Selection{Theme: m.Name, Variant: variant, Manifest: m}, nil
}

var _ theme.ThemeSelector = (*ThemeSet)(nil)
