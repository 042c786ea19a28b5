package style

import (
	"encoding/json"
	"fmt"
	"io"
	"sync"
)

// DocumentSettings is the persisted configuration of one document kind: the
// four region templates and the style overrides.
type DocumentSettings struct {
	HeaderTemplate  string `json:"header_template"`
	TitlesTemplate  string `json:"titles_template"`
	ContentTemplate string `json:"content_template"`
	FooterTemplate  string `json:"footer_template"`
	Styles          Config `json:"styles"`
}

// UnmarshalJSON accepts the legacy "header" key as an alias of
// "header_template".
func (d *DocumentSettings) UnmarshalJSON(data []byte) error {
	type plain DocumentSettings
	var aux struct {
		plain
		Header *string `json:"header"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*d = DocumentSettings(aux.plain)
	if d.HeaderTemplate == "" && aux.Header != nil {
		d.HeaderTemplate = *aux.Header
	}
	return nil
}

// Template returns the stored markup of a region.
func (d DocumentSettings) Template(region RegionName) string {
	switch region {
	case Header:
		return d.HeaderTemplate
	case Titles:
		return d.TitlesTemplate
	case Content:
		return d.ContentTemplate
	case Footer:
		return d.FooterTemplate
	}
	return ""
}

// SetTemplate replaces the stored markup of a region.
func (d *DocumentSettings) SetTemplate(region RegionName, markup string) {
	switch region {
	case Header:
		d.HeaderTemplate = markup
	case Titles:
		d.TitlesTemplate = markup
	case Content:
		d.ContentTemplate = markup
	case Footer:
		d.FooterTemplate = markup
	}
}

// Templates returns the region templates keyed by region.
func (d DocumentSettings) Templates() map[RegionName]string {
	out := make(map[RegionName]string, 4)
	for _, r := range Regions() {
		out[r] = d.Template(r)
	}
	return out
}

// Settings is the persisted settings object keyed by document kind name.
type Settings map[string]DocumentSettings

// LoadSettings decodes a settings object.
func LoadSettings(r io.Reader) (Settings, error) {
	var s Settings
	if err := json.NewDecoder(r).Decode(&s); err != nil {
		return nil, fmt.Errorf("style: decode settings: %w", err)
	}
	if s == nil {
		s = Settings{}
	}
	return s, nil
}

// Encode writes the settings as indented JSON. Map keys are sorted, so output
// is stable.
func (s Settings) Encode(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("style: encode settings: %w", err)
	}
	return nil
}

// Store keeps settings in memory. Writes are last-write-wins.
type Store struct {
	mu       sync.RWMutex
	settings Settings
}

// NewStore returns a store seeded with initial, which may be nil.
func NewStore(initial Settings) *Store {
	s := &Store{settings: make(Settings, len(initial))}
	for k, v := range initial {
		s.settings[k] = v
	}
	return s
}

// Get returns the settings of kind and whether any were stored.
func (s *Store) Get(kind string) (DocumentSettings, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.settings[kind]
	return d, ok
}

// Put replaces the settings of kind.
func (s *Store) Put(kind string, d DocumentSettings) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings[kind] = d
}

// Snapshot returns a copy of every stored setting.
func (s *Store) Snapshot() Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(Settings, len(s.settings))
	for k, v := range s.settings {
		out[k] = v
	}
	return out
}
