package style

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-lodgedoc/pkg/doctype"
)

//go:embed defaults.yaml
var embeddedDefaults []byte

// KindDefaults holds the default style of each document kind, keyed by kind
// name.
type KindDefaults map[string]Config

// For returns the defaults of kind, or the zero Config.
func (d KindDefaults) For(kind doctype.Kind) Config {
	return d[kind.String()]
}

// LoadKindDefaults parses a YAML (or JSON) document keyed by kind name. Every
// key must name a known kind and every value must validate.
func LoadKindDefaults(r io.Reader) (KindDefaults, error) {
	raw := make(map[string]Config)
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&raw); err != nil && err != io.EOF {
		return nil, fmt.Errorf("style: decode defaults: %w", err)
	}

	out := make(KindDefaults, len(raw))
	for name, cfg := range raw {
		kind, err := doctype.Parse(name)
		if err != nil {
			return nil, fmt.Errorf("style: defaults: %w", err)
		}
		if issues := Validate(cfg); len(issues) > 0 {
			return nil, fmt.Errorf("style: defaults for %s: %w", kind, issues[0])
		}
		out[kind.String()] = cfg
	}
	return out, nil
}

var (
	builtinOnce     sync.Once
	builtinDefaults KindDefaults
	builtinErr      error
)

// BuiltinDefaults returns the bundled per kind defaults.
func BuiltinDefaults() KindDefaults {
	builtinOnce.Do(func() {
		builtinDefaults, builtinErr = LoadKindDefaults(bytes.NewReader(embeddedDefaults))
	})
	if builtinErr != nil {
		panic(builtinErr)
	}
	return builtinDefaults
}

// Defaults returns the bundled defaults of kind.
func Defaults(kind doctype.Kind) Config {
	return BuiltinDefaults().For(kind)
}
