package style_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/goliatone/go-lodgedoc/pkg/style"
)

const lodgeManifest = `
name: lodge
version: 1.0.0
tokens:
  text-color: "#222222"
  font-family: Georgia
variants:
  gold:
    text-color: "#8a6d1d"
`

func TestLoadManifestAndSelect(t *testing.T) {
	manifest, err := style.LoadManifest(strings.NewReader(lodgeManifest))
	if err != nil {
		t.Fatalf("load manifest: %v", err)
	}
	set, err := style.NewThemeSet(manifest)
	if err != nil {
		t.Fatalf("theme set: %v", err)
	}

	sel, err := set.Select("", "gold")
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	if sel.Theme != "lodge" || sel.Variant != "gold" {
		t.Fatalf("unexpected selection %s/%s", sel.Theme, sel.Variant)
	}
	global := style.GlobalDefaults(sel)
	if global.Content.Color != "#8a6d1d" {
		t.Fatalf("expected variant color, got %q", global.Content.Color)
	}
	if global.Content.FontFamily != "Georgia" {
		t.Fatalf("expected base font, got %q", global.Content.FontFamily)
	}

	sel, err = set.Select("lodge", "missing")
	if err != nil {
		t.Fatalf("select unknown variant: %v", err)
	}
	if sel.Variant != "" {
		t.Fatalf("unknown variant should fall back to base, got %q", sel.Variant)
	}
}

func TestThemeSet_UnknownTheme(t *testing.T) {
	set, err := style.NewThemeSet()
	if err != nil {
		t.Fatalf("theme set: %v", err)
	}
	if _, err := set.Select("nope", ""); !errors.Is(err, style.ErrThemeNotFound) {
		t.Fatalf("expected ErrThemeNotFound, got %v", err)
	}
}

func TestLoadManifest_RequiresName(t *testing.T) {
	if _, err := style.LoadManifest(strings.NewReader("tokens: {}\n")); err == nil {
		t.Fatalf("expected error for nameless manifest")
	}
}

func TestThemeSet_ReplaceKeepsProvider(t *testing.T) {
	set, err := style.NewThemeSet()
	if err != nil {
		t.Fatalf("theme set: %v", err)
	}
	if set.Provider() != nil {
		t.Fatalf("empty set should have no provider")
	}

	first, err := style.LoadManifest(strings.NewReader(lodgeManifest))
	if err != nil {
		t.Fatalf("load manifest: %v", err)
	}
	if err := set.Add(first); err != nil {
		t.Fatalf("add: %v", err)
	}
	if set.Provider() == nil {
		t.Fatalf("expected provider after add")
	}

	second, err := style.LoadManifest(strings.NewReader("name: lodge\nversion: 2.0.0\ntokens:\n  text-color: \"#000000\"\n"))
	if err != nil {
		t.Fatalf("load manifest: %v", err)
	}
	if err := set.Add(second); err != nil {
		t.Fatalf("replace: %v", err)
	}
	if set.Provider() == nil {
		t.Fatalf("expected provider after replace")
	}

	sel, err := set.Select("lodge", "")
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	if sel.Manifest.Version != "2.0.0" {
		t.Fatalf("expected replaced manifest, got version %q", sel.Manifest.Version)
	}
	if got := set.Names(); len(got) != 1 || got[0] != "lodge" {
		t.Fatalf("unexpected names %v", got)
	}
}
