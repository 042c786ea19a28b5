package composer_test

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	theme "github.com/goliatone/go-theme"
	nethtml "golang.org/x/net/html"

	"github.com/goliatone/go-lodgedoc/pkg/composer"
	"github.com/goliatone/go-lodgedoc/pkg/doctype"
	"github.com/goliatone/go-lodgedoc/pkg/markup"
	"github.com/goliatone/go-lodgedoc/pkg/style"
	"github.com/goliatone/go-lodgedoc/pkg/token"
)

func balaustreRequest() composer.Request {
	return composer.Request{
		Kind: doctype.Balaustre,
		Templates: map[style.RegionName]string{
			style.Header:  `<p>` + token.Encode("NomeLoja") + `</p>`,
			style.Titles:  `<h1>Balaústre</h1>`,
			style.Content: `<p>Aberta por ` + token.Encode("Veneravel") + ` às ` + token.Encode("HoraInicio") + `</p>`,
			style.Footer:  `<p>` + token.Encode("Secretario") + `</p>`,
		},
		Context: composer.Context{
			"NomeLoja":  "Loja Luz & Verdade",
			"Veneravel": "Irmão A",
			"loja":      map[string]any{"numero": 42},
		},
	}
}

func TestCompose_IsDeterministic(t *testing.T) {
	c := composer.New()
	first, err := c.Compose(context.Background(), balaustreRequest())
	if err != nil {
		t.Fatalf("compose: %v", err)
	}
	for i := 0; i < 3; i++ {
		again, err := c.Compose(context.Background(), balaustreRequest())
		if err != nil {
			t.Fatalf("compose: %v", err)
		}
		if again.HTML != first.HTML {
			t.Fatalf("output changed between runs:\n%s", cmp.Diff(first.HTML, again.HTML))
		}
	}
}

func TestCompose_ListsUnresolvedTokens(t *testing.T) {
	res, err := composer.New().Compose(context.Background(), balaustreRequest())
	if err != nil {
		t.Fatalf("compose: %v", err)
	}

	if diff := cmp.Diff([]string{"HoraInicio", "Secretario"}, res.Unresolved); diff != "" {
		t.Fatalf("unexpected unresolved keys (-want +got):\n%s", diff)
	}
	for _, key := range res.Unresolved {
		placeholder := `<span class="tpl-var-unresolved" data-var="` + key + `">{{ ` + key + ` }}</span>`
		if !strings.Contains(res.HTML, placeholder) {
			t.Fatalf("expected placeholder for %s in output", key)
		}
	}
	if !strings.Contains(res.HTML, "Loja Luz &amp; Verdade") {
		t.Fatalf("expected resolved, escaped value in output")
	}

	var unresolved int
	for _, w := range res.Warnings {
		if errors.Is(w, composer.ErrUnresolvedToken) {
			unresolved++
		}
	}
	if unresolved != 2 {
		t.Fatalf("expected 2 unresolved warnings, got %v", res.Warnings)
	}
}

func TestCompose_NoTokenMarkersSurvive(t *testing.T) {
	req := balaustreRequest()
	req.Context["HoraInicio"] = "20h"
	req.Context["Secretario"] = "Irmão B"

	res, err := composer.New().Compose(context.Background(), req)
	if err != nil {
		t.Fatalf("compose: %v", err)
	}
	if len(res.Unresolved) != 0 {
		t.Fatalf("expected everything resolved, got %v", res.Unresolved)
	}
	if strings.Contains(res.HTML, `class="tpl-var"`) || strings.Contains(res.HTML, "{{") {
		t.Fatalf("expected no token markup in output:\n%s", res.HTML)
	}
}

func TestContext_LookupDottedKeys(t *testing.T) {
	ctx := composer.Context{
		"loja.nome": "flat",
		"loja":      map[string]any{"nome": "nested", "numero": float64(42)},
		"data":      time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC),
		"lista":     []any{"a", nil, "b"},
		"vazio":     "",
		"nulo":      nil,
	}
	cases := map[string]struct {
		want string
		ok   bool
	}{
		"loja.nome":   {"flat", true},
		"loja.numero": {"42", true},
		"data":        {"09/03/2026", true},
		"lista":       {"a, b", true},
		"vazio":       {"", true},
		"nulo":        {"", false},
		"loja.outro":  {"", false},
		"ausente":     {"", false},
	}
	for key, tc := range cases {
		got, ok := ctx.Text(key)
		if got != tc.want || ok != tc.ok {
			t.Fatalf("%s: want (%q, %v), got (%q, %v)", key, tc.want, tc.ok, got, ok)
		}
	}
}

type boomType struct{}

func (boomType) Name() string { return "boom" }
func (boomType) Match(n *nethtml.Node) bool {
	for _, a := range n.Attr {
		if a.Key == "class" && a.Val == "boom" {
			return true
		}
	}
	return false
}
func (boomType) Decode(*nethtml.Node) (markup.Embed, error) { return markup.Embed{Type: "boom"}, nil }
func (boomType) Encode(markup.Embed) string                 { return `<span class="boom"></span>` }
func (boomType) Render(markup.Embed, markup.ResolveFunc) string {
	panic("boom")
}
func (boomType) Text(markup.Embed) string { return "boom" }

func TestCompose_ContainsRegionFailure(t *testing.T) {
	schema := markup.NewSchema(markup.VariableType{}, boomType{})
	req := balaustreRequest()
	req.Templates[style.Titles] = `<p><span class="boom">x</span></p>`

	res, err := composer.New(composer.WithSchema(schema)).Compose(context.Background(), req)
	if err != nil {
		t.Fatalf("compose: %v", err)
	}

	titles := res.Regions[1]
	if titles.Name != style.Titles || titles.Error == "" || titles.HTML != "" {
		t.Fatalf("expected failed titles region, got %+v", titles)
	}
	if !strings.Contains(res.HTML, `data-region-error="render-failed"`) {
		t.Fatalf("expected error marker in output")
	}
	if !strings.Contains(res.Regions[2].HTML, "Irmão A") {
		t.Fatalf("expected content region to render, got %q", res.Regions[2].HTML)
	}
	var found bool
	for _, w := range res.Warnings {
		if errors.Is(w, composer.ErrRegionFailed) && w.Region == style.Titles {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected region failure warning, got %v", res.Warnings)
	}
}

func TestCompose_OmitsHiddenRegions(t *testing.T) {
	req := balaustreRequest()
	req.Styles.Footer.Visible = style.Bool(false)

	res, err := composer.New().Compose(context.Background(), req)
	if err != nil {
		t.Fatalf("compose: %v", err)
	}
	if !res.Regions[3].Hidden {
		t.Fatalf("expected footer hidden")
	}
	if strings.Contains(res.HTML, `data-region="footer"`) {
		t.Fatalf("expected footer left out of the markup")
	}
	if diff := cmp.Diff([]string{"HoraInicio"}, res.Unresolved); diff != "" {
		t.Fatalf("hidden region tokens should not be reported (-want +got):\n%s", diff)
	}
	if !strings.Contains(res.CSS, ".region-footer {\n  display: none;\n}") {
		t.Fatalf("expected hidden footer rule, got:\n%s", res.CSS)
	}
}

func TestCompose_CertificadoIsLandscapeWithBorder(t *testing.T) {
	res, err := composer.New().Compose(context.Background(), composer.Request{Kind: doctype.Certificado})
	if err != nil {
		t.Fatalf("compose: %v", err)
	}
	if res.Page.Orientation != style.Landscape || res.Page.Width != 297 || res.Page.Height != 210 {
		t.Fatalf("unexpected page %+v", res.Page)
	}
	if !strings.Contains(res.CSS, "size: 297mm 210mm;") {
		t.Fatalf("expected landscape @page size")
	}

	var names []string
	for _, l := range res.Layers {
		names = append(names, l.Name)
	}
	if diff := cmp.Diff([]string{composer.LayerBackground, composer.LayerBorder}, names); diff != "" {
		t.Fatalf("unexpected layers (-want +got):\n%s", diff)
	}
	if !strings.Contains(res.HTML, "layer-border") {
		t.Fatalf("expected border layer in output")
	}
}

func TestCompose_InvalidStylesBecomeWarnings(t *testing.T) {
	req := balaustreRequest()
	req.Styles.Content.Color = "red; background: url(x)"
	req.Styles.Content.FontSize = "12pt"

	res, err := composer.New().Compose(context.Background(), req)
	if err != nil {
		t.Fatalf("compose: %v", err)
	}
	if res.Style.Content.Color == req.Styles.Content.Color {
		t.Fatalf("expected invalid color dropped")
	}
	if res.Style.Content.FontSize != "12pt" {
		t.Fatalf("expected valid override kept, got %q", res.Style.Content.FontSize)
	}
	if len(res.Warnings) == 0 {
		t.Fatalf("expected a style warning")
	}
}

func TestCompose_UnknownKind(t *testing.T) {
	_, err := composer.New().Compose(context.Background(), composer.Request{Kind: doctype.Kind(99)})
	if !errors.Is(err, doctype.ErrUnknownKind) {
		t.Fatalf("expected unknown kind error, got %v", err)
	}
}

func TestCompose_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := composer.New().Compose(ctx, balaustreRequest()); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected cancellation, got %v", err)
	}
}

type stubSelector struct {
	calls     atomic.Int32
	selection *theme.Selection
	err       error
}

func (s *stubSelector) Select(name, variant string, _ ...theme.QueryOption) (*theme.Selection, error) {
	s.calls.Add(1)
	if s.err != nil {
		return nil, s.err
	}
	sel := *s.selection
	sel.Theme = name
	sel.Variant = variant
	return &sel, nil
}

func TestCompose_UsesThemeTokens(t *testing.T) {
	selector := &stubSelector{selection: &theme.Selection{Manifest: &theme.Manifest{
		Name:   "oriente",
		Tokens: map[string]string{style.TokenTextColor: "#222222"},
		Variants: map[string]theme.Variant{
			"escuro": {Tokens: map[string]string{style.TokenTextColor: "#333333"}},
		},
	}}}
	c := composer.New(composer.WithThemeSelector(selector), composer.WithTheme("oriente", "escuro"))

	res, err := c.Compose(context.Background(), composer.Request{Kind: doctype.Convite})
	if err != nil {
		t.Fatalf("compose: %v", err)
	}
	if res.Style.Header.Color != "#333333" {
		t.Fatalf("expected variant color, got %q", res.Style.Header.Color)
	}
	if selector.calls.Load() != 1 {
		t.Fatalf("expected one selection, got %d", selector.calls.Load())
	}
}

func TestCompose_ThemeFailureFallsBack(t *testing.T) {
	selector := &stubSelector{err: errors.New("no such theme")}
	res, err := composer.New(composer.WithThemeSelector(selector)).Compose(context.Background(), balaustreRequest())
	if err != nil {
		t.Fatalf("compose: %v", err)
	}
	if res.Style.Content.FontFamily == "" {
		t.Fatalf("expected built-in fallback style")
	}
	if len(res.Warnings) == 0 {
		t.Fatalf("expected theme warning")
	}
}

func TestComposeAll_KeepsOrder(t *testing.T) {
	reqs := []composer.Request{
		{Kind: doctype.Convite},
		{Kind: doctype.Certificado},
		balaustreRequest(),
	}
	results, err := composer.New().ComposeAll(context.Background(), reqs)
	if err != nil {
		t.Fatalf("compose all: %v", err)
	}
	for i, res := range results {
		if !strings.Contains(res.HTML, `data-kind="`+reqs[i].Kind.String()+`"`) {
			t.Fatalf("result %d does not match request kind %s", i, reqs[i].Kind)
		}
	}

	reqs = append(reqs, composer.Request{Kind: doctype.Kind(42)})
	if _, err := composer.New().ComposeAll(context.Background(), reqs); !errors.Is(err, doctype.ErrUnknownKind) {
		t.Fatalf("expected failure to propagate, got %v", err)
	}
}

func TestGeometry(t *testing.T) {
	cases := []struct {
		in   style.Page
		want composer.Page
	}{
		{style.Page{Size: "A5", Orientation: "portrait", Margin: "10mm 15mm"},
			composer.Page{Size: "A5", Orientation: "portrait", Width: 148, Height: 210, Margin: [4]string{"10mm", "15mm", "10mm", "15mm"}}},
		{style.Page{Size: "Letter", Orientation: "landscape"},
			composer.Page{Size: "A4", Orientation: "landscape", Width: 297, Height: 210, Margin: [4]string{"0", "0", "0", "0"}}},
	}
	for _, tc := range cases {
		if diff := cmp.Diff(tc.want, composer.Geometry(tc.in)); diff != "" {
			t.Fatalf("geometry mismatch (-want +got):\n%s", diff)
		}
	}
}

func TestStylesheet_EscapesMarkup(t *testing.T) {
	cfg := style.BuiltinGlobal()
	cfg.Content.FontFamily = "</style><script>"
	out := composer.Stylesheet(cfg, composer.Geometry(cfg.Page))
	if strings.Contains(out, "<") {
		t.Fatalf("expected no raw '<' in stylesheet")
	}
}
