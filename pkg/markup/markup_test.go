package markup_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-lodgedoc/pkg/markup"
	"github.com/goliatone/go-lodgedoc/pkg/token"
)

func variable(key, label string) *markup.Embed {
	e := markup.NewVariable(key, label)
	return &e
}

func sampleDocument() markup.Document {
	return markup.Document{Lines: []markup.Line{
		{
			Block: markup.Block{Type: markup.BlockHeading, Level: 2, Align: markup.AlignCenter},
			Runs:  []markup.Run{{Text: "Balaústre", Marks: markup.Marks{Bold: true}}},
		},
		{
			Block: markup.Block{LineHeight: "1.5", Margin: "0 0 4mm"},
			Runs: []markup.Run{
				{Text: " Aberta por "},
				{Embed: variable("Veneravel", "Venerável Mestre")},
				{Text: " às ", Marks: markup.Marks{Italic: true}},
				{Embed: variable("HoraInicio", ""), Marks: markup.Marks{Bold: true}},
				{Text: " & segue", Marks: markup.Marks{Font: "Times New Roman", Size: "12pt", Color: "#1A2B3C"}},
			},
		},
		{},
		{
			Block: markup.Block{Type: markup.BlockList, List: markup.ListOrdered},
			Runs:  []markup.Run{{Text: "primeiro"}},
		},
		{
			Block: markup.Block{Type: markup.BlockList, List: markup.ListOrdered, Indent: 1},
			Runs:  []markup.Run{{Text: "segundo", Marks: markup.Marks{Underline: true, Strike: true}}},
		},
		{
			Block: markup.Block{Type: markup.BlockList, List: markup.ListBullet},
			Runs:  []markup.Run{{Text: "item"}},
		},
	}}
}

func TestSerialize_LoadIsFixedPoint(t *testing.T) {
	heading := markup.Block{Type: markup.BlockHeading, Level: 3}
	bullet := markup.Block{Type: markup.BlockList, List: markup.ListBullet}

	cases := []struct {
		name string
		doc  markup.Document
	}{
		{name: "sample", doc: sampleDocument()},
		{name: "tabs", doc: markup.Document{Lines: []markup.Line{
			{Runs: []markup.Run{{Text: "Grau:\tMestre"}}},
			{Runs: []markup.Run{{Text: "\t"}}},
		}}},
		{name: "control characters", doc: markup.Document{Lines: []markup.Line{
			{Runs: []markup.Run{{Text: "x\x00y\x07z\x7f"}, {Text: "\x1b", Marks: markup.Marks{Bold: true}}}},
		}}},
		{name: "empty heading and list lines", doc: markup.Document{Lines: []markup.Line{
			{Block: heading},
			{Block: bullet},
			{Block: bullet, Runs: []markup.Run{{Text: "depois"}}},
			{Block: heading},
		}}},
		{name: "adjacent embeds", doc: markup.Document{Lines: []markup.Line{
			{Runs: []markup.Run{
				{Embed: variable("Loja.Nome", "Loja")},
				{Embed: variable("Loja.Numero", ""), Marks: markup.Marks{Italic: true}},
				{Embed: variable("Data", "")},
			}},
		}}},
		{name: "mixed marks", doc: markup.Document{Lines: []markup.Line{
			{Runs: []markup.Run{
				{Text: "a", Marks: markup.Marks{Bold: true, Italic: true}},
				{Text: "b", Marks: markup.Marks{Bold: true}},
				{Text: "c", Marks: markup.Marks{Underline: true, Color: "#112233", Background: "#ffffff"}},
				{Text: "d", Marks: markup.Marks{Strike: true, Size: "10pt"}},
			}},
		}}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			first := markup.Serialize(tc.doc, nil)

			loaded, warnings := markup.Load(first, nil)
			if len(warnings) != 0 {
				t.Fatalf("expected no warnings, got %v", warnings)
			}
			second := markup.Serialize(loaded, nil)
			if first != second {
				t.Fatalf("serialize(load(serialize(d))) changed output:\n%s", cmp.Diff(first, second))
			}

			if diff := cmp.Diff(tc.doc.Normalize(), loaded); diff != "" {
				t.Fatalf("loaded document mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestNormalize_CleansControlCharacters(t *testing.T) {
	doc := markup.Document{Lines: []markup.Line{{Runs: []markup.Run{
		{Text: "a\tb"},
		{Text: "\x00"},
		{Text: "c\r\nd"},
	}}}}.Normalize()

	if len(doc.Lines[0].Runs) != 1 {
		t.Fatalf("expected a single merged run, got %+v", doc.Lines[0].Runs)
	}
	if got := doc.Lines[0].Runs[0].Text; got != "a bc  d" {
		t.Fatalf("unexpected text %q", got)
	}
	if got := markup.CleanText("x\x00y\x7f"); got != "xy" {
		t.Fatalf("unexpected cleaned text %q", got)
	}
}

func TestSerialize_CanonicalMarkup(t *testing.T) {
	doc := markup.Document{Lines: []markup.Line{{
		Runs: []markup.Run{
			{Text: "Aberta por "},
			{Embed: variable("Veneravel", "Venerável Mestre")},
			{Text: " <ok>", Marks: markup.Marks{Bold: true, Color: "#fff"}},
		},
	}}}

	want := `<p>Aberta por ` + token.EncodeToken(token.New("Veneravel", "Venerável Mestre")) +
		`<span style="color: #fff"><strong> &lt;ok&gt;</strong></span></p>`
	if got := markup.Serialize(doc, nil); got != want {
		t.Fatalf("unexpected markup:\nwant %s\ngot  %s", want, got)
	}
}

func TestSerialize_EmptyDocument(t *testing.T) {
	if got := markup.Serialize(markup.Document{}, nil); got != "<p><br></p>" {
		t.Fatalf("unexpected empty markup %q", got)
	}
	doc, warnings := markup.Load("   ", nil)
	if len(warnings) != 0 || doc.Length() != 1 {
		t.Fatalf("expected empty document, got length %d warnings %v", doc.Length(), warnings)
	}
}

func TestLoad_MalformedMarkerBecomesLiteralText(t *testing.T) {
	raw := `<p>Venerável: <span class="tpl-var" data-var="9bad">{{ 9bad }}</span></p>`
	doc, warnings := markup.Load(raw, nil)

	if len(warnings) != 1 || !errors.Is(warnings[0], markup.ErrMalformedTemplate) {
		t.Fatalf("expected one malformed template warning, got %v", warnings)
	}
	if len(doc.Embeds()) != 0 {
		t.Fatalf("expected no embeds, got %v", doc.Embeds())
	}
	if got := markup.PlainText(doc, nil); got != "Venerável: {{ 9bad }}" {
		t.Fatalf("unexpected text %q", got)
	}
}

func TestLoad_DropsMarkupOutsideWhitelist(t *testing.T) {
	raw := `<p onclick="x()">Olá <script>alert(1)</script><a href="http://x">link</a>` +
		`<span style="font-family: Comic Sans; color: red">txt</span></p><h5>fim</h5>`
	doc, warnings := markup.Load(raw, nil)

	if len(warnings) == 0 {
		t.Fatalf("expected warnings for dropped formats")
	}
	var unsupported int
	for _, w := range warnings {
		if errors.Is(w, markup.ErrUnsupportedFormat) {
			unsupported++
		}
	}
	if unsupported != 3 {
		t.Fatalf("expected font, color and heading warnings, got %v", warnings)
	}

	got := markup.Serialize(doc, nil)
	want := `<p>Olá linktxt</p><h3>fim</h3>`
	if got != want {
		t.Fatalf("unexpected sanitized markup:\nwant %s\ngot  %s", want, got)
	}
}

func TestLoad_PromoteBracesOnlyForAcceptedKeys(t *testing.T) {
	raw := `<p>{{ Veneravel }} e {{ Desconhecido }}</p>`
	accept := func(key string) bool { return key == "Veneravel" }

	doc, _ := markup.Load(raw, nil, markup.PromoteBraces(accept))
	embeds := doc.Embeds()
	if len(embeds) != 1 || embeds[0].Attr("key") != "Veneravel" {
		t.Fatalf("expected one promoted token, got %v", embeds)
	}

	plain, _ := markup.Load(raw, nil)
	if len(plain.Embeds()) != 0 {
		t.Fatalf("expected braces to stay literal without promotion")
	}
}

func TestLoad_ContainerAndListWhitespace(t *testing.T) {
	raw := "<div>\n  <p>um</p>\n  <p>dois</p>\n</div>\n<ul>\n  <li>a</li>\n  <li>b</li>\n</ul>"
	doc, _ := markup.Load(raw, nil)
	if len(doc.Lines) != 4 {
		t.Fatalf("expected 4 lines, got %d: %s", len(doc.Lines), markup.Serialize(doc, nil))
	}
	if doc.Lines[2].Block.Type != markup.BlockList || doc.Lines[2].Block.List != markup.ListBullet {
		t.Fatalf("expected bullet list line, got %+v", doc.Lines[2].Block)
	}
}

func TestRenderHTML_ResolvesAndMarksMissing(t *testing.T) {
	doc := markup.Document{Lines: []markup.Line{{
		Runs: []markup.Run{
			{Embed: variable("NomeLoja", "")},
			{Text: " / "},
			{Embed: variable("Orador", "")},
		},
	}}}
	values := map[string]string{"NomeLoja": "Loja <Luz>\nOriente"}
	resolve := func(e markup.Embed) (string, bool) {
		v, ok := values[e.Attr("key")]
		return v, ok
	}

	got := markup.RenderHTML(doc, nil, resolve)
	want := `<p>Loja &lt;Luz&gt;<br>Oriente / <span class="tpl-var-unresolved" data-var="Orador">{{ Orador }}</span></p>`
	if got != want {
		t.Fatalf("unexpected render:\nwant %s\ngot  %s", want, got)
	}
}

func TestPlainText_UsesEmbedFallback(t *testing.T) {
	doc := sampleDocument()
	lines := strings.Split(markup.PlainText(doc, nil), "\n")
	if len(lines) != len(doc.Lines) {
		t.Fatalf("expected %d lines, got %d", len(doc.Lines), len(lines))
	}
	if lines[1] != " Aberta por {{ Veneravel }} às {{ HoraInicio }} & segue" {
		t.Fatalf("unexpected text line %q", lines[1])
	}
}

func TestNewSchema_PanicsOnDuplicateNames(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic on duplicate embed type")
		}
	}()
	markup.NewSchema(markup.VariableType{}, markup.VariableType{})
}

func TestSchema_Names(t *testing.T) {
	if diff := cmp.Diff([]string{markup.VariableEmbed}, markup.DefaultSchema().Names()); diff != "" {
		t.Fatalf("unexpected names (-want +got):\n%s", diff)
	}
}
