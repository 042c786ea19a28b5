package markup

import (
	"fmt"
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	nethtml "golang.org/x/net/html"

	"github.com/goliatone/go-lodgedoc/pkg/token"
)

// ResolveFunc resolves an embed to display text at render time. ok=false means
// the embed has no value in the current context.
type ResolveFunc func(e Embed) (value string, ok bool)

// EmbedType describes one atomic node type: how it is recognised in stored
// markup, how it is written back and how it renders for output.
type EmbedType interface {
	// Name is the node type stored in Embed.Type.
	Name() string
	// Match reports whether the element claims to be this node type. Claimed
	// elements that fail Decode degrade to literal text.
	Match(n *nethtml.Node) bool
	Decode(n *nethtml.Node) (Embed, error)
	// Encode writes the canonical stored markup.
	Encode(e Embed) string
	// Render writes final output markup.
	Render(e Embed, resolve ResolveFunc) string
	// Text is the plain text fallback.
	Text(e Embed) string
}

// PolicyExtender lets an embed type whitelist its markup in the sanitizer.
type PolicyExtender interface {
	ExtendPolicy(p *bluemonday.Policy)
}

// Schema is the table of embed types an editor or loader understands. Each
// editor gets its own schema; there is no process wide registry.
type Schema struct {
	types  []EmbedType
	byName map[string]EmbedType
	policy *bluemonday.Policy
}

// NewSchema builds a schema from the supplied embed types. Duplicate names
// panic since they indicate a wiring error.
func NewSchema(types ...EmbedType) *Schema {
	s := &Schema{byName: make(map[string]EmbedType, len(types))}
	for _, t := range types {
		if t == nil {
			continue
		}
		name := t.Name()
		if _, exists := s.byName[name]; exists {
			panic(fmt.Sprintf("markup: embed type %q registered twice", name))
		}
		s.byName[name] = t
		s.types = append(s.types, t)
	}
	s.policy = newPolicy(s.types)
	return s
}

// DefaultSchema understands variable tokens.
func DefaultSchema() *Schema {
	return NewSchema(VariableType{})
}

// Type returns the embed type registered under name.
func (s *Schema) Type(name string) (EmbedType, bool) {
	if s == nil {
		return nil, false
	}
	t, ok := s.byName[name]
	return t, ok
}

// Names lists registered embed type names in registration order.
func (s *Schema) Names() []string {
	if s == nil {
		return nil
	}
	out := make([]string, 0, len(s.types))
	for _, t := range s.types {
		out = append(out, t.Name())
	}
	return out
}

func (s *Schema) match(n *nethtml.Node) (EmbedType, bool) {
	if s == nil {
		return nil, false
	}
	for _, t := range s.types {
		if t.Match(n) {
			return t, true
		}
	}
	return nil, false
}

func (s *Schema) encode(e Embed) string {
	if t, ok := s.Type(e.Type); ok {
		return t.Encode(e)
	}
	return ""
}

func (s *Schema) render(e Embed, resolve ResolveFunc) string {
	if t, ok := s.Type(e.Type); ok {
		return t.Render(e, resolve)
	}
	return ""
}

func (s *Schema) text(e Embed) string {
	if t, ok := s.Type(e.Type); ok {
		return t.Text(e)
	}
	return ""
}

// VariableEmbed is the node type name of variable tokens.
const VariableEmbed = "variable"

// UnresolvedClass marks placeholders for variables missing from the context.
const UnresolvedClass = "tpl-var-unresolved"

// VariableType is the embed type for catalog variables.
type VariableType struct{}

// NewVariable builds a variable embed.
func NewVariable(key, label string) Embed {
	attrs := map[string]string{"key": key}
	if label != "" {
		attrs["label"] = label
	}
	return Embed{Type: VariableEmbed, Attrs: attrs}
}

// TokenOf converts a variable embed back to a token.
func TokenOf(e Embed) (token.Token, bool) {
	if e.Type != VariableEmbed {
		return token.Token{}, false
	}
	return token.Token{Key: e.Attr("key"), Label: e.Attr("label")}, true
}

func (VariableType) Name() string { return VariableEmbed }

func (VariableType) Match(n *nethtml.Node) bool {
	return token.IsMarker(n)
}

func (VariableType) Decode(n *nethtml.Node) (Embed, error) {
	t, ok := token.FromNode(n)
	if !ok {
		return Embed{}, fmt.Errorf("%w: variable marker without a valid %s", ErrMalformedTemplate, token.KeyAttr)
	}
	return NewVariable(t.Key, t.Label), nil
}

func (VariableType) Encode(e Embed) string {
	return token.EncodeToken(token.Token{Key: e.Attr("key"), Label: e.Attr("label")})
}

// Render writes the resolved value, escaped, with newlines as <br>. Missing
// values always render the same visible placeholder.
func (VariableType) Render(e Embed, resolve ResolveFunc) string {
	key := e.Attr("key")
	if resolve != nil {
		if value, ok := resolve(e); ok {
			return textHTML(value)
		}
	}
	return `<span class="` + UnresolvedClass + `" data-var="` + html.EscapeString(key) + `">` +
		html.EscapeString(token.PlainText(key)) + `</span>`
}

func (VariableType) Text(e Embed) string {
	return token.PlainText(e.Attr("key"))
}

func (VariableType) ExtendPolicy(p *bluemonday.Policy) {
	p.AllowAttrs(token.KeyAttr, token.LabelAttr, "contenteditable").OnElements("span")
}

func textHTML(value string) string {
	value = strings.ReplaceAll(value, "\r\n", "\n")
	lines := strings.Split(value, "\n")
	for i, line := range lines {
		lines[i] = html.EscapeString(line)
	}
	return strings.Join(lines, "<br>")
}
