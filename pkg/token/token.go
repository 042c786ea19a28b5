// Package token defines the atomic variable embed used inside region markup.
//
// A token is stored as a dedicated element rather than bare braces so literal
// "{{ x }}" text typed by an editor is never mistaken for a variable:
//
//	<span class="tpl-var" data-var="Veneravel" data-label="Venerável Mestre" contenteditable="false">{{ Veneravel }}</span>
//
// The element name, the class and the data-var attribute together form the
// marker. The inner text is a human readable fallback and is ignored on decode.
package token

import (
	"html"
	"regexp"
	"strings"

	nethtml "golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

const (
	// Class marks an element as a variable embed.
	Class = "tpl-var"
	// KeyAttr carries the variable key.
	KeyAttr = "data-var"
	// LabelAttr carries the optional display label.
	LabelAttr = "data-label"
)

var keyPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_.]*$`)

// Token references a catalog variable. Tokens are values: replacing one means
// removing the embed and inserting another.
type Token struct {
	Key   string `json:"key"`
	Label string `json:"label,omitempty"`
	Group string `json:"group,omitempty"`
}

// New returns a token for key with an optional label.
func New(key, label string) Token {
	return Token{Key: strings.TrimSpace(key), Label: strings.TrimSpace(label)}
}

// ValidKey reports whether key can be embedded.
func ValidKey(key string) bool {
	return keyPattern.MatchString(key)
}

// Equals compares tokens by key only.
func Equals(a, b Token) bool {
	return a.Key == b.Key
}

// DisplayLabel falls back to the key when no label is set.
func (t Token) DisplayLabel() string {
	if t.Label != "" {
		return t.Label
	}
	return t.Key
}

// Encode returns the markup fragment for key.
func Encode(key string) string {
	return EncodeToken(Token{Key: key})
}

// EncodeToken returns the markup fragment for t, including its label.
func EncodeToken(t Token) string {
	var b strings.Builder
	b.WriteString(`<span class="`)
	b.WriteString(Class)
	b.WriteString(`" `)
	b.WriteString(KeyAttr)
	b.WriteString(`="`)
	b.WriteString(html.EscapeString(t.Key))
	b.WriteString(`"`)
	if t.Label != "" {
		b.WriteString(` `)
		b.WriteString(LabelAttr)
		b.WriteString(`="`)
		b.WriteString(html.EscapeString(t.Label))
		b.WriteString(`"`)
	}
	b.WriteString(` contenteditable="false">`)
	b.WriteString(html.EscapeString(PlainText(t.Key)))
	b.WriteString(`</span>`)
	return b.String()
}

// PlainText is the brace form used for clipboard and drag fallbacks and for
// unresolved placeholders.
func PlainText(key string) string {
	return "{{ " + key + " }}"
}

// Decode extracts the key from a single marker fragment. It returns false when
// the fragment is not exactly one recognised marker.
func Decode(fragment string) (string, bool) {
	t, ok := DecodeToken(fragment)
	if !ok {
		return "", false
	}
	return t.Key, true
}

// DecodeToken is Decode returning the label as well.
func DecodeToken(fragment string) (Token, bool) {
	trimmed := strings.TrimSpace(fragment)
	if trimmed == "" {
		return Token{}, false
	}
	nodes, err := nethtml.ParseFragment(strings.NewReader(trimmed), &nethtml.Node{
		Type:     nethtml.ElementNode,
		Data:     "body",
		DataAtom: atom.Body,
	})
	if err != nil || len(nodes) != 1 {
		return Token{}, false
	}
	return FromNode(nodes[0])
}

// FromNode decodes an already parsed element. It is used by markup loaders so
// fragments are not reparsed.
func FromNode(n *nethtml.Node) (Token, bool) {
	if !IsMarker(n) {
		return Token{}, false
	}
	key := strings.TrimSpace(attr(n, KeyAttr))
	if !ValidKey(key) {
		return Token{}, false
	}
	return Token{Key: key, Label: strings.TrimSpace(attr(n, LabelAttr))}, true
}

// IsMarker reports whether n claims to be a token, regardless of whether its
// key is valid. Loaders use it to tell malformed markers from plain spans.
func IsMarker(n *nethtml.Node) bool {
	if n == nil || n.Type != nethtml.ElementNode || n.DataAtom != atom.Span {
		return false
	}
	if !hasClass(attr(n, "class"), Class) {
		return false
	}
	return true
}

func attr(n *nethtml.Node, name string) string {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == name {
			return a.Val
		}
	}
	return ""
}

func hasClass(list, class string) bool {
	for _, c := range strings.Fields(list) {
		if c == class {
			return true
		}
	}
	return false
}
