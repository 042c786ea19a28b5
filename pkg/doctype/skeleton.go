package doctype

import (
	"html"
	"strings"

	"github.com/goliatone/go-lodgedoc/pkg/token"
)

type part interface{ markup() string }

type text string

func (t text) markup() string { return html.EscapeString(string(t)) }

type slot string

func (s slot) markup() string { return token.Encode(string(s)) }

func parts(values []any) string {
	var b strings.Builder
	for _, v := range values {
		switch p := v.(type) {
		case part:
			b.WriteString(p.markup())
		case string:
			b.WriteString(text(p).markup())
		}
	}
	return b.String()
}

func paragraph(values ...any) string {
	return "<p>" + parts(values) + "</p>"
}

func section(label string, values ...any) string {
	return "<p><strong>" + html.EscapeString(label) + "</strong> " + parts(values) + "</p>"
}

func skeleton(lines ...string) string {
	return strings.Join(lines, "")
}

// SlotKeys lists the token keys referenced by a skeleton in order of first use.
func (k Kind) SlotKeys() []string {
	var keys []string
	seen := map[string]struct{}{}
	rest := k.Skeleton()
	marker := token.KeyAttr + `="`
	for {
		idx := strings.Index(rest, marker)
		if idx < 0 {
			return keys
		}
		rest = rest[idx+len(marker):]
		end := strings.IndexByte(rest, '"')
		if end < 0 {
			return keys
		}
		key := html.UnescapeString(rest[:end])
		if _, ok := seen[key]; !ok {
			seen[key] = struct{}{}
			keys = append(keys, key)
		}
		rest = rest[end:]
	}
}
