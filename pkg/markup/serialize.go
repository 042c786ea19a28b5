package markup

import (
	"html"
	"strconv"
	"strings"
)

// Serialize writes the canonical stored markup for doc. The output is
// deterministic and Load(Serialize(d)) serializes back to the same string.
func Serialize(doc Document, schema *Schema) string {
	if schema == nil {
		schema = DefaultSchema()
	}
	w := writer{schema: schema, embed: schema.encode}
	return w.document(doc.Normalize())
}

// RenderHTML writes output markup with every embed rendered through its type
// and resolve.
func RenderHTML(doc Document, schema *Schema, resolve ResolveFunc) string {
	if schema == nil {
		schema = DefaultSchema()
	}
	w := writer{schema: schema, embed: func(e Embed) string {
		return schema.render(e, resolve)
	}}
	return w.document(doc.Normalize())
}

// PlainText flattens doc to text, one line per block, embeds as their text
// fallback.
func PlainText(doc Document, schema *Schema) string {
	if schema == nil {
		schema = DefaultSchema()
	}
	lines := make([]string, 0, len(doc.Lines))
	for _, l := range doc.Lines {
		var b strings.Builder
		for _, r := range l.Runs {
			if r.Embed != nil {
				b.WriteString(schema.text(*r.Embed))
				continue
			}
			b.WriteString(r.Text)
		}
		lines = append(lines, b.String())
	}
	return strings.Join(lines, "\n")
}

type writer struct {
	schema *Schema
	embed  func(Embed) string
	b      strings.Builder
}

func (w *writer) document(doc Document) string {
	var open ListType
	for _, line := range doc.Lines {
		block := line.Block
		if block.Type == BlockList {
			if open != block.List {
				w.closeList(open)
				w.openList(block.List)
				open = block.List
			}
		} else if open != "" {
			w.closeList(open)
			open = ""
		}

		tag := blockTag(block)
		w.b.WriteString("<" + tag)
		if block.Indent > 0 {
			w.b.WriteString(` class="ql-indent-` + strconv.Itoa(block.Indent) + `"`)
		}
		if style := blockStyle(block); style != "" {
			w.b.WriteString(` style="` + html.EscapeString(style) + `"`)
		}
		w.b.WriteString(">")
		if len(line.Runs) == 0 {
			w.b.WriteString("<br>")
		}
		for _, run := range line.Runs {
			w.run(run)
		}
		w.b.WriteString("</" + tag + ">")
	}
	w.closeList(open)
	return w.b.String()
}

func (w *writer) openList(list ListType) {
	if list == ListOrdered {
		w.b.WriteString("<ol>")
		return
	}
	w.b.WriteString("<ul>")
}

func (w *writer) closeList(list ListType) {
	switch list {
	case ListOrdered:
		w.b.WriteString("</ol>")
	case ListBullet:
		w.b.WriteString("</ul>")
	}
}

func blockTag(b Block) string {
	switch b.Type {
	case BlockHeading:
		return "h" + strconv.Itoa(b.Level)
	case BlockList:
		return "li"
	default:
		return "p"
	}
}

// run wraps content in a fixed nesting order: span(style) > strong > em > u > s.
func (w *writer) run(r Run) {
	marks := r.Marks
	var closers []string
	if style := marksStyle(marks); style != "" {
		w.b.WriteString(`<span style="` + html.EscapeString(style) + `">`)
		closers = append(closers, "</span>")
	}
	for _, tag := range []struct {
		on   bool
		name string
	}{
		{marks.Bold, "strong"},
		{marks.Italic, "em"},
		{marks.Underline, "u"},
		{marks.Strike, "s"},
	} {
		if tag.on {
			w.b.WriteString("<" + tag.name + ">")
			closers = append(closers, "</"+tag.name+">")
		}
	}
	if r.Embed != nil {
		w.b.WriteString(w.embed(*r.Embed))
	} else {
		w.b.WriteString(html.EscapeString(r.Text))
	}
	for i := len(closers) - 1; i >= 0; i-- {
		w.b.WriteString(closers[i])
	}
}
