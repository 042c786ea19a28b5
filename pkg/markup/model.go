package markup

import (
	"maps"
	"strings"
	"unicode/utf8"

	"github.com/goliatone/go-lodgedoc/pkg/css"
)

// BlockType names the block level formats a line can carry.
type BlockType string

const (
	BlockParagraph BlockType = "paragraph"
	BlockHeading   BlockType = "heading"
	BlockList      BlockType = "list"
)

// ListType distinguishes ordered and bullet lists.
type ListType string

const (
	ListOrdered ListType = "ordered"
	ListBullet  ListType = "bullet"
)

// MaxIndent bounds list/paragraph indentation.
const MaxIndent = 8

// Block holds the line level format. The zero value is a plain paragraph.
type Block struct {
	Type       BlockType `json:"type,omitempty"`
	Level      int       `json:"level,omitempty"`
	List       ListType  `json:"list,omitempty"`
	Indent     int       `json:"indent,omitempty"`
	Align      string    `json:"align,omitempty"`
	LineHeight string    `json:"line_height,omitempty"`
	Margin     string    `json:"margin,omitempty"`
}

func (b Block) normalized() Block {
	if b.Type == "" {
		b.Type = BlockParagraph
	}
	if b.Type != BlockHeading {
		b.Level = 0
	} else {
		b.Level = min(max(b.Level, 1), MaxHeading)
	}
	if b.Type != BlockList {
		b.List = ""
	}
	if b.Type == BlockList && b.List == "" {
		b.List = ListBullet
	}
	if b.Align == AlignLeft {
		b.Align = ""
	}
	b.Indent = min(max(b.Indent, 0), MaxIndent)
	b.Margin = strings.Join(strings.Fields(b.Margin), " ")
	if b.Align != "" && !ValidAlign(b.Align) {
		b.Align = ""
	}
	if b.LineHeight != "" && !ValidLineHeight(b.LineHeight) {
		b.LineHeight = ""
	}
	if b.Margin != "" && !css.Box(b.Margin) {
		b.Margin = ""
	}
	return b
}

// Marks holds inline formatting. The zero value is unformatted text.
type Marks struct {
	Bold       bool   `json:"bold,omitempty"`
	Italic     bool   `json:"italic,omitempty"`
	Underline  bool   `json:"underline,omitempty"`
	Strike     bool   `json:"strike,omitempty"`
	Font       string `json:"font,omitempty"`
	Size       string `json:"size,omitempty"`
	Color      string `json:"color,omitempty"`
	Background string `json:"background,omitempty"`
}

// cleaned drops values outside the formatting whitelist.
func (m Marks) cleaned() Marks {
	if m.Font != "" && !ValidFont(m.Font) {
		m.Font = ""
	}
	if m.Size != "" && !ValidSize(m.Size) {
		m.Size = ""
	}
	if m.Color != "" && !css.Color(m.Color) {
		m.Color = ""
	}
	if m.Background != "" && !css.Color(m.Background) {
		m.Background = ""
	}
	return m
}

// Embed is an atomic inline node such as a variable token. Attrs are owned by
// the embed type that produced it.
type Embed struct {
	Type  string            `json:"type"`
	Attrs map[string]string `json:"attrs,omitempty"`
}

// Attr returns an attribute or "".
func (e Embed) Attr(name string) string {
	return e.Attrs[name]
}

func (e Embed) equal(other Embed) bool {
	return e.Type == other.Type && maps.Equal(e.Attrs, other.Attrs)
}

func (e Embed) clone() Embed {
	return Embed{Type: e.Type, Attrs: maps.Clone(e.Attrs)}
}

// Run is either a text segment or a single embed, with inline marks.
type Run struct {
	Text  string `json:"text,omitempty"`
	Embed *Embed `json:"embed,omitempty"`
	Marks Marks  `json:"marks"`
}

// IsEmbed reports whether the run holds an embed.
func (r Run) IsEmbed() bool {
	return r.Embed != nil
}

func (r Run) length() int {
	if r.Embed != nil {
		return 1
	}
	return utf8.RuneCountInString(r.Text)
}

// Line is a block of inline runs terminated by an implicit line break.
type Line struct {
	Block Block `json:"block"`
	Runs  []Run `json:"runs"`
}

// Length is the line's size in caret units, excluding its break.
func (l Line) Length() int {
	n := 0
	for _, r := range l.Runs {
		n += r.length()
	}
	return n
}

// Document is an ordered list of lines. A document always has at least one
// line; every line ends with a break that counts as one caret unit, so an
// empty document has length 1.
type Document struct {
	Lines []Line `json:"lines"`
}

// Empty returns a document with a single empty paragraph.
func Empty() Document {
	return Document{Lines: []Line{{Block: Block{Type: BlockParagraph}}}}
}

// Length returns the number of caret units, including line breaks.
func (d Document) Length() int {
	n := 0
	for _, l := range d.Lines {
		n += l.Length() + 1
	}
	return n
}

// IsBlank reports whether the document holds no text and no embeds.
func (d Document) IsBlank() bool {
	for _, l := range d.Lines {
		for _, r := range l.Runs {
			if r.Embed != nil || strings.TrimSpace(r.Text) != "" {
				return false
			}
		}
	}
	return true
}

// Embeds returns every embed in document order.
func (d Document) Embeds() []Embed {
	var out []Embed
	for _, l := range d.Lines {
		for _, r := range l.Runs {
			if r.Embed != nil {
				out = append(out, r.Embed.clone())
			}
		}
	}
	return out
}

// Clone returns a deep copy.
func (d Document) Clone() Document {
	out := Document{Lines: make([]Line, len(d.Lines))}
	for i, l := range d.Lines {
		runs := make([]Run, len(l.Runs))
		for j, r := range l.Runs {
			runs[j] = r
			if r.Embed != nil {
				e := r.Embed.clone()
				runs[j].Embed = &e
			}
		}
		out.Lines[i] = Line{Block: l.Block, Runs: runs}
	}
	return out
}

// Normalize merges adjacent text runs with equal marks, drops empty text runs
// and guarantees at least one line. Run text is passed through CleanText.
func (d Document) Normalize() Document {
	if len(d.Lines) == 0 {
		return Empty()
	}
	out := Document{Lines: make([]Line, 0, len(d.Lines))}
	for _, l := range d.Lines {
		out.Lines = append(out.Lines, Line{Block: l.Block.normalized(), Runs: mergeRuns(l.Runs)})
	}
	return out
}

func mergeRuns(runs []Run) []Run {
	out := make([]Run, 0, len(runs))
	for _, r := range runs {
		r.Marks = r.Marks.cleaned()
		r.Text = CleanText(r.Text)
		if r.Embed == nil && r.Text == "" {
			continue
		}
		if r.Embed == nil && len(out) > 0 {
			last := &out[len(out)-1]
			if last.Embed == nil && last.Marks == r.Marks {
				last.Text += r.Text
				continue
			}
		}
		out = append(out, r)
	}
	return out
}

// CleanText maps run text to what survives a Serialize/Load cycle: line
// breaks and tabs become spaces, other control characters are dropped.
func CleanText(s string) string {
	return strings.Map(cleanRune, s)
}

func cleanRune(r rune) rune {
	switch {
	case r == '\n', r == '\r', r == '\t':
		return ' '
	case r < 0x20, r == 0x7f:
		return -1
	}
	return r
}
