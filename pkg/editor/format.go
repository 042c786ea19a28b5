package editor

import (
	"errors"
	"fmt"

	"github.com/goliatone/go-lodgedoc/pkg/css"
	"github.com/goliatone/go-lodgedoc/pkg/markup"
)

// ErrUnsupportedFormat is returned for formatting values outside the whitelist.
var ErrUnsupportedFormat = errors.New("editor: unsupported format")

// Mark is an inline formatting command offered by the toolbar.
type Mark struct {
	name  string
	value string
	on    bool
}

func Bold(on bool) Mark      { return Mark{name: "bold", on: on} }
func Italic(on bool) Mark    { return Mark{name: "italic", on: on} }
func Underline(on bool) Mark { return Mark{name: "underline", on: on} }
func Strike(on bool) Mark    { return Mark{name: "strike", on: on} }

// Font sets the font family; "" clears it.
func Font(family string) Mark { return Mark{name: "font", value: family} }

// Size sets the font size; "" clears it.
func Size(size string) Mark { return Mark{name: "size", value: size} }

// Color sets the text color; "" clears it.
func Color(color string) Mark { return Mark{name: "color", value: color} }

// Background sets the highlight color; "" clears it.
func Background(color string) Mark { return Mark{name: "background", value: color} }

func (m Mark) validate() error {
	if m.value == "" {
		return nil
	}
	var ok bool
	switch m.name {
	case "font":
		ok = markup.ValidFont(m.value)
	case "size":
		ok = markup.ValidSize(m.value)
	case "color", "background":
		ok = css.Color(m.value)
	default:
		ok = true
	}
	if !ok {
		return fmt.Errorf("%w: %s %q", ErrUnsupportedFormat, m.name, m.value)
	}
	return nil
}

func (m Mark) apply(marks *markup.Marks) {
	switch m.name {
	case "bold":
		marks.Bold = m.on
	case "italic":
		marks.Italic = m.on
	case "underline":
		marks.Underline = m.on
	case "strike":
		marks.Strike = m.on
	case "font":
		marks.Font = m.value
	case "size":
		marks.Size = m.value
	case "color":
		marks.Color = m.value
	case "background":
		marks.Background = m.value
	}
}

// LineFormat is a block formatting command.
type LineFormat struct {
	name  string
	value string
	n     int
	list  markup.ListType
}

// Paragraph resets the line to a plain paragraph, keeping alignment and
// spacing.
func Paragraph() LineFormat { return LineFormat{name: "paragraph"} }

// Heading turns the line into a heading of the given level (1..3).
func Heading(level int) LineFormat { return LineFormat{name: "heading", n: level} }

// List turns the line into a list item.
func List(list markup.ListType) LineFormat { return LineFormat{name: "list", list: list} }

// Indent sets the indentation level.
func Indent(level int) LineFormat { return LineFormat{name: "indent", n: level} }

// Align sets the line alignment.
func Align(align string) LineFormat { return LineFormat{name: "align", value: align} }

// LineHeight sets the line height; "" clears it.
func LineHeight(value string) LineFormat { return LineFormat{name: "line-height", value: value} }

// Margin sets the block margin; "" clears it.
func Margin(value string) LineFormat { return LineFormat{name: "margin", value: value} }

func (f LineFormat) validate() error {
	var ok bool
	switch f.name {
	case "heading":
		ok = f.n >= 1 && f.n <= markup.MaxHeading
	case "list":
		ok = f.list == markup.ListOrdered || f.list == markup.ListBullet
	case "indent":
		ok = f.n >= 0 && f.n <= markup.MaxIndent
	case "align":
		ok = f.value == "" || markup.ValidAlign(f.value)
	case "line-height":
		ok = f.value == "" || markup.ValidLineHeight(f.value)
	case "margin":
		ok = f.value == "" || css.Box(f.value)
	default:
		ok = true
	}
	if !ok {
		if f.value != "" {
			return fmt.Errorf("%w: %s %q", ErrUnsupportedFormat, f.name, f.value)
		}
		if f.list != "" {
			return fmt.Errorf("%w: %s %q", ErrUnsupportedFormat, f.name, f.list)
		}
		return fmt.Errorf("%w: %s %d", ErrUnsupportedFormat, f.name, f.n)
	}
	return nil
}

func (f LineFormat) apply(b *markup.Block) {
	switch f.name {
	case "paragraph":
		b.Type = markup.BlockParagraph
	case "heading":
		b.Type = markup.BlockHeading
		b.Level = f.n
	case "list":
		b.Type = markup.BlockList
		b.List = f.list
	case "indent":
		b.Indent = f.n
	case "align":
		b.Align = f.value
	case "line-height":
		b.LineHeight = f.value
	case "margin":
		b.Margin = f.value
	}
}
