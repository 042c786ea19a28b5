package markup

import (
	"slices"
	"strconv"
	"strings"

	"github.com/goliatone/go-lodgedoc/pkg/css"
)

// Alignment values. Left is the default and is never serialized.
const (
	AlignLeft    = "left"
	AlignCenter  = "center"
	AlignRight   = "right"
	AlignJustify = "justify"
)

// MaxHeading is the deepest heading level the editor offers.
const MaxHeading = 3

// The formatting whitelist is part of the style contract: the toolbar only
// offers these values and the loader drops anything else.
var (
	FontFamilies = []string{
		"Arial", "Cinzel", "Courier New", "Garamond", "Georgia",
		"Roboto", "Times New Roman", "Verdana",
	}
	FontSizes = []string{
		"8pt", "9pt", "10pt", "11pt", "12pt", "14pt", "16pt", "18pt",
		"20pt", "24pt", "28pt", "32pt", "36pt",
	}
	LineHeights = []string{"1", "1.15", "1.5", "2", "2.5", "3"}
	Alignments  = []string{AlignLeft, AlignCenter, AlignRight, AlignJustify}
)

// ValidFont reports whether family is whitelisted.
func ValidFont(family string) bool {
	return slices.Contains(FontFamilies, family)
}

// ValidSize reports whether size is whitelisted.
func ValidSize(size string) bool {
	return slices.Contains(FontSizes, size)
}

// ValidLineHeight reports whether value is whitelisted.
func ValidLineHeight(value string) bool {
	return slices.Contains(LineHeights, value)
}

// ValidAlign reports whether value is a known alignment.
func ValidAlign(value string) bool {
	return slices.Contains(Alignments, value)
}

// ValidateMarks reports the first invalid inline format value, if any.
func ValidateMarks(m Marks) (string, bool) {
	switch {
	case m.Font != "" && !ValidFont(m.Font):
		return "font-family " + m.Font, false
	case m.Size != "" && !ValidSize(m.Size):
		return "font-size " + m.Size, false
	case m.Color != "" && !css.Color(m.Color):
		return "color " + m.Color, false
	case m.Background != "" && !css.Color(m.Background):
		return "background-color " + m.Background, false
	}
	return "", true
}

// ValidateBlock reports the first invalid block format value, if any.
func ValidateBlock(b Block) (string, bool) {
	switch {
	case b.Align != "" && !ValidAlign(b.Align):
		return "text-align " + b.Align, false
	case b.LineHeight != "" && !ValidLineHeight(b.LineHeight):
		return "line-height " + b.LineHeight, false
	case b.Margin != "" && !css.Box(b.Margin):
		return "margin " + b.Margin, false
	}
	return "", true
}

func blockStyle(b Block) string {
	return css.Inline([]css.Declaration{
		{Property: "text-align", Value: b.Align},
		{Property: "line-height", Value: b.LineHeight},
		{Property: "margin", Value: b.Margin},
	})
}

func marksStyle(m Marks) string {
	return css.Inline([]css.Declaration{
		{Property: "font-family", Value: css.Family(m.Font)},
		{Property: "font-size", Value: m.Size},
		{Property: "color", Value: m.Color},
		{Property: "background-color", Value: m.Background},
	})
}

// applyBlockStyle copies recognised declarations into b, reporting rejected
// values through reject.
func applyBlockStyle(b *Block, style string, reject func(string)) {
	for _, d := range css.ParseInline(style) {
		switch d.Property {
		case "text-align":
			if ValidAlign(d.Value) {
				b.Align = d.Value
			} else {
				reject(d.Property + " " + d.Value)
			}
		case "line-height":
			if ValidLineHeight(d.Value) {
				b.LineHeight = d.Value
			} else {
				reject(d.Property + " " + d.Value)
			}
		case "margin":
			if css.Box(d.Value) {
				b.Margin = strings.Join(strings.Fields(d.Value), " ")
			} else {
				reject(d.Property + " " + d.Value)
			}
		default:
			reject(d.Property)
		}
	}
}

func applyBlockClasses(b *Block, classes string) {
	for _, class := range strings.Fields(classes) {
		switch {
		case strings.HasPrefix(class, "ql-align-"):
			if v := strings.TrimPrefix(class, "ql-align-"); ValidAlign(v) {
				b.Align = v
			}
		case strings.HasPrefix(class, "ql-indent-"):
			if n, err := strconv.Atoi(strings.TrimPrefix(class, "ql-indent-")); err == nil {
				b.Indent = n
			}
		}
	}
}

func applyMarkStyle(m *Marks, style string, reject func(string)) {
	for _, d := range css.ParseInline(style) {
		switch d.Property {
		case "font-family":
			family := strings.Trim(d.Value, `'"`)
			if ValidFont(family) {
				m.Font = family
			} else {
				reject(d.Property + " " + d.Value)
			}
		case "font-size":
			if ValidSize(d.Value) {
				m.Size = d.Value
			} else {
				reject(d.Property + " " + d.Value)
			}
		case "color":
			if css.Color(d.Value) {
				m.Color = d.Value
			} else {
				reject(d.Property + " " + d.Value)
			}
		case "background-color", "background":
			if css.Color(d.Value) {
				m.Background = d.Value
			} else {
				reject(d.Property + " " + d.Value)
			}
		case "font-weight":
			if d.Value == "bold" || d.Value == "700" {
				m.Bold = true
			}
		case "font-style":
			if d.Value == "italic" {
				m.Italic = true
			}
		default:
			reject(d.Property)
		}
	}
}
