// Package css validates the small set of CSS values the document pipeline
// accepts from stored configuration and editor markup. Values that pass are
// safe to interpolate into generated style sheets.
package css

import (
	"regexp"
	"strconv"
	"strings"
)

// Units lists the permitted length units.
var Units = []string{"cm", "mm", "in", "pt", "px", "em", "rem", "%"}

// Transparent is the explicit "no color" value, distinct from unset.
const Transparent = "transparent"

// None is the explicit "no image" value.
const None = "none"

var (
	lengthPattern = regexp.MustCompile(`^(-?\d+(?:\.\d+)?|-?\.\d+)(cm|mm|in|pt|px|em|rem|%)?$`)
	hexPattern    = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{4}|[0-9a-fA-F]{6}|[0-9a-fA-F]{8})$`)
	imagePattern  = regexp.MustCompile(`^(?:https?://|/|data:image/(?:png|jpeg|gif|svg\+xml|webp);base64,)[^\s"'()<>\\]*$`)
)

// Length reports whether value is a CSS length in a permitted unit. A bare
// zero is accepted without a unit.
func Length(value string) bool {
	m := lengthPattern.FindStringSubmatch(strings.TrimSpace(value))
	if m == nil {
		return false
	}
	if m[2] != "" {
		return true
	}
	n, err := strconv.ParseFloat(m[1], 64)
	return err == nil && n == 0
}

// Box reports whether value is a one-to-four value margin/padding shorthand.
func Box(value string) bool {
	parts := strings.Fields(value)
	if len(parts) == 0 || len(parts) > 4 {
		return false
	}
	for _, part := range parts {
		if !Length(part) {
			return false
		}
	}
	return true
}

// Color reports whether value is a hex color or the literal "transparent".
func Color(value string) bool {
	v := strings.TrimSpace(value)
	return v == Transparent || hexPattern.MatchString(v)
}

// Image reports whether value is "none" or a URL that can be embedded in a
// url() expression without escaping.
func Image(value string) bool {
	v := strings.TrimSpace(value)
	return v == None || imagePattern.MatchString(v)
}

// URL wraps an image value for use in background-image. "none" and empty
// values yield "none".
func URL(value string) string {
	v := strings.TrimSpace(value)
	if v == "" || v == None {
		return None
	}
	return `url("` + v + `")`
}

// Opacity reports whether value is within [0, 1].
func Opacity(value float64) bool {
	return value >= 0 && value <= 1
}

// Declaration is a single property/value pair.
type Declaration struct {
	Property string
	Value    string
}

// Inline joins declarations into a style attribute value, preserving order
// and skipping empty values.
func Inline(decls []Declaration) string {
	var b strings.Builder
	for _, d := range decls {
		if d.Value == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteString("; ")
		}
		b.WriteString(d.Property)
		b.WriteString(": ")
		b.WriteString(d.Value)
	}
	return b.String()
}

// ParseInline splits a style attribute into declarations. Property names are
// lower-cased; malformed entries are skipped.
func ParseInline(style string) []Declaration {
	var out []Declaration
	for _, entry := range strings.Split(style, ";") {
		prop, value, ok := strings.Cut(entry, ":")
		if !ok {
			continue
		}
		prop = strings.ToLower(strings.TrimSpace(prop))
		value = strings.TrimSpace(value)
		if prop == "" || value == "" {
			continue
		}
		out = append(out, Declaration{Property: prop, Value: value})
	}
	return out
}

// Rule renders a selector block with one declaration per line.
func Rule(selector string, decls []Declaration) string {
	var b strings.Builder
	b.WriteString(selector)
	b.WriteString(" {\n")
	for _, d := range decls {
		if d.Value == "" {
			continue
		}
		b.WriteString("  ")
		b.WriteString(d.Property)
		b.WriteString(": ")
		b.WriteString(d.Value)
		b.WriteString(";\n")
	}
	b.WriteString("}\n")
	return b.String()
}

// Family quotes a font family name that contains spaces.
func Family(name string) string {
	if name == "" || !strings.Contains(name, " ") {
		return name
	}
	return "'" + name + "'"
}

// Sides expands a 1-4 value box shorthand into top, right, bottom, left.
func Sides(box string) [4]string {
	parts := strings.Fields(box)
	switch len(parts) {
	case 1:
		return [4]string{parts[0], parts[0], parts[0], parts[0]}
	case 2:
		return [4]string{parts[0], parts[1], parts[0], parts[1]}
	case 3:
		return [4]string{parts[0], parts[1], parts[2], parts[1]}
	case 4:
		return [4]string{parts[0], parts[1], parts[2], parts[3]}
	}
	return [4]string{"0", "0", "0", "0"}
}
