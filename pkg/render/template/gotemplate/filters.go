package gotemplate

import (
	"math"
	"strconv"
	"strings"

	"github.com/flosch/pongo2/v6"
)

func registerDefaultFilters() {
	defaults := map[string]pongo2.FilterFunction{
		"trim":     filterTrim,
		"mm":       filterMillimetres,
		"cssident": filterCSSIdent,
	}
	for name, fn := range defaults {
		if !pongo2.FilterExists(name) {
			_ = pongo2.RegisterFilter(name, fn)
		}
	}
}

func filterTrim(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	if in.Len() <= 0 {
		return pongo2.AsValue(""), nil
	}
	return pongo2.AsValue(strings.TrimSpace(in.String())), nil
}

// filterMillimetres formats a number as a CSS millimetre length with at most
// two decimals: 210 -> "210mm", 148.5 -> "148.5mm".
func filterMillimetres(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	var f float64
	switch {
	case in.IsFloat():
		f = in.Float()
	case in.IsInteger():
		f = float64(in.Integer())
	case in.IsString():
		parsed, err := strconv.ParseFloat(strings.TrimSpace(in.String()), 64)
		if err != nil {
			return pongo2.AsValue(""), nil
		}
		f = parsed
	default:
		return pongo2.AsValue(""), nil
	}
	return pongo2.AsValue(strconv.FormatFloat(math.Round(f*100)/100, 'f', -1, 64) + "mm"), nil
}

// filterCSSIdent reduces a value to a safe CSS class fragment.
func filterCSSIdent(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	var b strings.Builder
	for _, r := range strings.ToLower(in.String()) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		case r == ' ' || r == '.':
			b.WriteRune('-')
		}
	}
	return pongo2.AsValue(b.String()), nil
}
