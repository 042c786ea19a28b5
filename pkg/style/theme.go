package style

import (
	"maps"
	"strconv"
	"strings"

	theme "github.com/goliatone/go-theme"
)

// Theme token names read by GlobalDefaults.
const (
	TokenFontFamily        = "font-family"
	TokenHeadingFontFamily = "heading-font-family"
	TokenFontSize          = "font-size"
	TokenTextColor         = "text-color"
	TokenPageBackground    = "page-background"
	TokenPageImage         = "page-image"
	TokenPageSize          = "page-size"
	TokenPageMargin        = "page-margin"
	TokenBorderStyle       = "border-style"
	TokenBorderWidth       = "border-width"
	TokenBorderColor       = "border-color"
	TokenWatermarkImage    = "watermark-image"
	TokenWatermarkOpacity  = "watermark-opacity"
	TokenLineHeight        = "line-height"
)

// BuiltinGlobal is the last fallback layer. Every color and image field is
// concrete.
func BuiltinGlobal() Config {
	region := Region{
		FontFamily:        "Times New Roman",
		FontSize:          "12pt",
		Color:             "#000000",
		BackgroundColor:   "transparent",
		BackgroundImage:   "none",
		BackgroundOpacity: Float(1),
		Align:             "left",
		LineHeight:        "1.15",
		Margin:            "0",
		Padding:           "0",
		Border:            Line{Style: "none", Width: "0", Color: "transparent"},
		Visible:           Bool(true),
	}
	return Config{
		Page:       Page{Size: SizeA4, Orientation: Portrait, Margin: "20mm"},
		Border:     Border{Enabled: Bool(false), Style: "solid", Width: "1pt", Color: "#000000"},
		Background: Background{Color: "transparent", Image: "none", Opacity: Float(1)},
		Watermark:  Watermark{Image: "none", Opacity: Float(0.1)},
		Header:     region,
		Titles:     region,
		Content:    region,
		Footer:     region,
	}
}

// ThemeTokens returns the manifest tokens of a selection with the selected
// variant's tokens applied on top.
func ThemeTokens(selection *theme.Selection) map[string]string {
	tokens := make(map[string]string)
	if selection == nil || selection.Manifest == nil {
		return tokens
	}
	maps.Copy(tokens, selection.Manifest.Tokens)
	if variant, ok := selection.Manifest.Variants[selection.Variant]; ok {
		maps.Copy(tokens, variant.Tokens)
	}
	return tokens
}

// GlobalDefaults builds the global layer from a theme selection. Tokens that
// are missing or invalid keep the built-in value.
func GlobalDefaults(selection *theme.Selection) Config {
	builtin := BuiltinGlobal()
	tokens := ThemeTokens(selection)
	if len(tokens) == 0 {
		return builtin
	}

	var layer Config
	set := func(dst *string, name string) {
		if v := strings.TrimSpace(tokens[name]); v != "" {
			*dst = v
		}
	}
	setFloat := func(dst **float64, name string) {
		if v, err := strconv.ParseFloat(strings.TrimSpace(tokens[name]), 64); err == nil {
			*dst = Float(v)
		}
	}

	set(&layer.Page.Size, TokenPageSize)
	set(&layer.Page.Margin, TokenPageMargin)
	set(&layer.Background.Color, TokenPageBackground)
	set(&layer.Background.Image, TokenPageImage)
	set(&layer.Border.Style, TokenBorderStyle)
	set(&layer.Border.Width, TokenBorderWidth)
	set(&layer.Border.Color, TokenBorderColor)
	set(&layer.Watermark.Image, TokenWatermarkImage)
	setFloat(&layer.Watermark.Opacity, TokenWatermarkOpacity)

	for _, name := range Regions() {
		region := layer.Region(name)
		set(&region.FontFamily, TokenFontFamily)
		set(&region.Color, TokenTextColor)
		set(&region.LineHeight, TokenLineHeight)
	}
	set(&layer.Content.FontSize, TokenFontSize)
	set(&layer.Header.FontFamily, TokenHeadingFontFamily)
	set(&layer.Titles.FontFamily, TokenHeadingFontFamily)

	layer, _ = Sanitize(layer)
	return MergeDefaults(layer, builtin)
}
