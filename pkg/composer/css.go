package composer

import (
	"strconv"
	"strings"

	"github.com/goliatone/go-lodgedoc/pkg/css"
	"github.com/goliatone/go-lodgedoc/pkg/markup"
	"github.com/goliatone/go-lodgedoc/pkg/style"
)

// Stylesheet builds the document CSS. Rules are written in a fixed order so
// equal inputs give byte-identical output.
func Stylesheet(cfg style.Config, page Page) string {
	var b strings.Builder
	width, height := mm(page.Width), mm(page.Height)

	b.WriteString("@page {\n  size: " + width + " " + height + ";\n  margin: 0;\n}\n")
	b.WriteString(css.Rule("html, body", []css.Declaration{
		{Property: "margin", Value: "0"},
		{Property: "padding", Value: "0"},
	}))
	b.WriteString(css.Rule(".lodgedoc-page", []css.Declaration{
		{Property: "position", Value: "relative"},
		{Property: "box-sizing", Value: "border-box"},
		{Property: "width", Value: width},
		{Property: "height", Value: height},
		{Property: "overflow", Value: "hidden"},
		{Property: "page-break-after", Value: "always"},
	}))
	b.WriteString(css.Rule(".lodgedoc-layer", []css.Declaration{
		{Property: "position", Value: "absolute"},
		{Property: "box-sizing", Value: "border-box"},
		{Property: "inset", Value: "0"},
	}))

	b.WriteString(css.Rule(".layer-"+LayerBackground, []css.Declaration{
		{Property: "z-index", Value: "0"},
		{Property: "background-color", Value: cfg.Background.Color},
		{Property: "background-image", Value: css.URL(cfg.Background.Image)},
		{Property: "background-size", Value: ifImage(cfg.Background.Image, "cover")},
		{Property: "background-position", Value: ifImage(cfg.Background.Image, "center")},
		{Property: "background-repeat", Value: ifImage(cfg.Background.Image, "no-repeat")},
		{Property: "opacity", Value: opacity(cfg.Background.Opacity)},
	}))

	for _, layer := range Layers(cfg) {
		switch layer.Name {
		case LayerWatermark:
			b.WriteString(css.Rule(".layer-"+LayerWatermark, []css.Declaration{
				{Property: "z-index", Value: strconv.Itoa(layer.ZIndex)},
				{Property: "background-image", Value: css.URL(cfg.Watermark.Image)},
				{Property: "background-size", Value: "60%"},
				{Property: "background-position", Value: "center"},
				{Property: "background-repeat", Value: "no-repeat"},
				{Property: "opacity", Value: opacity(cfg.Watermark.Opacity)},
			}))
		case LayerBorder:
			sides := page.Margin
			b.WriteString(css.Rule(".layer-"+LayerBorder, []css.Declaration{
				{Property: "z-index", Value: strconv.Itoa(layer.ZIndex)},
				{Property: "inset", Value: strings.Join(sides[:], " ")},
				{Property: "border", Value: borderValue(cfg.Border.Width, cfg.Border.Style, cfg.Border.Color)},
			}))
		}
	}

	b.WriteString(css.Rule(".layer-"+LayerContent, []css.Declaration{
		{Property: "z-index", Value: strconv.Itoa(contentZIndex)},
		{Property: "display", Value: "flex"},
		{Property: "flex-direction", Value: "column"},
		{Property: "padding", Value: strings.Join(page.Margin[:], " ")},
	}))
	b.WriteString(css.Rule(".region", []css.Declaration{
		{Property: "position", Value: "relative"},
		{Property: "box-sizing", Value: "border-box"},
	}))
	b.WriteString(css.Rule(".region > *", []css.Declaration{
		{Property: "position", Value: "relative"},
	}))
	b.WriteString(css.Rule(".region p, .region h1, .region h2, .region h3", []css.Declaration{
		{Property: "margin", Value: "0"},
	}))
	b.WriteString(css.Rule(".region-"+string(style.Content), []css.Declaration{
		{Property: "flex", Value: "1 1 auto"},
	}))
	b.WriteString(css.Rule(".region-"+string(style.Footer), []css.Declaration{
		{Property: "margin-top", Value: "auto"},
	}))

	for _, name := range style.Regions() {
		writeRegion(&b, name, *cfg.Region(name))
	}

	b.WriteString(css.Rule("."+markup.UnresolvedClass, []css.Declaration{
		{Property: "color", Value: "#b00020"},
		{Property: "background-color", Value: "#fdecea"},
		{Property: "border-bottom", Value: "1px dashed #b00020"},
	}))
	b.WriteString(css.Rule("[data-region-error]::after", []css.Declaration{
		{Property: "content", Value: "attr(data-region-error)"},
		{Property: "color", Value: "#b00020"},
		{Property: "font-size", Value: "8pt"},
	}))

	// The stylesheet is embedded in a <style> element.
	return strings.ReplaceAll(b.String(), "<", `\3c `)
}

func writeRegion(b *strings.Builder, name style.RegionName, r style.Region) {
	selector := ".region-" + string(name)
	if !r.IsVisible() {
		b.WriteString(css.Rule(selector, []css.Declaration{{Property: "display", Value: "none"}}))
		return
	}
	b.WriteString(css.Rule(selector, []css.Declaration{
		{Property: "font-family", Value: css.Family(r.FontFamily)},
		{Property: "font-size", Value: r.FontSize},
		{Property: "color", Value: r.Color},
		{Property: "background-color", Value: r.BackgroundColor},
		{Property: "text-align", Value: r.Align},
		{Property: "line-height", Value: r.LineHeight},
		{Property: "margin", Value: r.Margin},
		{Property: "padding", Value: r.Padding},
		{Property: "border", Value: borderValue(r.Border.Width, r.Border.Style, r.Border.Color)},
	}))
	if hasImage(r.BackgroundImage) {
		b.WriteString(css.Rule(selector+"::before", []css.Declaration{
			{Property: "content", Value: `""`},
			{Property: "position", Value: "absolute"},
			{Property: "inset", Value: "0"},
			{Property: "background-image", Value: css.URL(r.BackgroundImage)},
			{Property: "background-size", Value: "cover"},
			{Property: "background-position", Value: "center"},
			{Property: "opacity", Value: opacity(r.BackgroundOpacity)},
		}))
	}
}

func borderValue(width, lineStyle, color string) string {
	if lineStyle == "" || lineStyle == css.None {
		return css.None
	}
	return strings.TrimSpace(strings.Join([]string{width, lineStyle, color}, " "))
}

func ifImage(image, value string) string {
	if hasImage(image) {
		return value
	}
	return ""
}

func opacity(v *float64) string {
	if v == nil {
		return "1"
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func mm(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + "mm"
}
