package composer

import (
	"github.com/goliatone/go-lodgedoc/pkg/css"
	"github.com/goliatone/go-lodgedoc/pkg/style"
)

// Layer is one absolutely positioned page layer, bottom first.
type Layer struct {
	Name   string `json:"name"`
	ZIndex int    `json:"z_index"`
}

// Layer names.
const (
	LayerBackground = "background"
	LayerWatermark  = "watermark"
	LayerBorder     = "border"
	LayerContent    = "content"
)

// Layers lists the decorative layers a resolved style needs, below the
// content layer. The background is always present; the watermark only with
// an image and the border only when enabled.
func Layers(cfg style.Config) []Layer {
	layers := []Layer{{Name: LayerBackground, ZIndex: 0}}
	if hasImage(cfg.Watermark.Image) {
		layers = append(layers, Layer{Name: LayerWatermark, ZIndex: 1})
	}
	if cfg.BorderEnabled() && cfg.Border.Style != css.None {
		layers = append(layers, Layer{Name: LayerBorder, ZIndex: 2})
	}
	return layers
}

// contentZIndex keeps the text above every decorative layer.
const contentZIndex = 10

func hasImage(value string) bool {
	return value != "" && value != css.None
}
