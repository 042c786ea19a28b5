package composer

import (
	"github.com/goliatone/go-lodgedoc/pkg/css"
	"github.com/goliatone/go-lodgedoc/pkg/style"
)

// Page is the resolved page geometry, in millimetres.
type Page struct {
	Size        string    `json:"size"`
	Orientation string    `json:"orientation"`
	Width       float64   `json:"width"`
	Height      float64   `json:"height"`
	Margin      [4]string `json:"margin"`
}

var pageSizes = map[string][2]float64{
	style.SizeA4: {210, 297},
	style.SizeA5: {148, 210},
}

// Geometry computes page dimensions. Unknown sizes fall back to A4 and
// landscape swaps width and height.
func Geometry(p style.Page) Page {
	size := p.Size
	dims, ok := pageSizes[size]
	if !ok {
		size = style.SizeA4
		dims = pageSizes[size]
	}
	orientation := p.Orientation
	if orientation != style.Landscape {
		orientation = style.Portrait
	}
	width, height := dims[0], dims[1]
	if orientation == style.Landscape {
		width, height = height, width
	}
	margin := p.Margin
	if margin == "" {
		margin = "0"
	}
	return Page{
		Size:        size,
		Orientation: orientation,
		Width:       width,
		Height:      height,
		Margin:      css.Sides(margin),
	}
}
