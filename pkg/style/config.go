package style

// RegionName names one of the four stacked document regions.
type RegionName string

const (
	Header  RegionName = "header"
	Titles  RegionName = "titles"
	Content RegionName = "content"
	Footer  RegionName = "footer"
)

// Regions returns the regions in page order.
func Regions() []RegionName {
	return []RegionName{Header, Titles, Content, Footer}
}

// Page sizes and orientations.
const (
	SizeA4 = "A4"
	SizeA5 = "A5"

	Portrait  = "portrait"
	Landscape = "landscape"
)

// Config is the style configuration of one document. Empty strings and nil
// pointers mean "unset" and fall back to the next layer; "transparent" and
// "none" are explicit values.
type Config struct {
	Page       Page       `json:"page" yaml:"page"`
	Border     Border     `json:"border" yaml:"border"`
	Background Background `json:"background" yaml:"background"`
	Watermark  Watermark  `json:"watermark" yaml:"watermark"`
	Header     Region     `json:"header" yaml:"header"`
	Titles     Region     `json:"titles" yaml:"titles"`
	Content    Region     `json:"content" yaml:"content"`
	Footer     Region     `json:"footer" yaml:"footer"`
}

type Page struct {
	Size        string `json:"size,omitempty" yaml:"size,omitempty" check:"pagesize"`
	Orientation string `json:"orientation,omitempty" yaml:"orientation,omitempty" check:"orientation"`
	Margin      string `json:"margin,omitempty" yaml:"margin,omitempty" check:"box"`
}

// Border is the decorative page border, inset by the page margin.
type Border struct {
	Enabled *bool  `json:"enabled,omitempty" yaml:"enabled,omitempty"`
	Style   string `json:"style,omitempty" yaml:"style,omitempty" check:"borderstyle"`
	Width   string `json:"width,omitempty" yaml:"width,omitempty" check:"length"`
	Color   string `json:"color,omitempty" yaml:"color,omitempty" check:"color"`
}

type Background struct {
	Color   string   `json:"color,omitempty" yaml:"color,omitempty" check:"color"`
	Image   string   `json:"image,omitempty" yaml:"image,omitempty" check:"image"`
	Opacity *float64 `json:"opacity,omitempty" yaml:"opacity,omitempty" check:"opacity"`
}

type Watermark struct {
	Image   string   `json:"image,omitempty" yaml:"image,omitempty" check:"image"`
	Opacity *float64 `json:"opacity,omitempty" yaml:"opacity,omitempty" check:"opacity"`
}

// Region styles one region. Its border is treated as a unit: a stored border
// replaces the default one instead of merging with it.
type Region struct {
	FontFamily        string   `json:"font_family,omitempty" yaml:"font_family,omitempty" check:"font"`
	FontSize          string   `json:"font_size,omitempty" yaml:"font_size,omitempty" check:"fontsize"`
	Color             string   `json:"color,omitempty" yaml:"color,omitempty" check:"color"`
	BackgroundColor   string   `json:"background_color,omitempty" yaml:"background_color,omitempty" check:"color"`
	BackgroundImage   string   `json:"background_image,omitempty" yaml:"background_image,omitempty" check:"image"`
	BackgroundOpacity *float64 `json:"background_opacity,omitempty" yaml:"background_opacity,omitempty" check:"opacity"`
	Align             string   `json:"align,omitempty" yaml:"align,omitempty" check:"align"`
	LineHeight        string   `json:"line_height,omitempty" yaml:"line_height,omitempty" check:"lineheight"`
	Margin            string   `json:"margin,omitempty" yaml:"margin,omitempty" check:"box"`
	Padding           string   `json:"padding,omitempty" yaml:"padding,omitempty" check:"box"`
	Border            Line     `json:"border" yaml:"border" merge:"replace"`
	Visible           *bool    `json:"visible,omitempty" yaml:"visible,omitempty"`
}

// Line describes one border: style, width and color.
type Line struct {
	Style string `json:"style,omitempty" yaml:"style,omitempty" check:"borderstyle"`
	Width string `json:"width,omitempty" yaml:"width,omitempty" check:"length"`
	Color string `json:"color,omitempty" yaml:"color,omitempty" check:"color"`
}

// IsVisible reports whether the region is rendered. Unset means visible.
func (r Region) IsVisible() bool {
	return r.Visible == nil || *r.Visible
}

// Region returns the style of the named region.
func (c *Config) Region(name RegionName) *Region {
	switch name {
	case Header:
		return &c.Header
	case Titles:
		return &c.Titles
	case Content:
		return &c.Content
	case Footer:
		return &c.Footer
	}
	return nil
}

// BorderEnabled reports whether the page border is drawn.
func (c Config) BorderEnabled() bool {
	return c.Border.Enabled != nil && *c.Border.Enabled
}

// Bool returns a pointer to v, for optional config fields.
func Bool(v bool) *bool { return &v }

// Float returns a pointer to v, for optional config fields.
func Float(v float64) *float64 { return &v }
