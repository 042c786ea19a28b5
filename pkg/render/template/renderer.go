package template

import (
	"io"
)

// TemplateRenderer renders the page layout of a composed document. The
// composer calls RenderTemplate once per document with the "document" name
// and a map holding lang, title, kind, css, page, layers and regions. Region
// HTML in that map is already sanitized, so engines must not escape it twice.
//
// When out writers are given the rendered page is also written to each one.
type TemplateRenderer interface {
	RenderTemplate(name string, data any, out ...io.Writer) (string, error)
}
