// Package template defines the template engine seam used to assemble final
// documents. The gotemplate subpackage provides the pongo2-backed engine.
package template
