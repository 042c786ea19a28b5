// Package composer assembles a printable HTML page from the stored region
// templates of a document, its style overrides and a context of values.
//
// Styles resolve through three layers (stored overrides, per-kind defaults
// and the global theme layer), the page is laid out as stacked absolute
// layers (background, watermark, border, content) and the four regions flow
// top to bottom inside the content layer with the footer pushed to the
// bottom. Tokens missing from the context render as a visible placeholder
// and are listed in Result.Unresolved.
package composer
