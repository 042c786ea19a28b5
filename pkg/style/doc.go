// Package style models the style configuration of a document: page geometry,
// border, background, watermark and per region typography. Configurations
// are layered; Resolve falls back from stored overrides to the kind defaults
// and then to the global defaults derived from a go-theme selection.
//
// Merging is driven by reflection. Structs merge field by field unless tagged
// `merge:"replace"`; other fields are taken from the upper layer when set.
// Validation rules are declared with `check` tags.
package style
