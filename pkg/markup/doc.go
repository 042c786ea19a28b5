// Package markup holds the rich region document model shared by the editor,
// the composer and the regenerator.
//
// A Document is a list of lines. Each line carries a block format and a list
// of runs; a run is formatted text or an atomic embed such as a variable
// token. Load reads stored region markup through a whitelist sanitizer and
// Serialize writes the canonical form back, so that loading and serializing a
// serialized document is a fixed point. Embed types are supplied per Schema.
package markup
