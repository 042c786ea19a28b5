// Package prompt holds the interactive terminal flows of the CLI: choosing a
// document kind, filling its form fields and confirming regeneration.
package prompt
