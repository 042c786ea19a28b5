// Package editor is the editing surface of a rich region: caret movement,
// typing, token insertion, formatting commands, the toolbar focus state and
// drag and drop of catalog entries. Tokens occupy a single caret unit, so
// navigation and deletion always treat them as a whole.
package editor
