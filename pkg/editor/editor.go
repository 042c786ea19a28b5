package editor

import (
	"errors"
	"fmt"

	"github.com/goliatone/go-lodgedoc/pkg/markup"
	"github.com/goliatone/go-lodgedoc/pkg/token"
)

// ErrInvalidKey is returned when a token key does not match the key grammar.
var ErrInvalidKey = errors.New("editor: invalid token key")

// Separator follows every inserted token so typing continues outside it.
const Separator = " "

// Option configures an Editor.
type Option func(*Editor)

// WithPromoteBraces upgrades literal "{{ Key }}" text to tokens on Load when
// accept returns true.
func WithPromoteBraces(accept func(key string) bool) Option {
	return func(e *Editor) {
		e.promote = accept
	}
}

// WithSeparator overrides the text inserted after a token.
func WithSeparator(sep string) Option {
	return func(e *Editor) {
		e.separator = sep
	}
}

// Editor is the editing surface of one rich region. It is not safe for
// concurrent use; each region owns its editor.
type Editor struct {
	schema    *markup.Schema
	doc       markup.Document
	caret     int
	separator string
	promote   func(string) bool
}

// New creates an empty editor over schema. A nil schema uses
// markup.DefaultSchema.
func New(schema *markup.Schema, opts ...Option) *Editor {
	e := &Editor{
		schema:    schema,
		separator: Separator,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(e)
		}
	}
	if e.schema == nil {
		e.schema = markup.DefaultSchema()
	}
	e.doc = markup.Empty()
	return e
}

// Load replaces the content with stored markup and moves the caret to the
// start. Problems in the markup are returned as warnings.
func (e *Editor) Load(raw string) []markup.Warning {
	var opts []markup.LoadOption
	if e.promote != nil {
		opts = append(opts, markup.PromoteBraces(e.promote))
	}
	doc, warnings := markup.Load(raw, e.schema, opts...)
	e.doc = doc
	e.caret = 0
	return warnings
}

// Serialize returns the canonical stored markup.
func (e *Editor) Serialize() string {
	return markup.Serialize(e.doc, e.schema)
}

// Document returns a copy of the current document.
func (e *Editor) Document() markup.Document {
	return e.doc.Clone()
}

// Schema returns the node schema the editor was built with.
func (e *Editor) Schema() *markup.Schema {
	return e.schema
}

// Length returns the content length in caret units.
func (e *Editor) Length() int {
	return e.doc.Length()
}

// Caret returns the caret position.
func (e *Editor) Caret() int {
	return e.caret
}

// SetCaret moves the caret, clamping it to the content, and returns the
// effective position.
func (e *Editor) SetCaret(pos int) int {
	e.caret = markup.ClampCaret(e.doc, pos)
	return e.caret
}

// InsertText types text at the caret. The text inherits the marks of the
// preceding character.
func (e *Editor) InsertText(text string) {
	if text == "" {
		return
	}
	marks := markup.MarksAt(e.doc, e.caret)
	e.doc, e.caret = markup.InsertText(e.doc, e.caret, text, marks)
}

// InsertToken inserts a variable token followed by the separator and leaves
// the caret after the separator.
func (e *Editor) InsertToken(key, label string) error {
	if !token.ValidKey(key) {
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	marks := markup.MarksAt(e.doc, e.caret)
	e.doc, e.caret = markup.InsertEmbed(e.doc, e.caret, markup.NewVariable(key, label), marks)
	if e.separator != "" {
		e.doc, e.caret = markup.InsertText(e.doc, e.caret, e.separator, marks)
	}
	return nil
}

// MoveLeft moves the caret one unit left. A token is one unit.
func (e *Editor) MoveLeft() int {
	return e.SetCaret(e.caret - 1)
}

// MoveRight moves the caret one unit right. A token is one unit.
func (e *Editor) MoveRight() int {
	return e.SetCaret(e.caret + 1)
}

// DeleteBackward removes the unit before the caret. A token is removed whole.
func (e *Editor) DeleteBackward() {
	if e.caret == 0 {
		return
	}
	e.doc = markup.Delete(e.doc, e.caret-1, 1)
	e.caret--
}

// DeleteForward removes the unit after the caret. A token is removed whole.
func (e *Editor) DeleteForward() {
	e.doc = markup.Delete(e.doc, e.caret, 1)
	e.SetCaret(e.caret)
}

// DeleteRange removes the units in [from, to) and leaves the caret at from.
func (e *Editor) DeleteRange(from, to int) {
	if from > to {
		from, to = to, from
	}
	from = max(from, 0)
	e.doc = markup.Delete(e.doc, from, to-from)
	e.SetCaret(from)
}

// Tokens lists the variable tokens in document order.
func (e *Editor) Tokens() []token.Token {
	var out []token.Token
	for _, embed := range e.doc.Embeds() {
		if t, ok := markup.TokenOf(embed); ok {
			out = append(out, t)
		}
	}
	return out
}

// Text returns the plain text content with tokens as "{{ Key }}".
func (e *Editor) Text() string {
	return markup.PlainText(e.doc, e.schema)
}

// TokenAt returns the token occupying the unit after pos.
func (e *Editor) TokenAt(pos int) (token.Token, bool) {
	embed, ok := markup.EmbedAt(e.doc, pos)
	if !ok {
		return token.Token{}, false
	}
	return markup.TokenOf(embed)
}

// FormatInline applies an inline mark to [from, to). Values outside the
// formatting whitelist are rejected.
func (e *Editor) FormatInline(from, to int, mark Mark) error {
	if err := mark.validate(); err != nil {
		return err
	}
	e.doc = markup.FormatInline(e.doc, from, to, mark.apply)
	return nil
}

// FormatLine applies a block format to the line containing at.
func (e *Editor) FormatLine(at int, format LineFormat) error {
	return e.FormatLines(at, at, format)
}

// FormatLines applies a block format to every line touched by [from, to].
func (e *Editor) FormatLines(from, to int, format LineFormat) error {
	if err := format.validate(); err != nil {
		return err
	}
	e.doc = markup.FormatLines(e.doc, from, to, format.apply)
	return nil
}

// ActiveMarks reports the inline format at the caret, as the toolbar shows it.
func (e *Editor) ActiveMarks() markup.Marks {
	return markup.MarksAt(e.doc, e.caret)
}

// ActiveBlock reports the block format of the caret's line.
func (e *Editor) ActiveBlock() markup.Block {
	return markup.BlockAt(e.doc, e.caret)
}
