package editor

import (
	"github.com/goliatone/go-lodgedoc/pkg/catalog"
	"github.com/goliatone/go-lodgedoc/pkg/token"
)

// MIME flavours carried by a drag or clipboard payload.
const (
	MIMEText = "text/plain"
	MIMEHTML = "text/html"
)

// Payload is the data transferred when a catalog entry is dragged or copied.
type Payload struct {
	Text string `json:"text/plain"`
	HTML string `json:"text/html,omitempty"`
}

// DragPayload builds the payload for a catalog entry: the token marker as
// HTML and the "{{ Key }}" fallback as plain text.
func DragPayload(entry catalog.Entry) Payload {
	return Payload{
		Text: token.PlainText(entry.Key),
		HTML: token.EncodeToken(token.New(entry.Key, entry.Label)),
	}
}

// Drop inserts a payload at the caret. A marker in the HTML flavour becomes a
// real token; anything else is inserted as literal text. It reports whether a
// token was inserted.
func (e *Editor) Drop(p Payload) bool {
	if t, ok := token.DecodeToken(p.HTML); ok {
		return e.InsertToken(t.Key, t.Label) == nil
	}
	e.InsertText(p.Text)
	return false
}

// DropAt moves the caret to pos and drops the payload there.
func (e *Editor) DropAt(pos int, p Payload) bool {
	e.SetCaret(pos)
	return e.Drop(p)
}
