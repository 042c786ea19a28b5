package regenerate

import (
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-lodgedoc/pkg/doctype"
	"github.com/goliatone/go-lodgedoc/pkg/markup"
)

var (
	// ErrRegenerationConflict is returned when regeneration was declined while
	// the content had unsaved manual edits.
	ErrRegenerationConflict = errors.New("regenerate: unsaved manual edits would be discarded")
	// ErrCancelled is returned when regeneration was declined.
	ErrCancelled = errors.New("regenerate: cancelled")
)

// Fields maps skeleton slot keys to the values typed in the structured form.
type Fields map[string]string

// Regenerate builds the content template of kind from its fixed skeleton.
// Slots with a non-empty field value become literal text, multi-line values
// continue on new lines with the slot's block format, and the other slots stay
// tokens. The current content is never read, so equal fields always give
// equal markup.
func Regenerate(kind doctype.Kind, fields Fields) (string, error) {
	if !kind.Valid() {
		return "", fmt.Errorf("regenerate: %w: %d", doctype.ErrUnknownKind, int(kind))
	}
	schema := markup.DefaultSchema()
	skeleton, warnings := markup.Load(kind.Skeleton(), schema)
	if len(warnings) > 0 {
		return "", fmt.Errorf("regenerate: skeleton for %s: %w", kind, warnings[0])
	}

	var out markup.Document
	for _, line := range skeleton.Lines {
		current := markup.Line{Block: line.Block}
		for _, run := range line.Runs {
			value, ok := fieldValue(run, fields)
			if !ok {
				current.Runs = append(current.Runs, run)
				continue
			}
			parts := strings.Split(value, "\n")
			for i, part := range parts {
				if i > 0 {
					out.Lines = append(out.Lines, current)
					current = markup.Line{Block: line.Block}
				}
				if part = markup.CleanText(part); part != "" {
					current.Runs = append(current.Runs, markup.Run{Text: part, Marks: run.Marks})
				}
			}
		}
		out.Lines = append(out.Lines, current)
	}
	return markup.Serialize(out, schema), nil
}

func fieldValue(run markup.Run, fields Fields) (string, bool) {
	if run.Embed == nil {
		return "", false
	}
	t, ok := markup.TokenOf(*run.Embed)
	if !ok {
		return "", false
	}
	value := strings.ReplaceAll(fields[t.Key], "\r\n", "\n")
	if strings.TrimSpace(value) == "" {
		return "", false
	}
	return strings.TrimRight(value, "\n"), true
}
