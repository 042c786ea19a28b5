package regenerate

import (
	"context"
	"fmt"

	"github.com/goliatone/go-lodgedoc/pkg/doctype"
)

// Prompt describes the confirmation a Confirmer is asked for.
type Prompt struct {
	Kind doctype.Kind
	// Dirty reports unsaved manual edits that regeneration would discard.
	Dirty bool
}

// Message is the warning shown to the user.
func (p Prompt) Message() string {
	if p.Dirty {
		return fmt.Sprintf("Regenerating the %s body discards your unsaved manual edits. Continue?", p.Kind.Definition().Title)
	}
	return fmt.Sprintf("Regenerating the %s body replaces its current text. Continue?", p.Kind.Definition().Title)
}

// Confirmer asks the user before a destructive regeneration.
type Confirmer interface {
	Confirm(ctx context.Context, p Prompt) (bool, error)
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(ctx context.Context, p Prompt) (bool, error)

func (f ConfirmFunc) Confirm(ctx context.Context, p Prompt) (bool, error) {
	return f(ctx, p)
}

// Always answers every prompt with answer.
func Always(answer bool) Confirmer {
	return ConfirmFunc(func(context.Context, Prompt) (bool, error) {
		return answer, nil
	})
}

// Session tracks the content template of one document between saves.
type Session struct {
	// Saved is the content as last persisted.
	Saved string
	// Current is the content as currently edited.
	Current string
}

// Dirty reports unsaved manual edits.
func (s *Session) Dirty() bool {
	return s.Saved != s.Current
}

// MarkSaved records the current content as persisted.
func (s *Session) MarkSaved() {
	s.Saved = s.Current
}

// Apply regenerates the content after asking confirm. A declined prompt
// leaves the session untouched.
func (s *Session) Apply(ctx context.Context, kind doctype.Kind, fields Fields, confirm Confirmer) (string, error) {
	if confirm == nil {
		return "", fmt.Errorf("regenerate: confirmer is required")
	}
	content, err := Regenerate(kind, fields)
	if err != nil {
		return "", err
	}

	prompt := Prompt{Kind: kind, Dirty: s.Dirty()}
	ok, err := confirm.Confirm(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("regenerate: confirm: %w", err)
	}
	if !ok {
		if prompt.Dirty {
			return "", ErrRegenerationConflict
		}
		return "", ErrCancelled
	}
	s.Current = content
	return content, nil
}
