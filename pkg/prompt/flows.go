package prompt

import (
	"context"
	"fmt"

	"github.com/goliatone/go-lodgedoc/pkg/doctype"
	"github.com/goliatone/go-lodgedoc/pkg/regenerate"
)

// Confirmer asks for regeneration confirmation on d. The default answer is
// no.
func Confirmer(d Driver) regenerate.Confirmer {
	return regenerate.ConfirmFunc(func(ctx context.Context, p regenerate.Prompt) (bool, error) {
		help := "The body is rebuilt from its fixed layout and the form fields."
		if p.Dirty {
			help = "Unsaved manual edits in the body will be lost."
		}
		return d.Confirm(ctx, ConfirmConfig{Message: p.Message(), Help: help})
	})
}

// SelectKind asks for a document kind.
func SelectKind(ctx context.Context, d Driver) (doctype.Kind, error) {
	kinds := doctype.All()
	options := make([]string, len(kinds))
	for i, k := range kinds {
		options[i] = k.Definition().Title
	}
	idx, err := d.Select(ctx, SelectConfig{Message: "Document type", Options: options})
	if err != nil {
		return 0, err
	}
	if idx < 0 || idx >= len(kinds) {
		return 0, fmt.Errorf("prompt: %w: selection %d", doctype.ErrUnknownKind, idx)
	}
	return kinds[idx], nil
}

// CollectFields asks for every form field of kind. Existing values are
// offered as defaults; multi-line fields use a text area.
func CollectFields(ctx context.Context, d Driver, kind doctype.Kind, existing regenerate.Fields) (regenerate.Fields, error) {
	fields := make(regenerate.Fields, len(kind.Fields()))
	for _, f := range kind.Fields() {
		var (
			value string
			err   error
		)
		if f.Multiline {
			value, err = d.TextArea(ctx, TextAreaConfig{Message: f.Label, Default: existing[f.Key]})
		} else {
			value, err = d.Input(ctx, InputConfig{Message: f.Label, Default: existing[f.Key]})
		}
		if err != nil {
			return nil, fmt.Errorf("prompt: field %s: %w", f.Key, err)
		}
		fields[f.Key] = value
	}
	return fields, nil
}
