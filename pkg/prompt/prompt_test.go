package prompt

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-lodgedoc/pkg/doctype"
	"github.com/goliatone/go-lodgedoc/pkg/regenerate"
)

type stubDriver struct {
	inputs    []string
	textAreas []string
	selectIdx []int
	confirm   []bool

	inputPos   int
	textPos    int
	selectPos  int
	confirmPos int

	defaults []string
	messages []string
}

func (s *stubDriver) Input(_ context.Context, cfg InputConfig) (string, error) {
	if s.inputPos >= len(s.inputs) {
		return "", errors.New("no input scripted")
	}
	s.defaults = append(s.defaults, cfg.Default)
	val := s.inputs[s.inputPos]
	s.inputPos++
	return val, nil
}

func (s *stubDriver) Confirm(_ context.Context, cfg ConfirmConfig) (bool, error) {
	if s.confirmPos >= len(s.confirm) {
		return false, errors.New("no confirm scripted")
	}
	s.messages = append(s.messages, cfg.Help)
	val := s.confirm[s.confirmPos]
	s.confirmPos++
	return val, nil
}

func (s *stubDriver) Select(_ context.Context, _ SelectConfig) (int, error) {
	if s.selectPos >= len(s.selectIdx) {
		return -1, errors.New("no select scripted")
	}
	val := s.selectIdx[s.selectPos]
	s.selectPos++
	return val, nil
}

func (s *stubDriver) TextArea(_ context.Context, _ TextAreaConfig) (string, error) {
	if s.textPos >= len(s.textAreas) {
		return "", errors.New("no text area scripted")
	}
	val := s.textAreas[s.textPos]
	s.textPos++
	return val, nil
}

func (s *stubDriver) Info(context.Context, string) error { return nil }

func TestSelectKind(t *testing.T) {
	d := &stubDriver{selectIdx: []int{2, 9}}
	kind, err := SelectKind(context.Background(), d)
	if err != nil || kind != doctype.All()[2] {
		t.Fatalf("unexpected kind %v, %v", kind, err)
	}
	if _, err := SelectKind(context.Background(), d); !errors.Is(err, doctype.ErrUnknownKind) {
		t.Fatalf("expected unknown kind for out of range selection, got %v", err)
	}
}

func TestCollectFields_UsesTextAreaForMultiline(t *testing.T) {
	kind := doctype.Balaustre
	d := &stubDriver{}
	want := regenerate.Fields{}
	for i, f := range kind.Fields() {
		value := f.Key + "-" + string(rune('a'+i))
		if f.Multiline {
			d.textAreas = append(d.textAreas, value)
		} else {
			d.inputs = append(d.inputs, value)
		}
		want[f.Key] = value
	}

	got, err := CollectFields(context.Background(), d, kind, regenerate.Fields{"Veneravel": "anterior"})
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected fields (-want +got):\n%s", diff)
	}
	if d.defaults[0] != "anterior" {
		t.Fatalf("expected existing value offered as default, got %q", d.defaults[0])
	}
}

func TestCollectFields_PropagatesAbort(t *testing.T) {
	d := &stubDriver{}
	if _, err := CollectFields(context.Background(), d, doctype.Edital, nil); err == nil {
		t.Fatalf("expected error when the driver fails")
	}
}

func TestConfirmer_RegenerationFlow(t *testing.T) {
	d := &stubDriver{confirm: []bool{false, true}}
	s := &regenerate.Session{Saved: "<p>a</p>", Current: "<p>b</p>"}

	if _, err := s.Apply(context.Background(), doctype.Balaustre, nil, Confirmer(d)); !errors.Is(err, regenerate.ErrRegenerationConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
	if _, err := s.Apply(context.Background(), doctype.Balaustre, nil, Confirmer(d)); err != nil {
		t.Fatalf("expected confirmed regeneration, got %v", err)
	}
	if d.messages[0] != "Unsaved manual edits in the body will be lost." {
		t.Fatalf("unexpected help %q", d.messages[0])
	}
}
