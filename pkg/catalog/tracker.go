package catalog

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// Ticket identifies one catalog request. Only the latest ticket may commit.
type Ticket struct {
	Kind string
	gen  uint64
}

// State is the catalog currently shown to the user.
type State struct {
	Kind    string
	Groups  []Group
	Err     error
	Loading bool
}

// Tracker tags catalog requests with a generation so that a slow response for
// a previous kind never overwrites the current one.
type Tracker struct {
	mu     sync.Mutex
	gen    uint64
	state  State
	cancel context.CancelFunc
}

// NewTracker returns an idle tracker.
func NewTracker() *Tracker {
	return &Tracker{}
}

// Begin starts a request for kind and supersedes any earlier one.
func (t *Tracker) Begin(kind string) Ticket {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.beginLocked(kind)
}

func (t *Tracker) beginLocked(kind string) Ticket {
	if t.cancel != nil {
		t.cancel()
		t.cancel = nil
	}
	t.gen++
	t.state = State{Kind: kind, Loading: true}
	return Ticket{Kind: kind, gen: t.gen}
}

// Commit applies a result if ticket is still the latest request and reports
// whether it was applied. Errors are classified as ErrCatalogUnavailable.
func (t *Tracker) Commit(ticket Ticket, groups []Group, err error) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if ticket.gen != t.gen {
		return false
	}
	t.cancel = nil
	if err != nil {
		if !errors.Is(err, ErrCatalogUnavailable) {
			err = fmt.Errorf("%w: %w", ErrCatalogUnavailable, err)
		}
		t.state = State{Kind: ticket.Kind, Err: err}
		return true
	}
	t.state = State{Kind: ticket.Kind, Groups: cloneGroups(groups)}
	return true
}

// State returns the current state.
func (t *Tracker) State() State {
	t.mu.Lock()
	defer t.mu.Unlock()
	s := t.state
	s.Groups = cloneGroups(s.Groups)
	return s
}

// Fetch requests kind from p, cancelling the in-flight request it supersedes.
// It returns the resulting state and whether this call's result was applied.
func (t *Tracker) Fetch(ctx context.Context, p Provider, kind string) (State, bool) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	t.mu.Lock()
	ticket := t.beginLocked(kind)
	t.cancel = cancel
	t.mu.Unlock()

	groups, err := p.Catalog(ctx, kind)
	applied := t.Commit(ticket, groups, err)
	return t.State(), applied
}
