package editor

import (
	"sync"
	"time"
)

// DefaultGrace is how long the toolbar stays up after the pointer leaves or
// the editor blurs.
const DefaultGrace = 200 * time.Millisecond

// ToolbarState is the visibility state of a region's formatting toolbar.
type ToolbarState int

const (
	Unfocused ToolbarState = iota
	Focused
)

func (s ToolbarState) String() string {
	if s == Focused {
		return "focused"
	}
	return "unfocused"
}

// ToolbarOption configures a Toolbar.
type ToolbarOption func(*Toolbar)

// WithGrace overrides the hide delay.
func WithGrace(d time.Duration) ToolbarOption {
	return func(t *Toolbar) {
		if d >= 0 {
			t.grace = d
		}
	}
}

// Toolbar tracks whether a region's toolbar is shown. Time is passed in by the
// caller so transitions are deterministic.
type Toolbar struct {
	mu      sync.Mutex
	grace   time.Duration
	focused bool
	hideAt  time.Time
}

// NewToolbar returns an unfocused toolbar.
func NewToolbar(opts ...ToolbarOption) *Toolbar {
	t := &Toolbar{grace: DefaultGrace}
	for _, opt := range opts {
		if opt != nil {
			opt(t)
		}
	}
	return t
}

// Focus records the editor gaining focus or the pointer entering the region or
// its toolbar. It cancels a pending hide.
func (t *Toolbar) Focus(now time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.focused = true
	t.hideAt = time.Time{}
}

// Blur records focus or pointer leaving. The toolbar hides once the grace
// delay has passed without another Focus.
func (t *Toolbar) Blur(now time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.focused {
		return
	}
	t.hideAt = now.Add(t.grace)
}

// PointerEnter is Focus for pointer events.
func (t *Toolbar) PointerEnter(now time.Time) { t.Focus(now) }

// PointerLeave is Blur for pointer events.
func (t *Toolbar) PointerLeave(now time.Time) { t.Blur(now) }

// State returns the state at now, applying an expired hide.
func (t *Toolbar) State(now time.Time) ToolbarState {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.focused && !t.hideAt.IsZero() && !now.Before(t.hideAt) {
		t.focused = false
		t.hideAt = time.Time{}
	}
	if t.focused {
		return Focused
	}
	return Unfocused
}

// Visible reports whether the toolbar is shown at now.
func (t *Toolbar) Visible(now time.Time) bool {
	return t.State(now) == Focused
}
