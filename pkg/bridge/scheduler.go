package bridge

import (
	"context"
	"sync"
	"time"
)

// DefaultDebounce is the quiet period before a preview request is sent.
const DefaultDebounce = 400 * time.Millisecond

// Result is a delivered preview.
type Result struct {
	Generation uint64
	Preview    Preview
	Err        error
}

// SchedulerOption configures a Scheduler.
type SchedulerOption func(*Scheduler)

// WithDebounce overrides DefaultDebounce.
func WithDebounce(d time.Duration) SchedulerOption {
	return func(s *Scheduler) {
		if d >= 0 {
			s.delay = d
		}
	}
}

// Scheduler debounces preview requests. Each Submit supersedes the previous
// one: a pending request is dropped, an in-flight request is cancelled and
// only the latest generation's result reaches deliver.
type Scheduler struct {
	bridge  Bridge
	deliver func(Result)
	delay   time.Duration

	mu     sync.Mutex
	gen    uint64
	timer  *time.Timer
	cancel context.CancelFunc
	closed bool
}

// NewScheduler creates a scheduler. deliver runs on a scheduler goroutine
// while the scheduler is locked and must not call back into it.
func NewScheduler(b Bridge, deliver func(Result), opts ...SchedulerOption) *Scheduler {
	s := &Scheduler{bridge: b, deliver: deliver, delay: DefaultDebounce}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Submit schedules req and returns its generation. ctx bounds the request.
func (s *Scheduler) Submit(ctx context.Context, req Request) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return s.gen
	}
	s.supersedeLocked()
	s.gen++
	gen := s.gen
	s.timer = time.AfterFunc(s.delay, func() { s.run(ctx, gen, req) })
	return gen
}

// Generation returns the latest submitted generation.
func (s *Scheduler) Generation() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gen
}

// Close drops pending work and cancels the in-flight request.
func (s *Scheduler) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.supersedeLocked()
	s.gen++
	s.closed = true
}

func (s *Scheduler) supersedeLocked() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

func (s *Scheduler) run(parent context.Context, gen uint64, req Request) {
	s.mu.Lock()
	if gen != s.gen {
		s.mu.Unlock()
		return
	}
	ctx, cancel := context.WithCancel(parent)
	s.cancel = cancel
	s.timer = nil
	s.mu.Unlock()
	defer cancel()

	preview, err := s.bridge.Preview(ctx, req)

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.gen {
		return
	}
	s.cancel = nil
	if s.deliver != nil {
		s.deliver(Result{Generation: gen, Preview: preview, Err: err})
	}
}
