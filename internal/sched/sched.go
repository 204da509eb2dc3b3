// Package sched runs delayed, cancellable callbacks. The opponent's
// "thinking" delay is a presentation nicety rather than a correctness
// requirement, so the scheduler is built on quartz and tests drive it with a
// mock clock at zero delay.
package sched

import (
	"sync"
	"time"

	"github.com/coder/quartz"
)

// Scheduler schedules single-shot callbacks on a clock
type Scheduler struct {
	clock quartz.Clock

	mu      sync.Mutex
	pending *quartz.Timer
}

// New creates a scheduler on the given clock. A nil clock uses real time.
func New(clock quartz.Clock) *Scheduler {
	if clock == nil {
		clock = quartz.NewReal()
	}
	return &Scheduler{clock: clock}
}

// Schedule runs fn after the delay, replacing any pending callback. A
// pending callback that has not fired yet is discarded without effect.
func (s *Scheduler) Schedule(delay time.Duration, fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pending != nil {
		s.pending.Stop()
	}
	s.pending = s.clock.AfterFunc(delay, fn)
}

// Cancel discards the pending callback, if any
func (s *Scheduler) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pending != nil {
		s.pending.Stop()
		s.pending = nil
	}
}
