package history

import "time"

// Scheduler arms the coalescing window. Schedule replaces any pending
// callback; Cancel drops it. Implementations decide how the callback gets
// back onto the editor's event flow.
type Scheduler interface {
	Schedule(d time.Duration, fn func())
	Cancel()
}

// TimerScheduler drives the window with time.AfterFunc. The callback
// fires on a background goroutine, so this implementation suits callers
// whose event flow is single-threaded anyway (the wasm bridge) or who
// wrap the callback themselves.
type TimerScheduler struct {
	timer *time.Timer
}

func NewTimerScheduler() *TimerScheduler {
	return &TimerScheduler{}
}

func (s *TimerScheduler) Schedule(d time.Duration, fn func()) {
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(d, fn)
}

func (s *TimerScheduler) Cancel() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

// ManualScheduler holds the callback until Fire is called, giving tests
// and synchronous drivers full control over when the window expires.
type ManualScheduler struct {
	pending func()
}

func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{}
}

func (s *ManualScheduler) Schedule(d time.Duration, fn func()) {
	s.pending = fn
}

func (s *ManualScheduler) Cancel() {
	s.pending = nil
}

// Fire runs the pending callback, if any, exactly once.
func (s *ManualScheduler) Fire() {
	if s.pending == nil {
		return
	}
	fn := s.pending
	s.pending = nil
	fn()
}

// Pending reports whether a callback is armed.
func (s *ManualScheduler) Pending() bool {
	return s.pending != nil
}
