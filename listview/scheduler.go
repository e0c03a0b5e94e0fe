package listview

import "time"

// Scheduler defers a callback, standing in for the animation-delay timers the
// drawer teardown rides on. Deferred work is fire-and-forget; superseded
// callbacks are invalidated by generation checks in the state container, not
// by cancelling the scheduler.
type Scheduler interface {
	After(d time.Duration, fn func())
}

// TimerScheduler is the production Scheduler backed by time.AfterFunc.
type TimerScheduler struct{}

func (TimerScheduler) After(d time.Duration, fn func()) {
	if d <= 0 {
		fn()
		return
	}
	time.AfterFunc(d, fn)
}

// ManualScheduler queues callbacks until Fire is called. Tests use it to step
// through the close-then-reopen race deterministically.
type ManualScheduler struct {
	pending []func()
}

func (s *ManualScheduler) After(_ time.Duration, fn func()) {
	s.pending = append(s.pending, fn)
}

// Fire runs every queued callback in order and clears the queue.
func (s *ManualScheduler) Fire() {
	queued := s.pending
	s.pending = nil
	for _, fn := range queued {
		fn()
	}
}

// Pending reports how many callbacks are queued.
func (s *ManualScheduler) Pending() int { return len(s.pending) }
