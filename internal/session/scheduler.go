package session

import "time"

// Timer is a cancellable repeating callback.
type Timer interface {
	Stop()
}

// Scheduler runs fn every d until the returned Timer is stopped.
type Scheduler interface {
	Every(d time.Duration, fn func()) Timer
}

// ManualScheduler is a cooperative Scheduler. Nothing fires until Advance is
// called, and callbacks run on the caller's goroutine.
type ManualScheduler struct {
	now    time.Duration
	seq    int
	timers []*manualTimer
}

type manualTimer struct {
	every   time.Duration
	next    time.Duration
	seq     int
	fn      func()
	stopped bool
}

func (t *manualTimer) Stop() {
	t.stopped = true
}

// NewManualScheduler returns a scheduler at elapsed time zero.
func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{}
}

// Every registers fn to fire every d of advanced time. A non-positive d
// returns a timer that never fires.
func (s *ManualScheduler) Every(d time.Duration, fn func()) Timer {
	t := &manualTimer{every: d, next: s.now + d, seq: s.seq, fn: fn}
	s.seq++
	if d <= 0 || fn == nil {
		t.stopped = true
		return t
	}
	s.timers = append(s.timers, t)
	return t
}

// Advance moves time forward by d, firing due callbacks in time order.
// Callbacks due at the same instant fire in registration order. A callback
// may stop any timer, including its own.
func (s *ManualScheduler) Advance(d time.Duration) {
	target := s.now + d
	for {
		t := s.nextDue(target)
		if t == nil {
			break
		}
		s.now = t.next
		t.next += t.every
		t.fn()
	}
	s.now = target
	s.prune()
}

// Pending counts timers that have not been stopped.
func (s *ManualScheduler) Pending() int {
	n := 0
	for _, t := range s.timers {
		if !t.stopped {
			n++
		}
	}
	return n
}

func (s *ManualScheduler) nextDue(target time.Duration) *manualTimer {
	var due *manualTimer
	for _, t := range s.timers {
		if t.stopped || t.next > target {
			continue
		}
		if due == nil || t.next < due.next || (t.next == due.next && t.seq < due.seq) {
			due = t
		}
	}
	return due
}

func (s *ManualScheduler) prune() {
	live := s.timers[:0]
	for _, t := range s.timers {
		if !t.stopped {
			live = append(live, t)
		}
	}
	for i := len(live); i < len(s.timers); i++ {
		s.timers[i] = nil
	}
	s.timers = live
}
