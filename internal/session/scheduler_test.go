package session

import (
	"testing"
	"time"
)

func TestManualSchedulerFiresInOrder(t *testing.T) {
	s := NewManualScheduler()
	var got []string
	s.Every(2*time.Second, func() { got = append(got, "b") })
	s.Every(time.Second, func() { got = append(got, "a") })
	s.Advance(2 * time.Second)
	want := []string{"a", "b", "a"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

func TestManualSchedulerStop(t *testing.T) {
	s := NewManualScheduler()
	calls := 0
	var timer Timer
	timer = s.Every(time.Second, func() {
		calls++
		if calls == 3 {
			timer.Stop()
		}
	})
	s.Advance(10 * time.Second)
	if calls != 3 {
		t.Fatalf("expected 3 calls, got %d", calls)
	}
	if s.Pending() != 0 {
		t.Fatalf("expected no pending timers, got %d", s.Pending())
	}
}

func TestManualSchedulerPartialAdvance(t *testing.T) {
	s := NewManualScheduler()
	calls := 0
	s.Every(time.Second, func() { calls++ })
	s.Advance(500 * time.Millisecond)
	if calls != 0 {
		t.Fatalf("expected no calls yet, got %d", calls)
	}
	s.Advance(500 * time.Millisecond)
	if calls != 1 {
		t.Fatalf("expected one call, got %d", calls)
	}
	if s.Pending() != 1 {
		t.Fatalf("expected one pending timer, got %d", s.Pending())
	}
}

func TestManualSchedulerIgnoresNonPositiveInterval(t *testing.T) {
	s := NewManualScheduler()
	s.Every(0, func() { t.Fatalf("zero interval timer fired") })
	s.Advance(time.Minute)
	if s.Pending() != 0 {
		t.Fatalf("expected no pending timers")
	}
}
