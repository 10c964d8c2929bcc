package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Vartika-Seth/Sukoon/internal/catalog"
	"github.com/Vartika-Seth/Sukoon/internal/model"
	"github.com/Vartika-Seth/Sukoon/internal/store"
)

type fakePlayer struct {
	played []int
	stops  int
}

func (p *fakePlayer) Play(id int) { p.played = append(p.played, id) }
func (p *fakePlayer) Stop()       { p.stops++ }

type fakeRecorder struct {
	sessions []model.Session
	journals []model.JournalEntry
	err      error
}

func (r *fakeRecorder) AppendSession(_ context.Context, s model.Session) (model.Session, store.SaveResult) {
	s.ID = "s1"
	r.sessions = append(r.sessions, s)
	return s, store.SaveResult{Key: store.KeySessions, Err: r.err}
}

func (r *fakeRecorder) AppendJournal(_ context.Context, j model.JournalEntry) (model.JournalEntry, store.SaveResult) {
	j.ID = "j1"
	r.journals = append(r.journals, j)
	return j, store.SaveResult{Key: store.KeyJournals, Err: r.err}
}

type fixedClock time.Time

func (c fixedClock) Now() time.Time { return time.Time(c) }

type harness struct {
	m      *Machine
	sched  *ManualScheduler
	player *fakePlayer
	rec    *fakeRecorder
}

func newHarness() harness {
	h := harness{
		sched:  NewManualScheduler(),
		player: &fakePlayer{},
		rec:    &fakeRecorder{},
	}
	h.m = New(Deps{
		Scheduler: h.sched,
		Player:    h.player,
		Recorder:  h.rec,
		Clock:     fixedClock(time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)),
		Track:     2,
	})
	return h
}

func (h harness) begin(t *testing.T, p catalog.Practice, minutes int) {
	t.Helper()
	if err := h.m.SelectPractice(p); err != nil {
		t.Fatalf("SelectPractice failed: %v", err)
	}
	if _, err := h.m.SetDuration(minutes); err != nil {
		t.Fatalf("SetDuration failed: %v", err)
	}
	if err := h.m.Proceed(); err != nil {
		t.Fatalf("Proceed failed: %v", err)
	}
	if err := h.m.Begin(); err != nil {
		t.Fatalf("Begin failed: %v", err)
	}
}

func TestProceedRequiresPractice(t *testing.T) {
	h := newHarness()
	if h.m.CanProceed() {
		t.Fatalf("expected CanProceed to be false without a practice")
	}
	if err := h.m.Proceed(); !errors.Is(err, ErrNoPractice) {
		t.Fatalf("expected ErrNoPractice, got %v", err)
	}
	if h.m.State() != Setup {
		t.Fatalf("expected to stay in setup, got %s", h.m.State())
	}
	if err := h.m.SelectPractice("zen"); !errors.Is(err, catalog.ErrUnknownPractice) {
		t.Fatalf("expected unknown practice error, got %v", err)
	}
}

func TestDefaults(t *testing.T) {
	h := newHarness()
	snap := h.m.View()
	if snap.Duration != DefaultDuration || snap.MoodBefore != DefaultMood || snap.MoodAfter != DefaultMood {
		t.Fatalf("unexpected defaults: %+v", snap)
	}
}

func TestSetDurationClamps(t *testing.T) {
	h := newHarness()
	tests := []struct{ in, want int }{{0, 1}, {-5, 1}, {61, 60}, {20, 20}}
	for _, tt := range tests {
		got, err := h.m.SetDuration(tt.in)
		if err != nil {
			t.Fatalf("SetDuration(%d) failed: %v", tt.in, err)
		}
		if got != tt.want || h.m.Duration() != tt.want {
			t.Fatalf("SetDuration(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestSetMoodBeforeRange(t *testing.T) {
	h := newHarness()
	_ = h.m.SelectPractice(catalog.Calm)
	_ = h.m.Proceed()
	if err := h.m.SetMoodBefore(6); !errors.Is(err, ErrMoodRange) {
		t.Fatalf("expected ErrMoodRange, got %v", err)
	}
	if err := h.m.SetMoodBefore(0); !errors.Is(err, ErrMoodRange) {
		t.Fatalf("expected ErrMoodRange, got %v", err)
	}
	if err := h.m.SetMoodBefore(4); err != nil {
		t.Fatalf("SetMoodBefore failed: %v", err)
	}
	if h.m.View().MoodBefore != 4 {
		t.Fatalf("expected mood 4")
	}
}

func TestBeginStartsCountdownAndAudio(t *testing.T) {
	h := newHarness()
	h.begin(t, catalog.Calm, 1)
	snap := h.m.View()
	if snap.State != Active || snap.TimeLeft != 60 || snap.Clock != "1:00" {
		t.Fatalf("unexpected active snapshot: %+v", snap)
	}
	if len(h.player.played) != 1 || h.player.played[0] != 2 {
		t.Fatalf("expected track 2 to play, got %v", h.player.played)
	}
	if h.sched.Pending() != 2 {
		t.Fatalf("expected countdown and rotation timers, got %d", h.sched.Pending())
	}
}

func TestCountdownReachesPostExactlyOnce(t *testing.T) {
	h := newHarness()
	h.begin(t, catalog.Calm, 1)
	for i := 0; i < 59; i++ {
		h.sched.Advance(time.Second)
		if h.m.View().TimeLeft < 0 {
			t.Fatalf("time left went negative")
		}
	}
	if h.m.State() != Active || h.m.View().TimeLeft != 1 {
		t.Fatalf("expected 1s left while active, got %+v", h.m.View())
	}
	h.sched.Advance(time.Second)
	if h.m.State() != Post {
		t.Fatalf("expected post after 60 ticks, got %s", h.m.State())
	}
	if h.player.stops != 1 {
		t.Fatalf("expected audio stopped once, got %d", h.player.stops)
	}
	if h.sched.Pending() != 0 {
		t.Fatalf("expected no pending timers, got %d", h.sched.Pending())
	}
	h.sched.Advance(time.Minute)
	if h.m.State() != Post || h.player.stops != 1 || h.m.View().TimeLeft != 0 {
		t.Fatalf("expected no further transitions, got %+v", h.m.View())
	}
}

func TestRotationAdvancesEveryThirtySeconds(t *testing.T) {
	h := newHarness()
	h.begin(t, catalog.Focus, 10)
	guide := catalog.Focus.Guide()
	if h.m.View().Instruction != guide.Instructions[0] {
		t.Fatalf("expected first instruction")
	}
	h.sched.Advance(29 * time.Second)
	if h.m.View().InstructionIndex != 0 {
		t.Fatalf("rotation fired early")
	}
	h.sched.Advance(time.Second)
	if h.m.View().InstructionIndex != 1 {
		t.Fatalf("expected index 1 after 30s, got %d", h.m.View().InstructionIndex)
	}
	n := len(guide.Instructions)
	h.sched.Advance(time.Duration(n-1) * rotationInterval)
	if h.m.View().InstructionIndex != 0 {
		t.Fatalf("expected rotation to wrap, got %d", h.m.View().InstructionIndex)
	}
}

func TestPracticeChangeRestartsRotation(t *testing.T) {
	h := newHarness()
	h.begin(t, catalog.Calm, 10)
	h.sched.Advance(75 * time.Second)
	if h.m.View().InstructionIndex != 2 {
		t.Fatalf("expected index 2, got %d", h.m.View().InstructionIndex)
	}
	if err := h.m.SelectPractice(catalog.Sleep); err != nil {
		t.Fatalf("SelectPractice failed: %v", err)
	}
	snap := h.m.View()
	if snap.InstructionIndex != 0 || snap.Instruction != catalog.Sleep.Guide().Instructions[0] {
		t.Fatalf("expected rotation restart, got %+v", snap)
	}
	h.sched.Advance(15 * time.Second)
	if h.m.View().InstructionIndex != 0 {
		t.Fatalf("expected a fresh 30s period after the change")
	}
	h.sched.Advance(15 * time.Second)
	if h.m.View().InstructionIndex != 1 {
		t.Fatalf("expected index 1, got %d", h.m.View().InstructionIndex)
	}
	if h.sched.Pending() != 2 {
		t.Fatalf("expected the old rotation to be cancelled, got %d pending", h.sched.Pending())
	}
}

func TestEndEarly(t *testing.T) {
	h := newHarness()
	h.begin(t, catalog.Calm, 30)
	h.sched.Advance(10 * time.Second)
	if err := h.m.EndEarly(); err != nil {
		t.Fatalf("EndEarly failed: %v", err)
	}
	if h.m.State() != Post || h.player.stops != 1 || h.sched.Pending() != 0 {
		t.Fatalf("unexpected state after EndEarly: %s stops=%d pending=%d", h.m.State(), h.player.stops, h.sched.Pending())
	}
	if err := h.m.EndEarly(); !errors.Is(err, ErrWrongState) {
		t.Fatalf("expected ErrWrongState, got %v", err)
	}
}

func TestAbandonReleasesResources(t *testing.T) {
	h := newHarness()
	h.begin(t, catalog.Calm, 5)
	h.m.Abandon()
	if h.sched.Pending() != 0 || h.player.stops != 1 {
		t.Fatalf("expected timers cancelled and audio stopped")
	}
	if h.m.State() != Completed {
		t.Fatalf("expected completed, got %s", h.m.State())
	}
	h.m.Abandon()
	if h.player.stops != 1 {
		t.Fatalf("expected Abandon to be idempotent")
	}
	if len(h.rec.sessions) != 0 {
		t.Fatalf("expected nothing recorded")
	}
}

func TestCompleteBuildsRecords(t *testing.T) {
	h := newHarness()
	h.m.deps.Scorer = func(string) float64 { return 4.5 }
	_ = h.m.SelectPractice(catalog.Gratitude)
	_ = h.m.Proceed()
	pre := model.PrePrompts{Bringing: "work", Feeling: "tense", Intention: "rest"}
	if err := h.m.SetPrePrompts(pre); err != nil {
		t.Fatalf("SetPrePrompts failed: %v", err)
	}
	_ = h.m.SetMoodBefore(2)
	_ = h.m.Begin()
	_ = h.m.EndEarly()
	if err := h.m.SetMoodAfter(4); err != nil {
		t.Fatalf("SetMoodAfter failed: %v", err)
	}
	post := model.PostPrompts{FeelingNow: "lighter", Emotions: "relief", OneWord: "calm"}
	if err := h.m.SetPostPrompts(post); err != nil {
		t.Fatalf("SetPostPrompts failed: %v", err)
	}
	c, err := h.m.Complete(context.Background())
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}
	if h.m.State() != Completed {
		t.Fatalf("expected completed, got %s", h.m.State())
	}
	s := c.Session
	if s.ID != "s1" || s.Type != catalog.Gratitude || s.Duration != DefaultDuration || s.MoodBefore != 2 || s.MoodAfter != 4 {
		t.Fatalf("unexpected session: %+v", s)
	}
	if s.PrePrompts != pre || s.PostPrompts != post {
		t.Fatalf("expected prompts to be carried: %+v", s)
	}
	j := c.Journal
	if j.Reflection != "lighter relief calm" || j.Type != "Gratitude" {
		t.Fatalf("unexpected journal: %+v", j)
	}
	if len(j.Tags) != 1 || j.Tags[0] != catalog.Gratitude {
		t.Fatalf("unexpected tags: %v", j.Tags)
	}
	if j.Sentiment == nil || *j.Sentiment != 4.5 {
		t.Fatalf("expected sentiment 4.5, got %v", j.Sentiment)
	}
	if !j.Date.Equal(s.Date) || s.Date.Hour() != 8 {
		t.Fatalf("expected clock date on both records")
	}
	if len(c.Results) != 2 || !c.Results[0].OK() || !c.Results[1].OK() {
		t.Fatalf("unexpected results: %+v", c.Results)
	}
	if _, err := h.m.Complete(context.Background()); !errors.Is(err, ErrWrongState) {
		t.Fatalf("expected ErrWrongState on second Complete, got %v", err)
	}
}

func TestCompleteReportsSaveFailure(t *testing.T) {
	h := newHarness()
	h.rec.err = errors.New("disk full")
	h.begin(t, catalog.Calm, 1)
	_ = h.m.EndEarly()
	c, err := h.m.Complete(context.Background())
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}
	if c.Results[0].OK() || c.Results[1].OK() {
		t.Fatalf("expected failed results")
	}
	if c.Journal.Sentiment != nil {
		t.Fatalf("expected no sentiment without a scorer")
	}
	if h.m.State() != Completed {
		t.Fatalf("expected completed despite save failure")
	}
}

func TestSetTrackWhileActive(t *testing.T) {
	h := newHarness()
	h.m.SetTrack(5)
	if len(h.player.played) != 0 {
		t.Fatalf("expected no playback before begin")
	}
	h.begin(t, catalog.Calm, 1)
	h.m.SetTrack(3)
	if len(h.player.played) != 2 || h.player.played[1] != 3 {
		t.Fatalf("expected track switch, got %v", h.player.played)
	}
}

func TestFormatClock(t *testing.T) {
	tests := map[int]string{0: "0:00", 59: "0:59", 60: "1:00", 3600: "60:00", -3: "0:00"}
	for in, want := range tests {
		if got := FormatClock(in); got != want {
			t.Fatalf("FormatClock(%d) = %q, want %q", in, got, want)
		}
	}
}
