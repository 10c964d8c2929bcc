// Package session drives a single meditation session from practice selection
// through the timed practice to the saved reflection.
package session

import (
	"context"
	"fmt"
	"time"

	"github.com/Vartika-Seth/Sukoon/internal/catalog"
	"github.com/Vartika-Seth/Sukoon/internal/model"
	"github.com/Vartika-Seth/Sukoon/internal/store"
)

// State is a step of the session flow.
type State int

const (
	Setup State = iota
	Pre
	Active
	Post
	Completed
)

func (s State) String() string {
	switch s {
	case Setup:
		return "setup"
	case Pre:
		return "pre"
	case Active:
		return "active"
	case Post:
		return "post"
	case Completed:
		return "completed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

const (
	// DefaultDuration is the preselected session length in minutes.
	DefaultDuration = 5
	// DefaultMood is the preselected mood before and after.
	DefaultMood = 3

	countdownInterval = time.Second
	rotationInterval  = 30 * time.Second
)

// Player is the ambient audio the session starts and stops.
type Player interface {
	Play(trackID int)
	Stop()
}

// Recorder persists finished sessions.
type Recorder interface {
	AppendSession(ctx context.Context, s model.Session) (model.Session, store.SaveResult)
	AppendJournal(ctx context.Context, j model.JournalEntry) (model.JournalEntry, store.SaveResult)
}

// Clock abstracts time for record dates.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// Deps are the collaborators of a Machine. Nil fields get inert defaults
// except Recorder, which when nil makes Complete skip persistence.
type Deps struct {
	Scheduler Scheduler
	Player    Player
	Recorder  Recorder
	Clock     Clock
	// Scorer rates the reflection text; nil leaves journal sentiment unset.
	Scorer func(text string) float64
	Track  int
}

// Completion is what Complete hands back to the caller.
type Completion struct {
	Session model.Session
	Journal model.JournalEntry
	Results []store.SaveResult
}

// Machine is the session state machine. It is not safe for concurrent use;
// the owning UI loop drives it and the scheduler.
type Machine struct {
	deps Deps

	state       State
	practice    catalog.Practice
	duration    int
	pre         model.PrePrompts
	post        model.PostPrompts
	moodBefore  int
	moodAfter   int
	timeLeft    int
	instruction int
	track       int

	countdown Timer
	rotation  Timer
}

// New returns a machine in Setup with default duration and moods.
func New(deps Deps) *Machine {
	if deps.Scheduler == nil {
		deps.Scheduler = NewManualScheduler()
	}
	if deps.Player == nil {
		deps.Player = nopPlayer{}
	}
	if deps.Clock == nil {
		deps.Clock = systemClock{}
	}
	return &Machine{
		deps:       deps,
		state:      Setup,
		duration:   DefaultDuration,
		moodBefore: DefaultMood,
		moodAfter:  DefaultMood,
		track:      deps.Track,
	}
}

// State returns the current state.
func (m *Machine) State() State {
	return m.state
}

// Practice returns the selected practice, empty before selection.
func (m *Machine) Practice() catalog.Practice {
	return m.practice
}

// CanProceed reports whether Proceed would leave setup.
func (m *Machine) CanProceed() bool {
	return m.state == Setup && m.practice != ""
}

// SelectPractice chooses the practice. During Active a different practice
// restarts the instruction rotation with the new guide.
func (m *Machine) SelectPractice(p catalog.Practice) error {
	if !p.Known() {
		return fmt.Errorf("select practice: %w: %q", catalog.ErrUnknownPractice, p)
	}
	if m.state > Active {
		return fmt.Errorf("select practice in %s: %w", m.state, ErrWrongState)
	}
	changed := p != m.practice
	m.practice = p
	if m.state == Active && changed {
		m.instruction = 0
		if m.rotation != nil {
			m.rotation.Stop()
		}
		m.rotation = m.deps.Scheduler.Every(rotationInterval, m.rotate)
	}
	return nil
}

// SetDuration sets the length in minutes, clamped to 1-60, and returns the
// stored value.
func (m *Machine) SetDuration(minutes int) (int, error) {
	if m.state != Setup && m.state != Pre {
		return m.duration, fmt.Errorf("set duration in %s: %w", m.state, ErrWrongState)
	}
	m.duration = model.ClampDuration(minutes)
	return m.duration, nil
}

// Duration returns the configured length in minutes.
func (m *Machine) Duration() int {
	return m.duration
}

// SetTrack changes the ambient track. While active the new track starts
// playing immediately.
func (m *Machine) SetTrack(id int) {
	m.track = id
	if m.state == Active {
		m.deps.Player.Play(id)
	}
}

// Track returns the ambient track id.
func (m *Machine) Track() int {
	return m.track
}

// Proceed leaves setup for the pre-session prompts.
func (m *Machine) Proceed() error {
	if m.state != Setup {
		return fmt.Errorf("proceed from %s: %w", m.state, ErrWrongState)
	}
	if m.practice == "" {
		return ErrNoPractice
	}
	m.state = Pre
	return nil
}

// SetPrePrompts stores the answers collected before the session.
func (m *Machine) SetPrePrompts(p model.PrePrompts) error {
	if m.state != Pre {
		return fmt.Errorf("set pre prompts in %s: %w", m.state, ErrWrongState)
	}
	m.pre = p
	return nil
}

// SetMoodBefore records the mood before the session.
func (m *Machine) SetMoodBefore(mood int) error {
	if m.state != Pre {
		return fmt.Errorf("set mood before in %s: %w", m.state, ErrWrongState)
	}
	if !model.ValidMood(mood) {
		return fmt.Errorf("mood %d: %w", mood, ErrMoodRange)
	}
	m.moodBefore = mood
	return nil
}

// Begin starts the countdown, the instruction rotation and ambient playback.
func (m *Machine) Begin() error {
	if m.state != Pre {
		return fmt.Errorf("begin from %s: %w", m.state, ErrWrongState)
	}
	m.timeLeft = m.duration * 60
	m.instruction = 0
	m.state = Active
	m.deps.Player.Play(m.track)
	m.countdown = m.deps.Scheduler.Every(countdownInterval, m.tick)
	m.rotation = m.deps.Scheduler.Every(rotationInterval, m.rotate)
	return nil
}

// EndEarly finishes the active session regardless of time left.
func (m *Machine) EndEarly() error {
	if m.state != Active {
		return fmt.Errorf("end early in %s: %w", m.state, ErrWrongState)
	}
	m.finish()
	return nil
}

// Abandon releases timers and audio without recording anything. The machine
// ends in Completed. It is a no-op once completed.
func (m *Machine) Abandon() {
	if m.state == Completed {
		return
	}
	if m.state == Active {
		m.stopTimers()
		m.deps.Player.Stop()
	}
	m.state = Completed
}

// SetMoodAfter records the mood after the session.
func (m *Machine) SetMoodAfter(mood int) error {
	if m.state != Post {
		return fmt.Errorf("set mood after in %s: %w", m.state, ErrWrongState)
	}
	if !model.ValidMood(mood) {
		return fmt.Errorf("mood %d: %w", mood, ErrMoodRange)
	}
	m.moodAfter = mood
	return nil
}

// SetPostPrompts stores the answers collected after the session.
func (m *Machine) SetPostPrompts(p model.PostPrompts) error {
	if m.state != Post {
		return fmt.Errorf("set post prompts in %s: %w", m.state, ErrWrongState)
	}
	m.post = p
	return nil
}

// Complete builds the session and journal records, hands them to the
// recorder and ends the flow. Save failures are reported in Results and do
// not prevent completion.
func (m *Machine) Complete(ctx context.Context) (Completion, error) {
	if m.state != Post {
		return Completion{}, fmt.Errorf("complete from %s: %w", m.state, ErrWrongState)
	}
	now := m.deps.Clock.Now()
	s := model.Session{
		Date:        now,
		Type:        m.practice,
		Duration:    m.duration,
		MoodBefore:  m.moodBefore,
		MoodAfter:   m.moodAfter,
		PrePrompts:  m.pre,
		PostPrompts: m.post,
	}
	j := model.JournalEntry{
		Date:       now,
		Type:       m.practice.Name(),
		MoodBefore: m.moodBefore,
		MoodAfter:  m.moodAfter,
		Reflection: m.post.Reflection(),
		Tags:       []catalog.Practice{m.practice},
	}
	if m.deps.Scorer != nil {
		score := m.deps.Scorer(j.Reflection)
		j.Sentiment = &score
	}

	var c Completion
	if m.deps.Recorder != nil {
		var res store.SaveResult
		s, res = m.deps.Recorder.AppendSession(ctx, s)
		c.Results = append(c.Results, res)
		j, res = m.deps.Recorder.AppendJournal(ctx, j)
		c.Results = append(c.Results, res)
	}
	c.Session, c.Journal = s, j
	m.state = Completed
	return c, nil
}

func (m *Machine) tick() {
	if m.state != Active {
		return
	}
	m.timeLeft--
	if m.timeLeft <= 0 {
		m.timeLeft = 0
		m.finish()
	}
}

func (m *Machine) rotate() {
	if m.state != Active {
		return
	}
	n := len(m.practice.Guide().Instructions)
	if n == 0 {
		return
	}
	m.instruction = (m.instruction + 1) % n
}

func (m *Machine) finish() {
	m.stopTimers()
	m.deps.Player.Stop()
	m.state = Post
}

func (m *Machine) stopTimers() {
	if m.countdown != nil {
		m.countdown.Stop()
		m.countdown = nil
	}
	if m.rotation != nil {
		m.rotation.Stop()
		m.rotation = nil
	}
}

type nopPlayer struct{}

func (nopPlayer) Play(int) {}
func (nopPlayer) Stop()    {}
