// Package tui provides the Bubble Tea meditation flow.
package tui

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Vartika-Seth/Sukoon/internal/audio"
	"github.com/Vartika-Seth/Sukoon/internal/catalog"
	"github.com/Vartika-Seth/Sukoon/internal/config"
	"github.com/Vartika-Seth/Sukoon/internal/model"
	"github.com/Vartika-Seth/Sukoon/internal/sentiment"
	"github.com/Vartika-Seth/Sukoon/internal/session"
	"github.com/Vartika-Seth/Sukoon/internal/stats"
	"github.com/Vartika-Seth/Sukoon/internal/store"
)

const (
	tickInterval = time.Second
	volumeStep   = 0.1
	// fraction of a second sampled for the level meter on each tick
	meterWindow = 10
	meterWidth  = 20
)

var (
	titleStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	textStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	accentStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	mutedStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	mantraStyle    = mutedStyle.Copy().Italic(true)
	errorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	selectedStyle  = accentStyle.Copy().Bold(true)
	clockStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true).Padding(0, 2).Border(lipgloss.RoundedBorder(), true).BorderForeground(lipgloss.Color("#C89A3A"))
	footerStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	instructionBox = lipgloss.NewStyle().Padding(1, 2).Border(lipgloss.RoundedBorder(), true).BorderForeground(lipgloss.Color("#4A4A4A"))
)

var (
	prePromptLabels  = []string{"What brings you here today?", "How do you feel right now?", "What would you like to release or invite?"}
	postPromptLabels = []string{"How do you feel now?", "What emotions surfaced during the session?", "One word to describe your mind right now"}
)

type tickMsg struct {
	gen int
}

// Options configure a Model. Records is required.
type Options struct {
	Records  *store.Records
	Synth    *audio.Synth
	Settings config.Settings
	Picker   *catalog.Picker
	Now      func() time.Time
}

// Model implements the Bubble Tea meditation UI.
type Model struct {
	records *store.Records
	synth   *audio.Synth
	ambient *ambient
	sched   *session.ManualScheduler
	machine *session.Machine
	picker  *catalog.Picker
	now     func() time.Time

	width  int
	height int

	practices []catalog.Practice
	cursor    int
	recommend model.Recommendation

	inputs []textinput.Model
	field  int
	mood   int

	tickGen    int
	level      float64
	completion *session.Completion
	quote      string
	errMsg     string
}

// ambient applies the chosen volume every time a track starts.
type ambient struct {
	player audio.Player
	volume float64
}

func (a *ambient) Play(trackID int) {
	a.player.Play(trackID)
	a.player.SetVolume(a.volume)
}

func (a *ambient) Stop() {
	a.player.Stop()
}

// NewModel constructs the meditation flow model.
func NewModel(opts Options) *Model {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Synth == nil {
		opts.Synth = audio.NewSynth(audio.DefaultSampleRate)
	}
	if opts.Picker == nil {
		opts.Picker = catalog.NewPicker()
	}
	m := &Model{
		records:   opts.Records,
		synth:     opts.Synth,
		ambient:   &ambient{player: opts.Synth, volume: opts.Settings.Volume},
		sched:     session.NewManualScheduler(),
		picker:    opts.Picker,
		now:       opts.Now,
		practices: catalog.Practices(),
		mood:      session.DefaultMood,
	}
	var scorer func(string) float64
	if opts.Settings.AutoScore {
		scorer = sentiment.Score
	}
	m.machine = session.New(session.Deps{
		Scheduler: m.sched,
		Player:    m.ambient,
		Recorder:  opts.Records,
		Clock:     clockFunc(opts.Now),
		Scorer:    scorer,
		Track:     opts.Settings.Track,
	})
	if opts.Settings.Duration > 0 {
		if _, err := m.machine.SetDuration(opts.Settings.Duration); err != nil {
			logErrf("failed to set duration: %v\n", err)
		}
	}
	m.recommend = stats.Recommend(opts.Records.Sessions(), opts.Records.Journals())
	for i, p := range m.practices {
		if p == m.recommend.Type {
			m.cursor = i
		}
	}
	return m
}

type clockFunc func() time.Time

func (f clockFunc) Now() time.Time { return f() }

// Machine exposes the underlying session state.
func (m *Model) Machine() *session.Machine {
	return m.machine
}

// Completion returns the saved session once the flow is done.
func (m *Model) Completion() (session.Completion, bool) {
	if m.completion == nil {
		return session.Completion{}, false
	}
	return *m.completion, true
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tickMsg:
		return m.handleTick(msg)
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.machine.Abandon()
			return m, tea.Quit
		}
		switch m.machine.State() {
		case session.Setup:
			return m.updateSetup(msg)
		case session.Pre:
			return m.updatePrompts(msg, m.beginSession)
		case session.Active:
			return m.updateActive(msg)
		case session.Post:
			return m.updatePrompts(msg, m.completeSession)
		default:
			return m, tea.Quit
		}
	}
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	var content string
	switch m.machine.State() {
	case session.Setup:
		content = m.renderSetup()
	case session.Pre:
		content = m.renderPrompts("Before We Begin", prePromptLabels, "How do you feel right now?")
	case session.Active:
		content = m.renderActive()
	case session.Post:
		content = m.renderPrompts("Reflection Time", postPromptLabels, "How do you feel now?")
	default:
		content = m.renderDone()
	}
	if m.errMsg != "" {
		content += "\n\n" + errorStyle.Render(m.errMsg)
	}
	if m.width == 0 || m.height == 0 {
		return content
	}
	contentWidth := m.contentWidth()
	content = lipgloss.NewStyle().Width(contentWidth).Render(content)
	footer := m.renderFooter()
	if footer == "" || m.height < 3 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
	}
	body := lipgloss.Place(m.width, m.height-1, lipgloss.Center, lipgloss.Center, content)
	footerLine := lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, footer)
	return body + "\n" + footerLine
}

func (m *Model) contentWidth() int {
	if m.width <= 0 {
		return 0
	}
	return max(int(float64(m.width)*0.70), 1)
}

func (m *Model) updateSetup(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc":
		m.machine.Abandon()
		return m, tea.Quit
	case "up", "k":
		m.cursor = (m.cursor - 1 + len(m.practices)) % len(m.practices)
	case "down", "j":
		m.cursor = (m.cursor + 1) % len(m.practices)
	case "left", "-":
		m.adjustDuration(-1)
	case "right", "+", "=":
		m.adjustDuration(1)
	case "pgdown":
		m.adjustDuration(-5)
	case "pgup":
		m.adjustDuration(5)
	case "enter":
		if err := m.machine.SelectPractice(m.practices[m.cursor]); err != nil {
			m.errMsg = err.Error()
			return m, nil
		}
		if err := m.machine.Proceed(); err != nil {
			m.errMsg = err.Error()
			return m, nil
		}
		m.errMsg = ""
		return m, m.startPrompts()
	}
	return m, nil
}

func (m *Model) adjustDuration(delta int) {
	if _, err := m.machine.SetDuration(m.machine.Duration() + delta); err != nil {
		m.errMsg = err.Error()
	}
}

// startPrompts resets the text inputs and mood for the current step.
func (m *Model) startPrompts() tea.Cmd {
	m.inputs = make([]textinput.Model, 3)
	for i := range m.inputs {
		input := textinput.New()
		input.Prompt = "> "
		input.CharLimit = 0
		input.Cursor.SetMode(cursor.CursorBlink)
		if m.width > 0 {
			input.Width = max(10, m.contentWidth()-4)
		}
		m.inputs[i] = input
	}
	if m.machine.State() == session.Post {
		m.inputs[2].Placeholder = "e.g., peaceful, clear, light..."
		m.inputs[1].Placeholder = "Describe what came up for you..."
	}
	m.mood = session.DefaultMood
	return m.setField(0)
}

// fields are the three text inputs followed by the mood selector.
func (m *Model) fieldCount() int {
	return len(m.inputs) + 1
}

func (m *Model) moodField() bool {
	return m.field == len(m.inputs)
}

func (m *Model) setField(idx int) tea.Cmd {
	count := m.fieldCount()
	idx = (idx%count + count) % count
	m.field = idx
	var cmd tea.Cmd
	for i := range m.inputs {
		if i == idx {
			cmd = m.inputs[i].Focus()
		} else {
			m.inputs[i].Blur()
		}
	}
	return cmd
}

func (m *Model) updatePrompts(msg tea.KeyMsg, submit func() tea.Cmd) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		// A finished practice is only left by saving it.
		if m.machine.State() == session.Post {
			return m, nil
		}
		m.machine.Abandon()
		return m, tea.Quit
	case tea.KeyTab, tea.KeyDown:
		return m, m.setField(m.field + 1)
	case tea.KeyShiftTab, tea.KeyUp:
		return m, m.setField(m.field - 1)
	case tea.KeyEnter:
		return m, submit()
	}
	if m.moodField() {
		switch msg.String() {
		case "left", "h":
			m.mood = max(model.MinMood, m.mood-1)
		case "right", "l":
			m.mood = min(model.MaxMood, m.mood+1)
		case "1", "2", "3", "4", "5":
			m.mood = int(msg.Runes[0] - '0')
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.inputs[m.field], cmd = m.inputs[m.field].Update(msg)
	return m, cmd
}

func (m *Model) values() [3]string {
	var out [3]string
	for i := range m.inputs {
		out[i] = strings.TrimSpace(m.inputs[i].Value())
	}
	return out
}

func (m *Model) beginSession() tea.Cmd {
	v := m.values()
	if err := m.machine.SetPrePrompts(model.PrePrompts{Bringing: v[0], Feeling: v[1], Intention: v[2]}); err != nil {
		m.errMsg = err.Error()
		return nil
	}
	if err := m.machine.SetMoodBefore(m.mood); err != nil {
		m.errMsg = err.Error()
		return nil
	}
	if err := m.machine.Begin(); err != nil {
		m.errMsg = err.Error()
		return nil
	}
	m.errMsg = ""
	m.tickGen++
	return m.tick()
}

func (m *Model) tick() tea.Cmd {
	gen := m.tickGen
	return tea.Tick(tickInterval, func(time.Time) tea.Msg {
		return tickMsg{gen: gen}
	})
}

func (m *Model) handleTick(msg tickMsg) (tea.Model, tea.Cmd) {
	if msg.gen != m.tickGen || m.machine.State() != session.Active {
		return m, nil
	}
	m.sched.Advance(tickInterval)
	if m.machine.State() != session.Active {
		m.level = 0
		return m, m.startPrompts()
	}
	m.level = m.synth.Level(m.synth.SampleRate() / meterWindow)
	return m, m.tick()
}

func (m *Model) updateActive(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc":
		m.machine.Abandon()
		return m, tea.Quit
	case "e", "enter":
		if err := m.machine.EndEarly(); err != nil {
			m.errMsg = err.Error()
			return m, nil
		}
		m.tickGen++
		m.level = 0
		return m, m.startPrompts()
	case "n":
		next := m.practices[(m.practiceIndex()+1)%len(m.practices)]
		if err := m.machine.SelectPractice(next); err != nil {
			m.errMsg = err.Error()
		}
	case "t":
		tracks := catalog.Tracks()
		next := tracks[0].ID
		for i, tr := range tracks {
			if tr.ID == m.machine.Track() {
				next = tracks[(i+1)%len(tracks)].ID
			}
		}
		m.machine.SetTrack(next)
	case "+", "=", "right":
		m.setVolume(m.ambient.volume + volumeStep)
	case "-", "left":
		m.setVolume(m.ambient.volume - volumeStep)
	}
	return m, nil
}

func (m *Model) practiceIndex() int {
	for i, p := range m.practices {
		if p == m.machine.Practice() {
			return i
		}
	}
	return 0
}

func (m *Model) setVolume(v float64) {
	v = max(0, min(v, 1))
	m.ambient.volume = v
	m.synth.SetVolume(v)
}

func (m *Model) completeSession() tea.Cmd {
	v := m.values()
	if err := m.machine.SetMoodAfter(m.mood); err != nil {
		m.errMsg = err.Error()
		return nil
	}
	if err := m.machine.SetPostPrompts(model.PostPrompts{FeelingNow: v[0], Emotions: v[1], OneWord: v[2]}); err != nil {
		m.errMsg = err.Error()
		return nil
	}
	c, err := m.machine.Complete(context.Background())
	if err != nil {
		m.errMsg = err.Error()
		return nil
	}
	m.completion = &c
	m.quote = m.picker.Affirmation()
	m.errMsg = ""
	for _, res := range c.Results {
		if !res.OK() {
			m.errMsg = fmt.Sprintf("Could not save %s: %v", res.Key, res.Err)
			break
		}
	}
	return nil
}

func (m *Model) renderSetup() string {
	lines := []string{titleStyle.Render("Choose Your Practice"), ""}
	for i, p := range m.practices {
		label := fmt.Sprintf("%s %-18s %s", p.Icon(), p.Name(), mutedStyle.Render(p.Description()))
		if p == m.recommend.Type {
			label += " " + accentStyle.Render("(recommended)")
		}
		if i == m.cursor {
			lines = append(lines, selectedStyle.Render("> ")+label)
			continue
		}
		lines = append(lines, "  "+label)
	}
	lines = append(lines, "",
		fmt.Sprintf("Duration: %s minutes", selectedStyle.Render(fmt.Sprintf("%d", m.machine.Duration()))),
		"",
		mutedStyle.Render(wrapText(m.recommend.Message, m.contentWidth())),
	)
	return strings.Join(lines, "\n")
}

func (m *Model) renderPrompts(title string, labels []string, moodLabel string) string {
	lines := []string{titleStyle.Render(title), ""}
	if m.machine.State() == session.Post {
		lines = append(lines, accentStyle.Render("Session Complete!"), "")
	}
	for i, input := range m.inputs {
		label := labels[i]
		if i == m.field {
			label = selectedStyle.Render(label)
		} else {
			label = textStyle.Render(label)
		}
		lines = append(lines, label, input.View(), "")
	}
	label := textStyle.Render(moodLabel + " (mood)")
	if m.moodField() {
		label = selectedStyle.Render(moodLabel + " (mood)")
	}
	lines = append(lines, label, renderMoods(m.mood))
	return strings.Join(lines, "\n")
}

func renderMoods(selected int) string {
	parts := make([]string, 0, model.MaxMood)
	for v := model.MinMood; v <= model.MaxMood; v++ {
		mood, ok := catalog.MoodFor(v)
		label := fmt.Sprintf("%d", v)
		if ok {
			label = fmt.Sprintf("%s %s", mood.Emoji, mood.Label)
		}
		if v == selected {
			parts = append(parts, selectedStyle.Render("["+label+"]"))
			continue
		}
		parts = append(parts, mutedStyle.Render(" "+label+" "))
	}
	return strings.Join(parts, " ")
}

func (m *Model) renderActive() string {
	snap := m.machine.View()
	width := m.contentWidth()
	instruction := snap.Instruction
	if width > 8 {
		instruction = wrapText(instruction, width-8)
	}
	lines := []string{
		snap.Practice.Icon() + " " + titleStyle.Render(snap.GuideTitle),
		mutedStyle.Render(snap.Practice.Description()),
		"",
		clockStyle.Render(snap.Clock),
		renderProgress(snap.Elapsed, meterWidth),
		"",
		instructionBox.Render(textStyle.Render(instruction)),
		mantraStyle.Render(snap.Mantra),
		"",
		m.renderAmbient(snap.Track),
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderAmbient(trackID int) string {
	track, _ := catalog.TrackByID(trackID)
	return mutedStyle.Render(fmt.Sprintf("%s %s  vol %d%%  ", track.Emoji, track.Name, int(m.ambient.volume*100+0.5))) +
		accentStyle.Render(renderMeter(m.level, meterWidth))
}

func renderProgress(frac float64, width int) string {
	filled := int(frac*float64(width) + 0.5)
	filled = max(0, min(filled, width))
	return accentStyle.Render(strings.Repeat("━", filled)) + mutedStyle.Render(strings.Repeat("─", width-filled))
}

// renderMeter scales an RMS level so the loudest track fills most of the bar.
func renderMeter(level float64, width int) string {
	filled := int(level*4*float64(width) + 0.5)
	filled = max(0, min(filled, width))
	return strings.Repeat("▮", filled) + strings.Repeat("▯", width-filled)
}

func (m *Model) renderDone() string {
	if m.completion == nil {
		return mutedStyle.Render("Session ended without saving.")
	}
	s := m.completion.Session
	lines := []string{
		titleStyle.Render("✨ Session saved"),
		"",
		fmt.Sprintf("%s %s · %d min · mood %d → %d", s.Type.Icon(), s.Type.Name(), s.Duration, s.MoodBefore, s.MoodAfter),
	}
	if j := m.completion.Journal; j.Sentiment != nil {
		lines = append(lines, mutedStyle.Render(fmt.Sprintf("Reflection tone %.1f / 5", *j.Sentiment)))
	}
	if m.records != nil {
		sessions := m.records.Sessions()
		lines = append(lines, mutedStyle.Render(fmt.Sprintf("Day streak %d · %d minutes total", stats.Streak(sessions, m.now()), stats.TotalMinutes(sessions))))
	}
	lines = append(lines, "", mantraStyle.Render(wrapText("\""+m.quote+"\"", m.contentWidth())), "", mutedStyle.Render("Press any key to return home."))
	return strings.Join(lines, "\n")
}

func (m *Model) renderFooter() string {
	var segments []string
	switch m.machine.State() {
	case session.Setup:
		segments = []string{"up/down: practice", "left/right: duration", "enter: continue", "q: quit"}
	case session.Pre:
		segments = []string{"tab: next field", "left/right: mood", "enter: continue", "esc: quit"}
	case session.Post:
		segments = []string{"tab: next field", "left/right: mood", "enter: save"}
	case session.Active:
		snap := m.machine.View()
		segments = []string{
			fmt.Sprintf("Progress %d%%", int(snap.Elapsed*100)),
			fmt.Sprintf("Step %d/%d", snap.InstructionIndex+1, len(snap.Practice.Guide().Instructions)),
			"e: end early", "n: next practice", "t: track", "+/-: volume",
		}
	default:
		return ""
	}
	return footerStyle.Render(strings.Join(segments, "  "))
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
