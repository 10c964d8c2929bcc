package session

import (
	"fmt"

	"github.com/Vartika-Seth/Sukoon/internal/catalog"
	"github.com/Vartika-Seth/Sukoon/internal/model"
)

// Snapshot is a read-only view of the machine for rendering.
type Snapshot struct {
	State            State
	Practice         catalog.Practice
	PracticeName     string
	GuideTitle       string
	Instruction      string
	InstructionIndex int
	Mantra           string
	Duration         int
	TimeLeft         int
	Clock            string
	Elapsed          float64
	MoodBefore       int
	MoodAfter        int
	Pre              model.PrePrompts
	Post             model.PostPrompts
	Track            int
}

// View returns the current snapshot.
func (m *Machine) View() Snapshot {
	snap := Snapshot{
		State:            m.state,
		Practice:         m.practice,
		InstructionIndex: m.instruction,
		Duration:         m.duration,
		TimeLeft:         m.timeLeft,
		Clock:            FormatClock(m.timeLeft),
		MoodBefore:       m.moodBefore,
		MoodAfter:        m.moodAfter,
		Pre:              m.pre,
		Post:             m.post,
		Track:            m.track,
	}
	if m.practice != "" {
		guide := m.practice.Guide()
		snap.PracticeName = m.practice.Name()
		snap.GuideTitle = guide.Title
		snap.Mantra = guide.Mantra
		if m.instruction < len(guide.Instructions) {
			snap.Instruction = guide.Instructions[m.instruction]
		}
	}
	if total := m.duration * 60; m.state >= Active && total > 0 {
		snap.Elapsed = float64(total-m.timeLeft) / float64(total)
	}
	return snap
}

// FormatClock renders seconds as m:ss.
func FormatClock(seconds int) string {
	seconds = max(seconds, 0)
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}
