// Package model defines shared data structures.
package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/Vartika-Seth/Sukoon/internal/catalog"
)

// Mood bounds.
const (
	MinMood = 1
	MaxMood = 5
)

// Duration bounds in minutes.
const (
	MinDuration = 1
	MaxDuration = 60
)

// ManualEntryType labels journal entries written outside a session.
const ManualEntryType = "Manual Entry"

// RecordID identifies a session or journal record. New ids are UUIDv7,
// which sort by creation time.
type RecordID string

// NewRecordID returns a time-ordered id.
func NewRecordID() RecordID {
	id, err := uuid.NewV7()
	if err != nil {
		return RecordID(uuid.NewString())
	}
	return RecordID(id.String())
}

// UnmarshalJSON accepts both string ids and legacy numeric millisecond ids.
func (id *RecordID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = RecordID(s)
		return nil
	}
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	n, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return fmt.Errorf("record id: %w", err)
	}
	*id = RecordID(strconv.FormatFloat(n, 'f', -1, 64))
	return nil
}

// Profile is the single local user.
type Profile struct {
	Name string `json:"username" yaml:"username"`
}

// PrePrompts are the answers collected before a session.
type PrePrompts struct {
	Bringing  string `json:"bringing" yaml:"bringing"`
	Feeling   string `json:"feeling" yaml:"feeling"`
	Intention string `json:"intention" yaml:"intention"`
}

// PostPrompts are the answers collected after a session.
type PostPrompts struct {
	FeelingNow string `json:"feelingNow" yaml:"feelingNow"`
	Emotions   string `json:"emotions" yaml:"emotions"`
	OneWord    string `json:"oneWord" yaml:"oneWord"`
}

// Reflection joins the post-session answers into journal text.
func (p PostPrompts) Reflection() string {
	return p.FeelingNow + " " + p.Emotions + " " + p.OneWord
}

// Session is a completed meditation session.
type Session struct {
	ID          RecordID         `json:"id" yaml:"id"`
	Date        time.Time        `json:"date" yaml:"date"`
	Type        catalog.Practice `json:"type" yaml:"type"`
	Duration    int              `json:"duration" yaml:"duration"`
	MoodBefore  int              `json:"moodBefore" yaml:"moodBefore"`
	MoodAfter   int              `json:"moodAfter" yaml:"moodAfter"`
	PrePrompts  PrePrompts       `json:"prePrompts" yaml:"prePrompts"`
	PostPrompts PostPrompts      `json:"postPrompts" yaml:"postPrompts"`
}

// Improvement is the mood change across the session.
func (s Session) Improvement() int {
	return s.MoodAfter - s.MoodBefore
}

// JournalEntry is a reflection, either from a session or written manually.
type JournalEntry struct {
	ID         RecordID           `json:"id" yaml:"id"`
	Date       time.Time          `json:"date" yaml:"date"`
	Type       string             `json:"type" yaml:"type"`
	MoodBefore int                `json:"moodBefore" yaml:"moodBefore"`
	MoodAfter  int                `json:"moodAfter" yaml:"moodAfter"`
	Reflection string             `json:"reflection" yaml:"reflection"`
	Tags       []catalog.Practice `json:"tags" yaml:"tags"`
	Sentiment  *float64           `json:"sentiment,omitempty" yaml:"sentiment,omitempty"`
}

// Bookmark is a saved library article, keyed by title.
type Bookmark = catalog.LearnContent

// ValidMood reports whether m is on the 1-5 scale.
func ValidMood(m int) bool {
	return m >= MinMood && m <= MaxMood
}

// ClampDuration bounds a duration to the allowed minutes.
func ClampDuration(minutes int) int {
	if minutes < MinDuration {
		return MinDuration
	}
	if minutes > MaxDuration {
		return MaxDuration
	}
	return minutes
}

// MoodPoint is one entry of the mood trend series.
type MoodPoint struct {
	Index      int
	MoodBefore int
	MoodAfter  int
}

// TypeCount is the number of sessions for one practice type.
type TypeCount struct {
	Type  catalog.Practice
	Label string
	Count int
}

// Recommendation suggests the next practice.
type Recommendation struct {
	Type    catalog.Practice
	Message string
}
