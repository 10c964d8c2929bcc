// Package stats contains the progress analytics and their text rendering.
package stats

import (
	"time"

	"github.com/Vartika-Seth/Sukoon/internal/model"
)

// History is the read-only record source for analytics.
type History interface {
	Sessions() []model.Session
	Journals() []model.JournalEntry
}

// Progress is a snapshot of every derived metric.
type Progress struct {
	Sessions             int
	Journals             int
	TotalMinutes         int
	Streak               int
	AvgImprovement       float64
	MostEffective        string
	HasMostEffective     bool
	AvgSentiment         float64
	HasSentiment         bool
	Trend                []model.MoodPoint
	Distribution         []model.TypeCount
	Recommendation       model.Recommendation
	ImprovementSmoothing []float64
}

// BuildProgress computes a Progress snapshot from history as of now.
func BuildProgress(h History, now time.Time) Progress {
	sessions := h.Sessions()
	journals := h.Journals()
	p := Progress{
		Sessions:       len(sessions),
		Journals:       len(journals),
		TotalMinutes:   TotalMinutes(sessions),
		Streak:         Streak(sessions, now),
		AvgImprovement: AverageMoodImprovement(sessions),
		Trend:          MoodTrend(sessions),
		Distribution:   TypeDistribution(sessions),
		Recommendation: Recommend(sessions, journals),
	}
	p.MostEffective, p.HasMostEffective = MostEffectiveType(sessions)
	p.AvgSentiment, p.HasSentiment = AverageSentiment(journals)
	p.ImprovementSmoothing = MovingAverage(improvements(sessions), improvementWindow)
	return p
}

const improvementWindow = 5

func improvements(sessions []model.Session) []float64 {
	out := make([]float64, len(sessions))
	for i, s := range sessions {
		out[i] = float64(s.Improvement())
	}
	return out
}
