package stats

import (
	"math"
	"sort"
	"time"

	"github.com/Vartika-Seth/Sukoon/internal/catalog"
	"github.com/Vartika-Seth/Sukoon/internal/model"
)

const (
	streakWindowDays = 30
	moodTrendSize    = 10
	recommendWindow  = 5
	healingThreshold = 2.5
	calmThreshold    = 3.0
	welcomeMessage   = "Welcome to your mindfulness journey. Let's start with a calming session to center yourself."
	healingMessage   = "I sense you've been carrying some weight. A healing session might help you release and restore."
	calmMessage      = "You've felt anxious lately. Let's cultivate some calm together."
	balanceMessage   = "Maintain your equilibrium with a balanced meditation today."
)

// TotalMinutes sums session durations.
func TotalMinutes(sessions []model.Session) int {
	total := 0
	for _, s := range sessions {
		total += s.Duration
	}
	return total
}

// Streak counts consecutive calendar days with at least one session, walking
// back from today over at most 30 days. A missing session today does not end
// the streak; any other missing day does. Days are compared in today's location.
func Streak(sessions []model.Session, today time.Time) int {
	if len(sessions) == 0 {
		return 0
	}
	loc := today.Location()
	days := make(map[string]struct{}, len(sessions))
	for _, s := range sessions {
		days[dayKey(s.Date.In(loc))] = struct{}{}
	}
	y, m, d := today.Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, loc)
	streak := 0
	for i := 0; i < streakWindowDays; i++ {
		day := start.AddDate(0, 0, -i)
		if _, ok := days[dayKey(day)]; ok {
			streak++
			continue
		}
		if i > 0 {
			break
		}
	}
	return streak
}

func dayKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// MoodTrend returns the last ten sessions as 1-indexed before/after points,
// in the order given.
func MoodTrend(sessions []model.Session) []model.MoodPoint {
	recent := lastSessions(sessions, moodTrendSize)
	points := make([]model.MoodPoint, len(recent))
	for i, s := range recent {
		points[i] = model.MoodPoint{Index: i + 1, MoodBefore: s.MoodBefore, MoodAfter: s.MoodAfter}
	}
	return points
}

// TypeDistribution counts sessions per practice type in first-seen order.
func TypeDistribution(sessions []model.Session) []model.TypeCount {
	index := map[catalog.Practice]int{}
	var out []model.TypeCount
	for _, s := range sessions {
		i, ok := index[s.Type]
		if !ok {
			i = len(out)
			index[s.Type] = i
			out = append(out, model.TypeCount{Type: s.Type, Label: s.Type.Name()})
		}
		out[i].Count++
	}
	return out
}

// AverageMoodImprovement is the mean of moodAfter-moodBefore rounded to two
// decimals, or 0 without sessions.
func AverageMoodImprovement(sessions []model.Session) float64 {
	if len(sessions) == 0 {
		return 0
	}
	total := 0
	for _, s := range sessions {
		total += s.Improvement()
	}
	return round2(float64(total) / float64(len(sessions)))
}

// ImprovementByType returns the mean improvement per practice type.
func ImprovementByType(sessions []model.Session) map[catalog.Practice]float64 {
	type group struct {
		total int
		count int
	}
	groups := map[catalog.Practice]*group{}
	for _, s := range sessions {
		g, found := groups[s.Type]
		if !found {
			g = &group{}
			groups[s.Type] = g
		}
		g.total += s.Improvement()
		g.count++
	}
	out := make(map[catalog.Practice]float64, len(groups))
	for t, g := range groups {
		out[t] = float64(g.total) / float64(g.count)
	}
	return out
}

// MostEffectiveType returns the display name of the practice with the highest
// mean improvement. Ties go to the lowest practice id. ok is false without sessions.
func MostEffectiveType(sessions []model.Session) (name string, ok bool) {
	if len(sessions) == 0 {
		return "", false
	}
	avgs := ImprovementByType(sessions)
	types := make([]catalog.Practice, 0, len(avgs))
	for t := range avgs {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })

	best := types[0]
	bestAvg := math.Inf(-1)
	for _, t := range types {
		if avgs[t] > bestAvg {
			bestAvg = avgs[t]
			best = t
		}
	}
	return best.Name(), true
}

// Recommend picks the next practice from the mean moodBefore of the last five
// sessions: below 2.5 healing, below 3 calm, otherwise balance.
func Recommend(sessions []model.Session, _ []model.JournalEntry) model.Recommendation {
	if len(sessions) == 0 {
		return model.Recommendation{Type: catalog.Calm, Message: welcomeMessage}
	}
	recent := lastSessions(sessions, recommendWindow)
	sum := 0
	for _, s := range recent {
		sum += s.MoodBefore
	}
	avg := float64(sum) / float64(len(recent))
	switch {
	case avg < healingThreshold:
		return model.Recommendation{Type: catalog.Healing, Message: healingMessage}
	case avg < calmThreshold:
		return model.Recommendation{Type: catalog.Calm, Message: calmMessage}
	default:
		return model.Recommendation{Type: catalog.Balance, Message: balanceMessage}
	}
}

// AverageSentiment is the mean journal sentiment over scored entries.
func AverageSentiment(journals []model.JournalEntry) (float64, bool) {
	var sum float64
	count := 0
	for _, j := range journals {
		if j.Sentiment == nil {
			continue
		}
		sum += *j.Sentiment
		count++
	}
	if count == 0 {
		return 0, false
	}
	return round2(sum / float64(count)), true
}

func lastSessions(sessions []model.Session, n int) []model.Session {
	if len(sessions) <= n {
		return sessions
	}
	return sessions[len(sessions)-n:]
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
