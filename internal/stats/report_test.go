package stats

import (
	"bytes"
	"strings"
	"testing"

	"github.com/Vartika-Seth/Sukoon/internal/catalog"
	"github.com/Vartika-Seth/Sukoon/internal/model"
)

type fakeHistory struct {
	sessions []model.Session
	journals []model.JournalEntry
}

func (f fakeHistory) Sessions() []model.Session      { return f.sessions }
func (f fakeHistory) Journals() []model.JournalEntry { return f.journals }

func TestBuildProgress(t *testing.T) {
	score := 4.0
	h := fakeHistory{
		sessions: []model.Session{
			sessionOn(1, catalog.Calm, 2, 4),
			sessionOn(0, catalog.Focus, 3, 3),
		},
		journals: []model.JournalEntry{{Reflection: "good", Sentiment: &score}},
	}
	p := BuildProgress(h, today)
	if p.Sessions != 2 || p.Journals != 1 {
		t.Fatalf("unexpected counts: %+v", p)
	}
	if p.TotalMinutes != 10 || p.Streak != 2 {
		t.Fatalf("unexpected totals: minutes=%d streak=%d", p.TotalMinutes, p.Streak)
	}
	if p.AvgImprovement != 1 {
		t.Fatalf("unexpected improvement: %v", p.AvgImprovement)
	}
	if !p.HasMostEffective || p.MostEffective != "Calm" {
		t.Fatalf("unexpected most effective: %q", p.MostEffective)
	}
	if !p.HasSentiment || p.AvgSentiment != 4 {
		t.Fatalf("unexpected sentiment: %v", p.AvgSentiment)
	}
	if len(p.Trend) != 2 || len(p.Distribution) != 2 {
		t.Fatalf("unexpected series: %+v", p)
	}
	if p.Recommendation.Type != catalog.Calm {
		t.Fatalf("expected calm for an average mood of 2.5, got %s", p.Recommendation.Type)
	}
}

func TestRenderSummary(t *testing.T) {
	var buf bytes.Buffer
	p := BuildProgress(fakeHistory{sessions: []model.Session{sessionOn(0, catalog.Sleep, 2, 4)}}, today)
	if err := RenderSummary(&buf, p); err != nil {
		t.Fatalf("RenderSummary failed: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Sessions: 1", "Total minutes: 5", "Day streak: 1", "+2.00", "Most effective: Sleep", "Recommended: Healing"} {
		if !strings.Contains(out, want) {
			t.Fatalf("summary missing %q: %s", want, out)
		}
	}
}

func TestRenderSummaryEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderSummary(&buf, BuildProgress(fakeHistory{}, today)); err != nil {
		t.Fatalf("RenderSummary failed: %v", err)
	}
	if !strings.Contains(buf.String(), "No sessions yet.") || !strings.Contains(buf.String(), "Recommended: Calm") {
		t.Fatalf("unexpected empty summary: %s", buf.String())
	}
}

func TestRenderDistribution(t *testing.T) {
	var buf bytes.Buffer
	counts := TypeDistribution([]model.Session{{Type: catalog.Calm}, {Type: catalog.Calm}, {Type: "zen"}})
	if err := RenderDistribution(&buf, counts); err != nil {
		t.Fatalf("RenderDistribution failed: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "Calm") || !strings.Contains(out, "zen") || !strings.Contains(out, "66.7%") {
		t.Fatalf("unexpected distribution output: %s", out)
	}
}

func TestMovingAverage(t *testing.T) {
	got := MovingAverage([]float64{2, 4, 6, 8}, 2)
	want := []float64{2, 3, 5, 7}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("MovingAverage = %v, want %v", got, want)
		}
	}
}
