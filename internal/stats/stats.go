package stats

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/Vartika-Seth/Sukoon/internal/model"
)

const sparkChars = " .:-=+*#%@"

// MovingAverage computes a rolling mean over the provided window size.
func MovingAverage(values []float64, window int) []float64 {
	out := make([]float64, len(values))
	if window <= 1 {
		copy(out, values)
		return out
	}
	var sum float64
	for i, v := range values {
		sum += v
		den := i + 1
		if i >= window {
			sum -= values[i-window]
			den = window
		}
		out[i] = sum / float64(den)
	}
	return out
}

// Sparkline renders a single-line ASCII sparkline for the values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	minVal, maxVal := values[0], values[0]
	for _, v := range values[1:] {
		minVal = math.Min(minVal, v)
		maxVal = math.Max(maxVal, v)
	}
	if math.Abs(maxVal-minVal) < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		pos := (v - minVal) / (maxVal - minVal)
		idx := int(math.Round(pos * float64(len(sparkChars)-1)))
		idx = max(0, min(idx, len(sparkChars)-1))
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}

// RenderSummary prints the headline progress metrics.
func RenderSummary(w io.Writer, p Progress) error {
	if p.Sessions == 0 && p.Journals == 0 {
		if _, err := fmt.Fprintln(w, "No sessions yet."); err != nil {
			return err
		}
		_, err := fmt.Fprintf(w, "Recommended: %s - %s\n", p.Recommendation.Type.Name(), p.Recommendation.Message)
		return err
	}
	lines := []string{
		"Summary",
		fmt.Sprintf("Sessions: %d", p.Sessions),
		fmt.Sprintf("Total minutes: %d", p.TotalMinutes),
		fmt.Sprintf("Day streak: %d", p.Streak),
		fmt.Sprintf("Avg mood improvement: %+.2f", p.AvgImprovement),
	}
	if p.HasMostEffective {
		lines = append(lines, fmt.Sprintf("Most effective: %s", p.MostEffective))
	}
	lines = append(lines, fmt.Sprintf("Journal entries: %d", p.Journals))
	if p.HasSentiment {
		lines = append(lines, fmt.Sprintf("Avg reflection tone: %.2f / 5", p.AvgSentiment))
	}
	if len(p.ImprovementSmoothing) > 1 {
		lines = append(lines, fmt.Sprintf("Improvement trend: [%s]", Sparkline(p.ImprovementSmoothing)))
	}
	lines = append(lines, fmt.Sprintf("Recommended: %s - %s", p.Recommendation.Type.Name(), p.Recommendation.Message), "")
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// RenderDistribution prints sessions per practice as an aligned table.
func RenderDistribution(w io.Writer, counts []model.TypeCount) error {
	if len(counts) == 0 {
		_, err := fmt.Fprintln(w, "No sessions found.")
		return err
	}
	total := 0
	for _, c := range counts {
		total += c.Count
	}
	if _, err := fmt.Fprintln(w, "Practices"); err != nil {
		return err
	}
	rows := make([][]string, 0, len(counts))
	for _, c := range counts {
		share := float64(c.Count) / float64(total) * 100
		rows = append(rows, []string{
			c.Type.Icon() + " " + c.Label,
			fmt.Sprintf("%d", c.Count),
			fmt.Sprintf("%.1f%%", share),
		})
	}
	lines := formatTable([]string{"Practice", "Sessions", "Share"}, rows, map[int]bool{1: true, 2: true})
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

// RenderMoodTrend prints the mood trend plot.
func RenderMoodTrend(w io.Writer, points []model.MoodPoint, totalWidth int, useColor bool) error {
	if len(points) == 0 {
		return nil
	}
	width := 0
	if totalWidth > 0 {
		width = PlotWidthFor(totalWidth)
	}
	return PlotMoodTrend(w, points, width, useColor)
}
