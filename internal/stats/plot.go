package stats

import (
	"fmt"
	"io"
	"math"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/term"

	"github.com/Vartika-Seth/Sukoon/internal/model"
)

// Series represents a named data series for plotting.
type Series struct {
	Name   string
	Values []float64
}

type lineStyle struct {
	name   string
	period int
	on     int
}

type ansiColor struct {
	name string
	code string
}

const (
	moodPlotHeight      = 8
	minPlotWidth        = 10
	axisLabelTop        = "5"
	axisLabelMid        = "3"
	axisLabelBottom     = "1"
	axisSeparator       = " │ "
	colorReset          = "\x1b[0m"
	terminalWidthBackup = 80
)

var lineStyles = []lineStyle{
	{name: "dotted", period: 4, on: 1},
	{name: "solid", period: 1, on: 1},
}

var colorPalette = []ansiColor{
	{name: "yellow", code: "\x1b[33m"},
	{name: "green", code: "\x1b[32m"},
}

// brailleDots maps (x, y) within a 2x4 cell to its dot bit.
var brailleDots = [2][4]uint8{
	{0x01, 0x02, 0x04, 0x40},
	{0x08, 0x10, 0x20, 0x80},
}

// PlotMoodTrend draws mood before and after each session on a fixed 1-5 scale.
func PlotMoodTrend(w io.Writer, points []model.MoodPoint, width int, forceColor bool) error {
	before := make([]float64, len(points))
	after := make([]float64, len(points))
	for i, p := range points {
		before[i] = float64(p.MoodBefore)
		after[i] = float64(p.MoodAfter)
	}
	title := fmt.Sprintf("Mood Trend (last %d sessions)", len(points))
	return PlotSeries(w, title, []Series{
		{Name: "Before", Values: before},
		{Name: "After", Values: after},
	}, model.MinMood, model.MaxMood, width, moodPlotHeight, forceColor)
}

// PlotSeries renders series as braille lines sharing the range [lo, hi].
func PlotSeries(w io.Writer, title string, series []Series, lo, hi float64, width, height int, forceColor bool) error {
	series = filterSeries(series)
	if len(series) == 0 {
		return nil
	}
	if height <= 0 {
		height = moodPlotHeight
	}
	if width <= 0 {
		width = autoPlotWidth()
	}
	width = max(width, minPlotWidth)
	if hi-lo < 1e-9 {
		lo--
		hi++
	}

	dotsX := width * 2
	dotsY := height * 4
	layers := make([][][]uint8, len(series))
	for si, s := range series {
		layers[si] = makeCells(height, width)
		style := lineStyles[si%len(lineStyles)]
		values := resampleSeries(s.Values, width)
		prevX, prevY := -1, -1
		for x, v := range values {
			px := min(x*2, dotsX-1)
			py := valueToRow(v, lo, hi, dotsY)
			plot := func(dx, dy int) {
				if style.shouldPlot(dx) {
					setBrailleDot(layers[si], dx, dy)
				}
			}
			if prevX >= 0 {
				drawLine(prevX, prevY, px, py, plot)
			} else {
				plot(px, py)
			}
			prevX, prevY = px, py
		}
	}

	useColor := shouldUseColor(w, forceColor)
	labels := makeAxisLabels(height)
	var out strings.Builder
	if title != "" {
		out.WriteString(title + "\n")
	}
	for y := 0; y < height; y++ {
		fmt.Fprintf(&out, "%*s%s", utf8.RuneCountInString(axisLabelTop), labels[y], axisSeparator)
		for x := 0; x < width; x++ {
			mask, layer := composeCell(layers, x, y)
			ch := rune(0x2800 + int(mask))
			if useColor && layer >= 0 {
				out.WriteString(colorPalette[layer%len(colorPalette)].code)
				out.WriteRune(ch)
				out.WriteString(colorReset)
				continue
			}
			out.WriteRune(ch)
		}
		out.WriteString("\n")
	}
	out.WriteString(renderLegend(series, useColor) + "\n\n")
	_, err := io.WriteString(w, out.String())
	return err
}

func filterSeries(series []Series) []Series {
	out := make([]Series, 0, len(series))
	for _, s := range series {
		if len(s.Values) > 0 {
			out = append(out, s)
		}
	}
	return out
}

func autoPlotWidth() int {
	return PlotWidthFor(terminalWidth())
}

// PlotWidthFor computes a plot width that fits within the total available width.
func PlotWidthFor(totalWidth int) int {
	if totalWidth <= 0 {
		return minPlotWidth
	}
	axisWidth := utf8.RuneCountInString(axisLabelTop) + utf8.RuneCountInString(axisSeparator)
	return max(totalWidth-axisWidth, minPlotWidth)
}

func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return terminalWidthBackup
	}
	return width
}

func shouldUseColor(w io.Writer, force bool) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if force {
		return true
	}
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(file.Fd()))
}

func makeAxisLabels(height int) []string {
	labels := make([]string, height)
	if height <= 0 {
		return labels
	}
	labels[0] = axisLabelTop
	if height > 2 {
		labels[height/2] = axisLabelMid
	}
	if height > 1 {
		labels[height-1] = axisLabelBottom
	}
	return labels
}

func makeCells(height, width int) [][]uint8 {
	cells := make([][]uint8, height)
	for y := range cells {
		cells[y] = make([]uint8, width)
	}
	return cells
}

// composeCell merges all layers at a cell; the color comes from the first
// layer that has a dot there.
func composeCell(layers [][][]uint8, x, y int) (uint8, int) {
	var mask uint8
	first := -1
	for i, cells := range layers {
		if y >= len(cells) || x >= len(cells[y]) || cells[y][x] == 0 {
			continue
		}
		if first == -1 {
			first = i
		}
		mask |= cells[y][x]
	}
	return mask, first
}

func (ls lineStyle) shouldPlot(x int) bool {
	if ls.period <= 1 {
		return true
	}
	if x < 0 {
		x = -x
	}
	return x%ls.period < ls.on
}

// resampleSeries stretches or averages values to exactly width samples.
func resampleSeries(values []float64, width int) []float64 {
	if len(values) == 0 || width <= 0 {
		return nil
	}
	out := make([]float64, width)
	switch {
	case len(values) == 1 || width == 1:
		for i := range out {
			out[i] = values[0]
		}
	case len(values) > width:
		for i := range out {
			start := i * len(values) / width
			end := max((i+1)*len(values)/width, start+1)
			var sum float64
			for _, v := range values[start:end] {
				sum += v
			}
			out[i] = sum / float64(end-start)
		}
	default:
		for i := range out {
			pos := float64(i) * float64(len(values)-1) / float64(width-1)
			idx := int(math.Floor(pos))
			if idx >= len(values)-1 {
				out[i] = values[len(values)-1]
				continue
			}
			frac := pos - float64(idx)
			out[i] = values[idx]*(1-frac) + values[idx+1]*frac
		}
	}
	return out
}

func valueToRow(v, lo, hi float64, rows int) int {
	if rows <= 1 {
		return 0
	}
	pos := (v - lo) / (hi - lo)
	row := int(math.Round((1 - pos) * float64(rows-1)))
	return max(0, min(row, rows-1))
}

func renderLegend(series []Series, useColor bool) string {
	parts := make([]string, 0, len(series))
	for i, s := range series {
		label := fmt.Sprintf("%c %s (%s)", rune(0x2801), s.Name, lineStyles[i%len(lineStyles)].name)
		if useColor {
			label = colorPalette[i%len(colorPalette)].code + label + colorReset
		}
		parts = append(parts, label)
	}
	return "Legend: " + strings.Join(parts, "  ")
}

// drawLine plots a Bresenham line between two dot coordinates.
func drawLine(x0, y0, x1, y1 int, plot func(x, y int)) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	e := dx + dy
	for {
		plot(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += sx
		}
		if e2 <= dx {
			e += dx
			y0 += sy
		}
	}
}

func setBrailleDot(cells [][]uint8, x, y int) {
	if x < 0 || y < 0 {
		return
	}
	row, col := y/4, x/2
	if row >= len(cells) || col >= len(cells[row]) {
		return
	}
	cells[row][col] |= brailleDots[x%2][y%4]
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
