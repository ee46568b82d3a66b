package components

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/selamanalytics/fidash/internal/cli"
	"github.com/selamanalytics/fidash/internal/model"
	"github.com/selamanalytics/fidash/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// Sparkline renders a unicode sparkline scaled between the series' min and max.
func Sparkline(values []float64, color lipgloss.Color) string {
	if len(values) == 0 {
		return ""
	}
	t := theme.Active

	blocks := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	span := hi - lo

	style := lipgloss.NewStyle().Foreground(color).Background(t.Surface)

	var buf strings.Builder
	buf.Grow(len(values) * 3) // UTF-8 block chars are 3 bytes
	for _, v := range values {
		idx := len(blocks) - 1
		if span > 0 {
			idx = int((v - lo) / span * float64(len(blocks)-1))
		}
		idx = max(0, min(idx, len(blocks)-1))
		buf.WriteRune(blocks[idx])
	}

	return style.Render(buf.String())
}

// ChartSeries is one trace on a LineChart.
type ChartSeries struct {
	Name   string
	Color  lipgloss.Color
	Dashed bool
	Points []model.SeriesPoint
}

// ChartOpts sizes a LineChart and sets its value range and optional band.
type ChartOpts struct {
	Width  int
	Height int

	// YMin and YMax fix the value axis; equal values mean auto-scale.
	YMin, YMax float64

	// Upper and Lower bound a shaded band, drawn beneath the series.
	Upper, Lower []model.SeriesPoint
	BandColor    lipgloss.Color
}

type cell struct {
	r     rune
	color lipgloss.Color
}

// LineChart plots dated series on a character grid with a value axis on the
// left and year labels along the bottom. The output is exactly Height lines
// of Width cells.
func LineChart(series []ChartSeries, o ChartOpts) string {
	t := theme.Active
	width := max(o.Width, 20)
	height := max(o.Height, 5)

	x0, x1, y0, y1, ok := chartBounds(series, o)
	if !ok {
		empty := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface).
			Width(width).Height(height).Render("no data")
		return empty
	}

	yLabelW := max(len(formatChartLabel(y1)), len(formatChartLabel(y0))) + 1
	plotW := max(width-yLabelW-1, 5)
	plotH := height - 2

	grid := make([][]cell, plotH)
	for r := range grid {
		grid[r] = make([]cell, plotW)
		for c := range grid[r] {
			grid[r][c] = cell{r: ' '}
		}
	}

	col := func(d time.Time) int {
		if x1 == x0 {
			return plotW / 2
		}
		return int(math.Round(float64(d.Unix()-x0) / float64(x1-x0) * float64(plotW-1)))
	}
	row := func(v float64) int {
		r := int(math.Round((y1 - v) / (y1 - y0) * float64(plotH-1)))
		return max(0, min(r, plotH-1))
	}
	xAt := func(c int) int64 {
		if plotW == 1 {
			return x0
		}
		return x0 + int64(float64(c)/float64(plotW-1)*float64(x1-x0))
	}

	// Band first so series draw over it
	if len(o.Upper) > 0 && len(o.Lower) > 0 {
		for c := 0; c < plotW; c++ {
			hi, okHi := valueAt(o.Upper, xAt(c))
			lo, okLo := valueAt(o.Lower, xAt(c))
			if !okHi || !okLo {
				continue
			}
			for r := row(hi); r <= row(lo); r++ {
				grid[r][c] = cell{r: '░', color: o.BandColor}
			}
		}
	}

	for _, s := range series {
		if len(s.Points) == 0 {
			continue
		}
		for i := 1; i < len(s.Points); i++ {
			c0, c1 := col(s.Points[i-1].Date), col(s.Points[i].Date)
			for c := c0 + 1; c < c1; c++ {
				if s.Dashed && (c-c0)%2 == 0 {
					continue
				}
				v, _ := valueAt(s.Points, xAt(c))
				grid[row(v)][c] = cell{r: '·', color: s.Color}
			}
		}
		for _, p := range s.Points {
			grid[row(p.Value)][col(p.Date)] = cell{r: '●', color: s.Color}
		}
	}

	axisStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	tickRows := make(map[int]string, 3)
	tickRows[0] = formatChartLabel(y1)
	tickRows[(plotH-1)/2] = formatChartLabel((y0 + y1) / 2)
	tickRows[plotH-1] = formatChartLabel(y0)

	var b strings.Builder
	for r := 0; r < plotH; r++ {
		b.WriteString(axisStyle.Render(fmt.Sprintf("%*s", yLabelW, tickRows[r])))
		b.WriteString(axisStyle.Render("│"))
		b.WriteString(renderCells(grid[r]))
		b.WriteString("\n")
	}

	b.WriteString(axisStyle.Render(strings.Repeat(" ", yLabelW)))
	b.WriteString(axisStyle.Render("└" + strings.Repeat("─", plotW)))
	b.WriteString("\n")
	b.WriteString(axisStyle.Render(strings.Repeat(" ", yLabelW+1)))
	b.WriteString(axisStyle.Render(yearLabels(x0, x1, plotW)))

	return b.String()
}

// chartBounds finds the time and value extents of everything drawn.
func chartBounds(series []ChartSeries, o ChartOpts) (x0, x1 int64, y0, y1 float64, ok bool) {
	first := true
	visit := func(p model.SeriesPoint) {
		x := p.Date.Unix()
		if first {
			x0, x1, y0, y1 = x, x, p.Value, p.Value
			first = false
			return
		}
		x0, x1 = min(x0, x), max(x1, x)
		y0, y1 = min(y0, p.Value), max(y1, p.Value)
	}
	for _, s := range series {
		for _, p := range s.Points {
			visit(p)
		}
	}
	for _, p := range o.Upper {
		visit(p)
	}
	for _, p := range o.Lower {
		visit(p)
	}
	if first {
		return 0, 0, 0, 0, false
	}

	if o.YMax > o.YMin {
		y0, y1 = o.YMin, o.YMax
	} else if y1 == y0 {
		y0, y1 = y0-1, y1+1
	} else {
		pad := (y1 - y0) * 0.05
		y0, y1 = y0-pad, y1+pad
	}
	return x0, x1, y0, y1, true
}

// valueAt linearly interpolates a date-ordered series at unix time x.
// It reports false outside the series' span.
func valueAt(points []model.SeriesPoint, x int64) (float64, bool) {
	if len(points) == 0 {
		return 0, false
	}
	if len(points) == 1 {
		return points[0].Value, points[0].Date.Unix() == x
	}
	for i := 1; i < len(points); i++ {
		a, b := points[i-1], points[i]
		ax, bx := a.Date.Unix(), b.Date.Unix()
		if x < ax || x > bx {
			continue
		}
		if bx == ax {
			return b.Value, true
		}
		f := float64(x-ax) / float64(bx-ax)
		return a.Value + f*(b.Value-a.Value), true
	}
	return 0, false
}

// renderCells styles a grid row, batching runs of the same color.
func renderCells(cells []cell) string {
	bg := theme.Active.Surface
	var b, run strings.Builder
	var runColor lipgloss.Color
	flush := func() {
		if run.Len() == 0 {
			return
		}
		st := lipgloss.NewStyle().Background(bg)
		if runColor != "" {
			st = st.Foreground(runColor)
		}
		b.WriteString(st.Render(run.String()))
		run.Reset()
	}
	for _, c := range cells {
		if c.color != runColor {
			flush()
			runColor = c.color
		}
		run.WriteRune(c.r)
	}
	flush()
	return b.String()
}

// yearLabels spaces year ticks along an axis of width cells. The first and
// last year are always shown when they fit.
func yearLabels(x0, x1 int64, width int) string {
	buf := []rune(strings.Repeat(" ", width))
	first := time.Unix(x0, 0).UTC().Year()
	last := time.Unix(x1, 0).UTC().Year()

	free := func(i int) bool { return i < 0 || i >= width || buf[i] == ' ' }
	place := func(year int, at int) {
		lbl := []rune(fmt.Sprintf("%d", year))
		at = max(0, min(at, width-len(lbl)))
		if !free(at-1) || !free(at+len(lbl)) {
			return
		}
		for i := at; i < at+len(lbl); i++ {
			if !free(i) {
				return
			}
		}
		copy(buf[at:], lbl)
	}

	place(first, 0)
	if last != first {
		place(last, width-4)
	}
	span := last - first
	if span > 1 && width > 0 {
		step := max(1, span*6/width)
		for y := first + step; y < last; y += step {
			frac := float64(y-first) / float64(span)
			place(y, int(frac*float64(width-1)))
		}
	}
	return string(buf)
}

// Legend renders a colored key for a set of series.
func Legend(series []ChartSeries) string {
	t := theme.Active
	nameStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	spaceStyle := lipgloss.NewStyle().Background(t.Surface)

	parts := make([]string, 0, len(series))
	for _, s := range series {
		mark := "━"
		if s.Dashed {
			mark = "┅"
		}
		parts = append(parts,
			lipgloss.NewStyle().Foreground(s.Color).Background(t.Surface).Render(mark)+
				spaceStyle.Render(" ")+nameStyle.Render(s.Name))
	}
	return strings.Join(parts, spaceStyle.Render("   "))
}

func formatChartLabel(v float64) string {
	a := math.Abs(v)
	switch {
	case a >= 1e3:
		return cli.FormatCount(v)
	case a >= 10:
		return fmt.Sprintf("%.0f", v)
	default:
		return fmt.Sprintf("%.1f", v)
	}
}
