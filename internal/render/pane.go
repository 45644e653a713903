// Package render draws measurement paths and axes into terminal panes.
package render

import (
	"log"
	"sort"
	"strings"

	"github.com/NimbleMarkets/ntcharts/canvas"
	"github.com/NimbleMarkets/ntcharts/canvas/graph"
	"github.com/charmbracelet/lipgloss"
	"github.com/janekbaraniewski/focuschart/internal/classify"
	"github.com/janekbaraniewski/focuschart/internal/core"
	"github.com/janekbaraniewski/focuschart/internal/scale"
	"github.com/janekbaraniewski/focuschart/internal/series"
)

type PaneKind int

const (
	PaneFocus PaneKind = iota
	PaneContext
)

func (k PaneKind) String() string {
	if k == PaneContext {
		return "context"
	}
	return "focus"
}

// Classifier styles a measurement line.
type Classifier interface {
	Classify(measurement string) classify.Style
}

// Layout is the cell geometry of a pane. The plot area is PlotWidth x
// PlotHeight cells; scales map into that rectangle one unit per cell.
type Layout struct {
	GutterWidth int
	PlotWidth   int
	PlotHeight  int
}

// Height is the total rows including the x axis and its labels.
func (l Layout) Height() int { return l.PlotHeight + 2 }

// Width is the total columns including the y-axis gutter.
func (l Layout) Width() int { return l.GutterWidth + 1 + l.PlotWidth }

func (l Layout) ClipRect() Rect {
	return Rect{MinX: 0, MinY: 0, MaxX: float64(l.PlotWidth), MaxY: float64(l.PlotHeight)}
}

type Styles struct {
	Axis  lipgloss.Style
	Label lipgloss.Style
}

// Path is one measurement line in pane coordinates, the terminal analogue of
// an SVG path's d attribute.
type Path struct {
	Measurement string
	Style       classify.Style
	Points      []canvas.Float64Point
}

// Stats counts draw passes, so callers can tell full rebuilds from
// incremental updates.
type Stats struct {
	FullRenders        int
	IncrementalUpdates int
	GutterDraws        int
}

type Pane struct {
	Kind   PaneKind
	Layout Layout
	Styles Styles

	clip   Rect
	paths  []Path
	gutter string
	plot   canvas.Model
	xTicks []string
	yTicks []string
	stats  Stats
}

func NewPane(kind PaneKind, layout Layout, styles Styles) *Pane {
	if layout.PlotWidth < 1 {
		layout.PlotWidth = 1
	}
	if layout.PlotHeight < 1 {
		layout.PlotHeight = 1
	}
	if layout.GutterWidth < 0 {
		layout.GutterWidth = 0
	}
	return &Pane{
		Kind:   kind,
		Layout: layout,
		Styles: styles,
		clip:   layout.ClipRect(),
	}
}

// RenderPane draws everything: clip region, one path per group, and both
// axes from the pane's own scales.
func RenderPane(p *Pane, groups core.MeasurementGroups, sc scale.Scales, cl Classifier) {
	p.clip = p.Layout.ClipRect()
	p.paths = make([]Path, 0, len(groups))
	for _, g := range groups {
		p.paths = append(p.paths, Path{
			Measurement: g.Name,
			Style:       cl.Classify(g.Name),
			Points:      projectGroup(g, sc),
		})
	}
	p.drawGutter(sc.Y)
	p.drawPlot(sc.X)
	p.stats.FullRenders++
}

// UpdateFocus is the incremental brush path: it recomputes path geometry and
// the x-axis labels only. The gutter, the clip region and the path styles
// are reused from the last RenderPane.
func UpdateFocus(p *Pane, groups core.MeasurementGroups, sc scale.Scales) {
	if p.Kind != PaneFocus {
		log.Printf("render: incremental update requested on %s pane", p.Kind)
		return
	}
	byName := make(map[string]core.MeasurementGroup, len(groups))
	for _, g := range groups {
		byName[g.Name] = g
	}
	for i := range p.paths {
		g, ok := byName[p.paths[i].Measurement]
		if !ok {
			p.paths[i].Points = nil
			continue
		}
		p.paths[i].Points = projectGroup(g, sc)
	}
	p.drawPlot(sc.X)
	p.stats.IncrementalUpdates++
}

func projectGroup(g core.MeasurementGroup, sc scale.Scales) []canvas.Float64Point {
	samples := series.SortedByTime(g.Samples)
	pts := make([]canvas.Float64Point, len(samples))
	for i, s := range samples {
		pts[i] = canvas.Float64Point{X: sc.X.Apply(s.Timestamp), Y: sc.Y.Apply(s.Value)}
	}
	return pts
}

func (p *Pane) Paths() []Path {
	out := make([]Path, len(p.paths))
	copy(out, p.paths)
	return out
}

func (p *Pane) Stats() Stats { return p.stats }

func (p *Pane) Clip() Rect { return p.clip }

func (p *Pane) XTickLabels() []string { return append([]string(nil), p.xTicks...) }

func (p *Pane) YTickLabels() []string { return append([]string(nil), p.yTicks...) }

// View joins the cached gutter with the plot layer.
func (p *Pane) View() string {
	if p.gutter == "" {
		return strings.TrimRight(strings.Repeat(strings.Repeat(" ", p.Layout.Width())+"\n", p.Layout.Height()), "\n")
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, p.gutter, p.plot.View())
}

func (p *Pane) drawGutter(ys scale.LinearScale) {
	l := p.Layout
	c := canvas.New(l.GutterWidth+1, l.Height())
	axisX := l.GutterWidth
	graph.DrawVerticalLineUp(&c, canvas.Point{X: axisX, Y: l.PlotHeight}, p.Styles.Axis)

	n := tickCount(l.PlotHeight, 3)
	format := ys.TickFormat(n)
	p.yTicks = p.yTicks[:0]
	lastRow := -2
	for _, v := range ys.Ticks(n) {
		row := clampInt(roundInt(ys.Apply(v)), 0, l.PlotHeight)
		if row == lastRow {
			continue
		}
		label := format(v)
		p.yTicks = append(p.yTicks, label)
		if len(label) > l.GutterWidth-1 && l.GutterWidth > 1 {
			label = label[:l.GutterWidth-1]
		}
		if start := axisX - 1 - len(label); start >= 0 {
			c.SetStringWithStyle(canvas.Point{X: start, Y: row}, label, p.Styles.Label)
		}
		if row < l.PlotHeight {
			c.SetCell(canvas.Point{X: axisX, Y: row}, canvas.NewCellWithStyle('┤', p.Styles.Axis))
		}
		lastRow = row
	}
	c.SetCell(canvas.Point{X: axisX, Y: l.PlotHeight}, canvas.NewCellWithStyle('└', p.Styles.Axis))
	p.gutter = c.View()
	p.stats.GutterDraws++
}

func (p *Pane) drawPlot(xs scale.TimeScale) {
	l := p.Layout
	p.plot = canvas.New(l.PlotWidth, l.Height())

	// neutral lines first so highlighted ones stay on top
	order := make([]int, len(p.paths))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return p.paths[order[a]].Style.Opacity < p.paths[order[b]].Style.Opacity
	})
	for _, i := range order {
		p.rasterize(p.paths[i])
	}

	graph.DrawHorizonalLineRight(&p.plot, canvas.Point{X: 0, Y: l.PlotHeight}, p.Styles.Axis)
	p.drawXLabels(xs)
}

func (p *Pane) rasterize(path Path) {
	if len(path.Points) == 0 {
		return
	}
	l := p.Layout
	w, h := float64(l.PlotWidth), float64(l.PlotHeight)
	grid := graph.NewBrailleGrid(l.PlotWidth, l.PlotHeight, 0, w, 0, h)
	// braille rows count upward, pane rows downward
	toGrid := func(f canvas.Float64Point) canvas.Point {
		return grid.GridPoint(canvas.Float64Point{X: f.X, Y: h - f.Y})
	}

	drawn := false
	if len(path.Points) == 1 {
		if p.clip.Contains(path.Points[0]) {
			grid.Set(toGrid(path.Points[0]))
			drawn = true
		}
	}
	for i := 1; i < len(path.Points); i++ {
		a, b, ok := ClipSegment(path.Points[i-1], path.Points[i], p.clip)
		if !ok {
			continue
		}
		for _, gp := range graph.GetLinePoints(toGrid(a), toGrid(b)) {
			grid.Set(gp)
		}
		drawn = true
	}
	if !drawn {
		return
	}
	graph.DrawBraillePatterns(&p.plot, canvas.Point{X: 0, Y: 0}, grid.BraillePatterns(), path.Style.Lipgloss())
}

func (p *Pane) drawXLabels(xs scale.TimeScale) {
	l := p.Layout
	n := tickCount(l.PlotWidth, 12)
	format := xs.TickFormat(n)
	p.xTicks = p.xTicks[:0]
	nextFree := 0
	for _, t := range xs.Ticks(n) {
		col := roundInt(xs.Apply(t))
		if col < 0 || col >= l.PlotWidth {
			continue
		}
		p.plot.SetCell(canvas.Point{X: col, Y: l.PlotHeight}, canvas.NewCellWithStyle('┬', p.Styles.Axis))
		label := format(t)
		start := clampInt(col-len(label)/2, 0, l.PlotWidth-len(label))
		if start < nextFree || start < 0 {
			continue
		}
		p.plot.SetStringWithStyle(canvas.Point{X: start, Y: l.PlotHeight + 1}, label, p.Styles.Label)
		p.xTicks = append(p.xTicks, label)
		nextFree = start + len(label) + 1
	}
}

// tickCount aims for one tick per cellsPerTick cells, at least two.
func tickCount(cells, cellsPerTick int) int {
	n := cells / cellsPerTick
	if n < 2 {
		return 2
	}
	return n
}

func roundInt(v float64) int {
	if v < 0 {
		return int(v - 0.5)
	}
	return int(v + 0.5)
}

func clampInt(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
