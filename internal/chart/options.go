package chart

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/janekbaraniewski/focuschart/internal/classify"
	"github.com/janekbaraniewski/focuschart/internal/core"
	"github.com/janekbaraniewski/focuschart/internal/render"
)

// DefaultSize is used until the host reports a container size.
var DefaultSize = core.Size{Width: 100, Height: 30}

const (
	minPlotWidth  = 10
	minPlotHeight = 3
	// rows used by the blank separator, brush strip and legend
	chromeRows = 3
)

// Options configures layout, brush defaults and styling of a session.
type Options struct {
	FocusHeight   int // focus plot rows; 0 means fill the container
	ContextHeight int // context plot rows
	GutterWidth   int // y-axis label columns
	MaxWidth      int // 0 means no limit

	DefaultStart float64 // brush start as a fraction of sample positions
	DefaultEnd   float64

	ValueScale      core.ValueScaleMode
	TimestampLayout string

	Palette classify.Palette
	Styles  render.Styles
	Strip   render.StripStyles
	Legend  lipgloss.Style
}

func DefaultOptions() Options {
	return Options{
		ContextHeight:   5,
		GutterWidth:     8,
		DefaultStart:    0.3,
		DefaultEnd:      0.6,
		ValueScale:      core.ValueScaleFixed,
		TimestampLayout: core.TimestampLayout,
		Palette:         classify.DefaultPalette(),
	}
}

func (o Options) normalized() Options {
	d := DefaultOptions()
	if o.ContextHeight <= 0 {
		o.ContextHeight = d.ContextHeight
	}
	if o.GutterWidth <= 0 {
		o.GutterWidth = d.GutterWidth
	}
	if o.DefaultStart < 0 || o.DefaultStart > 1 || o.DefaultEnd < 0 || o.DefaultEnd > 1 || o.DefaultStart == o.DefaultEnd {
		o.DefaultStart, o.DefaultEnd = d.DefaultStart, d.DefaultEnd
	}
	if o.TimestampLayout == "" {
		o.TimestampLayout = d.TimestampLayout
	}
	o.Palette = o.Palette.WithFallbacks()
	return o
}

// layouts splits a container into the focus and context panes.
func (o Options) layouts(size core.Size) (render.Layout, render.Layout) {
	width := size.Width
	if o.MaxWidth > 0 && width > o.MaxWidth {
		width = o.MaxWidth
	}
	plotW := width - o.GutterWidth - 2
	if plotW < minPlotWidth {
		plotW = minPlotWidth
	}

	ctxH := o.ContextHeight
	focusH := o.FocusHeight
	if focusH <= 0 {
		// two panes with axis rows each, plus chrome
		focusH = size.Height - (ctxH + 2) - 2 - chromeRows
	}
	if focusH < minPlotHeight {
		focusH = minPlotHeight
	}

	focus := render.Layout{GutterWidth: o.GutterWidth, PlotWidth: plotW, PlotHeight: focusH}
	context := render.Layout{GutterWidth: o.GutterWidth, PlotWidth: plotW, PlotHeight: ctxH}
	return focus, context
}
