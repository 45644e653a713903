// Package chart owns the state of one focus+context chart: the cached
// dataset, both panes, their scales and the brush.
package chart

import (
	"log"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/janekbaraniewski/focuschart/internal/brush"
	"github.com/janekbaraniewski/focuschart/internal/classify"
	"github.com/janekbaraniewski/focuschart/internal/core"
	"github.com/janekbaraniewski/focuschart/internal/render"
	"github.com/janekbaraniewski/focuschart/internal/scale"
	"github.com/janekbaraniewski/focuschart/internal/series"
)

// MountRequest carries everything a chart is mounted with. Depths is kept
// for callers and plays no part in rendering.
type MountRequest struct {
	Rows   []core.RawRow
	Depths []float64
	Labels core.LabelTable
}

// Session replaces process-wide chart state. Every rebuild swaps the whole
// derived state and bumps the generation; brush events from an older
// generation are dropped.
type Session struct {
	opts Options

	rows    []core.RawRow
	depths  []float64
	labels  core.LabelTable
	mounted bool

	size       core.Size
	generation uint64

	samples    []core.Sample
	groups     core.MeasurementGroups
	invalid    int
	scales     *scale.Model
	classifier classify.Classifier
	focus      *render.Pane
	context    *render.Pane
	brush      *brush.Controller
	view       core.ViewState

	rebuilds      int
	staleEvents   int
	ignoredEvents int
}

func NewSession(opts Options) *Session {
	return &Session{opts: opts.normalized()}
}

// Mount caches the dataset and labels. It does not render.
func (s *Session) Mount(req MountRequest) {
	s.rows = req.Rows
	s.depths = req.Depths
	s.labels = req.Labels
	s.mounted = true
	log.Printf("chart: mounted %d rows, %d labelled measurements", len(req.Rows), len(req.Labels.Measurements))
}

// FocusView performs a full rebuild from the cached rows. A non-nil rows
// argument replaces the cache first.
func (s *Session) FocusView(rows []core.RawRow) {
	if rows != nil {
		s.rows = rows
	}
	size := s.size
	if size.Degenerate() {
		size = DefaultSize
	}
	s.rebuild(size)
}

// Rebuild re-lays out the chart for a new container size. It is a no-op
// until a dataset has been mounted or for a degenerate size.
func (s *Session) Rebuild(size core.Size) bool {
	if size.Degenerate() {
		return false
	}
	s.size = size
	if !s.mounted {
		return false
	}
	s.rebuild(size)
	return true
}

// SetSize records the container size without rebuilding.
func (s *Session) SetSize(size core.Size) {
	if !size.Degenerate() {
		s.size = size
	}
}

func (s *Session) rebuild(size core.Size) {
	s.generation++
	gen := s.generation

	samples := series.ReshapeWithLayout(s.rows, s.opts.TimestampLayout)
	groups := series.GroupByMeasurement(samples)
	focusLayout, contextLayout := s.opts.layouts(size)

	scales := scale.NewModel(samples,
		core.Size{Width: focusLayout.PlotWidth, Height: focusLayout.PlotHeight},
		core.Size{Width: contextLayout.PlotWidth, Height: contextLayout.PlotHeight},
		s.opts.ValueScale,
	)
	classifier := classify.NewClassifier(s.labels, s.opts.Palette)

	focus := render.NewPane(render.PaneFocus, focusLayout, s.opts.Styles)
	context := render.NewPane(render.PaneContext, contextLayout, s.opts.Styles)
	render.RenderPane(focus, groups, scales.Focus, classifier)
	render.RenderPane(context, groups, scales.Context, classifier)

	s.samples = samples
	s.groups = groups
	s.invalid = series.InvalidCount(samples)
	s.scales = scales
	s.classifier = classifier
	s.focus = focus
	s.context = context
	s.view = scales.ViewState(size)
	s.rebuilds++

	// the brush goes last so its first event reads the new scales
	b := brush.New(float64(contextLayout.PlotWidth), gen, s.HandleSelection)
	s.brush = b
	if sel, ok := brush.DefaultSelection(samples, scales.Context.X, s.opts.DefaultStart, s.opts.DefaultEnd); ok {
		b.SetSelection(sel)
	}

	log.Printf("chart: rebuild gen=%d size=%dx%d samples=%d invalid=%d groups=%d",
		gen, size.Width, size.Height, len(samples), s.invalid, len(groups))
}

// HandleSelection applies a brush event to the focus pane.
func (s *Session) HandleSelection(ev brush.SelectionChanged) {
	if ev.Generation != s.generation || s.scales == nil {
		s.staleEvents++
		return
	}
	if ev.Selection == nil || ev.Selection.Empty() {
		s.ignoredEvents++
		return
	}
	window := brush.Invert(*ev.Selection, s.scales.Context.X)
	s.applyFocusWindow(window)
}

func (s *Session) applyFocusWindow(window core.TimeWindow) {
	sc := s.scales.SetFocusWindow(window)
	if s.scales.Mode() == core.ValueScaleFollow {
		// the value axis moves with the window, so the gutter must be redrawn
		render.RenderPane(s.focus, s.groups, sc, s.classifier)
	} else {
		render.UpdateFocus(s.focus, s.groups, sc)
	}
	s.view = s.scales.ViewState(s.view.ContainerSize)
}

// SetValueScaleMode switches between a fixed focus value axis and one that
// follows the brushed window, redrawing the focus pane.
func (s *Session) SetValueScaleMode(mode core.ValueScaleMode) {
	s.opts.ValueScale = mode
	if s.scales == nil {
		return
	}
	sc := s.scales.SetMode(mode)
	render.RenderPane(s.focus, s.groups, sc, s.classifier)
	s.view = s.scales.ViewState(s.view.ContainerSize)
}

// Restyle swaps palette and styles and redraws both panes at the current
// size, keeping the brushed window.
func (s *Session) Restyle(palette classify.Palette, styles render.Styles, strip render.StripStyles, legend lipgloss.Style) {
	s.opts.Palette = palette.WithFallbacks()
	s.opts.Styles = styles
	s.opts.Strip = strip
	s.opts.Legend = legend
	if s.focus == nil {
		return
	}
	var (
		sel    brush.Extent
		hadSel bool
	)
	if s.brush != nil {
		sel, hadSel = s.brush.Selection()
	}
	s.rebuild(s.view.ContainerSize)
	if hadSel {
		s.brush.SetSelection(sel)
	}
}

// ResetBrush moves the brush back to the default window.
func (s *Session) ResetBrush() {
	if s.brush == nil || s.scales == nil {
		return
	}
	if sel, ok := brush.DefaultSelection(s.samples, s.scales.Context.X, s.opts.DefaultStart, s.opts.DefaultEnd); ok {
		s.brush.SetSelection(sel)
	}
}

func (s *Session) Brush() *brush.Controller { return s.brush }

func (s *Session) ViewState() core.ViewState { return s.view }

func (s *Session) ValueScaleMode() core.ValueScaleMode { return s.opts.ValueScale }

func (s *Session) Mounted() bool { return s.mounted }

func (s *Session) Built() bool { return s.focus != nil }

func (s *Session) HasData() bool { return len(s.rows) > 0 }

func (s *Session) Depths() []float64 { return s.depths }

func (s *Session) Labels() core.LabelTable { return s.labels }

func (s *Session) Groups() core.MeasurementGroups { return s.groups }

func (s *Session) InvalidSamples() int { return s.invalid }

func (s *Session) Generation() uint64 { return s.generation }

func (s *Session) Rebuilds() int { return s.rebuilds }

func (s *Session) FocusPane() *render.Pane { return s.focus }

func (s *Session) ContextPane() *render.Pane { return s.context }

// IgnoredSelections counts cleared or empty brush events.
func (s *Session) IgnoredSelections() int { return s.ignoredEvents }

// StaleSelections counts events dropped because a rebuild replaced the brush.
func (s *Session) StaleSelections() int { return s.staleEvents }

// View renders focus pane, context pane, brush strip and legend.
func (s *Session) View() string {
	if s.focus == nil {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(s.focus.View())
	sb.WriteString("\n\n")
	sb.WriteString(s.context.View())
	sb.WriteString("\n")

	x0, x1, active := 0.0, 0.0, false
	if s.brush != nil {
		if sel, ok := s.brush.Selection(); ok {
			x0, x1, active = sel.X0, sel.X1, true
		}
	}
	sb.WriteString(render.RenderBrushStrip(s.context.Layout, x0, x1, active, s.opts.Strip))
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat(" ", s.context.Layout.GutterWidth+1))
	sb.WriteString(render.RenderLegend(s.context.Paths(), s.opts.Legend))
	return sb.String()
}

// Height is the number of rows View produces.
func (s *Session) Height() int {
	if s.focus == nil {
		return 0
	}
	return s.focus.Layout.Height() + 1 + s.context.Layout.Height() + 2
}

// ContextX maps a cell of View's output to a context-pane x coordinate. ok
// is false outside the rows of the context pane and brush strip.
func (s *Session) ContextX(col, row int) (float64, bool) {
	if s.context == nil {
		return 0, false
	}
	top := s.focus.Layout.Height() + 1
	bottom := top + s.context.Layout.Height() // brush strip row
	if row < top || row > bottom {
		return 0, false
	}
	x := float64(col-s.context.Layout.GutterWidth-1) + 0.5
	return x, true
}
