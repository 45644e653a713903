package scale

import (
	"github.com/janekbaraniewski/focuschart/internal/core"
	"github.com/janekbaraniewski/focuschart/internal/series"
)

// Scales is the coordinate mapping of one pane. Y is inverted so larger
// values plot higher.
type Scales struct {
	X TimeScale
	Y LinearScale
}

// ComputeContextScales fits both axes to the full extent of the usable
// samples. Invalid samples never reach the extent.
func ComputeContextScales(samples []core.Sample, width, height float64) Scales {
	domain, _ := series.TimeExtent(samples)
	values, ok := series.ValueExtent(samples)
	if !ok {
		values = core.ValueRange{}
	}
	return Scales{
		X: NewTimeScale(domain, 0, width),
		Y: NewLinearScale(values, height, 0),
	}
}

// ComputeFocusScales is ComputeContextScales with the time domain replaced by
// window. In ValueScaleFollow mode the value domain is the extent inside the
// window, falling back to the full extent when the window holds no samples.
func ComputeFocusScales(samples []core.Sample, window core.TimeWindow, width, height float64, mode core.ValueScaleMode) Scales {
	s := ComputeContextScales(samples, width, height)
	s.X = s.X.WithDomain(window)
	if mode == core.ValueScaleFollow {
		if r, ok := series.ValueExtentWithin(samples, window); ok {
			s.Y = s.Y.WithDomain(r)
		}
	}
	return s
}

// Model owns the scales of both panes for one rebuild. Context scales are
// fixed; focus scales are re-derived whenever the focus window moves.
type Model struct {
	Context Scales
	Focus   Scales

	samples     []core.Sample
	focusWidth  float64
	focusHeight float64
	mode        core.ValueScaleMode
	focusWindow core.TimeWindow
}

func NewModel(samples []core.Sample, focus, context core.Size, mode core.ValueScaleMode) *Model {
	usable := series.ValidSamples(samples)
	m := &Model{
		samples:     usable,
		focusWidth:  float64(focus.Width),
		focusHeight: float64(focus.Height),
		mode:        mode,
	}
	m.Context = ComputeContextScales(usable, float64(context.Width), float64(context.Height))
	m.focusWindow = m.Context.X.Domain
	m.Focus = ComputeFocusScales(usable, m.focusWindow, m.focusWidth, m.focusHeight, mode)
	return m
}

// SetFocusWindow re-derives the focus scales for window and returns them.
func (m *Model) SetFocusWindow(window core.TimeWindow) Scales {
	m.focusWindow = window
	m.Focus = ComputeFocusScales(m.samples, window, m.focusWidth, m.focusHeight, m.mode)
	return m.Focus
}

// SetMode switches the focus value policy and recomputes the focus scales.
func (m *Model) SetMode(mode core.ValueScaleMode) Scales {
	m.mode = mode
	return m.SetFocusWindow(m.focusWindow)
}

func (m *Model) Mode() core.ValueScaleMode { return m.mode }

func (m *Model) FocusWindow() core.TimeWindow { return m.focusWindow }

// Samples returns the usable samples the scales were fitted to.
func (m *Model) Samples() []core.Sample { return m.samples }

// ViewState snapshots both panes' domains.
func (m *Model) ViewState(size core.Size) core.ViewState {
	return core.ViewState{
		FocusDomain:       m.Focus.X.Domain,
		ContextDomain:     m.Context.X.Domain,
		FocusValueRange:   m.Focus.Y.Domain,
		ContextValueRange: m.Context.Y.Domain,
		ContainerSize:     size,
	}
}
