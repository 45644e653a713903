// Package brush implements the draggable selection on the context pane.
package brush

import (
	"math"

	"github.com/janekbaraniewski/focuschart/internal/core"
	"github.com/janekbaraniewski/focuschart/internal/scale"
	"github.com/janekbaraniewski/focuschart/internal/series"
)

type State int

const (
	Idle State = iota
	Dragging
)

func (s State) String() string {
	if s == Dragging {
		return "dragging"
	}
	return "idle"
}

// Extent is a selection in context-pane coordinates.
type Extent struct {
	X0, X1 float64
}

func (e Extent) Ordered() Extent {
	if e.X1 < e.X0 {
		return Extent{X0: e.X1, X1: e.X0}
	}
	return e
}

func (e Extent) Width() float64 { return math.Abs(e.X1 - e.X0) }

func (e Extent) Empty() bool { return e.Width() <= 0 }

func (e Extent) Contains(x float64) bool {
	o := e.Ordered()
	return x >= o.X0 && x <= o.X1
}

// SelectionChanged is emitted on every selection change, continuously while
// dragging and once more at release. Selection is nil when the brush was
// cleared.
type SelectionChanged struct {
	Selection  *Extent
	Final      bool
	Generation uint64
}

type dragMode int

const (
	dragNew dragMode = iota
	dragMove
)

// Controller is the brush state machine: Idle -> Dragging -> Idle per
// gesture. It knows nothing about time; the owner inverts extents through
// the context x scale.
type Controller struct {
	width      float64
	generation uint64
	onChange   func(SelectionChanged)

	state  State
	mode   dragMode
	anchor float64
	grab   float64
	sel    *Extent
}

func New(width float64, generation uint64, onChange func(SelectionChanged)) *Controller {
	return &Controller{width: width, generation: generation, onChange: onChange}
}

func (c *Controller) State() State { return c.state }

func (c *Controller) Generation() uint64 { return c.generation }

func (c *Controller) Width() float64 { return c.width }

func (c *Controller) Selection() (Extent, bool) {
	if c.sel == nil {
		return Extent{}, false
	}
	return *c.sel, true
}

// Press starts a gesture. Pressing inside the current selection moves it;
// pressing elsewhere starts a new selection anchored at x.
func (c *Controller) Press(x float64) {
	x = c.clamp(x)
	c.state = Dragging
	if c.sel != nil && !c.sel.Empty() && c.sel.Contains(x) {
		c.mode = dragMove
		c.grab = x - c.sel.X0
		return
	}
	c.mode = dragNew
	c.anchor = x
	c.sel = &Extent{X0: x, X1: x}
}

func (c *Controller) Drag(x float64) {
	if c.state != Dragging {
		return
	}
	c.track(x)
	c.emit(false)
}

func (c *Controller) Release(x float64) {
	if c.state != Dragging {
		return
	}
	c.track(x)
	c.state = Idle
	if c.sel != nil && c.sel.Empty() {
		c.sel = nil
	}
	c.emit(true)
}

func (c *Controller) track(x float64) {
	x = c.clamp(x)
	switch c.mode {
	case dragMove:
		w := c.sel.Width()
		x0 := math.Max(0, math.Min(x-c.grab, c.width-w))
		c.sel = &Extent{X0: x0, X1: x0 + w}
	default:
		e := Extent{X0: c.anchor, X1: x}.Ordered()
		c.sel = &e
	}
}

// Move pans the selection by dx, keeping its width.
func (c *Controller) Move(dx float64) {
	if c.sel == nil || c.state == Dragging {
		return
	}
	w := c.sel.Width()
	x0 := math.Max(0, math.Min(c.sel.X0+dx, c.width-w))
	c.sel = &Extent{X0: x0, X1: x0 + w}
	c.emit(true)
}

// Resize widens (dx > 0) or narrows the selection symmetrically. A
// selection is never narrowed below one unit.
func (c *Controller) Resize(dx float64) {
	if c.sel == nil || c.state == Dragging {
		return
	}
	half := dx / 2
	x0 := c.clamp(c.sel.X0 - half)
	x1 := c.clamp(c.sel.X1 + half)
	if x1-x0 < 1 {
		mid := (c.sel.X0 + c.sel.X1) / 2
		x0, x1 = c.clamp(mid-0.5), c.clamp(mid+0.5)
	}
	c.sel = &Extent{X0: x0, X1: x1}
	c.emit(true)
}

// SetSelection moves the brush programmatically and emits like a gesture.
func (c *Controller) SetSelection(e Extent) {
	e = e.Ordered()
	e = Extent{X0: c.clamp(e.X0), X1: c.clamp(e.X1)}
	c.state = Idle
	if e.Empty() {
		c.sel = nil
	} else {
		c.sel = &e
	}
	c.emit(true)
}

// Clear removes the selection. Owners keep their last focus window.
func (c *Controller) Clear() {
	c.state = Idle
	c.sel = nil
	c.emit(true)
}

func (c *Controller) emit(final bool) {
	if c.onChange == nil {
		return
	}
	ev := SelectionChanged{Final: final, Generation: c.generation}
	if c.sel != nil && !c.sel.Empty() {
		e := *c.sel
		ev.Selection = &e
	}
	c.onChange(ev)
}

func (c *Controller) clamp(x float64) float64 {
	if math.IsNaN(x) {
		return 0
	}
	return math.Max(0, math.Min(x, c.width))
}

// Invert maps a selection through the context x scale into a focus window
// with Start <= End.
func Invert(e Extent, x scale.TimeScale) core.TimeWindow {
	return core.NewTimeWindow(x.Invert(e.X0), x.Invert(e.X1))
}

// DefaultSelection is the initial brush: from the sample at position
// floor(n*startFrac) to the one at floor(n*endFrac), by index and not by
// time. The fractions are a display heuristic, not derived from the data.
func DefaultSelection(samples []core.Sample, x scale.TimeScale, startFrac, endFrac float64) (Extent, bool) {
	usable := series.ValidSamples(samples)
	start, end, ok := series.DefaultWindowIndices(len(usable), startFrac, endFrac)
	if !ok {
		return Extent{}, false
	}
	e := Extent{
		X0: x.Apply(usable[start].Timestamp),
		X1: x.Apply(usable[end].Timestamp),
	}.Ordered()
	return e, true
}
