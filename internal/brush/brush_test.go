package brush

import (
	"math"
	"testing"
	"time"

	"github.com/janekbaraniewski/focuschart/internal/core"
	"github.com/janekbaraniewski/focuschart/internal/scale"
)

var d0 = time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

func contextScale() scale.TimeScale {
	return scale.NewTimeScale(core.NewTimeWindow(d0, d0.Add(10000*time.Second)), 0, 700)
}

type recorder struct {
	events []SelectionChanged
}

func (r *recorder) record(ev SelectionChanged) { r.events = append(r.events, ev) }

func (r *recorder) last() SelectionChanged { return r.events[len(r.events)-1] }

func TestInvertBrushScenario(t *testing.T) {
	w := Invert(Extent{X0: 100, X1: 300}, contextScale())

	wantStart := d0.Add(time.Duration(1428.5714 * float64(time.Second)))
	wantEnd := d0.Add(time.Duration(4285.7143 * 1e9))
	if d := w.Start.Sub(wantStart); d > time.Millisecond || d < -time.Millisecond {
		t.Errorf("start = %v, want ≈ %v", w.Start, wantStart)
	}
	if d := w.End.Sub(wantEnd); d > time.Millisecond || d < -time.Millisecond {
		t.Errorf("end = %v, want ≈ %v", w.End, wantEnd)
	}
}

func TestInvertOrdersReversedExtent(t *testing.T) {
	w := Invert(Extent{X0: 300, X1: 100}, contextScale())
	if w.End.Before(w.Start) {
		t.Fatalf("window not ordered: %v", w)
	}
}

func TestInvertRoundTrip(t *testing.T) {
	x := contextScale()
	for _, e := range []Extent{{0, 700}, {12.5, 13.25}, {350, 699}} {
		w := Invert(e, x)
		if math.Abs(x.Apply(w.Start)-e.X0) > 1e-6 || math.Abs(x.Apply(w.End)-e.X1) > 1e-6 {
			t.Errorf("round trip of %+v = %v, %v", e, x.Apply(w.Start), x.Apply(w.End))
		}
	}
}

func TestDragGestureEmitsContinuously(t *testing.T) {
	rec := &recorder{}
	c := New(700, 1, rec.record)

	c.Press(100)
	if c.State() != Dragging {
		t.Fatalf("state = %v, want dragging", c.State())
	}
	c.Drag(200)
	c.Drag(250)
	c.Release(300)

	if c.State() != Idle {
		t.Fatalf("state = %v, want idle", c.State())
	}
	if len(rec.events) != 3 {
		t.Fatalf("events = %d, want 3", len(rec.events))
	}
	last := rec.last()
	if !last.Final || last.Selection == nil || last.Selection.X0 != 100 || last.Selection.X1 != 300 {
		t.Fatalf("final event = %+v", last)
	}
	if last.Generation != 1 {
		t.Errorf("generation = %d, want 1", last.Generation)
	}
}

func TestDragLeftwardOrdersSelection(t *testing.T) {
	c := New(700, 1, nil)
	c.Press(400)
	c.Release(150)
	sel, ok := c.Selection()
	if !ok || sel.X0 != 150 || sel.X1 != 400 {
		t.Fatalf("selection = %+v, %v", sel, ok)
	}
}

func TestClickWithoutDragClearsSelection(t *testing.T) {
	rec := &recorder{}
	c := New(700, 1, rec.record)
	c.SetSelection(Extent{X0: 10, X1: 50})

	c.Press(600)
	c.Release(600)

	if _, ok := c.Selection(); ok {
		t.Fatal("zero-width gesture should clear the selection")
	}
	if rec.last().Selection != nil {
		t.Fatalf("last event = %+v, want nil selection", rec.last())
	}
}

func TestPressInsideSelectionMovesIt(t *testing.T) {
	c := New(700, 1, nil)
	c.SetSelection(Extent{X0: 100, X1: 200})

	c.Press(150)
	c.Drag(650)
	c.Release(650)

	sel, _ := c.Selection()
	if sel.Width() != 100 {
		t.Fatalf("width = %v, want 100", sel.Width())
	}
	if sel.X1 != 700 {
		t.Fatalf("selection = %+v, want clamped to right edge", sel)
	}
}

func TestKeyboardMoveAndResize(t *testing.T) {
	c := New(100, 1, nil)
	c.SetSelection(Extent{X0: 10, X1: 30})

	c.Move(-50)
	sel, _ := c.Selection()
	if sel.X0 != 0 || sel.X1 != 20 {
		t.Fatalf("after move = %+v", sel)
	}

	c.Resize(10)
	sel, _ = c.Selection()
	if sel.X0 != 0 || sel.X1 != 25 {
		t.Fatalf("after widen = %+v", sel)
	}

	c.Resize(-100)
	sel, _ = c.Selection()
	if sel.Width() < 1 {
		t.Fatalf("narrowed below one unit: %+v", sel)
	}
}

func TestClearEmitsNilSelection(t *testing.T) {
	rec := &recorder{}
	c := New(700, 3, rec.record)
	c.SetSelection(Extent{X0: 1, X1: 2})
	c.Clear()
	if rec.last().Selection != nil {
		t.Fatalf("clear emitted %+v", rec.last())
	}
}

func TestDefaultSelectionUsesPositionalPercentiles(t *testing.T) {
	samples := make([]core.Sample, 10)
	for i := range samples {
		samples[i] = core.Sample{
			Timestamp: d0.Add(time.Duration(i) * 1000 * time.Second),
			Value:     float64(i),
			Valid:     true,
		}
	}
	x := scale.NewTimeScale(core.NewTimeWindow(d0, d0.Add(9000*time.Second)), 0, 900)

	e, ok := DefaultSelection(samples, x, 0.3, 0.6)
	if !ok {
		t.Fatal("expected a default selection")
	}
	if math.Abs(e.X0-300) > 1e-9 || math.Abs(e.X1-600) > 1e-9 {
		t.Fatalf("default = %+v, want [300 600]", e)
	}

	if _, ok := DefaultSelection(nil, x, 0.3, 0.6); ok {
		t.Fatal("empty dataset has no default selection")
	}
}
