package scale

import (
	"math"
	"strings"
	"testing"
	"time"

	"github.com/janekbaraniewski/focuschart/internal/core"
)

var d0 = time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

func samplesAt(values ...float64) []core.Sample {
	out := make([]core.Sample, len(values))
	for i, v := range values {
		out[i] = core.Sample{
			Timestamp:   d0.Add(time.Duration(i) * time.Minute),
			Value:       v,
			Measurement: "m",
			Valid:       true,
		}
	}
	return out
}

func TestComputeContextScalesFitsExtent(t *testing.T) {
	samples := samplesAt(3, -2, 8, 5)
	s := ComputeContextScales(samples, 700, 100)

	if !s.X.Domain.Start.Equal(d0) || !s.X.Domain.End.Equal(d0.Add(3*time.Minute)) {
		t.Fatalf("X domain = %v", s.X.Domain)
	}
	if s.Y.Domain.Min != -2 || s.Y.Domain.Max != 8 {
		t.Fatalf("Y domain = %+v", s.Y.Domain)
	}
	if got := s.Y.Apply(8); got != 0 {
		t.Errorf("Y(max) = %v, want 0 (top)", got)
	}
	if got := s.Y.Apply(-2); got != 100 {
		t.Errorf("Y(min) = %v, want 100 (bottom)", got)
	}
	if got := s.X.Apply(d0.Add(3 * time.Minute)); got != 700 {
		t.Errorf("X(end) = %v, want 700", got)
	}
}

func TestComputeContextScalesIsIdempotent(t *testing.T) {
	samples := samplesAt(1, 4, 2, 9, 3)
	a := ComputeContextScales(samples, 700, 100)
	b := ComputeContextScales(samples, 700, 100)
	if a != b {
		t.Fatalf("scales differ: %+v vs %+v", a, b)
	}
}

func TestComputeContextScalesSkipsInvalidSamples(t *testing.T) {
	samples := samplesAt(1, 2, 3)
	samples = append(samples, core.Sample{Value: math.NaN(), Measurement: "m"})
	s := ComputeContextScales(samples, 700, 100)
	if math.IsNaN(s.Y.Domain.Min) || math.IsNaN(s.Y.Domain.Max) {
		t.Fatalf("NaN leaked into value domain: %+v", s.Y.Domain)
	}
	if s.X.Domain.Start.IsZero() {
		t.Fatal("invalid timestamp leaked into time domain")
	}
}

func TestComputeFocusScalesUsesWindowExactly(t *testing.T) {
	samples := samplesAt(1, 2, 3, 4, 5, 6)
	windows := []core.TimeWindow{
		core.NewTimeWindow(d0, d0.Add(5*time.Minute)),
		core.NewTimeWindow(d0.Add(time.Minute), d0.Add(2*time.Minute)),
		core.NewTimeWindow(d0.Add(90*time.Second), d0.Add(4*time.Minute+7*time.Second)),
	}
	for _, w := range windows {
		s := ComputeFocusScales(samples, w, 700, 250, core.ValueScaleFixed)
		if !s.X.Domain.Start.Equal(w.Start) || !s.X.Domain.End.Equal(w.End) {
			t.Errorf("focus X domain = %v, want %v", s.X.Domain, w)
		}
	}
}

func TestComputeFocusScalesValueModes(t *testing.T) {
	samples := samplesAt(100, 1, 2, 3, 200)
	window := core.NewTimeWindow(d0.Add(time.Minute), d0.Add(3*time.Minute))

	fixed := ComputeFocusScales(samples, window, 700, 250, core.ValueScaleFixed)
	if fixed.Y.Domain.Min != 1 || fixed.Y.Domain.Max != 200 {
		t.Errorf("fixed Y domain = %+v, want full extent", fixed.Y.Domain)
	}

	follow := ComputeFocusScales(samples, window, 700, 250, core.ValueScaleFollow)
	if follow.Y.Domain.Min != 1 || follow.Y.Domain.Max != 3 {
		t.Errorf("follow Y domain = %+v, want [1 3]", follow.Y.Domain)
	}

	empty := core.NewTimeWindow(d0.Add(10*time.Hour), d0.Add(11*time.Hour))
	fallback := ComputeFocusScales(samples, empty, 700, 250, core.ValueScaleFollow)
	if fallback.Y.Domain.Max != 200 {
		t.Errorf("follow with empty window = %+v, want full extent", fallback.Y.Domain)
	}
}

func TestDegenerateDomainsArePadded(t *testing.T) {
	tests := []struct {
		name    string
		samples []core.Sample
	}{
		{"empty", nil},
		{"single", samplesAt(42)},
		{"flat", samplesAt(7, 7, 7)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := ComputeContextScales(tt.samples, 700, 100)
			if !s.X.Domain.End.After(s.X.Domain.Start) {
				t.Fatalf("X domain not widened: %v", s.X.Domain)
			}
			if !(s.Y.Domain.Max > s.Y.Domain.Min) {
				t.Fatalf("Y domain not widened: %+v", s.Y.Domain)
			}
			for _, v := range []float64{s.X.Apply(s.X.Domain.Start), s.Y.Apply(0), s.Y.Invert(50)} {
				if math.IsNaN(v) || math.IsInf(v, 0) {
					t.Fatalf("non-finite geometry %v", v)
				}
			}
		})
	}
}

func TestFlatSeriesPlotsMidHeight(t *testing.T) {
	s := ComputeContextScales(samplesAt(7, 7), 700, 100)
	if got := s.Y.Apply(7); math.Abs(got-50) > 1e-9 {
		t.Fatalf("Y(7) = %v, want 50", got)
	}
}

func TestTimeScaleInvertRoundTrip(t *testing.T) {
	ts := NewTimeScale(core.NewTimeWindow(d0, d0.Add(10000*time.Second)), 0, 700)
	for _, px := range []float64{0, 1, 100, 333.3, 699.9, 700} {
		back := ts.Apply(ts.Invert(px))
		if math.Abs(back-px) > 1e-6 {
			t.Errorf("Apply(Invert(%v)) = %v", px, back)
		}
	}
}

func TestLinearScaleInvertRoundTrip(t *testing.T) {
	ls := NewLinearScale(core.ValueRange{Min: -3, Max: 12}, 250, 0)
	for _, px := range []float64{0, 17.5, 125, 250} {
		if back := ls.Apply(ls.Invert(px)); math.Abs(back-px) > 1e-9 {
			t.Errorf("Apply(Invert(%v)) = %v", px, back)
		}
	}
}

func TestLinearTicksAreNice(t *testing.T) {
	ls := NewLinearScale(core.ValueRange{Min: 0, Max: 10}, 100, 0)
	ticks := ls.Ticks(5)
	want := []float64{0, 2, 4, 6, 8, 10}
	if len(ticks) != len(want) {
		t.Fatalf("Ticks = %v, want %v", ticks, want)
	}
	for i := range want {
		if ticks[i] != want[i] {
			t.Fatalf("Ticks = %v, want %v", ticks, want)
		}
	}
	if got := ls.TickFormat(5)(4); got != "4" {
		t.Errorf("TickFormat(4) = %q", got)
	}

	small := NewLinearScale(core.ValueRange{Min: 0, Max: 1}, 100, 0)
	if got := small.TickFormat(5)(0.2); got != "0.2" {
		t.Errorf("small TickFormat(0.2) = %q", got)
	}
}

func TestLinearScaleOverflowingSpan(t *testing.T) {
	ls := NewLinearScale(core.ValueRange{Min: -1e308, Max: 1e308}, 20, 0)
	if span := ls.Domain.Span(); math.IsInf(span, 0) || math.IsNaN(span) {
		t.Fatalf("span = %v, want finite", span)
	}

	ticks := ls.Ticks(5)
	if len(ticks) == 0 || len(ticks) > 4*5+2 {
		t.Fatalf("len(Ticks) = %d", len(ticks))
	}
	format := ls.TickFormat(5)
	for _, v := range ticks {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("non-finite tick %v", v)
		}
		if label := format(v); strings.Contains(label, "NaN") || len(label) > 12 {
			t.Errorf("label %q", label)
		}
	}
	for _, v := range []float64{-1e308, 0, 1e308, math.MaxFloat64} {
		if px := ls.Apply(v); math.IsNaN(px) || math.IsInf(px, 0) {
			t.Errorf("Apply(%v) = %v", v, px)
		}
	}
}

func TestTimeScaleBeyondDurationRange(t *testing.T) {
	start := time.Date(1000, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(3000, 1, 1, 0, 0, 0, 0, time.UTC)
	mid := time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
	ts := NewTimeScale(core.NewTimeWindow(start, end), 0, 1000)

	if got := ts.Apply(end); math.Abs(got-1000) > 1e-6 {
		t.Errorf("Apply(end) = %v, want 1000", got)
	}
	if got := ts.Apply(mid); math.Abs(got-500) > 1 {
		t.Errorf("Apply(mid) = %v, want about 500", got)
	}
	if got := ts.Invert(1000); got.Sub(end).Abs() > time.Second {
		t.Errorf("Invert(1000) = %v, want %v", got, end)
	}
	if got := ts.Invert(500); got.Sub(mid).Abs() > 24*time.Hour {
		t.Errorf("Invert(500) = %v, want about %v", got, mid)
	}

	ticks := ts.Ticks(5)
	if len(ticks) == 0 || len(ticks) > 4*5+2 {
		t.Fatalf("len(Ticks) = %d", len(ticks))
	}
	for _, tick := range ticks {
		if !ts.Domain.Contains(tick) {
			t.Errorf("tick %v outside domain", tick)
		}
	}
}

func TestTimeTicksAlignToInterval(t *testing.T) {
	ts := NewTimeScale(core.NewTimeWindow(d0.Add(7*time.Minute), d0.Add(67*time.Minute)), 0, 700)
	iv := ts.TickInterval(5)
	if iv != 15*time.Minute {
		t.Fatalf("TickInterval = %v, want 15m", iv)
	}
	for _, tick := range ts.Ticks(5) {
		if tick.Minute()%15 != 0 || tick.Second() != 0 {
			t.Errorf("tick %v not aligned", tick)
		}
		if !ts.Domain.Contains(tick) {
			t.Errorf("tick %v outside domain", tick)
		}
	}
	if got := ts.TickFormat(5)(d0.Add(15 * time.Minute)); got != "10:15" {
		t.Errorf("TickFormat = %q, want 10:15", got)
	}
}

func TestModelFocusWindow(t *testing.T) {
	samples := samplesAt(1, 2, 3, 4)
	m := NewModel(samples, core.Size{Width: 70, Height: 20}, core.Size{Width: 70, Height: 6}, core.ValueScaleFixed)
	if m.Focus.X.Domain != m.Context.X.Domain {
		t.Fatalf("initial focus should span the context domain")
	}

	w := core.NewTimeWindow(d0.Add(time.Minute), d0.Add(2*time.Minute))
	m.SetFocusWindow(w)
	if m.Focus.X.Domain != w {
		t.Fatalf("focus domain = %v, want %v", m.Focus.X.Domain, w)
	}
	if !m.Context.X.Domain.Start.Equal(d0) {
		t.Fatal("context domain must not move")
	}

	vs := m.ViewState(core.Size{Width: 80, Height: 30})
	if vs.FocusDomain != w || vs.ContainerSize.Width != 80 {
		t.Fatalf("ViewState = %+v", vs)
	}
}
