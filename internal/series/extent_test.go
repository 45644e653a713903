package series

import (
	"testing"
	"time"

	"github.com/janekbaraniewski/focuschart/internal/core"
)

func TestTimeExtentIgnoresInvalidSamples(t *testing.T) {
	t0 := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	samples := []core.Sample{
		{Timestamp: t0.Add(time.Hour), Value: 1, Valid: true},
		{Timestamp: t0.Add(-time.Hour), Value: 1},
		{Timestamp: t0, Value: 1, Valid: true},
	}
	ext, ok := TimeExtent(samples)
	if !ok {
		t.Fatal("expected extent")
	}
	if !ext.Start.Equal(t0) || !ext.End.Equal(t0.Add(time.Hour)) {
		t.Fatalf("extent = %v", ext)
	}
}

func TestExtentsOfEmptyInput(t *testing.T) {
	if _, ok := TimeExtent(nil); ok {
		t.Error("TimeExtent(nil) should report no extent")
	}
	if _, ok := ValueExtent([]core.Sample{{Value: 4}}); ok {
		t.Error("ValueExtent of invalid-only input should report no extent")
	}
}

func TestValueExtentWithin(t *testing.T) {
	t0 := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	samples := []core.Sample{
		{Timestamp: t0, Value: 100, Valid: true},
		{Timestamp: t0.Add(time.Minute), Value: 5, Valid: true},
		{Timestamp: t0.Add(2 * time.Minute), Value: 7, Valid: true},
	}
	window := core.NewTimeWindow(t0.Add(30*time.Second), t0.Add(3*time.Minute))
	r, ok := ValueExtentWithin(samples, window)
	if !ok || r.Min != 5 || r.Max != 7 {
		t.Fatalf("ValueExtentWithin = %+v, %v", r, ok)
	}
	full, _ := ValueExtent(samples)
	if full.Max != 100 {
		t.Errorf("ValueExtent.Max = %v, want 100", full.Max)
	}
}

func TestDefaultWindowIndices(t *testing.T) {
	tests := []struct {
		n          int
		start, end int
		ok         bool
	}{
		{0, 0, 0, false},
		{1, 0, 0, true},
		{10, 3, 6, true},
		{25, 7, 15, true},
	}
	for _, tt := range tests {
		start, end, ok := DefaultWindowIndices(tt.n, 0.3, 0.6)
		if start != tt.start || end != tt.end || ok != tt.ok {
			t.Errorf("DefaultWindowIndices(%d) = %d, %d, %v; want %d, %d, %v",
				tt.n, start, end, ok, tt.start, tt.end, tt.ok)
		}
	}
}
