package series

import (
	"time"

	"github.com/janekbaraniewski/focuschart/internal/core"
)

// TimeExtent returns the earliest and latest timestamps among usable samples.
func TimeExtent(samples []core.Sample) (core.TimeWindow, bool) {
	var first, last time.Time
	found := false
	for _, s := range samples {
		if !s.Usable() {
			continue
		}
		if !found {
			first, last = s.Timestamp, s.Timestamp
			found = true
			continue
		}
		if s.Timestamp.Before(first) {
			first = s.Timestamp
		}
		if s.Timestamp.After(last) {
			last = s.Timestamp
		}
	}
	if !found {
		return core.TimeWindow{}, false
	}
	return core.TimeWindow{Start: first, End: last}, true
}

// ValueExtent returns min and max over usable samples.
func ValueExtent(samples []core.Sample) (core.ValueRange, bool) {
	return valueExtent(samples, func(core.Sample) bool { return true })
}

// ValueExtentWithin is ValueExtent restricted to samples inside window.
func ValueExtentWithin(samples []core.Sample, window core.TimeWindow) (core.ValueRange, bool) {
	return valueExtent(samples, func(s core.Sample) bool { return window.Contains(s.Timestamp) })
}

func valueExtent(samples []core.Sample, keep func(core.Sample) bool) (core.ValueRange, bool) {
	var r core.ValueRange
	found := false
	for _, s := range samples {
		if !s.Usable() || !keep(s) {
			continue
		}
		if !found {
			r = core.ValueRange{Min: s.Value, Max: s.Value}
			found = true
			continue
		}
		if s.Value < r.Min {
			r.Min = s.Value
		}
		if s.Value > r.Max {
			r.Max = s.Value
		}
	}
	return r, found
}

// DefaultWindowIndices picks the sample positions that bound the initial
// brush: floor(n*startFrac) and floor(n*endFrac), clamped to the slice. This
// is a positional heuristic and ignores gaps in time.
func DefaultWindowIndices(n int, startFrac, endFrac float64) (int, int, bool) {
	if n <= 0 {
		return 0, 0, false
	}
	if endFrac < startFrac {
		startFrac, endFrac = endFrac, startFrac
	}
	start := clampIndex(int(float64(n)*startFrac), n)
	end := clampIndex(int(float64(n)*endFrac), n)
	return start, end, true
}

func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
