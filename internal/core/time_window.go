package core

import "time"

// TimeWindow is a closed time interval [Start, End].
type TimeWindow struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// NewTimeWindow orders its arguments so that Start <= End.
func NewTimeWindow(a, b time.Time) TimeWindow {
	if b.Before(a) {
		a, b = b, a
	}
	return TimeWindow{Start: a, End: b}
}

func (tw TimeWindow) Duration() time.Duration {
	return tw.End.Sub(tw.Start)
}

// Empty reports a zero-width or unset window.
func (tw TimeWindow) Empty() bool {
	return tw.Start.IsZero() || tw.End.IsZero() || !tw.End.After(tw.Start)
}

func (tw TimeWindow) Contains(t time.Time) bool {
	return !t.Before(tw.Start) && !t.After(tw.End)
}

// Clamp limits the window to bounds, keeping it ordered.
func (tw TimeWindow) Clamp(bounds TimeWindow) TimeWindow {
	start, end := tw.Start, tw.End
	if start.Before(bounds.Start) {
		start = bounds.Start
	}
	if end.After(bounds.End) {
		end = bounds.End
	}
	return NewTimeWindow(start, end)
}

// Label renders the window for headers, e.g. "2024-03-01 10:00:00 → 2024-03-01 12:30:00".
func (tw TimeWindow) Label() string {
	if tw.Start.IsZero() && tw.End.IsZero() {
		return "—"
	}
	return tw.Start.Format(TimestampLayout) + " → " + tw.End.Format(TimestampLayout)
}
