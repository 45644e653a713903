// Package scale maps time and value domains onto pane coordinates.
package scale

import (
	"math"
	"time"

	"github.com/janekbaraniewski/focuschart/internal/core"
)

// TimeEpsilon pads a single-instant domain on both sides.
const TimeEpsilon = time.Second

// TimeScale maps instants in Domain linearly onto Range.
type TimeScale struct {
	Domain core.TimeWindow
	Range  [2]float64
}

func NewTimeScale(domain core.TimeWindow, r0, r1 float64) TimeScale {
	return TimeScale{Domain: padTimeDomain(domain), Range: [2]float64{r0, r1}}
}

func padTimeDomain(d core.TimeWindow) core.TimeWindow {
	if d.Start.IsZero() && d.End.IsZero() {
		epoch := time.Unix(0, 0).UTC()
		return core.TimeWindow{Start: epoch.Add(-TimeEpsilon), End: epoch.Add(TimeEpsilon)}
	}
	d = core.NewTimeWindow(d.Start, d.End)
	if !d.End.After(d.Start) {
		return core.TimeWindow{Start: d.Start.Add(-TimeEpsilon), End: d.Start.Add(TimeEpsilon)}
	}
	return d
}

const (
	maxDuration = time.Duration(math.MaxInt64)
	minDuration = time.Duration(math.MinInt64)
)

// secondsBetween is b-a in seconds. time.Time.Sub saturates near 292 years,
// so longer spans fall back to Unix arithmetic.
func secondsBetween(a, b time.Time) float64 {
	if d := b.Sub(a); d > minDuration && d < maxDuration {
		return d.Seconds()
	}
	return float64(b.Unix()-a.Unix()) + float64(b.Nanosecond()-a.Nanosecond())/1e9
}

// addSeconds is the inverse of secondsBetween.
func addSeconds(t time.Time, secs float64) time.Time {
	if ns := secs * 1e9; math.Abs(ns) < float64(maxDuration) {
		return t.Add(time.Duration(math.Round(ns)))
	}
	whole := math.Floor(secs)
	frac := math.Round((secs - whole) * 1e9)
	return time.Unix(t.Unix()+int64(whole), int64(t.Nanosecond())+int64(frac)).In(t.Location())
}

func (s TimeScale) span() float64 {
	return secondsBetween(s.Domain.Start, s.Domain.End)
}

// Apply maps t to the output range. Instants outside the domain extrapolate.
func (s TimeScale) Apply(t time.Time) float64 {
	span := s.span()
	if span <= 0 {
		return s.Range[0]
	}
	frac := secondsBetween(s.Domain.Start, t) / span
	return s.Range[0] + frac*(s.Range[1]-s.Range[0])
}

// Invert maps a range coordinate back to an instant.
func (s TimeScale) Invert(px float64) time.Time {
	width := s.Range[1] - s.Range[0]
	if width == 0 || math.IsNaN(px) {
		return s.Domain.Start
	}
	frac := (px - s.Range[0]) / width
	if d := s.Domain.End.Sub(s.Domain.Start); d < maxDuration {
		if ns := frac * float64(d); math.Abs(ns) < float64(maxDuration) {
			return s.Domain.Start.Add(time.Duration(math.Round(ns)))
		}
	}
	return addSeconds(s.Domain.Start, frac*s.span())
}

// WithDomain returns a copy using a different domain and the same range.
func (s TimeScale) WithDomain(d core.TimeWindow) TimeScale {
	return NewTimeScale(d, s.Range[0], s.Range[1])
}

var tickIntervals = []time.Duration{
	time.Second,
	5 * time.Second,
	15 * time.Second,
	30 * time.Second,
	time.Minute,
	5 * time.Minute,
	15 * time.Minute,
	30 * time.Minute,
	time.Hour,
	3 * time.Hour,
	6 * time.Hour,
	12 * time.Hour,
	24 * time.Hour,
	2 * 24 * time.Hour,
	7 * 24 * time.Hour,
	30 * 24 * time.Hour,
	90 * 24 * time.Hour,
	365 * 24 * time.Hour,
}

// TickInterval picks the smallest calendar-ish step giving at most n ticks.
func (s TimeScale) TickInterval(n int) time.Duration {
	if n < 1 {
		n = 1
	}
	span := s.span()
	for _, iv := range tickIntervals {
		if math.Floor(span/iv.Seconds()) <= float64(n) {
			return iv
		}
	}
	last := tickIntervals[len(tickIntervals)-1]
	k := math.Floor(span / last.Seconds() / float64(n))
	if (k+1)*float64(last) >= float64(maxDuration) {
		return last * (maxDuration / last)
	}
	return last * time.Duration(k+1)
}

// Ticks returns aligned instants inside the domain, at most 4n+2 of them.
func (s TimeScale) Ticks(n int) []time.Time {
	if n < 1 {
		n = 1
	}
	iv := s.TickInterval(n)
	// Spans beyond the largest interval skip intervals to stay near n ticks.
	stride := int(math.Max(1, math.Ceil(math.Floor(s.span()/iv.Seconds())/float64(n))))
	first := s.Domain.Start.Truncate(iv)
	if first.Before(s.Domain.Start) {
		first = first.Add(iv)
	}
	var out []time.Time
	for t := first; !t.After(s.Domain.End) && len(out) < 4*n+2; {
		out = append(out, t)
		for i := 0; i < stride; i++ {
			t = t.Add(iv)
		}
	}
	return out
}

// TickFormat returns a label formatter whose precision matches the tick
// interval.
func (s TimeScale) TickFormat(n int) func(time.Time) string {
	iv := s.TickInterval(n)
	layout := "Jan 02"
	switch {
	case iv < time.Minute:
		layout = "15:04:05"
	case iv < 24*time.Hour:
		layout = "15:04"
	case iv >= 365*24*time.Hour:
		layout = "2006"
	}
	return func(t time.Time) string { return t.UTC().Format(layout) }
}
