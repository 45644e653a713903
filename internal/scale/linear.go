package scale

import (
	"math"
	"strconv"

	"github.com/janekbaraniewski/focuschart/internal/core"
)

// LinearScale maps values in Domain linearly onto Range.
type LinearScale struct {
	Domain core.ValueRange
	Range  [2]float64
}

func NewLinearScale(domain core.ValueRange, r0, r1 float64) LinearScale {
	return LinearScale{Domain: padValueDomain(domain), Range: [2]float64{r0, r1}}
}

// ValueEpsilon returns the half-width used around a single-value domain.
func ValueEpsilon(v float64) float64 {
	return math.Max(math.Abs(v)*0.05, 0.5)
}

func padValueDomain(d core.ValueRange) core.ValueRange {
	if math.IsNaN(d.Min) || math.IsNaN(d.Max) || math.IsInf(d.Min, 0) || math.IsInf(d.Max, 0) {
		return core.ValueRange{Min: -ValueEpsilon(0), Max: ValueEpsilon(0)}
	}
	if d.Max < d.Min {
		d.Min, d.Max = d.Max, d.Min
	}
	if d.Max == d.Min {
		eps := ValueEpsilon(d.Min)
		return core.ValueRange{Min: d.Min - eps, Max: d.Max + eps}
	}
	// Finite ends can still overflow the span; shrink toward zero until the
	// width is representable.
	for math.IsInf(d.Span(), 0) {
		d.Min /= 2
		d.Max /= 2
	}
	return d
}

// offset returns (v-from)/span without overflowing when v and from sit at
// opposite ends of the float range.
func offset(v, from, span float64) float64 {
	if diff := v - from; !math.IsInf(diff, 0) {
		return diff / span
	}
	return v/span - from/span
}

func (s LinearScale) Apply(v float64) float64 {
	span := s.Domain.Span()
	if span == 0 {
		return s.Range[0]
	}
	return s.Range[0] + offset(v, s.Domain.Min, span)*(s.Range[1]-s.Range[0])
}

func (s LinearScale) Invert(px float64) float64 {
	width := s.Range[1] - s.Range[0]
	if width == 0 {
		return s.Domain.Min
	}
	return s.Domain.Min + (px-s.Range[0])/width*s.Domain.Span()
}

func (s LinearScale) WithDomain(d core.ValueRange) LinearScale {
	return NewLinearScale(d, s.Range[0], s.Range[1])
}

// TickStep returns a 1, 2 or 5 times power-of-ten step giving about n ticks.
func (s LinearScale) TickStep(n int) float64 {
	if n < 1 {
		n = 1
	}
	raw := s.Domain.Span() / float64(n)
	if raw <= 0 || math.IsNaN(raw) || math.IsInf(raw, 0) {
		return 1
	}
	power := math.Pow(10, math.Floor(math.Log10(raw)))
	switch err := raw / power; {
	case err >= math.Sqrt(50):
		return 10 * power
	case err >= math.Sqrt(10):
		return 5 * power
	case err >= math.Sqrt(2):
		return 2 * power
	default:
		return power
	}
}

// Ticks returns multiples of TickStep inside the domain, at most 4n+2 of them.
func (s LinearScale) Ticks(n int) []float64 {
	if n < 1 {
		n = 1
	}
	step := s.TickStep(n)
	start := math.Ceil(s.Domain.Min/step) * step
	if !finite(step) || !finite(start) || step <= 0 {
		return nil
	}
	var out []float64
	for i := 0; i <= 4*n+1; i++ {
		v := start + float64(i)*step
		if v > s.Domain.Max+step*1e-9 {
			break
		}
		out = append(out, roundTo(v, step))
	}
	return out
}

// TickFormat formats values with as many decimals as the step needs.
func (s LinearScale) TickFormat(n int) func(float64) string {
	step := s.TickStep(n)
	decimals := 0
	if step < 1 {
		decimals = int(math.Ceil(-math.Log10(step)))
	}
	return func(v float64) string {
		return formatCompact(v, decimals)
	}
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func roundTo(v, step float64) float64 {
	if step >= 1 {
		return math.Round(v)
	}
	p := math.Pow(10, math.Ceil(-math.Log10(step)))
	return math.Round(v*p) / p
}

func formatCompact(v float64, decimals int) string {
	abs := math.Abs(v)
	switch {
	case abs >= 1e9:
		return strconv.FormatFloat(v, 'g', 3, 64)
	case abs >= 1_000_000:
		return strconv.FormatFloat(v/1_000_000, 'f', 1, 64) + "M"
	case abs >= 10_000:
		return strconv.FormatFloat(v/1_000, 'f', 1, 64) + "K"
	}
	return strconv.FormatFloat(v, 'f', decimals, 64)
}
