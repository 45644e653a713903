package render

import "github.com/NimbleMarkets/ntcharts/canvas"

// Rect is the clip region of a pane in scale coordinates.
type Rect struct {
	MinX, MinY, MaxX, MaxY float64
}

func (r Rect) Contains(p canvas.Float64Point) bool {
	return p.X >= r.MinX && p.X <= r.MaxX && p.Y >= r.MinY && p.Y <= r.MaxY
}

// ClipSegment clips the segment a-b to r (Liang-Barsky). ok is false when
// the segment lies entirely outside.
func ClipSegment(a, b canvas.Float64Point, r Rect) (canvas.Float64Point, canvas.Float64Point, bool) {
	dx := b.X - a.X
	dy := b.Y - a.Y
	t0, t1 := 0.0, 1.0

	edges := [4][2]float64{
		{-dx, a.X - r.MinX},
		{dx, r.MaxX - a.X},
		{-dy, a.Y - r.MinY},
		{dy, r.MaxY - a.Y},
	}
	for _, e := range edges {
		p, q := e[0], e[1]
		if p == 0 {
			if q < 0 {
				return a, b, false
			}
			continue
		}
		t := q / p
		if p < 0 {
			if t > t1 {
				return a, b, false
			}
			if t > t0 {
				t0 = t
			}
		} else {
			if t < t0 {
				return a, b, false
			}
			if t < t1 {
				t1 = t
			}
		}
	}
	ca := canvas.Float64Point{X: a.X + t0*dx, Y: a.Y + t0*dy}
	cb := canvas.Float64Point{X: a.X + t1*dx, Y: a.Y + t1*dy}
	return ca, cb, true
}
