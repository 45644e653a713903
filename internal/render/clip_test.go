package render

import (
	"math"
	"testing"

	"github.com/NimbleMarkets/ntcharts/canvas"
)

func pt(x, y float64) canvas.Float64Point { return canvas.Float64Point{X: x, Y: y} }

func near(a, b canvas.Float64Point) bool {
	return math.Abs(a.X-b.X) < 1e-9 && math.Abs(a.Y-b.Y) < 1e-9
}

func TestClipSegment(t *testing.T) {
	r := Rect{MinX: 0, MinY: 0, MaxX: 10, MaxY: 10}
	tests := []struct {
		name   string
		a, b   canvas.Float64Point
		ok     bool
		ca, cb canvas.Float64Point
	}{
		{"inside", pt(1, 1), pt(9, 9), true, pt(1, 1), pt(9, 9)},
		{"crosses left edge", pt(-5, 5), pt(5, 5), true, pt(0, 5), pt(5, 5)},
		{"crosses both x edges", pt(-10, 2), pt(20, 2), true, pt(0, 2), pt(10, 2)},
		{"outside right", pt(11, 1), pt(15, 9), false, pt(0, 0), pt(0, 0)},
		{"vertical outside", pt(-1, 0), pt(-1, 10), false, pt(0, 0), pt(0, 0)},
		{"diagonal through corner region", pt(-5, 5), pt(5, 15), true, pt(0, 10), pt(0, 10)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ca, cb, ok := ClipSegment(tt.a, tt.b, r)
			if ok != tt.ok {
				t.Fatalf("ok = %v, want %v", ok, tt.ok)
			}
			if !ok {
				return
			}
			if !near(ca, tt.ca) || !near(cb, tt.cb) {
				t.Fatalf("clipped = %v, %v; want %v, %v", ca, cb, tt.ca, tt.cb)
			}
		})
	}
}
