package classify

import (
	"github.com/charmbracelet/lipgloss"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// PercentColor is an RGB triple with each component in 0..100.
type PercentColor struct {
	R, G, B float64
}

// Color converts the percentage triple into a terminal color. Components
// outside 0..100 are clamped.
func (p PercentColor) Color() lipgloss.Color {
	c := colorful.Color{R: p.R / 100, G: p.G / 100, B: p.B / 100}.Clamped()
	return lipgloss.Color(c.Hex())
}

// Palette maps the semantic color names used by the chart to terminal colors.
type Palette struct {
	Blue        lipgloss.Color
	Purple      lipgloss.Color
	Red         lipgloss.Color
	Green       lipgloss.Color
	NeutralGray lipgloss.Color
}

var defaultPercentColors = struct {
	blue, purple, red, green, lightgray PercentColor
}{
	blue:      PercentColor{R: 12, G: 47, B: 71},
	purple:    PercentColor{R: 46, G: 29, B: 64},
	red:       PercentColor{R: 89, G: 15, B: 21},
	green:     PercentColor{R: 17, G: 62, B: 33},
	lightgray: PercentColor{R: 75, G: 75, B: 75},
}

func DefaultPalette() Palette {
	c := defaultPercentColors
	return Palette{
		Blue:        c.blue.Color(),
		Purple:      c.purple.Color(),
		Red:         c.red.Color(),
		Green:       c.green.Color(),
		NeutralGray: c.lightgray.Color(),
	}
}

// WithFallbacks fills unset entries from DefaultPalette.
func (p Palette) WithFallbacks() Palette {
	d := DefaultPalette()
	if p.Blue == "" {
		p.Blue = d.Blue
	}
	if p.Purple == "" {
		p.Purple = d.Purple
	}
	if p.Red == "" {
		p.Red = d.Red
	}
	if p.Green == "" {
		p.Green = d.Green
	}
	if p.NeutralGray == "" {
		p.NeutralGray = d.NeutralGray
	}
	return p
}
