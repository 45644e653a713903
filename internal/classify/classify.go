// Package classify decides how each measurement line is styled.
package classify

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/janekbaraniewski/focuschart/internal/core"
)

const (
	OpacityFull    = 1.0
	OpacityNeutral = 0.3
)

// Style is the render style of one measurement line.
type Style struct {
	Kind    core.Classification
	Color   lipgloss.Color
	Opacity float64
}

// Lipgloss returns the terminal style for the line. Terminals have no alpha,
// so the low opacity tier is drawn faint.
func (s Style) Lipgloss() lipgloss.Style {
	st := lipgloss.NewStyle().Foreground(s.Color)
	if s.Opacity < OpacityFull {
		st = st.Faint(true)
	}
	return st
}

// Classify styles a measurement from the label table. It depends only on its
// arguments, so the focus and context panes always agree.
func Classify(measurement string, labels core.LabelTable, palette Palette) Style {
	switch labels.Lookup(measurement) {
	case core.ClassAmplitude:
		return Style{Kind: core.ClassAmplitude, Color: palette.Red, Opacity: OpacityFull}
	case core.ClassPhase:
		return Style{Kind: core.ClassPhase, Color: palette.Green, Opacity: OpacityFull}
	default:
		return Style{Kind: core.ClassNeutral, Color: palette.NeutralGray, Opacity: OpacityNeutral}
	}
}

// Classifier binds a label table and palette.
type Classifier struct {
	Labels  core.LabelTable
	Palette Palette
}

func NewClassifier(labels core.LabelTable, palette Palette) Classifier {
	return Classifier{Labels: labels, Palette: palette.WithFallbacks()}
}

func (c Classifier) Classify(measurement string) Style {
	return Classify(measurement, c.Labels, c.Palette)
}
