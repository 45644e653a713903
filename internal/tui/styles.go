package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/janekbaraniewski/focuschart/internal/chart"
	"github.com/janekbaraniewski/focuschart/internal/classify"
	"github.com/janekbaraniewski/focuschart/internal/render"
)

// ─── Color Palette ──────────────────────────────────────────────────────────

var (
	colorBase    lipgloss.Color
	colorSurface lipgloss.Color
	colorText    lipgloss.Color
	colorSubtext lipgloss.Color
	colorDim     lipgloss.Color
	colorAccent  lipgloss.Color

	linePalette classify.Palette
)

// ─── Reusable Styles ────────────────────────────────────────────────────────

var (
	headerStyle     lipgloss.Style
	headerInfoStyle lipgloss.Style
	helpStyle       lipgloss.Style
	helpKeyStyle    lipgloss.Style
	dimStyle        lipgloss.Style
	statusErrStyle  lipgloss.Style
	separatorStyle  lipgloss.Style

	chartAxisStyle   lipgloss.Style
	chartLabelStyle  lipgloss.Style
	chartLegendStyle lipgloss.Style

	brushTrackStyle     lipgloss.Style
	brushSelectionStyle lipgloss.Style
	brushHandleStyle    lipgloss.Style
)

// applyTheme rebinds every color and style. Callers hold themeMu.
func applyTheme(t Theme) {
	colorBase = t.Base
	colorSurface = t.Surface
	colorText = t.Text
	colorSubtext = t.Subtext
	colorDim = t.Dim
	colorAccent = t.Accent
	linePalette = t.Palette()

	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	headerInfoStyle = lipgloss.NewStyle().Foreground(colorText)
	helpStyle = lipgloss.NewStyle().Foreground(colorDim)
	helpKeyStyle = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	dimStyle = lipgloss.NewStyle().Foreground(colorDim)
	statusErrStyle = lipgloss.NewStyle().Foreground(t.Amplitude).Bold(true)
	separatorStyle = lipgloss.NewStyle().Foreground(colorSurface)

	chartAxisStyle = lipgloss.NewStyle().Foreground(colorDim)
	chartLabelStyle = lipgloss.NewStyle().Foreground(colorSubtext)
	chartLegendStyle = lipgloss.NewStyle().Foreground(colorText)

	brushTrackStyle = lipgloss.NewStyle().Foreground(colorDim)
	brushSelectionStyle = lipgloss.NewStyle().Foreground(colorAccent)
	brushHandleStyle = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
}

// ChartOptions returns opts with the active theme's palette and styles.
func ChartOptions(opts chart.Options) chart.Options {
	themeMu.RLock()
	defer themeMu.RUnlock()
	opts.Palette = linePalette
	opts.Styles = render.Styles{Axis: chartAxisStyle, Label: chartLabelStyle}
	opts.Strip = render.StripStyles{Track: brushTrackStyle, Selection: brushSelectionStyle, Handle: brushHandleStyle}
	opts.Legend = chartLegendStyle
	return opts
}

func restyle(s *chart.Session) {
	opts := ChartOptions(chart.Options{})
	s.Restyle(opts.Palette, opts.Styles, opts.Strip, opts.Legend)
}
