package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/janekbaraniewski/focuschart/internal/classify"
)

// ─── Help Overlay ───────────────────────────────────────────────────────────

// renderHelpOverlay draws a centered popup with the line legend and the
// keybindings. Any key dismisses it.
func (m Model) renderHelpOverlay(screenW, screenH int) string {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	headingStyle := lipgloss.NewStyle().Bold(true).Foreground(colorText)
	descStyle := lipgloss.NewStyle().Foreground(colorSubtext)
	dimHintStyle := lipgloss.NewStyle().Foreground(colorDim).Italic(true)

	var lines []string
	lines = append(lines, titleStyle.Render("  focuschart help"), "")

	lines = append(lines, headingStyle.Render("  Lines"), "")
	classes := []struct {
		style classify.Style
		label string
		desc  string
	}{
		{classify.Style{Color: linePalette.Red, Opacity: classify.OpacityFull}, "amplitude", "flagged amp in the label file"},
		{classify.Style{Color: linePalette.Green, Opacity: classify.OpacityFull}, "phase", "flagged phs in the label file"},
		{classify.Style{Color: linePalette.NeutralGray, Opacity: classify.OpacityNeutral}, "neutral", "unlabelled measurements, drawn faint"},
	}
	for _, c := range classes {
		marker := c.style.Lipgloss().Render("━━")
		lines = append(lines, "    "+marker+" "+padRight(c.label, 11)+descStyle.Render(c.desc))
	}
	lines = append(lines, "")

	lines = append(lines, headingStyle.Render("  Keys"), "")
	keys := []struct{ key, desc string }{
		{"← → / h l", "pan the brush"},
		{"⇧← ⇧→ / H L / [ ]", "narrow / widen the brush"},
		{"drag", "select on the overview pane"},
		{"r", "reset to the default window"},
		{"c", "clear the brush (focus keeps its window)"},
		{"v", "toggle focus value axis: fixed / follow"},
		{"t", "cycle theme (" + ThemeName() + ")"},
		{"?", "toggle this help"},
		{"q", "quit"},
	}
	for _, k := range keys {
		lines = append(lines, "    "+helpKeyStyle.Render(padRight(k.key, 20))+descStyle.Render(k.desc))
	}
	lines = append(lines, "", dimHintStyle.Render("  press any key to close"))

	content := strings.Join(lines, "\n")
	boxW := lipgloss.Width(content) + 6
	if boxW > screenW-4 {
		boxW = screenW - 4
	}

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorAccent).
		Padding(1, 2).
		Width(boxW).
		Render(content)

	return lipgloss.Place(screenW, screenH, lipgloss.Center, lipgloss.Center, box)
}
