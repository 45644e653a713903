package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type StripStyles struct {
	Track     lipgloss.Style
	Selection lipgloss.Style
	Handle    lipgloss.Style
}

// RenderBrushStrip draws the brush overlay under the context pane. x0 and x1
// are selection edges in plot cells; a cell belongs to the selection when
// its centre lies inside [x0, x1].
func RenderBrushStrip(l Layout, x0, x1 float64, active bool, st StripStyles) string {
	var sb strings.Builder
	sb.WriteString(strings.Repeat(" ", l.GutterWidth+1))
	if x1 < x0 {
		x0, x1 = x1, x0
	}
	first, last := -1, -1
	if active {
		for i := 0; i < l.PlotWidth; i++ {
			c := float64(i) + 0.5
			if c >= x0 && c <= x1 {
				if first < 0 {
					first = i
				}
				last = i
			}
		}
	}
	for i := 0; i < l.PlotWidth; i++ {
		switch {
		case first >= 0 && (i == first || i == last):
			sb.WriteString(st.Handle.Render("┃"))
		case first >= 0 && i > first && i < last:
			sb.WriteString(st.Selection.Render("━"))
		default:
			sb.WriteString(st.Track.Render("─"))
		}
	}
	return sb.String()
}

// RenderLegend lists each path's measurement in its line color.
func RenderLegend(paths []Path, label lipgloss.Style) string {
	parts := make([]string, 0, len(paths))
	for _, p := range paths {
		marker := p.Style.Lipgloss().Render("●")
		parts = append(parts, marker+" "+label.Render(p.Measurement))
	}
	return strings.Join(parts, "   ")
}
