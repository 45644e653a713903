package tui

import (
	"fmt"
	"log"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/janekbaraniewski/focuschart/internal/chart"
	"github.com/janekbaraniewski/focuschart/internal/config"
	"github.com/janekbaraniewski/focuschart/internal/core"
	"github.com/janekbaraniewski/focuschart/internal/resize"
	"github.com/janekbaraniewski/focuschart/internal/source"
)

// chartTarget is the only element whose size the coordinator observes.
const chartTarget = "chart"

const (
	headerRows = 1
	footerRows = 2

	minWidth  = 30
	minHeight = 12
)

// DatasetMsg delivers a reloaded dataset, usually from the file watcher.
type DatasetMsg struct {
	Dataset source.Dataset
	Err     error
}

type resizeSettleMsg struct {
	ticket resize.Ticket
}

type settingsPersistedMsg struct {
	what string
	err  error
}

type Options struct {
	Title string // shown in the header, usually the data file name
	Step  int    // brush cells per key press

	// Persist saves theme and value-scale changes to ConfigPath.
	Persist    bool
	ConfigPath string

	Debounce time.Duration
}

type Model struct {
	session *chart.Session
	resize  *resize.Coordinator
	opts    Options

	width    int
	height   int
	showHelp bool
	dragging bool

	status    string
	statusErr bool
}

func NewModel(session *chart.Session, opts Options) Model {
	if opts.Step <= 0 {
		opts.Step = config.DefaultConfig().Brush.Step
	}
	if opts.ConfigPath == "" {
		opts.ConfigPath = config.ConfigPath()
	}
	return Model{
		session: session,
		resize:  resize.NewCoordinator(chartTarget, opts.Debounce),
		opts:    opts,
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Session() *chart.Session { return m.session }

func (m Model) chartSize() core.Size {
	return core.Size{Width: m.width, Height: m.height - headerRows - footerRows}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		t, ok := m.resize.Notify(resize.Notification{Target: chartTarget, Size: m.chartSize()})
		if !ok {
			return m, nil
		}
		return m, tea.Tick(m.resize.Quiet, func(time.Time) tea.Msg {
			return resizeSettleMsg{ticket: t}
		})

	case resizeSettleMsg:
		size, ok := m.resize.Settle(msg.ticket)
		if !ok {
			return m, nil
		}
		m.dragging = false
		if !m.session.Rebuild(size) {
			log.Printf("tui: resize to %dx%d before data was mounted", size.Width, size.Height)
		}
		return m, nil

	case DatasetMsg:
		if msg.Err != nil {
			m.setStatus(fmt.Sprintf("reload failed: %v", msg.Err), true)
			return m, nil
		}
		m.session.Mount(chart.MountRequest{
			Rows:   msg.Dataset.Rows,
			Depths: m.session.Depths(),
			Labels: msg.Dataset.Labels,
		})
		size := m.chartSize()
		if !size.Degenerate() {
			m.session.SetSize(size)
			m.resize.MarkBuilt(size)
		}
		m.session.FocusView(nil)
		m.dragging = false
		m.setStatus(fmt.Sprintf("reloaded %d rows", len(msg.Dataset.Rows)), false)
		return m, nil

	case settingsPersistedMsg:
		if msg.err != nil {
			m.setStatus(msg.what+" save failed", true)
		} else {
			m.setStatus(msg.what+" saved", false)
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		return m.handleMouse(msg)
	}
	return m, nil
}

func (m *Model) setStatus(s string, isErr bool) {
	m.status = s
	m.statusErr = isErr
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		return m, nil
	}
	b := m.session.Brush()
	if b == nil {
		return m, nil
	}
	x, inside := m.session.ContextX(msg.X, msg.Y-headerRows)

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft || !inside {
			return m, nil
		}
		b.Press(x)
		m.dragging = true
	case tea.MouseActionMotion:
		if !m.dragging {
			return m, nil
		}
		// rows outside the context pane still track the column
		x, _ = m.session.ContextX(msg.X, m.session.FocusPane().Layout.Height()+1)
		b.Drag(x)
	case tea.MouseActionRelease:
		if !m.dragging {
			return m, nil
		}
		x, _ = m.session.ContextX(msg.X, m.session.FocusPane().Layout.Height()+1)
		b.Release(x)
		m.dragging = false
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if key == "ctrl+c" {
		return m, tea.Quit
	}
	if key == "?" {
		m.showHelp = !m.showHelp
		return m, nil
	}
	if m.showHelp {
		m.showHelp = false
		return m, nil
	}

	step := float64(m.opts.Step)
	b := m.session.Brush()
	switch key {
	case "q":
		return m, tea.Quit
	case "left", "h":
		if b != nil {
			b.Move(-step)
		}
	case "right", "l":
		if b != nil {
			b.Move(step)
		}
	case "shift+left", "H", "[":
		if b != nil {
			b.Resize(-2 * step)
		}
	case "shift+right", "L", "]":
		if b != nil {
			b.Resize(2 * step)
		}
	case "r":
		m.session.ResetBrush()
		m.setStatus("brush reset", false)
	case "c":
		if b != nil {
			b.Clear()
		}
		m.setStatus("brush cleared", false)
	case "v":
		mode := m.session.ValueScaleMode().Toggle()
		m.session.SetValueScaleMode(mode)
		m.setStatus("value scale: "+mode.String(), false)
		return m, m.persistValueScaleCmd(mode)
	case "t":
		name := CycleTheme()
		restyle(m.session)
		m.setStatus("theme: "+name, false)
		return m, m.persistThemeCmd(name)
	}
	return m, nil
}

func (m Model) persistThemeCmd(name string) tea.Cmd {
	if !m.opts.Persist {
		return nil
	}
	path := m.opts.ConfigPath
	return func() tea.Msg {
		err := config.SaveThemeTo(path, name)
		if err != nil {
			log.Printf("theme persist: %v", err)
		}
		return settingsPersistedMsg{what: "theme", err: err}
	}
}

func (m Model) persistValueScaleCmd(mode core.ValueScaleMode) tea.Cmd {
	if !m.opts.Persist {
		return nil
	}
	path := m.opts.ConfigPath
	return func() tea.Msg {
		err := config.SaveValueScaleTo(path, mode)
		if err != nil {
			log.Printf("value scale persist: %v", err)
		}
		return settingsPersistedMsg{what: "value scale", err: err}
	}
}

func (m Model) View() string {
	if m.width < minWidth || m.height < minHeight {
		return dimStyle.Render(fmt.Sprintf("\n  Terminal too small. Resize to at least %d×%d.", minWidth, minHeight))
	}
	if m.showHelp {
		return m.renderHelpOverlay(m.width, m.height)
	}
	if !m.session.Built() {
		return dimStyle.Render("\n  Loading chart…")
	}

	var sb strings.Builder
	sb.WriteString(m.renderHeader(m.width))
	sb.WriteString("\n")
	body := m.session.View()
	lines := strings.Split(body, "\n")
	if room := m.height - headerRows - footerRows; len(lines) > room {
		lines = lines[:room]
	}
	for i, line := range lines {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(fitAnsiWidth(line, m.width))
	}
	for i := len(lines); i < m.height-headerRows-footerRows; i++ {
		sb.WriteString("\n")
	}
	sb.WriteString("\n")
	sb.WriteString(m.renderFooter(m.width))
	return sb.String()
}

func (m Model) renderHeader(w int) string {
	title := headerStyle.Render(" focuschart")
	if m.opts.Title != "" {
		title += dimStyle.Render(" · ") + headerInfoStyle.Render(m.opts.Title)
	}
	vs := m.session.ViewState()
	info := headerInfoStyle.Render(vs.FocusDomain.Label())
	mode := dimStyle.Render(" [" + m.session.ValueScaleMode().String() + "]")

	gap := w - lipgloss.Width(title) - lipgloss.Width(info) - lipgloss.Width(mode) - 1
	if gap < 1 {
		gap = 1
	}
	return fitAnsiWidth(title+strings.Repeat(" ", gap)+info+mode, w)
}

func (m Model) renderFooter(w int) string {
	sep := separatorStyle.Render(strings.Repeat("━", w))
	line := " " + helpStyle.Render("? help")
	if invalid := m.session.InvalidSamples(); invalid > 0 {
		line += dimStyle.Render(fmt.Sprintf(" · %d unparsable samples skipped", invalid))
	}
	if m.status != "" {
		st := dimStyle
		if m.statusErr {
			st = statusErrStyle
		}
		line += dimStyle.Render(" · ") + st.Render(m.status)
	}
	return sep + "\n" + fitAnsiWidth(line, w)
}
