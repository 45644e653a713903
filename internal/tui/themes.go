package tui

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/janekbaraniewski/focuschart/internal/classify"
)

// FOCUSCHART_THEME_DIR can point to one or more additional theme directories
// (path-list separated, e.g. ":" on unix, ";" on Windows).
const themeDirEnvVar = "FOCUSCHART_THEME_DIR"

// Theme is the token set used by the chart and its chrome.
//
// External themes are JSON files with matching snake_case fields, for
// example: {"name":"My Theme","base":"#111111","amplitude":"#ff5555",...}.
type Theme struct {
	Name string `json:"name"`
	Icon string `json:"icon"`

	Base    lipgloss.Color `json:"base"`
	Surface lipgloss.Color `json:"surface"`
	Text    lipgloss.Color `json:"text"`
	Subtext lipgloss.Color `json:"subtext"`
	Dim     lipgloss.Color `json:"dim"`
	Accent  lipgloss.Color `json:"accent"`

	// line colors
	Amplitude lipgloss.Color `json:"amplitude"`
	Phase     lipgloss.Color `json:"phase"`
	Neutral   lipgloss.Color `json:"neutral"`
	Blue      lipgloss.Color `json:"blue"`
	Purple    lipgloss.Color `json:"purple"`
}

var (
	themeMu        sync.RWMutex
	themes         []Theme
	activeThemeIdx int
)

func init() {
	themes = builtinThemes()
	activeThemeIdx = defaultThemeIndex(themes)
	if len(themes) > 0 {
		applyTheme(themes[activeThemeIdx])
	}
}

func builtinThemes() []Theme {
	return []Theme{
		{
			Name: "Catppuccin Mocha", Icon: "🐱",
			Base: "#1E1E2E", Surface: "#313244",
			Text: "#CDD6F4", Subtext: "#A6ADC8", Dim: "#585B70", Accent: "#CBA6F7",
			Amplitude: "#F38BA8", Phase: "#A6E3A1", Neutral: "#9399B2",
			Blue: "#89B4FA", Purple: "#B4BEFE",
		},
		{
			Name: "Gruvbox", Icon: "🌻",
			Base: "#282828", Surface: "#3C3836",
			Text: "#EBDBB2", Subtext: "#D5C4A1", Dim: "#665C54", Accent: "#D3869B",
			Amplitude: "#FB4934", Phase: "#B8BB26", Neutral: "#A89984",
			Blue: "#83A598", Purple: "#D3869B",
		},
		{
			Name: "Dracula", Icon: "🧛",
			Base: "#282A36", Surface: "#44475A",
			Text: "#F8F8F2", Subtext: "#BFBFBF", Dim: "#6272A4", Accent: "#BD93F9",
			Amplitude: "#FF5555", Phase: "#50FA7B", Neutral: "#BFBFBF",
			Blue: "#8BE9FD", Purple: "#BD93F9",
		},
		{
			Name: "Nord", Icon: "❄",
			Base: "#2E3440", Surface: "#3B4252",
			Text: "#ECEFF4", Subtext: "#D8DEE9", Dim: "#4C566A", Accent: "#88C0D0",
			Amplitude: "#BF616A", Phase: "#A3BE8C", Neutral: "#D8DEE9",
			Blue: "#81A1C1", Purple: "#B48EAD",
		},
		{
			Name: "Tokyo Night", Icon: "🌃",
			Base: "#1A1B26", Surface: "#24283B",
			Text: "#C0CAF5", Subtext: "#A9B1D6", Dim: "#565F89", Accent: "#BB9AF7",
			Amplitude: "#F7768E", Phase: "#9ECE6A", Neutral: "#A9B1D6",
			Blue: "#7AA2F7", Purple: "#BB9AF7",
		},
		{
			Name: "Classic", Icon: "📈",
			Base: "#FFFFFF", Surface: "#EEEEEE",
			Text: "#222222", Subtext: "#555555", Dim: "#999999", Accent: "#1F78B5",
			Amplitude: "#E32636", Phase: "#2B9F55", Neutral: "#BFBFBF",
			Blue: "#1F78B5", Purple: "#754AA3",
		},
		{
			Name: "Grayscale", Icon: "⬛",
			Base: "#101010", Surface: "#202020",
			Text: "#E0E0E0", Subtext: "#B0B0B0", Dim: "#606060", Accent: "#FFFFFF",
			Amplitude: "#FFFFFF", Phase: "#C8C8C8", Neutral: "#707070",
			Blue: "#D0D0D0", Purple: "#A0A0A0",
		},
	}
}

func defaultThemeIndex(all []Theme) int {
	for i, t := range all {
		if strings.EqualFold(strings.TrimSpace(t.Name), "Catppuccin Mocha") {
			return i
		}
	}
	return 0
}

// Palette maps the theme onto the chart's semantic line colors.
func (t Theme) Palette() classify.Palette {
	return classify.Palette{
		Blue:        t.Blue,
		Purple:      t.Purple,
		Red:         t.Amplitude,
		Green:       t.Phase,
		NeutralGray: t.Neutral,
	}.WithFallbacks()
}

func trimColor(c lipgloss.Color) lipgloss.Color {
	return lipgloss.Color(strings.TrimSpace(string(c)))
}

func normalizeTheme(in Theme) Theme {
	in.Name = strings.TrimSpace(in.Name)
	in.Icon = strings.TrimSpace(in.Icon)
	if in.Icon == "" {
		in.Icon = "🎨"
	}
	for _, c := range []*lipgloss.Color{
		&in.Base, &in.Surface, &in.Text, &in.Subtext, &in.Dim, &in.Accent,
		&in.Amplitude, &in.Phase, &in.Neutral, &in.Blue, &in.Purple,
	} {
		*c = trimColor(*c)
	}
	return in
}

func (t Theme) validate() error {
	if strings.TrimSpace(t.Name) == "" {
		return fmt.Errorf("missing required field: name")
	}
	fields := []struct {
		name  string
		value lipgloss.Color
	}{
		{"base", t.Base}, {"surface", t.Surface},
		{"text", t.Text}, {"subtext", t.Subtext}, {"dim", t.Dim}, {"accent", t.Accent},
		{"amplitude", t.Amplitude}, {"phase", t.Phase}, {"neutral", t.Neutral},
	}
	var missing []string
	for _, f := range fields {
		if strings.TrimSpace(string(f.value)) == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required color fields: %s", strings.Join(missing, ", "))
	}
	return nil
}

func themeSearchDirs(configDir string) []string {
	seen := make(map[string]struct{})
	var out []string
	add := func(path string) {
		path = strings.TrimSpace(path)
		if path == "" {
			return
		}
		clean := filepath.Clean(path)
		if _, ok := seen[clean]; ok {
			return
		}
		seen[clean] = struct{}{}
		out = append(out, clean)
	}

	if strings.TrimSpace(configDir) != "" {
		add(filepath.Join(configDir, "themes"))
	}
	if env := strings.TrimSpace(os.Getenv(themeDirEnvVar)); env != "" {
		for _, part := range filepath.SplitList(env) {
			add(part)
		}
	}
	return out
}

func loadThemesFromDir(dir string) ([]Theme, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read theme dir %s: %w", dir, err)
	}

	sort.Slice(entries, func(i, j int) bool {
		return strings.ToLower(entries[i].Name()) < strings.ToLower(entries[j].Name())
	})

	var (
		loaded []Theme
		errs   []error
	)
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".json") {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			errs = append(errs, fmt.Errorf("read %s: %w", path, err))
			continue
		}
		var t Theme
		if err := json.Unmarshal(data, &t); err != nil {
			errs = append(errs, fmt.Errorf("parse %s: %w", path, err))
			continue
		}
		t = normalizeTheme(t)
		if err := t.validate(); err != nil {
			errs = append(errs, fmt.Errorf("validate %s: %w", path, err))
			continue
		}
		loaded = append(loaded, t)
	}
	return loaded, errors.Join(errs...)
}

// mergeThemes appends extra to base; a theme with an existing name replaces it.
func mergeThemes(base, extra []Theme) []Theme {
	if len(extra) == 0 {
		return base
	}
	merged := append([]Theme(nil), base...)
	indexByName := make(map[string]int, len(merged))
	for i, t := range merged {
		indexByName[strings.ToLower(t.Name)] = i
	}
	for _, t := range extra {
		k := strings.ToLower(t.Name)
		if i, ok := indexByName[k]; ok {
			merged[i] = t
			continue
		}
		indexByName[k] = len(merged)
		merged = append(merged, t)
	}
	return merged
}

func setActiveThemeByNameLocked(name string) bool {
	name = strings.TrimSpace(name)
	if name == "" {
		return false
	}
	for i, t := range themes {
		if strings.EqualFold(t.Name, name) {
			activeThemeIdx = i
			applyTheme(t)
			return true
		}
	}
	return false
}

// LoadThemes reloads the catalog from built-ins plus theme files found in
// <configDir>/themes and each path in FOCUSCHART_THEME_DIR. Invalid files
// are skipped and reported together; valid ones stay available.
func LoadThemes(configDir string) error {
	themeMu.Lock()
	defer themeMu.Unlock()

	currentName := ""
	if activeThemeIdx >= 0 && activeThemeIdx < len(themes) {
		currentName = themes[activeThemeIdx].Name
	}

	next := builtinThemes()
	var errs []error
	for _, dir := range themeSearchDirs(configDir) {
		loaded, err := loadThemesFromDir(dir)
		if err != nil {
			errs = append(errs, err)
		}
		next = mergeThemes(next, loaded)
	}

	themes = next
	if !setActiveThemeByNameLocked(currentName) {
		activeThemeIdx = defaultThemeIndex(themes)
		applyTheme(themes[activeThemeIdx])
	}
	return errors.Join(errs...)
}

func AvailableThemes() []Theme {
	themeMu.RLock()
	defer themeMu.RUnlock()
	return append([]Theme(nil), themes...)
}

func ActiveTheme() Theme {
	themeMu.RLock()
	defer themeMu.RUnlock()
	if activeThemeIdx < 0 || activeThemeIdx >= len(themes) {
		return themes[0]
	}
	return themes[activeThemeIdx]
}

// CycleTheme activates the next theme and returns its name.
func CycleTheme() string {
	themeMu.Lock()
	defer themeMu.Unlock()

	activeThemeIdx = (activeThemeIdx + 1) % len(themes)
	applyTheme(themes[activeThemeIdx])
	return themes[activeThemeIdx].Name
}

func ThemeName() string {
	t := ActiveTheme()
	if t.Icon == "" {
		return t.Name
	}
	return t.Icon + " " + t.Name
}

func SetThemeByName(name string) bool {
	themeMu.Lock()
	defer themeMu.Unlock()
	return setActiveThemeByNameLocked(name)
}
