package tui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func snapshotThemeState() ([]Theme, int) {
	themeMu.RLock()
	defer themeMu.RUnlock()
	return append([]Theme(nil), themes...), activeThemeIdx
}

func restoreThemeState(saved []Theme, savedIdx int) {
	themeMu.Lock()
	defer themeMu.Unlock()
	themes = append([]Theme(nil), saved...)
	if savedIdx < 0 || savedIdx >= len(themes) {
		savedIdx = defaultThemeIndex(themes)
	}
	activeThemeIdx = savedIdx
	applyTheme(themes[activeThemeIdx])
}

func writeThemeFile(t *testing.T, dir, filename, content string) {
	t.Helper()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	path := filepath.Join(dir, filename)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write theme file %s: %v", path, err)
	}
}

func externalThemeJSON(name, amplitude string) string {
	return `{
  "name": "` + name + `",
  "base": "#111111",
  "surface": "#232323",
  "text": "#E8E8E8",
  "subtext": "#BDBDBD",
  "dim": "#7F7F7F",
  "accent": "#FAFAFA",
  "amplitude": "` + amplitude + `",
  "phase": "#ABABAB",
  "neutral": "#878787"
}`
}

func TestBuiltinThemesValidate(t *testing.T) {
	for _, theme := range builtinThemes() {
		if err := theme.validate(); err != nil {
			t.Errorf("%s: %v", theme.Name, err)
		}
	}
}

func TestLoadThemesFromConfigDir(t *testing.T) {
	savedThemes, savedIdx := snapshotThemeState()
	defer restoreThemeState(savedThemes, savedIdx)

	cfgDir := t.TempDir()
	writeThemeFile(t, filepath.Join(cfgDir, "themes"), "custom-gray.json", externalThemeJSON("Custom Gray", "#FF0000"))

	if err := LoadThemes(cfgDir); err != nil {
		t.Fatalf("LoadThemes error: %v", err)
	}
	if !SetThemeByName("custom gray") {
		t.Fatal("SetThemeByName(custom gray) returned false")
	}
	active := ActiveTheme()
	if active.Name != "Custom Gray" {
		t.Fatalf("active theme = %q, want Custom Gray", active.Name)
	}
	if active.Icon == "" {
		t.Fatal("expected a default icon")
	}
	if linePalette.Red != lipgloss.Color("#FF0000") {
		t.Fatalf("amplitude color = %q, want #FF0000", linePalette.Red)
	}
	// blue and purple are optional and fall back to the default palette
	if linePalette.Blue == "" || linePalette.Purple == "" {
		t.Fatalf("palette fallbacks missing: %+v", linePalette)
	}
}

func TestLoadThemesCanOverrideBuiltinByName(t *testing.T) {
	savedThemes, savedIdx := snapshotThemeState()
	defer restoreThemeState(savedThemes, savedIdx)

	cfgDir := t.TempDir()
	writeThemeFile(t, filepath.Join(cfgDir, "themes"), "nord.json", externalThemeJSON("Nord", "#FFFFFF"))

	if err := LoadThemes(cfgDir); err != nil {
		t.Fatalf("LoadThemes error: %v", err)
	}
	if len(AvailableThemes()) != len(builtinThemes()) {
		t.Fatalf("override should not add a theme")
	}
	if !SetThemeByName("Nord") {
		t.Fatal("SetThemeByName(Nord) returned false")
	}
	if got := ActiveTheme().Amplitude; got != lipgloss.Color("#FFFFFF") {
		t.Fatalf("amplitude = %q, want #FFFFFF", got)
	}
}

func TestLoadThemesFromEnvPath(t *testing.T) {
	savedThemes, savedIdx := snapshotThemeState()
	defer restoreThemeState(savedThemes, savedIdx)

	extraDir := t.TempDir()
	writeThemeFile(t, extraDir, "env-theme.json", externalThemeJSON("Env Gray", "#F0F0F0"))
	t.Setenv(themeDirEnvVar, extraDir)

	if err := LoadThemes(t.TempDir()); err != nil {
		t.Fatalf("LoadThemes error: %v", err)
	}
	if !SetThemeByName("Env Gray") {
		t.Fatal("SetThemeByName(Env Gray) returned false")
	}
}

func TestLoadThemesReportsInvalidThemeFiles(t *testing.T) {
	savedThemes, savedIdx := snapshotThemeState()
	defer restoreThemeState(savedThemes, savedIdx)

	cfgDir := t.TempDir()
	writeThemeFile(t, filepath.Join(cfgDir, "themes"), "broken.json", `{"name":"Broken"}`)

	err := LoadThemes(cfgDir)
	if err == nil {
		t.Fatal("expected error for invalid theme file")
	}
	if !strings.Contains(err.Error(), "missing required color fields") {
		t.Fatalf("unexpected error: %v", err)
	}
	if !SetThemeByName("Dracula") {
		t.Fatal("expected built-in themes to remain available")
	}
}

func TestCycleThemeWraps(t *testing.T) {
	savedThemes, savedIdx := snapshotThemeState()
	defer restoreThemeState(savedThemes, savedIdx)

	start := ActiveTheme().Name
	n := len(AvailableThemes())
	for i := 0; i < n; i++ {
		CycleTheme()
	}
	if got := ActiveTheme().Name; got != start {
		t.Fatalf("after %d cycles active = %q, want %q", n, got, start)
	}
}
