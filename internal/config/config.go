package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"time"

	"github.com/janekbaraniewski/focuschart/internal/core"
)

type ChartConfig struct {
	FocusHeight   int `json:"focus_height"` // 0 fills the terminal
	ContextHeight int `json:"context_height"`
	MaxWidth      int `json:"max_width"`
	MarginLeft    int `json:"margin_left"`
}

type BrushConfig struct {
	DefaultStart float64 `json:"default_start"`
	DefaultEnd   float64 `json:"default_end"`
	Step         int     `json:"step"` // cells moved per key press
}

type ResizeConfig struct {
	DebounceMS int `json:"debounce_ms"`
}

type Config struct {
	Theme           string       `json:"theme"`
	Chart           ChartConfig  `json:"chart"`
	Brush           BrushConfig  `json:"brush"`
	Resize          ResizeConfig `json:"resize"`
	ValueScale      string       `json:"value_scale"`
	TimestampLayout string       `json:"timestamp_layout"`
}

func DefaultConfig() Config {
	return Config{
		Theme: "Catppuccin Mocha",
		Chart: ChartConfig{
			ContextHeight: 5,
			MarginLeft:    8,
		},
		Brush: BrushConfig{
			DefaultStart: 0.3,
			DefaultEnd:   0.6,
			Step:         2,
		},
		Resize:          ResizeConfig{DebounceMS: 100},
		ValueScale:      core.ValueScaleFixed.String(),
		TimestampLayout: core.TimestampLayout,
	}
}

func ConfigDir() string {
	if runtime.GOOS == "windows" {
		return filepath.Join(os.Getenv("APPDATA"), "focuschart")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "focuschart")
}

func ConfigPath() string {
	return filepath.Join(ConfigDir(), "settings.json")
}

// ThemesDir holds user theme files.
func ThemesDir() string {
	return filepath.Join(ConfigDir(), "themes")
}

func Load() (Config, error) {
	return LoadFrom(ConfigPath())
}

func LoadFrom(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := json.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("parsing config %s: %w", path, err)
	}

	return cfg.normalized(), nil
}

// normalized replaces out-of-range values with defaults.
func (c Config) normalized() Config {
	d := DefaultConfig()
	if c.Theme == "" {
		c.Theme = d.Theme
	}
	if c.Chart.FocusHeight < 0 {
		c.Chart.FocusHeight = 0
	}
	if c.Chart.ContextHeight <= 0 {
		c.Chart.ContextHeight = d.Chart.ContextHeight
	}
	if c.Chart.MaxWidth < 0 {
		c.Chart.MaxWidth = 0
	}
	if c.Chart.MarginLeft <= 0 {
		c.Chart.MarginLeft = d.Chart.MarginLeft
	}
	if !validFraction(c.Brush.DefaultStart) || !validFraction(c.Brush.DefaultEnd) || c.Brush.DefaultStart >= c.Brush.DefaultEnd {
		c.Brush.DefaultStart = d.Brush.DefaultStart
		c.Brush.DefaultEnd = d.Brush.DefaultEnd
	}
	if c.Brush.Step <= 0 {
		c.Brush.Step = d.Brush.Step
	}
	if c.Resize.DebounceMS <= 0 {
		c.Resize.DebounceMS = d.Resize.DebounceMS
	}
	if c.ValueScale != core.ValueScaleFixed.String() && c.ValueScale != core.ValueScaleFollow.String() {
		c.ValueScale = d.ValueScale
	}
	if c.TimestampLayout == "" {
		c.TimestampLayout = d.TimestampLayout
	}
	return c
}

func validFraction(f float64) bool {
	return f >= 0 && f <= 1
}

func (c Config) ValueScaleMode() core.ValueScaleMode {
	return core.ParseValueScaleMode(c.ValueScale)
}

func (c Config) DebounceInterval() time.Duration {
	return time.Duration(c.Resize.DebounceMS) * time.Millisecond
}

// saveMu guards read-modify-write cycles on the config file.
var saveMu sync.Mutex

func Save(cfg Config) error {
	return SaveTo(ConfigPath(), cfg)
}

func SaveTo(path string, cfg Config) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// SaveTheme persists a theme name into the config file (read-modify-write).
func SaveTheme(theme string) error {
	return SaveThemeTo(ConfigPath(), theme)
}

func SaveThemeTo(path string, theme string) error {
	return update(path, func(cfg *Config) { cfg.Theme = theme })
}

// SaveValueScale persists the focus value-axis mode.
func SaveValueScale(mode core.ValueScaleMode) error {
	return SaveValueScaleTo(ConfigPath(), mode)
}

func SaveValueScaleTo(path string, mode core.ValueScaleMode) error {
	return update(path, func(cfg *Config) { cfg.ValueScale = mode.String() })
}

func update(path string, apply func(*Config)) error {
	saveMu.Lock()
	defer saveMu.Unlock()

	cfg, err := LoadFrom(path)
	if err != nil {
		cfg = DefaultConfig()
	}
	apply(&cfg)
	return SaveTo(path, cfg)
}
