package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/janekbaraniewski/focuschart/internal/chart"
	"github.com/janekbaraniewski/focuschart/internal/config"
	"github.com/janekbaraniewski/focuschart/internal/source"
	"github.com/janekbaraniewski/focuschart/internal/tui"
)

// chartOptions maps settings onto session options styled with the active theme.
func chartOptions(cfg config.Config) chart.Options {
	return tui.ChartOptions(chart.Options{
		FocusHeight:     cfg.Chart.FocusHeight,
		ContextHeight:   cfg.Chart.ContextHeight,
		GutterWidth:     cfg.Chart.MarginLeft,
		MaxWidth:        cfg.Chart.MaxWidth,
		DefaultStart:    cfg.Brush.DefaultStart,
		DefaultEnd:      cfg.Brush.DefaultEnd,
		ValueScale:      cfg.ValueScaleMode(),
		TimestampLayout: cfg.TimestampLayout,
	})
}

func applyTheme(cfg config.Config) {
	if err := tui.LoadThemes(config.ConfigDir()); err != nil {
		log.Printf("themes: %v", err)
	}
	if !tui.SetThemeByName(cfg.Theme) {
		log.Printf("themes: unknown theme %q, keeping %s", cfg.Theme, tui.ThemeName())
	}
}

func (f dataFlags) request() source.Request {
	return source.Request{DataPath: f.data, LabelsPath: f.labels, Query: f.query}
}

// mountSession loads the dataset and mounts it without rendering.
func mountSession(ctx context.Context, cfg config.Config, f dataFlags) (*chart.Session, error) {
	ds, err := source.Load(ctx, f.request())
	if err != nil {
		return nil, err
	}
	s := chart.NewSession(chartOptions(cfg))
	s.Mount(chart.MountRequest{Rows: ds.Rows, Depths: f.depths, Labels: ds.Labels})
	return s, nil
}

func runInteractive(ctx context.Context, cfg config.Config, f dataFlags, watch bool) error {
	if ctx == nil {
		ctx = context.Background()
	}
	applyTheme(cfg)

	session, err := mountSession(ctx, cfg, f)
	if err != nil {
		return err
	}
	session.FocusView(nil)

	model := tui.NewModel(session, tui.Options{
		Title:    filepath.Base(f.data),
		Step:     cfg.Brush.Step,
		Persist:  true,
		Debounce: cfg.DebounceInterval(),
	})

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())

	if watch {
		w, err := source.NewWatcher(f.data, 0)
		if err != nil {
			return err
		}
		req := f.request()
		go func() {
			err := w.Run(ctx, func() {
				ds, err := source.Load(ctx, req)
				program.Send(tui.DatasetMsg{Dataset: ds, Err: err})
			})
			if err != nil {
				log.Printf("watch: %v", err)
			}
		}()
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-sigCh:
			cancel()
			program.Quit()
		case <-ctx.Done():
		}
	}()

	if _, err := program.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
