package main

import (
	"fmt"
	"io"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/janekbaraniewski/focuschart/internal/config"
	"github.com/janekbaraniewski/focuschart/internal/version"
)

func main() {
	closeLog := setupLogging()
	defer closeLog()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		fmt.Fprintf(os.Stderr, "Config path: %s\n", config.ConfigPath())
		os.Exit(1)
	}

	root := newRootCommand(cfg)
	if err := root.Execute(); err != nil {
		closeLog()
		os.Exit(1)
	}
}

// setupLogging discards log output unless FOCUSCHART_DEBUG is set. With
// FOCUSCHART_LOG the log goes to that file instead of stderr, which keeps it
// out of the alternate screen.
func setupLogging() func() {
	if os.Getenv("FOCUSCHART_DEBUG") == "" {
		log.SetOutput(io.Discard)
		return func() {}
	}
	if path := os.Getenv("FOCUSCHART_LOG"); path != "" {
		f, err := tea.LogToFile(path, "focuschart")
		if err != nil {
			fmt.Fprintf(os.Stderr, "opening log file: %v\n", err)
			os.Exit(1)
		}
		return func() { f.Close() }
	}
	log.SetOutput(os.Stderr)
	return func() {}
}

type dataFlags struct {
	data   string
	labels string
	query  string
	depths []float64
}

func (f *dataFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.data, "data", "d", "", "CSV or SQLite file with a timestamp column")
	cmd.Flags().StringVarP(&f.labels, "labels", "l", "", "label JSON with measurement, amp and phs arrays")
	cmd.Flags().StringVar(&f.query, "sqlite-query", "", "query for SQLite sources (default \"SELECT * FROM measurements\")")
	cmd.Flags().Float64SliceVar(&f.depths, "depth", nil, "depth values carried with the dataset")
	_ = cmd.MarkFlagRequired("data")
}

func newRootCommand(cfg config.Config) *cobra.Command {
	var (
		flags dataFlags
		watch bool
	)
	runView := func(cmd *cobra.Command, _ []string) error {
		return runInteractive(cmd.Context(), cfg, flags, watch)
	}

	root := &cobra.Command{
		Use:           "focuschart",
		Short:         "focuschart is a terminal focus+context chart for time-series measurements.",
		Version:       version.String(),
		SilenceUsage:  true,
		SilenceErrors: false,
		Args:          cobra.NoArgs,
		RunE:          runView,
	}
	flags.register(root)
	root.Flags().BoolVarP(&watch, "watch", "w", false, "reload when the data file changes")

	view := &cobra.Command{
		Use:   "view",
		Short: "Open the interactive chart (default)",
		Args:  cobra.NoArgs,
		RunE:  runView,
	}
	flags.register(view)
	view.Flags().BoolVarP(&watch, "watch", "w", false, "reload when the data file changes")

	root.AddCommand(view, newSnapshotCommand(cfg), newInspectCommand(cfg), newVersionCommand())
	return root
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "focuschart "+version.String())
		},
	}
}
