package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/janekbaraniewski/focuschart/internal/chart"
	"github.com/janekbaraniewski/focuschart/internal/config"
	"github.com/janekbaraniewski/focuschart/internal/core"
)

func newSnapshotCommand(cfg config.Config) *cobra.Command {
	var (
		flags         dataFlags
		width, height int
	)
	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Render one frame of the chart to stdout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			applyTheme(cfg)
			s, err := mountSession(cmd.Context(), cfg, flags)
			if err != nil {
				return err
			}
			return writeSnapshot(cmd.OutOrStdout(), s, core.Size{Width: width, Height: height})
		},
	}
	flags.register(cmd)
	cmd.Flags().IntVar(&width, "width", chart.DefaultSize.Width, "frame width in cells")
	cmd.Flags().IntVar(&height, "height", chart.DefaultSize.Height, "frame height in rows")
	return cmd
}

func writeSnapshot(w io.Writer, s *chart.Session, size core.Size) error {
	if size.Degenerate() {
		return fmt.Errorf("invalid frame size %dx%d", size.Width, size.Height)
	}
	s.SetSize(size)
	s.FocusView(nil)
	vs := s.ViewState()
	if _, err := fmt.Fprintf(w, "%s\n", vs.FocusDomain.Label()); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w, s.View())
	return err
}
