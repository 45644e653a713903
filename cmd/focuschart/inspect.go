package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/janekbaraniewski/focuschart/internal/chart"
	"github.com/janekbaraniewski/focuschart/internal/classify"
	"github.com/janekbaraniewski/focuschart/internal/config"
	"github.com/janekbaraniewski/focuschart/internal/series"
)

func newInspectCommand(cfg config.Config) *cobra.Command {
	var flags dataFlags
	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Summarize measurements, extents and classifications",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := mountSession(cmd.Context(), cfg, flags)
			if err != nil {
				return err
			}
			s.FocusView(nil)
			return writeInspect(cmd.OutOrStdout(), s)
		},
	}
	flags.register(cmd)
	return cmd
}

func writeInspect(w io.Writer, s *chart.Session) error {
	vs := s.ViewState()
	groups := s.Groups()
	cl := classify.NewClassifier(s.Labels(), classify.DefaultPalette())

	fmt.Fprintf(w, "time extent:  %s\n", vs.ContextDomain.Label())
	fmt.Fprintf(w, "value extent: %g .. %g\n", vs.ContextValueRange.Min, vs.ContextValueRange.Max)
	fmt.Fprintf(w, "samples:      %d (%d invalid)\n", groups.SampleCount(), s.InvalidSamples())
	if d := s.Depths(); len(d) > 0 {
		fmt.Fprintf(w, "depths:       %s\n", strings.Join(lo.Map(d, func(v float64, _ int) string {
			return fmt.Sprintf("%g", v)
		}), ", "))
	}
	fmt.Fprintln(w)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "MEASUREMENT\tCLASS\tSAMPLES\tINVALID\tMIN\tMAX")
	for _, g := range groups {
		valid := series.ValidSamples(g.Samples)
		low, high := "-", "-"
		if r, ok := series.ValueExtent(valid); ok {
			low, high = fmt.Sprintf("%g", r.Min), fmt.Sprintf("%g", r.Max)
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%s\t%s\n",
			g.Name, cl.Classify(g.Name).Kind, len(g.Samples), len(g.Samples)-len(valid), low, high)
	}
	return tw.Flush()
}
