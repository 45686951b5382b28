package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/AHSpire/StarSound/internal/pipeline"
)

func newPlanCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "plan <audio-file>...",
		Short: "Show how source audio would be split into segments",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.logger()
			if err != nil {
				return err
			}
			catalog, err := ctx.catalog()
			if err != nil {
				return err
			}

			p := pipeline.New(cfg, catalog, logger)
			plan, err := p.Plan(cmd.Context(), args)
			if err != nil {
				return err
			}

			rows := make([][]string, 0, len(plan.Segments))
			for _, group := range plan.Grouped() {
				for _, seg := range group.Segments {
					rows = append(rows, []string{
						seg.ID,
						seg.Source,
						formatSeconds(seg.Span.Start),
						formatSeconds(seg.Span.End),
						formatSeconds(seg.Span.Length()),
						yesNo(seg.Split),
					})
				}
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable(
				[]string{"Segment", "Source", "Start", "End", "Length", "Split"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignRight, alignRight, alignRight, alignLeft},
			))
			fmt.Fprintf(out, "%d segment(s) planned from %d file(s)\n", len(plan.Segments), len(args))
			return nil
		},
	}
}

func formatSeconds(seconds float64) string {
	minutes := int(seconds) / 60
	rest := seconds - float64(minutes*60)
	return fmt.Sprintf("%dm%05.2fs", minutes, rest)
}
