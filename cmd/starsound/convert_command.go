package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/AHSpire/StarSound/internal/pipeline"
	"github.com/AHSpire/StarSound/internal/procconfig"
)

// convert runs the plan and encode stages without assembling a mod,
// leaving the .ogg files in the workspace for inspection.
func newConvertCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "convert <audio-file>...",
		Short: "Convert source audio into game-ready segments without building a mod",
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
			outcome := p.Convert(cmd.Context(), plan, procconfig.Default(), nil)

			rows := make([][]string, 0, len(outcome.Converted))
			for _, converted := range outcome.Converted {
				rows = append(rows, []string{
					converted.Segment.ID,
					formatSeconds(converted.DurationSeconds),
					converted.OutputPath,
				})
			}
			out := cmd.OutOrStdout()
			if len(rows) > 0 {
				fmt.Fprintln(out, renderTable(
					[]string{"Segment", "Length", "Output"},
					rows,
					[]columnAlignment{alignLeft, alignRight, alignLeft},
				))
			}
			for _, failure := range outcome.Failed {
				fmt.Fprintf(out, "skipped %s: %v\n", failure.SegmentID, failure.Err)
			}
			if len(outcome.Converted) == 0 {
				return fmt.Errorf("no segments converted")
			}
			fmt.Fprintf(out, "%d of %d segment(s) converted\n", len(outcome.Converted), len(plan.Segments))
			return nil
		},
	}
}
