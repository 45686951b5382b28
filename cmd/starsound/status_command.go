package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/AHSpire/StarSound/internal/state"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	var allFlag bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show recent build jobs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			ledger, err := state.OpenLedger(cfg.Paths.WorkspaceDir)
			if err != nil {
				return err
			}
			defer ledger.Close()

			jobs, err := ledger.List(cmd.Context())
			if err != nil {
				return err
			}
			if !allFlag {
				var recent []*state.Job
				for _, job := range jobs {
					if !job.Status.IsTerminal() || time.Since(job.UpdatedAt) < 24*time.Hour {
						recent = append(recent, job)
					}
				}
				jobs = recent
			}
			if len(jobs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No build jobs recorded.")
				return nil
			}

			rows := make([][]string, 0, len(jobs))
			for _, job := range jobs {
				rows = append(rows, []string{
					shortID(job.ID),
					job.Project,
					job.PatchMode,
					string(job.Status),
					fmt.Sprintf("%d/%d", job.SegmentsConverted, job.SegmentsPlanned),
					job.UpdatedAt.Local().Format(time.DateTime),
					job.ErrorMessage,
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Job", "Project", "Mode", "Status", "Segments", "Updated", "Error"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignRight, alignLeft, alignLeft},
			))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&allFlag, "all", "a", false, "Include old completed jobs")
	return cmd
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
