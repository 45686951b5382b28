package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func newProjectCommand(ctx *commandContext) *cobra.Command {
	projectCmd := &cobra.Command{
		Use:   "project",
		Short: "Manage saved projects",
	}

	projectCmd.AddCommand(newProjectListCommand(ctx))
	projectCmd.AddCommand(newProjectShowCommand(ctx))
	projectCmd.AddCommand(newProjectDeleteCommand(ctx))

	return projectCmd
}

func newProjectListCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved projects",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			snapshots, err := ctx.snapshots()
			if err != nil {
				return err
			}
			summaries, err := snapshots.List()
			if err != nil {
				return err
			}
			if len(summaries) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No saved projects.")
				return nil
			}

			rows := make([][]string, 0, len(summaries))
			for _, summary := range summaries {
				rows = append(rows, []string{
					summary.Name,
					summary.SavedAt.Local().Format(time.DateTime),
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Project", "Saved"},
				rows,
				[]columnAlignment{alignLeft, alignLeft},
			))
			return nil
		},
	}
}

func newProjectShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show <name>",
		Short: "Show a saved project's contents",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			snapshots, err := ctx.snapshots()
			if err != nil {
				return err
			}
			snapshot, err := snapshots.Load(args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Project:    %s\n", snapshot.Name)
			fmt.Fprintf(out, "Saved:      %s\n", snapshot.SavedAt.Local().Format(time.DateTime))
			fmt.Fprintf(out, "Mode:       %s\n", snapshot.PatchMode)
			fmt.Fprintf(out, "Mod folder: %s\n", snapshot.ModFolder)
			for _, source := range snapshot.Sources {
				fmt.Fprintf(out, "Source:     %s (%d segment(s))\n", source.Path, len(source.SegmentIDs))
			}
			for _, sel := range snapshot.Selections {
				fmt.Fprintf(out, "Biome:      %s (day %d, night %d)\n",
					sel.Biome.Key(),
					len(sel.Day.Add)+len(sel.Day.Replace),
					len(sel.Night.Add)+len(sel.Night.Replace))
			}
			return nil
		},
	}
}

func newProjectDeleteCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a saved project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			snapshots, err := ctx.snapshots()
			if err != nil {
				return err
			}
			if err := snapshots.Delete(args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted project %q\n", args[0])
			return nil
		},
	}
}
