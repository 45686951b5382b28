package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/AHSpire/StarSound/internal/state"
)

func newPrefsCommand(ctx *commandContext) *cobra.Command {
	prefsCmd := &cobra.Command{
		Use:   "prefs",
		Short: "Inspect and edit remembered preferences",
	}

	prefsCmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List stored preferences",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			prefs, err := ctx.prefs()
			if err != nil {
				return err
			}
			keys := prefs.Keys()
			if len(keys) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No preferences stored.")
				return nil
			}
			rows := make([][]string, 0, len(keys))
			for _, key := range keys {
				rows = append(rows, []string{key, prefs.Get(key)})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Key", "Value"},
				rows,
				[]columnAlignment{alignLeft, alignLeft},
			))
			return nil
		},
	})

	prefsCmd.AddCommand(&cobra.Command{
		Use:   "get <key>",
		Short: "Print one preference value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			prefs, err := ctx.prefs()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), prefs.Get(args[0]))
			return nil
		},
	})

	prefsCmd.AddCommand(&cobra.Command{
		Use:   "set <key> <value>",
		Short: "Store a preference value",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !state.IsKnownKey(args[0]) {
				return fmt.Errorf("unknown preference key %q", args[0])
			}
			prefs, err := ctx.prefs()
			if err != nil {
				return err
			}
			return prefs.Set(args[0], args[1])
		},
	})

	return prefsCmd
}
