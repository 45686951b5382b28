package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/AHSpire/StarSound/internal/biome"
)

func newBiomesCommand(ctx *commandContext) *cobra.Command {
	var categoryFlag string

	cmd := &cobra.Command{
		Use:   "biomes",
		Short: "List known biomes and their vanilla track pools",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := ctx.catalog()
			if err != nil {
				return err
			}

			category := strings.ToLower(strings.TrimSpace(categoryFlag))
			var rows [][]string
			for _, ref := range catalog.All() {
				if category != "" && ref.Category != category {
					continue
				}
				rows = append(rows, []string{
					ref.Category,
					ref.Name,
					strconv.Itoa(catalog.PoolSize(ref, biome.Day)),
					strconv.Itoa(catalog.PoolSize(ref, biome.Night)),
				})
			}
			if len(rows) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No biomes match.")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Category", "Biome", "Day tracks", "Night tracks"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignRight, alignRight},
			))
			return nil
		},
	}

	cmd.Flags().StringVar(&categoryFlag, "category", "", "Only list biomes in this category")
	return cmd
}
