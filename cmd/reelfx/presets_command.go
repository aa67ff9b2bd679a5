package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"reelfx/internal/presets"
)

func newPresetsCommand(ctx *commandContext) *cobra.Command {
	var (
		category string
		jsonOut  bool
	)

	cmd := &cobra.Command{
		Use:   "presets",
		Short: "List the built-in effect presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, _, err := ctx.newEngine(cmd)
			if err != nil {
				return err
			}
			defer e.Close()

			list := e.Presets()
			if category != "" {
				parsed, err := presets.ParseCategory(category)
				if err != nil {
					return err
				}
				list = e.GetPresetsByCategory(string(parsed))
			}

			if jsonOut {
				if list == nil {
					list = []presets.Preset{}
				}
				return writeJSON(cmd, list)
			}
			if len(list) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No presets found")
				return nil
			}

			rows := make([][]string, 0, len(list))
			for _, p := range list {
				rows = append(rows, []string{
					p.ID,
					truncateCell(p.Name, nameColumnWidth),
					displayLabel(string(p.Category)),
					strconv.Itoa(len(p.Templates)),
					yesNo(p.BuiltIn),
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"ID", "Name", "Category", "Templates", "Built-in"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignLeft},
			))
			return nil
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "Only list presets in this category")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output as JSON")
	return cmd
}
