package main

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"dupescan/internal/deps"
)

func newDepsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "deps",
		Short: "Check availability of external tools",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			statuses := deps.CheckBinaries(deps.Requirements(cfg))

			tw := table.NewWriter()
			tw.SetStyle(table.StyleRounded)
			tw.AppendHeader(table.Row{"Tool", "Command", "Available", "Optional", "Detail"})
			missingRequired := false
			for _, status := range statuses {
				tw.AppendRow(table.Row{
					status.Name,
					status.Command,
					yesNo(status.Available),
					yesNo(status.Optional),
					status.Detail,
				})
				if !status.Available && !status.Optional {
					missingRequired = true
				}
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, tw.Render())
			if missingRequired {
				return fmt.Errorf("required tools are missing")
			}
			return nil
		},
	}
}
