package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show completed items, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			// History previews come from reading the done files, so this
			// always goes straight to the store.
			inspector, err := ctx.inspector()
			if err != nil {
				return err
			}

			entries := inspector.History(limit)
			if len(entries) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No completed items yet")
				return nil
			}

			rows := make([][]string, 0, len(entries))
			for _, entry := range entries {
				rows = append(rows, []string{
					entry.ModifiedAt.Format("2006-01-02 15:04"),
					humanize.Time(entry.ModifiedAt),
					entry.ID,
					humanize.Bytes(uint64(entry.Size)),
					entry.Preview,
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Time", "Age", "Filename", "Size", "Preview"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignLeft},
			))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Maximum entries to show (0 = all)")
	return cmd
}
