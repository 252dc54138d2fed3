package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"murmur/internal/api"
	"murmur/internal/queue"
	"murmur/internal/views"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the current queue status",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withQueue(cmd.Context(), func(client *api.Client, store *queue.Store) error {
				var status api.Status
				if client != nil {
					var err error
					status, err = client.Status(cmd.Context())
					if err != nil {
						return err
					}
				} else {
					cfg, _ := ctx.ensureConfig()
					inspector := views.NewInspector(store, cfg.Workflow.PreviewChars)
					status = api.FromSummary(inspector.Summarize())
					status.Connected = false
				}

				current := "-"
				if status.CurrentFile != nil {
					current = *status.CurrentFile
				}
				daemon := "not running"
				if status.Connected {
					daemon = "running"
				}
				rows := [][]string{
					{"Daemon", daemon},
					{"Processing", fmt.Sprintf("%t", status.Processing)},
					{"Current file", current},
					{"Queued", fmt.Sprintf("%d", status.QueueCount)},
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Field", "Value"}, rows, []columnAlignment{alignLeft, alignLeft}))
				return nil
			})
		},
	}
}
