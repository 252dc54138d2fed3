package main

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"murmur/internal/api"
	"murmur/internal/queue"
)

func newListCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:       "list [location]",
		Short:     "List queue items (todo, working, done, or all)",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"todo", "working", "done"},
		RunE: func(cmd *cobra.Command, args []string) error {
			location := ""
			if len(args) == 1 {
				parsed, err := queue.ParseLocation(args[0])
				if err != nil {
					return err
				}
				location = string(parsed)
			}

			return ctx.withQueue(cmd.Context(), func(client *api.Client, store *queue.Store) error {
				var items []api.QueueItem
				if client != nil {
					resp, err := client.Queue(cmd.Context(), location)
					if err != nil {
						return err
					}
					items = resp.Items
				} else {
					locations := queue.Locations()
					if location != "" {
						locations = []queue.Location{queue.Location(location)}
					}
					for _, loc := range locations {
						listed, err := store.List(loc)
						if err != nil {
							return err
						}
						for _, item := range listed {
							items = append(items, api.FromItem(item))
						}
					}
				}

				if len(items) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "Queue is empty")
					return nil
				}
				rows := make([][]string, 0, len(items))
				for _, item := range items {
					rows = append(rows, []string{
						item.Location,
						item.Filename,
						humanize.Bytes(uint64(item.Size)),
						formatModified(item.ModifiedAt),
					})
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderTable(
					[]string{"Location", "Filename", "Size", "Modified"},
					rows,
					[]columnAlignment{alignLeft, alignLeft, alignRight, alignLeft},
				))
				return nil
			})
		},
	}
}

func newShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show <location> <filename>",
		Short: "Print the full content of a queue item",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			location, err := queue.ParseLocation(args[0])
			if err != nil {
				return err
			}
			id := args[1]

			return ctx.withQueue(cmd.Context(), func(client *api.Client, store *queue.Store) error {
				var content string
				if client != nil {
					resp, err := client.Show(cmd.Context(), string(location), id)
					if err != nil {
						return err
					}
					content = resp.Content
				} else {
					raw, err := store.Read(location, id)
					if err != nil {
						return err
					}
					content = string(raw)
				}

				fmt.Fprintf(cmd.OutOrStdout(), "%s (%s/%s)\n\n%s\n", deriveTitle(id), location, id, content)
				return nil
			})
		},
	}
}

// formatModified renders an RFC3339 wire timestamp as a relative age,
// falling back to the raw value when it fails to parse.
func formatModified(value string) string {
	parsed, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return value
	}
	return humanize.Time(parsed)
}
