package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"murmur/internal/api"
	"murmur/internal/queue"
)

func newSayCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "say <text>...",
		Short: "Queue text for synthesis (use - to read stdin)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.Join(args, " ")
			if text == "-" {
				raw, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("read stdin: %w", err)
				}
				text = string(raw)
			}

			return ctx.withQueue(cmd.Context(), func(client *api.Client, store *queue.Store) error {
				var filename string
				if client != nil {
					resp, err := client.Enqueue(cmd.Context(), text)
					if err != nil {
						return err
					}
					filename = resp.Filename
				} else {
					mutator, err := ctx.mutator(store)
					if err != nil {
						return err
					}
					filename, err = mutator.Enqueue(cmd.Context(), text)
					if err != nil {
						return err
					}
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Queued %s\n", filename)
				return nil
			})
		},
	}
}

func newAddCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "add <file>...",
		Short: "Copy existing text files into the queue",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.openStore()
			if err != nil {
				return err
			}
			mutator, err := ctx.mutator(store)
			if err != nil {
				return err
			}

			for _, path := range args {
				filename, err := mutator.IngestFile(cmd.Context(), path)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Added %s\n", filename)
			}
			return nil
		},
	}
}
