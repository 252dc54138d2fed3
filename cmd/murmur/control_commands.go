package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"murmur/internal/api"
	"murmur/internal/queue"
)

func newStopCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "stop",
		Short: "Move every working item to done",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withQueue(cmd.Context(), func(client *api.Client, store *queue.Store) error {
				if client != nil {
					resp, err := client.Control(cmd.Context(), "stop", "")
					if err != nil {
						return err
					}
					fmt.Fprintln(cmd.OutOrStdout(), resp.Message)
					return nil
				}

				mutator, err := ctx.mutator(store)
				if err != nil {
					return err
				}
				moved, err := mutator.CancelAll(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Stopped %d files\n", moved)
				return nil
			})
		},
	}
}

func newCancelCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "cancel [file]",
		Short: "Cancel the current item, or a named working item",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var file string
			if len(args) > 0 {
				file = args[0]
			}

			return ctx.withQueue(cmd.Context(), func(client *api.Client, store *queue.Store) error {
				if client != nil {
					resp, err := client.Control(cmd.Context(), "cancel", file)
					if err != nil {
						return err
					}
					fmt.Fprintln(cmd.OutOrStdout(), resp.Message)
					return nil
				}

				mutator, err := ctx.mutator(store)
				if err != nil {
					return err
				}
				cancelled, err := mutator.Cancel(cmd.Context(), file)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Cancelled %s\n", cancelled)
				return nil
			})
		},
	}
}

func newReplayCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "replay <file>",
		Short: "Move a finished item back to todo",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file := args[0]

			return ctx.withQueue(cmd.Context(), func(client *api.Client, store *queue.Store) error {
				if client != nil {
					resp, err := client.Control(cmd.Context(), "replay", file)
					if err != nil {
						return err
					}
					fmt.Fprintln(cmd.OutOrStdout(), resp.Message)
					return nil
				}

				mutator, err := ctx.mutator(store)
				if err != nil {
					return err
				}
				if err := mutator.Replay(cmd.Context(), file); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Moved %s to todo\n", file)
				return nil
			})
		},
	}
}
