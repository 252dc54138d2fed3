package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gorilla/websocket"
	"github.com/spf13/cobra"

	"murmur/internal/api"
)

func newWatchCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Follow live status updates from the daemon",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			client, err := api.NewClient(cfg.Paths.APIBind)
			if err != nil {
				return err
			}
			if client == nil {
				return fmt.Errorf("no api_bind configured; the status feed requires a running daemon")
			}

			watchCtx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			conn, _, err := websocket.DefaultDialer.DialContext(watchCtx, client.SocketURL(), nil)
			if err != nil {
				return fmt.Errorf("connect to status feed: %w (is the daemon running?)", err)
			}
			defer conn.Close()

			go func() {
				<-watchCtx.Done()
				_ = conn.Close()
			}()

			for {
				var status api.Status
				if err := conn.ReadJSON(&status); err != nil {
					if watchCtx.Err() != nil {
						return nil
					}
					return fmt.Errorf("status feed closed: %w", err)
				}
				printSnapshot(cmd, status)
			}
		},
	}
}

func printSnapshot(cmd *cobra.Command, status api.Status) {
	if status.Processing && status.CurrentFile != nil {
		fmt.Fprintf(cmd.OutOrStdout(), "speaking %s (%s), %d queued\n",
			*status.CurrentFile, deriveTitle(*status.CurrentFile), status.QueueCount)
		return
	}
	fmt.Fprintf(cmd.OutOrStdout(), "idle, %d queued\n", status.QueueCount)
}
