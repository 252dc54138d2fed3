package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"murmur/internal/api"
	"murmur/internal/preflight"
)

func newHealthCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check queue directories and daemon reachability",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			results := preflight.RunAll(cfg)
			rows := make([][]string, 0, len(results)+1)
			for _, result := range results {
				rows = append(rows, []string{result.Name, healthMark(result.Passed), result.Detail})
			}
			rows = append(rows, daemonRow(cmd.Context(), cfg.Paths.APIBind))

			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Check", "Status", "Detail"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft},
			))

			if !preflight.AllPassed(results) {
				return fmt.Errorf("one or more health checks failed")
			}
			return nil
		},
	}
}

func daemonRow(ctx context.Context, bind string) []string {
	client, err := api.NewClient(bind)
	if err != nil || client == nil {
		return []string{"Daemon", healthMark(false), "no api_bind configured"}
	}

	probeCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Health(probeCtx); err != nil {
		return []string{"Daemon", healthMark(false), fmt.Sprintf("%s (not running)", bind)}
	}
	return []string{"Daemon", healthMark(true), fmt.Sprintf("%s (responding)", bind)}
}

func healthMark(passed bool) string {
	if passed {
		return "OK"
	}
	return "FAIL"
}
