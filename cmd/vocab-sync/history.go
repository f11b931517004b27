package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/brbranch/vocab_sync/internal/service"
	"github.com/spf13/cobra"
)

func newHistoryCmd(opts *rootOptions) *cobra.Command {
	var (
		limit  int
		format string
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent sync runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != "text" && format != "json" {
				return fmt.Errorf("invalid format: %s (must be text or json)", format)
			}

			ctx := cmd.Context()
			services, cleanup, err := initialize(ctx, opts)
			if err != nil {
				return err
			}
			defer cleanup()

			resp, err := services.SyncService.History(ctx, &service.HistoryRequest{Deck: opts.Deck, Limit: limit})
			if err != nil {
				return err
			}

			if format == "json" {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(resp.Runs)
			}

			if len(resp.Runs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No sync runs recorded")
				return nil
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "STARTED\tDECK\tLAYOUT\tTOTAL\tADDED\tSKIPPED\tSTATUS")
			for _, r := range resp.Runs {
				status := "ok"
				if r.Aborted() {
					status = "aborted: " + *r.Error
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d\t%d\t%s\n",
					r.StartedAt.Local().Format(time.DateTime), r.Deck, r.Layout,
					r.Total, r.Added, r.Skipped(), status)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "Number of runs to show")
	cmd.Flags().StringVarP(&format, "format", "f", "text", "Output format: text, json")
	return cmd
}
