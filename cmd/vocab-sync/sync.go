package main

import (
	"fmt"

	"github.com/brbranch/vocab_sync/internal/model"
	"github.com/brbranch/vocab_sync/internal/service"
	"github.com/spf13/cobra"
)

func newSyncCmd(opts *rootOptions) *cobra.Command {
	var layout string

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Add every spreadsheet row to the deck as a note",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			services, cleanup, err := initialize(ctx, opts)
			if err != nil {
				return err
			}
			defer cleanup()

			req := &service.SyncRequest{Layout: services.Config.Anki.Layout}
			if layout != "" {
				l, err := model.ParseLayout(layout)
				if err != nil {
					return err
				}
				req.Layout = l
			}

			services.Logger.Info("syncing vocabulary to deck")
			result, err := services.SyncService.Sync(ctx, req)
			if result != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "Added %d new vocab notes!\n", result.Added())
			}
			return err
		},
	}

	cmd.Flags().StringVarP(&layout, "layout", "l", "", "Card layout: basic, reversed")
	return cmd
}
