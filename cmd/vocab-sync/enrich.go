package main

import (
	"fmt"

	"github.com/brbranch/vocab_sync/internal/service"
	"github.com/spf13/cobra"
)

func newEnrichCmd(opts *rootOptions) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "enrich",
		Short: "Fill empty rows from the dictionary and write the sheet back",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			services, cleanup, err := initialize(ctx, opts)
			if err != nil {
				return err
			}
			defer cleanup()

			result, err := services.EnrichService.Enrich(ctx, &service.EnrichRequest{DryRun: dryRun})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Looked up %d of %d rows", result.Enriched, result.Total)
			if result.Untyped > 0 {
				fmt.Fprintf(out, " (%d without a type)", result.Untyped)
			}
			if result.MissingKey > 0 {
				fmt.Fprintf(out, " (%d without a headword)", result.MissingKey)
			}
			fmt.Fprintln(out)
			if !result.Written {
				fmt.Fprintln(out, "Dry run: spreadsheet not updated")
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Look up rows without writing the sheet back")
	return cmd
}
