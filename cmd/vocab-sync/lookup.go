package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/brbranch/vocab_sync/internal/model"
	"github.com/brbranch/vocab_sync/internal/service"
	"github.com/spf13/cobra"
)

func newLookupCmd(opts *rootOptions) *cobra.Command {
	var (
		kanji  bool
		format string
	)

	cmd := &cobra.Command{
		Use:   "lookup <word>",
		Short: "Look up a word (or a single kanji with --kanji)",
		Args:  cobra.ExactArgs(1),
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

			kind := model.LookupWord
			if kanji {
				kind = model.LookupCharacter
			}
			lookup, err := services.EnrichService.Lookup(ctx, &service.LookupRequest{Kind: kind, Key: args[0]})
			if err != nil {
				return err
			}

			if format == "json" {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetEscapeHTML(false)
				enc.SetIndent("", "  ")
				return enc.Encode(lookup)
			}
			writeLookupText(cmd.OutOrStdout(), lookup)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&kanji, "kanji", "k", false, "Look up a single kanji character")
	cmd.Flags().StringVarP(&format, "format", "f", "text", "Output format: text, json")
	return cmd
}

// writeLookupText はnullでない項目だけを表示する
func writeLookupText(w io.Writer, l *model.Lookup) {
	fmt.Fprintln(w, l.Key)
	rows := []struct {
		label string
		value *string
	}{
		{"reading", l.Reading},
		{"kun", l.Kun},
		{"on", l.On},
		{"level", l.Level},
		{"parts of speech", l.PartsOfSpeech},
		{"meanings", l.Meanings},
	}
	for _, r := range rows {
		if r.value == nil {
			continue
		}
		fmt.Fprintf(w, "  %-16s %s\n", r.label+":", strings.TrimSpace(*r.value))
	}
}
