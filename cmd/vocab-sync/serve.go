package main

import (
	"fmt"

	"github.com/brbranch/vocab_sync/internal/ankiserver"
	"github.com/brbranch/vocab_sync/internal/logging"
	"github.com/brbranch/vocab_sync/internal/transport/http"
	"github.com/brbranch/vocab_sync/internal/transport/stdio"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

// serveOptions はserve-ankiのフラグ
type serveOptions struct {
	Transport   string
	Host        string
	Port        int
	CORSOrigins []string
}

func newServeAnkiCmd() *cobra.Command {
	opts := &serveOptions{}

	cmd := &cobra.Command{
		Use:   "serve-anki",
		Short: "Run an in-memory AnkiConnect-compatible service for dry runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.Transport != "stdio" && opts.Transport != "http" {
				return fmt.Errorf("invalid transport: %s (must be stdio or http)", opts.Transport)
			}
			if opts.Port < 1 || opts.Port > 65535 {
				return fmt.Errorf("invalid port: %d (must be 1-65535)", opts.Port)
			}

			// --log-level はルートの共通フラグ
			level, _ := cmd.Flags().GetString("log-level")
			logger, err := logging.New(level, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			handler := ankiserver.New(ankiserver.WithLogger(logger))

			switch opts.Transport {
			case "stdio":
				server := stdio.New(handler,
					stdio.WithReader(cmd.InOrStdin()),
					stdio.WithWriter(cmd.OutOrStdout()),
					stdio.WithLogger(logger),
				)
				return server.Run(cmd.Context())
			default:
				gin.SetMode(gin.ReleaseMode)
				server := http.New(handler, http.Config{
					Addr:        fmt.Sprintf("%s:%d", opts.Host, opts.Port),
					CORSOrigins: opts.CORSOrigins,
					Logger:      logger,
				})
				return server.Run(cmd.Context())
			}
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.Transport, "transport", "t", "http", "Transport type: http, stdio")
	flags.StringVar(&opts.Host, "host", "127.0.0.1", "HTTP host")
	flags.IntVarP(&opts.Port, "port", "p", 8765, "HTTP port")
	flags.StringSliceVar(&opts.CORSOrigins, "cors-origin", nil, "Allowed CORS origin (repeatable)")
	return cmd
}
