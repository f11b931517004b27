package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/brbranch/vocab_sync/internal/bootstrap"
	"github.com/brbranch/vocab_sync/internal/model"
	"github.com/spf13/cobra"
)

// ビルド時変数（-ldflags で変更可能）
var version = "dev"

// rootOptions は全コマンド共通のフラグ
type rootOptions struct {
	ConfigPath string
	CSVPath    string
	AnkiURL    string
	Deck       string
	LogLevel   string
}

func main() {
	ctx, cancel := setupSignalHandler()
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// newRootCmd はコマンドツリーを組み立てる（テスト容易性のため毎回生成）
func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "vocab-sync",
		Short:         "Sync a Japanese vocabulary spreadsheet into Anki",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&opts.ConfigPath, "config", "c", "", "Config file path (default ~/.vocab-sync/config.json)")
	flags.StringVar(&opts.CSVPath, "csv", "", "Read vocabulary from a local CSV file instead of Google Sheets")
	flags.StringVar(&opts.AnkiURL, "anki-url", "", "AnkiConnect URL")
	flags.StringVarP(&opts.Deck, "deck", "d", "", "Target deck")
	flags.StringVar(&opts.LogLevel, "log-level", "", "Log level: debug, info, warn, error")

	root.AddCommand(
		newSyncCmd(opts),
		newEnrichCmd(opts),
		newLookupCmd(opts),
		newHistoryCmd(opts),
		newServeAnkiCmd(),
		newConfigCmd(opts),
		newVersionCmd(),
	)
	return root
}

// initialize はフラグを設定に反映してサービスを初期化する
func initialize(ctx context.Context, opts *rootOptions, extra ...bootstrap.Option) (*bootstrap.Services, func(), error) {
	overrides := []bootstrap.Option{func(cfg *model.Config) {
		applyRootOptions(cfg, opts)
	}}
	return bootstrap.Initialize(ctx, opts.ConfigPath, append(overrides, extra...)...)
}

// applyRootOptions は共通フラグを設定に上書きする（未指定のフラグは無視）
func applyRootOptions(cfg *model.Config, opts *rootOptions) {
	if opts.CSVPath != "" {
		cfg.Sheet.Source = model.SheetSourceCSV
		cfg.Sheet.CSVPath = &opts.CSVPath
	}
	if opts.AnkiURL != "" {
		cfg.Anki.URL = opts.AnkiURL
	}
	if opts.Deck != "" {
		cfg.Anki.Deck = opts.Deck
	}
	if opts.LogLevel != "" {
		cfg.Log.Level = opts.LogLevel
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "vocab-sync version %s\n", version)
		},
	}
}

// setupSignalHandler はSIGINT/SIGTERMを受けてcontextをキャンセルする
func setupSignalHandler() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}
