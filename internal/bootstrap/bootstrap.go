// Package bootstrap provides common initialization logic for vocab-sync.
package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/brbranch/vocab_sync/internal/ankiconnect"
	"github.com/brbranch/vocab_sync/internal/config"
	"github.com/brbranch/vocab_sync/internal/dictionary"
	"github.com/brbranch/vocab_sync/internal/logging"
	"github.com/brbranch/vocab_sync/internal/model"
	"github.com/brbranch/vocab_sync/internal/service"
	"github.com/brbranch/vocab_sync/internal/sheet"
	"github.com/brbranch/vocab_sync/internal/store"
	"github.com/sirupsen/logrus"
)

// Services は初期化されたサービス群を保持
type Services struct {
	SyncService   service.SyncService
	EnrichService service.EnrichService
	Anki          *ankiconnect.Client
	Store         store.Store
	Config        *model.Config
	Logger        *logrus.Logger
}

// Option は読み込んだ設定を上書きする（CLIフラグ用）
type Option func(cfg *model.Config)

// Initialize は設定を読み込み、必要なサービスを初期化する
func Initialize(ctx context.Context, configPath string, opts ...Option) (*Services, func(), error) {
	// .envは環境変数より弱い
	if err := config.LoadDotEnv(); err != nil {
		return nil, nil, fmt.Errorf("failed to load .env: %w", err)
	}

	// 設定マネージャーの作成
	configManager, err := config.NewManager(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create config manager: %w", err)
	}

	// 設定ファイルの読み込み
	if err := configManager.Load(); err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	cfg := configManager.GetConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	if err := config.Validate(cfg); err != nil {
		return nil, nil, err
	}

	// 1. Logger初期化
	logger, err := logging.New(cfg.Log.Level, os.Stderr)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create logger: %w", err)
	}

	// 2. Store初期化
	if cfg.Store.Type == model.StoreTypeSQLite {
		dbPath := filepath.Join(cfg.Paths.DataDir, model.DefaultDBFile)
		if cfg.Store.Path != nil && *cfg.Store.Path != "" {
			dbPath = *cfg.Store.Path
		}
		// DBファイルの親ディレクトリを作成
		if err := config.EnsureDir(filepath.Dir(dbPath)); err != nil {
			return nil, nil, fmt.Errorf("failed to create data directory: %w", err)
		}
		cfg.Store.Path = &dbPath
	}
	st, err := store.NewStore(cfg.Store, cfg.Paths.DataDir)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create store: %w", err)
	}
	if err := st.Initialize(ctx); err != nil {
		st.Close()
		return nil, nil, fmt.Errorf("failed to initialize store: %w", err)
	}

	// 3. スプレッドシート
	src, err := sheet.NewSource(ctx, cfg.Sheet)
	if err != nil {
		st.Close()
		return nil, nil, fmt.Errorf("failed to create sheet source: %w", err)
	}

	// 4. ノートサービスクライアント
	ankiOpts := []ankiconnect.Option{
		ankiconnect.WithURL(cfg.Anki.URL),
		ankiconnect.WithVersion(cfg.Anki.Version),
		ankiconnect.WithLogger(logger),
	}
	if cfg.Anki.TimeoutSeconds > 0 {
		ankiOpts = append(ankiOpts, ankiconnect.WithTimeout(time.Duration(cfg.Anki.TimeoutSeconds)*time.Second))
	}
	anki := ankiconnect.New(ankiOpts...)

	// 5. 辞書（Storeにキャッシュ）
	dict := dictionary.NewClient(
		dictionary.WithWordsURL(cfg.Dictionary.WordsURL),
		dictionary.WithKanjiURL(cfg.Dictionary.KanjiURL),
		dictionary.WithRateLimit(cfg.Dictionary.RequestsPerSecond),
		dictionary.WithLogger(logger),
	)
	lookuper := dictionary.NewCachedLookuper(dict, st, logger)

	// 6. Services初期化
	syncService := service.NewSyncService(src, anki, st, cfg.Anki.Deck, logger)
	enrichService := service.NewEnrichService(src, lookuper, logger)

	cleanup := func() {
		if err := st.Close(); err != nil {
			logger.WithError(err).Warn("failed to close store")
		}
	}

	return &Services{
		SyncService:   syncService,
		EnrichService: enrichService,
		Anki:          anki,
		Store:         st,
		Config:        cfg,
		Logger:        logger,
	}, cleanup, nil
}
