package config

import (
	"errors"
	"fmt"
	"net/url"

	"github.com/brbranch/vocab_sync/internal/model"
)

// エラー定義
var (
	ErrInvalidConfig = errors.New("invalid config")
)

// Validate は起動時に1回だけ設定を検証する
func Validate(cfg *model.Config) error {
	switch cfg.Sheet.Source {
	case model.SheetSourceGoogle:
		if cfg.Sheet.Key == "" {
			return fmt.Errorf("%w: sheet key is required (set %s)", ErrInvalidConfig, EnvSheetKey)
		}
	case model.SheetSourceCSV:
		if cfg.Sheet.CSVPath == nil || *cfg.Sheet.CSVPath == "" {
			return fmt.Errorf("%w: sheet.csvPath is required for csv source", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown sheet source %q", ErrInvalidConfig, cfg.Sheet.Source)
	}

	if _, err := url.ParseRequestURI(cfg.Anki.URL); err != nil {
		return fmt.Errorf("%w: anki.url: %v", ErrInvalidConfig, err)
	}
	if cfg.Anki.Version <= 0 {
		return fmt.Errorf("%w: anki.version must be positive", ErrInvalidConfig)
	}
	if cfg.Anki.Deck == "" {
		return fmt.Errorf("%w: anki.deck must not be empty", ErrInvalidConfig)
	}
	if _, err := model.ParseLayout(string(cfg.Anki.Layout)); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if cfg.Anki.TimeoutSeconds < 0 {
		return fmt.Errorf("%w: anki.timeoutSeconds must not be negative", ErrInvalidConfig)
	}

	switch cfg.Store.Type {
	case model.StoreTypeMemory, model.StoreTypeSQLite:
	case model.StoreTypeRedis:
		if cfg.Store.URL == nil || *cfg.Store.URL == "" {
			return fmt.Errorf("%w: store.url is required for redis", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown store type %q", ErrInvalidConfig, cfg.Store.Type)
	}

	return nil
}
