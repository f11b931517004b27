package store

import (
	"fmt"
	"path/filepath"

	"github.com/brbranch/vocab_sync/internal/model"
)

// NewStore は設定からStoreを作成する（未初期化）
func NewStore(cfg model.StoreConfig, dataDir string) (Store, error) {
	switch cfg.Type {
	case model.StoreTypeMemory:
		return NewMemoryStore(), nil
	case model.StoreTypeSQLite, "":
		path := filepath.Join(dataDir, model.DefaultDBFile)
		if cfg.Path != nil && *cfg.Path != "" {
			path = *cfg.Path
		}
		return NewSQLiteStore(path)
	case model.StoreTypeRedis:
		if cfg.URL == nil || *cfg.URL == "" {
			return nil, fmt.Errorf("%w: redis store requires url", ErrInvalidArgument)
		}
		return NewRedisStore(*cfg.URL)
	default:
		return nil, fmt.Errorf("%w: unknown store type %q", ErrInvalidArgument, cfg.Type)
	}
}
