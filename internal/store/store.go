// Package store provides the lookup cache and sync-run ledger.
package store

import (
	"context"

	"github.com/brbranch/vocab_sync/internal/model"
)

// Store は辞書検索キャッシュと同期履歴の抽象インターフェース
type Store interface {
	// 辞書検索キャッシュ
	GetLookup(ctx context.Context, kind model.LookupKind, key string) (*model.Lookup, error)
	PutLookup(ctx context.Context, lookup *model.Lookup) error

	// 同期履歴（StartedAt降順で返す）
	RecordRun(ctx context.Context, run *model.SyncRun) error
	ListRuns(ctx context.Context, opts ListOptions) ([]*model.SyncRun, error)

	// 初期化・終了
	Initialize(ctx context.Context) error
	Close() error
}
