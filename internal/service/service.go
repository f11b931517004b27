package service

import (
	"context"
	"errors"

	"github.com/brbranch/vocab_sync/internal/fields"
	"github.com/brbranch/vocab_sync/internal/model"
)

// SyncService はスプレッドシートの行をノートとして一括登録する
type SyncService interface {
	Sync(ctx context.Context, req *SyncRequest) (*SyncResult, error)
	History(ctx context.Context, req *HistoryRequest) (*HistoryResponse, error)
}

// EnrichService は辞書検索で空行を補完して書き戻す
type EnrichService interface {
	Enrich(ctx context.Context, req *EnrichRequest) (*EnrichResult, error)
	Lookup(ctx context.Context, req *LookupRequest) (*model.Lookup, error)
}

// NoteClient はノートサービスへの登録操作
// ankiconnect.Clientが満たす
type NoteClient interface {
	CreateDeck(ctx context.Context, deck string) (int64, error)
	AddNote(ctx context.Context, entry *model.Entry, deckName, modelName string, mapper fields.Mapper) (int64, error)
}

// エラー定義
var (
	ErrDeckRequired = errors.New("deck is required")
	ErrKeyRequired  = errors.New("lookup key is required")
	ErrInvalidKind  = errors.New("lookup kind must be word or kanji")
	ErrSyncAborted  = errors.New("sync aborted")
	ErrEnrichFailed = errors.New("enrich failed")
)
