package store

import (
	"errors"
	"time"

	"github.com/brbranch/vocab_sync/internal/model"
)

// ListOptions はListRuns操作のオプション
type ListOptions struct {
	Deck  string // 空はフィルタなし
	Limit int    // default: 10
}

// エラー定義
var (
	ErrNotFound         = errors.New("resource not found")
	ErrNotInitialized   = errors.New("store not initialized")
	ErrConnectionFailed = errors.New("failed to connect to store")
	ErrInvalidArgument  = errors.New("invalid argument")
)

// DefaultLookupTTL はRedisでの検索キャッシュ保持期間
const DefaultLookupTTL = 30 * 24 * time.Hour

// DefaultListOptions はListOptionsのデフォルト値を返す
func DefaultListOptions() ListOptions {
	return ListOptions{Limit: 10}
}

func normalizeListOptions(opts ListOptions) ListOptions {
	if opts.Limit <= 0 {
		opts.Limit = DefaultListOptions().Limit
	}
	return opts
}

func validateLookup(lookup *model.Lookup) error {
	if lookup == nil || lookup.Key == "" {
		return ErrInvalidArgument
	}
	if lookup.Kind != model.LookupWord && lookup.Kind != model.LookupCharacter {
		return ErrInvalidArgument
	}
	return nil
}

func validateRun(run *model.SyncRun) error {
	if run == nil || run.ID == "" {
		return ErrInvalidArgument
	}
	return nil
}

func copyLookup(l *model.Lookup) *model.Lookup {
	c := *l
	c.Reading = copyString(l.Reading)
	c.Level = copyString(l.Level)
	c.PartsOfSpeech = copyString(l.PartsOfSpeech)
	c.Meanings = copyString(l.Meanings)
	c.Kun = copyString(l.Kun)
	c.On = copyString(l.On)
	c.Link = copyString(l.Link)
	return &c
}

func copyRun(r *model.SyncRun) *model.SyncRun {
	c := *r
	c.Error = copyString(r.Error)
	return &c
}

func copyString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
