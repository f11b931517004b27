package dictionary

import (
	"context"
	"errors"

	"github.com/brbranch/vocab_sync/internal/model"
	"github.com/brbranch/vocab_sync/internal/store"
	"github.com/sirupsen/logrus"
)

// CachedLookuper はStoreに検索結果をキャッシュするLookuper
// キャッシュの読み書き失敗は警告ログのみで検索自体は続行する
type CachedLookuper struct {
	next   Lookuper
	store  store.Store
	logger logrus.FieldLogger
}

// NewCachedLookuper はCachedLookuperを作成
func NewCachedLookuper(next Lookuper, st store.Store, logger logrus.FieldLogger) *CachedLookuper {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &CachedLookuper{next: next, store: st, logger: logger}
}

// Word はキャッシュを優先して単語を検索する
func (c *CachedLookuper) Word(ctx context.Context, word string) (*model.Lookup, error) {
	return c.lookup(ctx, model.LookupWord, word, c.next.Word)
}

// Character はキャッシュを優先して漢字を検索する
func (c *CachedLookuper) Character(ctx context.Context, char string) (*model.Lookup, error) {
	return c.lookup(ctx, model.LookupCharacter, char, c.next.Character)
}

func (c *CachedLookuper) lookup(ctx context.Context, kind model.LookupKind, key string,
	fetch func(context.Context, string) (*model.Lookup, error)) (*model.Lookup, error) {
	if key == "" {
		return nil, ErrEmptyKey
	}
	log := c.logger.WithFields(logrus.Fields{"kind": kind, "key": key})

	cached, err := c.store.GetLookup(ctx, kind, key)
	switch {
	case err == nil:
		log.Debug("lookup cache hit")
		return cached, nil
	case !errors.Is(err, store.ErrNotFound):
		log.WithError(err).Warn("failed to read lookup cache")
	}

	result, err := fetch(ctx, key)
	if err != nil {
		return nil, err
	}

	if err := c.store.PutLookup(ctx, result); err != nil {
		log.WithError(err).Warn("failed to write lookup cache")
	}
	return result, nil
}
