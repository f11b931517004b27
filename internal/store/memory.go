package store

import (
	"context"
	"sort"
	"sync"

	"github.com/brbranch/vocab_sync/internal/model"
)

// MemoryStore はテスト用のインメモリStore実装
type MemoryStore struct {
	mu          sync.RWMutex
	lookups     map[string]*model.Lookup // key: kind + ":" + key
	runs        map[string]*model.SyncRun
	initialized bool
}

// NewMemoryStore はMemoryStoreを作成する
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		lookups: make(map[string]*model.Lookup),
		runs:    make(map[string]*model.SyncRun),
	}
}

// Initialize はストアを初期化する
func (s *MemoryStore) Initialize(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.initialized = true
	return nil
}

// Close はストアをクローズする
func (s *MemoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lookups = make(map[string]*model.Lookup)
	s.runs = make(map[string]*model.SyncRun)
	s.initialized = false
	return nil
}

// GetLookup はキャッシュ済みの検索結果を取得する
func (s *MemoryStore) GetLookup(ctx context.Context, kind model.LookupKind, key string) (*model.Lookup, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.initialized {
		return nil, ErrNotInitialized
	}

	l, ok := s.lookups[lookupKey(kind, key)]
	if !ok {
		return nil, ErrNotFound
	}
	return copyLookup(l), nil
}

// PutLookup は検索結果を保存する（同じkind/keyは上書き）
func (s *MemoryStore) PutLookup(ctx context.Context, lookup *model.Lookup) error {
	if err := validateLookup(lookup); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return ErrNotInitialized
	}

	s.lookups[lookupKey(lookup.Kind, lookup.Key)] = copyLookup(lookup)
	return nil
}

// RecordRun は同期実行を記録する（同じIDは上書き）
func (s *MemoryStore) RecordRun(ctx context.Context, run *model.SyncRun) error {
	if err := validateRun(run); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return ErrNotInitialized
	}

	s.runs[run.ID] = copyRun(run)
	return nil
}

// ListRuns は同期履歴を新しい順に返す
func (s *MemoryStore) ListRuns(ctx context.Context, opts ListOptions) ([]*model.SyncRun, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.initialized {
		return nil, ErrNotInitialized
	}
	opts = normalizeListOptions(opts)

	var runs []*model.SyncRun
	for _, r := range s.runs {
		if opts.Deck != "" && r.Deck != opts.Deck {
			continue
		}
		runs = append(runs, copyRun(r))
	}

	sortRuns(runs)
	if len(runs) > opts.Limit {
		runs = runs[:opts.Limit]
	}
	return runs, nil
}

func lookupKey(kind model.LookupKind, key string) string {
	return string(kind) + ":" + key
}

// sortRuns はStartedAt降順、同時刻はID昇順で並べる
func sortRuns(runs []*model.SyncRun) {
	sort.SliceStable(runs, func(i, j int) bool {
		if runs[i].StartedAt.Equal(runs[j].StartedAt) {
			return runs[i].ID < runs[j].ID
		}
		return runs[i].StartedAt.After(runs[j].StartedAt)
	})
}
