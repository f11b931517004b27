package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/brbranch/vocab_sync/internal/model"
	"github.com/redis/go-redis/v9"
)

const (
	lookupKeyPrefix = "vocab:lookup:" // vocab:lookup:{kind}:{key}
	runKeyPrefix    = "vocab:run:"    // vocab:run:{run_id}
	runIndexKey     = "vocab:runs"    // started_atをscoreにしたsorted set
)

// RedisStore はRedisを使用したStore実装
type RedisStore struct {
	mu          sync.RWMutex
	client      *redis.Client
	lookupTTL   time.Duration
	ownsClient  bool
	initialized bool
}

// RedisOption はRedisStoreの設定オプション
type RedisOption func(*RedisStore)

// WithLookupTTL は検索キャッシュのTTLを設定する（0は無期限）
func WithLookupTTL(ttl time.Duration) RedisOption {
	return func(s *RedisStore) {
		s.lookupTTL = ttl
	}
}

// NewRedisStore はURL（redis://host:port/db）からRedisStoreを作成する
func NewRedisStore(url string, opts ...RedisOption) (*RedisStore, error) {
	redisOpts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis url: %w", err)
	}
	s := NewRedisStoreWithClient(redis.NewClient(redisOpts), opts...)
	s.ownsClient = true
	return s, nil
}

// NewRedisStoreWithClient は既存のクライアントからRedisStoreを作成する
func NewRedisStoreWithClient(client *redis.Client, opts ...RedisOption) *RedisStore {
	s := &RedisStore{
		client:    client,
		lookupTTL: DefaultLookupTTL,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Initialize は接続を確認する
func (s *RedisStore) Initialize(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrConnectionFailed, err)
	}
	s.initialized = true
	return nil
}

// Close はストアをクローズする
func (s *RedisStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.initialized = false
	if s.ownsClient {
		return s.client.Close()
	}
	return nil
}

// GetLookup はキャッシュ済みの検索結果を取得する
func (s *RedisStore) GetLookup(ctx context.Context, kind model.LookupKind, key string) (*model.Lookup, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.initialized {
		return nil, ErrNotInitialized
	}

	data, err := s.client.Get(ctx, lookupKeyPrefix+lookupKey(kind, key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get lookup: %w", err)
	}

	var l model.Lookup
	if err := json.Unmarshal(data, &l); err != nil {
		return nil, fmt.Errorf("failed to unmarshal lookup: %w", err)
	}
	return &l, nil
}

// PutLookup は検索結果をTTL付きで保存する
func (s *RedisStore) PutLookup(ctx context.Context, lookup *model.Lookup) error {
	if err := validateLookup(lookup); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return ErrNotInitialized
	}

	data, err := json.Marshal(lookup)
	if err != nil {
		return fmt.Errorf("failed to marshal lookup: %w", err)
	}
	if err := s.client.Set(ctx, lookupKeyPrefix+lookupKey(lookup.Kind, lookup.Key), data, s.lookupTTL).Err(); err != nil {
		return fmt.Errorf("failed to set lookup: %w", err)
	}
	return nil
}

// RecordRun は同期実行を記録する（同じIDは上書き）
func (s *RedisStore) RecordRun(ctx context.Context, run *model.SyncRun) error {
	if err := validateRun(run); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return ErrNotInitialized
	}

	data, err := json.Marshal(run)
	if err != nil {
		return fmt.Errorf("failed to marshal run: %w", err)
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, runKeyPrefix+run.ID, data, 0)
	pipe.ZAdd(ctx, runIndexKey, redis.Z{
		Score:  float64(run.StartedAt.UnixNano()),
		Member: run.ID,
	})
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to record run: %w", err)
	}
	return nil
}

// ListRuns は同期履歴を新しい順に返す
func (s *RedisStore) ListRuns(ctx context.Context, opts ListOptions) ([]*model.SyncRun, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.initialized {
		return nil, ErrNotInitialized
	}
	opts = normalizeListOptions(opts)

	ids, err := s.client.ZRevRange(ctx, runIndexKey, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list run ids: %w", err)
	}

	var runs []*model.SyncRun
	for _, id := range ids {
		data, err := s.client.Get(ctx, runKeyPrefix+id).Bytes()
		if errors.Is(err, redis.Nil) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to get run: %w", err)
		}

		var r model.SyncRun
		if err := json.Unmarshal(data, &r); err != nil {
			return nil, fmt.Errorf("failed to unmarshal run: %w", err)
		}
		if opts.Deck != "" && r.Deck != opts.Deck {
			continue
		}
		runs = append(runs, &r)
	}

	sortRuns(runs)
	if len(runs) > opts.Limit {
		runs = runs[:opts.Limit]
	}
	return runs, nil
}
