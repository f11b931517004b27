package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/brbranch/vocab_sync/internal/model"
	_ "modernc.org/sqlite"
)

// SQLiteStore はSQLiteを使用したStore実装
type SQLiteStore struct {
	mu          sync.RWMutex
	db          *sql.DB
	dbPath      string
	initialized bool
}

// NewSQLiteStore はSQLiteStoreを作成する
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// WALモードを有効化
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set WAL mode: %w", err)
	}

	return &SQLiteStore{
		db:     db,
		dbPath: dbPath,
	}, nil
}

// Initialize はテーブルを作成する
func (s *SQLiteStore) Initialize(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	lookupsSQL := `
	CREATE TABLE IF NOT EXISTS lookups (
		kind TEXT NOT NULL,
		key TEXT NOT NULL,
		reading TEXT,
		level TEXT,
		parts_of_speech TEXT,
		meanings TEXT,
		kun TEXT,
		on_readings TEXT,
		link TEXT,
		updated_at TEXT,
		PRIMARY KEY (kind, key)
	);
	`
	if _, err := s.db.ExecContext(ctx, lookupsSQL); err != nil {
		return fmt.Errorf("failed to create lookups table: %w", err)
	}

	runsSQL := `
	CREATE TABLE IF NOT EXISTS sync_runs (
		id TEXT PRIMARY KEY,
		deck TEXT NOT NULL,
		layout TEXT NOT NULL,
		started_at TEXT NOT NULL,
		finished_at TEXT,
		total INTEGER NOT NULL DEFAULT 0,
		added INTEGER NOT NULL DEFAULT 0,
		duplicates INTEGER NOT NULL DEFAULT 0,
		missing INTEGER NOT NULL DEFAULT 0,
		unsupported INTEGER NOT NULL DEFAULT 0,
		error TEXT
	);
	CREATE INDEX IF NOT EXISTS idx_sync_runs_started_at ON sync_runs(started_at);
	CREATE INDEX IF NOT EXISTS idx_sync_runs_deck ON sync_runs(deck, started_at);
	`
	if _, err := s.db.ExecContext(ctx, runsSQL); err != nil {
		return fmt.Errorf("failed to create sync_runs table: %w", err)
	}

	s.initialized = true
	return nil
}

// Close はストアをクローズする
func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.initialized = false
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// GetLookup はキャッシュ済みの検索結果を取得する
func (s *SQLiteStore) GetLookup(ctx context.Context, kind model.LookupKind, key string) (*model.Lookup, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.initialized {
		return nil, ErrNotInitialized
	}

	row := s.db.QueryRowContext(ctx, `
		SELECT kind, key, reading, level, parts_of_speech, meanings, kun, on_readings, link
		FROM lookups
		WHERE kind = ? AND key = ?
	`, string(kind), key)

	var (
		l        model.Lookup
		kindText string
		reading, level, pos, meanings, kun, on, link sql.NullString
	)
	err := row.Scan(&kindText, &l.Key, &reading, &level, &pos, &meanings, &kun, &on, &link)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get lookup: %w", err)
	}

	l.Kind = model.LookupKind(kindText)
	l.Reading = fromNull(reading)
	l.Level = fromNull(level)
	l.PartsOfSpeech = fromNull(pos)
	l.Meanings = fromNull(meanings)
	l.Kun = fromNull(kun)
	l.On = fromNull(on)
	l.Link = fromNull(link)
	return &l, nil
}

// PutLookup は検索結果を保存する（同じkind/keyは上書き）
func (s *SQLiteStore) PutLookup(ctx context.Context, lookup *model.Lookup) error {
	if err := validateLookup(lookup); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return ErrNotInitialized
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO lookups (kind, key, reading, level, parts_of_speech, meanings, kun, on_readings, link, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(kind, key) DO UPDATE SET
			reading = excluded.reading,
			level = excluded.level,
			parts_of_speech = excluded.parts_of_speech,
			meanings = excluded.meanings,
			kun = excluded.kun,
			on_readings = excluded.on_readings,
			link = excluded.link,
			updated_at = excluded.updated_at
	`, string(lookup.Kind), lookup.Key, toNull(lookup.Reading), toNull(lookup.Level),
		toNull(lookup.PartsOfSpeech), toNull(lookup.Meanings), toNull(lookup.Kun),
		toNull(lookup.On), toNull(lookup.Link), time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to upsert lookup: %w", err)
	}
	return nil
}

// RecordRun は同期実行を記録する（同じIDは上書き）
func (s *SQLiteStore) RecordRun(ctx context.Context, run *model.SyncRun) error {
	if err := validateRun(run); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return ErrNotInitialized
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO sync_runs (id, deck, layout, started_at, finished_at, total, added, duplicates, missing, unsupported, error)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			finished_at = excluded.finished_at,
			total = excluded.total,
			added = excluded.added,
			duplicates = excluded.duplicates,
			missing = excluded.missing,
			unsupported = excluded.unsupported,
			error = excluded.error
	`, run.ID, run.Deck, string(run.Layout), formatTime(run.StartedAt), formatTime(run.FinishedAt),
		run.Total, run.Added, run.Duplicates, run.Missing, run.Unsupported, toNull(run.Error))
	if err != nil {
		return fmt.Errorf("failed to record run: %w", err)
	}
	return nil
}

// ListRuns は同期履歴を新しい順に返す
func (s *SQLiteStore) ListRuns(ctx context.Context, opts ListOptions) ([]*model.SyncRun, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.initialized {
		return nil, ErrNotInitialized
	}
	opts = normalizeListOptions(opts)

	query := `
		SELECT id, deck, layout, started_at, finished_at, total, added, duplicates, missing, unsupported, error
		FROM sync_runs`
	args := []any{}
	if opts.Deck != "" {
		query += " WHERE deck = ?"
		args = append(args, opts.Deck)
	}
	query += " ORDER BY started_at DESC, id ASC LIMIT ?"
	args = append(args, opts.Limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []*model.SyncRun
	for rows.Next() {
		var (
			r                   model.SyncRun
			layout, started     string
			finished, errorText sql.NullString
		)
		if err := rows.Scan(&r.ID, &r.Deck, &layout, &started, &finished,
			&r.Total, &r.Added, &r.Duplicates, &r.Missing, &r.Unsupported, &errorText); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		r.Layout = model.Layout(layout)
		r.StartedAt = parseTime(started)
		if finished.Valid {
			r.FinishedAt = parseTime(finished.String)
		}
		r.Error = fromNull(errorText)
		runs = append(runs, &r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate runs: %w", err)
	}
	return runs, nil
}

// formatTime は辞書順で時刻順になる固定幅フォーマット
func formatTime(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05.000000000Z")
}

func parseTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

func toNull(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func fromNull(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	v := ns.String
	return &v
}
