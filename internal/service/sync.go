package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/brbranch/vocab_sync/internal/ankiconnect"
	"github.com/brbranch/vocab_sync/internal/fields"
	"github.com/brbranch/vocab_sync/internal/model"
	"github.com/brbranch/vocab_sync/internal/sheet"
	"github.com/brbranch/vocab_sync/internal/store"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// syncService はSyncServiceの実装
type syncService struct {
	source      sheet.Source
	notes       NoteClient
	store       store.Store
	defaultDeck string
	logger      logrus.FieldLogger
	now         func() time.Time
}

// NewSyncService はSyncServiceの新しいインスタンスを作成
func NewSyncService(src sheet.Source, notes NoteClient, s store.Store, defaultDeck string, logger logrus.FieldLogger) SyncService {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &syncService{
		source:      src,
		notes:       notes,
		store:       s,
		defaultDeck: defaultDeck,
		logger:      logger,
		now:         time.Now,
	}
}

// Sync はデッキを作成し、全行を元の順序で1件ずつ登録する
// 重複・必須カラム欠落・非対応の行はスキップし、それ以外の失敗で中断する
func (s *syncService) Sync(ctx context.Context, req *SyncRequest) (*SyncResult, error) {
	deck := req.Deck
	if deck == "" {
		deck = s.defaultDeck
	}
	if deck == "" {
		return nil, ErrDeckRequired
	}
	layout, err := model.ParseLayout(string(req.Layout))
	if err != nil {
		return nil, err
	}

	run := &model.SyncRun{
		ID:        uuid.New().String(),
		Deck:      deck,
		Layout:    layout,
		StartedAt: s.now().UTC(),
	}
	log := s.logger.WithFields(logrus.Fields{"run": run.ID, "deck": deck, "layout": layout})

	syncErr := s.run(ctx, run, log)

	run.FinishedAt = s.now().UTC()
	if syncErr != nil {
		msg := syncErr.Error()
		run.Error = &msg
	}

	// キャンセル後も履歴は残す
	if err := s.store.RecordRun(context.WithoutCancel(ctx), run); err != nil {
		log.WithError(err).Warn("failed to record sync run")
	}

	result := &SyncResult{Run: run}
	if syncErr != nil {
		log.WithError(syncErr).Error("sync aborted")
		return result, syncErr
	}

	log.WithFields(logrus.Fields{
		"added":       run.Added,
		"duplicates":  run.Duplicates,
		"missing":     run.Missing,
		"unsupported": run.Unsupported,
	}).Info("sync finished")
	return result, nil
}

func (s *syncService) run(ctx context.Context, run *model.SyncRun, log logrus.FieldLogger) error {
	table, err := s.source.Read(ctx)
	if err != nil {
		return fmt.Errorf("%w: failed to read sheet: %w", ErrSyncAborted, err)
	}
	run.Total = len(table.Entries)
	log.WithField("rows", run.Total).Info("loaded vocabulary")

	if _, err := s.notes.CreateDeck(ctx, run.Deck); err != nil {
		return fmt.Errorf("%w: failed to create deck: %w", ErrSyncAborted, err)
	}

	for i, entry := range table.Entries {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("%w at row %d: %w", ErrSyncAborted, i+1, err)
		}

		kanji, _ := entry.Kanji()
		rowLog := log.WithFields(logrus.Fields{"row": i + 1, "kanji": kanji})

		category, ok := entry.Category()
		if !ok {
			run.Unsupported++
			rowLog.Warn("no type specified")
			continue
		}

		mapper, modelName, err := fields.Select(run.Layout, category)
		if err != nil {
			run.Unsupported++
			rowLog.WithField("type", category).Warn("unsupported type for layout")
			continue
		}

		_, err = s.notes.AddNote(ctx, entry, run.Deck, modelName, mapper)
		switch {
		case err == nil:
			run.Added++
			rowLog.Debug("note added")
		case errors.Is(err, ankiconnect.ErrDuplicateNote):
			run.Duplicates++
			rowLog.Debug("duplicate note skipped")
		case errors.Is(err, fields.ErrMissingField):
			run.Missing++
			rowLog.WithError(err).Warn("missing field skipped")
		default:
			return fmt.Errorf("%w at row %d (%s): %w", ErrSyncAborted, i+1, kanji, err)
		}
	}
	return nil
}

// History は同期履歴を新しい順に返す
func (s *syncService) History(ctx context.Context, req *HistoryRequest) (*HistoryResponse, error) {
	opts := store.DefaultListOptions()
	opts.Deck = req.Deck
	if req.Limit > 0 {
		opts.Limit = req.Limit
	}

	runs, err := s.store.ListRuns(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list sync runs: %w", err)
	}
	return &HistoryResponse{Runs: runs}, nil
}
