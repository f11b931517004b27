package service

import (
	"context"
	"fmt"

	"github.com/brbranch/vocab_sync/internal/dictionary"
	"github.com/brbranch/vocab_sync/internal/model"
	"github.com/brbranch/vocab_sync/internal/sheet"
	"github.com/sirupsen/logrus"
)

// emptyCheckColumns が全てnullの行を補完対象とする
var emptyCheckColumns = []string{
	model.ColumnKun,
	model.ColumnOn,
	model.ColumnReading,
	model.ColumnMeanings,
}

// lookupColumnOrder は補完で増えるカラムの追加順
var lookupColumnOrder = []string{
	model.ColumnReading,
	model.ColumnLevel,
	model.ColumnPartsOfSpeech,
	model.ColumnKun,
	model.ColumnOn,
	model.ColumnMeanings,
	model.ColumnLink,
}

// enrichService はEnrichServiceの実装
type enrichService struct {
	source   sheet.Source
	lookuper dictionary.Lookuper
	logger   logrus.FieldLogger
}

// NewEnrichService はEnrichServiceの新しいインスタンスを作成
func NewEnrichService(src sheet.Source, lookuper dictionary.Lookuper, logger logrus.FieldLogger) EnrichService {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &enrichService{
		source:   src,
		lookuper: lookuper,
		logger:   logger,
	}
}

// Enrich は空行を辞書で補完し、テーブル全体を書き戻す
func (s *enrichService) Enrich(ctx context.Context, req *EnrichRequest) (*EnrichResult, error) {
	table, err := s.source.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read sheet: %w", ErrEnrichFailed, err)
	}

	result := &EnrichResult{Total: len(table.Entries), Table: table}
	enriched := make([]*model.Entry, 0, len(table.Entries))

	for i, entry := range table.Entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if !needsLookup(entry) {
			enriched = append(enriched, entry)
			continue
		}

		kanji, _ := entry.Kanji()
		rowLog := s.logger.WithFields(logrus.Fields{"row": i + 1, "kanji": kanji})

		category, ok := entry.Category()
		if !ok {
			result.Untyped++
			rowLog.Warn("no type specified")
			enriched = append(enriched, entry)
			continue
		}
		if kanji == "" {
			result.MissingKey++
			rowLog.WithField("type", category).Warn("no headword to look up")
			enriched = append(enriched, entry)
			continue
		}

		lookup, err := s.lookupEntry(ctx, category, kanji)
		if err != nil {
			return nil, fmt.Errorf("%w at row %d (%s): %w", ErrEnrichFailed, i+1, kanji, err)
		}

		columns := lookup.Columns()
		for _, c := range lookupColumnOrder {
			if _, ok := columns[c]; ok {
				table.EnsureColumn(c)
			}
		}
		enriched = append(enriched, entry.Merge(columns))
		result.Enriched++
		rowLog.Debug("entry enriched")
	}
	table.Entries = enriched

	if req.DryRun {
		s.logger.WithField("enriched", result.Enriched).Info("dry run, sheet not updated")
		return result, nil
	}

	if err := s.source.Write(ctx, table); err != nil {
		return nil, fmt.Errorf("%w: failed to write sheet: %w", ErrEnrichFailed, err)
	}
	result.Written = true
	s.logger.WithFields(logrus.Fields{
		"rows":     result.Total,
		"enriched": result.Enriched,
	}).Info("sheet updated")
	return result, nil
}

// lookupEntry は種別に応じて単語または漢字を検索する
func (s *enrichService) lookupEntry(ctx context.Context, category model.Category, kanji string) (*model.Lookup, error) {
	if category == model.CategoryKanji {
		return s.lookuper.Character(ctx, kanji)
	}
	return s.lookuper.Word(ctx, kanji)
}

// Lookup は単発の辞書検索
func (s *enrichService) Lookup(ctx context.Context, req *LookupRequest) (*model.Lookup, error) {
	if req.Key == "" {
		return nil, ErrKeyRequired
	}
	switch req.Kind {
	case model.LookupCharacter:
		return s.lookuper.Character(ctx, req.Key)
	case model.LookupWord:
		return s.lookuper.Word(ctx, req.Key)
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidKind, req.Kind)
	}
}

func needsLookup(entry *model.Entry) bool {
	for _, c := range emptyCheckColumns {
		if !entry.IsNull(c) {
			return false
		}
	}
	return true
}
