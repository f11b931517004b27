// Package sheet reads and writes the vocabulary table from a spreadsheet source.
package sheet

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/brbranch/vocab_sync/internal/model"
	"google.golang.org/api/option"
)

// NullPlaceholder は書き戻し時のnullセル表現
const NullPlaceholder = "-"

// Source は語彙テーブルの読み書きインターフェース
type Source interface {
	// Read は先頭行をヘッダとしてテーブルを読む（空白セルはnull）
	Read(ctx context.Context) (*model.Table, error)
	// Write はヘッダ＋全行を書き戻す（nullはNullPlaceholder）
	Write(ctx context.Context, table *model.Table) error
}

// エラー定義
var (
	ErrEmptySheet    = errors.New("sheet has no header row")
	ErrInvalidHeader = errors.New("invalid sheet header")
	ErrUnknownSource = errors.New("unknown sheet source")
	ErrSourceRequest = errors.New("sheet request failed")
)

// NewSource は設定からSourceを作成する
func NewSource(ctx context.Context, cfg model.SheetConfig) (Source, error) {
	switch cfg.Source {
	case model.SheetSourceCSV:
		if cfg.CSVPath == nil || *cfg.CSVPath == "" {
			return nil, fmt.Errorf("%w: csv source requires csvPath", ErrUnknownSource)
		}
		return NewCSVSource(*cfg.CSVPath), nil
	case model.SheetSourceGoogle, "":
		var opts []option.ClientOption
		if cfg.CredentialsFile != nil && *cfg.CredentialsFile != "" {
			opts = append(opts, option.WithCredentialsFile(*cfg.CredentialsFile))
		}
		return NewGoogleSource(ctx, cfg.Key, cfg.Worksheet, opts...)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownSource, cfg.Source)
	}
}

// tableFromRows は先頭行をヘッダとしてTableを組み立てる
// ヘッダより短い行は不足分をnullとして扱う
func tableFromRows(rows [][]string) (*model.Table, error) {
	if len(rows) == 0 {
		return nil, ErrEmptySheet
	}

	header := make([]string, len(rows[0]))
	seen := make(map[string]bool, len(rows[0]))
	for i, h := range rows[0] {
		h = strings.TrimSpace(h)
		if h == "" {
			return nil, fmt.Errorf("%w: empty column name at %d", ErrInvalidHeader, i+1)
		}
		if seen[h] {
			return nil, fmt.Errorf("%w: duplicate column %q", ErrInvalidHeader, h)
		}
		seen[h] = true
		header[i] = h
	}

	table := &model.Table{Columns: header}
	for _, row := range rows[1:] {
		if isBlankRow(row) {
			continue
		}
		entry := model.NewEntry()
		for i, col := range header {
			if i < len(row) {
				entry.SetString(col, row[i])
			} else {
				entry.Set(col, nil)
			}
		}
		table.Entries = append(table.Entries, entry)
	}
	return table, nil
}

// rowsFromTable はヘッダ＋行を返す
func rowsFromTable(table *model.Table) [][]string {
	rows := make([][]string, 0, len(table.Entries)+1)
	rows = append(rows, append([]string(nil), table.Columns...))
	return append(rows, table.Rows(NullPlaceholder)...)
}

func isBlankRow(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
