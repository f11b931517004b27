package sheet

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"github.com/brbranch/vocab_sync/internal/model"
)

// CSVSource はローカルCSVファイルを使うSource実装
type CSVSource struct {
	path string
}

// NewCSVSource はCSVSourceを作成する
func NewCSVSource(path string) *CSVSource {
	return &CSVSource{path: path}
}

// Path はファイルパスを返す
func (s *CSVSource) Path() string {
	return s.path
}

// Read はCSVを読む
func (s *CSVSource) Read(ctx context.Context) (*model.Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceRequest, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: failed to parse csv: %v", ErrSourceRequest, err)
	}
	return tableFromRows(rows)
}

// Write はCSVをアトミックに書き戻す
func (s *CSVSource) Write(ctx context.Context, table *model.Table) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".vocab-*.csv")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSourceRequest, err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	// CreateTempは0600で作るため、元ファイルのパーミッションに揃える
	mode := os.FileMode(0644)
	if info, err := os.Stat(s.path); err == nil {
		mode = info.Mode().Perm()
	}
	if err := tmp.Chmod(mode); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: %v", ErrSourceRequest, err)
	}

	w := csv.NewWriter(tmp)
	if err := w.WriteAll(rowsFromTable(table)); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: failed to write csv: %v", ErrSourceRequest, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: %v", ErrSourceRequest, err)
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		return fmt.Errorf("%w: %v", ErrSourceRequest, err)
	}
	return nil
}
