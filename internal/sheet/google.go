package sheet

import (
	"context"
	"fmt"
	"strings"

	"github.com/brbranch/vocab_sync/internal/model"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

const (
	// valueRenderFormula はHYPERLINK等を数式のまま読む
	valueRenderFormula = "FORMULA"
	// valueInputUserEntered は書き込んだ数式を評価させる
	valueInputUserEntered = "USER_ENTERED"
)

// GoogleSource はGoogle Sheetsのワークシートを使うSource実装
type GoogleSource struct {
	svc       *sheets.Service
	key       string
	worksheet string
	readWidth int // 直近のReadで見えた最大列数
}

// NewGoogleSource はGoogleSourceを作成する
// 認証情報はoptsまたはGOOGLE_APPLICATION_CREDENTIALSから解決される
func NewGoogleSource(ctx context.Context, key, worksheet string, opts ...option.ClientOption) (*GoogleSource, error) {
	if key == "" {
		return nil, fmt.Errorf("%w: spreadsheet key is required", ErrSourceRequest)
	}
	if worksheet == "" {
		worksheet = model.DefaultWorksheet
	}

	opts = append([]option.ClientOption{option.WithScopes(sheets.SpreadsheetsScope)}, opts...)
	svc, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create sheets service: %v", ErrSourceRequest, err)
	}

	return &GoogleSource{svc: svc, key: key, worksheet: worksheet}, nil
}

// Read はワークシート全体を数式表示で読む
func (s *GoogleSource) Read(ctx context.Context) (*model.Table, error) {
	resp, err := s.svc.Spreadsheets.Values.Get(s.key, s.worksheet).
		ValueRenderOption(valueRenderFormula).
		Context(ctx).
		Do()
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%w: failed to read %s: %v", ErrSourceRequest, s.worksheet, err)
	}

	rows := make([][]string, len(resp.Values))
	for i, row := range resp.Values {
		s.readWidth = max(s.readWidth, len(row))
		rows[i] = make([]string, len(row))
		for j, cell := range row {
			rows[i][j] = cellString(cell)
		}
	}
	return tableFromRows(rows)
}

// Write はA1からヘッダ＋全行をユーザー入力として書き込み、
// 書き込んだ行より下に残った古い行をクリアする
// 読み込み時に空行を詰めているため、クリアしないと末尾の行が重複して残る
func (s *GoogleSource) Write(ctx context.Context, table *model.Table) error {
	rows := rowsFromTable(table)
	values := make([][]interface{}, len(rows))
	for i, row := range rows {
		values[i] = make([]interface{}, len(row))
		for j, cell := range row {
			values[i][j] = cell
		}
	}

	_, err := s.svc.Spreadsheets.Values.Update(s.key, s.a1Range("A1"), &sheets.ValueRange{
		MajorDimension: "ROWS",
		Values:         values,
	}).ValueInputOption(valueInputUserEntered).Context(ctx).Do()
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("%w: failed to update %s: %v", ErrSourceRequest, s.worksheet, err)
	}

	// 終端行を省略した範囲（例: A5:F）は5行目以降の全行を指す
	width := max(len(table.Columns), s.readWidth)
	tail := s.a1Range(fmt.Sprintf("A%d:%s", len(rows)+1, columnName(width)))
	_, err = s.svc.Spreadsheets.Values.Clear(s.key, tail, &sheets.ClearValuesRequest{}).Context(ctx).Do()
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("%w: failed to clear stale rows in %s: %v", ErrSourceRequest, s.worksheet, err)
	}
	return nil
}

// a1Range はワークシート名を引用符で囲んだA1表記の範囲を返す
func (s *GoogleSource) a1Range(ref string) string {
	return "'" + strings.ReplaceAll(s.worksheet, "'", "''") + "'!" + ref
}

// columnName は1始まりの列番号を列名に変換する（1→A, 27→AA）
func columnName(n int) string {
	if n < 1 {
		n = 1
	}
	name := ""
	for n > 0 {
		n--
		name = string(rune('A'+n%26)) + name
		n /= 26
	}
	return name
}

func cellString(cell interface{}) string {
	switch v := cell.(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}
