package model

import "strings"

// スプレッドシートの既知カラム
const (
	ColumnKanji         = "kanji"
	ColumnChar          = "char"
	ColumnType          = "type"
	ColumnReading       = "reading"
	ColumnKun           = "kun"
	ColumnOn            = "on"
	ColumnMeanings      = "meanings"
	ColumnLevel         = "level"
	ColumnPartsOfSpeech = "parts_of_speech"
	ColumnLink          = "link"
)

// Category はエントリの種別（typeカラム）
type Category string

const (
	CategoryWord  Category = "Word"
	CategoryKanji Category = "Kanji"
)

// ParseCategory はtypeカラムの値をCategoryに変換する
// Word/Kanji以外はfalse
func ParseCategory(s string) (Category, bool) {
	switch Category(strings.TrimSpace(s)) {
	case CategoryWord:
		return CategoryWord, true
	case CategoryKanji:
		return CategoryKanji, true
	default:
		return "", false
	}
}

// Entry はスプレッドシートの1行
// 空セルはnil（null sentinel）として保持する
type Entry struct {
	Values map[string]*string
}

// NewEntry は空のEntryを作成
func NewEntry() *Entry {
	return &Entry{Values: make(map[string]*string)}
}

// EntryFromStrings はカラム名→値のマップからEntryを作成する
// 空文字列はnilに正規化する
func EntryFromStrings(values map[string]string) *Entry {
	e := NewEntry()
	for k, v := range values {
		e.SetString(k, v)
	}
	return e
}

// Get はカラムの値を返す（未定義またはnullならfalse）
func (e *Entry) Get(column string) (string, bool) {
	if e == nil || e.Values == nil {
		return "", false
	}
	v, ok := e.Values[column]
	if !ok || v == nil {
		return "", false
	}
	return *v, true
}

// IsNull はカラムが未定義またはnullかを返す
func (e *Entry) IsNull(column string) bool {
	_, ok := e.Get(column)
	return !ok
}

// Set はカラムの値を設定する（nilはnull）
func (e *Entry) Set(column string, value *string) {
	if e.Values == nil {
		e.Values = make(map[string]*string)
	}
	e.Values[column] = value
}

// SetString は空白のみの値をnullとして設定する
func (e *Entry) SetString(column, value string) {
	if strings.TrimSpace(value) == "" {
		e.Set(column, nil)
		return
	}
	v := value
	e.Set(column, &v)
}

// Kanji は見出し（kanji、なければchar）を返す
func (e *Entry) Kanji() (string, bool) {
	if v, ok := e.Get(ColumnKanji); ok {
		return v, true
	}
	return e.Get(ColumnChar)
}

// Category はtypeカラムを解釈する
func (e *Entry) Category() (Category, bool) {
	v, ok := e.Get(ColumnType)
	if !ok {
		return "", false
	}
	return ParseCategory(v)
}

// Merge はotherの値で上書きした新しいEntryを返す（otherのnullも上書きする）
func (e *Entry) Merge(other map[string]*string) *Entry {
	merged := e.Clone()
	for k, v := range other {
		if v == nil {
			merged.Set(k, nil)
			continue
		}
		s := *v
		merged.Set(k, &s)
	}
	return merged
}

// Clone はディープコピーを返す
func (e *Entry) Clone() *Entry {
	c := NewEntry()
	for k, v := range e.Values {
		if v == nil {
			c.Values[k] = nil
			continue
		}
		s := *v
		c.Values[k] = &s
	}
	return c
}

// Table はカラム順を保持した行の集合（ソース行順）
type Table struct {
	Columns []string
	Entries []*Entry
}

// EnsureColumn はカラムが無ければ末尾に追加する
func (t *Table) EnsureColumn(column string) {
	for _, c := range t.Columns {
		if c == column {
			return
		}
	}
	t.Columns = append(t.Columns, column)
}

// Rows はnullをplaceholderで埋めた2次元配列を返す（ヘッダ行なし）
func (t *Table) Rows(placeholder string) [][]string {
	rows := make([][]string, 0, len(t.Entries))
	for _, e := range t.Entries {
		row := make([]string, len(t.Columns))
		for i, c := range t.Columns {
			if v, ok := e.Get(c); ok {
				row[i] = v
			} else {
				row[i] = placeholder
			}
		}
		rows = append(rows, row)
	}
	return rows
}
