// Package fields maps spreadsheet entries to note fields.
package fields

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/brbranch/vocab_sync/internal/model"
)

// LineBreak はフィールド内の改行
const LineBreak = "<br />"

// WordSuffix は1文字の単語に付けて漢字カードと区別するサフィックス
const WordSuffix = " (W)"

// エラー定義
var (
	ErrMissingField = errors.New("entry is missing a required field")
	ErrUnsupported  = errors.New("no field mapping for this layout and category")
)

// MissingFieldError は必須カラムの欠落
type MissingFieldError struct {
	Column string
	Kanji  string // 特定できない場合は空
}

func (e *MissingFieldError) Error() string {
	if e.Kanji == "" {
		return fmt.Sprintf("entry is missing required field %q", e.Column)
	}
	return fmt.Sprintf("entry %q is missing required field %q", e.Kanji, e.Column)
}

func (e *MissingFieldError) Is(target error) bool {
	return target == ErrMissingField
}

// Mapper はEntryからFront/Backを生成する純粋関数
type Mapper func(entry *model.Entry) (model.Fields, error)

// Word はFront=見出し（1文字なら" (W)"付き）、Back=読み+意味
func Word(entry *model.Entry) (model.Fields, error) {
	kanji, err := requireKanji(entry)
	if err != nil {
		return model.Fields{}, err
	}
	reading, err := requireColumn(entry, model.ColumnReading, kanji)
	if err != nil {
		return model.Fields{}, err
	}
	meanings, err := requireColumn(entry, model.ColumnMeanings, kanji)
	if err != nil {
		return model.Fields{}, err
	}

	front := kanji
	if utf8.RuneCountInString(kanji) == 1 {
		front += WordSuffix
	}

	return model.Fields{
		Front: front,
		Back:  reading + LineBreak + meanings,
	}, nil
}

// WordReversed はFront=見出し(読み)、Back=意味（表裏両方向のカード用）
func WordReversed(entry *model.Entry) (model.Fields, error) {
	kanji, err := requireKanji(entry)
	if err != nil {
		return model.Fields{}, err
	}
	reading, err := requireColumn(entry, model.ColumnReading, kanji)
	if err != nil {
		return model.Fields{}, err
	}
	meanings, err := requireColumn(entry, model.ColumnMeanings, kanji)
	if err != nil {
		return model.Fields{}, err
	}

	return model.Fields{
		Front: kanji + "(" + reading + ")",
		Back:  meanings,
	}, nil
}

// Kanji はFront=文字、Back=訓読み+音読み+意味
// 空文字列のセグメントは落とさずに残す
func Kanji(entry *model.Entry) (model.Fields, error) {
	char, err := requireKanji(entry)
	if err != nil {
		return model.Fields{}, err
	}
	kun, err := requireColumn(entry, model.ColumnKun, char)
	if err != nil {
		return model.Fields{}, err
	}
	on, err := requireColumn(entry, model.ColumnOn, char)
	if err != nil {
		return model.Fields{}, err
	}
	meanings, err := requireColumn(entry, model.ColumnMeanings, char)
	if err != nil {
		return model.Fields{}, err
	}

	return model.Fields{
		Front: char,
		Back:  kun + LineBreak + on + LineBreak + meanings,
	}, nil
}

// Select はレイアウトと種別からMapperとノートタイプ名を選ぶ
func Select(layout model.Layout, category model.Category) (Mapper, string, error) {
	switch layout {
	case model.LayoutBasic:
		switch category {
		case model.CategoryWord:
			return Word, layout.ModelName(), nil
		case model.CategoryKanji:
			return Kanji, layout.ModelName(), nil
		}
	case model.LayoutReversed:
		if category == model.CategoryWord {
			return WordReversed, layout.ModelName(), nil
		}
	}
	return nil, "", fmt.Errorf("%w: layout=%s category=%q", ErrUnsupported, layout, category)
}

func requireKanji(entry *model.Entry) (string, error) {
	if v, ok := entry.Kanji(); ok {
		return v, nil
	}
	return "", &MissingFieldError{Column: model.ColumnKanji}
}

func requireColumn(entry *model.Entry, column, kanji string) (string, error) {
	v, ok := entry.Get(column)
	if !ok {
		return "", &MissingFieldError{Column: column, Kanji: kanji}
	}
	return v, nil
}
