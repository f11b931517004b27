package model

import "fmt"

// Layout はデッキのカード構成
type Layout string

const (
	// LayoutBasic はBasicモデル（Word/Kanjiの両方を扱う）
	LayoutBasic Layout = "basic"
	// LayoutReversed はBasic (and reversed card)モデル（Wordのみ）
	LayoutReversed Layout = "reversed"
)

// ParseLayout は文字列をLayoutに変換する
func ParseLayout(s string) (Layout, error) {
	switch Layout(s) {
	case LayoutBasic, "":
		return LayoutBasic, nil
	case LayoutReversed:
		return LayoutReversed, nil
	default:
		return "", fmt.Errorf("invalid layout: %s (must be basic or reversed)", s)
	}
}

// ModelName はレイアウトに対応するノートタイプ名を返す
func (l Layout) ModelName() string {
	if l == LayoutReversed {
		return ModelBasicReversed
	}
	return ModelBasic
}
