// Package dictionary looks up Japanese words and kanji from online dictionaries.
package dictionary

import (
	"context"
	"errors"
	"fmt"

	"github.com/brbranch/vocab_sync/internal/model"
)

// Lookuper は単語・漢字の辞書検索インターフェース
// 見つからない項目はnilで返し、エラーにはしない
type Lookuper interface {
	Word(ctx context.Context, word string) (*model.Lookup, error)
	Character(ctx context.Context, char string) (*model.Lookup, error)
}

// エラー定義
var (
	ErrEmptyKey         = errors.New("lookup key is empty")
	ErrAPIRequestFailed = errors.New("dictionary request failed")
	ErrInvalidResponse  = errors.New("invalid dictionary response")
)

// APIError は詳細なAPIエラー情報を保持
type APIError struct {
	URL        string
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("dictionary API error (status %d) for %s: %s", e.StatusCode, e.URL, e.Message)
}

func (e *APIError) Is(target error) bool {
	return target == ErrAPIRequestFailed
}

// WrapHyperlink はスプレッドシートのHYPERLINK数式を返す
func WrapHyperlink(url, label string) string {
	return fmt.Sprintf(`=HYPERLINK("%s", "%s")`, url, label)
}

// WordLink は単語ページへのリンク
func WordLink(word string) string {
	return WrapHyperlink("https://jisho.org/word/"+word, word)
}

// CharacterLink は漢字検索ページへのリンク
func CharacterLink(char string) string {
	return WrapHyperlink("https://jisho.org/search/"+char+"%20%23kanji", char)
}
