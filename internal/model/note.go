package model

import "fmt"

// ノートタイプ名（Ankiのモデル名）
const (
	ModelBasic         = "Basic"
	ModelBasicReversed = "Basic (and reversed card)"
)

// DuplicateScopeDeck は重複チェックをデッキ単位で行うスコープ
const DuplicateScopeDeck = "deck"

// Fields はノートの表面/裏面フィールド（値はHTML断片）
type Fields struct {
	Front string `json:"Front"`
	Back  string `json:"Back"`
}

// Note はノートサービスに送信するフラッシュカード
type Note struct {
	DeckName  string      `json:"deckName"`
	ModelName string      `json:"modelName"` // テンプレート識別子
	Fields    Fields      `json:"fields"`
	Options   NoteOptions `json:"options"`
}

// NoteOptions は重複時の扱い
type NoteOptions struct {
	AllowDuplicate        bool                  `json:"allowDuplicate"`
	DuplicateScope        string                `json:"duplicateScope"`
	DuplicateScopeOptions DuplicateScopeOptions `json:"duplicateScopeOptions"`
}

// DuplicateScopeOptions は重複チェックの範囲
type DuplicateScopeOptions struct {
	DeckName       string `json:"deckName"`
	CheckChildren  bool   `json:"checkChildren"`
	CheckAllModels bool   `json:"checkAllModels"`
}

// NewNote は固定オプション（重複不可、デッキ単位、子デッキ・他モデルはチェックしない）でNoteを生成
func NewNote(deckName, modelName string, fields Fields) *Note {
	return &Note{
		DeckName:  deckName,
		ModelName: modelName,
		Fields:    fields,
		Options: NoteOptions{
			AllowDuplicate: false,
			DuplicateScope: DuplicateScopeDeck,
			DuplicateScopeOptions: DuplicateScopeOptions{
				DeckName:       deckName,
				CheckChildren:  false,
				CheckAllModels: false,
			},
		},
	}
}

// Validate はNoteのバリデーションを実行する
func (n *Note) Validate() error {
	if n.DeckName == "" {
		return fmt.Errorf("DeckName must not be empty")
	}
	if n.ModelName == "" {
		return fmt.Errorf("ModelName must not be empty")
	}
	if n.Fields.Front == "" {
		return fmt.Errorf("Front field must not be empty")
	}
	return nil
}
