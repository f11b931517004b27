package service

import "github.com/brbranch/vocab_sync/internal/model"

// SyncRequest は同期リクエスト
type SyncRequest struct {
	Deck   string       // 空なら設定のデッキ
	Layout model.Layout // 空ならbasic
}

// SyncResult は同期結果（中断時もRunに途中までの件数が入る）
type SyncResult struct {
	Run *model.SyncRun
}

// Added は追加件数
func (r *SyncResult) Added() int {
	if r == nil || r.Run == nil {
		return 0
	}
	return r.Run.Added
}

// HistoryRequest は同期履歴の取得リクエスト
type HistoryRequest struct {
	Deck  string // 空なら全デッキ
	Limit int    // default 10
}

// HistoryResponse は同期履歴（新しい順）
type HistoryResponse struct {
	Runs []*model.SyncRun
}

// EnrichRequest は補完リクエスト
type EnrichRequest struct {
	DryRun bool // trueなら書き戻さない
}

// EnrichResult は補完結果
type EnrichResult struct {
	Total      int
	Enriched   int // 辞書検索で補完した行
	Untyped    int // typeがWord/Kanji以外で変更しなかった行
	MissingKey int // 見出し（kanji/char）が無く検索しなかった行
	Written    bool
	Table      *model.Table
}

// LookupRequest は単発の辞書検索リクエスト
type LookupRequest struct {
	Kind model.LookupKind
	Key  string
}
