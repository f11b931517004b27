package model

import "time"

// SyncRun は1回の同期実行の記録
type SyncRun struct {
	ID          string    `json:"id"` // UUID形式
	Deck        string    `json:"deck"`
	Layout      Layout    `json:"layout"`
	StartedAt   time.Time `json:"startedAt"`
	FinishedAt  time.Time `json:"finishedAt"`
	Total       int       `json:"total"`
	Added       int       `json:"added"`
	Duplicates  int       `json:"duplicates"`
	Missing     int       `json:"missing"`     // 必須カラム欠落でスキップ
	Unsupported int       `json:"unsupported"` // type不明・レイアウト非対応でスキップ
	Error       *string   `json:"error"`       // 中断時のみ
}

// Skipped はスキップ件数の合計
func (r *SyncRun) Skipped() int {
	return r.Duplicates + r.Missing + r.Unsupported
}

// Aborted は中断されたかを返す
func (r *SyncRun) Aborted() bool {
	return r.Error != nil
}
