package model

import "encoding/json"

// ProtocolVersion はノートサービスが期待するプロトコルバージョン
const ProtocolVersion = 6

// DuplicateNoteMessage は重複ノート時にサービスが返すエラー文字列
const DuplicateNoteMessage = "cannot create note because it is a duplicate"

// レスポンスの必須キー
const (
	ResponseKeyResult = "result"
	ResponseKeyError  = "error"
)

// Request はノートサービスへのリクエストエンベロープ
type Request struct {
	Action  string         `json:"action"`  // コマンド名
	Params  map[string]any `json:"params"`  // 任意のJSONオブジェクト
	Version int            `json:"version"` // 常に ProtocolVersion（デプロイ単位で固定）
}

// Response はノートサービスからのレスポンスエンベロープ
// "result" と "error" の2キーのみを持つ
type Response struct {
	Result any     `json:"result"` // 成功時の値、失敗時はnull
	Error  *string `json:"error"`  // 成功時はnull
}

// NewRequest はリクエストを生成（paramsがnilなら空オブジェクト）
func NewRequest(action string, params map[string]any, version int) *Request {
	if params == nil {
		params = map[string]any{}
	}
	return &Request{
		Action:  action,
		Params:  params,
		Version: version,
	}
}

// NewResponse は成功レスポンスを生成
func NewResponse(result any) *Response {
	return &Response{Result: result}
}

// NewErrorResponse はエラーレスポンスを生成（resultはnull）
func NewErrorResponse(message string) *Response {
	return &Response{Error: &message}
}

// DecodeParams はparamsを任意の構造体にデコードする
func DecodeParams(params map[string]any, dst any) error {
	b, err := json.Marshal(params)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, dst)
}
