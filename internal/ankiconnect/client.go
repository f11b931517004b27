// Package ankiconnect is a client for the local note-creation service.
package ankiconnect

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/brbranch/vocab_sync/internal/fields"
	"github.com/brbranch/vocab_sync/internal/model"
	"github.com/sirupsen/logrus"
)

const (
	DefaultURL = model.DefaultAnkiURL
)

// アクション名
const (
	ActionVersion    = "version"
	ActionCreateDeck = "createDeck"
	ActionDeckNames  = "deckNames"
	ActionAddNote    = "addNote"
)

// Client はノートサービスとの1回のリクエスト/レスポンスを行う
// 呼び出し間で状態を持たない
type Client struct {
	httpClient *http.Client
	url        string
	version    int
	logger     logrus.FieldLogger
}

// Option はClientのオプション
type Option func(*Client)

// WithURL はエンドポイントを設定
func WithURL(url string) Option {
	return func(c *Client) {
		c.url = url
	}
}

// WithVersion はプロトコルバージョンを設定
func WithVersion(version int) Option {
	return func(c *Client) {
		c.version = version
	}
}

// WithTimeout はHTTPタイムアウトを設定（0はタイムアウトなし）
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient = &http.Client{Timeout: timeout}
	}
}

// WithHTTPClient はHTTPクライアントを設定
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.httpClient = client
	}
}

// WithLogger はロガーを設定
func WithLogger(logger logrus.FieldLogger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// New は新しいClientを作成
func New(opts ...Option) *Client {
	c := &Client{
		httpClient: http.DefaultClient,
		url:        DefaultURL,
		version:    model.ProtocolVersion,
		logger:     logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Invoke はアクションを1回送信し、resultの値を返す
func (c *Client) Invoke(ctx context.Context, action string, params map[string]any) (json.RawMessage, error) {
	if action == "" {
		return nil, fmt.Errorf("action must not be empty")
	}

	reqJSON, err := json.Marshal(model.NewRequest(action, params, c.version))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(reqJSON))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransport, err)
	}
	req.Header.Set("Content-Type", "application/json; charset=utf-8")

	c.logger.WithField("action", action).Debug("invoking note service")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// context.Canceledやcontext.DeadlineExceededはそのまま返す
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%w: %v", ErrTransport, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response: %v", ErrTransport, err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	return parseResponse(action, body)
}

// parseResponse はresult/errorの2キー構造を検証して分類する
func parseResponse(action string, body []byte) (json.RawMessage, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil || fields == nil {
		return nil, &ProtocolShapeError{Action: action, Reason: "response is not a JSON object"}
	}
	if len(fields) != 2 {
		return nil, &ProtocolShapeError{Action: action, Reason: "response has an unexpected number of fields"}
	}
	rawErr, ok := fields[model.ResponseKeyError]
	if !ok {
		return nil, &ProtocolShapeError{Action: action, Reason: "response is missing required error field"}
	}
	result, ok := fields[model.ResponseKeyResult]
	if !ok {
		return nil, &ProtocolShapeError{Action: action, Reason: "response is missing required result field"}
	}

	if isNull(rawErr) {
		return result, nil
	}

	var message string
	if err := json.Unmarshal(rawErr, &message); err != nil {
		// 文字列以外のerror値もサービスエラーとして扱う
		message = string(rawErr)
	}
	if message == model.DuplicateNoteMessage {
		return nil, ErrDuplicateNote
	}
	return nil, &ServiceError{Action: action, Message: message}
}

func isNull(raw json.RawMessage) bool {
	return len(bytes.TrimSpace(raw)) == 0 || string(bytes.TrimSpace(raw)) == "null"
}

// Version はサービスのプロトコルバージョンを返す
func (c *Client) Version(ctx context.Context) (int, error) {
	result, err := c.Invoke(ctx, ActionVersion, nil)
	if err != nil {
		return 0, err
	}
	var v int
	if err := json.Unmarshal(result, &v); err != nil {
		return 0, fmt.Errorf("%w: version: %v", ErrInvalidResult, err)
	}
	return v, nil
}

// CreateDeck はデッキを作成する（既存なら既存のIDが返る）
func (c *Client) CreateDeck(ctx context.Context, deck string) (int64, error) {
	result, err := c.Invoke(ctx, ActionCreateDeck, map[string]any{"deck": deck})
	if err != nil {
		return 0, err
	}
	var id int64
	if err := json.Unmarshal(result, &id); err != nil {
		return 0, fmt.Errorf("%w: createDeck: %v", ErrInvalidResult, err)
	}
	return id, nil
}

// DeckNames はデッキ名の一覧を返す
func (c *Client) DeckNames(ctx context.Context) ([]string, error) {
	result, err := c.Invoke(ctx, ActionDeckNames, nil)
	if err != nil {
		return nil, err
	}
	var names []string
	if err := json.Unmarshal(result, &names); err != nil {
		return nil, fmt.Errorf("%w: deckNames: %v", ErrInvalidResult, err)
	}
	return names, nil
}

// AddNote はentryをmapperでフィールド化し、固定オプションのノートとして追加する
// mapperのエラーはネットワーク呼び出し前にそのまま返す
func (c *Client) AddNote(ctx context.Context, entry *model.Entry, deckName, modelName string, mapper fields.Mapper) (int64, error) {
	f, err := mapper(entry)
	if err != nil {
		return 0, err
	}
	return c.SubmitNote(ctx, model.NewNote(deckName, modelName, f))
}

// SubmitNote は構築済みのノートを addNote で送信する
// 不正なノートは送信せずにErrInvalidNoteを返す
func (c *Client) SubmitNote(ctx context.Context, note *model.Note) (int64, error) {
	if err := note.Validate(); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidNote, err)
	}
	result, err := c.Invoke(ctx, ActionAddNote, map[string]any{"note": note})
	if err != nil {
		return 0, err
	}
	var id int64
	if err := json.Unmarshal(result, &id); err != nil {
		return 0, fmt.Errorf("%w: addNote: %v", ErrInvalidResult, err)
	}
	return id, nil
}
