package dictionary

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/brbranch/vocab_sync/internal/model"
	"github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"
	"golang.org/x/time/rate"
)

const (
	DefaultWordsURL = model.DefaultWordsURL
	DefaultKanjiURL = model.DefaultKanjiURL

	// listSeparator は複数値の区切り
	listSeparator = ", "
)

// Client はJisho（単語）とkanjiapi（漢字）を使うLookuper実装
type Client struct {
	httpClient *http.Client
	wordsURL   string
	kanjiURL   string
	limiter    *rate.Limiter
	logger     logrus.FieldLogger
}

// Option はClientのオプション
type Option func(*Client)

// WithWordsURL は単語APIのベースURLを設定
func WithWordsURL(u string) Option {
	return func(c *Client) {
		c.wordsURL = strings.TrimRight(u, "/")
	}
}

// WithKanjiURL は漢字APIのベースURLを設定
func WithKanjiURL(u string) Option {
	return func(c *Client) {
		c.kanjiURL = strings.TrimRight(u, "/")
	}
}

// WithHTTPClient はHTTPクライアントを設定
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.httpClient = client
	}
}

// WithRateLimit は1秒あたりのリクエスト数を設定（0以下は無制限）
func WithRateLimit(perSecond float64) Option {
	return func(c *Client) {
		if perSecond <= 0 {
			c.limiter = rate.NewLimiter(rate.Inf, 1)
			return
		}
		c.limiter = rate.NewLimiter(rate.Limit(perSecond), 1)
	}
}

// WithLogger はロガーを設定
func WithLogger(logger logrus.FieldLogger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient は新しいClientを作成
func NewClient(opts ...Option) *Client {
	c := &Client{
		httpClient: http.DefaultClient,
		wordsURL:   DefaultWordsURL,
		kanjiURL:   DefaultKanjiURL,
		limiter:    rate.NewLimiter(rate.Inf, 1),
		logger:     logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Word は単語を検索し、先頭の結果だけを使う
func (c *Client) Word(ctx context.Context, word string) (*model.Lookup, error) {
	if word == "" {
		return nil, ErrEmptyKey
	}

	body, err := c.get(ctx, c.wordsURL+"/search/words?keyword="+url.QueryEscape(word))
	if err != nil {
		return nil, err
	}
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("%w: word %q", ErrInvalidResponse, word)
	}

	top := gjson.GetBytes(body, "data.0")
	lookup := &model.Lookup{
		Kind:          model.LookupWord,
		Key:           word,
		Reading:       stringAt(top, "japanese.0.reading"),
		Level:         stringAt(top, "jlpt.0"),
		PartsOfSpeech: joinAt(top, "senses.0.parts_of_speech"),
		Meanings:      joinAt(top, "senses.0.english_definitions"),
		Link:          strPtr(WordLink(word)),
	}
	if !top.Exists() {
		c.logger.WithField("word", word).Warn("no dictionary result")
	}
	return lookup, nil
}

// Character は漢字1文字を検索する
func (c *Client) Character(ctx context.Context, char string) (*model.Lookup, error) {
	if char == "" {
		return nil, ErrEmptyKey
	}

	body, err := c.get(ctx, c.kanjiURL+"/kanji/"+url.PathEscape(char))
	if err != nil {
		return nil, err
	}
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("%w: kanji %q", ErrInvalidResponse, char)
	}

	result := gjson.ParseBytes(body)
	return &model.Lookup{
		Kind:     model.LookupCharacter,
		Key:      char,
		Kun:      joinAt(result, "kun_readings"),
		On:       joinAt(result, "on_readings"),
		Meanings: joinAt(result, "meanings"),
		Link:     strPtr(CharacterLink(char)),
	}, nil
}

func (c *Client) get(ctx context.Context, u string) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%w: %v", ErrAPIRequestFailed, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAPIRequestFailed, err)
	}
	req.Header.Set("Accept", "application/json")

	c.logger.WithField("url", u).Debug("dictionary request")
	resp, err := c.httpClient.Do(req)
	if err != nil {
		// context.Canceledやcontext.DeadlineExceededはそのまま返す
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%w: %v", ErrAPIRequestFailed, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response: %v", ErrAPIRequestFailed, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &APIError{URL: u, StatusCode: resp.StatusCode, Message: string(body)}
	}
	return body, nil
}

// stringAt はpathの文字列値、無ければnil
func stringAt(r gjson.Result, path string) *string {
	v := r.Get(path)
	if !v.Exists() || v.Type == gjson.Null {
		return nil
	}
	return strPtr(v.String())
}

// joinAt はpathの配列を区切り文字で連結、空配列ならnil
func joinAt(r gjson.Result, path string) *string {
	var items []string
	for _, v := range r.Get(path).Array() {
		if v.Type == gjson.Null {
			continue
		}
		items = append(items, v.String())
	}
	if len(items) == 0 {
		return nil
	}
	return strPtr(strings.Join(items, listSeparator))
}

func strPtr(s string) *string {
	return &s
}
