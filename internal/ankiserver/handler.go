// Package ankiserver implements an in-memory AnkiConnect-compatible note service.
package ankiserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/brbranch/vocab_sync/internal/ankiconnect"
	"github.com/brbranch/vocab_sync/internal/model"
	"github.com/sirupsen/logrus"
)

// DefaultDeck は起動時から存在するデッキ
const DefaultDeck = "Default"

// Handler はノートサービスのリクエストを処理する
type Handler struct {
	mu      sync.Mutex
	version int
	models  map[string]bool
	decks   map[string]int64
	notes   []*StoredNote
	nextID  int64
	logger  logrus.FieldLogger
}

// StoredNote は保存済みノート
type StoredNote struct {
	ID   int64
	Note model.Note
}

// Option はHandlerのオプション
type Option func(*Handler)

// WithVersion は受け付けるプロトコルバージョンを設定
func WithVersion(version int) Option {
	return func(h *Handler) {
		h.version = version
	}
}

// WithLogger はロガーを設定
func WithLogger(logger logrus.FieldLogger) Option {
	return func(h *Handler) {
		h.logger = logger
	}
}

// New は新しいHandlerを生成
func New(opts ...Option) *Handler {
	h := &Handler{
		version: model.ProtocolVersion,
		models: map[string]bool{
			model.ModelBasic:         true,
			model.ModelBasicReversed: true,
		},
		decks:  map[string]int64{DefaultDeck: 1},
		nextID: 1,
		logger: logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Handle はリクエストをパースしてディスパッチする
// 戻り値は常にresult/errorの2キーを持つJSON
func (h *Handler) Handle(ctx context.Context, requestBytes []byte) []byte {
	// 1. パース
	var req model.Request
	if err := json.Unmarshal(requestBytes, &req); err != nil {
		return h.encode(model.NewErrorResponse("failed to parse request: " + err.Error()))
	}

	// 2. バージョン確認
	if req.Version != h.version {
		return h.encode(model.NewErrorResponse(fmt.Sprintf("unsupported version: %d", req.Version)))
	}

	// 3. ディスパッチ
	result, err := h.dispatch(ctx, req.Action, req.Params)
	log := h.logger.WithField("action", req.Action)
	if err != nil {
		log.WithError(err).Debug("request failed")
		return h.encode(model.NewErrorResponse(err.Error()))
	}
	log.Debug("request handled")
	return h.encode(model.NewResponse(result))
}

func (h *Handler) dispatch(ctx context.Context, action string, params map[string]any) (any, error) {
	switch action {
	case ankiconnect.ActionVersion:
		return h.version, nil
	case ankiconnect.ActionCreateDeck:
		return h.handleCreateDeck(params)
	case ankiconnect.ActionDeckNames:
		return h.DeckNames(), nil
	case ankiconnect.ActionAddNote:
		return h.handleAddNote(params)
	default:
		return nil, &unsupportedActionError{action: action}
	}
}

// CreateDeckParams は createDeck のパラメータ
type CreateDeckParams struct {
	Deck string `json:"deck"`
}

// AddNoteParams は addNote のパラメータ
type AddNoteParams struct {
	Note *model.Note `json:"note"`
}

func (h *Handler) handleCreateDeck(params map[string]any) (any, error) {
	var p CreateDeckParams
	if err := model.DecodeParams(params, &p); err != nil {
		return nil, err
	}
	if strings.TrimSpace(p.Deck) == "" {
		return nil, errDeckNameRequired
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if id, ok := h.decks[p.Deck]; ok {
		return id, nil
	}
	id := h.allocateID()
	h.decks[p.Deck] = id
	return id, nil
}

func (h *Handler) handleAddNote(params map[string]any) (any, error) {
	var p AddNoteParams
	if err := model.DecodeParams(params, &p); err != nil {
		return nil, err
	}
	if p.Note == nil {
		return nil, errors.New("note is required")
	}
	note := p.Note

	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.decks[note.DeckName]; !ok {
		return nil, fmt.Errorf("deck was not found: %s", note.DeckName)
	}
	if !h.models[note.ModelName] {
		return nil, fmt.Errorf("model was not found: %s", note.ModelName)
	}
	if strings.TrimSpace(note.Fields.Front) == "" {
		return nil, errors.New("cannot create note because it is empty")
	}
	if !note.Options.AllowDuplicate && h.isDuplicate(note) {
		return nil, errors.New(model.DuplicateNoteMessage)
	}

	id := h.allocateID()
	h.notes = append(h.notes, &StoredNote{ID: id, Note: *note})
	return id, nil
}

// isDuplicate は同じデッキ（scope=deck）に同じFrontがあるか
func (h *Handler) isDuplicate(note *model.Note) bool {
	deck := note.DeckName
	if note.Options.DuplicateScopeOptions.DeckName != "" {
		deck = note.Options.DuplicateScopeOptions.DeckName
	}
	for _, n := range h.notes {
		if n.Note.Fields.Front != note.Fields.Front {
			continue
		}
		if !note.Options.DuplicateScopeOptions.CheckAllModels && n.Note.ModelName != note.ModelName {
			continue
		}
		if note.Options.DuplicateScope == model.DuplicateScopeDeck && n.Note.DeckName != deck {
			continue
		}
		return true
	}
	return false
}

func (h *Handler) allocateID() int64 {
	h.nextID++
	return h.nextID
}

// DeckNames はデッキ名を昇順で返す
func (h *Handler) DeckNames() []string {
	h.mu.Lock()
	defer h.mu.Unlock()

	names := make([]string, 0, len(h.decks))
	for name := range h.decks {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Notes は保存済みノートのコピーを追加順で返す
func (h *Handler) Notes() []StoredNote {
	h.mu.Lock()
	defer h.mu.Unlock()

	notes := make([]StoredNote, len(h.notes))
	for i, n := range h.notes {
		notes[i] = *n
	}
	return notes
}

func (h *Handler) encode(resp *model.Response) []byte {
	b, _ := json.Marshal(resp)
	return b
}

// unsupportedActionError は未対応アクション
type unsupportedActionError struct {
	action string
}

func (e *unsupportedActionError) Error() string {
	return "unsupported action: " + e.action
}

var errDeckNameRequired = errors.New("deck name is required")
