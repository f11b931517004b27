package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/brbranch/vocab_sync/internal/ankiconnect"
	"github.com/brbranch/vocab_sync/internal/logging"
	"github.com/brbranch/vocab_sync/internal/model"
	"github.com/brbranch/vocab_sync/internal/store"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSyncService(t *testing.T, src *mockSource, notes *mockNoteClient) (*syncService, store.Store) {
	t.Helper()
	st := store.NewMemoryStore()
	require.NoError(t, st.Initialize(context.Background()))
	svc := NewSyncService(src, notes, st, "Vocabulary", logging.Discard()).(*syncService)
	return svc, st
}

func tableOf(entries ...*model.Entry) *model.Table {
	return &model.Table{
		Columns: []string{"kanji", "type", "kun", "on", "reading", "meanings"},
		Entries: entries,
	}
}

func TestSyncService_Sync_AddsInOrder(t *testing.T) {
	src := &mockSource{table: tableOf(
		wordRow("食べる", "たべる", "to eat"),
		kanjiRow("木", "き", "モク", "tree"),
		wordRow("木", "き", "tree"),
	)}
	notes := &mockNoteClient{}
	svc, _ := newTestSyncService(t, src, notes)

	result, err := svc.Sync(context.Background(), &SyncRequest{})
	require.NoError(t, err)

	assert.Equal(t, []string{"createDeck", "addNote:食べる", "addNote:木", "addNote:木"}, notes.calls)
	assert.Equal(t, []string{"Vocabulary"}, notes.decks)
	require.Len(t, notes.notes, 3)
	assert.Equal(t, "食べる", notes.notes[0].Fields.Front)
	assert.Equal(t, "たべる<br />to eat", notes.notes[0].Fields.Back)
	assert.Equal(t, "木", notes.notes[1].Fields.Front)
	assert.Equal(t, "き<br />モク<br />tree", notes.notes[1].Fields.Back)
	assert.Equal(t, "木 (W)", notes.notes[2].Fields.Front)
	assert.Equal(t, model.ModelBasic, notes.notes[2].ModelName)

	run := result.Run
	assert.Equal(t, 3, run.Total)
	assert.Equal(t, 3, result.Added())
	assert.Equal(t, 0, run.Skipped())
	assert.False(t, run.Aborted())
	_, err = uuid.Parse(run.ID)
	assert.NoError(t, err)
}

func TestSyncService_Sync_SkipsDuplicatesAndMissing(t *testing.T) {
	src := &mockSource{table: tableOf(
		wordRow("食べる", "たべる", "to eat"),
		wordRow("飲む", "", "to drink"),
		kanjiRow("水", "みず", "スイ", "water"),
		row(map[string]string{"kanji": "猫", "type": "Phrase"}),
		row(map[string]string{"kanji": "犬"}),
	)}
	notes := &mockNoteClient{errByKanji: map[string]error{
		"食べる": ankiconnect.ErrDuplicateNote,
	}}
	svc, _ := newTestSyncService(t, src, notes)

	result, err := svc.Sync(context.Background(), &SyncRequest{Deck: "Kana"})
	require.NoError(t, err)

	run := result.Run
	assert.Equal(t, "Kana", run.Deck)
	assert.Equal(t, 5, run.Total)
	assert.Equal(t, 1, run.Added)
	assert.Equal(t, 1, run.Duplicates)
	assert.Equal(t, 1, run.Missing)
	assert.Equal(t, 2, run.Unsupported)
	// 必須カラム欠落は送信しない
	assert.NotContains(t, notes.calls, "addNote:飲む")
}

func TestSyncService_Sync_ReversedLayout(t *testing.T) {
	src := &mockSource{table: tableOf(
		wordRow("食べる", "たべる", "to eat"),
		kanjiRow("木", "き", "モク", "tree"),
	)}
	notes := &mockNoteClient{}
	svc, _ := newTestSyncService(t, src, notes)

	result, err := svc.Sync(context.Background(), &SyncRequest{Layout: model.LayoutReversed})
	require.NoError(t, err)

	require.Len(t, notes.notes, 1)
	assert.Equal(t, "食べる(たべる)", notes.notes[0].Fields.Front)
	assert.Equal(t, "to eat", notes.notes[0].Fields.Back)
	assert.Equal(t, model.ModelBasicReversed, notes.notes[0].ModelName)
	assert.Equal(t, 1, result.Run.Unsupported)
}

func TestSyncService_Sync_AbortsOnServiceError(t *testing.T) {
	src := &mockSource{table: tableOf(
		wordRow("食べる", "たべる", "to eat"),
		wordRow("飲む", "のむ", "to drink"),
		wordRow("見る", "みる", "to see"),
	)}
	serviceErr := &ankiconnect.ServiceError{Action: ankiconnect.ActionAddNote, Message: "model was not found: Basic"}
	notes := &mockNoteClient{errByKanji: map[string]error{"飲む": serviceErr}}
	svc, st := newTestSyncService(t, src, notes)

	result, err := svc.Sync(context.Background(), &SyncRequest{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSyncAborted)
	assert.ErrorIs(t, err, ankiconnect.ErrService)
	assert.NotContains(t, notes.calls, "addNote:見る")

	require.NotNil(t, result)
	assert.Equal(t, 1, result.Run.Added)
	assert.True(t, result.Run.Aborted())

	// 中断した実行も履歴に残る
	runs, err := st.ListRuns(context.Background(), store.DefaultListOptions())
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, result.Run.ID, runs[0].ID)
	assert.NotNil(t, runs[0].Error)
}

func TestSyncService_Sync_AbortsOnProtocolShape(t *testing.T) {
	src := &mockSource{table: tableOf(wordRow("食べる", "たべる", "to eat"))}
	notes := &mockNoteClient{errByKanji: map[string]error{
		"食べる": &ankiconnect.ProtocolShapeError{Action: ankiconnect.ActionAddNote, Reason: "response has 3 fields"},
	}}
	svc, _ := newTestSyncService(t, src, notes)

	_, err := svc.Sync(context.Background(), &SyncRequest{})
	assert.ErrorIs(t, err, ankiconnect.ErrProtocolShape)
}

func TestSyncService_Sync_CreateDeckFailure(t *testing.T) {
	src := &mockSource{table: tableOf(wordRow("食べる", "たべる", "to eat"))}
	notes := &mockNoteClient{createDeckErr: ankiconnect.ErrTransport}
	svc, _ := newTestSyncService(t, src, notes)

	result, err := svc.Sync(context.Background(), &SyncRequest{})
	assert.ErrorIs(t, err, ankiconnect.ErrTransport)
	assert.Equal(t, []string{"createDeck"}, notes.calls)
	assert.Equal(t, 0, result.Added())
}

func TestSyncService_Sync_ReadFailure(t *testing.T) {
	readErr := errors.New("sheet unavailable")
	svc, _ := newTestSyncService(t, &mockSource{readErr: readErr}, &mockNoteClient{})

	result, err := svc.Sync(context.Background(), &SyncRequest{})
	assert.ErrorIs(t, err, readErr)
	assert.True(t, result.Run.Aborted())
}

func TestSyncService_Sync_ContextCanceledBetweenRows(t *testing.T) {
	src := &mockSource{table: tableOf(
		wordRow("食べる", "たべる", "to eat"),
		wordRow("飲む", "のむ", "to drink"),
	)}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	notes := &mockNoteClient{onAdd: func(n int) {
		if n == 1 {
			cancel()
		}
	}}
	svc, st := newTestSyncService(t, src, notes)

	result, err := svc.Sync(ctx, &SyncRequest{})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, result.Added())

	runs, err := st.ListRuns(context.Background(), store.DefaultListOptions())
	require.NoError(t, err)
	assert.Len(t, runs, 1)
}

func TestSyncService_Sync_InvalidRequest(t *testing.T) {
	svc, _ := newTestSyncService(t, &mockSource{table: tableOf()}, &mockNoteClient{})

	_, err := svc.Sync(context.Background(), &SyncRequest{Layout: "cloze"})
	assert.Error(t, err)

	svc.defaultDeck = ""
	_, err = svc.Sync(context.Background(), &SyncRequest{})
	assert.ErrorIs(t, err, ErrDeckRequired)
}

func TestSyncService_History(t *testing.T) {
	svc, _ := newTestSyncService(t, &mockSource{table: tableOf(wordRow("食べる", "たべる", "to eat"))}, &mockNoteClient{})
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	tick := 0
	svc.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Minute)
	}

	ctx := context.Background()
	first, err := svc.Sync(ctx, &SyncRequest{})
	require.NoError(t, err)
	second, err := svc.Sync(ctx, &SyncRequest{Deck: "Kana"})
	require.NoError(t, err)

	resp, err := svc.History(ctx, &HistoryRequest{})
	require.NoError(t, err)
	require.Len(t, resp.Runs, 2)
	assert.Equal(t, second.Run.ID, resp.Runs[0].ID)
	assert.Equal(t, first.Run.ID, resp.Runs[1].ID)

	resp, err = svc.History(ctx, &HistoryRequest{Deck: "Vocabulary", Limit: 5})
	require.NoError(t, err)
	require.Len(t, resp.Runs, 1)
	assert.Equal(t, first.Run.ID, resp.Runs[0].ID)
}
