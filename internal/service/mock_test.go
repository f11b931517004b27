package service

import (
	"context"

	"github.com/brbranch/vocab_sync/internal/fields"
	"github.com/brbranch/vocab_sync/internal/model"
)

// mockSource はテスト用のsheet.Source
type mockSource struct {
	table    *model.Table
	readErr  error
	writeErr error
	written  *model.Table
}

func (m *mockSource) Read(ctx context.Context) (*model.Table, error) {
	if m.readErr != nil {
		return nil, m.readErr
	}
	return m.table, nil
}

func (m *mockSource) Write(ctx context.Context, table *model.Table) error {
	if m.writeErr != nil {
		return m.writeErr
	}
	m.written = table
	return nil
}

// mockNoteClient はテスト用のNoteClient
// errByKanjiで特定の見出しに対するエラーを返す
type mockNoteClient struct {
	createDeckErr error
	errByKanji    map[string]error
	decks         []string
	notes         []*model.Note
	calls         []string
	onAdd         func(n int)
}

func (m *mockNoteClient) CreateDeck(ctx context.Context, deck string) (int64, error) {
	m.calls = append(m.calls, "createDeck")
	if m.createDeckErr != nil {
		return 0, m.createDeckErr
	}
	m.decks = append(m.decks, deck)
	return 1, nil
}

func (m *mockNoteClient) AddNote(ctx context.Context, entry *model.Entry, deckName, modelName string, mapper fields.Mapper) (int64, error) {
	f, err := mapper(entry)
	if err != nil {
		return 0, err
	}
	kanji, _ := entry.Kanji()
	m.calls = append(m.calls, "addNote:"+kanji)
	if m.onAdd != nil {
		m.onAdd(len(m.notes) + 1)
	}
	if err := m.errByKanji[kanji]; err != nil {
		return 0, err
	}
	m.notes = append(m.notes, model.NewNote(deckName, modelName, f))
	return int64(len(m.notes)), nil
}

// mockLookuper はテスト用のdictionary.Lookuper
type mockLookuper struct {
	words []string
	chars []string
	err   error
}

func (m *mockLookuper) Word(ctx context.Context, word string) (*model.Lookup, error) {
	m.words = append(m.words, word)
	if m.err != nil {
		return nil, m.err
	}
	reading := "たべる"
	meanings := "to eat"
	link := `=HYPERLINK("https://jisho.org/word/` + word + `", "` + word + `")`
	return &model.Lookup{Kind: model.LookupWord, Key: word, Reading: &reading, Meanings: &meanings, Link: &link}, nil
}

func (m *mockLookuper) Character(ctx context.Context, char string) (*model.Lookup, error) {
	m.chars = append(m.chars, char)
	if m.err != nil {
		return nil, m.err
	}
	kun := "き, こ-"
	meanings := "tree, wood"
	return &model.Lookup{Kind: model.LookupCharacter, Key: char, Kun: &kun, Meanings: &meanings}, nil
}

func row(values map[string]string) *model.Entry {
	return model.EntryFromStrings(values)
}

func wordRow(kanji, reading, meanings string) *model.Entry {
	return row(map[string]string{
		model.ColumnKanji:    kanji,
		model.ColumnType:     "Word",
		model.ColumnReading:  reading,
		model.ColumnMeanings: meanings,
	})
}

func kanjiRow(char, kun, on, meanings string) *model.Entry {
	return row(map[string]string{
		model.ColumnKanji:    char,
		model.ColumnType:     "Kanji",
		model.ColumnKun:      kun,
		model.ColumnOn:       on,
		model.ColumnMeanings: meanings,
	})
}
