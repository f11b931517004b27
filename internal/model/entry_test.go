package model

import "testing"

func TestParseCategory(t *testing.T) {
	tests := []struct {
		in     string
		want   Category
		wantOK bool
	}{
		{"Word", CategoryWord, true},
		{"Kanji", CategoryKanji, true},
		{" Kanji ", CategoryKanji, true},
		{"Word ", CategoryWord, true},
		{"word", "", false},
		{"", "", false},
		{"Kana", "", false},
	}

	for _, tt := range tests {
		got, ok := ParseCategory(tt.in)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("ParseCategory(%q) = (%q, %v), want (%q, %v)", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}

// TestEntry_BlankIsNull は空セルがnullに正規化されることをテスト
func TestEntry_BlankIsNull(t *testing.T) {
	e := EntryFromStrings(map[string]string{
		"kanji":   "食べる",
		"reading": "",
		"on":      "   ",
	})

	if v, ok := e.Get("kanji"); !ok || v != "食べる" {
		t.Errorf("expected kanji 食べる, got %q (%v)", v, ok)
	}
	if !e.IsNull("reading") {
		t.Error("expected reading to be null")
	}
	if !e.IsNull("on") {
		t.Error("expected whitespace-only on to be null")
	}
	if !e.IsNull("meanings") {
		t.Error("expected undefined column to be null")
	}
}

func TestEntry_KanjiFallsBackToChar(t *testing.T) {
	e := EntryFromStrings(map[string]string{"char": "木"})
	if v, ok := e.Kanji(); !ok || v != "木" {
		t.Errorf("expected 木, got %q (%v)", v, ok)
	}
}

// TestEntry_Merge はマージが元のEntryを変更しないことをテスト
func TestEntry_Merge(t *testing.T) {
	reading := "たべる"
	e := EntryFromStrings(map[string]string{"kanji": "食べる", "meanings": "old"})

	merged := e.Merge(map[string]*string{
		"reading":  &reading,
		"meanings": nil,
	})

	if v, _ := merged.Get("reading"); v != "たべる" {
		t.Errorf("expected reading たべる, got %q", v)
	}
	if !merged.IsNull("meanings") {
		t.Error("expected meanings overwritten with null")
	}
	if v, _ := e.Get("meanings"); v != "old" {
		t.Errorf("original entry modified: meanings=%q", v)
	}
	if !e.IsNull("reading") {
		t.Error("original entry modified: reading set")
	}
}

func TestTable_Rows(t *testing.T) {
	table := &Table{
		Columns: []string{"kanji", "reading"},
		Entries: []*Entry{
			EntryFromStrings(map[string]string{"kanji": "木", "reading": "き"}),
			EntryFromStrings(map[string]string{"kanji": "水"}),
		},
	}
	table.EnsureColumn("link")
	table.EnsureColumn("kanji")

	rows := table.Rows("-")
	if len(table.Columns) != 3 {
		t.Fatalf("expected 3 columns, got %v", table.Columns)
	}
	want := [][]string{{"木", "き", "-"}, {"水", "-", "-"}}
	for i := range want {
		for j := range want[i] {
			if rows[i][j] != want[i][j] {
				t.Errorf("rows[%d][%d] = %q, want %q", i, j, rows[i][j], want[i][j])
			}
		}
	}
}

func TestParseLayout(t *testing.T) {
	if l, err := ParseLayout(""); err != nil || l != LayoutBasic {
		t.Errorf("expected default basic, got %q (%v)", l, err)
	}
	if l, err := ParseLayout("reversed"); err != nil || l.ModelName() != ModelBasicReversed {
		t.Errorf("expected reversed model, got %q (%v)", l.ModelName(), err)
	}
	if _, err := ParseLayout("cloze"); err == nil {
		t.Error("expected error for unknown layout")
	}
}
