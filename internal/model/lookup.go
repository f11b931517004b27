package model

// LookupKind は辞書検索の種別
type LookupKind string

const (
	LookupWord      LookupKind = "word"
	LookupCharacter LookupKind = "kanji"
)

// Lookup は辞書検索の結果（見つからない項目はnil）
type Lookup struct {
	Kind          LookupKind `json:"kind"`
	Key           string     `json:"key"`
	Reading       *string    `json:"reading,omitempty"`
	Level         *string    `json:"level,omitempty"`
	PartsOfSpeech *string    `json:"partsOfSpeech,omitempty"`
	Meanings      *string    `json:"meanings,omitempty"`
	Kun           *string    `json:"kun,omitempty"`
	On            *string    `json:"on,omitempty"`
	Link          *string    `json:"link,omitempty"`
}

// Columns はEntryにマージするカラム→値を返す
// Wordはreading/level/parts_of_speech/meanings/link、Kanjiはon/kun/meanings/link
func (l *Lookup) Columns() map[string]*string {
	if l.Kind == LookupCharacter {
		return map[string]*string{
			ColumnOn:       l.On,
			ColumnKun:      l.Kun,
			ColumnMeanings: l.Meanings,
			ColumnLink:     l.Link,
		}
	}
	return map[string]*string{
		ColumnReading:       l.Reading,
		ColumnLevel:         l.Level,
		ColumnPartsOfSpeech: l.PartsOfSpeech,
		ColumnMeanings:      l.Meanings,
		ColumnLink:          l.Link,
	}
}
