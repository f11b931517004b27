package model

// Config はアプリケーション全体の設定を表す
type Config struct {
	Sheet      SheetConfig      `json:"sheet"`
	Anki       AnkiConfig       `json:"anki"`
	Dictionary DictionaryConfig `json:"dictionary"`
	Store      StoreConfig      `json:"store"`
	Paths      PathsConfig      `json:"paths"`
	Log        LogConfig        `json:"log"`
}

// SheetConfig はスプレッドシート設定
type SheetConfig struct {
	Source          string  `json:"source"`                    // "google" | "csv"
	Key             string  `json:"key"`                       // スプレッドシートキー（google用）
	Worksheet       string  `json:"worksheet"`                 // ワークシート名
	CredentialsFile *string `json:"credentialsFile,omitempty"` // nullable、サービスアカウントJSON
	CSVPath         *string `json:"csvPath,omitempty"`         // nullable（csv用）
}

// AnkiConfig はノートサービス設定
type AnkiConfig struct {
	URL            string `json:"url"`
	Version        int    `json:"version"`        // プロトコルバージョン（通常6）
	Deck           string `json:"deck"`           // 追加先デッキ
	Layout         Layout `json:"layout"`         // "basic" | "reversed"
	TimeoutSeconds int    `json:"timeoutSeconds"` // 0はタイムアウトなし
}

// DictionaryConfig は辞書API設定
type DictionaryConfig struct {
	WordsURL          string  `json:"wordsUrl"`
	KanjiURL          string  `json:"kanjiUrl"`
	RequestsPerSecond float64 `json:"requestsPerSecond"` // 0以下は制限なし
}

// StoreConfig はキャッシュ・実行履歴ストア設定
type StoreConfig struct {
	Type string  `json:"type"`           // "memory" | "sqlite" | "redis"
	Path *string `json:"path,omitempty"` // nullable（SQLite用）
	URL  *string `json:"url,omitempty"`  // nullable（Redis用）
}

// PathsConfig はファイルパス設定
type PathsConfig struct {
	ConfigPath string `json:"configPath"` // 設定ファイルパス
	DataDir    string `json:"dataDir"`    // データディレクトリ
}

// LogConfig はログ設定
type LogConfig struct {
	Level string `json:"level"` // logrusのレベル名
}

// Sheet Source定数
const (
	SheetSourceGoogle = "google"
	SheetSourceCSV    = "csv"
)

// Store Type定数
const (
	StoreTypeMemory = "memory"
	StoreTypeSQLite = "sqlite"
	StoreTypeRedis  = "redis"
)

// デフォルト値
const (
	DefaultAnkiURL   = "http://localhost:8765"
	DefaultDeck      = "Vocabulary"
	DefaultWorksheet = "Vocabulary"
	DefaultWordsURL  = "https://jisho.org/api/v1"
	DefaultKanjiURL  = "https://kanjiapi.dev/v1"
	DefaultDBFile    = "vocab.db" // SQLiteストアのファイル名（データディレクトリ直下）
)
