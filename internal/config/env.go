package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"

	"github.com/brbranch/vocab_sync/internal/model"
	"github.com/joho/godotenv"
)

// 環境変数名の定数
const (
	EnvSheetKey    = "VOCAB_SHEET_KEY"
	EnvCredentials = "GOOGLE_APPLICATION_CREDENTIALS"
	EnvAnkiURL     = "ANKI_CONNECT_URL"
	EnvAnkiVersion = "ANKI_CONNECT_VERSION"
	EnvDeck        = "VOCAB_DECK"
	EnvCacheURL    = "VOCAB_CACHE_URL"
	EnvLogLevel    = "LOG_LEVEL"
)

// DefaultDotEnvFile はカレントディレクトリの.env
const DefaultDotEnvFile = ".env"

// LoadDotEnv は.envファイルを読み込んで環境変数に反映する
// ファイルが存在しない場合は何もしない（既存の環境変数は上書きしない）
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{DefaultDotEnvFile}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return err
		}
	}
	return nil
}

// ApplyEnvOverrides は環境変数による設定上書きを適用する
// config を直接変更する
func ApplyEnvOverrides(config *model.Config) {
	if v := os.Getenv(EnvSheetKey); v != "" {
		config.Sheet.Key = v
	}
	if v := os.Getenv(EnvCredentials); v != "" {
		config.Sheet.CredentialsFile = &v
	}
	if v := os.Getenv(EnvAnkiURL); v != "" {
		config.Anki.URL = v
	}
	if v := os.Getenv(EnvAnkiVersion); v != "" {
		// 数値でなければ無視
		if n, err := strconv.Atoi(v); err == nil {
			config.Anki.Version = n
		}
	}
	if v := os.Getenv(EnvDeck); v != "" {
		config.Anki.Deck = v
	}
	if v := os.Getenv(EnvCacheURL); v != "" {
		config.Store.URL = &v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		config.Log.Level = v
	}
}
