//go:build e2e

package e2e

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/brbranch/vocab_sync/internal/ankiserver"
	"github.com/brbranch/vocab_sync/internal/bootstrap"
	"github.com/brbranch/vocab_sync/internal/logging"
	transporthttp "github.com/brbranch/vocab_sync/internal/transport/http"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// fixture は偽のノートサービス・辞書API・Redisを立てた環境
type fixture struct {
	csvPath     string
	anki        *ankiserver.Handler
	redis       *miniredis.Miniredis
	dictHits    *atomic.Int64
	services    *bootstrap.Services
	cleanupFunc func()
}

func setupFixture(t *testing.T, csv string) *fixture {
	t.Helper()
	for _, k := range []string{"VOCAB_SHEET_KEY", "ANKI_CONNECT_URL", "ANKI_CONNECT_VERSION", "VOCAB_DECK", "VOCAB_CACHE_URL", "LOG_LEVEL"} {
		t.Setenv(k, "")
	}

	dir := t.TempDir()
	csvPath := filepath.Join(dir, "vocab.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte(csv), 0644))

	anki := ankiserver.New(ankiserver.WithLogger(logging.Discard()))
	ankiSrv := httptest.NewServer(transporthttp.New(anki, transporthttp.Config{Logger: logging.Discard()}).Handler())
	t.Cleanup(ankiSrv.Close)

	hits := &atomic.Int64{}
	dictSrv := httptest.NewServer(dictionaryHandler(hits))
	t.Cleanup(dictSrv.Close)

	mr := miniredis.RunT(t)
	configPath := filepath.Join(dir, "config.json")
	require.NoError(t, os.WriteFile(configPath, []byte(`{
		"sheet": {"source": "csv", "csvPath": "`+csvPath+`"},
		"anki": {"url": "`+ankiSrv.URL+`", "deck": "Kana", "timeoutSeconds": 5},
		"dictionary": {"wordsUrl": "`+dictSrv.URL+`", "kanjiUrl": "`+dictSrv.URL+`", "requestsPerSecond": 0},
		"store": {"type": "redis", "url": "redis://`+mr.Addr()+`/0"},
		"log": {"level": "error"}
	}`), 0644))

	services, cleanup, err := bootstrap.Initialize(context.Background(), configPath)
	require.NoError(t, err)
	t.Cleanup(cleanup)

	return &fixture{
		csvPath:     csvPath,
		anki:        anki,
		redis:       mr,
		dictHits:    hits,
		services:    services,
		cleanupFunc: cleanup,
	}
}

func (f *fixture) readCSV(t *testing.T) string {
	t.Helper()
	data, err := os.ReadFile(f.csvPath)
	require.NoError(t, err)
	return string(data)
}

// dictionaryHandler は単語・漢字APIのスタブ（呼び出し回数を数える）
func dictionaryHandler(hits *atomic.Int64) http.HandlerFunc {
	words := map[string]string{
		"食べる": `{"data": [{"japanese": [{"word": "食べる", "reading": "たべる"}],
			"senses": [{"english_definitions": ["to eat"], "parts_of_speech": ["Ichidan verb", "Transitive verb"]}],
			"jlpt": ["jlpt-n5"]}]}`,
		"猫": `{"data": [{"japanese": [{"word": "猫", "reading": "ねこ"}],
			"senses": [{"english_definitions": ["cat"], "parts_of_speech": ["Noun"]}],
			"jlpt": ["jlpt-n5"]}]}`,
	}
	kanji := map[string]string{
		"水": `{"kanji": "水", "kun_readings": ["みず", "みず-"], "on_readings": ["スイ"], "meanings": ["water"]}`,
	}

	return func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.URL.Path == "/search/words":
			body, ok := words[r.URL.Query().Get("keyword")]
			if !ok {
				body = `{"data": []}`
			}
			w.Write([]byte(body))
		case strings.HasPrefix(r.URL.Path, "/kanji/"):
			body, ok := kanji[strings.TrimPrefix(r.URL.Path, "/kanji/")]
			if !ok {
				http.NotFound(w, r)
				return
			}
			w.Write([]byte(body))
		default:
			http.NotFound(w, r)
		}
	}
}
