package main

import (
	"net/http"
	"strings"
	"testing"
)

// dictionaryHandler は単語・漢字APIのスタブ
func dictionaryHandler(t *testing.T) http.HandlerFunc {
	t.Helper()
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.URL.Path == "/search/words":
			w.Write([]byte(`{"data": [{"japanese": [{"word": "食べる", "reading": "たべる"}],
				"senses": [{"english_definitions": ["to eat"], "parts_of_speech": ["Ichidan verb"]}],
				"jlpt": ["jlpt-n5"]}]}`))
		case strings.HasPrefix(r.URL.Path, "/kanji/"):
			w.Write([]byte(`{"kanji": "水", "kun_readings": ["みず"], "on_readings": ["スイ"], "meanings": ["water"]}`))
		default:
			http.NotFound(w, r)
		}
	}
}
