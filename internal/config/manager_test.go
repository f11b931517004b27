package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/brbranch/vocab_sync/internal/model"
)

// TestManager_NewManager_DefaultPath はデフォルトパスでManagerが作成されることをテスト
func TestManager_NewManager_DefaultPath(t *testing.T) {
	mgr, err := NewManager("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cfg := mgr.GetConfig()
	if cfg.Paths.ConfigPath == "" {
		t.Error("expected non-empty config path")
	}
	if cfg.Paths.DataDir == "" {
		t.Error("expected non-empty data dir")
	}
}

// TestManager_Load_NotExist は設定ファイルが存在しない場合にデフォルト設定が使われることをテスト
func TestManager_Load_NotExist(t *testing.T) {
	clearEnv(t)
	configPath := filepath.Join(t.TempDir(), "nonexistent.json")

	mgr, err := NewManager(configPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mgr.Load(); err != nil {
		t.Fatalf("unexpected error on load: %v", err)
	}

	cfg := mgr.GetConfig()
	if cfg.Anki.URL != "http://localhost:8765" {
		t.Errorf("expected default anki url, got %q", cfg.Anki.URL)
	}
	if cfg.Anki.Version != 6 {
		t.Errorf("expected default version 6, got %d", cfg.Anki.Version)
	}
	if cfg.Sheet.Worksheet != "Vocabulary" {
		t.Errorf("expected default worksheet Vocabulary, got %q", cfg.Sheet.Worksheet)
	}
}

// TestManager_Load_PartialFile はファイルに無い項目がデフォルトのまま残ることをテスト
func TestManager_Load_PartialFile(t *testing.T) {
	clearEnv(t)
	configPath := filepath.Join(t.TempDir(), "config.json")
	content := `{
		"anki": {"deck": "Kana", "layout": "reversed"},
		"store": {"type": "memory"}
	}`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	mgr, err := NewManager(configPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mgr.Load(); err != nil {
		t.Fatalf("unexpected error on load: %v", err)
	}

	cfg := mgr.GetConfig()
	if cfg.Anki.Deck != "Kana" {
		t.Errorf("expected deck Kana, got %q", cfg.Anki.Deck)
	}
	if cfg.Anki.Layout != model.LayoutReversed {
		t.Errorf("expected reversed layout, got %q", cfg.Anki.Layout)
	}
	if cfg.Store.Type != model.StoreTypeMemory {
		t.Errorf("expected memory store, got %q", cfg.Store.Type)
	}
	if cfg.Dictionary.WordsURL != model.DefaultWordsURL {
		t.Errorf("expected default words url, got %q", cfg.Dictionary.WordsURL)
	}
	if cfg.Paths.ConfigPath != configPath {
		t.Errorf("expected config path %q, got %q", configPath, cfg.Paths.ConfigPath)
	}
}

func TestManager_Load_InvalidJSON(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(configPath, []byte(`{invalid`), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	mgr, err := NewManager(configPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mgr.Load(); err == nil {
		t.Error("expected error for invalid JSON")
	}
}

// TestManager_SaveAndLoad は保存した設定が再読み込みできることをテスト
func TestManager_SaveAndLoad(t *testing.T) {
	clearEnv(t)
	configPath := filepath.Join(t.TempDir(), "nested", "config.json")

	mgr, err := NewManager(configPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	mgr.GetConfig().Sheet.Key = "saved-key"
	if err := mgr.Save(); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	reloaded, err := NewManager(configPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := reloaded.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if reloaded.GetConfig().Sheet.Key != "saved-key" {
		t.Errorf("expected saved-key, got %q", reloaded.GetConfig().Sheet.Key)
	}
}

// TestManager_Load_EnvOverridesFile は環境変数がファイルより優先されることをテスト
func TestManager_Load_EnvOverridesFile(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvSheetKey, "env-key")

	configPath := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(configPath, []byte(`{"sheet": {"key": "file-key"}}`), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	mgr, _ := NewManager(configPath)
	if err := mgr.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if mgr.GetConfig().Sheet.Key != "env-key" {
		t.Errorf("expected env-key, got %q", mgr.GetConfig().Sheet.Key)
	}
}
