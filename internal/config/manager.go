// Package config loads and saves the vocab-sync configuration.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/brbranch/vocab_sync/internal/model"
)

// Manager は設定の読み書きを管理する
type Manager struct {
	mu         sync.RWMutex
	config     *model.Config
	configPath string
}

// NewManager は新しいManagerを作成する
// configPathが空文字の場合、デフォルトパス（~/.vocab-sync/config.json）を使用
func NewManager(configPath string) (*Manager, error) {
	if configPath == "" {
		defaultPath, err := GetDefaultConfigPath()
		if err != nil {
			return nil, fmt.Errorf("failed to get default config path: %w", err)
		}
		configPath = defaultPath
	}

	expanded, err := ExpandTilde(configPath)
	if err != nil {
		return nil, err
	}
	configPath = expanded

	dataDir, err := GetDefaultDataDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get default data dir: %w", err)
	}

	return &Manager{
		config:     DefaultConfig(configPath, dataDir),
		configPath: configPath,
	}, nil
}

// Load は設定ファイルを読み込み、環境変数の上書きを適用する
// ファイルが存在しない場合はデフォルト設定を使用（エラーなし）
// ファイルに無い項目はデフォルト値のまま残る
func (m *Manager) Load() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, err := os.Stat(m.configPath); err == nil {
		data, err := os.ReadFile(m.configPath)
		if err != nil {
			return fmt.Errorf("failed to read config file: %w", err)
		}

		config := *m.config
		if err := json.Unmarshal(data, &config); err != nil {
			return fmt.Errorf("failed to parse config file: %w", err)
		}
		config.Paths.ConfigPath = m.configPath
		m.config = &config
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to stat config file: %w", err)
	}

	ApplyEnvOverrides(m.config)
	return nil
}

// Save は設定ファイルを保存する
func (m *Manager) Save() error {
	m.mu.RLock()
	config := m.config
	m.mu.RUnlock()

	if err := EnsureDir(filepath.Dir(m.configPath)); err != nil {
		return err
	}

	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// 一時ファイルに書き込み（atomicな保存のため）
	tmpFile := m.configPath + ".tmp"
	if err := os.WriteFile(tmpFile, data, 0600); err != nil {
		return fmt.Errorf("failed to write temp config file: %w", err)
	}

	if err := os.Rename(tmpFile, m.configPath); err != nil {
		os.Remove(tmpFile)
		return fmt.Errorf("failed to rename config file: %w", err)
	}

	return nil
}

// GetConfig は現在の設定を返す
func (m *Manager) GetConfig() *model.Config {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.config
}

// GetConfigPath は設定ファイルパスを返す
func (m *Manager) GetConfigPath() string {
	return m.configPath
}

// DefaultConfig はデフォルト設定を返す
func DefaultConfig(configPath, dataDir string) *model.Config {
	return &model.Config{
		Sheet: model.SheetConfig{
			Source:    model.SheetSourceGoogle,
			Worksheet: model.DefaultWorksheet,
		},
		Anki: model.AnkiConfig{
			URL:            model.DefaultAnkiURL,
			Version:        model.ProtocolVersion,
			Deck:           model.DefaultDeck,
			Layout:         model.LayoutBasic,
			TimeoutSeconds: 0, // タイムアウトなし
		},
		Dictionary: model.DictionaryConfig{
			WordsURL:          model.DefaultWordsURL,
			KanjiURL:          model.DefaultKanjiURL,
			RequestsPerSecond: 2,
		},
		Store: model.StoreConfig{
			Type: model.StoreTypeSQLite,
		},
		Paths: model.PathsConfig{
			ConfigPath: configPath,
			DataDir:    dataDir,
		},
		Log: model.LogConfig{
			Level: "info",
		},
	}
}
