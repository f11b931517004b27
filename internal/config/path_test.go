package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestExpandTilde(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("home directory not available")
	}

	tests := []struct {
		input    string
		expected string
	}{
		{"~", home},
		{"~/vocab/config.json", filepath.Join(home, "vocab/config.json")},
		{"/abs/path", "/abs/path"},
		{"~user/path", "~user/path"},
		{"relative/path", "relative/path"},
	}

	for _, tt := range tests {
		got, err := ExpandTilde(tt.input)
		if err != nil {
			t.Fatalf("ExpandTilde(%q) failed: %v", tt.input, err)
		}
		if got != tt.expected {
			t.Errorf("ExpandTilde(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestGetDefaultPaths(t *testing.T) {
	configPath, err := GetDefaultConfigPath()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasSuffix(configPath, filepath.Join(".vocab-sync", "config.json")) {
		t.Errorf("unexpected default config path %q", configPath)
	}

	dataDir, err := GetDefaultDataDir()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasSuffix(dataDir, filepath.Join(".vocab-sync", "data")) {
		t.Errorf("unexpected default data dir %q", dataDir)
	}
}

func TestEnsureDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b", "c")
	if err := EnsureDir(dir); err != nil {
		t.Fatalf("EnsureDir failed: %v", err)
	}
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		t.Errorf("expected directory at %s", dir)
	}
}
