package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.TasksDir != filepath.Join(".changeview", "tasks") {
		t.Errorf("Unexpected default tasks dir: %s", cfg.TasksDir)
	}
	if !cfg.Watch {
		t.Errorf("Expected watching to default to enabled")
	}
	if cfg.TabWidth != 4 {
		t.Errorf("Expected default tab width 4, got %d", cfg.TabWidth)
	}
}

func TestGetAndSet(t *testing.T) {
	cfg := DefaultConfig()

	if err := cfg.Set("tab_width", "8"); err != nil {
		t.Fatalf("Failed to set tab_width: %v", err)
	}
	value, err := cfg.Get("tab_width")
	if err != nil {
		t.Fatalf("Failed to get tab_width: %v", err)
	}
	if value != 8 {
		t.Errorf("Expected tab_width 8, got %v", value)
	}

	if err := cfg.Set("watch", "false"); err != nil {
		t.Fatalf("Failed to set watch: %v", err)
	}
	if cfg.Watch {
		t.Errorf("Expected watch to be disabled")
	}

	if err := cfg.Set("watch", "maybe"); err == nil {
		t.Errorf("Expected an error for a non-boolean watch value")
	}
	if err := cfg.Set("unknown_key", "x"); err == nil {
		t.Errorf("Expected an error for an unknown key")
	}
	if _, err := cfg.Get("unknown_key"); err == nil {
		t.Errorf("Expected an error for an unknown key")
	}
}

func TestSaveAndLoadLocalConfig(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "changeview-config-test")
	if err != nil {
		t.Fatalf("Failed to create temp directory: %v", err)
	}
	defer os.RemoveAll(tempDir)

	cfg := DefaultConfig()
	cfg.TabWidth = 2
	cfg.TasksDir = "logs"
	if err := cfg.SaveLocal(tempDir); err != nil {
		t.Fatalf("Failed to save config: %v", err)
	}

	loaded, err := LoadConfig(tempDir)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}
	if loaded.TabWidth != 2 {
		t.Errorf("Expected tab width 2, got %d", loaded.TabWidth)
	}
	if loaded.TasksDir != "logs" {
		t.Errorf("Expected tasks dir logs, got %s", loaded.TasksDir)
	}
}
