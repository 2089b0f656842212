package jaconfig

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNewAppliesDefaults(t *testing.T) {
	cfg := New("ws://localhost:8188/ws")
	if cfg.ServerRoot != DefaultServerRoot {
		t.Errorf("ServerRoot = %q, want %q", cfg.ServerRoot, DefaultServerRoot)
	}
	if cfg.Capacity != DefaultCapacity {
		t.Errorf("Capacity = %d, want %d", cfg.Capacity, DefaultCapacity)
	}
	if cfg.TransactionGenerator == nil {
		t.Error("expected a default TransactionGenerator")
	}
}

func TestNewWithOptions(t *testing.T) {
	cfg := New("ws://localhost:8188/ws",
		WithAPISecret("shh"),
		WithServerRoot("custom"),
		WithCapacity(8),
	)
	if cfg.APISecret != "shh" {
		t.Errorf("APISecret = %q, want shh", cfg.APISecret)
	}
	if cfg.ServerRoot != "custom" {
		t.Errorf("ServerRoot = %q, want custom", cfg.ServerRoot)
	}
	if cfg.Capacity != 8 {
		t.Errorf("Capacity = %d, want 8", cfg.Capacity)
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "jarust.yaml")
	contents := "url: ws://localhost:8188/ws\napisecret: topsecret\nserver_root: janus\ncapacity: 16\n"
	if err := os.WriteFile(path, []byte(contents), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.URL != "ws://localhost:8188/ws" {
		t.Errorf("URL = %q", cfg.URL)
	}
	if cfg.APISecret != "topsecret" {
		t.Errorf("APISecret = %q", cfg.APISecret)
	}
	if cfg.Capacity != 16 {
		t.Errorf("Capacity = %d", cfg.Capacity)
	}
}
