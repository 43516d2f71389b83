package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("expected port 8080, got %d", cfg.Server.Port)
	}
	if cfg.Catalog.Backend != "deezer" {
		t.Errorf("expected deezer backend, got %q", cfg.Catalog.Backend)
	}
	if cfg.Match.AcceptThreshold != 60.0 {
		t.Errorf("expected threshold 60, got %v", cfg.Match.AcceptThreshold)
	}
	if cfg.Match.TrackCap != 3 {
		t.Errorf("expected track cap 3, got %d", cfg.Match.TrackCap)
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	body := `
server:
  port: 9090
catalog:
  backend: itunes
match:
  accept_threshold: 75
`
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("expected port 9090, got %d", cfg.Server.Port)
	}
	if cfg.Catalog.Backend != "itunes" {
		t.Errorf("expected itunes backend, got %q", cfg.Catalog.Backend)
	}
	if cfg.Match.AcceptThreshold != 75 {
		t.Errorf("expected threshold 75, got %v", cfg.Match.AcceptThreshold)
	}
	// Unset fields keep defaults.
	if cfg.Match.DistanceCutoff != 0.3 {
		t.Errorf("expected cutoff 0.3, got %v", cfg.Match.DistanceCutoff)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("FL_PORT", "7070")
	t.Setenv("FL_CATALOG", "itunes")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 7070 {
		t.Errorf("expected port 7070, got %d", cfg.Server.Port)
	}
	if cfg.Catalog.Backend != "itunes" {
		t.Errorf("expected itunes backend, got %q", cfg.Catalog.Backend)
	}
}

func TestValidateRejectsUnknownBackend(t *testing.T) {
	t.Setenv("FL_CATALOG", "napster")
	if _, err := Load(""); err == nil {
		t.Fatal("expected error for unknown catalog backend")
	}
}

func TestMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Database.Path == "" {
		t.Error("expected default database path")
	}
}
