package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadConfigMissingFileIsEmpty(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Viewer.ClipPercent != nil || cfg.Slicer.LayerHeight != nil {
		t.Error("missing file produced non-empty config")
	}
}

func TestLoadConfigEmptyPath(t *testing.T) {
	if _, err := LoadConfig(""); err == nil {
		t.Error("empty path accepted")
	}
}

func TestLoadConfigParsesValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[viewer]
clip-percent = 25.0
csg = false
algorithm = "scs"
convexity = 4

[slicer]
layer-height = 0.2

[replay]
events-file = "session.events"

[store]
db-path = "/tmp/central.db"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing config failed: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Viewer.ClipPercent == nil || *cfg.Viewer.ClipPercent != 25.0 {
		t.Errorf("clip-percent = %v, want 25", cfg.Viewer.ClipPercent)
	}
	if cfg.Viewer.CSG == nil || *cfg.Viewer.CSG {
		t.Errorf("csg = %v, want false", cfg.Viewer.CSG)
	}
	if cfg.Viewer.Algorithm == nil || *cfg.Viewer.Algorithm != "scs" {
		t.Errorf("algorithm = %v, want scs", cfg.Viewer.Algorithm)
	}
	if cfg.Viewer.Convexity == nil || *cfg.Viewer.Convexity != 4 {
		t.Errorf("convexity = %v, want 4", cfg.Viewer.Convexity)
	}
	if cfg.Slicer.LayerHeight == nil || *cfg.Slicer.LayerHeight != 0.2 {
		t.Errorf("layer-height = %v, want 0.2", cfg.Slicer.LayerHeight)
	}
	if cfg.Replay.EventsFile == nil || *cfg.Replay.EventsFile != "session.events" {
		t.Errorf("events-file = %v, want session.events", cfg.Replay.EventsFile)
	}
	if cfg.Store.DBPath == nil || *cfg.Store.DBPath != "/tmp/central.db" {
		t.Errorf("db-path = %v, want /tmp/central.db", cfg.Store.DBPath)
	}
}

func TestLoadConfigRejectsBadTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[viewer\nclip"), 0o644); err != nil {
		t.Fatalf("writing config failed: %v", err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Error("malformed TOML accepted")
	}
}

func TestXDGPathsHonorEnvironment(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/custom/config")
	t.Setenv("XDG_DATA_HOME", "/custom/data")

	if got := DefaultConfigPath(); !strings.HasPrefix(got, "/custom/config") {
		t.Errorf("config path = %q, want under /custom/config", got)
	}
	if got := DefaultDBPath(); !strings.HasPrefix(got, "/custom/data") {
		t.Errorf("db path = %q, want under /custom/data", got)
	}
}
