package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file. Pointer fields
// distinguish "not set" from a configured zero value; CLI flags override
// whatever the file provides.
type FileConfig struct {
	Viewer ViewerConfig `toml:"viewer"`
	Slicer SlicerConfig `toml:"slicer"`
	Replay ReplayConfig `toml:"replay"`
	Store  StoreConfig  `toml:"store"`
}

// ViewerConfig maps view and CSG settings.
type ViewerConfig struct {
	ClipPercent *float64 `toml:"clip-percent"`
	CSG         *bool    `toml:"csg"`
	Algorithm   *string  `toml:"algorithm"`
	Convexity   *int     `toml:"convexity"`
}

// SlicerConfig maps slicing settings.
type SlicerConfig struct {
	LayerHeight *float64 `toml:"layer-height"`
}

// ReplayConfig maps event recording settings.
type ReplayConfig struct {
	EventsFile *string `toml:"events-file"`
}

// StoreConfig maps run database settings.
type StoreConfig struct {
	DBPath *string `toml:"db-path"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, nil
}
