package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Kp61dude/PrusaSlicer/internal/config"
	"github.com/Kp61dude/PrusaSlicer/pkg/scene"
	"github.com/Kp61dude/PrusaSlicer/pkg/sla"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Create/open config file",
	Args:  cobra.NoArgs,
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	path := viewConfigPath
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# csgdemo configuration
# Uncomment a value to enable it. CLI flags override config values.

[viewer]
# clip-percent = 0.0   # Initial clip plane position (0-100)
# csg = true           # CSG rendering on startup
# algorithm = "auto"   # auto, goldfeather or scs
# convexity = %d       # Convexity bound for CSG rendering

[slicer]
# layer-height = %.1f   # Slice thickness

[replay]
# events-file = "session.events"  # Default event log path

[store]
# db-path = %q
`,
		scene.DefaultConvexity,
		sla.DefaultLayerHeight,
		config.DefaultDBPath(),
	)
}
