package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Kp61dude/PrusaSlicer/internal/app"
	"github.com/Kp61dude/PrusaSlicer/internal/config"
	"github.com/Kp61dude/PrusaSlicer/internal/store"
	"github.com/Kp61dude/PrusaSlicer/pkg/scene"
	"github.com/Kp61dude/PrusaSlicer/pkg/sla"
	"github.com/Kp61dude/PrusaSlicer/pkg/watcher"
	"github.com/Kp61dude/PrusaSlicer/version"
)

var (
	viewConfigPath  string
	viewDBPath      string
	viewVerbose     bool
	viewEventsFile  string
	viewLayerHeight float64
	viewClip        float64
	viewCSG         bool
	viewAlgorithm   string
	viewConvexity   int
	viewWatch       bool
)

var rootCmd = &cobra.Command{
	Use:   "csgdemo [file]",
	Short: "Interactive CSG viewer for sliced 3D models",
	Long: `csgdemo loads an STL or OpenSCAD model, slices it into layers and
opens an interactive terminal viewer with a movable clip plane, CSG render
settings and a session recorder for reproducible interaction replays.`,
	Version:      version.GetFullVersion(),
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
	PersistentPreRun: func(*cobra.Command, []string) {
		setupLogging(viewVerbose)
	},
	RunE: runView,
}

// setupLogging installs the process logger. Debug output is opt-in so the
// terminal shells stay quiet unless stderr is redirected somewhere useful.
func setupLogging(verbose bool) {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

func init() {
	rootCmd.PersistentFlags().StringVar(&viewConfigPath, "config", config.DefaultConfigPath(), "config file path")
	rootCmd.PersistentFlags().StringVar(&viewDBPath, "db", config.DefaultDBPath(), "run history database path")
	rootCmd.PersistentFlags().BoolVar(&viewVerbose, "verbose", false, "enable debug logging on stderr")

	rootCmd.Flags().StringVar(&viewEventsFile, "events-file", "session.events", "event log for record, save, load and play")
	rootCmd.Flags().Float64Var(&viewLayerHeight, "layer-height", sla.DefaultLayerHeight, "slice thickness")
	rootCmd.Flags().Float64Var(&viewClip, "clip", 0, "initial clip plane position (0-100)")
	rootCmd.Flags().BoolVar(&viewCSG, "csg", true, "enable CSG rendering")
	rootCmd.Flags().StringVar(&viewAlgorithm, "algorithm", "auto", "CSG algorithm: auto, goldfeather or scs")
	rootCmd.Flags().IntVar(&viewConvexity, "convexity", scene.DefaultConvexity, "convexity bound for CSG rendering")
	rootCmd.Flags().BoolVar(&viewWatch, "watch", false, "reload the model when the file changes")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runView(cmd *cobra.Command, args []string) error {
	fileCfg, err := config.LoadConfig(viewConfigPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "events-file", &viewEventsFile, fileCfg.Replay.EventsFile)
	applyFloatConfig(cmd, "layer-height", &viewLayerHeight, fileCfg.Slicer.LayerHeight)
	applyFloatConfig(cmd, "clip", &viewClip, fileCfg.Viewer.ClipPercent)
	applyBoolConfig(cmd, "csg", &viewCSG, fileCfg.Viewer.CSG)
	applyStringConfig(cmd, "algorithm", &viewAlgorithm, fileCfg.Viewer.Algorithm)
	applyIntConfig(cmd, "convexity", &viewConvexity, fileCfg.Viewer.Convexity)
	applyStringConfig(cmd, "db", &viewDBPath, fileCfg.Store.DBPath)

	algorithm, err := parseAlgorithm(viewAlgorithm)
	if err != nil {
		return err
	}
	if err := validateViewSettings(); err != nil {
		return err
	}

	st, err := store.Open(viewDBPath)
	if err != nil {
		return fmt.Errorf("failed to open run store: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			fmt.Fprintf(os.Stderr, "failed to close run store: %v\n", cerr)
		}
	}()

	var fw *watcher.FileWatcher
	if viewWatch {
		fw, err = watcher.NewFileWatcher(500 * time.Millisecond)
		if err != nil {
			return fmt.Errorf("failed to start watcher: %w", err)
		}
		fw.Start()
		defer func() {
			if cerr := fw.Close(); cerr != nil {
				fmt.Fprintf(os.Stderr, "failed to close watcher: %v\n", cerr)
			}
		}()
	}

	opts := app.Options{
		EventsFile:  viewEventsFile,
		LayerHeight: viewLayerHeight,
		ClipPercent: viewClip,
		CSG:         viewCSG,
		Algorithm:   algorithm,
		Convexity:   uint(viewConvexity),
		Store:       st,
		Watcher:     fw,
	}
	if len(args) == 1 {
		opts.ModelFile = args[0]
	}
	if err := app.Run(opts); err != nil {
		return fmt.Errorf("failed to run viewer: %w", err)
	}
	return nil
}

func validateViewSettings() error {
	if viewClip < 0 || viewClip > 100 {
		return fmt.Errorf("--clip must be between 0 and 100")
	}
	if viewConvexity < 1 {
		return fmt.Errorf("--convexity must be >= 1")
	}
	if viewLayerHeight <= 0 {
		return fmt.Errorf("--layer-height must be > 0")
	}
	return nil
}

func parseAlgorithm(name string) (scene.Algorithm, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "auto":
		return scene.AlgorithmAuto, nil
	case "goldfeather":
		return scene.AlgorithmGoldfeather, nil
	case "scs":
		return scene.AlgorithmSCS, nil
	default:
		return 0, fmt.Errorf("unknown algorithm %q (auto, goldfeather or scs)", name)
	}
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyFloatConfig(cmd *cobra.Command, name string, target, value *float64) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}
