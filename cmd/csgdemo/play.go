package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/Kp61dude/PrusaSlicer/internal/app"
	"github.com/Kp61dude/PrusaSlicer/internal/config"
	"github.com/Kp61dude/PrusaSlicer/internal/store"
	"github.com/Kp61dude/PrusaSlicer/pkg/scene"
	"github.com/Kp61dude/PrusaSlicer/pkg/sla"
)

var (
	playModelFile   string
	playLayerHeight float64
	playClip        float64
	playCSG         bool
	playAlgorithm   string
	playConvexity   int
	playWidth       int
	playHeight      int
	playDelay       time.Duration
	playSnapshot    string
)

var playCmd = &cobra.Command{
	Use:   "play [events-file]",
	Short: "Replay a recorded interaction session headless",
	Long: `Replay a recorded event log against an offscreen display. The model
named in the log header is loaded and sliced, every event drives the same
dispatcher the interactive viewer uses, and the final view state is printed
so replays can be compared run to run.`,
	Args: cobra.ExactArgs(1),
	RunE: runPlay,
}

func init() {
	rootCmd.AddCommand(playCmd)

	playCmd.Flags().StringVar(&playModelFile, "model", "", "model file (default: the log header)")
	playCmd.Flags().Float64Var(&playLayerHeight, "layer-height", sla.DefaultLayerHeight, "slice thickness")
	playCmd.Flags().Float64Var(&playClip, "clip", 0, "initial clip plane position (0-100)")
	playCmd.Flags().BoolVar(&playCSG, "csg", true, "enable CSG rendering")
	playCmd.Flags().StringVar(&playAlgorithm, "algorithm", "auto", "CSG algorithm: auto, goldfeather or scs")
	playCmd.Flags().IntVar(&playConvexity, "convexity", scene.DefaultConvexity, "convexity bound for CSG rendering")
	playCmd.Flags().IntVar(&playWidth, "width", 96, "offscreen display width in pixels")
	playCmd.Flags().IntVar(&playHeight, "height", 54, "offscreen display height in pixels")
	playCmd.Flags().DurationVar(&playDelay, "delay", 0, "pause between replayed events")
	playCmd.Flags().StringVar(&playSnapshot, "snapshot", "", "write the final frame to this PNG file")
}

func runPlay(cmd *cobra.Command, args []string) error {
	fileCfg, err := config.LoadConfig(viewConfigPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyFloatConfig(cmd, "layer-height", &playLayerHeight, fileCfg.Slicer.LayerHeight)
	applyFloatConfig(cmd, "clip", &playClip, fileCfg.Viewer.ClipPercent)
	applyBoolConfig(cmd, "csg", &playCSG, fileCfg.Viewer.CSG)
	applyStringConfig(cmd, "algorithm", &playAlgorithm, fileCfg.Viewer.Algorithm)
	applyIntConfig(cmd, "convexity", &playConvexity, fileCfg.Viewer.Convexity)
	applyStringConfig(cmd, "db", &viewDBPath, fileCfg.Store.DBPath)

	algorithm, err := parseAlgorithm(playAlgorithm)
	if err != nil {
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

	return app.Replay(app.ReplayOptions{
		EventsFile:  args[0],
		ModelFile:   playModelFile,
		LayerHeight: playLayerHeight,
		ClipPercent: playClip,
		CSG:         playCSG,
		Algorithm:   algorithm,
		Convexity:   uint(playConvexity),
		Width:       playWidth,
		Height:      playHeight,
		Delay:       playDelay,
		Snapshot:    playSnapshot,
		Store:       st,
		Out:         cmd.OutOrStdout(),
	})
}
