package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Kp61dude/PrusaSlicer/internal/config"
	"github.com/Kp61dude/PrusaSlicer/internal/store"
)

var runsLimit int

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Show recorded load and replay runs",
	Long:  "List the run history: every model load and session replay with its model, layer and event counts.",
	Args:  cobra.NoArgs,
	RunE:  runRuns,
}

func init() {
	rootCmd.AddCommand(runsCmd)

	runsCmd.Flags().IntVarP(&runsLimit, "limit", "n", 20, "number of runs to display, 0 for all")
}

func runRuns(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(viewConfigPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "db", &viewDBPath, fileCfg.Store.DBPath)

	st, err := store.Open(viewDBPath)
	if err != nil {
		return fmt.Errorf("failed to open run store: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			fmt.Fprintf(os.Stderr, "failed to close run store: %v\n", cerr)
		}
	}()

	runs, err := st.ListRuns(context.Background(), runsLimit)
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}
	if len(runs) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No runs recorded yet.")
		return nil
	}
	for _, line := range store.FormatRuns(runs) {
		fmt.Fprintln(cmd.OutOrStdout(), line)
	}
	return nil
}
