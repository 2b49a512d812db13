package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/jobdeck/jobdeck/internal/history"
)

var (
	historyCount int
	historyPrune time.Duration
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent searches",
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&historyCount, "count", "n", 10, "number of entries to show")
	historyCmd.Flags().DurationVar(&historyPrune, "prune", 0, "delete entries older than this before listing (e.g. 720h)")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if cfg.HistoryPath == "" {
		fmt.Println("History is disabled (history_path is empty).")
		return nil
	}

	store, err := history.Open(cfg.HistoryPath)
	if err != nil {
		return fmt.Errorf("opening history: %w", err)
	}
	defer store.Close()

	if historyPrune > 0 {
		if err := store.Cleanup(historyPrune); err != nil {
			return fmt.Errorf("pruning history: %w", err)
		}
	}

	entries, err := store.Recent(historyCount)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Println("No searches recorded yet.")
		return nil
	}

	for _, e := range entries {
		line := fmt.Sprintf("%s  %q", e.RunAt.Format("2006-01-02 15:04"), e.Query)
		if e.Location != "" {
			line += " in " + e.Location
		}
		line += fmt.Sprintf(" — %d results", e.Results)
		fmt.Println(line)
	}
	return nil
}
