package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/rubberband/internal/storage"
)

var flagRunsLimit int

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Show the best recorded runs",
	Long: `Display the richest runs recorded by 'rubberband run', with totals.

Examples:
  rubberband runs
  rubberband runs --limit 3`,
	Args: cobra.NoArgs,
	Run:  runRuns,
}

func init() {
	runsCmd.Flags().IntVar(&flagRunsLimit, "limit", 10, "Number of runs to show")
}

func runRuns(cmd *cobra.Command, args []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fatal("opening saves database: %v", err)
	}
	defer store.Close()

	runs, err := store.TopRuns(flagRunsLimit)
	if err != nil {
		fatal("retrieving runs: %v", err)
	}

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		return
	}

	fmt.Printf("  %-4s  %-10s  %-12s  %-8s  %-8s  %s\n", "Rank", "Slot", "Money", "Ticks", "Research", "Date")
	fmt.Printf("  %-4s  %-10s  %-12s  %-8s  %-8s  %s\n", "----", "----", "-----", "-----", "--------", "----")
	for i, r := range runs {
		slot := r.Slot
		if r.GameOver {
			slot += "*"
		}
		fmt.Printf("  %-4d  %-10s  %-12s  %-8s  %-8d  %s\n",
			i+1, slot, formatNum(r.Money), humanize.Comma(r.Ticks), r.Researched, r.CreatedAt.Format("2006-01-02 15:04"))
	}

	stats, err := store.Stats()
	if err != nil {
		logger.Warn("cannot aggregate runs", "err", err)
		return
	}
	fmt.Println()
	fmt.Printf("Runs: %d  Best: $%s  Average: $%s  Ticks played: %s  Last: %s\n",
		stats.Runs, formatNum(stats.BestMoney), formatNum(stats.AvgMoney),
		humanize.Comma(stats.TotalTicks), humanize.Time(stats.LastPlayed))
	fmt.Println("* run ended in game over")
}
