package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/rubberband/internal/storage"
)

var savesCmd = &cobra.Command{
	Use:   "saves",
	Short: "List save slots",
	Long: `Display every save slot in the database, most recent first.

Examples:
  rubberband saves
  rubberband saves rm speedrun`,
	Args: cobra.NoArgs,
	Run:  runSaves,
}

var savesRmCmd = &cobra.Command{
	Use:   "rm <slot>",
	Short: "Delete a save slot",
	Args:  cobra.ExactArgs(1),
	Run:   runSavesRm,
}

func init() {
	savesCmd.AddCommand(savesRmCmd)
}

func runSaves(cmd *cobra.Command, args []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fatal("opening saves database: %v", err)
	}
	defer store.Close()

	saves, err := store.ListSaves()
	if err != nil {
		fatal("retrieving saves: %v", err)
	}

	if len(saves) == 0 {
		fmt.Println("No saves yet.")
		fmt.Println()
		fmt.Println("Run 'rubberband run' to start a game.")
		return
	}

	maxSlotLen := len("Slot")
	for _, s := range saves {
		if len(s.Slot) > maxSlotLen {
			maxSlotLen = len(s.Slot)
		}
	}

	// Print header
	fmt.Printf("  %-*s  %-10s  %-12s  %-14s  %s\n", maxSlotLen, "Slot", "Tick", "Money", "Updated", "Game")
	fmt.Printf("  %-*s  %-10s  %-12s  %-14s  %s\n", maxSlotLen, "----", "----", "-----", "-------", "----")

	for _, s := range saves {
		fmt.Printf("  %-*s  %-10s  %-12s  %-14s  %s\n",
			maxSlotLen, s.Slot, humanize.Comma(s.Tick), formatNum(s.Money), humanize.Time(s.UpdatedAt), s.GameID[:8])
	}
}

func runSavesRm(cmd *cobra.Command, args []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fatal("opening saves database: %v", err)
	}
	defer store.Close()

	if err := store.DeleteSave(args[0]); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			fmt.Fprintf(os.Stderr, "Error: no save slot %q\n", args[0])
			os.Exit(1)
		}
		fatal("%v", err)
	}
	fmt.Printf("Deleted slot %s.\n", args[0])
}
