// rubberband is a headless driver for the rubberband idle economy.
//
// Usage:
//
//	rubberband run                 - Advance a save slot in real time
//	rubberband act <action> [args] - Apply one player action to a slot
//	rubberband show                - Print the economy of a slot
//	rubberband catalog             - List producers and research
//	rubberband saves               - List save slots
//	rubberband runs                - Show the best recorded runs
//	rubberband export <file>       - Write a slot to a snapshot file
//	rubberband import <file>       - Load a snapshot file into a slot
//
// Global flags:
//
//	--catalog <path> - Catalog document (default: search order, then embedded)
//	--db <path>      - Database path (default: ~/.rubberband/saves.db)
//	--slot <name>    - Save slot (default: main)
//	--seed <value>   - Market RNG seed for new games
//	--log-level      - debug, info, warn or error
package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/rubberband/internal/config"
	"github.com/vovakirdan/rubberband/internal/engine"
	"github.com/vovakirdan/rubberband/internal/storage"
)

var (
	// Global flags
	flagCatalog  string
	flagDBPath   string
	flagSlot     string
	flagSeed     int64
	flagLogLevel string

	logger = log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.TimeOnly,
		Prefix:          "rubberband",
	})
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "rubberband",
	Short: "Rubberband - an idle economy in your terminal",
	Long: `Rubberband simulates a rubberband factory that grows from hand-made
bands to a galaxy-spanning nanobot swarm.

Available commands:
  run      - Advance a save slot in real time
  act      - Apply one player action
  show     - Print the economy of a slot
  catalog  - List producers and research
  saves    - List or remove save slots
  runs     - Show the best recorded runs
  export   - Write a slot to a snapshot file
  import   - Load a snapshot file into a slot

Examples:
  rubberband act buy-research basic_manufacturing
  rubberband act buy-producer bander 0 max
  rubberband run --ticks 600 --autopilot
  rubberband show --slot main`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level, err := log.ParseLevel(flagLogLevel)
		if err != nil {
			return err
		}
		logger.SetLevel(level)
		log.SetDefault(logger)
		return nil
	},
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagCatalog, "catalog", "", "Path to catalog document")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.rubberband/saves.db", "Path to saves database")
	rootCmd.PersistentFlags().StringVar(&flagSlot, "slot", "main", "Save slot")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed for new games (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level (debug, info, warn, error)")

	// Add subcommands
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(actCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(catalogCmd)
	rootCmd.AddCommand(savesCmd)
	rootCmd.AddCommand(runsCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
}

// fatal prints an error and exits.
func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}

func newGame() (*engine.Game, error) {
	cat, err := config.Load(flagCatalog)
	if err != nil {
		return nil, err
	}
	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return engine.New(engine.Options{Catalog: cat, Seed: seed, Logger: logger}), nil
}

// session is a game bound to a save slot.
type session struct {
	store  *storage.Store
	game   *engine.Game
	slot   string
	gameID string
}

// openSession opens the database and loads the slot. A missing slot
// starts a new game; an unreadable one is logged and replaced.
func openSession(slot string, fresh bool) (*session, error) {
	g, err := newGame()
	if err != nil {
		return nil, err
	}
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return nil, err
	}

	s := &session{store: store, game: g, slot: slot}
	if fresh {
		return s, nil
	}

	save, err := store.LoadGame(slot)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		logger.Debug("starting new game", "slot", slot)
	case err != nil:
		logger.Warn("cannot read save slot, starting over", "slot", slot, "err", err)
	default:
		s.gameID = save.GameID
		if err := g.Load(save.Data); err != nil {
			logger.Warn("save slot is unusable, starting over", "slot", slot)
		} else {
			logger.Debug("loaded save", "slot", slot, "tick", save.Tick)
		}
	}
	return s, nil
}

// persist writes the game back to its slot.
func (s *session) persist() error {
	data, err := s.game.Save()
	if err != nil {
		return err
	}
	st := s.game.State()
	info, written, err := s.store.SaveGame(s.slot, st.TickCount, st.Money, data)
	if err != nil {
		return err
	}
	s.gameID = info.GameID
	if written {
		logger.Debug("saved", "slot", s.slot, "tick", info.Tick, "digest", info.Digest[:12])
	}
	return nil
}

func (s *session) Close() error {
	return s.store.Close()
}
