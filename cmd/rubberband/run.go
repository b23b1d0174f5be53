package main

import (
	"context"
	"fmt"
	"math"
	"os"
	"os/signal"
	"syscall"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"golang.org/x/term"
	"golang.org/x/time/rate"

	"github.com/vovakirdan/rubberband/internal/storage"
)

var (
	flagTicks     int64
	flagTPS       int
	flagAutosave  int64
	flagAutopilot bool
	flagNew       bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Advance a save slot in real time",
	Long: `Advance the economy of a save slot, one tick per 1/tps seconds.
The slot is saved periodically and when the run stops. Interrupt with Ctrl+C.

Examples:
  rubberband run --ticks 600
  rubberband run --tps 0 --ticks 100000 --autopilot
  rubberband run --slot speedrun --new`,
	Args: cobra.NoArgs,
	Run:  runRun,
}

func init() {
	runCmd.Flags().Int64Var(&flagTicks, "ticks", 0, "Stop after this many ticks (0 = until interrupted)")
	runCmd.Flags().IntVar(&flagTPS, "tps", 1, "Ticks per second (0 = as fast as possible)")
	runCmd.Flags().Int64Var(&flagAutosave, "autosave", 60, "Save every N ticks (0 = only at the end)")
	runCmd.Flags().BoolVar(&flagAutopilot, "autopilot", false, "Let a simple strategy play")
	runCmd.Flags().BoolVar(&flagNew, "new", false, "Start a new game in the slot")
}

func runRun(cmd *cobra.Command, args []string) {
	if flagTicks == 0 && flagTPS == 0 {
		fatal("--tps 0 needs --ticks")
	}

	s, err := openSession(flagSlot, flagNew)
	if err != nil {
		fatal("%v", err)
	}
	defer s.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// One token per tick. With --tps 0 the limiter never blocks.
	limiter := rate.NewLimiter(rate.Inf, 0)
	if flagTPS > 0 {
		limiter = rate.NewLimiter(rate.Limit(flagTPS), 1)
	}

	status := term.IsTerminal(int(os.Stdout.Fd()))
	g := s.game
	var ran int64

	for flagTicks == 0 || ran < flagTicks {
		if err := limiter.Wait(ctx); err != nil {
			break
		}

		if flagAutopilot {
			autopilot(g)
		}
		g.Tick()
		ran++

		if status {
			fmt.Printf("\r\033[K%s", statusLine(g.State().TickCount, g.State().Money, g.State().Rubberbands, g.Rates().MachineProduction))
		}
		if flagAutosave > 0 && ran%flagAutosave == 0 {
			if err := s.persist(); err != nil {
				logger.Error("autosave failed", "err", err)
			}
		}
		if g.GameOver() {
			break
		}
	}
	if status {
		fmt.Println()
	}

	if err := s.persist(); err != nil {
		fatal("saving slot %q: %v", s.slot, err)
	}

	snap := g.Snapshot()
	if _, err := s.store.RecordRun(storage.RunEntry{
		GameID:     s.gameID,
		Slot:       s.slot,
		Ticks:      ran,
		Money:      snap.Money,
		Researched: snap.Researched,
		GameOver:   snap.GameOver,
	}); err != nil {
		logger.Warn("cannot record run", "err", err)
	}

	logger.Info("run finished", "slot", s.slot, "ticks", ran, "tick", snap.Tick, "money", formatNum(snap.Money), "game_over", snap.GameOver)
}

func statusLine(tick int64, money, bands, rate float64) string {
	return fmt.Sprintf("tick %s  money $%s  rubberbands %s  +%s/tick",
		humanize.Comma(tick), formatNum(money), formatNum(bands), formatNum(rate))
}

// formatNum renders small numbers with separators and large ones with SI
// prefixes.
func formatNum(v float64) string {
	switch {
	case math.IsInf(v, 0) || math.IsNaN(v):
		return fmt.Sprint(v)
	case math.Abs(v) < 1e6:
		return humanize.CommafWithDigits(v, 2)
	case math.Abs(v) < 1e27:
		return humanize.SIWithDigits(v, 2, "")
	default:
		return fmt.Sprintf("%.3g", v)
	}
}
