package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/rubberband/internal/registry"
)

var actCmd = &cobra.Command{
	Use:   "act [action] [args...]",
	Short: "Apply one player action to a save slot",
	Long: `Apply a player action and save the slot if the game accepted it.
Without arguments, lists the available actions.

Examples:
  rubberband act
  rubberband act buy-research basic_manufacturing
  rubberband act buy-producer bander 0 5
  rubberband act set-nano 0.25 0.25 0.25 0.25`,
	Run: runAct,
}

func init() {
	// Let actions take negative numbers without cobra reading them as flags.
	actCmd.Flags().SetInterspersed(false)
}

func runAct(cmd *cobra.Command, args []string) {
	if len(args) == 0 {
		listActions()
		return
	}

	name := args[0]
	if !registry.Exists(name) {
		fmt.Fprintf(os.Stderr, "Error: unknown action %q\n", name)
		fmt.Fprintln(os.Stderr, "Run 'rubberband act' to see available actions.")
		os.Exit(1)
	}

	s, err := openSession(flagSlot, false)
	if err != nil {
		fatal("%v", err)
	}
	defer s.Close()

	ok, err := registry.Invoke(s.game, name, args[1:])
	if err != nil {
		fatal("%v", err)
	}
	if !ok {
		fmt.Printf("%s: rejected\n", name)
		return
	}

	if err := s.persist(); err != nil {
		fatal("saving slot %q: %v", s.slot, err)
	}
	st := s.game.State()
	fmt.Printf("%s: ok (tick %d, money $%s)\n", name, st.TickCount, formatNum(st.Money))
}

func listActions() {
	actions := registry.List()

	maxLen := len("Action")
	for _, a := range actions {
		if n := len(a.Name) + 1 + len(a.Usage); n > maxLen {
			maxLen = n
		}
	}

	fmt.Println("Available actions:")
	fmt.Println()
	fmt.Printf("  %-*s  %s\n", maxLen, "Action", "Description")
	fmt.Printf("  %-*s  %s\n", maxLen, "------", "-----------")
	for _, a := range actions {
		fmt.Printf("  %-*s  %s\n", maxLen, a.Name+" "+a.Usage, a.Summary)
	}
	fmt.Println()
	fmt.Println("Run 'rubberband act <action> [args]' to apply one.")
}
