package main

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the economy of a save slot",
	Long: `Print money, stock, producers, limits and research of a save slot.

Examples:
  rubberband show
  rubberband show --slot speedrun`,
	Args: cobra.NoArgs,
	Run:  runShow,
}

func runShow(cmd *cobra.Command, args []string) {
	s, err := openSession(flagSlot, false)
	if err != nil {
		fatal("%v", err)
	}
	defer s.Close()

	g := s.game
	st := g.State()
	cat := g.Catalog()

	fmt.Printf("Slot %s - tick %s", s.slot, humanize.Comma(st.TickCount))
	if st.GameOver {
		fmt.Print(" (game over)")
	}
	fmt.Println()
	fmt.Println()

	row := func(label, value string) {
		fmt.Printf("  %-22s %s\n", label, value)
	}
	row("Money", "$"+formatNum(st.Money))
	row("Income / tick", "$"+formatNum(g.Income()))
	row("Upkeep / tick", fmt.Sprintf("$%s maintenance, $%s inventory", formatNum(g.MaintenanceCost()), formatNum(g.InventoryCost())))
	row("Profit / tick", "$"+formatNum(g.Profit()))
	row("Rubber", fmt.Sprintf("%s @ $%s", formatNum(st.Rubber), formatNum(st.RubberPrice)))
	row("Rubberbands", fmt.Sprintf("%s @ $%s", formatNum(st.Rubberbands), formatNum(st.RubberbandPrice)))
	row("Demand / tick", formatNum(g.Demand()))
	row("Marketing", fmt.Sprintf("level %d, next $%s", st.MarketingLevel, formatNum(g.MarketingCost())))
	if st.BuyerHired {
		row("Buyer", "keeps "+formatNum(st.BuyerThreshold)+" rubber")
	}
	row("Storage", fmt.Sprintf("%s / %s", formatNum(g.UsedStorageSpace()), formatNum(g.StorageLimit())))
	row("Resources", fmt.Sprintf("%s %s left", formatNum(g.RemainingResources()), g.ResourceUnitName()))
	if g.RubberShortage() {
		row("Warning", "machines are short of rubber")
	}
	if st.NanobotFactoryCount > 0 || st.NanobotCount > 0 {
		row("Nanobots", fmt.Sprintf("%s from %d factories (+%s/tick)", formatNum(st.NanobotCount), st.NanobotFactoryCount, formatNum(g.NanobotProduction())))
		a := st.NanoAllocation
		row("Nano allocation", fmt.Sprintf("rubber %.2f, machines %.2f, lines %.2f, nanobots %.2f",
			a.RubberMachines, a.BanderMachines, a.ProductionLines, a.Nanobots))
	}

	fmt.Println()
	fmt.Printf("  %-24s  %-12s  %-12s  %s\n", "Producer", "Owned", "Next cost", "Output")
	fmt.Printf("  %-24s  %-12s  %-12s  %s\n", "--------", "-----", "---------", "------")
	for _, f := range cat.Families {
		for i := range f.Tiers {
			t := &f.Tiers[i]
			owned := st.Producers[f.ID][i]
			if owned == 0 && !g.ProducerVisible(t) {
				continue
			}
			cost := formatNum(g.ProducerCost(f.ID, i, 1))
			if g.ProducerBeingProduced(f.ID, i) {
				cost = "built"
			} else if !t.ManualPurchase {
				cost = "-"
			}
			fmt.Printf("  %-24s  %-12s  %-12s  %s\n", t.Name, formatNum(owned), cost, formatNum(g.ProducerOutput(f.ID, i)))
		}
	}

	fmt.Println()
	names := make([]string, 0, len(st.Researched))
	for _, id := range st.Researched {
		if r, ok := cat.ResearchByID(id); ok {
			names = append(names, r.Name)
		}
	}
	fmt.Printf("Research (%d/%d): %s\n", len(st.Researched), len(cat.Research), strings.Join(names, ", "))

	var next []string
	for _, r := range cat.Research {
		if g.ResearchVisible(r.ID) {
			next = append(next, fmt.Sprintf("%s ($%s)", r.ID, formatNum(r.Cost)))
		}
	}
	if len(next) > 0 {
		fmt.Printf("Available: %s\n", strings.Join(next, ", "))
	}
}
