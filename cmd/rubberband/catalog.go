package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/rubberband/internal/config"
)

var flagDumpYAML bool

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "List producers and research",
	Long: `Shows every producer family and research node of the active catalog.
With --yaml, prints the built-in catalog document as a starting point
for ~/.rubberband/catalog.yaml.`,
	Args: cobra.NoArgs,
	Run:  runCatalog,
}

func init() {
	catalogCmd.Flags().BoolVar(&flagDumpYAML, "yaml", false, "Print the built-in catalog document")
}

func runCatalog(cmd *cobra.Command, args []string) {
	if flagDumpYAML {
		os.Stdout.Write(config.DefaultYAML())
		return
	}

	cat, err := config.Load(flagCatalog)
	if err != nil {
		fatal("%v", err)
	}

	for _, f := range cat.Families {
		fmt.Printf("%s (%s):\n", f.ID, f.Type)
		fmt.Println()

		maxNameLen := len("Name")
		for _, t := range f.Tiers {
			if len(t.Name) > maxNameLen {
				maxNameLen = len(t.Name)
			}
		}

		fmt.Printf("  %-3s  %-*s  %-10s  %-6s  %s\n", "#", maxNameLen, "Name", "Cost", "Factor", "Unlocked by")
		fmt.Printf("  %-3s  %-*s  %-10s  %-6s  %s\n", "-", maxNameLen, "----", "----", "------", "-----------")
		for i, t := range f.Tiers {
			unlock := t.PreconditionResearch
			if len(t.RequiredResearch) > 0 {
				unlock = strings.Join(t.RequiredResearch, " + ")
			}
			cost := formatNum(t.InitialCost)
			if !t.ManualPurchase {
				cost = "built"
			}
			fmt.Printf("  %-3d  %-*s  %-10s  %-6g  %s\n", i, maxNameLen, t.Name, cost, t.CostFactor, unlock)
		}
		fmt.Println()
	}

	maxIDLen := len("ID")
	for _, r := range cat.Research {
		if len(r.ID) > maxIDLen {
			maxIDLen = len(r.ID)
		}
	}

	fmt.Println("Research:")
	fmt.Println()
	fmt.Printf("  %-*s  %-10s  %s\n", maxIDLen, "ID", "Cost", "Requires")
	fmt.Printf("  %-*s  %-10s  %s\n", maxIDLen, "--", "----", "--------")
	for _, r := range cat.Research {
		fmt.Printf("  %-*s  %-10s  %s\n", maxIDLen, r.ID, formatNum(r.Cost), r.PreconditionResearch)
	}

	fmt.Println()
	fmt.Println("Run 'rubberband act buy-research <id>' to research a node.")
}
