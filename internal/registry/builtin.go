package registry

import (
	"fmt"
	"strconv"

	"github.com/vovakirdan/rubberband/internal/engine"
)

func init() {
	Register(Action{
		Name: "buy-producer", Usage: "<family> <tier> [amount|max]", MinArgs: 2, MaxArgs: 3,
		Summary: "Buy producers of a tier",
		Run: func(g *engine.Game, args []string) (bool, error) {
			tier, err := parseTier(args[1])
			if err != nil {
				return false, err
			}
			amount := 1.0
			if len(args) == 3 {
				if args[2] == "max" {
					amount = g.MaxAffordableProducer(args[0], tier)
				} else if amount, err = parseAmount(args[2]); err != nil {
					return false, err
				}
			}
			return g.BuyProducer(args[0], tier, amount), nil
		},
	})

	Register(Action{
		Name: "sell-producer", Usage: "<family> <tier> [amount]", MinArgs: 2, MaxArgs: 3,
		Summary: "Sell producers of a tier for half their marginal cost",
		Run: func(g *engine.Game, args []string) (bool, error) {
			tier, err := parseTier(args[1])
			if err != nil {
				return false, err
			}
			amount := 1.0
			if len(args) == 3 {
				if amount, err = parseAmount(args[2]); err != nil {
					return false, err
				}
			}
			return g.SellProducer(args[0], tier, amount), nil
		},
	})

	Register(Action{
		Name: "buy-research", Usage: "<id>", MinArgs: 1, MaxArgs: 1,
		Summary: "Research a node",
		Run: func(g *engine.Game, args []string) (bool, error) {
			return g.BuyResearch(args[0]), nil
		},
	})

	amountAction("buy-rubber", "Buy rubber at the market price", (*engine.Game).BuyRubber)
	amountAction("sell-rubberbands", "Sell rubberbands at the current price", (*engine.Game).SellRubberbands)
	amountAction("make-rubberbands", "Make rubberbands by hand", (*engine.Game).MakeRubberband)
	amountAction("set-price", "Set the rubberband price", (*engine.Game).SetRubberbandPrice)
	amountAction("set-threshold", "Set the stock the buyer keeps topped up", (*engine.Game).SetBuyerThreshold)

	simpleAction("hire-buyer", "Hire the automatic rubber buyer", (*engine.Game).HireBuyer)
	simpleAction("buy-marketing", "Raise the marketing level", (*engine.Game).BuyMarketing)
	simpleAction("buy-nanobot-factory", "Buy a nanobot factory", (*engine.Game).BuyNanobotFactory)

	Register(Action{
		Name: "set-nano", Usage: "<rubber> <machines> <lines> <nanobots>", MinArgs: 4, MaxArgs: 4,
		Summary: "Split automation units between categories",
		Run: func(g *engine.Game, args []string) (bool, error) {
			var shares [4]float64
			for i, s := range args {
				v, err := strconv.ParseFloat(s, 64)
				if err != nil {
					return false, fmt.Errorf("invalid share %q", s)
				}
				shares[i] = v
			}
			return g.SetNanoAllocation(engine.NanoAllocation{
				RubberMachines:  shares[0],
				BanderMachines:  shares[1],
				ProductionLines: shares[2],
				Nanobots:        shares[3],
			}), nil
		},
	})

	Register(Action{
		Name: "tick", Usage: "[count]", MinArgs: 0, MaxArgs: 1,
		Summary: "Advance the economy",
		Run: func(g *engine.Game, args []string) (bool, error) {
			n := 1
			if len(args) == 1 {
				v, err := strconv.Atoi(args[0])
				if err != nil || v < 1 {
					return false, fmt.Errorf("invalid tick count %q", args[0])
				}
				n = v
			}
			if g.GameOver() {
				return false, nil
			}
			for i := 0; i < n; i++ {
				g.Tick()
			}
			return true, nil
		},
	})
}

func amountAction(name, summary string, fn func(*engine.Game, float64) bool) {
	Register(Action{
		Name: name, Usage: "<amount>", MinArgs: 1, MaxArgs: 1,
		Summary: summary,
		Run: func(g *engine.Game, args []string) (bool, error) {
			v, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return false, fmt.Errorf("invalid amount %q", args[0])
			}
			return fn(g, v), nil
		},
	})
}

func simpleAction(name, summary string, fn func(*engine.Game) bool) {
	Register(Action{
		Name: name, Usage: "", MinArgs: 0, MaxArgs: 0,
		Summary: summary,
		Run: func(g *engine.Game, _ []string) (bool, error) {
			return fn(g), nil
		},
	})
}

func parseTier(s string) (int, error) {
	v, err := strconv.Atoi(s)
	if err != nil || v < 0 {
		return 0, fmt.Errorf("invalid tier index %q", s)
	}
	return v, nil
}

func parseAmount(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q", s)
	}
	return v, nil
}
