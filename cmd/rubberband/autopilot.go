package main

import (
	"github.com/vovakirdan/rubberband/internal/catalog"
	"github.com/vovakirdan/rubberband/internal/engine"
)

// Spending shares of current money per decision.
const (
	researchReserve  = 1.5
	producerBudget   = 0.25
	marketingBudget  = 0.1
	buyerThreshold   = 2000
	priceStep        = 1.1
	handmadeFallback = 10
)

// autopilot makes one round of purchases and price changes. It only uses
// the public player actions, so anything it does a player could do too.
func autopilot(g *engine.Game) {
	if g.GameOver() {
		return
	}
	cat := g.Catalog()

	for _, r := range cat.Research {
		if g.ResearchVisible(r.ID) && g.State().Money >= r.Cost*researchReserve {
			g.BuyResearch(r.ID)
		}
	}

	st := g.State()
	if !st.BuyerHired && g.HasGlobalRule(catalog.RuleUnlockBuyer) && st.Money >= cat.Constants.BuyerCost*2 {
		if g.HireBuyer() {
			g.SetBuyerThreshold(buyerThreshold)
		}
	}
	if g.HasGlobalRule(catalog.RuleUnlockMarketing) && g.MarketingCost() <= g.State().Money*marketingBudget {
		g.BuyMarketing()
	}

	// Keep some rubber around until a buyer or the raw phase takes over.
	if st := g.State(); !st.BuyerHired && st.Rubber < buyerThreshold/2 {
		g.BuyRubber(buyerThreshold/2 - st.Rubber)
	}

	if g.Profit() >= 0 {
		for fi := len(cat.Families) - 1; fi >= 0; fi-- {
			f := &cat.Families[fi]
			for i := len(f.Tiers) - 1; i >= 0; i-- {
				if g.ProducerCost(f.ID, i, 1) <= g.State().Money*producerBudget {
					g.BuyProducer(f.ID, i, 1)
				}
			}
		}
		st := g.State()
		if st.HasResearch(cat.Constants.NanotechResearch) && g.NanobotFactoryCost() <= g.State().Money*producerBudget {
			g.BuyNanobotFactory()
		}
	}

	if g.Rates().MachineProduction == 0 {
		g.MakeRubberband(handmadeFallback)
	}

	tunePrice(g)
}

// tunePrice nudges the rubberband price towards the best revenue for the
// rubberbands available next tick.
func tunePrice(g *engine.Game) {
	st := g.State()
	supply := st.Rubberbands + g.Rates().MachineProduction
	if supply <= 0 {
		return
	}
	revenue := func(price float64) float64 {
		return price * min(g.CalculateDemand(price), supply)
	}

	best := st.RubberbandPrice
	for _, p := range []float64{st.RubberbandPrice / priceStep, st.RubberbandPrice * priceStep} {
		if revenue(p) > revenue(best) {
			best = p
		}
	}
	if best != st.RubberbandPrice {
		g.SetRubberbandPrice(best)
	}
}
