package engine

import (
	"math"

	"github.com/vovakirdan/rubberband/internal/catalog"
)

// Every action reports whether it took effect. A rejected action leaves
// the state untouched, and every action is rejected once the game is over.

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 1)
}

// BuyRubber buys up to amount rubber at the market price.
func (g *Game) BuyRubber(amount float64) bool {
	return g.buyRubber(amount, 1)
}

func (g *Game) buyRubber(amount, markup float64) bool {
	s := &g.state
	if s.GameOver || !positive(amount) {
		return false
	}

	limit := g.k.MaxRubberNoProduction + g.rates.RubberProduction
	if s.Rubber >= limit {
		return false
	}
	amount = math.Min(amount, limit-s.Rubber)

	// Until other planets are reachable, bought rubber comes out of the
	// Earth's reserves.
	if !g.hasLimit(catalog.LimitUniverse) && !g.hasLimit(catalog.LimitInfinite) {
		amount = math.Min(amount, math.Max(0, g.k.EarthResourceLimit-s.TotalRubberProduced))
	}
	amount = math.Min(amount, g.spaceCap(g.k.SpaceCostRubber*g.spaceMultiplier()))
	if amount <= 0 {
		return false
	}

	cost := amount * s.RubberPrice * markup
	if s.Money < cost {
		return false
	}
	s.Money -= cost
	s.Rubber += amount
	s.TotalRubberProduced += amount
	return true
}

// SellRubberbands sells amount rubberbands at the current price.
func (g *Game) SellRubberbands(amount float64) bool {
	s := &g.state
	if s.GameOver || !positive(amount) || s.Rubberbands < amount {
		return false
	}
	s.Rubberbands -= amount
	s.Money += amount * s.RubberbandPrice
	s.TotalRubberbandsSold += amount
	return true
}

// MakeRubberband converts rubber into amount rubberbands by hand.
func (g *Game) MakeRubberband(amount float64) bool {
	s := &g.state
	if s.GameOver || !positive(amount) {
		return false
	}
	ratio := g.k.DefaultInputRatio
	for _, e := range EffectsOf[catalog.InputEfficiency](g) {
		if e.Target.MatchesType(catalog.TypeMachine) {
			ratio *= e.RatioMultiplier
		}
	}
	needed := amount * ratio
	if s.Rubber < needed {
		return false
	}
	s.Rubber -= needed
	s.Rubberbands += amount
	return true
}

// HireBuyer hires the automatic rubber buyer.
func (g *Game) HireBuyer() bool {
	s := &g.state
	if s.GameOver || s.BuyerHired || !g.HasGlobalRule(catalog.RuleUnlockBuyer) {
		return false
	}
	if s.Money < g.k.BuyerCost {
		return false
	}
	s.Money -= g.k.BuyerCost
	s.BuyerHired = true
	return true
}

// BuyMarketing raises the marketing level by one.
func (g *Game) BuyMarketing() bool {
	s := &g.state
	if s.GameOver || !g.HasGlobalRule(catalog.RuleUnlockMarketing) {
		return false
	}
	cost := g.MarketingCost()
	if s.Money < cost {
		return false
	}
	s.Money -= cost
	s.MarketingLevel++
	s.LastMarketingUpdateTick = s.TickCount
	return true
}

// SetRubberbandPrice sets the selling price, clamped to the allowed range.
func (g *Game) SetRubberbandPrice(price float64) bool {
	if g.state.GameOver || math.IsNaN(price) {
		return false
	}
	g.state.RubberbandPrice = clamp(price, g.k.MinRubberbandPrice, g.k.MaxRubberbandPrice)
	return true
}

// SetBuyerThreshold sets the rubber stock the buyer keeps topped up.
func (g *Game) SetBuyerThreshold(amount float64) bool {
	if g.state.GameOver || math.IsNaN(amount) || amount < 0 {
		return false
	}
	g.state.BuyerThreshold = amount
	return true
}

// SetNanoAllocation assigns automation shares. Each share must lie in
// [0,1] and together they may not exceed 1.
func (g *Game) SetNanoAllocation(a NanoAllocation) bool {
	if g.state.GameOver {
		return false
	}
	for _, v := range []float64{a.RubberMachines, a.BanderMachines, a.ProductionLines, a.Nanobots} {
		if math.IsNaN(v) || v < 0 || v > 1 {
			return false
		}
	}
	if a.Sum() > 1+1e-9 {
		return false
	}
	g.state.NanoAllocation = a
	return true
}

// BuyNanobotFactory buys one nanobot factory.
func (g *Game) BuyNanobotFactory() bool {
	s := &g.state
	if s.GameOver || !s.HasResearch(g.k.NanotechResearch) {
		return false
	}
	cost := g.NanobotFactoryCost()
	if s.Money < cost {
		return false
	}
	s.Money -= cost
	s.NanobotFactoryCount++
	return true
}

// BuyResearch researches the node id.
func (g *Game) BuyResearch(id string) bool {
	s := &g.state
	if s.GameOver || s.HasResearch(id) {
		return false
	}
	r, ok := g.cat.ResearchByID(id)
	if !ok {
		return false
	}
	if r.PreconditionResearch != "" && !s.HasResearch(r.PreconditionResearch) {
		return false
	}
	if s.Money < r.Cost {
		return false
	}
	s.Money -= r.Cost
	s.Researched = append(s.Researched, id)
	return true
}

// ResearchVisible reports whether a node can currently be bought.
func (g *Game) ResearchVisible(id string) bool {
	r, ok := g.cat.ResearchByID(id)
	if !ok || g.state.HasResearch(id) {
		return false
	}
	return r.PreconditionResearch == "" || g.state.HasResearch(r.PreconditionResearch)
}
