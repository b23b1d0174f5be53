package engine

import (
	"math"

	"github.com/vovakirdan/rubberband/internal/catalog"
)

// Tick advances the economy by one time unit. It does nothing once the
// game is over.
func (g *Game) Tick() {
	s := &g.state
	if s.GameOver {
		return
	}
	if s.ConsumedResources >= g.k.UniverseResourceLimit {
		s.GameOver = true
		return
	}

	s.TickCount++
	g.decayMarketing()
	g.updateMarket()

	boosts := g.NanoBoosts()
	g.rates.RubberProduction = g.runRawPhase(boosts)
	g.rates.MachineProduction = g.runManufacturingPhase(boosts)
	g.runIndustryPhase(boosts)
	g.runNanoPhase()

	g.autoBuy()
	g.autoSell()

	s.Money -= g.InventoryCost()
	s.Money -= g.MaintenanceCost()
}

func (g *Game) decayMarketing() {
	s := &g.state
	interval := g.MarketingDecayInterval()
	if interval <= 0 {
		return
	}
	if float64(s.TickCount-s.LastMarketingUpdateTick) >= interval {
		if s.MarketingLevel > 1 {
			s.MarketingLevel--
		}
		s.LastMarketingUpdateTick = s.TickCount
	}
}

func (g *Game) updateMarket() {
	s := &g.state
	if s.TickCount%int64(g.k.PriceFluctuationInterval) != 0 {
		return
	}
	w := g.k.PriceFluctuation
	s.RubberPrice *= 1 - w/2 + g.rng.Float64()*w
	s.RubberPrice = clamp(s.RubberPrice, g.k.MinRubberPrice, g.k.MaxRubberPrice)
}

// consume draws up to amount units at costPerUnit from the resource
// budget and returns how many units were covered.
func (g *Game) consume(amount, costPerUnit float64) float64 {
	maxUnits := math.Floor(g.RemainingResources() / costPerUnit)
	amount = math.Min(amount, maxUnits)
	if amount > 0 {
		g.state.ConsumedResources += amount * costPerUnit
	}
	return amount
}

func (g *Game) runRawPhase(boosts map[catalog.TierRef]float64) float64 {
	s := &g.state
	mults := EffectsOf[catalog.ProductionMultiplier](g)
	adds := EffectsOf[catalog.ProductionAdditive](g)
	spacePerRubber := g.k.SpaceCostRubber * g.spaceMultiplier()

	var produced float64
	for fi := range g.cat.Families {
		f := &g.cat.Families[fi]
		for i, n := range s.Producers[f.ID] {
			if n <= 0 || i >= len(f.Tiers) {
				continue
			}
			t := &f.Tiers[i]
			if t.Production.Output.Resource != catalog.ResourceRubber {
				continue
			}

			ref := catalog.TierRef{FamilyID: f.ID, Index: i}
			amount := t.Production.Output.Amount * g.effectiveCount(ref, n, boosts) * productionMultiplier(f, mults, adds)
			if amount <= 0 {
				continue
			}
			// Budget is drawn before the storage clamp.
			if t.ResourceCost > 0 {
				amount = g.consume(amount, t.ResourceCost)
			}
			amount = math.Min(amount, g.spaceCap(spacePerRubber))
			if amount <= 0 {
				continue
			}

			s.Rubber += amount
			s.TotalRubberProduced += amount
			produced += amount
		}
	}
	return produced
}

func (g *Game) runManufacturingPhase(boosts map[catalog.TierRef]float64) float64 {
	s := &g.state
	mults := EffectsOf[catalog.ProductionMultiplier](g)
	adds := EffectsOf[catalog.ProductionAdditive](g)
	efficiency := EffectsOf[catalog.InputEfficiency](g)

	m := g.spaceMultiplier()
	rubberSpace := g.k.SpaceCostRubber * m
	bandSpace := g.k.SpaceCostRubberband * m

	// Output may pass the storage limit only by what sells this tick,
	// shared across every tier.
	jitLeft := g.Demand()

	g.rates.TheoreticalRubberConsumption = 0
	var produced float64
	for fi := range g.cat.Families {
		f := &g.cat.Families[fi]
		for i, n := range s.Producers[f.ID] {
			if n <= 0 || i >= len(f.Tiers) {
				continue
			}
			t := &f.Tiers[i]
			if t.Production.Output.Resource != catalog.ResourceRubberband {
				continue
			}

			ref := catalog.TierRef{FamilyID: f.ID, Index: i}
			amount := t.Production.Output.Amount * g.effectiveCount(ref, n, boosts) * productionMultiplier(f, mults, adds)
			ratio := g.inputRatio(f, efficiency)

			// Converting rubber into bands can grow the stock's footprint.
			free := math.MaxFloat64
			if perUnit := bandSpace - rubberSpace*ratio; perUnit > 0 && amount > 0 {
				free = g.spaceCap(perUnit)
				if free < math.MaxFloat64 {
					amount = math.Min(amount, free+jitLeft)
				}
			}

			needed := amount * ratio
			g.rates.TheoreticalRubberConsumption += needed

			var made float64
			switch {
			case s.Rubber >= needed:
				s.Rubber -= needed
				made = amount
			case needed > 0:
				made = s.Rubber / ratio
				s.Rubber = 0
			}
			s.Rubberbands += made
			produced += made
			if free < math.MaxFloat64 && made > free {
				jitLeft = math.Max(0, jitLeft-(made-free))
			}
		}
	}
	return produced
}

func (g *Game) runIndustryPhase(boosts map[catalog.TierRef]float64) {
	s := &g.state
	mults := EffectsOf[catalog.ProductionMultiplier](g)
	adds := EffectsOf[catalog.ProductionAdditive](g)
	flats := EffectsOf[catalog.ProductionOutputFlat](g)

	for fi := range g.cat.Families {
		f := &g.cat.Families[fi]
		for i, n := range s.Producers[f.ID] {
			if n <= 0 || i >= len(f.Tiers) {
				continue
			}
			out := f.Tiers[i].Production.Output
			if out.Resource != catalog.ResourceProducer || out.FamilyID == "" {
				continue
			}
			_, target, ok := g.cat.Tier(out.FamilyID, out.TierIndex)
			if !ok {
				continue
			}

			ref := catalog.TierRef{FamilyID: f.ID, Index: i}
			amount := out.Amount * g.effectiveCount(ref, n, boosts) * productionMultiplier(f, mults, adds)
			for _, e := range flats {
				if e.Target.Matches(f) {
					amount += e.Amount * n
				}
			}
			amount = math.Floor(amount)

			unitCost := g.k.ResourceCostMachine
			if out.FamilyID == g.k.NanoSwarmFamily {
				unitCost = g.k.ResourceCostNanobot
			}
			amount = math.Min(amount, math.Floor(g.RemainingResources()/unitCost))
			if target.SpaceCost > 0 {
				amount = math.Min(amount, g.spaceCap(target.SpaceCost))
			}
			if amount <= 0 {
				continue
			}

			s.ConsumedResources += amount * unitCost
			g.ensureSlot(out.FamilyID, out.TierIndex)
			s.Producers[out.FamilyID][out.TierIndex] += amount
			s.PurchasedProducers[out.FamilyID][out.TierIndex] += amount
		}
	}
}

func (g *Game) runNanoPhase() {
	s := &g.state
	if s.NanobotFactoryCount <= 0 && (s.NanoAllocation.Nanobots <= 0 || s.NanobotCount < g.k.NanobotFactoryThreshold) {
		return
	}
	made := g.consume(g.NanobotProduction(), g.k.ResourceCostNanobot)
	if made <= 0 {
		return
	}
	s.NanobotCount += made
	s.TotalNanobotsProduced += made
}

func (g *Game) autoBuy() {
	s := &g.state
	if !s.BuyerHired || s.Rubber >= s.BuyerThreshold {
		return
	}
	amount := math.Min(s.BuyerThreshold-s.Rubber, g.k.MaxRubberNoProduction)
	if amount > 0 {
		g.buyRubber(amount, g.k.BuyerMarkup)
	}
}

func (g *Game) autoSell() {
	amount := math.Min(g.state.Rubberbands, g.Demand())
	if amount > 0 {
		g.SellRubberbands(amount)
	}
}

// ensureSlot makes sure both count maps can address a tier.
func (g *Game) ensureSlot(familyID string, index int) {
	for _, m := range []map[string][]float64{g.state.Producers, g.state.PurchasedProducers} {
		for len(m[familyID]) <= index {
			m[familyID] = append(m[familyID], 0)
		}
	}
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
