package engine

import (
	"math"

	"github.com/vovakirdan/rubberband/internal/catalog"
)

// ProducerVisible reports whether the research gates of a tier are met.
// Required research takes precedence over the precondition.
func (g *Game) ProducerVisible(t *catalog.Tier) bool {
	if len(t.RequiredResearch) > 0 {
		for _, id := range t.RequiredResearch {
			if !g.state.HasResearch(id) {
				return false
			}
		}
		return true
	}
	return t.PreconditionResearch == "" || g.state.HasResearch(t.PreconditionResearch)
}

// ProducerBeingProduced reports whether an owned production line is
// building the given tier.
func (g *Game) ProducerBeingProduced(familyID string, index int) bool {
	for _, f := range g.cat.Families {
		for i, n := range g.state.Producers[f.ID] {
			if n <= 0 || i >= len(f.Tiers) {
				continue
			}
			out := f.Tiers[i].Production.Output
			if out.Resource == catalog.ResourceProducer && out.FamilyID == familyID && out.TierIndex == index {
				return true
			}
		}
	}
	return false
}

// ProducerCost is the price of amount more units of a tier at the
// current purchased count. Unknown tiers cost +Inf.
func (g *Game) ProducerCost(familyID string, index int, amount float64) float64 {
	_, t, ok := g.cat.Tier(familyID, index)
	if !ok {
		return math.Inf(1)
	}
	return catalog.Cost(t, amount, g.count(g.state.PurchasedProducers, familyID, index))
}

// MaxAffordableProducer is how many units of a tier the current money buys.
func (g *Game) MaxAffordableProducer(familyID string, index int) float64 {
	_, t, ok := g.cat.Tier(familyID, index)
	if !ok {
		return 0
	}
	return catalog.MaxAffordable(t, g.state.Money, g.count(g.state.PurchasedProducers, familyID, index))
}

// ProducerOutput is the per-unit output of a tier under current effects
// and automation boosts, for display.
func (g *Game) ProducerOutput(familyID string, index int) float64 {
	f, t, ok := g.cat.Tier(familyID, index)
	if !ok {
		return 0
	}
	out := t.Production.Output.Amount * productionMultiplier(f,
		EffectsOf[catalog.ProductionMultiplier](g),
		EffectsOf[catalog.ProductionAdditive](g))

	if n := g.count(g.state.Producers, familyID, index); n > 0 {
		ref := catalog.TierRef{FamilyID: familyID, Index: index}
		out *= g.effectiveCount(ref, n, g.NanoBoosts()) / n
	}
	return out
}

// BuyProducer buys amount units of a tier.
func (g *Game) BuyProducer(familyID string, index int, amount float64) bool {
	s := &g.state
	if s.GameOver {
		return false
	}
	_, t, ok := g.cat.Tier(familyID, index)
	if !ok || !positive(amount) || amount != math.Floor(amount) {
		return false
	}
	if g.ProducerBeingProduced(familyID, index) || !t.ManualPurchase || !g.ProducerVisible(t) {
		return false
	}
	if need := t.SpaceCost * amount; need > 0 && g.UsedStorageSpace()+need > g.StorageLimit() {
		return false
	}

	cost := g.ProducerCost(familyID, index, amount)
	if s.Money < cost {
		return false
	}
	s.Money -= cost
	g.ensureSlot(familyID, index)
	s.Producers[familyID][index] += amount
	s.PurchasedProducers[familyID][index] += amount
	return true
}

// SellProducer sells amount units of a tier. Only units that were bought
// are refunded, at half their marginal cost.
func (g *Game) SellProducer(familyID string, index int, amount float64) bool {
	s := &g.state
	if s.GameOver {
		return false
	}
	_, t, ok := g.cat.Tier(familyID, index)
	if !ok || !positive(amount) || amount != math.Floor(amount) {
		return false
	}
	if g.ProducerBeingProduced(familyID, index) {
		return false
	}
	owned := g.count(s.Producers, familyID, index)
	if owned < amount {
		return false
	}

	purchased := g.count(s.PurchasedProducers, familyID, index)
	fromPurchased := math.Min(amount, purchased)
	var refund float64
	if fromPurchased > 0 {
		refund = math.Floor(g.k.SellRefundRatio * catalog.Cost(t, fromPurchased, purchased-fromPurchased))
		s.PurchasedProducers[familyID][index] = purchased - fromPurchased
	}

	s.Producers[familyID][index] = owned - amount
	// Owned may never drop below purchased.
	if p := s.PurchasedProducers[familyID]; index < len(p) && p[index] > s.Producers[familyID][index] {
		p[index] = s.Producers[familyID][index]
	}
	s.Money += refund
	return true
}
