package engine

import (
	"math"

	"github.com/vovakirdan/rubberband/internal/catalog"
)

// Demand returns the rubberbands customers buy per tick at the current price.
func (g *Game) Demand() float64 {
	return g.CalculateDemand(g.state.RubberbandPrice)
}

// CalculateDemand returns the per-tick demand at price. Absent or zero
// fields of demand_marketing effects leave their factor unchanged.
func (g *Game) CalculateDemand(price float64) float64 {
	base := g.k.DemandBase
	sensitivity := g.k.DemandPriceSensitivity
	multiplier := 1.0

	for _, e := range EffectsOf[catalog.DemandMarketing](g) {
		if v := e.EffectivenessMultiplier; v != nil && *v != 0 {
			base *= *v
		}
		if v := e.PriceSensitivityMultiplier; v != nil && *v != 0 {
			sensitivity *= *v
		}
		if v := e.DemandMultiplier; v != nil && *v != 0 {
			multiplier *= *v
		}
	}

	level := float64(g.state.MarketingLevel)
	return math.Floor(math.Pow(level, base) * g.k.DemandScale * math.Exp(-price/sensitivity) * multiplier)
}

// MarketingCost is the price of the next marketing level.
func (g *Game) MarketingCost() float64 {
	return g.k.MarketingBaseCost * math.Pow(g.k.MarketingCostFactor, float64(g.state.MarketingLevel))
}

// MarketingDecayInterval is the number of ticks after which the marketing
// level drops by one. Zero means marketing never decays.
func (g *Game) MarketingDecayInterval() float64 {
	multiplier := 1.0
	for _, e := range EffectsOf[catalog.DemandMarketing](g) {
		if e.DecayMultiplier != nil {
			multiplier *= *e.DecayMultiplier
		}
	}
	if multiplier == 0 {
		return 0
	}
	return float64(g.k.MarketingDecayInterval) * float64(g.state.MarketingLevel) * multiplier
}

// spaceMultiplier scales the space taken by stock and the inventory cost.
func (g *Game) spaceMultiplier() float64 {
	m := 1.0
	for _, e := range EffectsOf[catalog.StorageCost](g) {
		m *= e.Multiplier
	}
	return m
}

// UsedStorageSpace is the area taken by stock and producers.
func (g *Game) UsedStorageSpace() float64 {
	m := g.spaceMultiplier()
	space := (g.state.Rubber*g.k.SpaceCostRubber + g.state.Rubberbands*g.k.SpaceCostRubberband) * m

	for _, f := range g.cat.Families {
		for i, n := range g.state.Producers[f.ID] {
			if n <= 0 || i >= len(f.Tiers) {
				continue
			}
			space += n * f.Tiers[i].SpaceCost
		}
	}
	return space
}

// StorageLimit is the total usable area. It is +Inf once storage is unlimited.
func (g *Game) StorageLimit() float64 {
	switch {
	case g.hasLimit(catalog.LimitInfinite):
		return math.Inf(1)
	case g.hasLimit(catalog.LimitUniverse):
		return g.k.GalaxySurfaceLimit
	default:
		return g.k.LandSurfaceLimit
	}
}

// availableSpace is the free storage area, +Inf when storage is unlimited.
func (g *Game) availableSpace() float64 {
	limit := g.StorageLimit()
	if math.IsInf(limit, 1) {
		return limit
	}
	return math.Max(0, limit-g.UsedStorageSpace())
}

// spaceCap returns how many units taking perUnit space still fit.
func (g *Game) spaceCap(perUnit float64) float64 {
	avail := g.availableSpace()
	if math.IsInf(avail, 1) || perUnit <= 0 {
		return math.MaxFloat64
	}
	return math.Floor(avail / perUnit)
}

// ResourceLimit is the consumable-resource budget currently unlocked.
func (g *Game) ResourceLimit() float64 {
	switch {
	case g.hasLimit(catalog.LimitInfinite):
		return math.MaxFloat64
	case g.hasLimit(catalog.LimitUniverse):
		return g.k.UniverseResourceLimit
	case g.hasLimit(catalog.LimitEarth):
		return g.k.EarthResourceLimit
	default:
		return g.k.OilReservesLimit
	}
}

// RemainingResources is what is left of the resource budget.
func (g *Game) RemainingResources() float64 {
	return math.Max(0, g.ResourceLimit()-g.state.ConsumedResources)
}

// ResourceUnitName names the resource currently being consumed.
func (g *Game) ResourceUnitName() string {
	switch {
	case g.hasLimit(catalog.LimitUniverse):
		return "Universe Resources"
	case g.hasLimit(catalog.LimitEarth):
		return "Earth Resources"
	default:
		return "Oil (l)"
	}
}

// MaintenanceCost is the per-tick upkeep of all owned producers.
func (g *Game) MaintenanceCost() float64 {
	var cost float64
	for _, f := range g.cat.Families {
		for i, n := range g.state.Producers[f.ID] {
			if n <= 0 || i >= len(f.Tiers) {
				continue
			}
			cost += n * f.Tiers[i].MaintenanceCost
		}
	}
	return cost
}

// InventoryCost is the per-tick penalty for stock above the free limits.
func (g *Game) InventoryCost() float64 {
	k := g.k
	var cost float64
	if excess := g.state.Rubber - k.InventoryLimitRubber; excess > 0 {
		cost += k.InventoryCostScale * math.Pow(excess/k.InventoryCostDivisorRubber, k.InventoryCostExponent)
	}
	if excess := g.state.Rubberbands - k.InventoryLimitRubberbands; excess > 0 {
		cost += k.InventoryCostScale * math.Pow(excess/k.InventoryCostDivisorRubberbands, k.InventoryCostExponent)
	}
	for _, e := range EffectsOf[catalog.StorageCost](g) {
		cost *= e.Multiplier
	}
	return cost
}

// Income projects sales revenue for the next tick from stock and the
// last tick's production.
func (g *Game) Income() float64 {
	rubberAvailable := g.state.Rubber + g.rates.RubberProduction
	bandsProduced := math.Min(g.rates.MachineProduction, rubberAvailable)
	sold := math.Min(g.state.Rubberbands+bandsProduced, g.Demand())
	return sold * g.state.RubberbandPrice
}

// Profit is income minus upkeep.
func (g *Game) Profit() float64 {
	return g.Income() - g.MaintenanceCost() - g.InventoryCost()
}

// RubberShortage reports a stalled economy: no rubber, no way to make
// any and no money to buy it.
func (g *Game) RubberShortage() bool {
	s := &g.state
	if s.Rubber >= 1 || g.rates.RubberProduction > 0 || s.BuyerHired {
		return false
	}
	if s.Money >= 100*s.RubberPrice {
		return false
	}
	for _, f := range g.cat.Families {
		if f.Type != catalog.TypeRubberSource {
			continue
		}
		for _, n := range s.Producers[f.ID] {
			if n > 0 {
				return false
			}
		}
	}
	return true
}

// NanobotFactoryCost is the price of the next nanobot factory.
func (g *Game) NanobotFactoryCost() float64 {
	return math.Floor(g.k.NanobotFactoryCost * math.Pow(g.k.NanobotFactoryCostFactor, float64(g.state.NanobotFactoryCount)))
}

// NanobotProduction is the automation units factories build per tick
// before the resource budget clamp.
func (g *Game) NanobotProduction() float64 {
	factories := float64(g.state.NanobotFactoryCount)
	if factories <= 0 {
		return 0
	}
	allocated := g.state.NanobotCount * g.state.NanoAllocation.Nanobots
	efficiency := allocated / (factories * g.k.NanobotFactoryThreshold)
	return factories * g.k.NanobotFactoryOutput * (1 + efficiency)
}
