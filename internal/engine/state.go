package engine

import (
	"slices"

	"github.com/vovakirdan/rubberband/internal/catalog"
)

// NanoAllocation is the share of automation units assigned to each
// category. Shares lie in [0,1] and sum to at most 1.
type NanoAllocation struct {
	RubberMachines  float64
	BanderMachines  float64
	ProductionLines float64
	Nanobots        float64
}

// Sum returns the total allocated share.
func (a NanoAllocation) Sum() float64 {
	return a.RubberMachines + a.BanderMachines + a.ProductionLines + a.Nanobots
}

// forType returns the share that boosts producers of the given type.
func (a NanoAllocation) forType(pt catalog.ProducerType) float64 {
	switch pt {
	case catalog.TypeRubberSource:
		return a.RubberMachines
	case catalog.TypeMachine:
		return a.BanderMachines
	case catalog.TypeProductionLine:
		return a.ProductionLines
	}
	return 0
}

// DefaultNanoAllocation spreads automation evenly.
func DefaultNanoAllocation() NanoAllocation {
	return NanoAllocation{RubberMachines: 0.25, BanderMachines: 0.25, ProductionLines: 0.25, Nanobots: 0.25}
}

// State is the complete mutable game state.
type State struct {
	Money       float64 // may go negative
	Rubberbands float64
	Rubber      float64

	// Producers and PurchasedProducers map a family id to per-tier counts.
	// Purchased counts drive the cost curve and never exceed owned counts.
	Producers          map[string][]float64
	PurchasedProducers map[string][]float64

	TotalRubberbandsSold float64
	BuyerHired           bool
	BuyerThreshold       float64
	RubberPrice          float64
	RubberbandPrice      float64

	TickCount               int64
	MarketingLevel          int
	LastMarketingUpdateTick int64

	// Researched lists node ids in acquisition order.
	Researched []string

	GameStartTime         int64 // unix milliseconds
	TotalRubberProduced   float64
	TotalNanobotsProduced float64
	ConsumedResources     float64
	GameOver              bool

	NanobotCount        float64
	NanobotFactoryCount int
	NanoAllocation      NanoAllocation
}

// HasResearch reports whether the node id has been researched.
func (s *State) HasResearch(id string) bool {
	return slices.Contains(s.Researched, id)
}

// Clone returns a deep copy of s.
func (s *State) Clone() State {
	c := *s
	c.Producers = cloneCounts(s.Producers)
	c.PurchasedProducers = cloneCounts(s.PurchasedProducers)
	c.Researched = slices.Clone(s.Researched)
	return c
}

func cloneCounts(m map[string][]float64) map[string][]float64 {
	if m == nil {
		return nil
	}
	out := make(map[string][]float64, len(m))
	for k, v := range m {
		out[k] = slices.Clone(v)
	}
	return out
}

// zeroCounts returns an all-zero count map covering every family.
func zeroCounts(cat *catalog.Catalog) map[string][]float64 {
	m := make(map[string][]float64, len(cat.Families))
	for _, f := range cat.Families {
		m[f.ID] = make([]float64, len(f.Tiers))
	}
	return m
}

// Rates are the per-tick production figures of the last tick. They are
// not persisted.
type Rates struct {
	RubberProduction             float64
	MachineProduction            float64
	TheoreticalRubberConsumption float64
}
