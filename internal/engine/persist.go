package engine

import (
	"math"
	"slices"

	"github.com/vovakirdan/rubberband/internal/savegame"
)

// Record returns the current state as a flat persisted record. The record
// shares no collections with the live state.
func (g *Game) Record() (savegame.Record, error) {
	d := toData(g.state.Clone())
	return d.Record()
}

// Save serializes the current state.
func (g *Game) Save() ([]byte, error) {
	r, err := g.Record()
	if err != nil {
		return nil, err
	}
	return r.Marshal()
}

// SaveString is Save as text.
func (g *Game) SaveString() (string, error) {
	b, err := g.Save()
	return string(b), err
}

// Digest is the blake3 digest of the serialized state.
func (g *Game) Digest() (string, error) {
	b, err := g.Save()
	if err != nil {
		return "", err
	}
	return savegame.Digest(b), nil
}

// Load restores a persisted record given as text, bytes or a decoded
// object. Older layouts are migrated and missing fields take their
// defaults. On failure the game is reset to a fresh state and the error
// is returned; a failed load never applies partially.
func (g *Game) Load(src any) error {
	s, err := g.decode(src)
	if err != nil {
		g.logger.Error("failed to load save game", "err", err)
		g.Reset()
		return err
	}
	g.rng = newRand(g.seed)
	g.state = s
	g.rates = Rates{}
	return nil
}

func (g *Game) decode(src any) (State, error) {
	r, err := savegame.Parse(src)
	if err != nil {
		return State{}, err
	}
	if applied := savegame.Migrate(r, g.cat); len(applied) > 0 {
		g.logger.Debug("migrated save game", "steps", applied)
	}
	if err := savegame.Validate(r); err != nil {
		return State{}, err
	}
	d, err := savegame.Decode(r, toData(g.defaultState()))
	if err != nil {
		return State{}, err
	}

	s := fromData(d)
	g.normalize(&s)
	return s, nil
}

// normalize makes a decoded state consistent with the catalog.
func (g *Game) normalize(s *State) {
	for _, m := range []map[string][]float64{s.Producers, s.PurchasedProducers} {
		for id := range m {
			if _, ok := g.cat.FamilyByID(id); !ok {
				g.logger.Debug("dropping unknown family from save", "family", id)
				delete(m, id)
			}
		}
	}

	for _, f := range g.cat.Families {
		owned := fitCounts(s.Producers[f.ID], len(f.Tiers))
		purchased := fitCounts(s.PurchasedProducers[f.ID], len(f.Tiers))
		for i := range purchased {
			purchased[i] = math.Min(purchased[i], owned[i])
		}
		s.Producers[f.ID] = owned
		s.PurchasedProducers[f.ID] = purchased
	}

	s.RubberPrice = clamp(s.RubberPrice, g.k.MinRubberPrice, g.k.MaxRubberPrice)
	s.RubberbandPrice = clamp(s.RubberbandPrice, g.k.MinRubberbandPrice, g.k.MaxRubberbandPrice)
	if s.MarketingLevel < 1 {
		s.MarketingLevel = 1
	}
	if s.NanoAllocation.Sum() > 1+1e-9 {
		s.NanoAllocation = DefaultNanoAllocation()
	}

	seen := make(map[string]bool, len(s.Researched))
	s.Researched = slices.DeleteFunc(s.Researched, func(id string) bool {
		_, ok := g.cat.ResearchByID(id)
		if !ok || seen[id] {
			return true
		}
		seen[id] = true
		return false
	})
}

// fitCounts pads or truncates counts to n tiers.
func fitCounts(counts []float64, n int) []float64 {
	out := make([]float64, n)
	copy(out, counts)
	return out
}

func toData(s State) savegame.Data {
	return savegame.Data{
		Money:                   s.Money,
		Rubberbands:             s.Rubberbands,
		Rubber:                  s.Rubber,
		Producers:               s.Producers,
		PurchasedProducers:      s.PurchasedProducers,
		TotalRubberbandsSold:    s.TotalRubberbandsSold,
		BuyerHired:              s.BuyerHired,
		BuyerThreshold:          s.BuyerThreshold,
		RubberPrice:             s.RubberPrice,
		RubberbandPrice:         s.RubberbandPrice,
		TickCount:               s.TickCount,
		MarketingLevel:          s.MarketingLevel,
		LastMarketingUpdateTick: s.LastMarketingUpdateTick,
		Researched:              s.Researched,
		GameStartTime:           s.GameStartTime,
		TotalRubberProduced:     s.TotalRubberProduced,
		TotalNanobotsProduced:   s.TotalNanobotsProduced,
		ConsumedResources:       s.ConsumedResources,
		GameOver:                s.GameOver,
		NanobotCount:            s.NanobotCount,
		NanobotFactoryCount:     s.NanobotFactoryCount,
		NanoAllocation: savegame.NanoAllocation{
			RubberMachines:  s.NanoAllocation.RubberMachines,
			BanderMachines:  s.NanoAllocation.BanderMachines,
			ProductionLines: s.NanoAllocation.ProductionLines,
			Nanobots:        s.NanoAllocation.Nanobots,
		},
	}
}

func fromData(d savegame.Data) State {
	s := State{
		Money:                   d.Money,
		Rubberbands:             d.Rubberbands,
		Rubber:                  d.Rubber,
		Producers:               d.Producers,
		PurchasedProducers:      d.PurchasedProducers,
		TotalRubberbandsSold:    d.TotalRubberbandsSold,
		BuyerHired:              d.BuyerHired,
		BuyerThreshold:          d.BuyerThreshold,
		RubberPrice:             d.RubberPrice,
		RubberbandPrice:         d.RubberbandPrice,
		TickCount:               d.TickCount,
		MarketingLevel:          d.MarketingLevel,
		LastMarketingUpdateTick: d.LastMarketingUpdateTick,
		Researched:              d.Researched,
		GameStartTime:           d.GameStartTime,
		TotalRubberProduced:     d.TotalRubberProduced,
		TotalNanobotsProduced:   d.TotalNanobotsProduced,
		ConsumedResources:       d.ConsumedResources,
		GameOver:                d.GameOver,
		NanobotCount:            d.NanobotCount,
		NanobotFactoryCount:     d.NanobotFactoryCount,
		NanoAllocation: NanoAllocation{
			RubberMachines:  d.NanoAllocation.RubberMachines,
			BanderMachines:  d.NanoAllocation.BanderMachines,
			ProductionLines: d.NanoAllocation.ProductionLines,
			Nanobots:        d.NanoAllocation.Nanobots,
		},
	}
	if s.Producers == nil {
		s.Producers = map[string][]float64{}
	}
	if s.PurchasedProducers == nil {
		s.PurchasedProducers = map[string][]float64{}
	}
	if s.Researched == nil {
		s.Researched = []string{}
	}
	return s
}
