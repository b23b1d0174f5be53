package engine

// Snapshot captures the headline figures of a game for determinism checks
// and status output.
type Snapshot struct {
	Tick              int64
	Money             float64
	Rubber            float64
	Rubberbands       float64
	RubberPrice       float64
	RubberbandPrice   float64
	MarketingLevel    int
	Researched        int
	ConsumedResources float64
	GameOver          bool
	Rates             Rates
	Digest            string // blake3 of the saved record
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	s := &g.state
	digest, err := g.Digest()
	if err != nil {
		g.logger.Warn("cannot digest state", "err", err)
	}
	return Snapshot{
		Tick:              s.TickCount,
		Money:             s.Money,
		Rubber:            s.Rubber,
		Rubberbands:       s.Rubberbands,
		RubberPrice:       s.RubberPrice,
		RubberbandPrice:   s.RubberbandPrice,
		MarketingLevel:    s.MarketingLevel,
		Researched:        len(s.Researched),
		ConsumedResources: s.ConsumedResources,
		GameOver:          s.GameOver,
		Rates:             g.rates,
		Digest:            digest,
	}
}
