// Package engine implements the rubberband economy: effect aggregation,
// derived economy queries, the per-tick production pipeline, player
// actions and save/load.
//
// A Game is not safe for concurrent use. Callers serialize every tick and
// action.
package engine

import (
	"math/rand"
	"time"

	"github.com/charmbracelet/log"
	"github.com/vovakirdan/rubberband/internal/catalog"
)

// Options configure a new Game.
type Options struct {
	// Catalog is required.
	Catalog *catalog.Catalog

	// Seed drives the market price fluctuation.
	Seed int64

	// Logger receives load failures and migration notes. Nil uses log.Default().
	Logger *log.Logger

	// Now stamps new games. Nil uses time.Now.
	Now func() time.Time
}

// Game owns one simulated economy.
type Game struct {
	cat    *catalog.Catalog
	k      *catalog.Constants
	rng    *rand.Rand
	seed   int64
	logger *log.Logger
	now    func() time.Time

	state State
	rates Rates
}

// New creates a game in its fresh default state.
func New(opts Options) *Game {
	if opts.Catalog == nil {
		panic("engine: Options.Catalog is required")
	}
	g := &Game{
		cat:    opts.Catalog,
		k:      &opts.Catalog.Constants,
		seed:   opts.Seed,
		logger: opts.Logger,
		now:    opts.Now,
	}
	if g.logger == nil {
		g.logger = log.Default()
	}
	if g.now == nil {
		g.now = time.Now
	}
	g.Reset()
	return g
}

// Reset reinitializes every field to its default and reseeds the market.
func (g *Game) Reset() {
	g.rng = newRand(g.seed)
	g.state = g.defaultState()
	g.rates = Rates{}
}

func newRand(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

func (g *Game) defaultState() State {
	return State{
		Money:              g.k.InitialMoney,
		Producers:          zeroCounts(g.cat),
		PurchasedProducers: zeroCounts(g.cat),
		RubberPrice:        g.k.InitialRubberPrice,
		RubberbandPrice:    g.k.InitialRubberbandPrice,
		MarketingLevel:     g.k.InitialMarketingLevel,
		Researched:         []string{},
		GameStartTime:      g.now().UnixMilli(),
		NanoAllocation:     DefaultNanoAllocation(),
	}
}

// Catalog returns the game definition.
func (g *Game) Catalog() *catalog.Catalog {
	return g.cat
}

// State returns a deep copy of the current state.
func (g *Game) State() State {
	return g.state.Clone()
}

// Rates returns the production figures of the last tick.
func (g *Game) Rates() Rates {
	return g.rates
}

// GameOver reports whether the resource budget of the universe is spent.
func (g *Game) GameOver() bool {
	return g.state.GameOver
}

// count returns the owned count of a tier, zero for unknown slots.
func (g *Game) count(m map[string][]float64, familyID string, index int) float64 {
	arr := m[familyID]
	if index < 0 || index >= len(arr) {
		return 0
	}
	return arr[index]
}
