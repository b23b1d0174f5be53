package engine

import (
	"errors"
	"reflect"
	"testing"

	"github.com/vovakirdan/rubberband/internal/savegame"
)

func playSome(t *testing.T, g *Game) {
	t.Helper()
	g.BuyResearch("basic_manufacturing")
	g.BuyProducer("bander", 0, 2)
	g.SetNanoAllocation(NanoAllocation{RubberMachines: 0.1, BanderMachines: 0.2, ProductionLines: 0.3, Nanobots: 0.4})
	g.SetBuyerThreshold(250)
	for i := 0; i < 40; i++ {
		g.BuyRubber(200)
		g.Tick()
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	g := newTestGame(t)
	playSome(t, g)

	data := mustSave(t, g)
	g2 := newTestGame(t)
	if err := g2.Load(data); err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if !reflect.DeepEqual(g.State(), g2.State()) {
		t.Errorf("state differs after round trip:\n%+v\n%+v", g.State(), g2.State())
	}

	d1, err := g.Digest()
	if err != nil {
		t.Fatalf("Digest() failed: %v", err)
	}
	d2, err := g2.Digest()
	if err != nil {
		t.Fatalf("Digest() failed: %v", err)
	}
	if d1 != d2 {
		t.Error("digests differ after round trip")
	}
}

func TestLoadAcceptsEveryInputForm(t *testing.T) {
	g := newTestGame(t)
	playSome(t, g)
	text, err := g.SaveString()
	if err != nil {
		t.Fatalf("SaveString() failed: %v", err)
	}
	rec, err := g.Record()
	if err != nil {
		t.Fatalf("Record() failed: %v", err)
	}

	for name, src := range map[string]any{
		"string": text,
		"bytes":  []byte(text),
		"record": rec,
		"map":    map[string]any(rec),
	} {
		t.Run(name, func(t *testing.T) {
			g2 := newTestGame(t)
			if err := g2.Load(src); err != nil {
				t.Fatalf("Load() failed: %v", err)
			}
			if g2.state.Money != g.state.Money || g2.state.TickCount != g.state.TickCount {
				t.Error("loaded state differs")
			}
		})
	}
}

func TestRecordIsDetached(t *testing.T) {
	g := newTestGame(t)
	rec, err := g.Record()
	if err != nil {
		t.Fatalf("Record() failed: %v", err)
	}
	producers, _ := rec.Object("producers")
	producers["bander"].([]any)[0] = 50.0
	if g.state.Producers["bander"][0] != 0 {
		t.Error("Record() shares collections with the live state")
	}
}

func TestLoadFillsDefaults(t *testing.T) {
	g := newTestGame(t)
	if err := g.Load(map[string]any{"money": 5.0, "researched": []any{"basic_manufacturing"}}); err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	s := g.State()
	if s.Money != 5 || !s.HasResearch("basic_manufacturing") {
		t.Errorf("loaded fields lost: %+v", s)
	}
	if s.RubberPrice != 0.1 || s.MarketingLevel != 1 || s.NanoAllocation != DefaultNanoAllocation() {
		t.Errorf("defaults not applied: %+v", s)
	}
	for _, f := range g.Catalog().Families {
		if len(s.Producers[f.ID]) != len(f.Tiers) || len(s.PurchasedProducers[f.ID]) != len(f.Tiers) {
			t.Errorf("family %s not backfilled", f.ID)
		}
	}
}

func TestLoadNormalizes(t *testing.T) {
	g := newTestGame(t)
	err := g.Load(`{
		"producers": {"bander": [4], "gone": [1, 2]},
		"purchasedProducers": {"bander": [9, 1, 1, 1, 1, 1, 1]},
		"rubberbandPrice": 1e70,
		"marketingLevel": 0,
		"researched": ["robotics", "robotics", "nonsense"]
	}`)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	s := g.State()
	if _, ok := s.Producers["gone"]; ok {
		t.Error("unknown family kept")
	}
	if want := []float64{4, 0, 0, 0, 0}; !reflect.DeepEqual(s.Producers["bander"], want) {
		t.Errorf("owned bander = %v, want %v", s.Producers["bander"], want)
	}
	if want := []float64{4, 0, 0, 0, 0}; !reflect.DeepEqual(s.PurchasedProducers["bander"], want) {
		t.Errorf("purchased bander = %v, want %v", s.PurchasedProducers["bander"], want)
	}
	if s.RubberbandPrice != 1e60 {
		t.Errorf("RubberbandPrice = %v, want 1e60", s.RubberbandPrice)
	}
	if s.MarketingLevel != 1 {
		t.Errorf("MarketingLevel = %d, want 1", s.MarketingLevel)
	}
	if !reflect.DeepEqual(s.Researched, []string{"robotics"}) {
		t.Errorf("Researched = %v", s.Researched)
	}
}

func TestLoadLegacyRecord(t *testing.T) {
	g := newTestGame(t)
	err := g.Load(`{
		"money": 1234,
		"entities": {"bander": [3, 1], "nanoswarm": [2]},
		"purchasedEntities": {"bander": [2, 1], "nanoswarm": [2]},
		"machineProductionLineCount": 1,
		"plantations": {"Black Hole Extrudor": 1},
		"nanoAllocRubber": 0.1,
		"nanoAllocBander": 0.2,
		"nanoAllocLines": 0.3,
		"nanoAllocNanobots": 0.4
	}`)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	s := g.State()
	if s.Money != 1234 {
		t.Errorf("Money = %v", s.Money)
	}
	if s.Producers["bander"][0] != 3 || s.PurchasedProducers["bander"][0] != 2 {
		t.Errorf("bander = %v / %v", s.Producers["bander"], s.PurchasedProducers["bander"])
	}
	if s.Producers["bander_line"][0] != 1 || s.PurchasedProducers["bander_line"][0] != 1 {
		t.Errorf("bander_line = %v", s.Producers["bander_line"])
	}
	if s.Producers["rubber_sources"][2] != 1 {
		t.Errorf("rubber_sources = %v", s.Producers["rubber_sources"])
	}
	if s.NanobotFactoryCount != 2 || s.Producers["nanoswarm"][0] != 0 || s.PurchasedProducers["nanoswarm"][0] != 0 {
		t.Errorf("factory slot not moved: count %d, slot %v", s.NanobotFactoryCount, s.Producers["nanoswarm"])
	}
	want := NanoAllocation{RubberMachines: 0.1, BanderMachines: 0.2, ProductionLines: 0.3, Nanobots: 0.4}
	if s.NanoAllocation != want {
		t.Errorf("NanoAllocation = %+v, want %+v", s.NanoAllocation, want)
	}
}

func TestLoadMissingPurchasedStartsAtZero(t *testing.T) {
	g := newTestGame(t)
	if err := g.Load(`{"money":1000,"producers":{"bander":[3,0,0,0,0]}}`); err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	s := g.State()
	if s.Producers["bander"][0] != 3 {
		t.Errorf("owned bander = %v, want 3", s.Producers["bander"][0])
	}
	if want := []float64{0, 0, 0, 0, 0}; !reflect.DeepEqual(s.PurchasedProducers["bander"], want) {
		t.Errorf("purchased bander = %v, want %v", s.PurchasedProducers["bander"], want)
	}
	if got := g.ProducerCost("bander", 0, 1); got != 100 {
		t.Errorf("next Bander costs %v, want 100", got)
	}
}

func TestLoadMalformedResets(t *testing.T) {
	tests := []struct {
		name string
		src  any
	}{
		{"not json", "{money: lots"},
		{"not an object", "[1, 2]"},
		{"wrong field type", `{"money": "lots"}`},
		{"negative stock", `{"rubber": -5}`},
		{"bad counts", `{"producers": {"bander": "three"}}`},
		{"unsupported input", 42},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newTestGame(t)
			fresh := mustSave(t, g)
			playSome(t, g)

			err := g.Load(tt.src)
			if !errors.Is(err, savegame.ErrMalformed) {
				t.Fatalf("Load() error = %v, want ErrMalformed", err)
			}
			if string(mustSave(t, g)) != string(fresh) {
				t.Error("failed load did not reset the game")
			}
		})
	}
}
