package main

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/vovakirdan/rubberband/internal/config"
	"github.com/vovakirdan/rubberband/internal/engine"
)

func playAutopilot(t *testing.T, seed int64, ticks int) *engine.Game {
	t.Helper()
	g := engine.New(engine.Options{Catalog: config.Default(), Seed: seed, Logger: log.New(io.Discard)})
	for i := 0; i < ticks; i++ {
		autopilot(g)
		g.Tick()
	}
	return g
}

func TestAutopilotGrowsEconomy(t *testing.T) {
	g := playAutopilot(t, 3, 2000)
	st := g.State()

	if !st.HasResearch("basic_manufacturing") {
		t.Error("autopilot never researched basic_manufacturing")
	}
	if st.Producers["bander"][0] < 1 {
		t.Error("autopilot never bought a Bander")
	}
	if st.TotalRubberbandsSold == 0 {
		t.Error("no rubberbands sold")
	}
	if g.UsedStorageSpace() > g.StorageLimit() {
		t.Errorf("used storage %v above limit %v", g.UsedStorageSpace(), g.StorageLimit())
	}
	for id, owned := range st.Producers {
		for i, n := range st.PurchasedProducers[id] {
			if n > owned[i] {
				t.Errorf("%s[%d]: purchased %v above owned %v", id, i, n, owned[i])
			}
		}
	}
}

func TestAutopilotDeterministic(t *testing.T) {
	a := playAutopilot(t, 11, 500).Snapshot()
	b := playAutopilot(t, 11, 500).Snapshot()
	if a != b {
		t.Errorf("same seed diverged:\n%+v\n%+v", a, b)
	}
}

func TestFormatNum(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{1234.5, "1,234.5"},
		{-20, "-20"},
		{2.5e9, "2.5 G"},
	}

	for _, tt := range tests {
		if got := formatNum(tt.in); got != tt.want {
			t.Errorf("formatNum(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
