package engine

import (
	"cmp"
	"slices"

	"github.com/vovakirdan/rubberband/internal/catalog"
)

// NanoCandidate is an owned tier that automation units can boost.
type NanoCandidate struct {
	Ref       catalog.TierRef
	Count     float64
	Threshold float64 // units needed per boosted producer
}

// NanoGroup is a set of candidates sharing one priority.
type NanoGroup struct {
	Cost       float64
	Candidates []NanoCandidate
}

// AllocateNano spends units over groups in order. A group that can be
// fully boosted takes what it needs; the first group that cannot shares
// the remainder proportionally and ends the allocation. The result maps
// each tier to its number of boosted producers.
func AllocateNano(groups []NanoGroup, units float64) map[catalog.TierRef]float64 {
	boosted := make(map[catalog.TierRef]float64)
	for _, grp := range groups {
		if units <= 0 {
			break
		}
		var need float64
		for _, c := range grp.Candidates {
			need += c.Count * c.Threshold
		}
		if need <= 0 {
			continue
		}

		share := 1.0
		if units < need {
			share = units / need
		}
		for _, c := range grp.Candidates {
			boosted[c.Ref] += c.Count * share
		}
		if share < 1 {
			break
		}
		units -= need
	}
	return boosted
}

// nanoGroups collects owned boostable tiers of producer type pt, grouped
// by initial cost with the most expensive first.
func (g *Game) nanoGroups(pt catalog.ProducerType) []NanoGroup {
	byCost := map[float64]*NanoGroup{}
	var groups []*NanoGroup

	for _, f := range g.cat.Families {
		if f.Type != pt {
			continue
		}
		for i, n := range g.state.Producers[f.ID] {
			if n <= 0 || i >= len(f.Tiers) || f.Tiers[i].NanoThreshold <= 0 {
				continue
			}
			t := &f.Tiers[i]
			grp, ok := byCost[t.InitialCost]
			if !ok {
				grp = &NanoGroup{Cost: t.InitialCost}
				byCost[t.InitialCost] = grp
				groups = append(groups, grp)
			}
			grp.Candidates = append(grp.Candidates, NanoCandidate{
				Ref:       catalog.TierRef{FamilyID: f.ID, Index: i},
				Count:     n,
				Threshold: t.NanoThreshold,
			})
		}
	}

	slices.SortStableFunc(groups, func(a, b *NanoGroup) int {
		return cmp.Compare(b.Cost, a.Cost)
	})
	out := make([]NanoGroup, len(groups))
	for i, grp := range groups {
		out[i] = *grp
	}
	return out
}

// NanoBoosts returns the boosted producer count of every tier under the
// current allocation.
func (g *Game) NanoBoosts() map[catalog.TierRef]float64 {
	boosts := make(map[catalog.TierRef]float64)
	if g.state.NanobotCount <= 0 {
		return boosts
	}
	for _, pt := range []catalog.ProducerType{catalog.TypeRubberSource, catalog.TypeMachine, catalog.TypeProductionLine} {
		units := g.state.NanobotCount * g.state.NanoAllocation.forType(pt)
		for ref, n := range AllocateNano(g.nanoGroups(pt), units) {
			boosts[ref] += n
		}
	}
	return boosts
}

// effectiveCount is the owned count with boosted producers weighted up.
func (g *Game) effectiveCount(ref catalog.TierRef, count float64, boosts map[catalog.TierRef]float64) float64 {
	return count + boosts[ref]*g.k.NanoBoost
}
