package engine

import "github.com/vovakirdan/rubberband/internal/catalog"

// Effects returns every active effect: research effects in research
// order, then passive effects of owned tiers in catalog order, scaled by
// the owned count.
func (g *Game) Effects() []catalog.Effect {
	var out []catalog.Effect
	for _, id := range g.state.Researched {
		if r, ok := g.cat.ResearchByID(id); ok {
			out = append(out, r.Effects...)
		}
	}
	for _, f := range g.cat.Families {
		counts := g.state.Producers[f.ID]
		for i, n := range counts {
			if n <= 0 || i >= len(f.Tiers) {
				continue
			}
			for _, e := range f.Tiers[i].Effects {
				out = append(out, e.Scaled(n))
			}
		}
	}
	return out
}

// EffectsOf returns the active effects of variant T.
func EffectsOf[T catalog.Effect](g *Game) []T {
	var out []T
	for _, e := range g.Effects() {
		if v, ok := e.(T); ok {
			out = append(out, v)
		}
	}
	return out
}

// HasGlobalRule reports whether any active effect unlocks rule.
func (g *Game) HasGlobalRule(rule catalog.Rule) bool {
	for _, e := range EffectsOf[catalog.GlobalRule](g) {
		if e.Rule == rule {
			return true
		}
	}
	return false
}

func (g *Game) hasLimit(limit catalog.LimitType) bool {
	for _, e := range EffectsOf[catalog.ResourceLimit](g) {
		if e.Limit == limit {
			return true
		}
	}
	return false
}

// productionMultiplier folds production multipliers and additive addends
// for a family. A multiplier naming both the type and the family applies
// twice.
func productionMultiplier(f *catalog.Family, mults []catalog.ProductionMultiplier, adds []catalog.ProductionAdditive) float64 {
	m := 1.0
	for _, e := range mults {
		if e.Target.MatchesType(f.Type) {
			m *= e.Multiplier
		}
		if e.Target.MatchesFamily(f.ID) {
			m *= e.Multiplier
		}
	}
	for _, e := range adds {
		if e.Target.Matches(f) {
			m += e.Addend
		}
	}
	return m
}

// inputRatio is the rubber consumed per rubberband made by family f.
func (g *Game) inputRatio(f *catalog.Family, rules []catalog.InputEfficiency) float64 {
	ratio := g.k.DefaultInputRatio
	for _, e := range rules {
		if e.Target.Matches(f) {
			ratio *= e.RatioMultiplier
		}
	}
	return ratio
}
