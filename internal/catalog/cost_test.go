package catalog

import (
	"math"
	"testing"
)

var costTiers = []Tier{
	{Name: "Bander", InitialCost: 100, CostFactor: 1.1},
	{Name: "MAX-Bander", InitialCost: 750, CostFactor: 1.25},
	{Name: "Plantation", InitialCost: 10_000, CostFactor: 1.2},
	{Name: "Line", InitialCost: 100_000_000, CostFactor: 2.0},
	{Name: "Flat", InitialCost: 42, CostFactor: 1},
}

func TestCostMatchesIterativeSum(t *testing.T) {
	for _, tier := range costTiers {
		for _, count := range []float64{0, 1, 3, 10, 25} {
			for _, n := range []float64{1, 2, 5, 17} {
				var sum float64
				for i := 0.0; i < n; i++ {
					sum += math.Floor(tier.InitialCost * math.Pow(tier.CostFactor, count+i))
				}

				got := Cost(&tier, n, count)

				// Flooring the base price once instead of per unit can drift
				// by at most r^i + 1 per unit.
				tolerance := n
				if tier.CostFactor != 1 {
					tolerance += (math.Pow(tier.CostFactor, n) - 1) / (tier.CostFactor - 1)
				}
				if math.Abs(got-sum) > tolerance {
					t.Errorf("Cost(%s, %v, %v) = %v, iterative sum %v", tier.Name, n, count, got, sum)
				}
			}
		}
	}
}

func TestCostScenario(t *testing.T) {
	bander := costTiers[0]

	if got := Cost(&bander, 1, 0); got != 100 {
		t.Errorf("first bander costs %v, want 100", got)
	}
	if got := Cost(&bander, 1, 1); got != 110 {
		t.Errorf("second bander costs %v, want 110", got)
	}
	if got := Cost(&bander, 2, 0); got != 210 {
		t.Errorf("two banders cost %v, want 210", got)
	}
	if got := Cost(&bander, 0, 5); got != 0 {
		t.Errorf("zero banders cost %v, want 0", got)
	}

	flat := costTiers[4]
	if got := Cost(&flat, 3, 7); got != 126 {
		t.Errorf("flat curve cost %v, want 126", got)
	}
}

func TestMaxAffordable(t *testing.T) {
	for _, tier := range costTiers {
		for _, count := range []float64{0, 2, 9} {
			for _, money := range []float64{0, 99, 100, 209, 210, 3000, 1e6, 1e12} {
				n := MaxAffordable(&tier, money, count)

				if n < 0 || n != math.Floor(n) {
					t.Fatalf("MaxAffordable(%s, %v, %v) = %v, want a whole count", tier.Name, money, count, n)
				}
				if n > 0 && Cost(&tier, n, count) > money {
					t.Errorf("MaxAffordable(%s, %v, %v) = %v overshoots: cost %v",
						tier.Name, money, count, n, Cost(&tier, n, count))
				}
				if next := Cost(&tier, n+1, count); next <= money {
					t.Errorf("MaxAffordable(%s, %v, %v) = %v undershoots: %v more is still affordable at %v",
						tier.Name, money, count, n, n+1, next)
				}
			}
		}
	}
}

func TestMaxAffordableBelowBasePrice(t *testing.T) {
	tier := costTiers[1]
	if got := MaxAffordable(&tier, 749, 0); got != 0 {
		t.Errorf("MaxAffordable below base price = %v, want 0", got)
	}
}

func TestMaxAffordableHugeBudgets(t *testing.T) {
	tests := []struct {
		name  string
		tier  Tier
		money float64
		want  float64
	}{
		{"flat curve past 2^53", Tier{InitialCost: 1, CostFactor: 1}, 1e17, 1e17},
		{"flat curve", Tier{InitialCost: 42, CostFactor: 1}, 1e6, 23809},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MaxAffordable(&tt.tier, tt.money, 0); got != tt.want {
				t.Errorf("MaxAffordable() = %v, want %v", got, tt.want)
			}
		})
	}

	steep := Tier{InitialCost: 1, CostFactor: 1.1}
	n := MaxAffordable(&steep, math.MaxFloat64, 0)
	if n <= 0 || math.IsInf(n, 0) || Cost(&steep, n, 0) > math.MaxFloat64 {
		t.Errorf("MaxAffordable() with the largest budget = %v", n)
	}
}
