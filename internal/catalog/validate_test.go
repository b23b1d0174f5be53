package catalog

import (
	"errors"
	"testing"
)

func validCatalog() *Catalog {
	return New(
		Constants{
			InitialMarketingLevel:    1,
			DefaultInputRatio:        2,
			MinRubberPrice:           0.01,
			MaxRubberPrice:           10,
			MinRubberbandPrice:       0.01,
			MaxRubberbandPrice:       1e60,
			PriceFluctuationInterval: 10,
			DemandPriceSensitivity:   1,
			ResourceCostMachine:      10,
			ResourceCostNanobot:      100,
		},
		[]Research{
			{ID: "basic", Cost: 100},
			{ID: "robotics", Cost: 500, PreconditionResearch: "basic", Effects: []Effect{
				ProductionMultiplier{Target: Target{ProducerType: TypeMachine}, Multiplier: 2},
			}},
		},
		[]Family{
			{ID: "bander", Type: TypeMachine, Tiers: []Tier{{
				Name: "Bander", InitialCost: 100, CostFactor: 1.1,
				Production: ProductionRule{
					Input:  &Input{Resource: ResourceRubber, Amount: 100},
					Output: Output{Resource: ResourceRubberband, Amount: 100},
				},
				PreconditionResearch: "basic",
			}}},
			{ID: "bander_line", Type: TypeProductionLine, Tiers: []Tier{{
				Name: "Bander Line", InitialCost: 1e8, CostFactor: 1.3,
				Production:       ProductionRule{Output: Output{Resource: ResourceProducer, Amount: 1, FamilyID: "bander"}},
				RequiredResearch: []string{"robotics"},
			}}},
		},
	)
}

func TestValidateAcceptsConsistentCatalog(t *testing.T) {
	if err := Validate(validCatalog()); err != nil {
		t.Fatalf("Validate() failed: %v", err)
	}
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Catalog) *Catalog
		code   string
	}{
		{
			name: "duplicate research",
			mutate: func(c *Catalog) *Catalog {
				return New(c.Constants, append(c.Research, Research{ID: "basic"}), c.Families)
			},
			code: "DUPLICATE_ID",
		},
		{
			name: "unknown precondition",
			mutate: func(c *Catalog) *Catalog {
				c.Research[0].PreconditionResearch = "alchemy"
				return c
			},
			code: "UNKNOWN_RESEARCH",
		},
		{
			name: "precondition cycle",
			mutate: func(c *Catalog) *Catalog {
				c.Research[0].PreconditionResearch = "robotics"
				return c
			},
			code: "CYCLE",
		},
		{
			name: "line builds missing tier",
			mutate: func(c *Catalog) *Catalog {
				c.Families[1].Tiers[0].Production.Output.TierIndex = 4
				return c
			},
			code: "UNKNOWN_TARGET",
		},
		{
			name: "cost factor below one",
			mutate: func(c *Catalog) *Catalog {
				c.Families[0].Tiers[0].CostFactor = 0.9
				return c
			},
			code: "INVALID_COST",
		},
		{
			name: "untargeted multiplier",
			mutate: func(c *Catalog) *Catalog {
				c.Research[1].Effects = []Effect{ProductionMultiplier{Multiplier: 2}}
				return c
			},
			code: "EMPTY_TARGET",
		},
		{
			name: "unknown limit",
			mutate: func(c *Catalog) *Catalog {
				c.Research[1].Effects = []Effect{ResourceLimit{Limit: "moon"}}
				return c
			},
			code: "INVALID_EFFECT",
		},
		{
			name: "bad family type",
			mutate: func(c *Catalog) *Catalog {
				c.Families[0].Type = "robot"
				return c
			},
			code: "INVALID_TYPE",
		},
		{
			name: "zero input ratio",
			mutate: func(c *Catalog) *Catalog {
				c.Constants.DefaultInputRatio = 0
				return c
			},
			code: "INVALID_CONSTANT",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.mutate(validCatalog()))
			var verr ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("Validate() = %v, want ValidationError", err)
			}
			if verr.Code != tt.code {
				t.Errorf("Validate() code = %s, want %s (%v)", verr.Code, tt.code, verr)
			}
		})
	}
}

func TestTargetMatching(t *testing.T) {
	bander := &Family{ID: "bander", Type: TypeMachine}
	sources := &Family{ID: "rubber_sources", Type: TypeRubberSource}

	byType := Target{ProducerType: TypeMachine}
	byFamily := Target{FamilyID: "rubber_sources"}
	empty := Target{}

	if !byType.Matches(bander) || byType.Matches(sources) {
		t.Error("type target matched the wrong family")
	}
	if !byFamily.Matches(sources) || byFamily.Matches(bander) {
		t.Error("family target matched the wrong family")
	}
	if empty.Matches(&Family{}) {
		t.Error("empty target must never match, even a family with empty fields")
	}
}

func TestScaledOnlyTouchesAdditiveFields(t *testing.T) {
	mult := ProductionMultiplier{Multiplier: 2}.Scaled(5).(ProductionMultiplier)
	if mult.Multiplier != 2 {
		t.Errorf("multiplier scaled to %v", mult.Multiplier)
	}
	add := ProductionAdditive{Addend: 0.25}.Scaled(4).(ProductionAdditive)
	if add.Addend != 1 {
		t.Errorf("addend scaled to %v, want 1", add.Addend)
	}
	flat := ProductionOutputFlat{Amount: 0.5}.Scaled(10).(ProductionOutputFlat)
	if flat.Amount != 5 {
		t.Errorf("amount scaled to %v, want 5", flat.Amount)
	}
}
