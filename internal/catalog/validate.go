package catalog

import (
	"fmt"
	"math"
)

// ValidationError contains details about a catalog defect.
type ValidationError struct {
	Code    string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Validate checks the catalog for structural problems.
// Checks:
//   - ids are unique and non-empty
//   - research references resolve and preconditions are acyclic
//   - cost curves are positive
//   - producer outputs point at existing tiers
//   - effect values are usable
func Validate(c *Catalog) error {
	if err := validateResearch(c); err != nil {
		return err
	}
	if err := validateFamilies(c); err != nil {
		return err
	}
	return validateConstants(&c.Constants)
}

func validateResearch(c *Catalog) error {
	seen := make(map[string]bool, len(c.Research))
	for _, r := range c.Research {
		if r.ID == "" {
			return ValidationError{Code: "EMPTY_ID", Message: fmt.Sprintf("research %q has no id", r.Name)}
		}
		if seen[r.ID] {
			return ValidationError{Code: "DUPLICATE_ID", Message: fmt.Sprintf("research %s defined twice", r.ID)}
		}
		seen[r.ID] = true
		if r.Cost < 0 || math.IsNaN(r.Cost) {
			return ValidationError{Code: "INVALID_COST", Message: fmt.Sprintf("research %s has cost %v", r.ID, r.Cost)}
		}
	}

	for _, r := range c.Research {
		if r.PreconditionResearch != "" && !seen[r.PreconditionResearch] {
			return ValidationError{
				Code:    "UNKNOWN_RESEARCH",
				Message: fmt.Sprintf("research %s requires unknown %s", r.ID, r.PreconditionResearch),
			}
		}
		if err := validateEffects("research "+r.ID, r.Effects, c); err != nil {
			return err
		}
	}

	// Each node has at most one precondition, so a cycle shows up as a
	// chain longer than the number of nodes.
	for _, r := range c.Research {
		steps := 0
		for id := r.PreconditionResearch; id != ""; steps++ {
			if steps > len(c.Research) {
				return ValidationError{Code: "CYCLE", Message: fmt.Sprintf("research %s has a cyclic precondition chain", r.ID)}
			}
			next, _ := c.ResearchByID(id)
			id = next.PreconditionResearch
		}
	}
	return nil
}

func validateFamilies(c *Catalog) error {
	seen := make(map[string]bool, len(c.Families))
	for _, f := range c.Families {
		if f.ID == "" {
			return ValidationError{Code: "EMPTY_ID", Message: "family has no id"}
		}
		if seen[f.ID] {
			return ValidationError{Code: "DUPLICATE_ID", Message: fmt.Sprintf("family %s defined twice", f.ID)}
		}
		seen[f.ID] = true

		switch f.Type {
		case TypeMachine, TypeProductionLine, TypeRubberSource:
		default:
			return ValidationError{Code: "INVALID_TYPE", Message: fmt.Sprintf("family %s has type %q", f.ID, f.Type)}
		}
		if len(f.Tiers) == 0 {
			return ValidationError{Code: "EMPTY_FAMILY", Message: fmt.Sprintf("family %s has no tiers", f.ID)}
		}
	}

	for _, f := range c.Families {
		for i := range f.Tiers {
			if err := validateTier(c, &f, &f.Tiers[i]); err != nil {
				return err
			}
		}
	}
	return nil
}

func validateTier(c *Catalog, f *Family, t *Tier) error {
	where := fmt.Sprintf("tier %s/%s", f.ID, t.Name)
	if t.InitialCost <= 0 || t.CostFactor < 1 {
		return ValidationError{
			Code:    "INVALID_COST",
			Message: fmt.Sprintf("%s has cost %v factor %v", where, t.InitialCost, t.CostFactor),
		}
	}
	if t.MaintenanceCost < 0 || t.SpaceCost < 0 || t.ResourceCost < 0 || t.NanoThreshold < 0 {
		return ValidationError{Code: "NEGATIVE_VALUE", Message: where + " has a negative cost field"}
	}

	for _, id := range append([]string{t.PreconditionResearch}, t.RequiredResearch...) {
		if id == "" {
			continue
		}
		if _, ok := c.ResearchByID(id); !ok {
			return ValidationError{Code: "UNKNOWN_RESEARCH", Message: fmt.Sprintf("%s requires unknown %s", where, id)}
		}
	}

	out := t.Production.Output
	switch out.Resource {
	case ResourceRubber, ResourceRubberband, ResourceMoney:
	case ResourceProducer:
		if _, _, ok := c.Tier(out.FamilyID, out.TierIndex); !ok {
			return ValidationError{
				Code:    "UNKNOWN_TARGET",
				Message: fmt.Sprintf("%s builds missing tier %s[%d]", where, out.FamilyID, out.TierIndex),
			}
		}
	default:
		return ValidationError{Code: "INVALID_OUTPUT", Message: fmt.Sprintf("%s outputs %q", where, out.Resource)}
	}
	if in := t.Production.Input; in != nil && in.Amount <= 0 {
		return ValidationError{Code: "INVALID_INPUT", Message: where + " has a non-positive input amount"}
	}

	return validateEffects(where, t.Effects, c)
}

func validateEffects(where string, effects []Effect, c *Catalog) error {
	for _, e := range effects {
		var target *Target
		switch v := e.(type) {
		case ProductionMultiplier:
			target = &v.Target
		case ProductionAdditive:
			target = &v.Target
		case ProductionOutputFlat:
			target = &v.Target
		case InputEfficiency:
			target = &v.Target
			if v.RatioMultiplier <= 0 {
				return ValidationError{Code: "INVALID_EFFECT", Message: where + " has a non-positive input ratio multiplier"}
			}
		case StorageCost:
			if v.Multiplier < 0 {
				return ValidationError{Code: "INVALID_EFFECT", Message: where + " has a negative storage multiplier"}
			}
		case GlobalRule:
			if v.Rule != RuleUnlockBuyer && v.Rule != RuleUnlockMarketing {
				return ValidationError{Code: "INVALID_EFFECT", Message: fmt.Sprintf("%s has unknown rule %q", where, v.Rule)}
			}
		case ResourceLimit:
			switch v.Limit {
			case LimitOil, LimitEarth, LimitUniverse, LimitInfinite:
			default:
				return ValidationError{Code: "INVALID_EFFECT", Message: fmt.Sprintf("%s has unknown limit %q", where, v.Limit)}
			}
		}

		if target == nil {
			continue
		}
		if target.ProducerType == "" && target.FamilyID == "" {
			return ValidationError{Code: "EMPTY_TARGET", Message: fmt.Sprintf("%s has a %s effect with no target", where, e.Kind())}
		}
		if target.FamilyID != "" {
			if _, ok := c.FamilyByID(target.FamilyID); !ok {
				return ValidationError{Code: "UNKNOWN_TARGET", Message: fmt.Sprintf("%s targets unknown family %s", where, target.FamilyID)}
			}
		}
	}
	return nil
}

func validateConstants(k *Constants) error {
	switch {
	case k.DefaultInputRatio <= 0:
		return ValidationError{Code: "INVALID_CONSTANT", Message: "default_input_ratio must be positive"}
	case k.MinRubberPrice <= 0 || k.MaxRubberPrice < k.MinRubberPrice:
		return ValidationError{Code: "INVALID_CONSTANT", Message: "rubber price bounds are inverted or non-positive"}
	case k.MinRubberbandPrice <= 0 || k.MaxRubberbandPrice < k.MinRubberbandPrice:
		return ValidationError{Code: "INVALID_CONSTANT", Message: "rubberband price bounds are inverted or non-positive"}
	case k.PriceFluctuationInterval <= 0:
		return ValidationError{Code: "INVALID_CONSTANT", Message: "price_fluctuation_interval must be positive"}
	case k.DemandPriceSensitivity <= 0:
		return ValidationError{Code: "INVALID_CONSTANT", Message: "demand_price_sensitivity must be positive"}
	case k.ResourceCostMachine <= 0 || k.ResourceCostNanobot <= 0:
		return ValidationError{Code: "INVALID_CONSTANT", Message: "resource costs must be positive"}
	case k.InitialMarketingLevel < 1:
		return ValidationError{Code: "INVALID_CONSTANT", Message: "initial_marketing_level must be at least 1"}
	}
	return nil
}
