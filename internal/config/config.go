// Package config provides YAML-based loading of the economy catalog:
// producer families, research nodes and tuning constants.
package config

import (
	"fmt"

	"github.com/vovakirdan/rubberband/internal/catalog"
	"gopkg.in/yaml.v3"
)

// CatalogConfig is the on-disk shape of a catalog document.
type CatalogConfig struct {
	Constants catalog.Constants `yaml:"constants"`
	Research  []ResearchConfig  `yaml:"research"`
	Families  []FamilyConfig    `yaml:"families"`
}

// ResearchConfig defines one research node.
type ResearchConfig struct {
	ID                   string         `yaml:"id"`
	Name                 string         `yaml:"name"`
	Description          string         `yaml:"description"`
	Cost                 float64        `yaml:"cost"`
	PreconditionResearch string         `yaml:"precondition_research"`
	Effects              []EffectConfig `yaml:"effects"`
}

// FamilyConfig defines a producer family and its tiers.
type FamilyConfig struct {
	ID    string       `yaml:"id"`
	Type  string       `yaml:"type"`
	Tiers []TierConfig `yaml:"tiers"`
}

// TierConfig defines one purchasable producer.
type TierConfig struct {
	Name                 string           `yaml:"name"`
	Description          string           `yaml:"description"`
	InitialCost          float64          `yaml:"initial_cost"`
	CostFactor           float64          `yaml:"cost_factor"`
	MaintenanceCost      float64          `yaml:"maintenance_cost"`
	SpaceCost            float64          `yaml:"space_cost"`
	ResourceCost         float64          `yaml:"resource_cost"`
	NanoThreshold        float64          `yaml:"nano_threshold"`
	PreconditionResearch string           `yaml:"precondition_research"`
	RequiredResearch     StringList       `yaml:"required_research"`
	AllowManualPurchase  *bool            `yaml:"allow_manual_purchase"` // nil = allowed
	Production           ProductionConfig `yaml:"production"`
	Effects              []EffectConfig   `yaml:"effects"`
}

// ProductionConfig defines what a tier consumes and produces per unit.
type ProductionConfig struct {
	Input  *AmountConfig `yaml:"input"`
	Output AmountConfig  `yaml:"output"`
}

// AmountConfig is a resource quantity. FamilyID/TierIndex are only used
// for producer outputs.
type AmountConfig struct {
	Resource  string  `yaml:"resource"`
	Amount    float64 `yaml:"amount"`
	FamilyID  string  `yaml:"family_id"`
	TierIndex int     `yaml:"tier_index"`
}

// TargetConfig scopes production effects.
type TargetConfig struct {
	ProducerType string `yaml:"producer_type"`
	FamilyID     string `yaml:"family_id"`
}

// EffectConfig is the flat YAML form of every effect variant.
// Which fields are read depends on Type.
type EffectConfig struct {
	Type   string        `yaml:"type"`
	Target *TargetConfig `yaml:"target"`

	Multiplier      *float64 `yaml:"multiplier"`
	Addend          *float64 `yaml:"addend"`
	Amount          *float64 `yaml:"amount"`
	RatioMultiplier *float64 `yaml:"ratio_multiplier"`

	MarketingEffectivenessMultiplier *float64 `yaml:"marketing_effectiveness_multiplier"`
	PriceSensitivityMultiplier       *float64 `yaml:"price_sensitivity_multiplier"`
	MarketingDecayMultiplier         *float64 `yaml:"marketing_decay_multiplier"`
	DemandMultiplier                 *float64 `yaml:"demand_multiplier"`

	Rule      string `yaml:"rule"`
	LimitType string `yaml:"limit_type"`
}

// StringList accepts either a single scalar or a sequence of strings.
type StringList []string

// UnmarshalYAML implements yaml.Unmarshaler.
func (s *StringList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		var one string
		if err := value.Decode(&one); err != nil {
			return err
		}
		*s = StringList{one}
		return nil
	case yaml.SequenceNode:
		var many []string
		if err := value.Decode(&many); err != nil {
			return err
		}
		*s = many
		return nil
	default:
		return fmt.Errorf("line %d: expected string or list of strings", value.Line)
	}
}

// Build converts the document into a validated catalog.
func (c *CatalogConfig) Build() (*catalog.Catalog, error) {
	research := make([]catalog.Research, 0, len(c.Research))
	for _, r := range c.Research {
		effects, err := buildEffects(r.Effects)
		if err != nil {
			return nil, fmt.Errorf("research %s: %w", r.ID, err)
		}
		research = append(research, catalog.Research{
			ID:                   r.ID,
			Name:                 r.Name,
			Description:          r.Description,
			Cost:                 r.Cost,
			PreconditionResearch: r.PreconditionResearch,
			Effects:              effects,
		})
	}

	families := make([]catalog.Family, 0, len(c.Families))
	for _, f := range c.Families {
		fam := catalog.Family{ID: f.ID, Type: catalog.ProducerType(f.Type)}
		for _, t := range f.Tiers {
			tier, err := buildTier(t)
			if err != nil {
				return nil, fmt.Errorf("family %s tier %s: %w", f.ID, t.Name, err)
			}
			fam.Tiers = append(fam.Tiers, tier)
		}
		families = append(families, fam)
	}

	cat := catalog.New(c.Constants, research, families)
	if err := catalog.Validate(cat); err != nil {
		return nil, err
	}
	return cat, nil
}

func buildTier(t TierConfig) (catalog.Tier, error) {
	effects, err := buildEffects(t.Effects)
	if err != nil {
		return catalog.Tier{}, err
	}

	rule := catalog.ProductionRule{
		Output: catalog.Output{
			Resource:  catalog.Resource(t.Production.Output.Resource),
			Amount:    t.Production.Output.Amount,
			FamilyID:  t.Production.Output.FamilyID,
			TierIndex: t.Production.Output.TierIndex,
		},
	}
	if in := t.Production.Input; in != nil {
		rule.Input = &catalog.Input{Resource: catalog.Resource(in.Resource), Amount: in.Amount}
	}

	manual := true
	if t.AllowManualPurchase != nil {
		manual = *t.AllowManualPurchase
	}

	return catalog.Tier{
		Name:                 t.Name,
		Description:          t.Description,
		InitialCost:          t.InitialCost,
		CostFactor:           t.CostFactor,
		MaintenanceCost:      t.MaintenanceCost,
		SpaceCost:            t.SpaceCost,
		ResourceCost:         t.ResourceCost,
		NanoThreshold:        t.NanoThreshold,
		Production:           rule,
		PreconditionResearch: t.PreconditionResearch,
		RequiredResearch:     []string(t.RequiredResearch),
		ManualPurchase:       manual,
		Effects:              effects,
	}, nil
}

func buildEffects(in []EffectConfig) ([]catalog.Effect, error) {
	out := make([]catalog.Effect, 0, len(in))
	for i, e := range in {
		eff, err := e.effect()
		if err != nil {
			return nil, fmt.Errorf("effect %d: %w", i, err)
		}
		out = append(out, eff)
	}
	return out, nil
}

func (e EffectConfig) target() catalog.Target {
	if e.Target == nil {
		return catalog.Target{}
	}
	return catalog.Target{
		ProducerType: catalog.ProducerType(e.Target.ProducerType),
		FamilyID:     e.Target.FamilyID,
	}
}

func (e EffectConfig) effect() (catalog.Effect, error) {
	switch catalog.EffectKind(e.Type) {
	case catalog.KindProductionMultiplier:
		v, err := required(e.Type, "multiplier", e.Multiplier)
		return catalog.ProductionMultiplier{Target: e.target(), Multiplier: v}, err
	case catalog.KindProductionAdditive:
		v, err := required(e.Type, "addend", e.Addend)
		return catalog.ProductionAdditive{Target: e.target(), Addend: v}, err
	case catalog.KindProductionOutputFlat:
		v, err := required(e.Type, "amount", e.Amount)
		return catalog.ProductionOutputFlat{Target: e.target(), Amount: v}, err
	case catalog.KindInputEfficiency:
		v, err := required(e.Type, "ratio_multiplier", e.RatioMultiplier)
		return catalog.InputEfficiency{Target: e.target(), RatioMultiplier: v}, err
	case catalog.KindDemandMarketing:
		return catalog.DemandMarketing{
			EffectivenessMultiplier:    e.MarketingEffectivenessMultiplier,
			PriceSensitivityMultiplier: e.PriceSensitivityMultiplier,
			DecayMultiplier:            e.MarketingDecayMultiplier,
			DemandMultiplier:           e.DemandMultiplier,
		}, nil
	case catalog.KindGlobalRule:
		return catalog.GlobalRule{Rule: catalog.Rule(e.Rule)}, nil
	case catalog.KindResourceLimit:
		return catalog.ResourceLimit{Limit: catalog.LimitType(e.LimitType)}, nil
	case catalog.KindStorageCost:
		v, err := required(e.Type, "multiplier", e.Multiplier)
		return catalog.StorageCost{Multiplier: v}, err
	default:
		return nil, fmt.Errorf("unknown effect type %q", e.Type)
	}
}

func required(kind, field string, v *float64) (float64, error) {
	if v == nil {
		return 0, fmt.Errorf("%s effect needs %s", kind, field)
	}
	return *v, nil
}
