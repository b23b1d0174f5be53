package catalog

// EffectKind is the tag of an Effect variant.
type EffectKind string

const (
	KindProductionMultiplier EffectKind = "production_multiplier"
	KindProductionAdditive   EffectKind = "production_multiplier_additive"
	KindProductionOutputFlat EffectKind = "production_output_flat"
	KindInputEfficiency      EffectKind = "input_efficiency"
	KindDemandMarketing      EffectKind = "demand_marketing"
	KindGlobalRule           EffectKind = "global_rule"
	KindResourceLimit        EffectKind = "resource_limit"
	KindStorageCost          EffectKind = "storage_cost"
)

// Effect is a closed sum type: only the variants in this file implement it.
type Effect interface {
	Kind() EffectKind

	// Scaled returns the effect as contributed by count owned units.
	// Additive fields grow linearly with count; ratios never do.
	Scaled(count float64) Effect
}

// Target scopes an effect to a producer type, a family, or both.
// An empty field never matches.
type Target struct {
	ProducerType ProducerType
	FamilyID     string
}

// MatchesType reports whether the target names the given producer type.
func (t Target) MatchesType(pt ProducerType) bool {
	return t.ProducerType != "" && t.ProducerType == pt
}

// MatchesFamily reports whether the target names the given family.
func (t Target) MatchesFamily(id string) bool {
	return t.FamilyID != "" && t.FamilyID == id
}

// Matches reports whether either field selects the family.
func (t Target) Matches(f *Family) bool {
	return t.MatchesType(f.Type) || t.MatchesFamily(f.ID)
}

// ProductionMultiplier scales the output of matching producers.
type ProductionMultiplier struct {
	Target     Target
	Multiplier float64
}

// ProductionAdditive adds Addend to the production multiplier of matching producers.
type ProductionAdditive struct {
	Target Target
	Addend float64
}

// ProductionOutputFlat adds Amount built units per owned production line.
type ProductionOutputFlat struct {
	Target Target
	Amount float64
}

// InputEfficiency scales the rubber consumed per rubberband.
type InputEfficiency struct {
	Target          Target
	RatioMultiplier float64
}

// DemandMarketing modifies the demand curve. Nil fields are absent.
type DemandMarketing struct {
	EffectivenessMultiplier    *float64
	PriceSensitivityMultiplier *float64
	DecayMultiplier            *float64
	DemandMultiplier           *float64
}

// Rule names a global mechanic unlocked by an effect.
type Rule string

const (
	RuleUnlockBuyer     Rule = "unlock_buyer"
	RuleUnlockMarketing Rule = "unlock_marketing"
)

// GlobalRule unlocks a global mechanic.
type GlobalRule struct {
	Rule Rule
}

// LimitType is a resource/storage scale tier.
type LimitType string

const (
	LimitOil      LimitType = "oil"
	LimitEarth    LimitType = "earth"
	LimitUniverse LimitType = "universe"
	LimitInfinite LimitType = "infinite"
)

// ResourceLimit raises the resource budget and storage scale.
type ResourceLimit struct {
	Limit LimitType
}

// StorageCost scales the space stock takes and its inventory cost.
type StorageCost struct {
	Multiplier float64
}

func (ProductionMultiplier) Kind() EffectKind { return KindProductionMultiplier }
func (ProductionAdditive) Kind() EffectKind   { return KindProductionAdditive }
func (ProductionOutputFlat) Kind() EffectKind { return KindProductionOutputFlat }
func (InputEfficiency) Kind() EffectKind      { return KindInputEfficiency }
func (DemandMarketing) Kind() EffectKind      { return KindDemandMarketing }
func (GlobalRule) Kind() EffectKind           { return KindGlobalRule }
func (ResourceLimit) Kind() EffectKind        { return KindResourceLimit }
func (StorageCost) Kind() EffectKind          { return KindStorageCost }

func (e ProductionMultiplier) Scaled(float64) Effect { return e }

func (e ProductionAdditive) Scaled(count float64) Effect {
	e.Addend *= count
	return e
}

func (e ProductionOutputFlat) Scaled(count float64) Effect {
	e.Amount *= count
	return e
}

func (e InputEfficiency) Scaled(float64) Effect { return e }
func (e DemandMarketing) Scaled(float64) Effect { return e }
func (e GlobalRule) Scaled(float64) Effect      { return e }
func (e ResourceLimit) Scaled(float64) Effect   { return e }
func (e StorageCost) Scaled(float64) Effect     { return e }
