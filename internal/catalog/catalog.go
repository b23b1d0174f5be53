// Package catalog holds the static, load-time definition of the economy:
// producer families and their tiers, research nodes, and global constants.
// Everything here is plain data; the engine interprets it.
package catalog

// ProducerType classifies a family for effect targeting and nano allocation.
type ProducerType string

const (
	TypeMachine        ProducerType = "machine"
	TypeProductionLine ProducerType = "production_line"
	TypeRubberSource   ProducerType = "rubber_source"
)

// Resource is the tag of a production input or output.
type Resource string

const (
	ResourceRubber     Resource = "rubber"
	ResourceRubberband Resource = "rubberband"
	ResourceProducer   Resource = "producer"
	ResourceMoney      Resource = "money"
)

// Input is the optional consumed side of a production rule.
type Input struct {
	Resource Resource
	Amount   float64
}

// Output is what one owned unit produces per tick.
// For ResourceProducer outputs FamilyID/TierIndex name the built unit.
type Output struct {
	Resource  Resource
	Amount    float64
	FamilyID  string
	TierIndex int
}

// ProductionRule describes what a tier does every tick.
type ProductionRule struct {
	Input  *Input
	Output Output
}

// Tier is one purchasable producer definition inside a family.
type Tier struct {
	Name            string
	Description     string
	InitialCost     float64
	CostFactor      float64
	MaintenanceCost float64
	SpaceCost       float64

	// ResourceCost is the consumable-resource budget spent per unit of
	// raw output. Zero means the tier draws nothing from the budget.
	ResourceCost float64

	// NanoThreshold is the number of automation units needed to boost
	// one owned unit. Zero means the tier cannot be boosted.
	NanoThreshold float64

	Production ProductionRule

	PreconditionResearch string
	RequiredResearch     []string

	// ManualPurchase is false for tiers that can only be constructed.
	ManualPurchase bool

	Effects []Effect
}

// Family is an ordered group of tiers sharing a producer type.
type Family struct {
	ID    string
	Type  ProducerType
	Tiers []Tier
}

// Research is one node of the research DAG.
type Research struct {
	ID                   string
	Name                 string
	Description          string
	Cost                 float64
	PreconditionResearch string
	Effects              []Effect
}

// Catalog is the complete immutable game definition.
type Catalog struct {
	Constants Constants
	Research  []Research
	Families  []Family

	researchIndex map[string]int
	familyIndex   map[string]int
}

// New builds a catalog and its lookup indexes. Callers should run
// Validate on the result before handing it to the engine.
func New(consts Constants, research []Research, families []Family) *Catalog {
	c := &Catalog{
		Constants:     consts,
		Research:      research,
		Families:      families,
		researchIndex: make(map[string]int, len(research)),
		familyIndex:   make(map[string]int, len(families)),
	}
	for i, r := range research {
		c.researchIndex[r.ID] = i
	}
	for i, f := range families {
		c.familyIndex[f.ID] = i
	}
	return c
}

// ResearchByID returns the research node with the given id.
func (c *Catalog) ResearchByID(id string) (*Research, bool) {
	i, ok := c.researchIndex[id]
	if !ok {
		return nil, false
	}
	return &c.Research[i], true
}

// FamilyByID returns the family with the given id.
func (c *Catalog) FamilyByID(id string) (*Family, bool) {
	i, ok := c.familyIndex[id]
	if !ok {
		return nil, false
	}
	return &c.Families[i], true
}

// Tier returns the tier at index of the given family.
func (c *Catalog) Tier(familyID string, index int) (*Family, *Tier, bool) {
	f, ok := c.FamilyByID(familyID)
	if !ok || index < 0 || index >= len(f.Tiers) {
		return nil, nil, false
	}
	return f, &f.Tiers[index], true
}

// TierRef addresses a tier by family id and index.
type TierRef struct {
	FamilyID string
	Index    int
}

// TierByName finds a tier by its display name.
func (c *Catalog) TierByName(name string) (TierRef, bool) {
	for _, f := range c.Families {
		for i, t := range f.Tiers {
			if t.Name == name {
				return TierRef{FamilyID: f.ID, Index: i}, true
			}
		}
	}
	return TierRef{}, false
}
