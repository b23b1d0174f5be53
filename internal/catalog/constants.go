package catalog

// Constants are the global tuning values of the economy.
type Constants struct {
	InitialMoney           float64 `yaml:"initial_money"`
	InitialRubberPrice     float64 `yaml:"initial_rubber_price"`
	InitialRubberbandPrice float64 `yaml:"initial_rubberband_price"`
	InitialMarketingLevel  int     `yaml:"initial_marketing_level"`

	BuyerCost   float64 `yaml:"buyer_cost"`
	BuyerMarkup float64 `yaml:"buyer_markup"`

	MarketingBaseCost      float64 `yaml:"marketing_base_cost"`
	MarketingCostFactor    float64 `yaml:"marketing_cost_factor"`
	MarketingDecayInterval int     `yaml:"marketing_decay_interval"`

	DemandScale            float64 `yaml:"demand_scale"`
	DemandBase             float64 `yaml:"demand_base"`
	DemandPriceSensitivity float64 `yaml:"demand_price_sensitivity"`

	PriceFluctuationInterval int     `yaml:"price_fluctuation_interval"`
	PriceFluctuation         float64 `yaml:"price_fluctuation"`
	MinRubberPrice           float64 `yaml:"min_rubber_price"`
	MaxRubberPrice           float64 `yaml:"max_rubber_price"`
	MinRubberbandPrice       float64 `yaml:"min_rubberband_price"`
	MaxRubberbandPrice       float64 `yaml:"max_rubberband_price"`

	MaxRubberNoProduction float64 `yaml:"max_rubber_no_production"`
	DefaultInputRatio     float64 `yaml:"default_input_ratio"`
	SellRefundRatio       float64 `yaml:"sell_refund_ratio"`

	InventoryLimitRubber            float64 `yaml:"inventory_limit_rubber"`
	InventoryLimitRubberbands       float64 `yaml:"inventory_limit_rubberbands"`
	InventoryCostScale              float64 `yaml:"inventory_cost_scale"`
	InventoryCostExponent           float64 `yaml:"inventory_cost_exponent"`
	InventoryCostDivisorRubber      float64 `yaml:"inventory_cost_divisor_rubber"`
	InventoryCostDivisorRubberbands float64 `yaml:"inventory_cost_divisor_rubberbands"`

	OilReservesLimit      float64 `yaml:"oil_reserves_limit"`
	EarthResourceLimit    float64 `yaml:"earth_resource_limit"`
	UniverseResourceLimit float64 `yaml:"universe_resource_limit"`
	ResourceCostMachine   float64 `yaml:"resource_cost_machine"`
	ResourceCostNanobot   float64 `yaml:"resource_cost_nanobot"`

	LandSurfaceLimit    float64 `yaml:"land_surface_limit"`
	GalaxySurfaceLimit  float64 `yaml:"galaxy_surface_limit"`
	SpaceCostRubber     float64 `yaml:"space_cost_rubber"`
	SpaceCostRubberband float64 `yaml:"space_cost_rubberband"`

	NanobotFactoryCost       float64 `yaml:"nanobot_factory_cost"`
	NanobotFactoryCostFactor float64 `yaml:"nanobot_factory_cost_factor"`
	NanobotFactoryThreshold  float64 `yaml:"nanobot_factory_threshold"`
	NanobotFactoryOutput     float64 `yaml:"nanobot_factory_output"`
	NanoBoost                float64 `yaml:"nano_boost"`
	NanotechResearch         string  `yaml:"nanotech_research"`
	NanoSwarmFamily          string  `yaml:"nano_swarm_family"`
}
