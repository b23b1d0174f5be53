package savegame

import (
	"encoding/json"
	"fmt"
)

// NanoAllocation is the persisted share of automation units per category.
type NanoAllocation struct {
	RubberMachines  float64 `json:"rubber_machines"`
	BanderMachines  float64 `json:"bander_machines"`
	ProductionLines float64 `json:"production_lines"`
	Nanobots        float64 `json:"nanobots"`
}

// Data is the current persisted game shape. Field names match the flat
// record keys.
type Data struct {
	Money                   float64              `json:"money"`
	Rubberbands             float64              `json:"rubberbands"`
	Rubber                  float64              `json:"rubber"`
	Producers               map[string][]float64 `json:"producers"`
	PurchasedProducers      map[string][]float64 `json:"purchasedProducers"`
	TotalRubberbandsSold    float64              `json:"totalRubberbandsSold"`
	BuyerHired              bool                 `json:"buyerHired"`
	BuyerThreshold          float64              `json:"buyerThreshold"`
	RubberPrice             float64              `json:"rubberPrice"`
	RubberbandPrice         float64              `json:"rubberbandPrice"`
	TickCount               int64                `json:"tickCount"`
	MarketingLevel          int                  `json:"marketingLevel"`
	LastMarketingUpdateTick int64                `json:"lastMarketingUpdateTick"`
	Researched              []string             `json:"researched"`
	GameStartTime           int64                `json:"gameStartTime"`
	TotalRubberProduced     float64              `json:"totalRubberProduced"`
	TotalNanobotsProduced   float64              `json:"totalNanobotsProduced"`
	ConsumedResources       float64              `json:"consumedResources"`
	GameOver                bool                 `json:"gameOver"`
	NanobotCount            float64              `json:"nanobotCount"`
	NanobotFactoryCount     int                  `json:"nanobotFactoryCount"`
	NanoAllocation          NanoAllocation       `json:"nanoAllocation"`
}

// Record returns d as a flat record.
func (d *Data) Record() (Record, error) {
	raw, err := json.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("savegame: cannot encode: %w", err)
	}
	var r Record
	if err := json.Unmarshal(raw, &r); err != nil {
		return nil, fmt.Errorf("savegame: cannot encode: %w", err)
	}
	return r, nil
}

// Decode maps a migrated record onto defaults. Fields absent from the
// record (or null) keep their default value. Collections in defaults
// must not be shared with live state since they are written into.
func Decode(r Record, defaults Data) (Data, error) {
	raw, err := json.Marshal(r)
	if err != nil {
		return defaults, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	d := defaults
	if err := json.Unmarshal(raw, &d); err != nil {
		return defaults, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return d, nil
}
