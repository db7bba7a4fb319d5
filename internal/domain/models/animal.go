package models

import "time"

// AnimalType identifies the species of a registered batch.
type AnimalType string

const (
	AnimalPork AnimalType = "CERDO"
	AnimalBeef AnimalType = "RES"
)

// Valid reports whether the type is one of the known animal types.
func (t AnimalType) Valid() bool {
	return t == AnimalPork || t == AnimalBeef
}

// CutDefinition is one row of the yield formula for an animal type.
type CutDefinition struct {
	Name       string  `json:"name"`
	Percentage float64 `json:"percentage"`
	UnitPrice  float64 `json:"unitPrice"`
}

// CutInventory tracks the stock of a single cut produced by a batch.
// Only AvailableWeight changes after allocation.
type CutInventory struct {
	ID              string     `json:"id"`
	Name            string     `json:"name"`
	Type            AnimalType `json:"type"`
	TotalWeight     float64    `json:"totalWeight"`
	AvailableWeight float64    `json:"availableWeight"`
	UnitPrice       float64    `json:"unitPrice"`
}

// AnimalBatch is one registered animal and the cuts it yielded.
type AnimalBatch struct {
	ID            string         `json:"id"`
	Type          AnimalType     `json:"type"`
	InitialWeight float64        `json:"initialWeight"`
	CreatedAt     time.Time      `json:"date"`
	Cuts          []CutInventory `json:"cuts"`
}

// AvailableWeight sums the remaining stock across the batch cuts.
func (b AnimalBatch) AvailableWeight() float64 {
	var total float64
	for _, cut := range b.Cuts {
		total += cut.AvailableWeight
	}
	return total
}

// Clone returns a deep copy so callers can mutate cuts without touching the original.
func (b AnimalBatch) Clone() AnimalBatch {
	cp := b
	cp.Cuts = append([]CutInventory(nil), b.Cuts...)
	return cp
}

// AvailableCut is a cut with stock left, flattened out of its batch for selection.
type AvailableCut struct {
	CutInventory
	BatchID string `json:"batchId"`
}
