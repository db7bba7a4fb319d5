package inventory

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mamadbah2/butcher/internal/domain/errs"
	"github.com/mamadbah2/butcher/internal/domain/models"
	"github.com/mamadbah2/butcher/internal/domain/yield"
)

const (
	batchPrefix = "BATCH"
	orderPrefix = "ORD"
	idLength    = 12
)

// IDGenerator returns a fresh identifier carrying the given prefix.
type IDGenerator func(prefix string) string

// RandomID builds identifiers like BATCH-3F9A0C1D2E4B from a random UUID.
func RandomID(prefix string) string {
	token := strings.ReplaceAll(uuid.NewString(), "-", "")
	return prefix + "-" + strings.ToUpper(token[:idLength])
}

// Allocator turns a carcass weight into a batch of priced cuts.
type Allocator struct {
	newID IDGenerator
	now   func() time.Time
}

// NewAllocator wires an allocator. Nil arguments fall back to RandomID and time.Now.
func NewAllocator(newID IDGenerator, now func() time.Time) *Allocator {
	if newID == nil {
		newID = RandomID
	}
	if now == nil {
		now = time.Now
	}
	return &Allocator{newID: newID, now: now}
}

// Allocate builds a new batch for the animal type. Each cut receives
// round2(totalWeight * percentage) kilograms, fully available. Nothing is persisted.
func (a *Allocator) Allocate(animal models.AnimalType, totalWeight float64) (models.AnimalBatch, error) {
	if !animal.Valid() {
		return models.AnimalBatch{}, errs.Invalid("type", errs.ErrUnknownAnimalType, "%q", animal)
	}
	if !validWeight(totalWeight) {
		return models.AnimalBatch{}, errs.Invalid("weight", errs.ErrInvalidWeight, "got %v", totalWeight)
	}

	batchID := a.newID(batchPrefix)
	formulas := yield.Lookup(animal)
	cuts := make([]models.CutInventory, 0, len(formulas))

	weight := decimal.NewFromFloat(totalWeight)
	for i, f := range formulas {
		cutWeight := round2(weight.Mul(decimal.NewFromFloat(f.Percentage)))
		cuts = append(cuts, models.CutInventory{
			ID:              fmt.Sprintf("%s-CUT-%d", batchID, i),
			Name:            f.Name,
			Type:            animal,
			TotalWeight:     cutWeight,
			AvailableWeight: cutWeight,
			UnitPrice:       f.UnitPrice,
		})
	}

	return models.AnimalBatch{
		ID:            batchID,
		Type:          animal,
		InitialWeight: totalWeight,
		CreatedAt:     a.now(),
		Cuts:          cuts,
	}, nil
}

// round2 rounds half away from zero to two places, which is half-up for weights and prices.
func round2(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}

func validWeight(w float64) bool {
	return w > 0 && !math.IsInf(w, 0) && !math.IsNaN(w)
}
