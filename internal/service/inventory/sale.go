package inventory

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mamadbah2/butcher/internal/domain/errs"
	"github.com/mamadbah2/butcher/internal/domain/models"
)

// SaleProcessor validates a cart against the current batches and produces
// the order together with the decremented batches.
type SaleProcessor struct {
	newID IDGenerator
	now   func() time.Time
}

// NewSaleProcessor wires a processor. Nil arguments fall back to RandomID and time.Now.
func NewSaleProcessor(newID IDGenerator, now func() time.Time) *SaleProcessor {
	if newID == nil {
		newID = RandomID
	}
	if now == nil {
		now = time.Now
	}
	return &SaleProcessor{newID: newID, now: now}
}

type cutRef struct {
	batch int
	cut   int
}

// Process applies the cart to a copy of batches. Either every line validates
// and the returned batches carry all decrements, or an error is returned and
// the input is left untouched. Persisting the result is up to the caller.
func (p *SaleProcessor) Process(cart []models.CartLine, customerName string, batches []models.AnimalBatch) (models.SaleOrder, []models.AnimalBatch, error) {
	customer := strings.TrimSpace(customerName)
	if customer == "" {
		return models.SaleOrder{}, nil, errs.Invalid("customerName", errs.ErrEmptyCustomer, "")
	}
	if len(cart) == 0 {
		return models.SaleOrder{}, nil, errs.Invalid("items", errs.ErrEmptyCart, "")
	}

	updated := make([]models.AnimalBatch, len(batches))
	index := make(map[string]cutRef)
	for i, b := range batches {
		updated[i] = b.Clone()
		for j, cut := range b.Cuts {
			if _, seen := index[cut.ID]; !seen {
				index[cut.ID] = cutRef{batch: i, cut: j}
			}
		}
	}

	items := make([]models.SaleItem, 0, len(cart))
	total := decimal.Zero

	for n, line := range cart {
		if !validWeight(line.Weight) {
			return models.SaleOrder{}, nil, errs.Invalid(fmt.Sprintf("items[%d].weight", n), errs.ErrInvalidWeight, "got %v", line.Weight)
		}

		ref, ok := index[line.CutID]
		if !ok {
			return models.SaleOrder{}, nil, &errs.NotFoundError{CutID: line.CutID}
		}
		batch := &updated[ref.batch]
		cut := &batch.Cuts[ref.cut]

		requested := decimal.NewFromFloat(line.Weight)
		available := decimal.NewFromFloat(cut.AvailableWeight)
		if requested.GreaterThan(available) {
			return models.SaleOrder{}, nil, errs.Invalid(fmt.Sprintf("items[%d].weight", n), errs.ErrInsufficientStock,
				"%s: requested %v kg, available %v kg", cut.ID, line.Weight, cut.AvailableWeight)
		}

		price := requested.Mul(decimal.NewFromFloat(cut.UnitPrice)).Round(2)
		items = append(items, models.SaleItem{
			CutID:  cut.ID,
			Name:   fmt.Sprintf("%s (%s)", cut.Name, batch.ID),
			Weight: line.Weight,
			Price:  price.InexactFloat64(),
		})
		total = total.Add(price)

		remaining := available.Sub(requested)
		if remaining.IsNegative() {
			remaining = decimal.Zero
		}
		cut.AvailableWeight = remaining.InexactFloat64()
	}

	order := models.SaleOrder{
		ID:           p.newID(orderPrefix),
		CustomerName: customer,
		CreatedAt:    p.now(),
		Items:        items,
		Total:        total.InexactFloat64(),
	}

	return order, updated, nil
}
