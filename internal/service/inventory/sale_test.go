package inventory

import (
	"errors"
	"reflect"
	"testing"

	"github.com/mamadbah2/butcher/internal/domain/errs"
	"github.com/mamadbah2/butcher/internal/domain/models"
)

func allocateFixture(t *testing.T) []models.AnimalBatch {
	t.Helper()
	allocator := NewAllocator(sequentialIDs(), fixedClock)

	pork, err := allocator.Allocate(models.AnimalPork, 100)
	if err != nil {
		t.Fatalf("Failed to allocate pork: %v", err)
	}
	beef, err := allocator.Allocate(models.AnimalBeef, 250)
	if err != nil {
		t.Fatalf("Failed to allocate beef: %v", err)
	}
	// newest first, as stored
	return []models.AnimalBatch{beef, pork}
}

func availableByID(batches []models.AnimalBatch) map[string]float64 {
	out := map[string]float64{}
	for _, b := range batches {
		for _, c := range b.Cuts {
			out[c.ID] = c.AvailableWeight
		}
	}
	return out
}

func TestProcess_DecrementsOnlyRequestedCuts(t *testing.T) {
	batches := allocateFixture(t)
	before := availableByID(batches)
	processor := NewSaleProcessor(sequentialIDs(), fixedClock)

	cart := []models.CartLine{
		{CutID: "BATCH-1-CUT-0", Weight: 2.5},
		{CutID: "BATCH-2-CUT-0", Weight: 1.25},
	}

	order, updated, err := processor.Process(cart, "  Carnicería Don Pepe ", batches)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	after := availableByID(updated)
	for id, was := range before {
		want := was
		switch id {
		case "BATCH-1-CUT-0":
			want = was - 2.5
		case "BATCH-2-CUT-0":
			want = was - 1.25
		}
		if !almostEqual(after[id], want) {
			t.Errorf("Cut %s: expected %v available, got %v", id, want, after[id])
		}
	}

	if !reflect.DeepEqual(availableByID(batches), before) {
		t.Error("Expected input batches to remain unchanged")
	}

	if order.ID != "ORD-1" || order.CustomerName != "Carnicería Don Pepe" {
		t.Errorf("Unexpected order header: %+v", order)
	}
	if !order.CreatedAt.Equal(fixedNow) {
		t.Errorf("Expected created at %v, got %v", fixedNow, order.CreatedAt)
	}
	if len(order.Items) != 2 {
		t.Fatalf("Expected 2 items, got %d", len(order.Items))
	}

	costilla := order.Items[0]
	if costilla.Name != "Costilla (BATCH-1)" || costilla.Price != 300 || costilla.Weight != 2.5 {
		t.Errorf("Unexpected pork item: %+v", costilla)
	}
	lomoFino := order.Items[1]
	if lomoFino.Name != "Lomo Fino (BATCH-2)" || lomoFino.Price != 350 {
		t.Errorf("Unexpected beef item: %+v", lomoFino)
	}
	if order.Total != 650 {
		t.Errorf("Expected total 650, got %v", order.Total)
	}
}

func TestProcess_SequentialSalesScenario(t *testing.T) {
	batches := allocateFixture(t)
	processor := NewSaleProcessor(sequentialIDs(), fixedClock)
	cart := []models.CartLine{{CutID: "BATCH-1-CUT-0", Weight: 5}}

	for i := 0; i < 2; i++ {
		_, updated, err := processor.Process(cart, "Cliente", batches)
		if err != nil {
			t.Fatalf("Sale %d: unexpected error %v", i+1, err)
		}
		batches = updated
	}

	if got := availableByID(batches)["BATCH-1-CUT-0"]; got != 1.00 {
		t.Fatalf("Expected 1.00 kg left, got %v", got)
	}

	_, updated, err := processor.Process([]models.CartLine{{CutID: "BATCH-1-CUT-0", Weight: 2}}, "Cliente", batches)
	if !errors.Is(err, errs.ErrInsufficientStock) {
		t.Fatalf("Expected ErrInsufficientStock, got %v", err)
	}
	if updated != nil {
		t.Error("Expected no batches on failure")
	}
	if got := availableByID(batches)["BATCH-1-CUT-0"]; got != 1.00 {
		t.Errorf("Expected 1.00 kg left after rejected sale, got %v", got)
	}
}

func TestProcess_AllOrNothing(t *testing.T) {
	batches := allocateFixture(t)
	before := availableByID(batches)
	processor := NewSaleProcessor(sequentialIDs(), fixedClock)

	cart := []models.CartLine{
		{CutID: "BATCH-1-CUT-1", Weight: 1},
		{CutID: "BATCH-1-CUT-2", Weight: 500},
	}

	_, updated, err := processor.Process(cart, "Cliente", batches)
	if !errs.IsValidation(err) {
		t.Fatalf("Expected validation error, got %v", err)
	}
	if updated != nil {
		t.Error("Expected no batches on failure")
	}
	if !reflect.DeepEqual(availableByID(batches), before) {
		t.Error("Expected every cut to keep its available weight")
	}
}

func TestProcess_SameCutTwiceCountsCumulatively(t *testing.T) {
	batches := allocateFixture(t)
	processor := NewSaleProcessor(sequentialIDs(), fixedClock)

	// Costilla holds 11 kg.
	cart := []models.CartLine{
		{CutID: "BATCH-1-CUT-0", Weight: 6},
		{CutID: "BATCH-1-CUT-0", Weight: 6},
	}
	if _, _, err := processor.Process(cart, "Cliente", batches); !errors.Is(err, errs.ErrInsufficientStock) {
		t.Errorf("Expected ErrInsufficientStock, got %v", err)
	}

	cart[1].Weight = 5
	_, updated, err := processor.Process(cart, "Cliente", batches)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if got := availableByID(updated)["BATCH-1-CUT-0"]; got != 0 {
		t.Errorf("Expected cut sold out, got %v", got)
	}
}

func TestProcess_UnknownCut(t *testing.T) {
	batches := allocateFixture(t)
	processor := NewSaleProcessor(sequentialIDs(), fixedClock)

	_, _, err := processor.Process([]models.CartLine{{CutID: "X", Weight: 3}}, "Cliente", batches)
	if !errors.Is(err, errs.ErrCutNotFound) {
		t.Fatalf("Expected ErrCutNotFound, got %v", err)
	}
	var nf *errs.NotFoundError
	if !errors.As(err, &nf) || nf.CutID != "X" {
		t.Errorf("Expected NotFoundError for X, got %v", err)
	}
	if !errs.IsValidation(err) {
		t.Error("Expected not found to count as validation failure")
	}
}

func TestProcess_ValidationFailures(t *testing.T) {
	batches := allocateFixture(t)
	processor := NewSaleProcessor(sequentialIDs(), fixedClock)

	tests := []struct {
		name     string
		customer string
		cart     []models.CartLine
		want     error
	}{
		{"empty_customer", "", []models.CartLine{{CutID: "BATCH-1-CUT-0", Weight: 1}}, errs.ErrEmptyCustomer},
		{"blank_customer", "   ", []models.CartLine{{CutID: "BATCH-1-CUT-0", Weight: 1}}, errs.ErrEmptyCustomer},
		{"empty_cart", "Cliente", nil, errs.ErrEmptyCart},
		{"zero_weight", "Cliente", []models.CartLine{{CutID: "BATCH-1-CUT-0", Weight: 0}}, errs.ErrInvalidWeight},
		{"negative_weight", "Cliente", []models.CartLine{{CutID: "BATCH-1-CUT-0", Weight: -1}}, errs.ErrInvalidWeight},
		{"over_stock", "Cliente", []models.CartLine{{CutID: "BATCH-1-CUT-0", Weight: 11.01}}, errs.ErrInsufficientStock},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := processor.Process(tt.cart, tt.customer, batches)
			if !errors.Is(err, tt.want) {
				t.Errorf("Expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestProcess_ExactDecimalDecrement(t *testing.T) {
	batches := []models.AnimalBatch{{
		ID:   "BATCH-X",
		Type: models.AnimalBeef,
		Cuts: []models.CutInventory{{ID: "BATCH-X-CUT-0", Name: "Falda", Type: models.AnimalBeef, TotalWeight: 11.55, AvailableWeight: 11.55, UnitPrice: 140}},
	}}
	processor := NewSaleProcessor(sequentialIDs(), fixedClock)

	order, updated, err := processor.Process([]models.CartLine{{CutID: "BATCH-X-CUT-0", Weight: 0.1}}, "Cliente", batches)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if got := updated[0].Cuts[0].AvailableWeight; got != 11.45 {
		t.Errorf("Expected 11.45 kg left, got %v", got)
	}
	if order.Total != 14 {
		t.Errorf("Expected total 14, got %v", order.Total)
	}

	// selling the exact remainder empties the cut
	_, updated, err = processor.Process([]models.CartLine{{CutID: "BATCH-X-CUT-0", Weight: 11.45}}, "Cliente", updated)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if got := updated[0].Cuts[0].AvailableWeight; got != 0 {
		t.Errorf("Expected 0 kg left, got %v", got)
	}
}

func TestProcess_PriceRoundedToCents(t *testing.T) {
	batches := allocateFixture(t)
	processor := NewSaleProcessor(sequentialIDs(), fixedClock)

	// Espinazo at 70/kg: 0.333 kg -> 23.31
	order, _, err := processor.Process([]models.CartLine{{CutID: "BATCH-1-CUT-2", Weight: 0.333}}, "Cliente", batches)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if order.Items[0].Price != 23.31 || order.Total != 23.31 {
		t.Errorf("Expected price and total 23.31, got %v/%v", order.Items[0].Price, order.Total)
	}
}
