package state

import (
	"context"

	"github.com/mamadbah2/butcher/internal/domain/models"
)

// BatchStore is the inventory slot.
type BatchStore struct {
	ledger *Ledger
}

// List decodes the stored batches, newest first.
func (s *BatchStore) List(ctx context.Context) ([]models.AnimalBatch, error) {
	return load[models.AnimalBatch](ctx, s.ledger, BatchesSlot)
}

// Append stores batch in front of the existing ones. Reusing an id is rejected.
func (s *BatchStore) Append(ctx context.Context, batch models.AnimalBatch) error {
	batches, err := s.List(ctx)
	if err != nil {
		return err
	}
	if err := ensureUnique(batches, batch.ID, func(b models.AnimalBatch) string { return b.ID }); err != nil {
		return err
	}
	return save(ctx, s.ledger, BatchesSlot, prepend(batches, batch))
}

// ReplaceAll overwrites the slot with batches.
func (s *BatchStore) ReplaceAll(ctx context.Context, batches []models.AnimalBatch) error {
	return save(ctx, s.ledger, BatchesSlot, batches)
}
