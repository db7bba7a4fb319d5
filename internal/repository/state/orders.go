package state

import (
	"context"

	"github.com/mamadbah2/butcher/internal/domain/models"
)

// OrderStore is the append-only order history slot.
type OrderStore struct {
	ledger *Ledger
}

// List decodes the stored orders, newest first.
func (s *OrderStore) List(ctx context.Context) ([]models.SaleOrder, error) {
	return load[models.SaleOrder](ctx, s.ledger, OrdersSlot)
}

// Append stores order in front of the existing ones. Reusing an id is rejected.
func (s *OrderStore) Append(ctx context.Context, order models.SaleOrder) error {
	orders, err := s.List(ctx)
	if err != nil {
		return err
	}
	if err := ensureUnique(orders, order.ID, func(o models.SaleOrder) string { return o.ID }); err != nil {
		return err
	}
	return save(ctx, s.ledger, OrdersSlot, prepend(orders, order))
}
