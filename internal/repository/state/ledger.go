// Package state keeps the batch collection and the order history in two named
// string slots of a kv.Store, serialized as JSON arrays, newest first.
package state

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/mamadbah2/butcher/internal/domain/errs"
	"github.com/mamadbah2/butcher/internal/domain/models"
	"github.com/mamadbah2/butcher/internal/repository/kv"
)

const (
	BatchesSlot = "batches"
	OrdersSlot  = "orders"
)

// Ledger owns both slots and sequences the writes of a sale.
type Ledger struct {
	store  kv.Store
	prefix string
	logger *zap.Logger
}

// NewLedger binds the slots to store. A non-empty prefix namespaces the slot keys.
func NewLedger(store kv.Store, prefix string, logger *zap.Logger) *Ledger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Ledger{store: store, prefix: prefix, logger: logger}
}

// Batches returns the inventory store.
func (l *Ledger) Batches() *BatchStore { return &BatchStore{ledger: l} }

// Orders returns the order store.
func (l *Ledger) Orders() *OrderStore { return &OrderStore{ledger: l} }

func (l *Ledger) key(slot string) string {
	if l.prefix == "" {
		return slot
	}
	return l.prefix + ":" + slot
}

// CommitSale writes the decremented batches, then prepends the order. When the
// store supports multi-slot writes both slots change together; otherwise a
// failure on the second write leaves the stock decremented with no order.
func (l *Ledger) CommitSale(ctx context.Context, batches []models.AnimalBatch, order models.SaleOrder) error {
	orders, err := l.Orders().List(ctx)
	if err != nil {
		return err
	}
	if err := ensureUnique(orders, order.ID, func(o models.SaleOrder) string { return o.ID }); err != nil {
		return err
	}

	batchesValue, err := encode(batches)
	if err != nil {
		return err
	}
	ordersValue, err := encode(prepend(orders, order))
	if err != nil {
		return err
	}

	batchesKey, ordersKey := l.key(BatchesSlot), l.key(OrdersSlot)

	if setter, ok := l.store.(kv.BatchSetter); ok {
		err := setter.SetMany(ctx, map[string]string{batchesKey: batchesValue, ordersKey: ordersValue})
		return errs.Storage("set", batchesKey+"+"+ordersKey, err)
	}

	if err := l.store.Set(ctx, batchesKey, batchesValue); err != nil {
		return errs.Storage("set", batchesKey, err)
	}
	if err := l.store.Set(ctx, ordersKey, ordersValue); err != nil {
		l.logger.Error("inventory decremented but order not recorded",
			zap.String("order_id", order.ID), zap.Error(err))
		return errs.Storage("set", ordersKey, err)
	}
	return nil
}

func load[T any](ctx context.Context, l *Ledger, slot string) ([]T, error) {
	key := l.key(slot)
	raw, ok, err := l.store.Get(ctx, key)
	if err != nil {
		return nil, errs.Storage("get", key, err)
	}
	out := []T{}
	if !ok || raw == "" {
		return out, nil
	}
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil, errs.Storage("decode", key, fmt.Errorf("corrupt slot: %w", err))
	}
	return out, nil
}

func save[T any](ctx context.Context, l *Ledger, slot string, values []T) error {
	key := l.key(slot)
	raw, err := encode(values)
	if err != nil {
		return err
	}
	return errs.Storage("set", key, l.store.Set(ctx, key, raw))
}

func encode[T any](values []T) (string, error) {
	if values == nil {
		values = []T{}
	}
	raw, err := json.Marshal(values)
	if err != nil {
		return "", errs.Storage("encode", "", err)
	}
	return string(raw), nil
}

func prepend[T any](values []T, v T) []T {
	out := make([]T, 0, len(values)+1)
	out = append(out, v)
	return append(out, values...)
}

func ensureUnique[T any](values []T, id string, idOf func(T) string) error {
	for _, v := range values {
		if idOf(v) == id {
			return errs.Invalid("id", errs.ErrDuplicateID, "%s", id)
		}
	}
	return nil
}
