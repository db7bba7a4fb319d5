// Package inventory implements batch registration and sale recording for the shop.
package inventory

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/butcher/internal/domain/errs"
	"github.com/mamadbah2/butcher/internal/domain/models"
	"github.com/mamadbah2/butcher/internal/domain/yield"
)

const ledgerLockKey = "ledger"

// BatchStore persists the batch collection, newest first.
type BatchStore interface {
	List(ctx context.Context) ([]models.AnimalBatch, error)
	Append(ctx context.Context, batch models.AnimalBatch) error
	ReplaceAll(ctx context.Context, batches []models.AnimalBatch) error
}

// OrderStore persists the order history, newest first.
type OrderStore interface {
	List(ctx context.Context) ([]models.SaleOrder, error)
	Append(ctx context.Context, order models.SaleOrder) error
}

// SaleCommitter writes the decremented batches and then the new order.
// Implementations without a transactional backend may fail between both writes,
// leaving stock decremented without an order record.
type SaleCommitter interface {
	CommitSale(ctx context.Context, batches []models.AnimalBatch, order models.SaleOrder) error
}

// Locker serializes every read-modify-write of the batches and orders slots.
type Locker interface {
	Lock(ctx context.Context, key string) (unlock func(), err error)
}

// OrderExporter receives every committed order. Export failures never fail a sale.
type OrderExporter interface {
	ExportOrder(ctx context.Context, order models.SaleOrder) error
}

// Service is the entry point used by the presentation layer.
type Service struct {
	batches   BatchStore
	orders    OrderStore
	committer SaleCommitter
	locker    Locker
	allocator *Allocator
	processor *SaleProcessor
	exporter  OrderExporter
	logger    *zap.Logger
}

// Option customizes a Service.
type Option func(*Service)

// WithClock replaces the clock used for batch and order timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.allocator.now = now
		s.processor.now = now
	}
}

// WithIDGenerator replaces the identifier source for batches and orders.
func WithIDGenerator(gen IDGenerator) Option {
	return func(s *Service) {
		s.allocator.newID = gen
		s.processor.newID = gen
	}
}

// WithExporter registers an exporter notified after each committed sale.
func WithExporter(exporter OrderExporter) Option {
	return func(s *Service) { s.exporter = exporter }
}

// NewService wires the inventory service.
func NewService(batches BatchStore, orders OrderStore, committer SaleCommitter, locker Locker, logger *zap.Logger, opts ...Option) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if locker == nil {
		locker = newMutexLocker()
	}
	svc := &Service{
		batches:   batches,
		orders:    orders,
		committer: committer,
		locker:    locker,
		allocator: NewAllocator(nil, nil),
		processor: NewSaleProcessor(nil, nil),
		logger:    logger,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

// Catalog returns the yield formula for an animal type.
func (s *Service) Catalog(animal models.AnimalType) ([]models.CutDefinition, error) {
	if !animal.Valid() {
		return nil, errs.Invalid("type", errs.ErrUnknownAnimalType, "%q", animal)
	}
	return yield.Lookup(animal), nil
}

// AllocateBatch computes a batch without persisting it.
func (s *Service) AllocateBatch(animal models.AnimalType, weight float64) (models.AnimalBatch, error) {
	batch, err := s.allocator.Allocate(animal, weight)
	if err != nil {
		s.logger.Warn("batch rejected", zap.String("type", string(animal)), zap.Float64("weight", weight), zap.Error(err))
		return models.AnimalBatch{}, err
	}
	return batch, nil
}

// PersistBatch appends an allocated batch to the inventory.
func (s *Service) PersistBatch(ctx context.Context, batch models.AnimalBatch) error {
	unlock, err := s.lock(ctx)
	if err != nil {
		return err
	}
	defer unlock()

	if err := s.batches.Append(ctx, batch); err != nil {
		return fmt.Errorf("persist batch %s: %w", batch.ID, err)
	}
	s.logger.Info("batch registered",
		zap.String("batch_id", batch.ID),
		zap.String("type", string(batch.Type)),
		zap.Float64("weight", batch.InitialWeight),
		zap.Int("cuts", len(batch.Cuts)))
	return nil
}

// RegisterBatch allocates and persists a batch in one step.
func (s *Service) RegisterBatch(ctx context.Context, animal models.AnimalType, weight float64) (models.AnimalBatch, error) {
	batch, err := s.AllocateBatch(animal, weight)
	if err != nil {
		return models.AnimalBatch{}, err
	}
	if err := s.PersistBatch(ctx, batch); err != nil {
		return models.AnimalBatch{}, err
	}
	return batch, nil
}

// ListBatches returns stored batches, newest first. An empty filter returns every type.
func (s *Service) ListBatches(ctx context.Context, filter models.AnimalType) ([]models.AnimalBatch, error) {
	batches, err := s.batches.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list batches: %w", err)
	}
	if filter == "" {
		return batches, nil
	}

	filtered := make([]models.AnimalBatch, 0, len(batches))
	for _, b := range batches {
		if b.Type == filter {
			filtered = append(filtered, b)
		}
	}
	return filtered, nil
}

// AvailableCuts flattens every cut that still has stock, newest batch first.
func (s *Service) AvailableCuts(ctx context.Context) ([]models.AvailableCut, error) {
	batches, err := s.ListBatches(ctx, "")
	if err != nil {
		return nil, err
	}

	var cuts []models.AvailableCut
	for _, b := range batches {
		for _, c := range b.Cuts {
			if c.AvailableWeight > 0 {
				cuts = append(cuts, models.AvailableCut{CutInventory: c, BatchID: b.ID})
			}
		}
	}
	return cuts, nil
}

// ProcessSale validates the cart against current stock and returns the order and
// the decremented batches without persisting either.
func (s *Service) ProcessSale(ctx context.Context, customerName string, cart []models.CartLine) (models.SaleOrder, []models.AnimalBatch, error) {
	batches, err := s.batches.List(ctx)
	if err != nil {
		return models.SaleOrder{}, nil, fmt.Errorf("load batches: %w", err)
	}
	return s.processor.Process(cart, customerName, batches)
}

// RecordSale processes the cart and commits the decremented stock and the order.
// A rejected cart leaves both stores unchanged.
func (s *Service) RecordSale(ctx context.Context, customerName string, cart []models.CartLine) (models.SaleOrder, error) {
	unlock, err := s.lock(ctx)
	if err != nil {
		return models.SaleOrder{}, err
	}
	defer unlock()

	order, batches, err := s.ProcessSale(ctx, customerName, cart)
	if err != nil {
		if errs.IsValidation(err) {
			s.logger.Warn("sale rejected", zap.String("customer", customerName), zap.Int("lines", len(cart)), zap.Error(err))
		}
		return models.SaleOrder{}, err
	}

	if err := s.committer.CommitSale(ctx, batches, order); err != nil {
		s.logger.Error("sale commit failed", zap.String("order_id", order.ID), zap.Error(err))
		return models.SaleOrder{}, fmt.Errorf("commit sale %s: %w", order.ID, err)
	}

	s.logger.Info("sale recorded",
		zap.String("order_id", order.ID),
		zap.String("customer", order.CustomerName),
		zap.Int("items", len(order.Items)),
		zap.Float64("total", order.Total))

	if s.exporter != nil {
		if err := s.exporter.ExportOrder(ctx, order); err != nil {
			s.logger.Warn("order export failed", zap.String("order_id", order.ID), zap.Error(err))
		}
	}

	return order, nil
}

// PersistOrder appends an already processed order to the history.
func (s *Service) PersistOrder(ctx context.Context, order models.SaleOrder) error {
	unlock, err := s.lock(ctx)
	if err != nil {
		return err
	}
	defer unlock()

	if err := s.orders.Append(ctx, order); err != nil {
		return fmt.Errorf("persist order %s: %w", order.ID, err)
	}
	return nil
}

// lock takes the ledger lock shared by batch registration, order appends and sales.
func (s *Service) lock(ctx context.Context) (func(), error) {
	unlock, err := s.locker.Lock(ctx, ledgerLockKey)
	if err != nil {
		return nil, fmt.Errorf("lock ledger: %w", err)
	}
	return unlock, nil
}

// ListOrders returns the sales history, newest first.
func (s *Service) ListOrders(ctx context.Context) ([]models.SaleOrder, error) {
	orders, err := s.orders.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return orders, nil
}
