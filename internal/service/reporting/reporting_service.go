package reporting

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/mamadbah2/butcher/internal/domain/models"
	"github.com/mamadbah2/butcher/internal/domain/yield"
	"github.com/mamadbah2/butcher/internal/repository/mongodb"
	"github.com/mamadbah2/butcher/internal/repository/sheets"
)

const (
	dateLayout        = "2006-01-02"
	reportsWriteRange = "Reports!A:G"
	// DefaultRecent is the number of orders shown on the dashboard.
	DefaultRecent = 5
)

// InventoryReader is the read side of the inventory service.
type InventoryReader interface {
	ListBatches(ctx context.Context, filter models.AnimalType) ([]models.AnimalBatch, error)
	ListOrders(ctx context.Context) ([]models.SaleOrder, error)
}

// Service aggregates batches and orders into summaries.
type Service struct {
	inventory InventoryReader
	archive   mongodb.ReportArchive
	sheets    sheets.Repository
	location  *time.Location
	logger    *zap.Logger
	now       func() time.Time
}

// NewService wires a new reporting service instance. archive and sheetsRepo are optional.
func NewService(inventory InventoryReader, archive mongodb.ReportArchive, sheetsRepo sheets.Repository, location *time.Location, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if location == nil {
		location = time.UTC
	}
	return &Service{
		inventory: inventory,
		archive:   archive,
		sheets:    sheetsRepo,
		location:  location,
		logger:    logger,
		now:       time.Now,
	}
}

// Dashboard summarizes stock and sales. recent limits the orders returned; zero or
// less falls back to DefaultRecent.
func (s *Service) Dashboard(ctx context.Context, recent int) (models.DashboardSummary, error) {
	if recent <= 0 {
		recent = DefaultRecent
	}

	batches, err := s.inventory.ListBatches(ctx, "")
	if err != nil {
		return models.DashboardSummary{}, fmt.Errorf("load batches: %w", err)
	}
	orders, err := s.inventory.ListOrders(ctx)
	if err != nil {
		return models.DashboardSummary{}, fmt.Errorf("load orders: %w", err)
	}

	byType := stockByType(batches)
	total := decimal.Zero
	for _, kg := range byType {
		total = total.Add(decimal.NewFromFloat(kg))
	}

	sales := decimal.Zero
	for _, o := range orders {
		sales = sales.Add(decimal.NewFromFloat(o.Total))
	}

	count := len(orders)
	if count > recent {
		orders = orders[:recent]
	}

	return models.DashboardSummary{
		TotalStockKg: total.Round(2).InexactFloat64(),
		StockByType:  byType,
		TotalSales:   sales.Round(2).InexactFloat64(),
		OrderCount:   count,
		BatchCount:   len(batches),
		RecentOrders: orders,
	}, nil
}

// DailyReport computes the figures of the calendar day containing day, in the
// service timezone.
func (s *Service) DailyReport(ctx context.Context, day time.Time) (models.DailyReport, error) {
	local := day.In(s.location)
	start := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, s.location)
	end := start.AddDate(0, 0, 1)

	batches, err := s.inventory.ListBatches(ctx, "")
	if err != nil {
		return models.DailyReport{}, fmt.Errorf("load batches: %w", err)
	}
	orders, err := s.inventory.ListOrders(ctx)
	if err != nil {
		return models.DailyReport{}, fmt.Errorf("load orders: %w", err)
	}

	report := models.DailyReport{Date: start, CreatedAt: s.now().UTC()}

	sales, sold := decimal.Zero, decimal.Zero
	for _, o := range orders {
		if !within(o.CreatedAt, start, end) {
			continue
		}
		report.Orders++
		sales = sales.Add(decimal.NewFromFloat(o.Total))
		for _, item := range o.Items {
			sold = sold.Add(decimal.NewFromFloat(item.Weight))
		}
	}

	registered, stock := decimal.Zero, decimal.Zero
	for _, b := range batches {
		if within(b.CreatedAt, start, end) {
			report.BatchesIn++
			registered = registered.Add(decimal.NewFromFloat(b.InitialWeight))
		}
		for _, c := range b.Cuts {
			stock = stock.Add(decimal.NewFromFloat(c.AvailableWeight))
		}
	}

	report.SalesAmount = sales.Round(2).InexactFloat64()
	report.KgSold = sold.Round(2).InexactFloat64()
	report.KgRegistered = registered.Round(2).InexactFloat64()
	report.KgInStock = stock.Round(2).InexactFloat64()
	return report, nil
}

// CloseDay builds the daily report, archives it and exports it where configured,
// and returns the message to send. Archive and export failures are logged only.
func (s *Service) CloseDay(ctx context.Context, day time.Time) (models.DailyReport, string, error) {
	report, err := s.DailyReport(ctx, day)
	if err != nil {
		return models.DailyReport{}, "", err
	}

	if s.archive != nil {
		if err := s.archive.SaveDailyReport(ctx, report); err != nil {
			s.logger.Error("failed to archive daily report", zap.Error(err))
		}
	}

	if s.sheets != nil {
		row := []interface{}{
			report.Date.Format(dateLayout), report.Orders, report.SalesAmount,
			report.KgSold, report.BatchesIn, report.KgRegistered, report.KgInStock,
		}
		if err := s.sheets.AppendRows(ctx, reportsWriteRange, [][]interface{}{row}); err != nil {
			s.logger.Error("failed to export daily report", zap.Error(err))
		}
	}

	return report, FormatDailyReport(report), nil
}

// FormatDailyReport renders the report as a short text message.
func FormatDailyReport(r models.DailyReport) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Cierre %s\n", r.Date.Format(dateLayout))
	fmt.Fprintf(&b, "Ventas: %d pedidos, $%.2f\n", r.Orders, r.SalesAmount)
	fmt.Fprintf(&b, "Vendido: %.2f kg\n", r.KgSold)
	fmt.Fprintf(&b, "Ingresos: %d animales, %.2f kg\n", r.BatchesIn, r.KgRegistered)
	fmt.Fprintf(&b, "En stock: %.2f kg", r.KgInStock)
	return b.String()
}

func stockByType(batches []models.AnimalBatch) map[models.AnimalType]float64 {
	sums := make(map[models.AnimalType]decimal.Decimal, len(yield.Types()))
	for _, t := range yield.Types() {
		sums[t] = decimal.Zero
	}
	for _, b := range batches {
		for _, c := range b.Cuts {
			sums[b.Type] = sums[b.Type].Add(decimal.NewFromFloat(c.AvailableWeight))
		}
	}

	out := make(map[models.AnimalType]float64, len(sums))
	for t, kg := range sums {
		out[t] = kg.Round(2).InexactFloat64()
	}
	return out
}

func within(t, start, end time.Time) bool {
	return !t.Before(start) && t.Before(end)
}
