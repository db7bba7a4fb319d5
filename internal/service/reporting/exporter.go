package reporting

import (
	"context"

	"github.com/mamadbah2/butcher/internal/domain/models"
	"github.com/mamadbah2/butcher/internal/repository/sheets"
)

const salesWriteRange = "Sales!A:F"

// SheetsExporter appends every order line to the sales sheet.
type SheetsExporter struct {
	repo sheets.Repository
}

// NewSheetsExporter wraps a sheets repository.
func NewSheetsExporter(repo sheets.Repository) *SheetsExporter {
	return &SheetsExporter{repo: repo}
}

// ExportOrder writes one row per item: date, order id, customer, cut, kg, price.
func (e *SheetsExporter) ExportOrder(ctx context.Context, order models.SaleOrder) error {
	rows := make([][]interface{}, 0, len(order.Items))
	for _, item := range order.Items {
		rows = append(rows, []interface{}{
			order.CreatedAt.Format(dateLayout),
			order.ID,
			order.CustomerName,
			item.Name,
			item.Weight,
			item.Price,
		})
	}
	return e.repo.AppendRows(ctx, salesWriteRange, rows)
}
