package models

import "time"

// CartLine is a proposed, not yet committed, selection of a cut.
type CartLine struct {
	CutID  string  `json:"cutId" binding:"required"`
	Weight float64 `json:"weight" binding:"required,gt=0"`
}

// SaleItem is a committed order line. Price is captured at sale time as
// weight times unit price, rounded half-up to cents.
type SaleItem struct {
	CutID  string  `json:"cutId"`
	Name   string  `json:"name"`
	Weight float64 `json:"weight"`
	Price  float64 `json:"price"`
}

// SaleOrder is the immutable record of a completed sale.
type SaleOrder struct {
	ID           string     `json:"id"`
	CustomerName string     `json:"customerName"`
	CreatedAt    time.Time  `json:"date"`
	Items        []SaleItem `json:"items"`
	Total        float64    `json:"total"`
}

// Weight sums the kilograms sold across the order lines.
func (o SaleOrder) Weight() float64 {
	var total float64
	for _, item := range o.Items {
		total += item.Weight
	}
	return total
}
