package models

import "time"

// DashboardSummary is the business overview shown on the dashboard.
type DashboardSummary struct {
	TotalStockKg float64                `json:"totalStockKg"`
	StockByType  map[AnimalType]float64 `json:"stockByType"`
	TotalSales   float64                `json:"totalSales"`
	OrderCount   int                    `json:"orderCount"`
	BatchCount   int                    `json:"batchCount"`
	RecentOrders []SaleOrder            `json:"recentOrders"`
}

// DailyReport represents the closing figures of one business day.
type DailyReport struct {
	Date         time.Time `bson:"date" json:"date"`
	Orders       int       `bson:"orders" json:"orders"`
	SalesAmount  float64   `bson:"sales_amount" json:"salesAmount"`
	KgSold       float64   `bson:"kg_sold" json:"kgSold"`
	BatchesIn    int       `bson:"batches_in" json:"batchesIn"`
	KgRegistered float64   `bson:"kg_registered" json:"kgRegistered"`
	KgInStock    float64   `bson:"kg_in_stock" json:"kgInStock"`
	CreatedAt    time.Time `bson:"created_at" json:"createdAt"`
}
