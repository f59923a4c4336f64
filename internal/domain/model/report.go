package model

import "github.com/shopspring/decimal"

type DashboardStats struct {
	TotalProducts    int64           `json:"total_products"`
	TotalCustomers   int64           `json:"total_customers"`
	TotalOrders      int64           `json:"total_orders"`
	PendingOrders    int64           `json:"pending_orders"`
	TotalSales       decimal.Decimal `json:"total_sales"`
	LowStockProducts int64           `json:"low_stock_products"`
}

// 日別売上（completedのみ）
type DailySales struct {
	Date       string          `json:"date"`
	OrderCount int64           `json:"order_count"`
	TotalSales decimal.Decimal `json:"total_sales"`
}
