package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// completedになった注文の売上記録
type Sale struct {
	ID          int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID     int64           `gorm:"not null;uniqueIndex" json:"order_id"`
	SaleDate    time.Time       `gorm:"not null;index" json:"sale_date"`
	TotalAmount decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"total_amount"`
	Profit      decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"profit"`
}
