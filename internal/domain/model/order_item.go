package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderItem struct {
	ID          int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID     int64           `gorm:"not null;index" json:"order_id"`
	ProductID   int64           `gorm:"not null;index" json:"product_id"`
	ProductName string          `gorm:"type:varchar(255);not null" json:"product_name"`
	Quantity    int64           `gorm:"not null" json:"quantity"`
	UnitPrice   decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"unit_price"`
	Subtotal    decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"subtotal"`
	CreatedAt   time.Time       `gorm:"not null;autoCreateTime" json:"created_at"`
}

// 注文時の価格で明細を作る
func NewOrderItem(p Product, qty int64) OrderItem {
	return OrderItem{
		ProductID:   p.ID,
		ProductName: p.Name,
		Quantity:    qty,
		UnitPrice:   p.Price,
		Subtotal:    p.Price.Mul(decimal.NewFromInt(qty)),
	}
}
