package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// cartテーブルの1行。(user_id, product_id)で一意
type CartItem struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    int64     `gorm:"not null;uniqueIndex:idx_cart_user_product,priority:1" json:"user_id"`
	ProductID int64     `gorm:"not null;uniqueIndex:idx_cart_user_product,priority:2;index" json:"product_id"`
	Quantity  int64     `gorm:"not null;check:chk_cart_quantity_pos,quantity >= 1" json:"quantity"`
	AddedAt   time.Time `gorm:"not null;autoCreateTime" json:"added_at"`
}

func (CartItem) TableName() string { return "cart" }

// 表示用。商品の現在値をJOINしたもの
type CartItemView struct {
	ID            int64           `json:"id"`
	UserID        int64           `json:"user_id"`
	ProductID     int64           `json:"product_id"`
	Quantity      int64           `json:"quantity"`
	AddedAt       time.Time       `json:"added_at"`
	ProductName   string          `json:"product_name"`
	Price         decimal.Decimal `json:"price"`
	StockQuantity int64           `json:"stock_quantity"`
	ImagePath     string          `json:"image_path"`
}

func (v CartItemView) Subtotal() decimal.Decimal {
	return v.Price.Mul(decimal.NewFromInt(v.Quantity))
}
