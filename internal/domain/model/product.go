package model

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Product struct {
	ID            int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	Name          string          `gorm:"type:varchar(255);not null;index" json:"name"`
	Description   string          `gorm:"type:text" json:"description"`
	Category      string          `gorm:"type:varchar(100);not null;index" json:"category"`
	Price         decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"price"`
	Cost          decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0" json:"cost"`
	StockQuantity int64           `gorm:"not null;default:0;check:chk_products_stock_nonneg,stock_quantity >= 0" json:"stock_quantity"`
	SupplierID    *int64          `gorm:"index" json:"supplier_id,omitempty"`
	ImagePath     string          `gorm:"type:varchar(500)" json:"image_path"`
	CreatedAt     time.Time       `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time       `gorm:"not null;autoUpdateTime" json:"updated_at"`
	DeletedAt     gorm.DeletedAt  `gorm:"index" json:"-"`
}

// 在庫がしきい値未満か
func (p Product) IsLowStock(threshold int64) bool {
	return p.StockQuantity < threshold
}
