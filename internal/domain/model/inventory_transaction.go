package model

import "time"

type InventoryTransactionType string

const (
	InventoryTxSale         InventoryTransactionType = "sale"
	InventoryTxRestock      InventoryTransactionType = "restock"
	InventoryTxConsumption  InventoryTransactionType = "consumption"
	InventoryTxCancelReturn InventoryTransactionType = "cancel_return"
)

// 在庫変動の履歴。Quantityは符号付き
type InventoryTransaction struct {
	ID              int64                    `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductID       int64                    `gorm:"not null;index" json:"product_id"`
	TransactionType InventoryTransactionType `gorm:"type:varchar(20);not null" json:"transaction_type"`
	Quantity        int64                    `gorm:"not null" json:"quantity"`
	Notes           string                   `gorm:"type:text" json:"notes"`
	TransactionDate time.Time                `gorm:"not null;autoCreateTime" json:"transaction_date"`
}
