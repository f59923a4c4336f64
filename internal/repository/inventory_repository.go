package repository

import (
	"context"

	"retail/internal/domain/model"
)

// 在庫数の更新と履歴保存の約束。
type InventoryRepository interface {
	// 結果が0未満になるならfalse
	AdjustStock(ctx context.Context, productID int64, delta int64) (bool, error)
	DecreaseStockIfEnough(ctx context.Context, productID int64, qty int64) (bool, error)
	IncreaseStock(ctx context.Context, productID int64, qty int64) error
	CreateTransaction(ctx context.Context, t model.InventoryTransaction) error
}
