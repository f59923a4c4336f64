package repository

import (
	"context"
	"time"

	"retail/internal/domain/model"
)

// Limitが0なら件数制限なし
type OrderListFilter struct {
	Status model.OrderStatus
	UserID *int64
	From   *time.Time
	To     *time.Time
	Limit  int
	Offset int
}

type OrderRepository interface {
	// 注文と明細を1回で保存する
	CreateWithItems(ctx context.Context, order model.Order, items []model.OrderItem) (model.Order, error)

	FindByID(ctx context.Context, orderID int64) (model.Order, error)
	FindByIDForUpdate(ctx context.Context, orderID int64) (model.Order, error)
	List(ctx context.Context, f OrderListFilter) ([]model.Order, error)
	ListByUserID(ctx context.Context, userID int64) ([]model.Order, error)
	UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error
}
