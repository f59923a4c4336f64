package repository

import (
	"context"

	"retail/internal/domain/model"
)

type CartRepository interface {
	// 商品の現在値をJOINした表示用。新しい順
	ListByUserID(ctx context.Context, userID int64) ([]model.CartItemView, error)
	// JOINなしの生の明細
	ListEntriesByUserID(ctx context.Context, userID int64) ([]model.CartItem, error)
	FindByID(ctx context.Context, userID int64, id int64) (model.CartItem, error)

	// 同一商品は数量加算
	Upsert(ctx context.Context, userID int64, productID int64, qty int64) error
	UpdateQuantity(ctx context.Context, userID int64, id int64, qty int64) error
	Delete(ctx context.Context, userID int64, id int64) error
	ClearByUserID(ctx context.Context, userID int64) error
}
