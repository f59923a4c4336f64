package repository

import (
	"context"
	"errors"

	"retail/internal/domain/model"
)

var ErrNotFound = errors.New("not found")

// 一意制約違反
var ErrDuplicate = errors.New("duplicate")

// 一覧検索。Qは名前/説明/カテゴリの部分一致、Categoryは完全一致
type ProductListQuery struct {
	Q        string
	Category string
}

// 商品の永続化（保存・取得）だけを約束。
type ProductRepository interface {
	FindByID(ctx context.Context, id int64) (model.Product, error)
	// 行ロック付き（トランザクション内で使う）
	FindByIDForUpdate(ctx context.Context, id int64) (model.Product, error)
	// 論理削除済みも含めて取得
	FindByIDWithDeleted(ctx context.Context, id int64) (model.Product, error)
	List(ctx context.Context, q ProductListQuery) ([]model.Product, error)
	Categories(ctx context.Context) ([]string, error)
	ListLowStock(ctx context.Context, threshold int64) ([]model.Product, error)

	Create(ctx context.Context, p model.Product) (model.Product, error)
	Update(ctx context.Context, p model.Product) error
	SoftDelete(ctx context.Context, id int64) error
}
