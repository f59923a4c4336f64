package repository

import (
	"context"

	"retail/internal/domain/model"
)

type SupplierRepository interface {
	Create(ctx context.Context, s model.Supplier) (model.Supplier, error)
	FindByID(ctx context.Context, id int64) (model.Supplier, error)
	List(ctx context.Context) ([]model.Supplier, error)
}
