package repository

import (
	"context"

	"retail/internal/domain/model"
)

type SaleRepository interface {
	Create(ctx context.Context, s model.Sale) error
}
