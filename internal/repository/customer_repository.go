package repository

import (
	"context"

	"retail/internal/domain/model"
)

type CustomerRepository interface {
	Create(ctx context.Context, c model.Customer) (model.Customer, error)
	FindByID(ctx context.Context, id int64) (model.Customer, error)
	FindByUserID(ctx context.Context, userID int64) (model.Customer, error)
	// qが空なら全件。名前/メール/電話の部分一致
	List(ctx context.Context, q string) ([]model.Customer, error)
	Update(ctx context.Context, c model.Customer) error
}
