package repository

import (
	"context"

	"retail/internal/domain/model"
)

type UserRepository interface {
	FindByID(ctx context.Context, id int64) (model.User, error)
	FindByEmail(ctx context.Context, email string) (model.User, error)
	Create(ctx context.Context, u model.User) (model.User, error)
	UpdatePasswordHash(ctx context.Context, id int64, hash string) error
}
