package repository

import (
	"context"

	"retail/internal/domain/model"

	"gorm.io/gorm"
)

type SaleGormRepository struct {
	db *gorm.DB
}

func NewSaleGormRepository(db *gorm.DB) *SaleGormRepository {
	return &SaleGormRepository{db: db}
}

func (r *SaleGormRepository) Create(ctx context.Context, s model.Sale) error {
	return r.db.WithContext(ctx).Create(&s).Error
}
