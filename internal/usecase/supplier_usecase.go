package usecase

import (
	"context"
	"strings"

	"retail/internal/domain/model"
	repo "retail/internal/repository"
)

type SupplierUsecase struct {
	suppliers repo.SupplierRepository
}

func NewSupplierUsecase(suppliers repo.SupplierRepository) *SupplierUsecase {
	return &SupplierUsecase{suppliers: suppliers}
}

type SupplierInput struct {
	Name          string
	ContactPerson string
	Email         string
	Phone         string
	Address       string
}

func (u *SupplierUsecase) Create(ctx context.Context, sess Session, in SupplierInput) (model.Supplier, error) {
	if err := sess.requireStaff(); err != nil {
		return model.Supplier{}, err
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return model.Supplier{}, validation("name is required")
	}

	s, err := u.suppliers.Create(ctx, model.Supplier{
		Name:          name,
		ContactPerson: strings.TrimSpace(in.ContactPerson),
		Email:         strings.TrimSpace(in.Email),
		Phone:         strings.TrimSpace(in.Phone),
		Address:       strings.TrimSpace(in.Address),
	})
	if err != nil {
		return model.Supplier{}, persistence(err)
	}
	return s, nil
}

// 名前順
func (u *SupplierUsecase) List(ctx context.Context, sess Session) ([]model.Supplier, error) {
	if err := sess.requireStaff(); err != nil {
		return []model.Supplier{}, err
	}
	ss, err := u.suppliers.List(ctx)
	if err != nil {
		return []model.Supplier{}, persistence(err)
	}
	return ss, nil
}
