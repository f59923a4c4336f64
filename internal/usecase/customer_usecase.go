package usecase

import (
	"context"
	"errors"
	"strings"

	"retail/internal/domain/model"
	repo "retail/internal/repository"
)

type CustomerUsecase struct {
	customers repo.CustomerRepository
}

func NewCustomerUsecase(customers repo.CustomerRepository) *CustomerUsecase {
	return &CustomerUsecase{customers: customers}
}

type UpdateCustomerInput struct {
	Phone   string
	Address string
	City    string
}

func (u *CustomerUsecase) GetMine(ctx context.Context, sess Session) (model.Customer, error) {
	if err := sess.requireUser(); err != nil {
		return model.Customer{}, err
	}
	c, err := u.customers.FindByUserID(ctx, sess.UserID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Customer{}, notFound("customer")
	}
	if err != nil {
		return model.Customer{}, persistence(err)
	}
	return c, nil
}

// 連絡先と住所だけ変えられる
func (u *CustomerUsecase) UpdateMine(ctx context.Context, sess Session, in UpdateCustomerInput) (model.Customer, error) {
	c, err := u.GetMine(ctx, sess)
	if err != nil {
		return model.Customer{}, err
	}

	c.Phone = strings.TrimSpace(in.Phone)
	c.Address = strings.TrimSpace(in.Address)
	c.City = strings.TrimSpace(in.City)

	if err := u.customers.Update(ctx, c); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return model.Customer{}, notFound("customer")
		}
		return model.Customer{}, persistence(err)
	}
	return c, nil
}

func (u *CustomerUsecase) List(ctx context.Context, sess Session) ([]model.Customer, error) {
	return u.Search(ctx, sess, "")
}

// 名前/メール/電話で検索
func (u *CustomerUsecase) Search(ctx context.Context, sess Session, text string) ([]model.Customer, error) {
	if err := sess.requireStaff(); err != nil {
		return []model.Customer{}, err
	}
	cs, err := u.customers.List(ctx, text)
	if err != nil {
		return []model.Customer{}, persistence(err)
	}
	return cs, nil
}
