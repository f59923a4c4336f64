package usecase

import (
	"context"
	"errors"

	"retail/internal/domain/model"
	repo "retail/internal/repository"

	"github.com/shopspring/decimal"
)

// CartUsecase は /cart の業務ロジック。在庫は確認するだけで確保しない
type CartUsecase struct {
	carts    repo.CartRepository
	products repo.ProductRepository
}

func NewCartUsecase(carts repo.CartRepository, products repo.ProductRepository) *CartUsecase {
	return &CartUsecase{carts: carts, products: products}
}

// priceは商品の現在価格
type CartOutput struct {
	Items []model.CartItemView `json:"items"`
	Total decimal.Decimal      `json:"total"`
	Count int64                `json:"count"`
}

type AddCartInput struct {
	ProductID int64
	Quantity  int64
}

// カートに追加（同一商品は数量加算）
func (u *CartUsecase) AddToCart(ctx context.Context, sess Session, in AddCartInput) (CartOutput, error) {
	if err := sess.requireUser(); err != nil {
		return CartOutput{}, err
	}
	if in.Quantity <= 0 {
		return CartOutput{}, invalidQuantity()
	}

	p, err := u.products.FindByID(ctx, in.ProductID)
	if errors.Is(err, repo.ErrNotFound) {
		return CartOutput{}, productNotFound(in.ProductID)
	}
	if err != nil {
		return CartOutput{}, persistence(err)
	}
	if in.Quantity > p.StockQuantity {
		return CartOutput{}, insufficientStock(p.ID, p.Name)
	}

	if err := u.carts.Upsert(ctx, sess.UserID, p.ID, in.Quantity); err != nil {
		return CartOutput{}, persistence(err)
	}
	return u.GetCart(ctx, sess)
}

// 数量を上書き（加算しない）
func (u *CartUsecase) UpdateQuantity(ctx context.Context, sess Session, cartItemID int64, qty int64) (CartOutput, error) {
	if err := sess.requireUser(); err != nil {
		return CartOutput{}, err
	}
	if qty <= 0 {
		return CartOutput{}, invalidQuantity()
	}

	err := u.carts.UpdateQuantity(ctx, sess.UserID, cartItemID, qty)
	if errors.Is(err, repo.ErrNotFound) {
		return CartOutput{}, notFound("cart item")
	}
	if err != nil {
		return CartOutput{}, persistence(err)
	}
	return u.GetCart(ctx, sess)
}

// 明細削除。無い明細でもエラーにしない
func (u *CartUsecase) Remove(ctx context.Context, sess Session, cartItemID int64) (CartOutput, error) {
	if err := sess.requireUser(); err != nil {
		return CartOutput{}, err
	}
	if err := u.carts.Delete(ctx, sess.UserID, cartItemID); err != nil {
		return CartOutput{}, persistence(err)
	}
	return u.GetCart(ctx, sess)
}

func (u *CartUsecase) Clear(ctx context.Context, sess Session) error {
	if err := sess.requireUser(); err != nil {
		return err
	}
	if err := u.carts.ClearByUserID(ctx, sess.UserID); err != nil {
		return persistence(err)
	}
	return nil
}

// 毎回DBから読み直す
func (u *CartUsecase) GetItems(ctx context.Context, sess Session) ([]model.CartItemView, error) {
	if err := sess.requireUser(); err != nil {
		return []model.CartItemView{}, err
	}
	items, err := u.carts.ListByUserID(ctx, sess.UserID)
	if err != nil {
		return []model.CartItemView{}, persistence(err)
	}
	return items, nil
}

func (u *CartUsecase) GetTotal(ctx context.Context, sess Session) (decimal.Decimal, error) {
	items, err := u.GetItems(ctx, sess)
	if err != nil {
		return decimal.Zero, err
	}
	return cartTotal(items), nil
}

func (u *CartUsecase) GetCount(ctx context.Context, sess Session) (int64, error) {
	items, err := u.GetItems(ctx, sess)
	if err != nil {
		return 0, err
	}
	return cartCount(items), nil
}

// 明細・合計・点数をまとめて返す
func (u *CartUsecase) GetCart(ctx context.Context, sess Session) (CartOutput, error) {
	items, err := u.GetItems(ctx, sess)
	if err != nil {
		return CartOutput{}, err
	}
	return CartOutput{
		Items: items,
		Total: cartTotal(items),
		Count: cartCount(items),
	}, nil
}

func cartTotal(items []model.CartItemView) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.Subtotal())
	}
	return total
}

func cartCount(items []model.CartItemView) int64 {
	var n int64
	for _, it := range items {
		n += it.Quantity
	}
	return n
}
