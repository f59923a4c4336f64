package usecase

import (
	"context"
	"errors"
	"strings"

	"retail/internal/domain/model"
	"retail/internal/logging"
	"retail/internal/metrics"
	repo "retail/internal/repository"

	"github.com/shopspring/decimal"
)

type ProductUsecase struct {
	tx        repo.TransactionManager
	products  repo.ProductRepository
	suppliers repo.SupplierRepository
}

// DI
func NewProductUsecase(
	tx repo.TransactionManager,
	products repo.ProductRepository,
	suppliers repo.SupplierRepository,
) *ProductUsecase {
	return &ProductUsecase{
		tx:        tx,
		products:  products,
		suppliers: suppliers,
	}
}

// 作成/更新の入力。StockQuantityは作成時だけ使う
type ProductInput struct {
	Name          string
	Description   string
	Category      string
	Price         decimal.Decimal
	Cost          decimal.Decimal
	StockQuantity int64
	SupplierID    *int64
	ImagePath     string
}

func (in ProductInput) validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return validation("name is required")
	}
	if strings.TrimSpace(in.Category) == "" {
		return validation("category is required")
	}
	if !in.Price.IsPositive() {
		return validation("price must be greater than 0")
	}
	if in.Cost.IsNegative() {
		return validation("cost must not be negative")
	}
	if in.StockQuantity < 0 {
		return validation("stock must not be negative")
	}
	return nil
}

func (u *ProductUsecase) List(ctx context.Context) ([]model.Product, error) {
	return u.list(ctx, repo.ProductListQuery{})
}

// 名前/説明/カテゴリの部分一致
func (u *ProductUsecase) Search(ctx context.Context, text string) ([]model.Product, error) {
	if len(text) > 100 {
		return []model.Product{}, validation("query too long")
	}
	return u.list(ctx, repo.ProductListQuery{Q: text})
}

func (u *ProductUsecase) ListByCategory(ctx context.Context, category string) ([]model.Product, error) {
	return u.list(ctx, repo.ProductListQuery{Category: category})
}

func (u *ProductUsecase) list(ctx context.Context, q repo.ProductListQuery) ([]model.Product, error) {
	ps, err := u.products.List(ctx, q)
	if err != nil {
		return []model.Product{}, persistence(err)
	}
	return ps, nil
}

func (u *ProductUsecase) Categories(ctx context.Context) ([]string, error) {
	cats, err := u.products.Categories(ctx)
	if err != nil {
		return []string{}, persistence(err)
	}
	return cats, nil
}

func (u *ProductUsecase) Get(ctx context.Context, productID int64) (model.Product, error) {
	p, err := u.products.FindByID(ctx, productID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Product{}, productNotFound(productID)
	}
	if err != nil {
		return model.Product{}, persistence(err)
	}
	return p, nil
}

func (u *ProductUsecase) LowStock(ctx context.Context, sess Session, threshold int64) ([]model.Product, error) {
	if err := sess.requireStaff(); err != nil {
		return []model.Product{}, err
	}
	if threshold < 0 {
		return []model.Product{}, validation("invalid threshold")
	}
	ps, err := u.products.ListLowStock(ctx, threshold)
	if err != nil {
		return []model.Product{}, persistence(err)
	}
	return ps, nil
}

func (u *ProductUsecase) Create(ctx context.Context, sess Session, in ProductInput) (model.Product, error) {
	if err := sess.requireStaff(); err != nil {
		return model.Product{}, err
	}
	if err := in.validate(); err != nil {
		return model.Product{}, err
	}
	if err := u.checkSupplier(ctx, in.SupplierID); err != nil {
		return model.Product{}, err
	}

	p, err := u.products.Create(ctx, model.Product{
		Name:          strings.TrimSpace(in.Name),
		Description:   in.Description,
		Category:      strings.TrimSpace(in.Category),
		Price:         in.Price,
		Cost:          in.Cost,
		StockQuantity: in.StockQuantity,
		SupplierID:    in.SupplierID,
		ImagePath:     in.ImagePath,
	})
	if err != nil {
		return model.Product{}, persistence(err)
	}
	return p, nil
}

// 在庫数は変えない（AdjustStockを使う）
func (u *ProductUsecase) Update(ctx context.Context, sess Session, productID int64, in ProductInput) (model.Product, error) {
	if err := sess.requireStaff(); err != nil {
		return model.Product{}, err
	}
	in.StockQuantity = 0
	if err := in.validate(); err != nil {
		return model.Product{}, err
	}
	if err := u.checkSupplier(ctx, in.SupplierID); err != nil {
		return model.Product{}, err
	}

	err := u.products.Update(ctx, model.Product{
		ID:          productID,
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		Category:    strings.TrimSpace(in.Category),
		Price:       in.Price,
		Cost:        in.Cost,
		SupplierID:  in.SupplierID,
		ImagePath:   in.ImagePath,
	})
	if errors.Is(err, repo.ErrNotFound) {
		return model.Product{}, productNotFound(productID)
	}
	if err != nil {
		return model.Product{}, persistence(err)
	}
	return u.Get(ctx, productID)
}

// 論理削除。過去の注文明細はproduct_idと商品名を持ち続ける
func (u *ProductUsecase) Delete(ctx context.Context, sess Session, productID int64) error {
	if err := sess.requireStaff(); err != nil {
		return err
	}
	err := u.products.SoftDelete(ctx, productID)
	if errors.Is(err, repo.ErrNotFound) {
		return productNotFound(productID)
	}
	if err != nil {
		return persistence(err)
	}
	return nil
}

// 在庫をdeltaだけ増減する。0未満になるならInsufficientStock
func (u *ProductUsecase) AdjustStock(ctx context.Context, sess Session, productID int64, delta int64, notes string) (model.Product, error) {
	if err := sess.requireStaff(); err != nil {
		return model.Product{}, err
	}
	if delta == 0 {
		return model.Product{}, NewError(KindInvalidQuantity, "delta must not be zero")
	}

	txType := model.InventoryTxRestock
	if delta < 0 {
		txType = model.InventoryTxConsumption
	}

	var out model.Product
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		ok, err := r.Inventory().AdjustStock(ctx, productID, delta)
		if err != nil {
			return persistence(err)
		}

		p, err := r.Products().FindByID(ctx, productID)
		if errors.Is(err, repo.ErrNotFound) {
			return productNotFound(productID)
		}
		if err != nil {
			return persistence(err)
		}
		if !ok {
			return insufficientStock(p.ID, p.Name)
		}

		if err := r.Inventory().CreateTransaction(ctx, model.InventoryTransaction{
			ProductID:       productID,
			TransactionType: txType,
			Quantity:        delta,
			Notes:           strings.TrimSpace(notes),
		}); err != nil {
			return persistence(err)
		}

		out = p
		return nil
	})
	if err != nil {
		return model.Product{}, wrapTxErr(err)
	}

	units := delta
	if units < 0 {
		units = -units
	}
	metrics.StockMovements.WithLabelValues(string(txType)).Add(float64(units))
	logging.FromCtx(ctx).Info("stock adjusted",
		"product_id", productID,
		"delta", delta,
		"stock_quantity", out.StockQuantity,
		"by", sess.UserID,
	)
	return out, nil
}

func (u *ProductUsecase) checkSupplier(ctx context.Context, supplierID *int64) error {
	if supplierID == nil {
		return nil
	}
	_, err := u.suppliers.FindByID(ctx, *supplierID)
	if errors.Is(err, repo.ErrNotFound) {
		return notFound("supplier")
	}
	if err != nil {
		return persistence(err)
	}
	return nil
}
