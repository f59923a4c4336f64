package repository

import (
	"context"

	repo "retail/internal/repository"

	"gorm.io/gorm"
)

type txReposGorm struct {
	orders    repo.OrderRepository
	carts     repo.CartRepository
	inventory repo.InventoryRepository
	products  repo.ProductRepository
	customers repo.CustomerRepository
	users     repo.UserRepository
	sales     repo.SaleRepository
}

func (r *txReposGorm) Orders() repo.OrderRepository        { return r.orders }
func (r *txReposGorm) Carts() repo.CartRepository          { return r.carts }
func (r *txReposGorm) Inventory() repo.InventoryRepository { return r.inventory }
func (r *txReposGorm) Products() repo.ProductRepository    { return r.products }
func (r *txReposGorm) Customers() repo.CustomerRepository  { return r.customers }
func (r *txReposGorm) Users() repo.UserRepository          { return r.users }
func (r *txReposGorm) Sales() repo.SaleRepository          { return r.sales }

type TxManagerGorm struct {
	db *gorm.DB
}

func NewTxManagerGorm(db *gorm.DB) *TxManagerGorm {
	return &TxManagerGorm{db: db}
}

// fnがerrorを返したらrollback
func (tm *TxManagerGorm) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	return tm.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		//repoはtxを持ったDBで作り直す
		r := &txReposGorm{
			orders:    NewOrderGormRepository(tx),
			carts:     NewCartGormRepository(tx),
			inventory: NewInventoryGormRepository(tx),
			products:  NewProductGormRepository(tx),
			customers: NewCustomerGormRepository(tx),
			users:     NewUserGormRepository(tx),
			sales:     NewSaleGormRepository(tx),
		}
		return fn(r)
	})
}
