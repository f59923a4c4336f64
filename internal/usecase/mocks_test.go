package usecase_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"retail/internal/domain/model"
	repo "retail/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// =====================
// TxManager / TxRepos
// =====================

// TxManagerMock は WithinTx の中で渡す repos を固定する
type TxManagerMock struct {
	mock.Mock
	Repos repo.TxRepos
}

func (m *TxManagerMock) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	m.Called(ctx)
	return fn(m.Repos)
}

type TxReposMock struct {
	orders    repo.OrderRepository
	carts     repo.CartRepository
	inventory repo.InventoryRepository
	products  repo.ProductRepository
	customers repo.CustomerRepository
	users     repo.UserRepository
	sales     repo.SaleRepository
}

func (r *TxReposMock) Orders() repo.OrderRepository        { return r.orders }
func (r *TxReposMock) Carts() repo.CartRepository          { return r.carts }
func (r *TxReposMock) Inventory() repo.InventoryRepository { return r.inventory }
func (r *TxReposMock) Products() repo.ProductRepository    { return r.products }
func (r *TxReposMock) Customers() repo.CustomerRepository  { return r.customers }
func (r *TxReposMock) Users() repo.UserRepository          { return r.users }
func (r *TxReposMock) Sales() repo.SaleRepository          { return r.sales }

// =====================
// Repository mocks
// =====================

type ProductRepoMock struct{ mock.Mock }

func (m *ProductRepoMock) FindByID(ctx context.Context, id int64) (model.Product, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(model.Product)
	return p, args.Error(1)
}

func (m *ProductRepoMock) FindByIDForUpdate(ctx context.Context, id int64) (model.Product, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(model.Product)
	return p, args.Error(1)
}

func (m *ProductRepoMock) FindByIDWithDeleted(ctx context.Context, id int64) (model.Product, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(model.Product)
	return p, args.Error(1)
}

func (m *ProductRepoMock) List(ctx context.Context, q repo.ProductListQuery) ([]model.Product, error) {
	args := m.Called(ctx, q)
	ps, _ := args.Get(0).([]model.Product)
	return ps, args.Error(1)
}

func (m *ProductRepoMock) Categories(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	cs, _ := args.Get(0).([]string)
	return cs, args.Error(1)
}

func (m *ProductRepoMock) ListLowStock(ctx context.Context, threshold int64) ([]model.Product, error) {
	args := m.Called(ctx, threshold)
	ps, _ := args.Get(0).([]model.Product)
	return ps, args.Error(1)
}

func (m *ProductRepoMock) Create(ctx context.Context, p model.Product) (model.Product, error) {
	args := m.Called(ctx, p)
	out, _ := args.Get(0).(model.Product)
	return out, args.Error(1)
}

func (m *ProductRepoMock) Update(ctx context.Context, p model.Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *ProductRepoMock) SoftDelete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type InventoryRepoMock struct{ mock.Mock }

func (m *InventoryRepoMock) AdjustStock(ctx context.Context, productID int64, delta int64) (bool, error) {
	args := m.Called(ctx, productID, delta)
	return args.Bool(0), args.Error(1)
}

func (m *InventoryRepoMock) DecreaseStockIfEnough(ctx context.Context, productID int64, qty int64) (bool, error) {
	args := m.Called(ctx, productID, qty)
	return args.Bool(0), args.Error(1)
}

func (m *InventoryRepoMock) IncreaseStock(ctx context.Context, productID int64, qty int64) error {
	args := m.Called(ctx, productID, qty)
	return args.Error(0)
}

func (m *InventoryRepoMock) CreateTransaction(ctx context.Context, t model.InventoryTransaction) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

type CartRepoMock struct{ mock.Mock }

func (m *CartRepoMock) ListByUserID(ctx context.Context, userID int64) ([]model.CartItemView, error) {
	args := m.Called(ctx, userID)
	items, _ := args.Get(0).([]model.CartItemView)
	return items, args.Error(1)
}

func (m *CartRepoMock) ListEntriesByUserID(ctx context.Context, userID int64) ([]model.CartItem, error) {
	args := m.Called(ctx, userID)
	items, _ := args.Get(0).([]model.CartItem)
	return items, args.Error(1)
}

func (m *CartRepoMock) FindByID(ctx context.Context, userID int64, id int64) (model.CartItem, error) {
	panic("not used in usecase tests")
}

func (m *CartRepoMock) Upsert(ctx context.Context, userID int64, productID int64, qty int64) error {
	args := m.Called(ctx, userID, productID, qty)
	return args.Error(0)
}

func (m *CartRepoMock) UpdateQuantity(ctx context.Context, userID int64, id int64, qty int64) error {
	args := m.Called(ctx, userID, id, qty)
	return args.Error(0)
}

func (m *CartRepoMock) Delete(ctx context.Context, userID int64, id int64) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}

func (m *CartRepoMock) ClearByUserID(ctx context.Context, userID int64) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

type OrderRepoMock struct{ mock.Mock }

func (m *OrderRepoMock) CreateWithItems(ctx context.Context, order model.Order, items []model.OrderItem) (model.Order, error) {
	args := m.Called(ctx, order, items)
	o, _ := args.Get(0).(model.Order)
	return o, args.Error(1)
}

func (m *OrderRepoMock) FindByID(ctx context.Context, orderID int64) (model.Order, error) {
	args := m.Called(ctx, orderID)
	o, _ := args.Get(0).(model.Order)
	return o, args.Error(1)
}

func (m *OrderRepoMock) FindByIDForUpdate(ctx context.Context, orderID int64) (model.Order, error) {
	args := m.Called(ctx, orderID)
	o, _ := args.Get(0).(model.Order)
	return o, args.Error(1)
}

func (m *OrderRepoMock) List(ctx context.Context, f repo.OrderListFilter) ([]model.Order, error) {
	args := m.Called(ctx, f)
	os, _ := args.Get(0).([]model.Order)
	return os, args.Error(1)
}

func (m *OrderRepoMock) ListByUserID(ctx context.Context, userID int64) ([]model.Order, error) {
	args := m.Called(ctx, userID)
	os, _ := args.Get(0).([]model.Order)
	return os, args.Error(1)
}

func (m *OrderRepoMock) UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error {
	args := m.Called(ctx, orderID, status)
	return args.Error(0)
}

type CustomerRepoMock struct{ mock.Mock }

func (m *CustomerRepoMock) Create(ctx context.Context, c model.Customer) (model.Customer, error) {
	args := m.Called(ctx, c)
	out, _ := args.Get(0).(model.Customer)
	return out, args.Error(1)
}

func (m *CustomerRepoMock) FindByID(ctx context.Context, id int64) (model.Customer, error) {
	args := m.Called(ctx, id)
	out, _ := args.Get(0).(model.Customer)
	return out, args.Error(1)
}

func (m *CustomerRepoMock) FindByUserID(ctx context.Context, userID int64) (model.Customer, error) {
	args := m.Called(ctx, userID)
	out, _ := args.Get(0).(model.Customer)
	return out, args.Error(1)
}

func (m *CustomerRepoMock) List(ctx context.Context, q string) ([]model.Customer, error) {
	args := m.Called(ctx, q)
	out, _ := args.Get(0).([]model.Customer)
	return out, args.Error(1)
}

func (m *CustomerRepoMock) Update(ctx context.Context, c model.Customer) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

type SaleRepoMock struct{ mock.Mock }

func (m *SaleRepoMock) Create(ctx context.Context, s model.Sale) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

type SupplierRepoMock struct{ mock.Mock }

func (m *SupplierRepoMock) Create(ctx context.Context, s model.Supplier) (model.Supplier, error) {
	args := m.Called(ctx, s)
	out, _ := args.Get(0).(model.Supplier)
	return out, args.Error(1)
}

func (m *SupplierRepoMock) FindByID(ctx context.Context, id int64) (model.Supplier, error) {
	args := m.Called(ctx, id)
	out, _ := args.Get(0).(model.Supplier)
	return out, args.Error(1)
}

func (m *SupplierRepoMock) List(ctx context.Context) ([]model.Supplier, error) {
	args := m.Called(ctx)
	out, _ := args.Get(0).([]model.Supplier)
	return out, args.Error(1)
}

type UserRepoMock struct{ mock.Mock }

func (m *UserRepoMock) FindByID(ctx context.Context, id int64) (model.User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(model.User)
	return u, args.Error(1)
}

func (m *UserRepoMock) FindByEmail(ctx context.Context, email string) (model.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(model.User)
	return u, args.Error(1)
}

func (m *UserRepoMock) Create(ctx context.Context, u model.User) (model.User, error) {
	args := m.Called(ctx, u)
	out, _ := args.Get(0).(model.User)
	return out, args.Error(1)
}

func (m *UserRepoMock) UpdatePasswordHash(ctx context.Context, id int64, hash string) error {
	args := m.Called(ctx, id, hash)
	return args.Error(0)
}

type ReportRepoMock struct{ mock.Mock }

func (m *ReportRepoMock) DashboardStats(ctx context.Context, lowStockThreshold int64) (model.DashboardStats, error) {
	args := m.Called(ctx, lowStockThreshold)
	s, _ := args.Get(0).(model.DashboardStats)
	return s, args.Error(1)
}

func (m *ReportRepoMock) SalesByDay(ctx context.Context, from *time.Time, to *time.Time) ([]model.DailySales, error) {
	args := m.Called(ctx, from, to)
	rows, _ := args.Get(0).([]model.DailySales)
	return rows, args.Error(1)
}

// =====================
// helpers
// =====================

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

var testNow = time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

func assertErrContains(t *testing.T, err error, substr string) {
	t.Helper()
	if assert.Error(t, err) {
		assert.True(t, strings.Contains(err.Error(), substr), "err=%q want contains %q", err.Error(), substr)
	}
}
