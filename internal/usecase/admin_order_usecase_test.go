package usecase_test

import (
	"context"
	"testing"
	"time"

	"retail/internal/domain/model"
	repo "retail/internal/repository"
	"retail/internal/usecase"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type adminOrderFixture struct {
	tx        *TxManagerMock
	orders    *OrderRepoMock
	inventory *InventoryRepoMock
	products  *ProductRepoMock
	sales     *SaleRepoMock
	uc        *usecase.AdminOrderUsecase
}

func newAdminOrderFixture() adminOrderFixture {
	f := adminOrderFixture{
		orders:    new(OrderRepoMock),
		inventory: new(InventoryRepoMock),
		products:  new(ProductRepoMock),
		sales:     new(SaleRepoMock),
	}
	f.tx = &TxManagerMock{Repos: &TxReposMock{
		orders:    f.orders,
		inventory: f.inventory,
		products:  f.products,
		sales:     f.sales,
	}}
	f.uc = usecase.NewAdminOrderUsecase(f.tx, f.orders, fixedClock{t: testNow})
	return f
}

var staffSess = usecase.Session{UserID: 100, Role: model.RoleStaff}

func pendingOrder() model.Order {
	return model.Order{
		ID:          10,
		UserID:      1,
		TotalAmount: decimal.NewFromInt(7500),
		Status:      model.OrderStatusPending,
		Items: []model.OrderItem{
			{ID: 1, OrderID: 10, ProductID: 1, ProductName: "Coffee", Quantity: 3, UnitPrice: decimal.NewFromInt(2500), Subtotal: decimal.NewFromInt(7500)},
		},
	}
}

// キャンセルは在庫を戻して履歴を残す
func TestAdminOrderUsecase_UpdateStatus_CancelRestocks(t *testing.T) {
	f := newAdminOrderFixture()

	f.tx.On("WithinTx", mock.Anything).Return(nil)
	f.orders.On("FindByIDForUpdate", mock.Anything, int64(10)).Return(pendingOrder(), nil)
	f.orders.On("UpdateStatus", mock.Anything, int64(10), model.OrderStatusCancelled).Return(nil)
	f.inventory.On("IncreaseStock", mock.Anything, int64(1), int64(3)).Return(nil)
	f.inventory.On("CreateTransaction", mock.Anything, mock.MatchedBy(func(it model.InventoryTransaction) bool {
		return it.TransactionType == model.InventoryTxCancelReturn && it.Quantity == 3 && it.ProductID == 1
	})).Return(nil)

	o, err := f.uc.UpdateStatus(context.Background(), staffSess, 10, model.OrderStatusCancelled)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusCancelled, o.Status)

	f.orders.AssertExpectations(t)
	f.inventory.AssertExpectations(t)
	f.sales.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

// 完了で売上を記録。利益は(2500-1500)*3
func TestAdminOrderUsecase_UpdateStatus_CompleteRecordsSale(t *testing.T) {
	f := newAdminOrderFixture()

	f.tx.On("WithinTx", mock.Anything).Return(nil)
	f.orders.On("FindByIDForUpdate", mock.Anything, int64(10)).Return(pendingOrder(), nil)
	f.orders.On("UpdateStatus", mock.Anything, int64(10), model.OrderStatusCompleted).Return(nil)
	f.products.On("FindByIDWithDeleted", mock.Anything, int64(1)).Return(coffee(22), nil)
	f.sales.On("Create", mock.Anything, mock.MatchedBy(func(s model.Sale) bool {
		return s.OrderID == 10 &&
			s.TotalAmount.Equal(decimal.NewFromInt(7500)) &&
			s.Profit.Equal(decimal.NewFromInt(3000)) &&
			s.SaleDate.Equal(testNow)
	})).Return(nil)

	o, err := f.uc.UpdateStatus(context.Background(), staffSess, 10, "Completed")
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusCompleted, o.Status)

	f.sales.AssertExpectations(t)
	f.inventory.AssertNotCalled(t, "IncreaseStock", mock.Anything, mock.Anything, mock.Anything)
}

func TestAdminOrderUsecase_UpdateStatus_FromTerminal(t *testing.T) {
	f := newAdminOrderFixture()

	cancelled := pendingOrder()
	cancelled.Status = model.OrderStatusCancelled

	f.tx.On("WithinTx", mock.Anything).Return(nil)
	f.orders.On("FindByIDForUpdate", mock.Anything, int64(10)).Return(cancelled, nil)

	_, err := f.uc.UpdateStatus(context.Background(), staffSess, 10, model.OrderStatusCompleted)
	assert.ErrorIs(t, err, usecase.ErrInvalidStatus)
	assertErrContains(t, err, "cancelled")
	f.orders.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestAdminOrderUsecase_UpdateStatus_UnknownStatus(t *testing.T) {
	f := newAdminOrderFixture()

	_, err := f.uc.UpdateStatus(context.Background(), staffSess, 10, "shipped")
	assert.ErrorIs(t, err, usecase.ErrInvalidStatus)
	f.tx.AssertNotCalled(t, "WithinTx", mock.Anything)
}

func TestAdminOrderUsecase_UpdateStatus_NotFound(t *testing.T) {
	f := newAdminOrderFixture()

	f.tx.On("WithinTx", mock.Anything).Return(nil)
	f.orders.On("FindByIDForUpdate", mock.Anything, int64(404)).Return(model.Order{}, repo.ErrNotFound)

	_, err := f.uc.UpdateStatus(context.Background(), staffSess, 404, model.OrderStatusProcessing)
	assert.ErrorIs(t, err, usecase.ErrNotFound)
}

func TestAdminOrderUsecase_CustomerForbidden(t *testing.T) {
	f := newAdminOrderFixture()

	_, err := f.uc.UpdateStatus(context.Background(), customerSess, 10, model.OrderStatusProcessing)
	assert.ErrorIs(t, err, usecase.ErrForbidden)

	_, err = f.uc.List(context.Background(), customerSess, repo.OrderListFilter{})
	assert.ErrorIs(t, err, usecase.ErrForbidden)
}

func TestAdminOrderUsecase_List_Validation(t *testing.T) {
	f := newAdminOrderFixture()
	from := time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		f    repo.OrderListFilter
		want error
	}{
		{name: "unknown status", f: repo.OrderListFilter{Status: "shipped"}, want: usecase.ErrInvalidStatus},
		{name: "negative limit", f: repo.OrderListFilter{Limit: -1}, want: usecase.ErrValidation},
		{name: "from after to", f: repo.OrderListFilter{From: &from, To: &to}, want: usecase.ErrValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.uc.List(context.Background(), staffSess, tt.f)
			assert.ErrorIs(t, err, tt.want)
		})
	}
	f.orders.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
}

func TestAdminOrderUsecase_ListPending(t *testing.T) {
	f := newAdminOrderFixture()
	f.orders.On("List", mock.Anything, repo.OrderListFilter{Status: model.OrderStatusPending}).
		Return([]model.Order{pendingOrder()}, nil)

	orders, err := f.uc.ListPending(context.Background(), staffSess)
	require.NoError(t, err)
	assert.Len(t, orders, 1)
	f.orders.AssertExpectations(t)
}
