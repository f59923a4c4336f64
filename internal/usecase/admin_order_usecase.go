package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"retail/internal/domain/model"
	"retail/internal/logging"
	"retail/internal/metrics"
	repo "retail/internal/repository"

	"github.com/shopspring/decimal"
)

// 管理者向けの注文参照とステータス変更
type AdminOrderUsecase struct {
	tx     repo.TransactionManager
	orders repo.OrderRepository
	clock  Clock
}

func NewAdminOrderUsecase(tx repo.TransactionManager, orders repo.OrderRepository, clock Clock) *AdminOrderUsecase {
	return &AdminOrderUsecase{tx: tx, orders: orders, clock: clock}
}

func (u *AdminOrderUsecase) List(ctx context.Context, sess Session, f repo.OrderListFilter) ([]model.Order, error) {
	if err := sess.requireStaff(); err != nil {
		return []model.Order{}, err
	}
	if f.Status != "" && !f.Status.IsValid() {
		return []model.Order{}, NewError(KindInvalidStatus, "invalid status")
	}
	if f.Limit < 0 || f.Offset < 0 {
		return []model.Order{}, validation("invalid limit/offset")
	}
	if f.From != nil && f.To != nil && f.From.After(*f.To) {
		return []model.Order{}, validation("from must be before to")
	}

	orders, err := u.orders.List(ctx, f)
	if err != nil {
		return []model.Order{}, persistence(err)
	}
	return orders, nil
}

func (u *AdminOrderUsecase) ListPending(ctx context.Context, sess Session) ([]model.Order, error) {
	return u.List(ctx, sess, repo.OrderListFilter{Status: model.OrderStatusPending})
}

func (u *AdminOrderUsecase) ListCompleted(ctx context.Context, sess Session) ([]model.Order, error) {
	return u.List(ctx, sess, repo.OrderListFilter{Status: model.OrderStatusCompleted})
}

func (u *AdminOrderUsecase) Get(ctx context.Context, sess Session, orderID int64) (model.Order, error) {
	if err := sess.requireStaff(); err != nil {
		return model.Order{}, err
	}
	o, err := u.orders.FindByID(ctx, orderID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Order{}, notFound("order")
	}
	if err != nil {
		return model.Order{}, persistence(err)
	}
	return o, nil
}

// ステータス変更。キャンセルは在庫を戻し、完了は売上を記録する
func (u *AdminOrderUsecase) UpdateStatus(ctx context.Context, sess Session, orderID int64, status model.OrderStatus) (model.Order, error) {
	if err := sess.requireStaff(); err != nil {
		return model.Order{}, err
	}
	next := model.OrderStatus(strings.ToLower(strings.TrimSpace(string(status))))
	if !next.IsValid() {
		return model.Order{}, NewError(KindInvalidStatus, "invalid status")
	}

	var out model.Order
	var prev model.OrderStatus
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByIDForUpdate(ctx, orderID)
		if errors.Is(err, repo.ErrNotFound) {
			return notFound("order")
		}
		if err != nil {
			return persistence(err)
		}
		if !o.Status.CanTransitionTo(next) {
			return NewError(KindInvalidStatus, fmt.Sprintf("cannot change status from %s to %s", o.Status, next))
		}

		if err := r.Orders().UpdateStatus(ctx, o.ID, next); err != nil {
			return persistence(err)
		}

		switch next {
		case model.OrderStatusCancelled:
			if err := restockOrder(ctx, r, o); err != nil {
				return err
			}
		case model.OrderStatusCompleted:
			if err := u.recordSale(ctx, r, o); err != nil {
				return err
			}
		}

		prev = o.Status
		o.Status = next
		out = o
		return nil
	})
	if err != nil {
		return model.Order{}, wrapTxErr(err)
	}

	logging.FromCtx(ctx).Info("order status changed",
		"order_id", out.ID,
		"from", prev,
		"to", out.Status,
		"by", sess.UserID,
	)
	return out, nil
}

// キャンセル分の在庫を戻す
func restockOrder(ctx context.Context, r repo.TxRepos, o model.Order) error {
	for _, it := range o.Items {
		if err := r.Inventory().IncreaseStock(ctx, it.ProductID, it.Quantity); err != nil {
			return persistence(err)
		}
		if err := r.Inventory().CreateTransaction(ctx, model.InventoryTransaction{
			ProductID:       it.ProductID,
			TransactionType: model.InventoryTxCancelReturn,
			Quantity:        it.Quantity,
			Notes:           fmt.Sprintf("order #%d cancelled", o.ID),
		}); err != nil {
			return persistence(err)
		}
		metrics.StockMovements.WithLabelValues(string(model.InventoryTxCancelReturn)).Add(float64(it.Quantity))
	}
	return nil
}

// 利益 = Σ(注文時単価 - 現在の原価) × 数量
func (u *AdminOrderUsecase) recordSale(ctx context.Context, r repo.TxRepos, o model.Order) error {
	profit := decimal.Zero
	for _, it := range o.Items {
		cost := decimal.Zero
		p, err := r.Products().FindByIDWithDeleted(ctx, it.ProductID)
		switch {
		case err == nil:
			cost = p.Cost
		case errors.Is(err, repo.ErrNotFound):
		default:
			return persistence(err)
		}
		profit = profit.Add(it.UnitPrice.Sub(cost).Mul(decimal.NewFromInt(it.Quantity)))
	}

	if err := r.Sales().Create(ctx, model.Sale{
		OrderID:     o.ID,
		SaleDate:    u.clock.Now(),
		TotalAmount: o.TotalAmount,
		Profit:      profit,
	}); err != nil {
		return persistence(err)
	}
	return nil
}
