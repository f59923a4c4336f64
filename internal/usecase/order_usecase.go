package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"retail/internal/domain/model"
	"retail/internal/logging"
	"retail/internal/metrics"
	repo "retail/internal/repository"

	"github.com/shopspring/decimal"
)

// OrderUsecase はカート→注文の確定と、利用者本人の注文参照
type OrderUsecase struct {
	tx     repo.TransactionManager
	orders repo.OrderRepository
	clock  Clock
}

func NewOrderUsecase(tx repo.TransactionManager, orders repo.OrderRepository, clock Clock) *OrderUsecase {
	return &OrderUsecase{tx: tx, orders: orders, clock: clock}
}

type OrderLine struct {
	ProductID int64
	Quantity  int64
}

type PlaceOrderInput struct {
	// nilならセッションのユーザーの顧客情報を使う
	CustomerID      *int64
	Items           []OrderLine
	PaymentMethod   string
	ShippingAddress string
}

type CheckoutInput struct {
	PaymentMethod   string
	ShippingAddress string
}

// 渡された明細で注文を確定する。在庫減算とカートのクリアも同じtx
func (u *OrderUsecase) PlaceOrder(ctx context.Context, sess Session, in PlaceOrderInput) (model.Order, error) {
	if err := sess.requireUser(); err != nil {
		return model.Order{}, err
	}
	if len(in.Items) == 0 {
		return model.Order{}, u.rejected(ctx, sess, NewError(KindEmptyCart, "cart is empty"))
	}

	var out model.Order
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := u.place(ctx, r, sess.UserID, in)
		if err != nil {
			return err
		}
		out = o
		return nil
	})
	if err != nil {
		return model.Order{}, u.rejected(ctx, sess, wrapTxErr(err))
	}

	u.placed(ctx, out)
	return out, nil
}

// ユーザーのカートをtx内で読み、そのまま注文にする
func (u *OrderUsecase) Checkout(ctx context.Context, sess Session, in CheckoutInput) (model.Order, error) {
	if err := sess.requireUser(); err != nil {
		return model.Order{}, err
	}

	var out model.Order
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		entries, err := r.Carts().ListEntriesByUserID(ctx, sess.UserID)
		if err != nil {
			return persistence(err)
		}
		if len(entries) == 0 {
			return NewError(KindEmptyCart, "cart is empty")
		}

		lines := make([]OrderLine, 0, len(entries))
		for _, e := range entries {
			lines = append(lines, OrderLine{ProductID: e.ProductID, Quantity: e.Quantity})
		}

		o, err := u.place(ctx, r, sess.UserID, PlaceOrderInput{
			Items:           lines,
			PaymentMethod:   in.PaymentMethod,
			ShippingAddress: in.ShippingAddress,
		})
		if err != nil {
			return err
		}
		out = o
		return nil
	})
	if err != nil {
		return model.Order{}, u.rejected(ctx, sess, wrapTxErr(err))
	}

	u.placed(ctx, out)
	return out, nil
}

func (u *OrderUsecase) place(ctx context.Context, r repo.TxRepos, userID int64, in PlaceOrderInput) (model.Order, error) {
	lines, err := mergeLines(in.Items)
	if err != nil {
		return model.Order{}, err
	}

	//確定時に商品を読み直して行ロック。デッドロック回避のためID順
	locked := make(map[int64]model.Product, len(lines))
	for _, pid := range sortedProductIDs(lines) {
		p, err := r.Products().FindByIDForUpdate(ctx, pid)
		if errors.Is(err, repo.ErrNotFound) {
			return model.Order{}, productNotFound(pid)
		}
		if err != nil {
			return model.Order{}, persistence(err)
		}
		locked[pid] = p
	}

	//ここまで書き込みなし
	for _, l := range lines {
		p := locked[l.ProductID]
		if p.StockQuantity < l.Quantity {
			return model.Order{}, insufficientStock(p.ID, p.Name)
		}
	}

	customerID, shipTo, err := resolveCustomer(ctx, r, userID, in.CustomerID, in.ShippingAddress)
	if err != nil {
		return model.Order{}, err
	}

	payment := strings.TrimSpace(in.PaymentMethod)
	if payment == "" {
		payment = model.DefaultPaymentMethod
	}

	//価格はこの時点の値で固定
	items := make([]model.OrderItem, 0, len(lines))
	total := decimal.Zero
	for _, l := range lines {
		it := model.NewOrderItem(locked[l.ProductID], l.Quantity)
		total = total.Add(it.Subtotal)
		items = append(items, it)
	}

	created, err := r.Orders().CreateWithItems(ctx, model.Order{
		CustomerID:      customerID,
		UserID:          userID,
		OrderDate:       u.clock.Now(),
		TotalAmount:     total,
		Status:          model.OrderStatusPending,
		PaymentMethod:   payment,
		ShippingAddress: shipTo,
	}, items)
	if err != nil {
		return model.Order{}, persistence(err)
	}

	//在庫減算（ロック済みなので通常は失敗しない）
	for _, it := range items {
		ok, err := r.Inventory().DecreaseStockIfEnough(ctx, it.ProductID, it.Quantity)
		if err != nil {
			return model.Order{}, persistence(err)
		}
		if !ok {
			return model.Order{}, insufficientStock(it.ProductID, it.ProductName)
		}
		if err := r.Inventory().CreateTransaction(ctx, model.InventoryTransaction{
			ProductID:       it.ProductID,
			TransactionType: model.InventoryTxSale,
			Quantity:        -it.Quantity,
			Notes:           fmt.Sprintf("order #%d", created.ID),
		}); err != nil {
			return model.Order{}, persistence(err)
		}
	}

	if err := r.Carts().ClearByUserID(ctx, userID); err != nil {
		return model.Order{}, persistence(err)
	}

	return created, nil
}

// 同じ商品の行はまとめる（並びは最初に出た順）
func mergeLines(in []OrderLine) ([]OrderLine, error) {
	idx := make(map[int64]int, len(in))
	out := make([]OrderLine, 0, len(in))
	for _, l := range in {
		if l.Quantity <= 0 {
			return nil, invalidQuantity()
		}
		if i, ok := idx[l.ProductID]; ok {
			out[i].Quantity += l.Quantity
			continue
		}
		idx[l.ProductID] = len(out)
		out = append(out, l)
	}
	return out, nil
}

func sortedProductIDs(lines []OrderLine) []int64 {
	ids := make([]int64, 0, len(lines))
	for _, l := range lines {
		ids = append(ids, l.ProductID)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// 顧客IDと配送先を決める。配送先は顧客情報からのコピー
func resolveCustomer(ctx context.Context, r repo.TxRepos, userID int64, customerID *int64, shipTo string) (*int64, string, error) {
	shipTo = strings.TrimSpace(shipTo)

	//配送先が指定されていても顧客IDは存在確認する
	var c model.Customer
	var err error
	if customerID != nil {
		c, err = r.Customers().FindByID(ctx, *customerID)
		if errors.Is(err, repo.ErrNotFound) {
			return nil, "", notFound("customer")
		}
	} else {
		c, err = r.Customers().FindByUserID(ctx, userID)
		if errors.Is(err, repo.ErrNotFound) {
			//顧客情報の無いユーザー（スタッフの店頭登録など）
			return nil, shipTo, nil
		}
	}
	if err != nil {
		return nil, "", persistence(err)
	}

	id := c.ID
	if shipTo == "" {
		shipTo = c.ShippingAddress()
	}
	return &id, shipTo, nil
}

func (u *OrderUsecase) placed(ctx context.Context, o model.Order) {
	metrics.OrdersPlaced.Inc()
	for _, it := range o.Items {
		metrics.StockMovements.WithLabelValues(string(model.InventoryTxSale)).Add(float64(it.Quantity))
	}
	logging.FromCtx(ctx).Info("order placed",
		"order_id", o.ID,
		"user_id", o.UserID,
		"total_amount", o.TotalAmount.String(),
		"items", len(o.Items),
	)
}

func (u *OrderUsecase) rejected(ctx context.Context, sess Session, err error) error {
	kind := "unknown"
	if e, ok := AsError(err); ok {
		kind = string(e.Kind)
	}
	metrics.CheckoutRejected.WithLabelValues(kind).Inc()

	l := logging.FromCtx(ctx)
	if kind == string(KindPersistenceFailure) {
		l.Error("checkout failed", "user_id", sess.UserID, "err", err)
	} else {
		l.Warn("checkout rejected", "user_id", sess.UserID, "kind", kind, "err", err)
	}
	return err
}

// 自分の注文一覧
func (u *OrderUsecase) ListMyOrders(ctx context.Context, sess Session) ([]model.Order, error) {
	if err := sess.requireUser(); err != nil {
		return []model.Order{}, err
	}
	orders, err := u.orders.ListByUserID(ctx, sess.UserID)
	if err != nil {
		return []model.Order{}, persistence(err)
	}
	return orders, nil
}

func (u *OrderUsecase) GetMyOrder(ctx context.Context, sess Session, orderID int64) (model.Order, error) {
	if err := sess.requireUser(); err != nil {
		return model.Order{}, err
	}

	o, err := u.orders.FindByID(ctx, orderID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Order{}, notFound("order")
	}
	if err != nil {
		return model.Order{}, persistence(err)
	}
	if o.UserID != sess.UserID {
		//他人の注文は「存在しない扱い」にする
		return model.Order{}, notFound("order")
	}
	return o, nil
}
