package model

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestOrderStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from, to OrderStatus
		want     bool
	}{
		{OrderStatusPending, OrderStatusProcessing, true},
		{OrderStatusPending, OrderStatusCompleted, true},
		{OrderStatusPending, OrderStatusCancelled, true},
		{OrderStatusProcessing, OrderStatusCompleted, true},
		{OrderStatusProcessing, OrderStatusCancelled, true},
		{OrderStatusProcessing, OrderStatusPending, false},
		{OrderStatusPending, OrderStatusPending, false},
		{OrderStatusCompleted, OrderStatusCancelled, false},
		{OrderStatusCompleted, OrderStatusPending, false},
		{OrderStatusCancelled, OrderStatusCompleted, false},
		{OrderStatusCancelled, OrderStatusProcessing, false},
		{"shipped", OrderStatusCompleted, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestOrderStatus_IsValid(t *testing.T) {
	assert.True(t, OrderStatusProcessing.IsValid())
	assert.False(t, OrderStatus("shipped").IsValid())
	assert.False(t, OrderStatus("").IsValid())
	assert.True(t, OrderStatusCancelled.IsTerminal())
	assert.False(t, OrderStatusPending.IsTerminal())
}

// 明細は作成時の価格を持つ
func TestNewOrderItem_SnapshotsPrice(t *testing.T) {
	p := Product{ID: 1, Name: "Coffee", Price: decimal.NewFromInt(2500)}
	it := NewOrderItem(p, 3)

	p.Price = decimal.NewFromInt(3000)
	p.Name = "Coffee (new)"

	assert.Equal(t, "Coffee", it.ProductName)
	assert.True(t, it.UnitPrice.Equal(decimal.NewFromInt(2500)))
	assert.True(t, it.Subtotal.Equal(decimal.NewFromInt(7500)))
}

func TestCartItemView_Subtotal(t *testing.T) {
	v := CartItemView{Quantity: 2, Price: decimal.RequireFromString("19.99")}
	assert.True(t, v.Subtotal().Equal(decimal.RequireFromString("39.98")))
}

func TestCustomer_ShippingAddress(t *testing.T) {
	assert.Equal(t, "1 Main St, Tokyo", Customer{Address: "1 Main St", City: "Tokyo"}.ShippingAddress())
	assert.Equal(t, "Tokyo", Customer{City: "Tokyo"}.ShippingAddress())
	assert.Equal(t, "", Customer{}.ShippingAddress())
}

func TestProduct_IsLowStock(t *testing.T) {
	assert.True(t, Product{StockQuantity: 9}.IsLowStock(10))
	assert.False(t, Product{StockQuantity: 10}.IsLowStock(10))
}
