package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	OrdersPlaced = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "orders_placed_total",
			Help: "Orders committed by checkout",
		},
	)

	// kind: empty_cart / not_found / insufficient_stock / persistence_failure
	CheckoutRejected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "checkout_rejected_total",
			Help: "Checkouts rolled back, by error kind",
		},
		[]string{"kind"},
	)

	// type: restock / consumption / sale / cancel_return
	StockMovements = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stock_movements_units_total",
			Help: "Units moved in or out of stock",
		},
		[]string{"type"},
	)
)
