package server

import (
	"net/http"

	"retail/internal/config"
	"retail/internal/handler"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handlers はHTTPに出す全ハンドラ
type Handlers struct {
	Auth          *handler.AuthHandler
	Products      *handler.ProductHandler
	AdminProducts *handler.AdminProductHandler
	Cart          *handler.CartHandler
	Orders        *handler.OrderHandler
	AdminOrders   *handler.AdminOrderHandler
	Customers     *handler.CustomerHandler
	Suppliers     *handler.SupplierHandler
	Reports       *handler.ReportHandler
}

func RegisterRoutes(e *echo.Echo, cfg config.Config, h Handlers) {
	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	h.Auth.RegisterRoutes(e, cfg)
	h.Products.RegisterRoutes(e)
	h.AdminProducts.RegisterRoutes(e, cfg)
	h.Cart.RegisterRoutes(e, cfg)
	h.Orders.RegisterRoutes(e, cfg)
	h.AdminOrders.RegisterRoutes(e, cfg)
	h.Customers.RegisterRoutes(e, cfg)
	h.Suppliers.RegisterRoutes(e, cfg)
	h.Reports.RegisterRoutes(e, cfg)
}
