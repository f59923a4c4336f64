package handler

import (
	"net/http"
	"strconv"

	"retail/internal/config"
	"retail/internal/middleware"
	"retail/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// 管理者の商品・在庫API
type AdminProductHandler struct {
	uc                *usecase.ProductUsecase
	lowStockThreshold int64
}

func NewAdminProductHandler(uc *usecase.ProductUsecase, lowStockThreshold int64) *AdminProductHandler {
	return &AdminProductHandler{uc: uc, lowStockThreshold: lowStockThreshold}
}

type ProductRequest struct {
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	Category      string          `json:"category"`
	Price         decimal.Decimal `json:"price"`
	Cost          decimal.Decimal `json:"cost"`
	StockQuantity int64           `json:"stock_quantity"`
	SupplierID    *int64          `json:"supplier_id"`
	ImagePath     string          `json:"image_path"`
}

func (r ProductRequest) toInput() usecase.ProductInput {
	return usecase.ProductInput{
		Name:          r.Name,
		Description:   r.Description,
		Category:      r.Category,
		Price:         r.Price,
		Cost:          r.Cost,
		StockQuantity: r.StockQuantity,
		SupplierID:    r.SupplierID,
		ImagePath:     r.ImagePath,
	}
}

type AdjustStockRequest struct {
	Delta int64  `json:"delta"`
	Notes string `json:"notes"`
}

func (h *AdminProductHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	admin := e.Group("/admin")
	admin.Use(middleware.AuthJWT(cfg))
	admin.Use(middleware.StaffRoleGuard())

	admin.POST("/products", h.create)
	admin.GET("/products/low-stock", h.lowStock)
	admin.PUT("/products/:id", h.update)
	admin.DELETE("/products/:id", h.delete)
	admin.POST("/products/:id/stock", h.adjustStock)
}

func (h *AdminProductHandler) create(c echo.Context) error {
	sess, ok := sessionFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	var req ProductRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}

	p, err := h.uc.Create(c.Request().Context(), sess, req.toInput())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, p)
}

func (h *AdminProductHandler) update(c echo.Context) error {
	sess, ok := sessionFromContext(c)
	if !ok {
		return unauthorized(c)
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return badRequest(c, "invalid id")
	}

	var req ProductRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}

	p, err := h.uc.Update(c.Request().Context(), sess, id, req.toInput())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, p)
}

func (h *AdminProductHandler) delete(c echo.Context) error {
	sess, ok := sessionFromContext(c)
	if !ok {
		return unauthorized(c)
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return badRequest(c, "invalid id")
	}

	if err := h.uc.Delete(c.Request().Context(), sess, id); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *AdminProductHandler) adjustStock(c echo.Context) error {
	sess, ok := sessionFromContext(c)
	if !ok {
		return unauthorized(c)
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return badRequest(c, "invalid id")
	}

	var req AdjustStockRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}

	p, err := h.uc.AdjustStock(c.Request().Context(), sess, id, req.Delta, req.Notes)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, p)
}

// ?threshold= が無ければ設定値
func (h *AdminProductHandler) lowStock(c echo.Context) error {
	sess, ok := sessionFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	threshold := h.lowStockThreshold
	if v := c.QueryParam("threshold"); v != "" {
		t, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return badRequest(c, "invalid threshold")
		}
		threshold = t
	}

	ps, err := h.uc.LowStock(c.Request().Context(), sess, threshold)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, ps)
}
