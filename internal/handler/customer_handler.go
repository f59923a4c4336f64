package handler

import (
	"net/http"
	"strings"

	"retail/internal/config"
	"retail/internal/middleware"
	"retail/internal/usecase"

	"github.com/labstack/echo/v4"
)

type CustomerHandler struct {
	uc *usecase.CustomerUsecase
}

func NewCustomerHandler(uc *usecase.CustomerUsecase) *CustomerHandler {
	return &CustomerHandler{uc: uc}
}

type UpdateCustomerRequest struct {
	Phone   string `json:"phone"`
	Address string `json:"address"`
	City    string `json:"city"`
}

func (h *CustomerHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	me := e.Group("/me")
	me.Use(middleware.AuthJWT(cfg))
	me.GET("/customer", h.getMine)
	me.PUT("/customer", h.updateMine)

	admin := e.Group("/admin")
	admin.Use(middleware.AuthJWT(cfg))
	admin.Use(middleware.StaffRoleGuard())
	admin.GET("/customers", h.list)
}

func (h *CustomerHandler) getMine(c echo.Context) error {
	sess, ok := sessionFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	cust, err := h.uc.GetMine(c.Request().Context(), sess)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, cust)
}

func (h *CustomerHandler) updateMine(c echo.Context) error {
	sess, ok := sessionFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	var req UpdateCustomerRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}

	cust, err := h.uc.UpdateMine(c.Request().Context(), sess, usecase.UpdateCustomerInput{
		Phone:   req.Phone,
		Address: req.Address,
		City:    req.City,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, cust)
}

// ?q= で検索
func (h *CustomerHandler) list(c echo.Context) error {
	sess, ok := sessionFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	cs, err := h.uc.Search(c.Request().Context(), sess, strings.TrimSpace(c.QueryParam("q")))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, cs)
}
