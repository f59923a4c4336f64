package handler

import (
	"net/http"
	"time"

	"retail/internal/config"
	"retail/internal/middleware"
	"retail/internal/usecase"

	"github.com/labstack/echo/v4"
)

type ReportHandler struct {
	uc *usecase.ReportUsecase
}

func NewReportHandler(uc *usecase.ReportUsecase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

func (h *ReportHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	admin := e.Group("/admin/reports")
	admin.Use(middleware.AuthJWT(cfg))
	admin.Use(middleware.StaffRoleGuard())

	admin.GET("/dashboard", h.dashboard)
	admin.GET("/sales", h.sales)
}

func (h *ReportHandler) dashboard(c echo.Context) error {
	sess, ok := sessionFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	s, err := h.uc.Dashboard(c.Request().Context(), sess)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, s)
}

// ?from=2024-01-01&to=2024-01-31
func (h *ReportHandler) sales(c echo.Context) error {
	sess, ok := sessionFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	var from, to *time.Time
	if v := c.QueryParam("from"); v != "" {
		tm, err := time.Parse(time.DateOnly, v)
		if err != nil {
			return badRequest(c, "invalid from")
		}
		from = &tm
	}
	if v := c.QueryParam("to"); v != "" {
		tm, err := time.Parse(time.DateOnly, v)
		if err != nil {
			return badRequest(c, "invalid to")
		}
		to = &tm
	}

	rows, err := h.uc.SalesByDay(c.Request().Context(), sess, from, to)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, rows)
}
