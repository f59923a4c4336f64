package handler

import (
	"net/http"
	"strconv"

	"retail/internal/domain/model"
	"retail/internal/middleware"
	"retail/internal/usecase"

	"github.com/labstack/echo/v4"
)

type ErrorResponse struct {
	Error     string `json:"error"`
	Kind      string `json:"kind,omitempty"`
	ProductID int64  `json:"product_id,omitempty"`
}

var statusByKind = map[usecase.ErrorKind]int{
	usecase.KindNotFound:           http.StatusNotFound,
	usecase.KindInvalidQuantity:    http.StatusBadRequest,
	usecase.KindValidation:         http.StatusBadRequest,
	usecase.KindEmptyCart:          http.StatusBadRequest,
	usecase.KindInsufficientStock:  http.StatusConflict,
	usecase.KindInvalidStatus:      http.StatusConflict,
	usecase.KindConflict:           http.StatusConflict,
	usecase.KindUnauthorized:       http.StatusUnauthorized,
	usecase.KindForbidden:          http.StatusForbidden,
	usecase.KindPersistenceFailure: http.StatusInternalServerError,
}

func writeError(c echo.Context, err error) error {
	if err == nil {
		return nil
	}
	if ue, ok := usecase.AsError(err); ok {
		status, ok := statusByKind[ue.Kind]
		if !ok {
			status = http.StatusInternalServerError
		}
		msg := ue.Error()
		//DBエラーの中身は返さない
		if status == http.StatusInternalServerError {
			msg = "internal error"
		}
		return c.JSON(status, ErrorResponse{Error: msg, Kind: string(ue.Kind), ProductID: ue.ProductID})
	}

	//500
	return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
}

func badRequest(c echo.Context, msg string) error {
	return c.JSON(http.StatusBadRequest, ErrorResponse{Error: msg})
}

func getUserIDFromContext(c echo.Context) (int64, bool) {
	id, ok := c.Get(middleware.CtxUserIDKey).(int64)
	if !ok || id <= 0 {
		return 0, false
	}
	return id, true
}

// JWTのclaimsからSessionを作る
func sessionFromContext(c echo.Context) (usecase.Session, bool) {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return usecase.Session{}, false
	}
	role, _ := c.Get(middleware.CtxUserRoleKey).(string)
	return usecase.Session{UserID: userID, Role: model.Role(role)}, true
}

func unauthorized(c echo.Context) error {
	return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
}

func parseIDParam(c echo.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
