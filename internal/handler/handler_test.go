package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"retail/internal/config"
	"retail/internal/domain/model"
	repo "retail/internal/repository"
	"retail/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =====================
// stubs
// =====================

type productRepoStub struct {
	repo.ProductRepository
	products map[int64]model.Product
}

func (s *productRepoStub) FindByID(ctx context.Context, id int64) (model.Product, error) {
	p, ok := s.products[id]
	if !ok {
		return model.Product{}, repo.ErrNotFound
	}
	return p, nil
}

func (s *productRepoStub) List(ctx context.Context, q repo.ProductListQuery) ([]model.Product, error) {
	out := []model.Product{}
	for _, p := range s.products {
		if q.Category != "" && p.Category != q.Category {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

type cartRepoStub struct {
	repo.CartRepository
	upserts int
}

func (s *cartRepoStub) Upsert(ctx context.Context, userID int64, productID int64, qty int64) error {
	s.upserts++
	return nil
}

func (s *cartRepoStub) ListByUserID(ctx context.Context, userID int64) ([]model.CartItemView, error) {
	return []model.CartItemView{}, nil
}

var testCfg = config.Config{JWTSecret: "test-secret"}

func newProductRepo() *productRepoStub {
	return &productRepoStub{products: map[int64]model.Product{
		1: {ID: 1, Name: "Coffee", Category: "drinks", Price: decimal.NewFromInt(2500), StockQuantity: 25},
	}}
}

func bearer(t *testing.T, userID int64, role model.Role) string {
	t.Helper()
	tok, _, err := usecase.NewJWTIssuer(testCfg.JWTSecret, time.Minute).Issue(userID, role, time.Now())
	require.NoError(t, err)
	return "Bearer " + tok
}

func do(e *echo.Echo, method, path, authz, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if authz != "" {
		req.Header.Set(echo.HeaderAuthorization, authz)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

// =====================
// writeError
// =====================

func TestWriteError_StatusByKind(t *testing.T) {
	tests := []struct {
		kind usecase.ErrorKind
		want int
	}{
		{usecase.KindNotFound, http.StatusNotFound},
		{usecase.KindInvalidQuantity, http.StatusBadRequest},
		{usecase.KindValidation, http.StatusBadRequest},
		{usecase.KindEmptyCart, http.StatusBadRequest},
		{usecase.KindInsufficientStock, http.StatusConflict},
		{usecase.KindInvalidStatus, http.StatusConflict},
		{usecase.KindConflict, http.StatusConflict},
		{usecase.KindUnauthorized, http.StatusUnauthorized},
		{usecase.KindForbidden, http.StatusForbidden},
		{usecase.KindPersistenceFailure, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			e := echo.New()
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

			require.NoError(t, writeError(c, usecase.NewError(tt.kind, "boom")))
			assert.Equal(t, tt.want, rec.Code)
			assert.Equal(t, string(tt.kind), decodeError(t, rec).Kind)
		})
	}
}

// DBエラーの中身は出さない
func TestWriteError_HidesInternal(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

	require.NoError(t, writeError(c, errors.New("pq: password authentication failed")))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "internal error", decodeError(t, rec).Error)
}

// =====================
// routes
// =====================

func TestProductHandler_Detail(t *testing.T) {
	e := echo.New()
	NewProductHandler(usecase.NewProductUsecase(nil, newProductRepo(), nil)).RegisterRoutes(e)

	rec := do(e, http.MethodGet, "/products/1", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var p model.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &p))
	assert.Equal(t, "Coffee", p.Name)

	rec = do(e, http.MethodGet, "/products/99", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(e, http.MethodGet, "/products/abc", "", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestProductHandler_ListByCategory(t *testing.T) {
	e := echo.New()
	NewProductHandler(usecase.NewProductUsecase(nil, newProductRepo(), nil)).RegisterRoutes(e)

	rec := do(e, http.MethodGet, "/products?category=food", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())
}

func TestCartHandler_Add(t *testing.T) {
	e := echo.New()
	carts := &cartRepoStub{}
	NewCartHandler(usecase.NewCartUsecase(carts, newProductRepo())).RegisterRoutes(e, testCfg)

	// トークンなし
	rec := do(e, http.MethodPost, "/cart", "", `{"product_id":1,"quantity":1}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	authz := bearer(t, 1, model.RoleCustomer)

	rec = do(e, http.MethodPost, "/cart", authz, `{"product_id":1,"quantity":0}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, string(usecase.KindInvalidQuantity), decodeError(t, rec).Kind)

	rec = do(e, http.MethodPost, "/cart", authz, `{"product_id":1,"quantity":26}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
	body := decodeError(t, rec)
	assert.Equal(t, int64(1), body.ProductID)
	assert.Contains(t, body.Error, "Coffee")

	rec = do(e, http.MethodPost, "/cart", authz, `{"product_id":1,"quantity":2}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, carts.upserts)
}

// customerは管理APIに入れない
func TestAdminProductHandler_StaffOnly(t *testing.T) {
	e := echo.New()
	NewAdminProductHandler(usecase.NewProductUsecase(nil, newProductRepo(), nil), 10).RegisterRoutes(e, testCfg)

	rec := do(e, http.MethodPost, "/admin/products/1/stock", bearer(t, 1, model.RoleCustomer), `{"delta":5}`)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = do(e, http.MethodPost, "/admin/products/1/stock", bearer(t, 2, model.RoleStaff), `{"delta":0}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, string(usecase.KindInvalidQuantity), decodeError(t, rec).Kind)
}
