package middleware_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"retail/internal/config"
	"retail/internal/domain/model"
	"retail/internal/logging"
	"retail/internal/middleware"
	"retail/internal/usecase"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var cfg = config.Config{JWTSecret: "test-secret"}

func runRequest(t *testing.T, e *echo.Echo, path, authz string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authz != "" {
		req.Header.Set("Authorization", authz)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func token(t *testing.T, secret string, userID int64, role model.Role, now time.Time) string {
	t.Helper()
	s, _, err := usecase.NewJWTIssuer(secret, time.Minute).Issue(userID, role, now)
	require.NoError(t, err)
	return s
}

func protected(e *echo.Echo, mws ...echo.MiddlewareFunc) {
	e.GET("/protected", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]any{
			"user_id": c.Get(middleware.CtxUserIDKey),
			"role":    c.Get(middleware.CtxUserRoleKey),
		})
	}, mws...)
}

// =====================
// AuthJWT
// =====================

func TestAuthJWT_Rejects(t *testing.T) {
	now := time.Now()
	none := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"sub": "1", "role": "admin", "exp": now.Add(time.Minute).Unix()})
	noneTok, err := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := []struct {
		name  string
		authz string
	}{
		{name: "no header", authz: ""},
		{name: "bad scheme", authz: "Token abc.def.ghi"},
		{name: "empty token", authz: "Bearer "},
		{name: "bad signature", authz: "Bearer " + token(t, "other-secret", 1, model.RoleCustomer, now)},
		{name: "expired", authz: "Bearer " + token(t, cfg.JWTSecret, 1, model.RoleCustomer, now.Add(-time.Hour))},
		{name: "alg none", authz: "Bearer " + noneTok},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			protected(e, middleware.AuthJWT(cfg))

			rec := runRequest(t, e, "/protected", tt.authz)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.JSONEq(t, `{"error":"unauthorized"}`, rec.Body.String())
		})
	}
}

func TestAuthJWT_SetsContext(t *testing.T) {
	e := echo.New()
	protected(e, middleware.AuthJWT(cfg))

	rec := runRequest(t, e, "/protected", "Bearer "+token(t, cfg.JWTSecret, 42, model.RoleStaff, time.Now()))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"user_id":42,"role":"staff"}`, rec.Body.String())
}

// =====================
// StaffRoleGuard
// =====================

func TestStaffRoleGuard(t *testing.T) {
	tests := []struct {
		role model.Role
		want int
	}{
		{model.RoleAdmin, http.StatusOK},
		{model.RoleStaff, http.StatusOK},
		{model.RoleCustomer, http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			e := echo.New()
			protected(e, middleware.AuthJWT(cfg), middleware.StaffRoleGuard())

			rec := runRequest(t, e, "/protected", "Bearer "+token(t, cfg.JWTSecret, 1, tt.role, time.Now()))
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

// AuthJWTが無ければ401
func TestStaffRoleGuard_NoRole(t *testing.T) {
	e := echo.New()
	protected(e, middleware.StaffRoleGuard())

	rec := runRequest(t, e, "/protected", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

// =====================
// RequestLogger
// =====================

func TestRequestLogger_WritesRequestID(t *testing.T) {
	var buf bytes.Buffer
	base := slog.New(slog.NewJSONHandler(&buf, nil))

	e := echo.New()
	e.Use(echomw.RequestIDWithConfig(echomw.RequestIDConfig{Generator: func() string { return "rid-1" }}))
	e.Use(middleware.RequestLogger(base))
	e.GET("/ping", func(c echo.Context) error {
		logging.FromCtx(c.Request().Context()).Info("inside")
		return c.NoContent(http.StatusNoContent)
	})

	rec := runRequest(t, e, "/ping", "")
	require.Equal(t, http.StatusNoContent, rec.Code)

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 2)

	var inside, access map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &inside))
	require.NoError(t, json.Unmarshal(lines[1], &access))
	assert.Equal(t, "rid-1", inside["request_id"])
	assert.Equal(t, "http request", access["msg"])
	assert.Equal(t, float64(http.StatusNoContent), access["status"])
	assert.Equal(t, "/ping", access["path"])
}
