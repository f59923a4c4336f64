package middleware

import (
	"log/slog"
	"time"

	"retail/internal/logging"

	"github.com/labstack/echo/v4"
)

// リクエスト単位のロガーをctxに入れて、終わったら1行出す
func RequestLogger(base *slog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			req := c.Request()

			//RequestIDミドルウェアの後に置く
			rid := c.Response().Header().Get(echo.HeaderXRequestID)
			l := base.With("request_id", rid)
			c.SetRequest(req.WithContext(logging.WithCtx(req.Context(), l)))

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			status := c.Response().Status
			attrs := []any{
				"method", req.Method,
				"path", c.Path(),
				"status", status,
				"latency_ms", time.Since(start).Milliseconds(),
			}
			if uid, ok := c.Get(CtxUserIDKey).(int64); ok {
				attrs = append(attrs, "user_id", uid)
			}

			switch {
			case status >= 500:
				l.Error("http request", attrs...)
			case status >= 400:
				l.Warn("http request", attrs...)
			default:
				l.Info("http request", attrs...)
			}
			return nil
		}
	}
}
