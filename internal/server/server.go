package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"retail/internal/config"
	mw "retail/internal/middleware"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

type Server struct {
	e   *echo.Echo
	cfg config.Config
	log *slog.Logger
}

// New はミドルウェアとルートを組み立てる
func New(cfg config.Config, log *slog.Logger, h Handlers) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(mw.RequestLogger(log))
	e.Use(mw.Metrics())
	e.Use(middleware.Recover())

	RegisterRoutes(e, cfg, h)
	return &Server{e: e, cfg: cfg, log: log}
}

// テスト用
func (s *Server) Echo() *echo.Echo {
	return s.e
}

// ctxがキャンセルされるまで動かし、その後graceful shutdown
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.log.Info("http server starting", "addr", s.cfg.Addr())
		if err := s.e.Start(s.cfg.Addr()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.e.Shutdown(shutdownCtx)
}
