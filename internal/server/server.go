package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nodegen/backend/internal/config"
	mid "github.com/nodegen/backend/internal/server/middleware"
	"github.com/nodegen/backend/internal/storage"
	"github.com/nodegen/backend/internal/util"
	"github.com/nodegen/backend/pkg/graph"
	"github.com/nodegen/backend/pkg/logger"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

// New builds the echo instance with middleware and routes.
func New(cfg config.Config, app *mid.App) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Debug = cfg.Debug

	e.Use(mid.TrustedRequestID)
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: util.NewRequestID,
	}))
	e.Use(mid.AppContextMiddleware(app))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost},
		AllowHeaders: []string{echo.HeaderAuthorization, echo.HeaderAccept, echo.HeaderContentType},
		MaxAge:       3600,
	}))
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			keyvals := []any{
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency", v.Latency,
				"request_id", v.RequestID,
			}
			if v.Error != nil {
				logger.Error("Request", append(keyvals, "err", v.Error)...)
				return nil
			}
			logger.Info("Request", keyvals...)
			return nil
		},
	}))
	e.Use(middleware.Recover())
	e.Use(middleware.BodyLimit(cfg.BodyLimit))

	RegisterRoutes(e)
	return e
}

// NewApp wires the model client, normalizer and failure archive.
func NewApp(ctx context.Context, cfg config.Config) (*mid.App, error) {
	client, err := NewModelClient(ctx, cfg.AI)
	if err != nil {
		return nil, fmt.Errorf("failed to create model client: %w", err)
	}

	var archive storage.FailureArchive = storage.NopArchive{}
	if cfg.Storage.Enabled() {
		s3, err := storage.NewS3Client(ctx, cfg.Storage)
		if err != nil {
			return nil, err
		}
		archive = storage.NewS3Archive(s3, cfg.Storage.Bucket)
	}

	normalizer := graph.Normalizer{
		Mode:   cfg.Graph.Normalizer,
		Strict: cfg.Graph.Strict,
	}
	logger.Info("Model client ready",
		"model", client.Name(),
		"normalizer", normalizer.Mode,
		"strict", normalizer.Strict,
		"archive", cfg.Storage.Enabled(),
	)

	return &mid.App{
		Config:    cfg,
		Generator: graph.NewGenerator(client, normalizer),
		Archive:   archive,
	}, nil
}

// Run serves e on port until ctx is done, then shuts it down gracefully.
func Run(ctx context.Context, e *echo.Echo, port string) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("Starting server", "port", port)
		if err := e.Start(":" + port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := e.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("failed to shutdown server: %w", err)
		}
		return nil
	})

	return g.Wait()
}

// Init starts the service and blocks until SIGINT or SIGTERM.
func Init(cfg config.Config) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := NewApp(ctx, cfg)
	if err != nil {
		logger.Fatal("Failed to initialize", "err", err)
	}

	if err := Run(ctx, New(cfg, app), cfg.Port); err != nil {
		logger.Fatal("Server stopped", "err", err)
	}
	logger.Info("Server stopped")
}
