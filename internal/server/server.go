package server

import (
	"context"
	"fmt"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	goredis "github.com/redis/go-redis/v9"

	"github.com/commentpulse/commentpulse/internal/app"
	"github.com/commentpulse/commentpulse/internal/config"
	apperrors "github.com/commentpulse/commentpulse/internal/errors"
	"github.com/commentpulse/commentpulse/internal/health"
)

// ThemeStore is the subset of theme persistence the server needs.
type ThemeStore interface {
	Get(ctx context.Context) (string, error)
	Set(ctx context.Context, theme string) error
}

// redisHealthChecker is a minimal interface for Redis health checks.
type redisHealthChecker interface {
	Ping(ctx context.Context) *goredis.StatusCmd
}

type Server struct {
	echo          *echo.Echo
	config        *config.Config
	app           *app.Service
	poller        *health.Poller
	themes        ThemeStore
	redisClient   redisHealthChecker
	ingestLimiter *IngestRateLimiter
	startTime     time.Time
}

func NewServer(cfg *config.Config, appSvc *app.Service, poller *health.Poller, themes ThemeStore, redisClient redisHealthChecker) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(correlationMiddleware())
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(apperrors.Middleware())

	srv := &Server{
		echo:          e,
		config:        cfg,
		app:           appSvc,
		poller:        poller,
		themes:        themes,
		redisClient:   redisClient,
		ingestLimiter: NewIngestRateLimiter(cfg.IngestRatePerIP, cfg.IngestBurst),
		startTime:     time.Now(),
	}

	srv.registerRoutes()

	return srv
}

func (s *Server) Start() error {
	return s.echo.Start(fmt.Sprintf(":%s", s.config.Port))
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}
