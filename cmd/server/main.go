package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonboulle/clockwork"
	goredis "github.com/redis/go-redis/v9"

	"github.com/commentpulse/commentpulse/internal/analytics"
	"github.com/commentpulse/commentpulse/internal/app"
	"github.com/commentpulse/commentpulse/internal/config"
	"github.com/commentpulse/commentpulse/internal/health"
	"github.com/commentpulse/commentpulse/internal/history"
	"github.com/commentpulse/commentpulse/internal/logging"
	"github.com/commentpulse/commentpulse/internal/metrics"
	"github.com/commentpulse/commentpulse/internal/monitor"
	"github.com/commentpulse/commentpulse/internal/platform/retry"
	"github.com/commentpulse/commentpulse/internal/redis"
	"github.com/commentpulse/commentpulse/internal/server"
	"github.com/commentpulse/commentpulse/internal/strategy"
	"github.com/commentpulse/commentpulse/internal/version"
)

func setupConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		// Use log before slog is initialized
		log.Fatalf("Failed to load config: %v", err)
	}
	return cfg
}

// setupRedis connects with a short retry window so a Redis that is still
// starting (e.g. under compose) does not kill the service.
func setupRedis(ctx context.Context, redisURL string) *goredis.Client {
	policy := retry.Policy{
		MaxAttempts:    5,
		InitialBackoff: 500 * time.Millisecond,
		OnRetry: func(attempt int, err error, backoff time.Duration) {
			slog.Warn("Redis not ready, retrying", "attempt", attempt, "backoff", backoff, "error", err)
		},
	}
	classify := func(error) retry.Action { return retry.Retry }

	client, err := retry.Do(ctx, policy, classify, func() (*goredis.Client, error) {
		return redis.NewClient(ctx, redisURL)
	})
	if err != nil {
		slog.Error("Failed to connect to Redis", "error", err)
		os.Exit(1)
	}
	return client
}

func runGracefulShutdown(srv *server.Server, stopPoller context.CancelFunc) <-chan struct{} {
	done := make(chan struct{})
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		slog.Info("Shutdown signal received, cleaning up...")

		stopPoller()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("Server shutdown error", "error", err)
		}

		close(done)
	}()

	return done
}

func main() {
	clock := clockwork.NewRealClock()

	cfg := setupConfig()

	logging.InitLogger(cfg.LogLevel, cfg.LogFormat)
	slog.Info("Application starting", "env", cfg.AppEnv, "port", cfg.Port)

	info := version.Get()
	metrics.BuildInfo.WithLabelValues(info.Version, info.Commit, info.BuildTime, info.GoVersion).Set(1)

	var (
		store       history.Store
		themes      server.ThemeStore
		redisClient *goredis.Client
	)
	if cfg.RedisURL != "" {
		redisClient = setupRedis(context.Background(), cfg.RedisURL)
		defer func() { _ = redisClient.Close() }()
		store = history.NewRedisStore(redisClient, clock)
		themes = redis.NewThemeStore(redisClient)
	} else {
		slog.Warn("REDIS_URL not set, using in-memory history (records are lost on restart)")
		store = history.NewMemoryStore(clock)
		themes = server.NewMemoryThemeStore()
	}

	summaries := analytics.NewCache(store)
	store.AddObserver(summaries)

	engine := strategy.NewEngine()
	mon := monitor.New(clock)
	appSvc := app.NewService(store, engine, summaries, mon, clock)

	poller := health.NewPoller(cfg.AnalyzerBaseURL, clock,
		health.WithInterval(cfg.HealthInterval),
		health.WithInitialDelay(cfg.HealthDelay),
	)
	pollerCtx, stopPoller := context.WithCancel(context.Background())
	go poller.Run(pollerCtx)

	// Pass nil explicitly in memory mode to avoid a typed-nil interface.
	var srv *server.Server
	if redisClient != nil {
		srv = server.NewServer(cfg, appSvc, poller, themes, redisClient)
	} else {
		srv = server.NewServer(cfg, appSvc, poller, themes, nil)
	}

	done := runGracefulShutdown(srv, stopPoller)

	slog.Info("Server starting", "port", cfg.Port)
	if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Server error", "error", err)
		os.Exit(1)
	}

	<-done
}
