package server

import (
	"github.com/labstack/echo/v4"

	"github.com/commentpulse/commentpulse/internal/metrics"
	"github.com/commentpulse/commentpulse/internal/platform/correlation"
)

// correlationMiddleware attaches a correlation ID to every request context
// so all log lines of one request can be tied together.
func correlationMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			ctx := correlation.WithID(req.Context(), correlation.NewID())
			c.SetRequest(req.WithContext(ctx))
			return next(c)
		}
	}
}

// ingestRateLimitMiddleware rejects ingest requests from IPs exceeding the
// configured sustained rate.
func (s *Server) ingestRateLimitMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if !s.ingestLimiter.Allow(c.RealIP()) {
			metrics.IngestRejectedTotal.WithLabelValues("rate_limit").Inc()
			return echo.NewHTTPError(429, "ingest rate limit exceeded")
		}
		return next(c)
	}
}
