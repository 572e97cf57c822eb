package server

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (s *Server) registerRoutes() {
	// Observability endpoints
	s.echo.GET("/health/live", s.handleLiveness)
	s.echo.GET("/health/ready", s.handleReadiness)
	s.echo.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	s.echo.GET("/version", s.handleVersion)

	// Analysis ingest and history
	s.echo.POST("/api/analyses", s.handleIngest, s.ingestRateLimitMiddleware)
	s.echo.GET("/api/analyses", s.handleListAnalyses)
	s.echo.GET("/api/analyses/:id", s.handleGetAnalysis)
	s.echo.DELETE("/api/analyses", s.handleClearAnalyses)

	// Aggregates and telemetry
	s.echo.GET("/api/summary", s.handleSummary)
	s.echo.GET("/api/ml-metrics", s.handleMLMetrics)
	s.echo.GET("/api/performance", s.handlePerformance)
	s.echo.GET("/api/status", s.handleAnalyzerStatus)

	// UI state (shares the storage mechanism, no analytics involvement)
	s.echo.GET("/api/theme", s.handleGetTheme)
	s.echo.PUT("/api/theme", s.handleSetTheme)
}
