package server

import (
	"fmt"

	"github.com/labstack/echo/v4"

	apperrors "github.com/commentpulse/commentpulse/internal/errors"
	"github.com/commentpulse/commentpulse/internal/models"
)

// ingestResponse is the POST /api/analyses payload: the stored record plus
// the strategies derived from it, in canonical order.
type ingestResponse struct {
	Record     models.AnalysisRecord `json:"record"`
	Strategies []models.Strategy     `json:"strategies"`
}

func (s *Server) handleIngest(c echo.Context) error {
	var record models.AnalysisRecord
	if err := c.Bind(&record); err != nil {
		return apperrors.ValidationError("request body must be a valid analysis record")
	}

	stored, strategies, err := s.app.Ingest(c.Request().Context(), record)
	if err != nil {
		return err
	}

	if strategies == nil {
		strategies = []models.Strategy{}
	}
	if err := c.JSON(201, ingestResponse{Record: stored, Strategies: strategies}); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}

func (s *Server) handleListAnalyses(c echo.Context) error {
	records, err := s.app.History(c.Request().Context())
	if err != nil {
		return err
	}
	if err := c.JSON(200, records); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}

func (s *Server) handleGetAnalysis(c echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return apperrors.ValidationError("record id must not be empty")
	}

	record, err := s.app.Record(c.Request().Context(), id)
	if err != nil {
		return err
	}
	if err := c.JSON(200, record); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}

func (s *Server) handleClearAnalyses(c echo.Context) error {
	if err := s.app.ClearHistory(c.Request().Context()); err != nil {
		return err
	}
	if err := c.JSON(200, map[string]string{"status": "ok"}); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}

func (s *Server) handleSummary(c echo.Context) error {
	summary, err := s.app.Summary(c.Request().Context())
	if err != nil {
		return err
	}
	if err := c.JSON(200, summary); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}

func (s *Server) handleMLMetrics(c echo.Context) error {
	mlSummary, err := s.app.MLMetrics(c.Request().Context())
	if err != nil {
		return err
	}
	if err := c.JSON(200, mlSummary); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}

func (s *Server) handlePerformance(c echo.Context) error {
	if err := c.JSON(200, s.app.Performance()); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}

func (s *Server) handleAnalyzerStatus(c echo.Context) error {
	if err := c.JSON(200, s.poller.Status()); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}

type themePayload struct {
	Theme string `json:"theme"`
}

func (s *Server) handleGetTheme(c echo.Context) error {
	theme, err := s.themes.Get(c.Request().Context())
	if err != nil {
		return apperrors.InternalError("failed to load theme", err)
	}
	if err := c.JSON(200, themePayload{Theme: theme}); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}

func (s *Server) handleSetTheme(c echo.Context) error {
	var payload themePayload
	if err := c.Bind(&payload); err != nil || payload.Theme == "" {
		return apperrors.ValidationError("theme must not be empty")
	}
	if err := s.themes.Set(c.Request().Context(), payload.Theme); err != nil {
		return apperrors.InternalError("failed to persist theme", err)
	}
	if err := c.JSON(200, themePayload{Theme: payload.Theme}); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}
