package handlers

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"resumehire/interview-engine/internal/models"
	"resumehire/interview-engine/internal/repositories"
	"resumehire/interview-engine/internal/services"
)

type InsightHandler struct {
	sessionRepo    repositories.SessionRepository
	insightService services.InsightService
}

func NewInsightHandler(
	sessionRepo repositories.SessionRepository,
	insightService services.InsightService,
) *InsightHandler {
	return &InsightHandler{
		sessionRepo:    sessionRepo,
		insightService: insightService,
	}
}

// HandleListInsights handles GET /sessions/:id/insights: the enumerated queries with
// their cached flags.
func (h *InsightHandler) HandleListInsights(c *fiber.Ctx) error {
	session, err := findSession(c, h.sessionRepo)
	if session == nil {
		return err
	}

	return c.JSON(models.InsightListResponse{
		Insights: h.insightService.ListInsights(session),
	})
}

// HandleGenerateInsight handles POST /sessions/:id/insights. A cached query returns
// its stored response without touching the LLM.
func (h *InsightHandler) HandleGenerateInsight(c *fiber.Ctx) error {
	session, err := findSession(c, h.sessionRepo)
	if session == nil {
		return err
	}

	var req models.InsightRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	if req.Query == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "query is required",
		})
	}

	response, cached, err := h.insightService.GenerateInsight(c.Context(), session, req.Query)
	if err != nil {
		if errors.Is(err, services.ErrUnknownInsight) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": fmt.Sprintf("failed to generate insight: %v", err),
		})
	}

	return c.JSON(models.InsightResponse{
		Query:    req.Query,
		Response: response,
		Cached:   cached,
	})
}

// HandleDeleteInsight handles DELETE /sessions/:id/insights: removes exactly one
// cached entry by its query key.
func (h *InsightHandler) HandleDeleteInsight(c *fiber.Ctx) error {
	session, err := findSession(c, h.sessionRepo)
	if session == nil {
		return err
	}

	var req models.InsightRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	if req.Query == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "query is required",
		})
	}

	if err := h.insightService.DeleteInsight(session, req.Query); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"message": "Cached insight deleted",
		"query":   req.Query,
	})
}

// HandleClearInsights handles POST /sessions/:id/insights/clear.
func (h *InsightHandler) HandleClearInsights(c *fiber.Ctx) error {
	session, err := findSession(c, h.sessionRepo)
	if session == nil {
		return err
	}

	h.insightService.ClearInsights(session)

	return c.JSON(fiber.Map{
		"message": "Cached insights cleared",
	})
}

// HandleProfile handles POST /sessions/:id/profile: the run-once structured
// extraction of candidate facts.
func (h *InsightHandler) HandleProfile(c *fiber.Ctx) error {
	session, err := findSession(c, h.sessionRepo)
	if session == nil {
		return err
	}

	response, cached, err := h.insightService.PrimaryInfo(c.Context(), session)
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": fmt.Sprintf("failed to extract primary info: %v", err),
		})
	}

	return c.JSON(fiber.Map{
		"profile": response,
		"cached":  cached,
	})
}

// HandleATSAnalysis handles POST /sessions/:id/ats-analysis.
func (h *InsightHandler) HandleATSAnalysis(c *fiber.Ctx) error {
	session, err := findSession(c, h.sessionRepo)
	if session == nil {
		return err
	}

	response, cached, err := h.insightService.ATSAnalysis(c.Context(), session)
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": fmt.Sprintf("failed to analyze resume: %v", err),
		})
	}

	return c.JSON(fiber.Map{
		"analysis": response,
		"cached":   cached,
	})
}
