package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"resumehire/interview-engine/internal/models"
	"resumehire/interview-engine/internal/repositories"
	"resumehire/interview-engine/internal/services"
)

type SessionHandler struct {
	sessionRepo    repositories.SessionRepository
	storageService services.StorageService
	pdfParser      services.PDFParserService
	maxFileSize    int64
}

func NewSessionHandler(
	sessionRepo repositories.SessionRepository,
	storageService services.StorageService,
	pdfParser services.PDFParserService,
	maxFileSize int64,
) *SessionHandler {
	return &SessionHandler{
		sessionRepo:    sessionRepo,
		storageService: storageService,
		pdfParser:      pdfParser,
		maxFileSize:    maxFileSize,
	}
}

// HandleCreateSession handles POST /sessions: a multipart resume PDF plus the target
// role open a fresh assessment session.
func (h *SessionHandler) HandleCreateSession(c *fiber.Ctx) error {
	role := c.FormValue("role")
	if role == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "role is required",
		})
	}

	resumeFile, err := c.FormFile("resume")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "resume file is required",
		})
	}

	if resumeFile.Size > h.maxFileSize {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("Resume file too large. Max size: %d bytes", h.maxFileSize),
		})
	}

	filename, filePath, err := h.storageService.SaveResume(resumeFile)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": fmt.Sprintf("failed to save resume file: %v", err),
		})
	}

	// An unreadable PDF yields empty text; the session still opens so the user can
	// see what happened instead of losing the upload.
	resumeText := h.pdfParser.ExtractText(filePath)

	session := models.NewSession(role, resumeText, filename)
	if err := h.sessionRepo.Create(session); err != nil {
		h.storageService.DeleteFile(filename)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": fmt.Sprintf("failed to create session: %v", err),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(sessionResponse(session))
}

// HandleGetSession handles GET /sessions/:id.
func (h *SessionHandler) HandleGetSession(c *fiber.Ctx) error {
	session, err := h.findSession(c)
	if session == nil {
		return err
	}

	return c.JSON(sessionResponse(session))
}

// HandleDeleteSession handles DELETE /sessions/:id. The stored resume file goes with
// the session.
func (h *SessionHandler) HandleDeleteSession(c *fiber.Ctx) error {
	session, err := h.findSession(c)
	if session == nil {
		return err
	}

	if err := h.sessionRepo.Delete(session.ID); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": fmt.Sprintf("failed to delete session: %v", err),
		})
	}

	if session.ResumeFile != "" {
		h.storageService.DeleteFile(session.ResumeFile)
	}

	return c.JSON(fiber.Map{
		"message": "Session deleted",
	})
}

func (h *SessionHandler) findSession(c *fiber.Ctx) (*models.Session, error) {
	return findSession(c, h.sessionRepo)
}

// findSession resolves the :id path param. On failure the error response has already
// been written; the caller returns the (usually nil) write error and stops.
func findSession(c *fiber.Ctx, repo repositories.SessionRepository) (*models.Session, error) {
	sessionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return nil, c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid session ID format",
		})
	}

	session, err := repo.FindByID(sessionID)
	if err != nil {
		return nil, c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Session not found",
		})
	}

	return session, nil
}

func sessionResponse(session *models.Session) models.SessionResponse {
	return models.SessionResponse{
		ID:            session.ID.String(),
		Role:          session.Role,
		ResumeFile:    session.ResumeFile,
		ResumeChars:   len(session.ResumeText),
		QuestionCount: session.Interview.QuestionCount(),
		CachedQueries: session.Insights.Keys(),
		CreatedAt:     session.CreatedAt,
	}
}
