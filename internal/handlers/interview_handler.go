package handlers

import (
	"errors"
	"fmt"
	"io"

	"github.com/gofiber/fiber/v2"

	"resumehire/interview-engine/internal/models"
	"resumehire/interview-engine/internal/repositories"
	"resumehire/interview-engine/internal/services"
)

type InterviewHandler struct {
	sessionRepo      repositories.SessionRepository
	interviewService services.InterviewService
	questionCount    int
}

func NewInterviewHandler(
	sessionRepo repositories.SessionRepository,
	interviewService services.InterviewService,
	questionCount int,
) *InterviewHandler {
	return &InterviewHandler{
		sessionRepo:      sessionRepo,
		interviewService: interviewService,
		questionCount:    questionCount,
	}
}

// HandleGenerateQuestions handles POST /sessions/:id/interview/questions. A new set
// replaces the previous one together with all answers and evaluations.
func (h *InterviewHandler) HandleGenerateQuestions(c *fiber.Ctx) error {
	session, err := findSession(c, h.sessionRepo)
	if session == nil {
		return err
	}

	questions, err := h.interviewService.GenerateQuestions(c.Context(), session)
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(models.QuestionListResponse{
		Questions: questions,
		Requested: h.questionCount,
	})
}

// HandleGetQuestions handles GET /sessions/:id/interview/questions.
func (h *InterviewHandler) HandleGetQuestions(c *fiber.Ctx) error {
	session, err := findSession(c, h.sessionRepo)
	if session == nil {
		return err
	}

	return c.JSON(models.QuestionListResponse{
		Questions: session.Interview.Questions(),
		Requested: h.questionCount,
	})
}

// HandleRecordAnswer handles PUT /sessions/:id/interview/questions/:qid/answer.
// Re-submission overwrites; recording never triggers evaluation.
func (h *InterviewHandler) HandleRecordAnswer(c *fiber.Ctx) error {
	session, err := findSession(c, h.sessionRepo)
	if session == nil {
		return err
	}

	questionID, err := c.ParamsInt("qid")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid question ID format",
		})
	}

	var req models.AnswerRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	if err := h.interviewService.RecordTextAnswer(session, questionID, req.Text); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"message":     "Answer recorded",
		"question_id": questionID,
	})
}

// HandleRecordAudio handles PUT /sessions/:id/interview/questions/:qid/audio. The
// blob is stored opaque; no transcription happens server-side.
func (h *InterviewHandler) HandleRecordAudio(c *fiber.Ctx) error {
	session, err := findSession(c, h.sessionRepo)
	if session == nil {
		return err
	}

	questionID, err := c.ParamsInt("qid")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid question ID format",
		})
	}

	audioFile, err := c.FormFile("audio")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "audio file is required",
		})
	}

	src, err := audioFile.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("failed to open audio file: %v", err),
		})
	}
	defer src.Close()

	audio, err := io.ReadAll(src)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": fmt.Sprintf("failed to read audio file: %v", err),
		})
	}

	if err := h.interviewService.RecordAudioAnswer(session, questionID, audio); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"message":     "Audio recorded",
		"question_id": questionID,
		"bytes":       len(audio),
	})
}

// HandleEvaluate handles POST /sessions/:id/interview/questions/:qid/evaluate. A
// reply without a parseable score is still a 200; the raw evaluation is returned and
// the question simply stays unscored.
func (h *InterviewHandler) HandleEvaluate(c *fiber.Ctx) error {
	session, err := findSession(c, h.sessionRepo)
	if session == nil {
		return err
	}

	questionID, err := c.ParamsInt("qid")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid question ID format",
		})
	}

	result, err := h.interviewService.Evaluate(c.Context(), session, questionID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrQuestionNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": err.Error(),
			})
		case errors.Is(err, services.ErrAnswerMissing):
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
				"error": err.Error(),
			})
		default:
			return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
	}

	return c.JSON(models.EvaluationResponse{
		QuestionID:    result.QuestionID,
		RawEvaluation: result.RawEvaluation,
		Score:         result.Score,
		Scored:        result.Scored(),
	})
}

// HandleMetrics handles GET /sessions/:id/interview/metrics.
func (h *InterviewHandler) HandleMetrics(c *fiber.Ctx) error {
	session, err := findSession(c, h.sessionRepo)
	if session == nil {
		return err
	}

	metrics, err := h.interviewService.Metrics(session)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(metrics)
}

// HandleReset handles POST /sessions/:id/interview/reset: questions, answers, and
// scores clear together.
func (h *InterviewHandler) HandleReset(c *fiber.Ctx) error {
	session, err := findSession(c, h.sessionRepo)
	if session == nil {
		return err
	}

	h.interviewService.Reset(session)

	return c.JSON(fiber.Map{
		"message": "Interview progress cleared",
	})
}
