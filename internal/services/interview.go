package services

import (
	"context"
	"fmt"
	"log"
	"regexp"
	"strings"

	"resumehire/interview-engine/internal/models"
)

// ErrNoQuestions signals that an interview operation was requested before any
// question set was generated.
var ErrNoQuestions = fmt.Errorf("no interview questions generated yet")

// ErrQuestionNotFound signals a question id outside the current set.
var ErrQuestionNotFound = fmt.Errorf("interview question not found")

// InterviewService runs the mock-interview pipeline for one session: question
// generation, answer capture, evaluation, and metrics aggregation.
type InterviewService interface {
	GenerateQuestions(ctx context.Context, session *models.Session) ([]models.InterviewQuestion, error)
	RecordTextAnswer(session *models.Session, questionID int, text string) error
	RecordAudioAnswer(session *models.Session, questionID int, audio []byte) error
	Evaluate(ctx context.Context, session *models.Session, questionID int) (*models.EvaluationResult, error)
	Metrics(session *models.Session) (models.SessionMetrics, error)
	Reset(session *models.Session)
}

type interviewService struct {
	geminiService GeminiService
	evaluator     EvaluatorService
	promptBuilder *PromptBuilder
	questionCount int
}

func NewInterviewService(geminiService GeminiService, evaluator EvaluatorService, questionCount int) InterviewService {
	return &interviewService{
		geminiService: geminiService,
		evaluator:     evaluator,
		promptBuilder: NewPromptBuilder(),
		questionCount: questionCount,
	}
}

// GenerateQuestions implements InterviewService. A fresh question set replaces the
// previous one along with all captured answers and results. The model returning
// fewer usable lines than requested degrades the set size; it is not an error.
func (s *interviewService) GenerateQuestions(ctx context.Context, session *models.Session) ([]models.InterviewQuestion, error) {
	prompt := s.promptBuilder.BuildQuestionSetPrompt(session.Role, session.ResumeText, s.questionCount)

	reply, err := s.geminiService.Complete(ctx, SystemRoleInterviewer, prompt)
	if err != nil {
		return nil, fmt.Errorf("failed to generate interview questions: %w", err)
	}

	questions := parseQuestionLines(reply, session.Role, s.questionCount)
	if len(questions) < s.questionCount {
		log.Printf("⚠️  Parsed %d of %d requested questions for session %s\n",
			len(questions), s.questionCount, session.ID)
	}

	session.Interview.SetQuestions(questions)
	return questions, nil
}

var ordinalMarker = regexp.MustCompile(`^\d+[.)]\s*`)

// parseQuestionLines splits the model reply on line boundaries, drops blanks, strips
// leading ordinal markers, and caps the set at max questions.
func parseQuestionLines(reply, role string, max int) []models.InterviewQuestion {
	var questions []models.InterviewQuestion

	for _, line := range strings.Split(reply, "\n") {
		line = strings.TrimSpace(line)
		line = strings.TrimPrefix(line, "- ")
		line = ordinalMarker.ReplaceAllString(line, "")
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		questions = append(questions, models.InterviewQuestion{
			ID:   len(questions) + 1,
			Role: role,
			Text: line,
		})

		if len(questions) == max {
			break
		}
	}

	return questions
}

// RecordTextAnswer implements InterviewService. Overwrites any previous text answer.
func (s *interviewService) RecordTextAnswer(session *models.Session, questionID int, text string) error {
	if _, ok := session.Interview.QuestionByID(questionID); !ok {
		return fmt.Errorf("%w: %d", ErrQuestionNotFound, questionID)
	}

	session.Interview.RecordText(questionID, text)
	return nil
}

// RecordAudioAnswer implements InterviewService. The blob is kept as-is; no
// transcription happens here.
func (s *interviewService) RecordAudioAnswer(session *models.Session, questionID int, audio []byte) error {
	if _, ok := session.Interview.QuestionByID(questionID); !ok {
		return fmt.Errorf("%w: %d", ErrQuestionNotFound, questionID)
	}

	session.Interview.RecordAudio(questionID, audio)
	return nil
}

// Evaluate implements InterviewService. The result is stored on completion,
// overwriting any previous evaluation of the same question; a failed remote call
// leaves the stored state untouched.
func (s *interviewService) Evaluate(ctx context.Context, session *models.Session, questionID int) (*models.EvaluationResult, error) {
	question, ok := session.Interview.QuestionByID(questionID)
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrQuestionNotFound, questionID)
	}

	answerText := ""
	if answer, ok := session.Interview.Answer(questionID); ok {
		answerText = answer.Text
	}

	result, err := s.evaluator.Evaluate(ctx, question, answerText, session.Role)
	if err != nil {
		return nil, err
	}

	session.Interview.SetResult(result)
	return result, nil
}

// Metrics implements InterviewService.
func (s *interviewService) Metrics(session *models.Session) (models.SessionMetrics, error) {
	questions := session.Interview.Questions()
	if len(questions) == 0 {
		return models.SessionMetrics{}, ErrNoQuestions
	}

	return Aggregate(questions, session.Interview.Results()), nil
}

// Reset implements InterviewService. Questions, answers, and scores go together.
func (s *interviewService) Reset(session *models.Session) {
	session.Interview.Reset()
}
