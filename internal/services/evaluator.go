package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"resumehire/interview-engine/internal/config"
	"resumehire/interview-engine/internal/models"
)

// ErrAnswerMissing signals that evaluation was requested for a question with no text
// answer. It is a precondition failure, distinct from a remote evaluation failure.
var ErrAnswerMissing = fmt.Errorf("no text answer recorded for question")

// EvaluatorService grades one question/answer pair through the LLM and extracts a
// numeric score from the free-text reply. Remote failures propagate unchanged; there
// is no retry here.
type EvaluatorService interface {
	Evaluate(ctx context.Context, question models.InterviewQuestion, answerText, role string) (*models.EvaluationResult, error)
}

type evaluatorService struct {
	geminiService GeminiService
	promptBuilder *PromptBuilder
	rubric        config.RubricWeights
}

func NewEvaluatorService(geminiService GeminiService, rubric config.RubricWeights) EvaluatorService {
	return &evaluatorService{
		geminiService: geminiService,
		promptBuilder: NewPromptBuilder(),
		rubric:        rubric,
	}
}

// Evaluate implements EvaluatorService.
func (e *evaluatorService) Evaluate(ctx context.Context, question models.InterviewQuestion, answerText, role string) (*models.EvaluationResult, error) {
	if strings.TrimSpace(answerText) == "" {
		return nil, fmt.Errorf("%w: question %d", ErrAnswerMissing, question.ID)
	}

	prompt := e.promptBuilder.BuildEvaluationPrompt(question.Text, answerText, role, e.rubric)

	evaluation, err := e.geminiService.Complete(ctx, SystemRoleEvaluator, prompt)
	if err != nil {
		return nil, fmt.Errorf("failed to evaluate answer: %w", err)
	}

	result := &models.EvaluationResult{
		QuestionID:    question.ID,
		RawEvaluation: evaluation,
	}

	// A parse miss leaves the score absent; the raw evaluation is still useful.
	if score, ok := ParseScore(evaluation); ok {
		result.Score = &score
	}

	return result, nil
}

// ParseScore extracts the integer from the first "Score: <n>/100" token in the
// evaluator's free-text reply. It returns false when the token is absent, the
// fragment does not parse as an integer, or the value falls outside 0..100.
func ParseScore(text string) (int, bool) {
	_, rest, found := strings.Cut(text, "Score:")
	if !found {
		return 0, false
	}

	line := rest
	if idx := strings.IndexByte(line, '\n'); idx >= 0 {
		line = line[:idx]
	}

	fragment, _, _ := strings.Cut(line, "/")

	score, err := strconv.Atoi(strings.TrimSpace(fragment))
	if err != nil {
		return 0, false
	}
	if score < 0 || score > 100 {
		return 0, false
	}

	return score, true
}
