package services

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resumehire/interview-engine/internal/models"
)

func newTestSession() *models.Session {
	return models.NewSession("Backend Developer", "Five years of Go and PostgreSQL.", "resume_test.pdf")
}

func newTestInterviewService(stub *stubGemini, count int) InterviewService {
	evaluator := NewEvaluatorService(stub, defaultRubric())
	return NewInterviewService(stub, evaluator, count)
}

func TestParseQuestionLines(t *testing.T) {
	reply := strings.Join([]string{
		"1. Explain how slices grow in Go.",
		"",
		"2) Describe a time you disagreed with a teammate.",
		"   ",
		"- What would you do if a deploy failed at peak traffic?",
		"Why do you want this role?",
	}, "\n")

	questions := parseQuestionLines(reply, "Backend Developer", 10)
	require.Len(t, questions, 4)

	assert.Equal(t, "Explain how slices grow in Go.", questions[0].Text)
	assert.Equal(t, "Describe a time you disagreed with a teammate.", questions[1].Text)
	assert.Equal(t, "What would you do if a deploy failed at peak traffic?", questions[2].Text)
	assert.Equal(t, "Why do you want this role?", questions[3].Text)

	for i, question := range questions {
		assert.Equal(t, i+1, question.ID)
		assert.Equal(t, "Backend Developer", question.Role)
	}
}

func TestParseQuestionLinesCapsAtMax(t *testing.T) {
	var lines []string
	for i := 1; i <= 15; i++ {
		lines = append(lines, fmt.Sprintf("%d. Question number %d?", i, i))
	}

	questions := parseQuestionLines(strings.Join(lines, "\n"), "QA Engineer", 10)
	assert.Len(t, questions, 10)
	assert.Equal(t, "Question number 10?", questions[9].Text)
}

func TestGenerateQuestionsDegradedCount(t *testing.T) {
	// The model returned only 7 usable lines for 10 requested questions.
	var lines []string
	for i := 1; i <= 7; i++ {
		lines = append(lines, fmt.Sprintf("%d. Question %d?", i, i))
	}
	stub := &stubGemini{response: strings.Join(lines, "\n\n")}
	service := newTestInterviewService(stub, 10)
	session := newTestSession()

	questions, err := service.GenerateQuestions(context.Background(), session)
	require.NoError(t, err)
	assert.Len(t, questions, 7)
	assert.Equal(t, 7, session.Interview.QuestionCount())
	assert.Equal(t, SystemRoleInterviewer, stub.lastSystem)
	assert.Contains(t, stub.lastPrompt, "Five years of Go and PostgreSQL.")
}

func TestGenerateQuestionsReplacesProgress(t *testing.T) {
	stub := &stubGemini{response: "1. First question?\n2. Second question?"}
	service := newTestInterviewService(stub, 2)
	session := newTestSession()

	_, err := service.GenerateQuestions(context.Background(), session)
	require.NoError(t, err)
	require.NoError(t, service.RecordTextAnswer(session, 1, "an answer"))

	_, err = service.GenerateQuestions(context.Background(), session)
	require.NoError(t, err)

	_, ok := session.Interview.Answer(1)
	assert.False(t, ok)
}

func TestGenerateQuestionsRemoteFailure(t *testing.T) {
	stub := &stubGemini{err: fmt.Errorf("transport error")}
	service := newTestInterviewService(stub, 5)
	session := newTestSession()

	_, err := service.GenerateQuestions(context.Background(), session)
	require.Error(t, err)
	assert.Zero(t, session.Interview.QuestionCount())
}

func TestRecordTextAnswerUnknownQuestion(t *testing.T) {
	stub := &stubGemini{response: "1. Only question?"}
	service := newTestInterviewService(stub, 1)
	session := newTestSession()

	_, err := service.GenerateQuestions(context.Background(), session)
	require.NoError(t, err)

	err = service.RecordTextAnswer(session, 42, "text")
	assert.ErrorIs(t, err, ErrQuestionNotFound)
}

func TestEvaluateFlowLastAnswerWins(t *testing.T) {
	stub := &stubGemini{response: "1. Describe connection pooling."}
	service := newTestInterviewService(stub, 1)
	session := newTestSession()

	_, err := service.GenerateQuestions(context.Background(), session)
	require.NoError(t, err)

	require.NoError(t, service.RecordTextAnswer(session, 1, "first attempt"))
	require.NoError(t, service.RecordTextAnswer(session, 1, "second attempt"))

	stub.response = "Score: 64/100\nEvaluation: decent."
	result, err := service.Evaluate(context.Background(), session, 1)
	require.NoError(t, err)

	assert.Contains(t, stub.lastPrompt, "second attempt")
	assert.NotContains(t, stub.lastPrompt, "first attempt")
	require.NotNil(t, result.Score)
	assert.Equal(t, 64, *result.Score)

	stored, ok := session.Interview.Result(1)
	require.True(t, ok)
	assert.Equal(t, result, stored)
}

func TestEvaluateWithoutAnswerIsPrecondition(t *testing.T) {
	stub := &stubGemini{response: "1. Describe sharding."}
	service := newTestInterviewService(stub, 1)
	session := newTestSession()

	_, err := service.GenerateQuestions(context.Background(), session)
	require.NoError(t, err)

	// Audio alone is not evaluable; there is no transcription.
	require.NoError(t, service.RecordAudioAnswer(session, 1, []byte{1, 2, 3}))

	_, err = service.Evaluate(context.Background(), session, 1)
	assert.ErrorIs(t, err, ErrAnswerMissing)
	_, ok := session.Interview.Result(1)
	assert.False(t, ok)
}

func TestEvaluateFailureLeavesPreviousResult(t *testing.T) {
	stub := &stubGemini{response: "1. Explain CAP."}
	service := newTestInterviewService(stub, 1)
	session := newTestSession()

	_, err := service.GenerateQuestions(context.Background(), session)
	require.NoError(t, err)
	require.NoError(t, service.RecordTextAnswer(session, 1, "consistency, availability, partitions"))

	stub.response = "Score: 71/100"
	_, err = service.Evaluate(context.Background(), session, 1)
	require.NoError(t, err)

	stub.err = fmt.Errorf("quota exceeded")
	_, err = service.Evaluate(context.Background(), session, 1)
	require.Error(t, err)

	stored, ok := session.Interview.Result(1)
	require.True(t, ok)
	assert.Equal(t, 71, *stored.Score)
}

func TestMetricsRequireQuestions(t *testing.T) {
	stub := &stubGemini{}
	service := newTestInterviewService(stub, 5)
	session := newTestSession()

	_, err := service.Metrics(session)
	assert.ErrorIs(t, err, ErrNoQuestions)
}

func TestMetricsOverSession(t *testing.T) {
	stub := &stubGemini{response: "1. One?\n2. Two?\n3. Three?\n4. Four?"}
	service := newTestInterviewService(stub, 4)
	session := newTestSession()

	_, err := service.GenerateQuestions(context.Background(), session)
	require.NoError(t, err)

	for id, score := range map[int]int{1: 90, 2: 70} {
		require.NoError(t, service.RecordTextAnswer(session, id, "answer"))
		stub.response = fmt.Sprintf("Score: %d/100", score)
		_, err = service.Evaluate(context.Background(), session, id)
		require.NoError(t, err)
	}

	metrics, err := service.Metrics(session)
	require.NoError(t, err)
	assert.Equal(t, 2, metrics.Attempted)
	assert.Equal(t, 2, metrics.NotAttempted)
	assert.InDelta(t, 80.0, metrics.AverageScore, 1e-9)
	assert.Equal(t, models.TierSenior, metrics.Tier)
}

func TestResetClearsEverything(t *testing.T) {
	stub := &stubGemini{response: "1. Anything?"}
	service := newTestInterviewService(stub, 1)
	session := newTestSession()

	_, err := service.GenerateQuestions(context.Background(), session)
	require.NoError(t, err)
	require.NoError(t, service.RecordTextAnswer(session, 1, "answer"))

	service.Reset(session)

	assert.Zero(t, session.Interview.QuestionCount())
	_, err = service.Metrics(session)
	assert.ErrorIs(t, err, ErrNoQuestions)
}
