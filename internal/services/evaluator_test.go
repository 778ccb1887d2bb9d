package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resumehire/interview-engine/internal/config"
	"resumehire/interview-engine/internal/models"
)

// stubGemini fakes the prompt-answering boundary for service tests.
type stubGemini struct {
	response   string
	err        error
	calls      int
	lastSystem string
	lastPrompt string
}

func (s *stubGemini) Complete(_ context.Context, systemRole, userPrompt string) (string, error) {
	s.calls++
	s.lastSystem = systemRole
	s.lastPrompt = userPrompt
	if s.err != nil {
		return "", s.err
	}
	return s.response, nil
}

func defaultRubric() config.RubricWeights {
	return config.RubricWeights{Technical: 30, Clarity: 20, Relevance: 20, ProblemSolving: 20, Communication: 10}
}

func TestParseScore(t *testing.T) {
	cases := []struct {
		name  string
		text  string
		score int
		ok    bool
	}{
		{"plain token", "Score: 87/100\nEvaluation: solid answer", 87, true},
		{"token mid-text", "The candidate did well.\nScore: 87/100\nIdeal Answer: ...", 87, true},
		{"extra whitespace", "Score:   42 /100", 42, true},
		{"no denominator", "Score: 63\nEvaluation: fine", 63, true},
		{"zero", "Score: 0/100", 0, true},
		{"full marks", "Score: 100/100", 100, true},
		{"missing token", "Great answer overall, no complaints.", 0, false},
		{"unparseable fragment", "Score: excellent/100", 0, false},
		{"empty fragment", "Score: /100", 0, false},
		{"out of range", "Score: 150/100", 0, false},
		{"negative", "Score: -5/100", 0, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			score, ok := ParseScore(tc.text)
			assert.Equal(t, tc.ok, ok)
			if tc.ok {
				assert.Equal(t, tc.score, score)
			}
		})
	}
}

func TestEvaluateParsesScore(t *testing.T) {
	stub := &stubGemini{response: "Score: 87/100\nEvaluation: thorough and correct.\nIdeal Answer: ...\nImprovements: ..."}
	evaluator := NewEvaluatorService(stub, defaultRubric())

	question := models.InterviewQuestion{ID: 3, Role: "Backend Developer", Text: "How does a B-tree index work?"}
	result, err := evaluator.Evaluate(context.Background(), question, "It keeps keys sorted in pages...", "Backend Developer")
	require.NoError(t, err)

	require.NotNil(t, result.Score)
	assert.Equal(t, 87, *result.Score)
	assert.Equal(t, 3, result.QuestionID)
	assert.Equal(t, stub.response, result.RawEvaluation)
	assert.Equal(t, SystemRoleEvaluator, stub.lastSystem)
	assert.Contains(t, stub.lastPrompt, "How does a B-tree index work?")
	assert.Contains(t, stub.lastPrompt, "Technical accuracy (30 points)")
}

func TestEvaluateParseMissKeepsRawText(t *testing.T) {
	raw := "The answer shows good instincts but lacks depth. No grade assigned."
	stub := &stubGemini{response: raw}
	evaluator := NewEvaluatorService(stub, defaultRubric())

	question := models.InterviewQuestion{ID: 1, Role: "SRE", Text: "Define an error budget."}
	result, err := evaluator.Evaluate(context.Background(), question, "It is the allowed unreliability.", "SRE")
	require.NoError(t, err)

	assert.Nil(t, result.Score)
	assert.False(t, result.Scored())
	assert.Equal(t, raw, result.RawEvaluation)
}

func TestEvaluateRequiresAnswerText(t *testing.T) {
	stub := &stubGemini{response: "Score: 50/100"}
	evaluator := NewEvaluatorService(stub, defaultRubric())

	question := models.InterviewQuestion{ID: 2, Role: "SRE", Text: "What is toil?"}
	_, err := evaluator.Evaluate(context.Background(), question, "   ", "SRE")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrAnswerMissing)
	assert.Zero(t, stub.calls)
}

func TestEvaluatePropagatesRemoteFailure(t *testing.T) {
	stub := &stubGemini{err: fmt.Errorf("quota exceeded")}
	evaluator := NewEvaluatorService(stub, defaultRubric())

	question := models.InterviewQuestion{ID: 4, Role: "SRE", Text: "Explain rate limiting."}
	_, err := evaluator.Evaluate(context.Background(), question, "Token buckets.", "SRE")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrAnswerMissing)
	assert.Contains(t, err.Error(), "quota exceeded")
}
