package services

import (
	"context"
	"fmt"

	"resumehire/interview-engine/internal/models"
)

// ErrUnknownInsight signals a query outside the enumerated insight set.
var ErrUnknownInsight = fmt.Errorf("unknown insight query")

// InsightService answers role-fit queries about the candidate, caching each response
// so a query hits the LLM at most once per session. The structured profile extraction
// and the ATS analysis flow through the same cache under their own fixed keys.
type InsightService interface {
	ListInsights(session *models.Session) []models.InsightStatus
	GenerateInsight(ctx context.Context, session *models.Session, query string) (string, bool, error)
	DeleteInsight(session *models.Session, query string) error
	ClearInsights(session *models.Session)
	PrimaryInfo(ctx context.Context, session *models.Session) (string, bool, error)
	ATSAnalysis(ctx context.Context, session *models.Session) (string, bool, error)
}

type insightService struct {
	geminiService GeminiService
	promptBuilder *PromptBuilder
}

func NewInsightService(geminiService GeminiService) InsightService {
	return &insightService{
		geminiService: geminiService,
		promptBuilder: NewPromptBuilder(),
	}
}

// ListInsights implements InsightService.
func (s *insightService) ListInsights(session *models.Session) []models.InsightStatus {
	queries := s.promptBuilder.InsightQueries(session.Role)

	statuses := make([]models.InsightStatus, 0, len(queries))
	for _, query := range queries {
		statuses = append(statuses, models.InsightStatus{
			Query:  query,
			Cached: session.Insights.Has(query),
		})
	}

	return statuses
}

// GenerateInsight implements InsightService. The boolean reports whether the
// response came from the cache.
func (s *insightService) GenerateInsight(ctx context.Context, session *models.Session, query string) (string, bool, error) {
	if !s.isEnumerated(session.Role, query) {
		return "", false, fmt.Errorf("%w: %q", ErrUnknownInsight, query)
	}

	return s.getOrCompute(ctx, session, query, SystemRoleAnalyst,
		s.promptBuilder.BuildInsightPrompt(query, session.ResumeText, session.Role))
}

// DeleteInsight implements InsightService. Deleting an entry that was never
// populated is reported, not fatal.
func (s *insightService) DeleteInsight(session *models.Session, query string) error {
	return session.Insights.Delete(query)
}

// ClearInsights implements InsightService.
func (s *insightService) ClearInsights(session *models.Session) {
	session.Insights.Clear()
}

// PrimaryInfo implements InsightService. The extraction runs at most once per
// session; later calls return the cached response.
func (s *insightService) PrimaryInfo(ctx context.Context, session *models.Session) (string, bool, error) {
	return s.getOrCompute(ctx, session, s.promptBuilder.PrimaryInfoQuery(), SystemRoleParser,
		s.promptBuilder.BuildPrimaryInfoPrompt(session.ResumeText, session.Role))
}

// ATSAnalysis implements InsightService.
func (s *insightService) ATSAnalysis(ctx context.Context, session *models.Session) (string, bool, error) {
	return s.getOrCompute(ctx, session, s.promptBuilder.ATSAnalysisQuery(session.Role), SystemRoleATSExpert,
		s.promptBuilder.BuildATSAnalysisPrompt(session.ResumeText, session.Role))
}

func (s *insightService) getOrCompute(ctx context.Context, session *models.Session, key, systemRole, prompt string) (string, bool, error) {
	cached := session.Insights.Has(key)

	response, err := session.Insights.GetOrCompute(key, func(string) (string, error) {
		return s.geminiService.Complete(ctx, systemRole, prompt)
	})
	if err != nil {
		// Surfaced verbatim; the entry stays absent so a manual retry can succeed.
		return "", false, err
	}

	return response, cached, nil
}

func (s *insightService) isEnumerated(role, query string) bool {
	for _, candidate := range s.promptBuilder.InsightQueries(role) {
		if candidate == query {
			return true
		}
	}
	return false
}
