package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resumehire/interview-engine/internal/models"
)

func TestGenerateInsightCachesResponse(t *testing.T) {
	stub := &stubGemini{response: "The skill set is a close match."}
	service := NewInsightService(stub)
	session := newTestSession()
	query := NewPromptBuilder().InsightQueries(session.Role)[0]

	response, cached, err := service.GenerateInsight(context.Background(), session, query)
	require.NoError(t, err)
	assert.False(t, cached)
	assert.Equal(t, "The skill set is a close match.", response)
	assert.Equal(t, SystemRoleAnalyst, stub.lastSystem)

	again, cached, err := service.GenerateInsight(context.Background(), session, query)
	require.NoError(t, err)
	assert.True(t, cached)
	assert.Equal(t, response, again)
	assert.Equal(t, 1, stub.calls)
}

func TestGenerateInsightRejectsUnknownQuery(t *testing.T) {
	stub := &stubGemini{response: "unused"}
	service := NewInsightService(stub)
	session := newTestSession()

	_, _, err := service.GenerateInsight(context.Background(), session, "Tell me a joke")
	assert.ErrorIs(t, err, ErrUnknownInsight)
	assert.Zero(t, stub.calls)
}

func TestGenerateInsightFailureAllowsRetry(t *testing.T) {
	stub := &stubGemini{err: fmt.Errorf("transport error")}
	service := NewInsightService(stub)
	session := newTestSession()
	query := NewPromptBuilder().InsightQueries(session.Role)[1]

	_, _, err := service.GenerateInsight(context.Background(), session, query)
	require.Error(t, err)
	assert.False(t, session.Insights.Has(query))

	stub.err = nil
	stub.response = "Go, PostgreSQL, Kubernetes."
	response, cached, err := service.GenerateInsight(context.Background(), session, query)
	require.NoError(t, err)
	assert.False(t, cached)
	assert.Equal(t, "Go, PostgreSQL, Kubernetes.", response)
}

func TestDeleteInsight(t *testing.T) {
	stub := &stubGemini{response: "cached response"}
	service := NewInsightService(stub)
	session := newTestSession()
	query := NewPromptBuilder().InsightQueries(session.Role)[2]

	_, _, err := service.GenerateInsight(context.Background(), session, query)
	require.NoError(t, err)

	require.NoError(t, service.DeleteInsight(session, query))
	assert.ErrorIs(t, service.DeleteInsight(session, query), models.ErrEntryNotFound)

	// Deleted entries recompute on the next request.
	_, cached, err := service.GenerateInsight(context.Background(), session, query)
	require.NoError(t, err)
	assert.False(t, cached)
	assert.Equal(t, 2, stub.calls)
}

func TestListInsightsReportsCachedFlags(t *testing.T) {
	stub := &stubGemini{response: "response"}
	service := NewInsightService(stub)
	session := newTestSession()
	queries := NewPromptBuilder().InsightQueries(session.Role)

	_, _, err := service.GenerateInsight(context.Background(), session, queries[3])
	require.NoError(t, err)

	statuses := service.ListInsights(session)
	require.Len(t, statuses, len(queries))
	for _, status := range statuses {
		assert.Equal(t, status.Query == queries[3], status.Cached, status.Query)
	}
}

func TestPrimaryInfoRunsOnce(t *testing.T) {
	stub := &stubGemini{response: "Name: Jane Dev\nEmail: jane@example.com"}
	service := NewInsightService(stub)
	session := newTestSession()

	first, cached, err := service.PrimaryInfo(context.Background(), session)
	require.NoError(t, err)
	assert.False(t, cached)
	assert.Equal(t, SystemRoleParser, stub.lastSystem)

	second, cached, err := service.PrimaryInfo(context.Background(), session)
	require.NoError(t, err)
	assert.True(t, cached)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, stub.calls)
}

func TestATSAnalysisCachesPerSession(t *testing.T) {
	stub := &stubGemini{response: "Add role keywords to the skills section."}
	service := NewInsightService(stub)
	session := newTestSession()

	_, cached, err := service.ATSAnalysis(context.Background(), session)
	require.NoError(t, err)
	assert.False(t, cached)
	assert.Equal(t, SystemRoleATSExpert, stub.lastSystem)

	_, cached, err = service.ATSAnalysis(context.Background(), session)
	require.NoError(t, err)
	assert.True(t, cached)
	assert.Equal(t, 1, stub.calls)
}

func TestClearInsights(t *testing.T) {
	stub := &stubGemini{response: "response"}
	service := NewInsightService(stub)
	session := newTestSession()

	_, _, err := service.PrimaryInfo(context.Background(), session)
	require.NoError(t, err)

	service.ClearInsights(session)
	assert.Zero(t, session.Insights.Len())
}
