package models

import (
	"time"

	"github.com/google/uuid"
)

// Session is one candidate-assessment session. It owns every piece of mutable state
// the engine keeps: the cached LLM insights and the interview question/answer/result
// stores. Sessions are in-memory only and disappear with the process.
type Session struct {
	ID         uuid.UUID `json:"id"`
	Role       string    `json:"role"`
	ResumeText string    `json:"-"`
	ResumeFile string    `json:"resume_file"`
	CreatedAt  time.Time `json:"created_at"`

	Insights  *InsightCache   `json:"-"`
	Interview *InterviewState `json:"-"`
}

func NewSession(role, resumeText, resumeFile string) *Session {
	return &Session{
		ID:         uuid.New(),
		Role:       role,
		ResumeText: resumeText,
		ResumeFile: resumeFile,
		CreatedAt:  time.Now(),
		Insights:   NewInsightCache(),
		Interview:  NewInterviewState(),
	}
}
