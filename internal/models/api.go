package models

import "time"

type SessionResponse struct {
	ID            string    `json:"id"`
	Role          string    `json:"role"`
	ResumeFile    string    `json:"resume_file"`
	ResumeChars   int       `json:"resume_chars"`
	QuestionCount int       `json:"question_count"`
	CachedQueries []string  `json:"cached_queries"`
	CreatedAt     time.Time `json:"created_at"`
}

type InsightRequest struct {
	Query string `json:"query"`
}

type InsightResponse struct {
	Query    string `json:"query"`
	Response string `json:"response"`
	Cached   bool   `json:"cached"`
}

type InsightStatus struct {
	Query  string `json:"query"`
	Cached bool   `json:"cached"`
}

type InsightListResponse struct {
	Insights []InsightStatus `json:"insights"`
}

type AnswerRequest struct {
	Text string `json:"text"`
}

type QuestionListResponse struct {
	Questions []InterviewQuestion `json:"questions"`
	Requested int                 `json:"requested"`
}

type EvaluationResponse struct {
	QuestionID    int    `json:"question_id"`
	RawEvaluation string `json:"raw_evaluation"`
	Score         *int   `json:"score,omitempty"`
	Scored        bool   `json:"scored"`
}
