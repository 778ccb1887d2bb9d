package models

import "sync"

// Tier is the coarse seniority classification derived from the average score.
type Tier string

const (
	TierEntry  Tier = "Entry Level"
	TierMid    Tier = "Mid Level"
	TierSenior Tier = "Senior Level"
)

// InterviewQuestion is one generated question. Questions are created once per
// question set and are immutable afterwards; IDs are ordinals starting at 1.
type InterviewQuestion struct {
	ID   int    `json:"id"`
	Role string `json:"role"`
	Text string `json:"text"`
}

// AnswerRecord holds the latest captured response for a question. Either form may be
// present independently; re-submission overwrites, last write wins.
type AnswerRecord struct {
	QuestionID int    `json:"question_id"`
	Text       string `json:"text,omitempty"`
	Audio      []byte `json:"-"`
}

// EvaluationResult is the graded outcome for one answered question. Score is nil when
// the evaluator's free-text reply carried no parseable "Score: <n>/100" token; the raw
// evaluation text is kept either way.
type EvaluationResult struct {
	QuestionID    int    `json:"question_id"`
	RawEvaluation string `json:"raw_evaluation"`
	Score         *int   `json:"score,omitempty"`
}

// Scored reports whether a numeric score was extracted.
func (r *EvaluationResult) Scored() bool {
	return r != nil && r.Score != nil
}

// SessionMetrics is derived from the current question set and evaluation results; it
// is recomputed on demand and never stored.
type SessionMetrics struct {
	Attempted        int         `json:"attempted"`
	NotAttempted     int         `json:"not_attempted"`
	AverageScore     float64     `json:"average_score"`
	RatingOutOfTen   float64     `json:"rating_out_of_10"`
	Tier             Tier        `json:"tier"`
	CompensationBand string      `json:"compensation_band"`
	Feedback         string      `json:"feedback"`
	QuestionScores   map[int]int `json:"question_scores"`
}

// InterviewState owns the mock-interview data of one session: the immutable question
// set plus the mutable answer and result maps. All access goes through its methods so
// a reset swaps everything as one atomic unit.
type InterviewState struct {
	mu        sync.Mutex
	questions []InterviewQuestion
	answers   map[int]*AnswerRecord
	results   map[int]*EvaluationResult
}

func NewInterviewState() *InterviewState {
	return &InterviewState{
		answers: make(map[int]*AnswerRecord),
		results: make(map[int]*EvaluationResult),
	}
}

// SetQuestions installs a freshly generated question set, dropping all previous
// questions, answers, and results together.
func (s *InterviewState) SetQuestions(questions []InterviewQuestion) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.questions = questions
	s.answers = make(map[int]*AnswerRecord)
	s.results = make(map[int]*EvaluationResult)
}

// Questions returns a copy of the current question set in generation order.
func (s *InterviewState) Questions() []InterviewQuestion {
	s.mu.Lock()
	defer s.mu.Unlock()

	questions := make([]InterviewQuestion, len(s.questions))
	copy(questions, s.questions)
	return questions
}

// QuestionByID looks up one question in the current set.
func (s *InterviewState) QuestionByID(id int) (InterviewQuestion, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, question := range s.questions {
		if question.ID == id {
			return question, true
		}
	}
	return InterviewQuestion{}, false
}

// QuestionCount returns the size of the current question set.
func (s *InterviewState) QuestionCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.questions)
}

// RecordText stores the text answer for a question, replacing any previous one.
func (s *InterviewState) RecordText(questionID int, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	record := s.answers[questionID]
	if record == nil {
		record = &AnswerRecord{QuestionID: questionID}
		s.answers[questionID] = record
	}
	record.Text = text
}

// RecordAudio stores the raw audio blob for a question, replacing any previous one.
func (s *InterviewState) RecordAudio(questionID int, audio []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()

	record := s.answers[questionID]
	if record == nil {
		record = &AnswerRecord{QuestionID: questionID}
		s.answers[questionID] = record
	}
	record.Audio = audio
}

// Answer returns the answer record for a question, if any was captured.
func (s *InterviewState) Answer(questionID int) (*AnswerRecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.answers[questionID]
	if !ok {
		return nil, false
	}
	copied := *record
	return &copied, true
}

// SetResult stores an evaluation result, overwriting any previous one for the same
// question. Overwrite-on-completion keeps re-evaluation last-writer-wins.
func (s *InterviewState) SetResult(result *EvaluationResult) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.results[result.QuestionID] = result
}

// Result returns the stored evaluation result for a question, if any.
func (s *InterviewState) Result(questionID int) (*EvaluationResult, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result, ok := s.results[questionID]
	return result, ok
}

// Results returns a snapshot of all stored evaluation results keyed by question id.
func (s *InterviewState) Results() map[int]*EvaluationResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := make(map[int]*EvaluationResult, len(s.results))
	for id, result := range s.results {
		snapshot[id] = result
	}
	return snapshot
}

// Reset clears questions, answers, and results as one atomic unit.
func (s *InterviewState) Reset() {
	s.SetQuestions(nil)
}
