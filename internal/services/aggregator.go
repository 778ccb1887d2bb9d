package services

import (
	"resumehire/interview-engine/internal/models"
)

var compensationBands = map[models.Tier]string{
	models.TierEntry:  "4-6 LPA",
	models.TierMid:    "8-12 LPA",
	models.TierSenior: "15-25 LPA",
}

// Aggregate derives the session metrics from the current question set and evaluation
// results. Only results carrying a parsed score count as attempted; a parse miss is
// never coerced to zero. Pure function, recomputable at will.
func Aggregate(questions []models.InterviewQuestion, results map[int]*models.EvaluationResult) models.SessionMetrics {
	scores := make(map[int]int)
	total := 0
	for _, result := range results {
		if !result.Scored() {
			continue
		}
		scores[result.QuestionID] = *result.Score
		total += *result.Score
	}

	attempted := len(scores)
	average := 0.0
	if attempted > 0 {
		average = float64(total) / float64(attempted)
	}

	tier := tierForScore(average)

	return models.SessionMetrics{
		Attempted:        attempted,
		NotAttempted:     len(questions) - attempted,
		AverageScore:     average,
		RatingOutOfTen:   average / 10,
		Tier:             tier,
		CompensationBand: compensationBands[tier],
		Feedback:         feedbackForScore(average),
		QuestionScores:   scores,
	}
}

// Boundaries are strict on every upper bound: 60 is Mid, 80 is Senior.
func tierForScore(average float64) models.Tier {
	switch {
	case average < 60:
		return models.TierEntry
	case average < 80:
		return models.TierMid
	default:
		return models.TierSenior
	}
}

func feedbackForScore(average float64) string {
	switch {
	case average < 50:
		return "Needs significant improvement. Focus on technical fundamentals and communication."
	case average < 70:
		return "Good potential but needs improvement in some areas. Review technical concepts and practice more."
	case average < 85:
		return "Strong candidate. Minor improvements could make you exceptional."
	default:
		return "Outstanding performance! You're well-prepared for this role."
	}
}
