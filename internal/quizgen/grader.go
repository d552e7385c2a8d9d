package quizgen

import (
	"errors"
	"strings"

	"studybrief/internal/model"
)

// ErrNoAnswers is returned when grading is requested with zero submissions.
// An empty submission is a caller error, not a 0% result.
var ErrNoAnswers = errors.New("no answers to grade")

// Feedback bands; thresholds are the contract, wording is cosmetic.
const (
	bandExcellent = "excellent"
	bandGood      = "good"
	bandAdequate  = "adequate"
	bandPoor      = "needs improvement"
)

// Grade scores submitted answers against their answer keys. Matching is
// case-insensitive; a missing submitted or correct value grades incorrect
// with explanatory feedback rather than erroring.
func Grade(submissions []model.AnswerSubmission) ([]model.GradedAnswer, *model.GradeSummary, error) {
	if len(submissions) == 0 {
		return nil, nil, ErrNoAnswers
	}

	results := make([]model.GradedAnswer, len(submissions))
	correct := 0
	for i, sub := range submissions {
		graded := model.GradedAnswer{
			QuestionID: sub.QuestionID,
			Selected:   sub.Selected,
			Correct:    sub.Correct,
		}
		switch {
		case strings.TrimSpace(sub.Selected) == "":
			graded.Feedback = "no answer was submitted for this question"
		case strings.TrimSpace(sub.Correct) == "":
			graded.Feedback = "no answer key is available for this question"
		case strings.EqualFold(strings.TrimSpace(sub.Selected), strings.TrimSpace(sub.Correct)):
			graded.IsCorrect = true
			correct++
		default:
			graded.Feedback = "the correct answer was: " + sub.Correct
		}
		results[i] = graded
	}

	percentage := 100 * float64(correct) / float64(len(submissions))
	return results, &model.GradeSummary{
		CorrectCount: correct,
		TotalCount:   len(submissions),
		Percentage:   percentage,
		Band:         band(percentage),
	}, nil
}

func band(percentage float64) string {
	switch {
	case percentage >= 90:
		return bandExcellent
	case percentage >= 70:
		return bandGood
	case percentage >= 50:
		return bandAdequate
	default:
		return bandPoor
	}
}
