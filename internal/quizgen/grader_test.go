package quizgen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studybrief/internal/model"
)

func TestGradeCaseInsensitiveMatch(t *testing.T) {
	results, summary, err := Grade([]model.AnswerSubmission{
		{Selected: "Paris", Correct: "paris"},
	})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.True(t, results[0].IsCorrect)
	assert.Equal(t, 100.0, summary.Percentage)
}

func TestGradeEmptySubmissionIsError(t *testing.T) {
	_, _, err := Grade(nil)
	assert.ErrorIs(t, err, ErrNoAnswers)

	_, _, err = Grade([]model.AnswerSubmission{})
	assert.ErrorIs(t, err, ErrNoAnswers)
}

func TestGradeMissingValues(t *testing.T) {
	results, summary, err := Grade([]model.AnswerSubmission{
		{Selected: "", Correct: "oxygen"},
		{Selected: "oxygen", Correct: ""},
	})
	require.NoError(t, err)

	assert.False(t, results[0].IsCorrect)
	assert.Contains(t, results[0].Feedback, "no answer was submitted")
	assert.False(t, results[1].IsCorrect)
	assert.Contains(t, results[1].Feedback, "no answer key")
	assert.Equal(t, 0, summary.CorrectCount)
}

func TestGradeIncorrectAnswerFeedback(t *testing.T) {
	results, _, err := Grade([]model.AnswerSubmission{
		{Selected: "nitrogen", Correct: "oxygen"},
	})
	require.NoError(t, err)
	assert.False(t, results[0].IsCorrect)
	assert.Contains(t, results[0].Feedback, "oxygen")
}

func TestGradeBands(t *testing.T) {
	cases := []struct {
		name    string
		correct int
		total   int
		band    string
	}{
		{"excellent at 90", 9, 10, "excellent"},
		{"good at 70", 7, 10, "good"},
		{"adequate at 50", 5, 10, "adequate"},
		{"needs improvement below 50", 4, 10, "needs improvement"},
		{"perfect", 10, 10, "excellent"},
		{"zero", 0, 10, "needs improvement"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			subs := make([]model.AnswerSubmission, tc.total)
			for i := range subs {
				if i < tc.correct {
					subs[i] = model.AnswerSubmission{Selected: "yes", Correct: "yes"}
				} else {
					subs[i] = model.AnswerSubmission{Selected: "yes", Correct: "no"}
				}
			}
			_, summary, err := Grade(subs)
			require.NoError(t, err)
			assert.Equal(t, tc.correct, summary.CorrectCount)
			assert.Equal(t, tc.band, summary.Band)
		})
	}
}
