package model

// Concept is a sentence identified as carrying quizzable informational
// content. Ephemeral: produced and consumed within one generation call.
type Concept struct {
	SourceText      string  `json:"sourceText"`
	ImportanceScore float64 `json:"importanceScore"`
}

// Question is a multiple-choice question. Options always holds exactly four
// unique strings and CorrectAnswer is always one of them verbatim. The
// correct answer travels with the question: nothing is persisted server-side,
// so grading submissions carry the key back.
type Question struct {
	ID            string   `json:"id"`
	Stem          string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correctAnswer"`
}

// QuizSet is an ordered set of questions, stable for display.
type QuizSet struct {
	Questions []Question `json:"questions"`
}

// AnswerSubmission is one submitted answer paired with its answer key entry.
type AnswerSubmission struct {
	QuestionID string `json:"questionId,omitempty"`
	Selected   string `json:"selected"`
	Correct    string `json:"correct"`
}

// GradedAnswer is the per-question grading result.
type GradedAnswer struct {
	QuestionID string `json:"questionId,omitempty"`
	Selected   string `json:"selected"`
	Correct    string `json:"correct"`
	IsCorrect  bool   `json:"isCorrect"`
	Feedback   string `json:"feedback,omitempty"`
}

// GradeSummary aggregates a graded submission.
type GradeSummary struct {
	CorrectCount int     `json:"correctCount"`
	TotalCount   int     `json:"totalCount"`
	Percentage   float64 `json:"percentage"`
	Band         string  `json:"band"`
}
