package model

// SummaryRequest is the body of POST /v1/summaries.
type SummaryRequest struct {
	Text string `json:"text" validate:"required"`
}

// QuizRequest is the body of POST /v1/quizzes. A zero QuestionCount asks
// for the server default.
type QuizRequest struct {
	Text          string `json:"text" validate:"required"`
	QuestionCount int    `json:"questionCount" validate:"gte=0,lte=20"`
}

// SummaryResponse is the success body of POST /v1/summaries.
type SummaryResponse struct {
	Summary  string          `json:"summary"`
	Metadata SummaryMetadata `json:"metadata"`
}

// SummaryMetadata reports what happened to each chunk of the document.
type SummaryMetadata struct {
	TotalChunks         int   `json:"totalChunks"`
	SuccessfulSummaries int   `json:"successfulSummaries"`
	FailedSummaries     int   `json:"failedSummaries"`
	SkippedChunks       []int `json:"skippedChunks"`
	RateLimited         int   `json:"rateLimited,omitempty"`
}

// NewSummaryResponse maps an internal report onto the API shape.
func NewSummaryResponse(report *SummaryReport) SummaryResponse {
	return SummaryResponse{
		Summary: report.CombinedText,
		Metadata: SummaryMetadata{
			TotalChunks:         report.TotalSegments,
			SuccessfulSummaries: report.SuccessCount,
			FailedSummaries:     report.FailedCount,
			SkippedChunks:       report.SkippedIndices,
			RateLimited:         report.RateLimited,
		},
	}
}

// GradeRequest is the body of POST /v1/quizzes/grade.
type GradeRequest struct {
	Answers []AnswerSubmission `json:"answers" validate:"required"`
}

// GradeResponse pairs per-question results with the overall summary.
type GradeResponse struct {
	Results []GradedAnswer `json:"results"`
	Summary *GradeSummary  `json:"summary"`
}
