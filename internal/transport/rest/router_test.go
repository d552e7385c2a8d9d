package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studybrief/internal/cache"
	"studybrief/internal/model"
	"studybrief/internal/quizgen"
	"studybrief/internal/service"
	"studybrief/internal/summarizer"
)

type stubCapability struct{}

func (stubCapability) Summarize(_ context.Context, req summarizer.Request) (string, error) {
	n := len(req.Text)
	if n > 10 {
		n = 10
	}
	return "summary of " + req.Text[:n], nil
}

func testRouter() http.Handler {
	logger := log.New(io.Discard)
	agg := summarizer.NewAggregator(stubCapability{}, 4000, 2, 30, 512, logger)
	summarySvc := service.NewSummaryService(agg, cache.Noop(), 2000, 4000, 40000, logger)

	assembler := quizgen.NewAssembler(
		quizgen.NewExtractor(),
		quizgen.NewSynthesizer(quizgen.DefaultTermBank()),
		nil, logger,
	)
	quizSvc := service.NewQuizService(assembler, cache.Noop(), 5, 40000, logger)

	return NewRouter(&Container{SummaryService: summarySvc, QuizService: quizSvc})
}

func doJSON(t *testing.T, router http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHealthEndpoint(t *testing.T) {
	rec := doJSON(t, testRouter(), http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestCreateSummary(t *testing.T) {
	rec := doJSON(t, testRouter(), http.MethodPost, "/v1/summaries",
		model.SummaryRequest{Text: "a short document"})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp model.SummaryResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "summary of a short do", resp.Summary)
	assert.Equal(t, 1, resp.Metadata.TotalChunks)
	assert.Equal(t, 1, resp.Metadata.SuccessfulSummaries)
	assert.Empty(t, resp.Metadata.SkippedChunks)
}

func TestCreateSummaryBadRequests(t *testing.T) {
	router := testRouter()

	req := httptest.NewRequest(http.MethodPost, "/v1/summaries", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Missing text fails validation.
	rec = doJSON(t, router, http.MethodPost, "/v1/summaries", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Whitespace passes validation but is an empty document.
	rec = doJSON(t, router, http.MethodPost, "/v1/summaries",
		model.SummaryRequest{Text: "   "})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDocumentTooLargeIsInputError(t *testing.T) {
	router := testRouter()
	oversized := strings.Repeat("a", 40001)

	// Oversize input is the caller's fault: 400, not a 4xx processing code.
	rec := doJSON(t, router, http.MethodPost, "/v1/summaries",
		model.SummaryRequest{Text: oversized})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/v1/quizzes",
		model.QuizRequest{Text: oversized})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

type limitedCapability struct{}

func (limitedCapability) Summarize(context.Context, summarizer.Request) (string, error) {
	return "", &summarizer.RateLimitError{Remaining: 0, Limit: 60}
}

func TestCreateSummaryRateLimited(t *testing.T) {
	logger := log.New(io.Discard)
	agg := summarizer.NewAggregator(limitedCapability{}, 4000, 2, 30, 512, logger)
	summarySvc := service.NewSummaryService(agg, cache.Noop(), 2000, 4000, 40000, logger)
	router := NewRouter(&Container{
		SummaryService: summarySvc,
		QuizService:    service.NewQuizService(nil, cache.Noop(), 5, 40000, logger),
	})

	rec := doJSON(t, router, http.MethodPost, "/v1/summaries",
		model.SummaryRequest{Text: "a short document"})
	require.Equal(t, http.StatusTooManyRequests, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, float64(60), body["limit"])
	assert.Equal(t, float64(0), body["remaining"])
}

func TestCreateQuiz(t *testing.T) {
	text := `Photosynthesis is the process by which plants convert sunlight into usable energy.
The chloroplast contains chlorophyll, thylakoids, and stroma within every plant cell.
Ecosystems depend on photosynthesis as the foundation of nearly every food chain.`

	rec := doJSON(t, testRouter(), http.MethodPost, "/v1/quizzes",
		model.QuizRequest{Text: text, QuestionCount: 3})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Quiz model.QuizSet `json:"quiz"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Quiz.Questions)
	for _, q := range resp.Quiz.Questions {
		assert.NotEmpty(t, q.ID)
		assert.Len(t, q.Options, 4)
		assert.Contains(t, q.Options, q.CorrectAnswer)
	}
}

func TestCreateQuizInsufficientContent(t *testing.T) {
	rec := doJSON(t, testRouter(), http.MethodPost, "/v1/quizzes",
		model.QuizRequest{Text: "Too short."})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestGradeQuiz(t *testing.T) {
	rec := doJSON(t, testRouter(), http.MethodPost, "/v1/quizzes/grade",
		model.GradeRequest{Answers: []model.AnswerSubmission{
			{QuestionID: "q1", Selected: "Mitosis", Correct: "mitosis"},
			{QuestionID: "q2", Selected: "osmosis", Correct: "diffusion"},
		}})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp model.GradeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Results, 2)
	assert.True(t, resp.Results[0].IsCorrect)
	assert.False(t, resp.Results[1].IsCorrect)
	assert.Equal(t, 1, resp.Summary.CorrectCount)
	assert.Equal(t, 50.0, resp.Summary.Percentage)
}

func TestGradeQuizNoAnswers(t *testing.T) {
	rec := doJSON(t, testRouter(), http.MethodPost, "/v1/quizzes/grade",
		model.GradeRequest{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCORSPreflight(t *testing.T) {
	req := httptest.NewRequest(http.MethodOptions, "/v1/summaries", nil)
	rec := httptest.NewRecorder()
	testRouter().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}
