package handler

import (
	"errors"
	"net/http"

	"studybrief/internal/model"
	"studybrief/internal/quizgen"
	"studybrief/internal/service"
)

// QuizHandler handles quiz generation and grading endpoints
type QuizHandler struct {
	quizSvc *service.QuizService
}

// NewQuizHandler creates a new quiz handler
func NewQuizHandler(quizSvc *service.QuizService) *QuizHandler {
	return &QuizHandler{quizSvc: quizSvc}
}

// Create handles POST /v1/quizzes
func (h *QuizHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.QuizRequest
	if msg, ok := decodeAndValidate(r, &req); !ok {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	quiz, err := h.quizSvc.Generate(r.Context(), req.Text, req.QuestionCount)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmptyDocument):
			writeError(w, http.StatusBadRequest, "document text is empty")
		case errors.Is(err, service.ErrDocumentTooLarge):
			writeError(w, http.StatusBadRequest, "document exceeds the maximum supported size")
		case errors.Is(err, quizgen.ErrInsufficientContent):
			writeError(w, http.StatusUnprocessableEntity, "document does not carry enough content to build a quiz")
		default:
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"quiz": quiz})
}

// Grade handles POST /v1/quizzes/grade
func (h *QuizHandler) Grade(w http.ResponseWriter, r *http.Request) {
	var req model.GradeRequest
	if msg, ok := decodeAndValidate(r, &req); !ok {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	results, summary, err := h.quizSvc.Grade(req.Answers)
	if err != nil {
		if errors.Is(err, quizgen.ErrNoAnswers) {
			writeError(w, http.StatusBadRequest, "no answers were submitted")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, model.GradeResponse{Results: results, Summary: summary})
}
