package service

import (
	"context"
	"strings"

	"studybrief/internal/cache"
	"studybrief/internal/model"
	"studybrief/internal/quizgen"

	"github.com/charmbracelet/log"
)

// QuizService generates quizzes from documents and grades submissions.
type QuizService struct {
	assembler        *quizgen.Assembler
	results          cache.ResultCache
	defaultCount     int
	maxDocumentChars int
	logger           *log.Logger
}

// NewQuizService creates a new quiz service.
func NewQuizService(
	assembler *quizgen.Assembler,
	results cache.ResultCache,
	defaultCount int,
	maxDocumentChars int,
	logger *log.Logger,
) *QuizService {
	return &QuizService{
		assembler:        assembler,
		results:          results,
		defaultCount:     defaultCount,
		maxDocumentChars: maxDocumentChars,
		logger:           logger,
	}
}

// Generate builds a quiz from the document. A non-positive count falls back
// to the configured default. The set may be shorter than requested when the
// document does not carry enough distinct content.
func (s *QuizService) Generate(ctx context.Context, text string, count int) (*model.QuizSet, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyDocument
	}
	if len(text) > s.maxDocumentChars {
		return nil, ErrDocumentTooLarge
	}
	if count <= 0 {
		count = s.defaultCount
	}

	if quiz, ok := s.results.GetQuiz(ctx, text, count); ok {
		s.logger.Debug("quiz cache hit", "chars", len(text), "count", count)
		return quiz, nil
	}

	quiz, err := s.assembler.Assemble(ctx, text, count)
	if err != nil {
		return nil, err
	}

	if cacheErr := s.results.SetQuiz(ctx, text, count, &quiz); cacheErr != nil {
		s.logger.Warn("failed to cache quiz", "error", cacheErr)
	}
	return &quiz, nil
}

// Grade scores a set of submitted answers against their carried keys.
func (s *QuizService) Grade(submissions []model.AnswerSubmission) ([]model.GradedAnswer, *model.GradeSummary, error) {
	return quizgen.Grade(submissions)
}
