package service

import (
	"context"
	"errors"
	"strings"

	"studybrief/internal/cache"
	"studybrief/internal/chunker"
	"studybrief/internal/model"
	"studybrief/internal/summarizer"

	"github.com/charmbracelet/log"
)

var (
	// ErrEmptyDocument is returned when the document is empty or whitespace.
	ErrEmptyDocument = errors.New("document is empty")
	// ErrDocumentTooLarge is returned when the document exceeds the ceiling.
	ErrDocumentTooLarge = errors.New("document exceeds maximum size")
)

// SummaryService turns raw documents into combined summaries.
type SummaryService struct {
	aggregator       *summarizer.Aggregator
	results          cache.ResultCache
	maxChunkSize     int
	modelCharCeiling int
	maxDocumentChars int
	logger           *log.Logger
}

// NewSummaryService creates a new summary service.
func NewSummaryService(
	aggregator *summarizer.Aggregator,
	results cache.ResultCache,
	maxChunkSize int,
	modelCharCeiling int,
	maxDocumentChars int,
	logger *log.Logger,
) *SummaryService {
	return &SummaryService{
		aggregator:       aggregator,
		results:          results,
		maxChunkSize:     maxChunkSize,
		modelCharCeiling: modelCharCeiling,
		maxDocumentChars: maxDocumentChars,
		logger:           logger,
	}
}

// Summarize validates the document, splits it when it cannot fit the model
// in one call and aggregates per-segment summaries into a single report.
// Repeated documents are served from the result cache.
func (s *SummaryService) Summarize(ctx context.Context, text string) (*model.SummaryReport, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyDocument
	}
	if len(text) > s.maxDocumentChars {
		return nil, ErrDocumentTooLarge
	}

	if report, ok := s.results.GetSummary(ctx, text); ok {
		s.logger.Debug("summary cache hit", "chars", len(text))
		return report, nil
	}

	var (
		report *model.SummaryReport
		err    error
	)
	if len(text) <= s.modelCharCeiling {
		// Short document: one model call, no chunking overhead.
		report, err = s.aggregator.AggregateWhole(ctx, text)
	} else {
		segments := chunker.Split(text, s.maxChunkSize)
		s.logger.Info("document chunked", "chars", len(text), "segments", len(segments))
		report, err = s.aggregator.Aggregate(ctx, segments)
	}
	if err != nil {
		return nil, err
	}

	if cacheErr := s.results.SetSummary(ctx, text, report); cacheErr != nil {
		s.logger.Warn("failed to cache summary", "error", cacheErr)
	}
	return report, nil
}
