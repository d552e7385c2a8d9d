package summarizer

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/semaphore"

	"studybrief/internal/model"
)

// ErrNoSummaries is returned when every segment was skipped or failed.
// Callers must not present an empty string as a valid summary.
var ErrNoSummaries = errors.New("no summaries produced")

// Aggregator fans the capability out over document segments with bounded
// parallelism and assembles results in segment-index order.
type Aggregator struct {
	capability  Capability
	charCeiling int
	concurrency int64
	minWords    int
	maxWords    int
	logger      *log.Logger
}

// NewAggregator creates an aggregator. charCeiling is the model's hard input
// limit used for the skip pre-filter; minWords/maxWords clamp the per-segment
// summary length hints.
func NewAggregator(capability Capability, charCeiling, concurrency, minWords, maxWords int, logger *log.Logger) *Aggregator {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Aggregator{
		capability:  capability,
		charCeiling: charCeiling,
		concurrency: int64(concurrency),
		minWords:    minWords,
		maxWords:    maxWords,
		logger:      logger,
	}
}

// Aggregate summarizes every segment and merges the outcomes into one
// report. A failure on one segment never aborts the others; each worker
// writes exactly one outcome at its own index. Caller cancellation is the
// one exception: it fails the whole request rather than producing a partial
// report.
func (a *Aggregator) Aggregate(ctx context.Context, segments []model.Segment) (*model.SummaryReport, error) {
	if len(segments) == 0 {
		return nil, ErrNoSummaries
	}

	outcomes := make([]model.SegmentOutcome, len(segments))
	failures := make([]error, len(segments))
	sem := semaphore.NewWeighted(a.concurrency)
	var wg sync.WaitGroup

	for i, seg := range segments {
		// Oversize pre-filter: never reaches the capability.
		if seg.CharLength() > a.charCeiling {
			outcomes[i] = model.SegmentOutcome{
				Index:  seg.Index,
				Status: model.OutcomeSkipped,
				Reason: FailureClass(ErrOversize),
			}
			continue
		}

		wg.Add(1)
		go func(i int, seg model.Segment) {
			defer wg.Done()
			if err := sem.Acquire(ctx, 1); err != nil {
				outcomes[i] = model.SegmentOutcome{Index: seg.Index, Status: model.OutcomeFailed, Reason: FailureClass(err)}
				return
			}
			defer sem.Release(1)

			minW, maxW := LengthHint(len(strings.Fields(seg.Text)), a.minWords, a.maxWords)
			summary, err := a.capability.Summarize(ctx, Request{Text: seg.Text, MinWords: minW, MaxWords: maxW})
			if err != nil {
				a.logger.Warn("segment summarization failed",
					"segment", seg.Index, "class", FailureClass(err), "err", err)
				outcomes[i] = model.SegmentOutcome{Index: seg.Index, Status: model.OutcomeFailed, Reason: FailureClass(err)}
				failures[i] = err
				return
			}
			outcomes[i] = model.SegmentOutcome{Index: seg.Index, Status: model.OutcomeSummarized, Summary: summary}
		}(i, seg)
	}

	wg.Wait()

	// Caller-initiated cancellation fails the whole request; completed
	// partial results are discarded.
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	report, err := buildReport(outcomes)
	if errors.Is(err, ErrNoSummaries) {
		// When rate limiting sank the whole request, surface the quota
		// metadata alongside so callers can back off instead of retrying.
		for _, ferr := range failures {
			if IsRateLimited(ferr) {
				return nil, errors.Join(err, ferr)
			}
		}
	}
	return report, err
}

// AggregateWhole runs the short-document path: the entire text as a single
// pre-checked segment through the same success/failure machinery.
func (a *Aggregator) AggregateWhole(ctx context.Context, text string) (*model.SummaryReport, error) {
	return a.Aggregate(ctx, []model.Segment{{Index: 0, Text: text}})
}

// buildReport folds outcomes, already in segment-index order, into the final
// report. Successful summaries are joined with a blank line so the combined
// text reads in document order.
func buildReport(outcomes []model.SegmentOutcome) (*model.SummaryReport, error) {
	report := &model.SummaryReport{
		TotalSegments:  len(outcomes),
		SkippedIndices: []int{},
	}
	var parts []string
	for _, o := range outcomes {
		switch o.Status {
		case model.OutcomeSummarized:
			report.SuccessCount++
			parts = append(parts, o.Summary)
		case model.OutcomeSkipped:
			report.SkippedIndices = append(report.SkippedIndices, o.Index)
		case model.OutcomeFailed:
			report.FailedCount++
			if o.Reason == ClassRateLimited {
				report.RateLimited++
			}
		}
	}
	if report.SuccessCount == 0 {
		return nil, ErrNoSummaries
	}
	report.CombinedText = strings.Join(parts, "\n\n")
	return report, nil
}
