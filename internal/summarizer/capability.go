// Package summarizer wraps the external summarization capability and fans it
// out over document segments, tolerating partial failures.
package summarizer

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Request is one summarization call. Output bounds are word counts.
type Request struct {
	Text     string
	MaxWords int
	MinWords int
}

// Capability is the external summarization collaborator. Implementations
// must return one of the classified errors below on failure.
type Capability interface {
	Summarize(ctx context.Context, req Request) (string, error)
}

// Classified failures for a single summarization call.
var (
	// ErrOversize: input exceeds the model's hard ceiling. Detectable before
	// calling; the aggregator uses it as a pre-filter, never an error path.
	ErrOversize = errors.New("input exceeds model hard ceiling")

	// ErrTransient: network failure or upstream 5xx.
	ErrTransient = errors.New("transient upstream failure")

	// ErrUnusable: the model answered, but with nothing usable.
	ErrUnusable = errors.New("model returned unusable output")
)

// RateLimitError reports upstream throttling together with whatever quota
// metadata the response carried.
type RateLimitError struct {
	Remaining int
	Limit     int
	ResetAt   time.Time
}

func (e *RateLimitError) Error() string {
	if e.ResetAt.IsZero() {
		return "rate limited by upstream"
	}
	return fmt.Sprintf("rate limited by upstream, resets at %s", e.ResetAt.Format(time.RFC3339))
}

// IsRateLimited reports whether err is an upstream rate-limit failure.
func IsRateLimited(err error) bool {
	var rl *RateLimitError
	return errors.As(err, &rl)
}

// Failure class names carried in segment outcome reasons and reports.
const (
	ClassOversize    = "oversize_for_model"
	ClassRateLimited = "rate_limited"
	ClassTransient   = "transient"
	ClassUnusable    = "unusable"
	ClassUnknown     = "unknown"
)

// FailureClass names the classified failure for reporting.
func FailureClass(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrOversize):
		return ClassOversize
	case IsRateLimited(err):
		return ClassRateLimited
	case errors.Is(err, ErrTransient):
		return ClassTransient
	case errors.Is(err, ErrUnusable):
		return ClassUnusable
	default:
		return ClassUnknown
	}
}

// LengthHint derives target summary bounds from the input word count:
// roughly a third of the input as the maximum and a quarter as the minimum,
// clamped to [floorWords, ceilWords]. Keeps small chunks from producing
// summaries longer than their source.
func LengthHint(wordCount, floorWords, ceilWords int) (minWords, maxWords int) {
	maxWords = wordCount / 3
	minWords = wordCount / 4
	if maxWords < floorWords {
		maxWords = floorWords
	}
	if maxWords > ceilWords {
		maxWords = ceilWords
	}
	if minWords < floorWords {
		minWords = floorWords
	}
	if minWords > maxWords {
		minWords = maxWords
	}
	return minWords, maxWords
}
