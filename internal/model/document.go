package model

// Segment is a model-safe slice of a larger document, produced by the chunker.
// Indices are contiguous 0..N-1 in original document order.
type Segment struct {
	Index int    `json:"index"`
	Text  string `json:"text"`
	// HardSplit marks a segment produced by the midpoint split of a single
	// oversized token. That split is the only boundary-unaware (lossy)
	// operation in the chunker.
	HardSplit bool `json:"hardSplit,omitempty"`
}

// CharLength returns the segment length in characters.
func (s Segment) CharLength() int {
	return len(s.Text)
}

// OutcomeStatus classifies what happened to a single segment.
type OutcomeStatus string

const (
	OutcomeSummarized OutcomeStatus = "summarized"
	OutcomeSkipped    OutcomeStatus = "skipped"
	OutcomeFailed     OutcomeStatus = "failed"
)

// SegmentOutcome records the terminal result for one segment. Written exactly
// once per segment index, never mutated afterwards.
type SegmentOutcome struct {
	Index   int           `json:"index"`
	Status  OutcomeStatus `json:"status"`
	Summary string        `json:"summary,omitempty"` // set when Status == summarized
	Reason  string        `json:"reason,omitempty"`  // skip reason or failure class
}

// SummaryReport is the aggregate result of summarizing every segment of a
// document. CombinedText always reads in segment-index order.
type SummaryReport struct {
	CombinedText   string `json:"combinedText"`
	TotalSegments  int    `json:"totalSegments"`
	SuccessCount   int    `json:"successCount"`
	FailedCount    int    `json:"failedCount"`
	SkippedIndices []int  `json:"skippedIndices"`
	// RateLimited counts failures caused by upstream rate limiting, recorded
	// separately so callers can surface a specific remediation message.
	RateLimited int `json:"rateLimited,omitempty"`
}

// SkippedCount returns the number of skipped segments.
func (r *SummaryReport) SkippedCount() int {
	return len(r.SkippedIndices)
}
