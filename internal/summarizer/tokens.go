package summarizer

import (
	"sync"

	"github.com/pkoukk/tiktoken-go"
)

const (
	defaultEncoding       = "cl100k_base"
	fallbackBytesPerToken = 4
)

var (
	encodingOnce sync.Once
	encoding     *tiktoken.Tiktoken
)

// EstimateTokens approximates how many model tokens a text costs. Uses the
// cl100k_base BPE when it can be loaded, otherwise a bytes/4 heuristic.
func EstimateTokens(text string) int {
	if text == "" {
		return 0
	}
	encodingOnce.Do(func() {
		enc, err := tiktoken.GetEncoding(defaultEncoding)
		if err == nil {
			encoding = enc
		}
	})
	if encoding != nil {
		return len(encoding.Encode(text, nil, nil))
	}
	return (len(text) + fallbackBytesPerToken - 1) / fallbackBytesPerToken
}

// outputTokenBudget converts the hinted word range into a maxOutputTokens
// value: roughly two tokens per hinted word, capped at what the source text
// itself costs (a summary must never be allowed to outgrow its input), with
// the minimum hint kept reachable.
func outputTokenBudget(req Request) int {
	budget := req.MaxWords * 2
	if inputTokens := EstimateTokens(req.Text); inputTokens < budget {
		budget = inputTokens
	}
	if floor := req.MinWords * 2; budget < floor {
		budget = floor
	}
	return budget
}
