package summarizer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/sethvargo/go-retry"

	"studybrief/internal/config"
)

// Client adapts the external generateContent API to the Capability contract.
// Retry policy lives here, not in the aggregator: transient and rate-limit
// failures are retried with exponential backoff, everything else is terminal.
type Client struct {
	cfg         *config.AIConfig
	charCeiling int
	httpClient  *http.Client
	logger      *log.Logger
}

// NewClient creates a capability client. charCeiling is the model's hard
// input limit in characters, distinct from the chunker's target size.
func NewClient(cfg *config.AIConfig, charCeiling int, logger *log.Logger) *Client {
	return &Client{
		cfg:         cfg,
		charCeiling: charCeiling,
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.TimeoutMS) * time.Millisecond,
		},
		logger: logger,
	}
}

// CharCeiling exposes the model's hard input limit for pre-filtering.
func (c *Client) CharCeiling() int {
	return c.charCeiling
}

// Summarize condenses one segment to the hinted word range.
func (c *Client) Summarize(ctx context.Context, req Request) (string, error) {
	if len(req.Text) > c.charCeiling {
		return "", fmt.Errorf("%w: %d chars over %d ceiling", ErrOversize, len(req.Text), c.charCeiling)
	}
	if !c.cfg.IsEnabled() {
		return extractiveFallback(req), nil
	}

	prompt := fmt.Sprintf(
		"Summarize the following text in %d to %d words. Respond with the summary only, no preamble.\n\n%s",
		req.MinWords, req.MaxWords, req.Text)

	out, err := c.generate(ctx, c.cfg.SummaryModel, prompt, outputTokenBudget(req))
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(out) == "" {
		return "", fmt.Errorf("%w: empty summary", ErrUnusable)
	}
	return strings.TrimSpace(out), nil
}

// Generate runs a free-form prompt through the refinement model. Used by the
// quiz assembler's best-effort phrasing pass.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	if !c.cfg.IsEnabled() {
		return "", fmt.Errorf("%w: capability not configured", ErrUnusable)
	}
	return c.generate(ctx, c.cfg.RefineModel, prompt, 0)
}

// generate performs the API call with retries on transient and rate-limit
// failures.
func (c *Client) generate(ctx context.Context, model, prompt string, maxTokens int) (string, error) {
	backoff := retry.WithMaxRetries(uint64(c.cfg.MaxRetries),
		retry.WithJitter(100*time.Millisecond, retry.NewExponential(500*time.Millisecond)))

	var out string
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		var callErr error
		out, callErr = c.callOnce(ctx, model, prompt, maxTokens)
		if callErr != nil && (IsRateLimited(callErr) || errors.Is(callErr, ErrTransient)) {
			return retry.RetryableError(callErr)
		}
		return callErr
	})
	return out, err
}

func (c *Client) callOnce(ctx context.Context, model, prompt string, maxTokens int) (string, error) {
	genConfig := map[string]any{}
	if maxTokens > 0 {
		genConfig["maxOutputTokens"] = maxTokens
	}
	reqBody := map[string]any{
		"contents": []map[string]any{
			{"parts": []map[string]string{{"text": prompt}}},
		},
	}
	if len(genConfig) > 0 {
		reqBody["generationConfig"] = genConfig
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s?key=%s", c.cfg.ModelEndpoint(model), c.cfg.APIKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonBody))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	c.logger.Debug("capability call", "model", model, "promptTokens", EstimateTokens(prompt))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", fmt.Errorf("%w: %v", ErrTransient, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: read body: %v", ErrTransient, err)
	}

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return "", rateLimitFrom(resp.Header)
	case resp.StatusCode >= 500:
		return "", fmt.Errorf("%w: upstream %d", ErrTransient, resp.StatusCode)
	case resp.StatusCode >= 400:
		return "", fmt.Errorf("%w: upstream %d: %s", ErrUnusable, resp.StatusCode, truncate(string(body), 200))
	}

	var apiResp struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return "", fmt.Errorf("%w: parse response: %v", ErrUnusable, err)
	}
	if len(apiResp.Candidates) == 0 || len(apiResp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("%w: no candidates", ErrUnusable)
	}
	return apiResp.Candidates[0].Content.Parts[0].Text, nil
}

// rateLimitFrom reads quota metadata out of standard rate-limit headers.
func rateLimitFrom(h http.Header) *RateLimitError {
	rl := &RateLimitError{Remaining: -1, Limit: -1}
	if v := h.Get("X-RateLimit-Remaining"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			rl.Remaining = n
		}
	}
	if v := h.Get("X-RateLimit-Limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			rl.Limit = n
		}
	}
	if v := h.Get("X-RateLimit-Reset"); v != "" {
		if ts, err := strconv.ParseInt(v, 10, 64); err == nil {
			rl.ResetAt = time.Unix(ts, 0)
		}
	}
	return rl
}

// extractiveFallback returns the leading sentences of the input, up to the
// hinted maximum word count. Keeps the service demoable without credentials.
func extractiveFallback(req Request) string {
	words := strings.Fields(req.Text)
	if len(words) <= req.MaxWords {
		return req.Text
	}
	out := strings.Join(words[:req.MaxWords], " ")
	// Prefer ending on a sentence boundary when one is close.
	if idx := strings.LastIndexAny(out, ".!?"); idx > len(out)/2 {
		out = out[:idx+1]
	}
	return out
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
