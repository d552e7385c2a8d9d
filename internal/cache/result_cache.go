// Package cache provides an ephemeral, TTL-bound memoization of pipeline
// results. The pipeline itself is stateless; this layer only short-circuits
// repeat submissions of identical text while an entry is live.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"studybrief/internal/model"
)

// ResultCache stores summary reports and quiz sets keyed by document text.
type ResultCache interface {
	GetSummary(ctx context.Context, text string) (*model.SummaryReport, bool)
	SetSummary(ctx context.Context, text string, report *model.SummaryReport) error
	GetQuiz(ctx context.Context, text string, count int) (*model.QuizSet, bool)
	SetQuiz(ctx context.Context, text string, count int, quiz *model.QuizSet) error
}

type resultCache struct {
	client *redis.Client
	ttl    time.Duration
}

// New creates a Redis-backed result cache.
func New(client *redis.Client, ttl time.Duration) ResultCache {
	return &resultCache{client: client, ttl: ttl}
}

func (c *resultCache) GetSummary(ctx context.Context, text string) (*model.SummaryReport, bool) {
	var report model.SummaryReport
	if !c.get(ctx, summaryKey(text), &report) {
		return nil, false
	}
	return &report, true
}

func (c *resultCache) SetSummary(ctx context.Context, text string, report *model.SummaryReport) error {
	return c.set(ctx, summaryKey(text), report)
}

func (c *resultCache) GetQuiz(ctx context.Context, text string, count int) (*model.QuizSet, bool) {
	var quiz model.QuizSet
	if !c.get(ctx, quizKey(text, count), &quiz) {
		return nil, false
	}
	return &quiz, true
}

func (c *resultCache) SetQuiz(ctx context.Context, text string, count int, quiz *model.QuizSet) error {
	return c.set(ctx, quizKey(text, count), quiz)
}

func (c *resultCache) get(ctx context.Context, key string, out any) bool {
	data, err := c.client.Get(ctx, key).Result()
	if err != nil {
		return false
	}
	return json.Unmarshal([]byte(data), out) == nil
}

func (c *resultCache) set(ctx context.Context, key string, val any) error {
	data, err := json.Marshal(val)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, data, c.ttl).Err()
}

func summaryKey(text string) string {
	return "summary:" + hashText(text)
}

func quizKey(text string, count int) string {
	return "quiz:" + hashText(text) + ":" + strconv.Itoa(count)
}

func hashText(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}

// Noop returns a cache that stores nothing, for deployments without Redis.
func Noop() ResultCache {
	return noopCache{}
}

type noopCache struct{}

func (noopCache) GetSummary(context.Context, string) (*model.SummaryReport, bool) { return nil, false }
func (noopCache) SetSummary(context.Context, string, *model.SummaryReport) error  { return nil }
func (noopCache) GetQuiz(context.Context, string, int) (*model.QuizSet, bool)     { return nil, false }
func (noopCache) SetQuiz(context.Context, string, int, *model.QuizSet) error      { return nil }
