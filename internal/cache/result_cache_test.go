package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studybrief/internal/model"
)

func testCache(t *testing.T) (ResultCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return New(client, time.Minute), mr
}

func TestSummaryRoundTrip(t *testing.T) {
	c, _ := testCache(t)
	ctx := context.Background()

	report := &model.SummaryReport{
		CombinedText:   "a summary",
		TotalSegments:  3,
		SuccessCount:   2,
		FailedCount:    1,
		SkippedIndices: []int{},
	}
	require.NoError(t, c.SetSummary(ctx, "document text", report))

	got, ok := c.GetSummary(ctx, "document text")
	require.True(t, ok)
	assert.Equal(t, report, got)
}

func TestSummaryMissAndKeyIsolation(t *testing.T) {
	c, _ := testCache(t)
	ctx := context.Background()

	_, ok := c.GetSummary(ctx, "never stored")
	assert.False(t, ok)

	require.NoError(t, c.SetSummary(ctx, "doc A", &model.SummaryReport{CombinedText: "A"}))
	_, ok = c.GetSummary(ctx, "doc B")
	assert.False(t, ok, "different text must not hit the same key")
}

func TestQuizRoundTripKeyedByCount(t *testing.T) {
	c, _ := testCache(t)
	ctx := context.Background()

	quiz := &model.QuizSet{Questions: []model.Question{
		{ID: "q1", Stem: "Stem?", Options: []string{"a", "b", "c", "d"}, CorrectAnswer: "a"},
	}}
	require.NoError(t, c.SetQuiz(ctx, "doc", 5, quiz))

	got, ok := c.GetQuiz(ctx, "doc", 5)
	require.True(t, ok)
	assert.Equal(t, "Stem?", got.Questions[0].Stem)

	_, ok = c.GetQuiz(ctx, "doc", 3)
	assert.False(t, ok, "question count is part of the key")
}

func TestEntriesExpire(t *testing.T) {
	c, mr := testCache(t)
	ctx := context.Background()

	require.NoError(t, c.SetSummary(ctx, "doc", &model.SummaryReport{CombinedText: "x"}))
	mr.FastForward(2 * time.Minute)

	_, ok := c.GetSummary(ctx, "doc")
	assert.False(t, ok)
}

func TestNoopCache(t *testing.T) {
	c := Noop()
	ctx := context.Background()

	assert.NoError(t, c.SetSummary(ctx, "doc", &model.SummaryReport{}))
	_, ok := c.GetSummary(ctx, "doc")
	assert.False(t, ok)
}
