package quizgen

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studybrief/internal/model"
)

func concept(text string) model.Concept {
	return model.Concept{SourceText: text, ImportanceScore: 1}
}

func TestSynthesizeRejectsShortConcepts(t *testing.T) {
	s := NewSynthesizer(DefaultTermBank())
	assert.Nil(t, s.Synthesize(concept("Too short here.")))
	assert.Nil(t, s.Synthesize(concept("Four tiny words only")))
}

func TestSynthesizeRejectsConceptWithoutKeyTerm(t *testing.T) {
	s := NewSynthesizer(DefaultTermBank())
	// All words are stop words or too short to qualify as a key term.
	assert.Nil(t, s.Synthesize(concept("The it and but from over that each.")))
}

func TestSynthesizeProducesValidQuestion(t *testing.T) {
	s := NewSynthesizer(DefaultTermBank())
	q := s.Synthesize(concept("Photosynthesis converts sunlight energy into chemical storage inside plants."))
	require.NotNil(t, q)

	assert.NotEmpty(t, q.ID)
	assert.NotEmpty(t, q.Stem)
	require.Len(t, q.Options, 4)
	assert.Contains(t, q.Options, q.CorrectAnswer,
		"correct answer must be present verbatim in the options")

	seen := make(map[string]bool)
	for _, opt := range q.Options {
		assert.False(t, seen[opt], "duplicate option %q", opt)
		seen[opt] = true
	}
}

func TestSynthesizePrefersTermBankEntries(t *testing.T) {
	s := NewSynthesizer(DefaultTermBank())
	q := s.Synthesize(concept("Modern science shows photosynthesis sustains nearly all terrestrial life."))
	require.NotNil(t, q)

	assert.Equal(t, "photosynthesis", q.CorrectAnswer)
	// Bank-supplied distractors should appear among the options.
	joined := strings.Join(q.Options, " ")
	assert.Contains(t, joined, "respiration")
}

func TestSynthesizeInclusionCueTemplate(t *testing.T) {
	s := NewSynthesizer(DefaultTermBank())
	q := s.Synthesize(concept("Every ecosystem contains producers, consumers, and decomposers working together."))
	require.NotNil(t, q)
	assert.Equal(t, "ecosystem", q.CorrectAnswer)
	assert.True(t, strings.HasPrefix(q.Stem, "Which of the following is a key component of"),
		"inclusion cue should select the component template, got %q", q.Stem)
}

func TestSynthesizeDefinitionCueTemplate(t *testing.T) {
	s := NewSynthesizer(DefaultTermBank())
	q := s.Synthesize(concept("Entropy refers to the disorder measured within a thermodynamic system."))
	require.NotNil(t, q)
	assert.True(t, strings.HasPrefix(q.Stem, "What is the definition of"),
		"definition cue should select the definition template, got %q", q.Stem)
}

func TestSynthesizeBlanksKeyTermWithoutCue(t *testing.T) {
	s := NewSynthesizer(DefaultTermBank())
	q := s.Synthesize(concept("Ancient travelers navigated oceans using constellations and seasonal winds."))
	require.NotNil(t, q)
	assert.True(t, strings.HasPrefix(q.Stem, "Fill in the blank:"), "got %q", q.Stem)
	assert.Contains(t, q.Stem, "_____")
	assert.NotContains(t, strings.ToLower(q.Stem), q.CorrectAnswer,
		"blanked stem must not leak the answer")
}

func TestSynthesizeDeterministicPerConcept(t *testing.T) {
	s := NewSynthesizer(DefaultTermBank())
	text := "Photosynthesis converts sunlight energy into chemical storage inside plants."
	a := s.Synthesize(concept(text))
	b := s.Synthesize(concept(text))
	require.NotNil(t, a)
	require.NotNil(t, b)

	assert.Equal(t, a.Stem, b.Stem)
	assert.Equal(t, a.Options, b.Options, "option order must be stable for the same concept")
	assert.Equal(t, a.CorrectAnswer, b.CorrectAnswer)
}

func TestTogglePlural(t *testing.T) {
	assert.Equal(t, "winds", togglePlural("wind"))
	assert.Equal(t, "wind", togglePlural("winds"))
}
