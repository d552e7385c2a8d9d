package quizgen

import (
	"hash/fnv"
	"math/rand"
	"strings"

	"github.com/google/uuid"

	"studybrief/internal/model"
)

const optionCount = 4

// Synthesizer builds one multiple-choice question from one concept.
type Synthesizer struct {
	bank TermBank
}

// NewSynthesizer creates a synthesizer backed by the given term bank.
func NewSynthesizer(bank TermBank) *Synthesizer {
	return &Synthesizer{bank: bank}
}

var inclusionCues = []string{"includes", "consists of", "contains", "comprises", "composed of", "such as", "made up of"}
var definitionCues = []string{"is defined as", "refers to", "is known as", "is the process", "means"}

// cueVocabulary keeps cue words themselves from being picked as the stem
// topic.
var cueVocabulary = map[string]bool{
	"includes": true, "consists": true, "contains": true, "comprises": true,
	"composed": true, "made": true, "defined": true, "refers": true,
	"known": true, "means": true,
}

// Synthesize returns a question for the concept, or nil when the concept is
// unsuitable: fewer than five words, no identifiable key term, or not enough
// distinct options. Option order is shuffled deterministically per concept;
// the correct answer value is chosen before the shuffle and never altered by
// it, only its position moves.
func (s *Synthesizer) Synthesize(concept model.Concept) *model.Question {
	sentence := strings.TrimSpace(concept.SourceText)
	if len(strings.Fields(sentence)) < 5 {
		return nil
	}

	terms := ContentWords(sentence)
	keyTerm := s.pickKeyTerm(terms)
	if keyTerm == "" {
		return nil
	}

	options := s.buildOptions(keyTerm, terms)
	if options == nil {
		return nil
	}

	stem := s.buildStem(sentence, keyTerm, terms)

	shuffleDeterministic(options, sentence)
	return &model.Question{
		ID:            uuid.NewString(),
		Stem:          stem,
		Options:       options,
		CorrectAnswer: keyTerm,
	}
}

// pickKeyTerm prefers the first term with a term-bank entry, falling back to
// the longest content word above four characters.
func (s *Synthesizer) pickKeyTerm(terms []string) string {
	for _, t := range terms {
		if len(s.bank.Related(t)) > 0 {
			return t
		}
	}
	longest := ""
	for _, t := range terms {
		if len(t) > 4 && len(t) > len(longest) {
			longest = t
		}
	}
	return longest
}

// buildStem selects a question form from sentence cues, defaulting to
// blanking the key term in the original sentence.
func (s *Synthesizer) buildStem(sentence, keyTerm string, terms []string) string {
	lower := strings.ToLower(sentence)
	topic := ""
	for _, t := range terms {
		if t != keyTerm && !cueVocabulary[t] {
			topic = t
			break
		}
	}

	if topic != "" {
		for _, cue := range inclusionCues {
			if strings.Contains(lower, cue) {
				return "Which of the following is a key component of " + topic + "?"
			}
		}
		for _, cue := range definitionCues {
			if strings.Contains(lower, cue) {
				return "What is the definition of " + topic + "?"
			}
		}
	}

	if blanked, ok := blankTerm(sentence, keyTerm); ok {
		return "Fill in the blank: " + blanked
	}
	if topic != "" {
		return "Which of the following best describes " + topic + "?"
	}
	return "Which of the following best describes this statement: \"" + sentence + "\"?"
}

// blankTerm replaces the first case-insensitive occurrence of term with a
// blank, matching whole tokens only.
func blankTerm(sentence, term string) (string, bool) {
	fields := strings.Fields(sentence)
	for i, f := range fields {
		if strings.EqualFold(strings.Trim(f, ".,;:!?()[]{}\"'`"), term) {
			trimmed := strings.Trim(f, ".,;:!?()[]{}\"'`")
			fields[i] = strings.Replace(f, trimmed, "_____", 1)
			return strings.Join(fields, " "), true
		}
	}
	return "", false
}

// buildOptions assembles exactly four unique options: the correct term plus
// distractors from related terms, then other key terms in the sentence, then
// pluralization toggles as a last resort. Returns nil when four distinct
// options cannot be reached.
func (s *Synthesizer) buildOptions(keyTerm string, terms []string) []string {
	options := []string{keyTerm}
	seen := map[string]bool{strings.ToLower(keyTerm): true}

	add := func(candidate string) bool {
		candidate = strings.TrimSpace(candidate)
		key := strings.ToLower(candidate)
		if candidate == "" || seen[key] {
			return false
		}
		seen[key] = true
		options = append(options, candidate)
		return len(options) == optionCount
	}

	for _, related := range s.bank.Related(keyTerm) {
		if add(related) {
			return options
		}
	}
	for _, t := range terms {
		if len(t) > 4 {
			if add(t) {
				return options
			}
		}
	}
	// Last resort: morphological variants of what we already have.
	for i := 0; i < len(options); i++ {
		if add(togglePlural(options[i])) {
			return options
		}
	}

	return nil
}

// togglePlural flips a trailing "s" on or off.
func togglePlural(word string) string {
	if strings.HasSuffix(word, "s") {
		return strings.TrimSuffix(word, "s")
	}
	return word + "s"
}

// shuffleDeterministic shuffles options with a seed derived from the source
// sentence, so the same concept always yields the same option order.
func shuffleDeterministic(options []string, seedText string) {
	h := fnv.New64a()
	h.Write([]byte(seedText))
	rng := rand.New(rand.NewSource(int64(h.Sum64())))
	rng.Shuffle(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
	})
}
