// Package quizgen turns document text into multiple-choice comprehension
// quizzes and grades submitted answers.
package quizgen

import (
	"regexp"
	"sort"
	"strings"

	"studybrief/internal/model"
)

var sentenceEndRe = regexp.MustCompile(`([.!?])\s+`)

// Extractor identifies sentences likely to carry quizzable content. It is
// swappable so a smarter (statistical or model-backed) extractor can replace
// the heuristic one without touching the synthesizer.
type Extractor interface {
	Extract(text string) []model.Concept
}

// frequencyExtractor scores sentences by how often their content terms recur
// across the sentences already processed in the same call. Recurring terms
// signal topicality; the sentence score is the weight of its heaviest term.
type frequencyExtractor struct {
	threshold float64
}

// NewExtractor returns the default frequency-based extractor.
func NewExtractor() Extractor {
	return &frequencyExtractor{threshold: 0.5}
}

// Extract returns concepts most-important first. Concepts keep the full
// original sentence text; the synthesizer needs the context, not just the
// keywords.
func (e *frequencyExtractor) Extract(text string) []model.Concept {
	sentences := SplitSentences(text)
	termCount := make(map[string]float64)

	var concepts []model.Concept
	for _, sentence := range sentences {
		terms := ContentWords(sentence)
		if len(terms) == 0 {
			continue
		}
		best := 0.0
		for _, t := range terms {
			termCount[t]++
			if termCount[t] > best {
				best = termCount[t]
			}
		}
		if best > e.threshold {
			concepts = append(concepts, model.Concept{
				SourceText:      sentence,
				ImportanceScore: best,
			})
		}
	}

	sort.SliceStable(concepts, func(i, j int) bool {
		return concepts[i].ImportanceScore > concepts[j].ImportanceScore
	})
	return concepts
}

// SplitSentences cuts text into sentences on ./!/? followed by whitespace.
func SplitSentences(text string) []string {
	marked := sentenceEndRe.ReplaceAllString(text, "$1\x00")
	parts := strings.FieldsFunc(marked, func(r rune) bool { return r == '\x00' })
	sentences := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			sentences = append(sentences, p)
		}
	}
	return sentences
}

// ContentWords lowercases and tokenizes a sentence, keeping words longer
// than three characters that are not stop words. Punctuation is stripped
// from token edges.
func ContentWords(sentence string) []string {
	fields := strings.Fields(strings.ToLower(sentence))
	words := make([]string, 0, len(fields))
	for _, f := range fields {
		w := strings.Trim(f, ".,;:!?()[]{}\"'`")
		if len(w) > 3 && !stopWords[w] {
			words = append(words, w)
		}
	}
	return words
}
