// Package chunker splits arbitrary-length text into model-safe segments
// without breaking semantic units, preferring paragraph boundaries over
// sentence boundaries over word boundaries.
package chunker

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"studybrief/internal/model"
)

var (
	paragraphRe = regexp.MustCompile(`\n\s*\n`)
	sentenceRe  = regexp.MustCompile(`([.!?])\s+`)
)

// Split breaks text into ordered segments of at most maxChunkSize characters.
// Boundary preference, strongest first: blank lines, sentence ends, spaces.
// A single word longer than maxChunkSize is hard-split at its midpoint; that
// is the only split that can land inside a semantic unit, and the resulting
// segments carry HardSplit=true so fidelity-sensitive callers can tell.
//
// Empty or whitespace-only input yields zero segments; callers must treat
// that as "no content", not as a one-segment result.
func Split(text string, maxChunkSize int) []model.Segment {
	if maxChunkSize < 1 {
		maxChunkSize = 1
	}
	if strings.TrimSpace(text) == "" {
		return nil
	}

	b := &builder{max: maxChunkSize}
	for _, para := range paragraphRe.Split(text, -1) {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}
		if len(para) <= maxChunkSize {
			b.add(para, "\n\n")
			continue
		}
		// Paragraph too large on its own: fall back to sentences.
		for _, sentence := range splitSentences(para) {
			if len(sentence) <= maxChunkSize {
				b.add(sentence, " ")
				continue
			}
			// Sentence too large: fall back to words.
			for _, word := range strings.Fields(sentence) {
				if len(word) <= maxChunkSize {
					b.add(word, " ")
					continue
				}
				b.addOversizeWord(word)
			}
		}
	}
	b.flush(false)
	return b.segments
}

// splitSentences cuts a paragraph on ./!/? followed by whitespace, keeping
// the terminator with its sentence.
func splitSentences(para string) []string {
	marked := sentenceRe.ReplaceAllString(para, "$1\x00")
	parts := strings.Split(marked, "\x00")
	sentences := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			sentences = append(sentences, p)
		}
	}
	return sentences
}

// builder greedily packs units into segments.
type builder struct {
	max      int
	buf      strings.Builder
	segments []model.Segment
}

// add appends a unit that is known to fit in an empty buffer, flushing first
// when the join would overflow.
func (b *builder) add(unit, joiner string) {
	if b.buf.Len() > 0 && b.buf.Len()+len(joiner)+len(unit) > b.max {
		b.flush(false)
	}
	if b.buf.Len() > 0 {
		b.buf.WriteString(joiner)
	}
	b.buf.WriteString(unit)
}

// addOversizeWord handles the degenerate case of a single token with no
// internal boundary exceeding the limit: flush, then recursively halve the
// token at its midpoint until the pieces fit. Lossy in the sense that the
// split point is boundary-unaware.
func (b *builder) addOversizeWord(word string) {
	b.flush(false)
	var halve func(w string)
	halve = func(w string) {
		if len(w) <= b.max {
			b.buf.WriteString(w)
			b.flush(true)
			return
		}
		mid := len(w) / 2
		// Snap backwards to a rune boundary so a multibyte character is
		// never cut in half.
		for mid > 0 && !utf8.RuneStart(w[mid]) {
			mid--
		}
		if mid == 0 {
			mid = len(w) / 2
		}
		halve(w[:mid])
		halve(w[mid:])
	}
	halve(word)
}

func (b *builder) flush(hardSplit bool) {
	if b.buf.Len() == 0 {
		return
	}
	b.segments = append(b.segments, model.Segment{
		Index:     len(b.segments),
		Text:      b.buf.String(),
		HardSplit: hardSplit,
	})
	b.buf.Reset()
}
