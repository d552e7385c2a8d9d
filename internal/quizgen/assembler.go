package quizgen

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"

	"studybrief/internal/model"
)

// ErrInsufficientContent is returned when no usable questions can be made
// from the text.
var ErrInsufficientContent = errors.New("not enough quizzable content")

// Refiner is an optional text-generation capability used to polish question
// phrasing. Refinement is best-effort and never load-bearing.
type Refiner interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Assembler drives the extractor and synthesizer into a fixed-size,
// de-duplicated question set.
type Assembler struct {
	extractor   Extractor
	synthesizer *Synthesizer
	refiner     Refiner // nil disables refinement
	logger      *log.Logger
}

// NewAssembler creates an assembler. refiner may be nil.
func NewAssembler(extractor Extractor, synthesizer *Synthesizer, refiner Refiner, logger *log.Logger) *Assembler {
	return &Assembler{
		extractor:   extractor,
		synthesizer: synthesizer,
		refiner:     refiner,
		logger:      logger,
	}
}

// Assemble produces up to targetCount questions from the text, iterating
// concepts in extractor priority order and skipping duplicates by exact stem
// match. A set shorter than targetCount is valid; it is never padded. Fails
// with ErrInsufficientContent only when zero questions could be produced.
func (a *Assembler) Assemble(ctx context.Context, text string, targetCount int) (model.QuizSet, error) {
	if targetCount < 1 {
		targetCount = 1
	}

	concepts := a.extractor.Extract(text)
	seenStems := make(map[string]bool)
	var questions []model.Question

	for _, concept := range concepts {
		if len(questions) == targetCount {
			break
		}
		q := a.synthesizer.Synthesize(concept)
		if q == nil {
			continue
		}
		if seenStems[q.Stem] {
			continue
		}
		seenStems[q.Stem] = true
		questions = append(questions, a.refine(ctx, *q))
	}

	if len(questions) == 0 {
		return model.QuizSet{}, ErrInsufficientContent
	}
	return model.QuizSet{Questions: questions}, nil
}

// refinedQuestion is the shape the refinement capability is expected, but
// not guaranteed, to return.
type refinedQuestion struct {
	Question string   `json:"question"`
	Options  []string `json:"options"`
	Correct  string   `json:"correct"`
}

// refine passes a question through the text-generation capability to improve
// phrasing. The original correct answer is preserved unconditionally; any
// parse or validation failure silently keeps the pre-refinement question.
func (a *Assembler) refine(ctx context.Context, q model.Question) model.Question {
	if a.refiner == nil {
		return q
	}

	prompt := fmt.Sprintf(`Improve the phrasing of this multiple-choice question without changing its meaning or its answer options. Return ONLY valid JSON:
{"question": "...", "options": ["...", "...", "...", "..."], "correct": "..."}

Question: %s
Options: %s
Correct: %s`, q.Stem, strings.Join(q.Options, ", "), q.CorrectAnswer)

	raw, err := a.refiner.Generate(ctx, prompt)
	if err != nil {
		a.logger.Debug("question refinement skipped", "err", err)
		return q
	}

	refined, ok := parseRefined(raw, q.CorrectAnswer)
	if !ok {
		a.logger.Debug("question refinement unparseable, keeping original")
		return q
	}

	q.Stem = refined.Question
	q.Options = refined.Options
	// CorrectAnswer deliberately untouched.
	return q
}

// parseRefined validates the capability output: four unique options, the
// original correct answer still present verbatim.
func parseRefined(raw, correct string) (*refinedQuestion, bool) {
	raw = strings.TrimSpace(raw)
	raw = strings.TrimPrefix(raw, "```json")
	raw = strings.TrimPrefix(raw, "```")
	raw = strings.TrimSuffix(raw, "```")

	var refined refinedQuestion
	if err := json.Unmarshal([]byte(strings.TrimSpace(raw)), &refined); err != nil {
		return nil, false
	}
	if strings.TrimSpace(refined.Question) == "" || len(refined.Options) != optionCount {
		return nil, false
	}
	seen := make(map[string]bool, optionCount)
	hasCorrect := false
	for _, opt := range refined.Options {
		if seen[opt] {
			return nil, false
		}
		seen[opt] = true
		if opt == correct {
			hasCorrect = true
		}
	}
	if !hasCorrect {
		return nil, false
	}
	return &refined, true
}
