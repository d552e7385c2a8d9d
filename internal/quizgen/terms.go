package quizgen

// TermBank supplies plausible distractors for a key term. The default is a
// static lookup table; it is behind an interface so a smarter source
// (embeddings, a thesaurus service) can replace it without touching the
// synthesizer's control flow.
type TermBank interface {
	Related(term string) []string
}

type staticTermBank map[string][]string

func (b staticTermBank) Related(term string) []string {
	return b[term]
}

// DefaultTermBank returns the built-in concept→related-terms table for
// common domain vocabulary. Read-only after process start.
func DefaultTermBank() TermBank {
	return defaultTerms
}

var defaultTerms = staticTermBank{
	"algorithm":    {"heuristic", "procedure", "formula"},
	"analysis":     {"synthesis", "evaluation", "observation"},
	"atom":         {"molecule", "electron", "proton"},
	"bacteria":     {"viruses", "fungi", "cells"},
	"cell":         {"tissue", "organ", "membrane"},
	"climate":      {"weather", "temperature", "atmosphere"},
	"compound":     {"element", "mixture", "solution"},
	"computer":     {"processor", "machine", "calculator"},
	"data":         {"information", "statistics", "records"},
	"democracy":    {"monarchy", "republic", "oligarchy"},
	"economy":      {"market", "industry", "commerce"},
	"ecosystem":    {"habitat", "biome", "environment"},
	"energy":       {"power", "force", "momentum"},
	"engine":       {"motor", "turbine", "generator"},
	"evolution":    {"adaptation", "mutation", "selection"},
	"function":     {"method", "procedure", "operation"},
	"government":   {"parliament", "administration", "authority"},
	"gravity":      {"magnetism", "friction", "inertia"},
	"hypothesis":   {"theory", "assumption", "conjecture"},
	"language":     {"dialect", "grammar", "vocabulary"},
	"memory":       {"storage", "recall", "cognition"},
	"molecule":     {"atom", "compound", "particle"},
	"network":      {"system", "grid", "infrastructure"},
	"neuron":       {"synapse", "axon", "dendrite"},
	"oxygen":       {"hydrogen", "nitrogen", "carbon"},
	"photosynthesis": {"respiration", "fermentation", "transpiration"},
	"planet":       {"asteroid", "comet", "satellite"},
	"protein":      {"enzyme", "carbohydrate", "lipid"},
	"revolution":   {"rebellion", "reform", "uprising"},
	"software":     {"hardware", "firmware", "middleware"},
	"species":      {"genus", "family", "population"},
	"system":       {"structure", "framework", "mechanism"},
	"temperature":  {"pressure", "humidity", "density"},
	"theory":       {"hypothesis", "principle", "doctrine"},
	"water":        {"vapor", "liquid", "moisture"},
}

// stopWords is the stretchable list of words never treated as key terms.
var stopWords = map[string]bool{
	"a": true, "about": true, "above": true, "after": true, "again": true,
	"all": true, "also": true, "and": true, "any": true, "are": true,
	"because": true, "been": true, "before": true, "being": true,
	"below": true, "between": true, "both": true, "but": true, "can": true,
	"could": true, "does": true, "doing": true, "down": true, "during": true,
	"each": true, "every": true, "few": true, "from": true, "further": true, "have": true,
	"having": true, "here": true, "how": true, "into": true, "itself": true,
	"just": true, "more": true, "most": true, "much": true, "not": true,
	"now": true, "only": true, "other": true, "over": true, "same": true,
	"should": true, "some": true, "such": true, "than": true, "that": true,
	"the": true, "their": true, "them": true, "then": true, "there": true,
	"these": true, "they": true, "this": true, "those": true, "through": true,
	"under": true, "until": true, "using": true, "very": true, "were": true,
	"what": true, "within": true,
	"when": true, "where": true, "which": true, "while": true, "will": true,
	"with": true, "would": true, "your": true,
}
