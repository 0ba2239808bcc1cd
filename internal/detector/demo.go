package detector

import (
	"context"
	"math/rand"
	"strings"
)

// formalPhrases are structured transitions typical of model output.
var formalPhrases = []string{
	"in conclusion", "furthermore", "additionally", "however", "therefore",
	"it is important to note", "as we can see", "to summarize",
}

// personalPhrases are first-person, anecdotal cues typical of human writing.
var personalPhrases = []string{
	"i think", "in my opinion", "personally", "i believe", "my experience",
	"i remember", "last week", "yesterday", "my friend",
}

// Demo simulates detection from surface lexical cues. It is explicitly a
// simulation for running without an API key, not a real detector.
type Demo struct{}

// NewDemo constructs the demo detector.
func NewDemo() *Demo {
	return &Demo{}
}

// Detect scores the text with a keyword heuristic plus randomized jitter.
// It never fails.
func (d *Demo) Detect(ctx context.Context, text string) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	lower := strings.ToLower(text)
	textLength := len(text)
	wordCount := len(strings.Fields(text))

	var probability float64
	var reasoning string
	switch {
	case containsAny(lower, formalPhrases):
		probability = uniform(0.65, 0.85)
		reasoning = "The text exhibits formal academic patterns and structured transitions commonly found in AI-generated content. Phrases like 'in conclusion' and 'furthermore' appear in typical AI writing patterns."
	case textLength < 100:
		probability = uniform(0.3, 0.7)
		reasoning = "Short text length makes detection challenging. Limited content available for comprehensive analysis."
	case containsAny(lower, personalPhrases):
		probability = uniform(0.15, 0.35)
		reasoning = "The text contains personal experiences and subjective language patterns typical of human writing. References to personal opinions and experiences suggest human authorship."
	case wordCount > 500 && float64(strings.Count(text, "."))/float64(wordCount) < 0.05:
		probability = uniform(0.2, 0.4)
		reasoning = "Long passages with minimal punctuation suggest stream-of-consciousness writing style more characteristic of human authors."
	default:
		probability = uniform(0.4, 0.6)
		reasoning = "Mixed indicators present. The text shows some characteristics of both human and AI writing patterns, making definitive classification challenging."
	}

	var confidence float64
	switch {
	case textLength > 1000:
		confidence = uniform(0.8, 0.95)
	case textLength > 300:
		confidence = uniform(0.6, 0.8)
	default:
		confidence = uniform(0.4, 0.6)
	}

	return Result{
		AIProbability: probability,
		Confidence:    confidence,
		Reasoning:     reasoning,
		DemoMode:      true,
	}, nil
}

func containsAny(haystack string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(haystack, n) {
			return true
		}
	}
	return false
}

func uniform(lo, hi float64) float64 {
	return lo + rand.Float64()*(hi-lo)
}
