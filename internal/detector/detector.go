// Package detector estimates the probability that a piece of text was
// AI-generated. The live implementation delegates scoring entirely to an
// external LLM; the demo implementation is a lexical heuristic used when no
// API key is configured.
package detector

import "context"

// Result is the classification triple consumed by the UI.
type Result struct {
	AIProbability float64 `json:"ai_probability"`
	Confidence    float64 `json:"confidence"`
	Reasoning     string  `json:"reasoning"`
	DemoMode      bool    `json:"demo_mode"`
}

// Detector classifies extracted text.
type Detector interface {
	Detect(ctx context.Context, text string) (Result, error)
}

// clamp01 forces a score into [0, 1]; model output is not trusted to honor
// the range.
func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
