package detector

import (
	"strings"
	"testing"
)

func TestParseDetection(t *testing.T) {
	raw := []byte(`{"ai_probability": 0.82, "confidence": 0.9, "reasoning": "uniform sentence rhythm"}`)
	res, err := parseDetection(raw)
	if err != nil {
		t.Fatalf("parseDetection: %v", err)
	}
	if res.AIProbability != 0.82 || res.Confidence != 0.9 {
		t.Fatalf("unexpected scores: %+v", res)
	}
	if res.Reasoning != "uniform sentence rhythm" {
		t.Fatalf("unexpected reasoning: %q", res.Reasoning)
	}
	if res.DemoMode {
		t.Fatal("live results must not be flagged as demo")
	}
}

func TestParseDetectionClampsOutOfRangeScores(t *testing.T) {
	raw := []byte(`{"ai_probability": 1.7, "confidence": -0.2, "reasoning": "x"}`)
	res, err := parseDetection(raw)
	if err != nil {
		t.Fatalf("parseDetection: %v", err)
	}
	if res.AIProbability != 1 {
		t.Fatalf("expected probability clamped to 1, got %f", res.AIProbability)
	}
	if res.Confidence != 0 {
		t.Fatalf("expected confidence clamped to 0, got %f", res.Confidence)
	}
}

func TestParseDetectionMalformed(t *testing.T) {
	_, err := parseDetection([]byte("The text is probably AI generated."))
	if err == nil || !strings.Contains(err.Error(), "malformed") {
		t.Fatalf("expected malformed response error, got %v", err)
	}
}

func TestNewOpenAIRequiresKeyAndModel(t *testing.T) {
	if _, err := NewOpenAI("", "gpt-4o-mini"); err == nil {
		t.Fatal("expected error for missing API key")
	}
	if _, err := NewOpenAI("sk-test", "  "); err == nil {
		t.Fatal("expected error for missing model")
	}
}
