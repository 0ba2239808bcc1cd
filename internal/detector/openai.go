package detector

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"
)

const (
	maxTokens = 1024
	// maxInputChars bounds the prompt; detection quality plateaus well below
	// this and longer inputs only cost tokens.
	maxInputChars = 12000
)

const systemPrompt = `You are an expert at detecting AI-generated text. Analyze the provided text and respond with a JSON object containing exactly these fields:
- "ai_probability": a number between 0 and 1, the probability the text was AI-generated
- "confidence": a number between 0 and 1, your confidence in the assessment
- "reasoning": a short explanation of the indicators you found`

// OpenAI is the live detector backed by the Chat Completions API.
type OpenAI struct {
	client *openai.Client
	model  string
}

// NewOpenAI constructs a live detector. Model defaults are handled by config.
func NewOpenAI(apiKey, model string) (*OpenAI, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("OPENAI_API_KEY is required for live detection")
	}
	if strings.TrimSpace(model) == "" {
		return nil, errors.New("LLM_MODEL is required for live detection")
	}
	return &OpenAI{client: openai.NewClient(apiKey), model: model}, nil
}

// Detect sends the text to the model and parses the classification triple.
func (o *OpenAI) Detect(ctx context.Context, text string) (Result, error) {
	if len(text) > maxInputChars {
		text = text[:maxInputChars]
	}

	req := openai.ChatCompletionRequest{
		Model: o.model,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: text},
		},
	}
	// Reasoning models take MaxCompletionTokens instead of MaxTokens.
	if strings.HasPrefix(o.model, "o1") || strings.HasPrefix(o.model, "o3") || strings.HasPrefix(o.model, "o4") || strings.HasPrefix(o.model, "gpt-5") {
		req.MaxCompletionTokens = maxTokens
	} else {
		req.MaxTokens = maxTokens
	}

	resp, err := o.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return Result{}, fmt.Errorf("detection request failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return Result{}, errors.New("detection response contained no choices")
	}

	return parseDetection([]byte(resp.Choices[0].Message.Content))
}

// parseDetection decodes the model's JSON answer, clamping scores into range.
func parseDetection(raw []byte) (Result, error) {
	var payload struct {
		AIProbability float64 `json:"ai_probability"`
		Confidence    float64 `json:"confidence"`
		Reasoning     string  `json:"reasoning"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return Result{}, fmt.Errorf("malformed detection response: %w", err)
	}
	return Result{
		AIProbability: clamp01(payload.AIProbability),
		Confidence:    clamp01(payload.Confidence),
		Reasoning:     payload.Reasoning,
		DemoMode:      false,
	}, nil
}
