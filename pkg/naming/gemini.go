package naming

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"google.golang.org/genai"
)

// DefaultModel is used when no model is configured
const DefaultModel = "gemini-2.5-flash"

const systemPrompt = "You are a helpful assistant that renames coding projects."

// ErrNoAPIKey is returned when no Gemini API key is configured
var ErrNoAPIKey = errors.New("no Gemini API key: set GEMINI_API_KEY or GOOGLE_API_KEY")

// GeminiGenerator is a thin wrapper around the official genai client
type GeminiGenerator struct {
	cli   *genai.Client
	model string
}

// APIKeyFromEnv returns GEMINI_API_KEY, falling back to GOOGLE_API_KEY
func APIKeyFromEnv() string {
	if k := strings.TrimSpace(os.Getenv("GEMINI_API_KEY")); k != "" {
		return k
	}
	return strings.TrimSpace(os.Getenv("GOOGLE_API_KEY"))
}

// ModelFromEnv returns ORGANIZER_GEMINI_MODEL or fallback
func ModelFromEnv(fallback string) string {
	if m := strings.TrimSpace(os.Getenv("ORGANIZER_GEMINI_MODEL")); m != "" {
		return m
	}
	if fallback != "" {
		return fallback
	}
	return DefaultModel
}

// NewGeminiGenerator creates a client for the Gemini API
func NewGeminiGenerator(ctx context.Context, apiKey, model string) (*GeminiGenerator, error) {
	if apiKey == "" {
		return nil, ErrNoAPIKey
	}
	if model == "" {
		model = DefaultModel
	}

	cli, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &GeminiGenerator{cli: cli, model: model}, nil
}

// Name identifies the backing model
func (g *GeminiGenerator) Name() string { return "Gemini:" + g.model }

// Generate sends one prompt and returns the first candidate's text
func (g *GeminiGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := g.cli.Models.GenerateContent(ctx, g.model,
		[]*genai.Content{{Role: genai.RoleUser, Parts: []*genai.Part{{Text: prompt}}}},
		&genai.GenerateContentConfig{
			Temperature:       genai.Ptr[float32](0.3),
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: systemPrompt}}},
		},
	)
	if err != nil {
		return "", err
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", errors.New("empty response from model")
	}
	return resp.Candidates[0].Content.Parts[0].Text, nil
}
