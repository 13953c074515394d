// Package ai provides the assisted-text features of the CV builder:
// profile generation and Swiss-French translation of descriptions and
// skills, backed by Google Gemini.
package ai

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// DefaultModel is used when GEMINI_MODEL is not set.
const DefaultModel = "gemini-2.5-flash"

// ErrGeneration is the uniform failure surfaced to callers when the
// provider errors or returns an unusable response. The cause is wrapped.
var ErrGeneration = errors.New("text generation failed")

// Client is an abstraction over the text-assist provider.
type Client interface {
	// GenerateProfile turns the user's free-form notes into a short
	// professional summary in Swiss French.
	GenerateProfile(ctx context.Context, text string) (string, error)
	// TranslateDescription translates an experience or education
	// description into Swiss French, keeping a CV-appropriate register.
	TranslateDescription(ctx context.Context, kind TranslateKind, text string) (string, error)
	// TranslateSkill translates a skill name into Swiss French.
	TranslateSkill(ctx context.Context, text string) (string, error)
	// Close releases any resources held by the client.
	Close() error
}

// GeminiClient implements Client for Google Gemini.
type GeminiClient struct {
	client *genai.Client
	model  string
}

// NewGeminiClient creates a Gemini-backed client. The model defaults to
// DefaultModel and can be overridden with GEMINI_MODEL.
func NewGeminiClient(ctx context.Context, apiKey string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := os.Getenv("GEMINI_MODEL")
	if model == "" {
		model = DefaultModel
	}

	return &GeminiClient{client: client, model: model}, nil
}

// GenerateProfile generates a two-sentence professional summary.
func (c *GeminiClient) GenerateProfile(ctx context.Context, text string) (string, error) {
	return c.generate(ctx, profilePrompt, text, 0.5)
}

// TranslateDescription translates an entry description.
func (c *GeminiClient) TranslateDescription(ctx context.Context, kind TranslateKind, text string) (string, error) {
	prompt, err := descriptionPrompt(kind)
	if err != nil {
		return "", err
	}
	return c.generate(ctx, prompt, text, 0.3)
}

// TranslateSkill translates a skill name.
func (c *GeminiClient) TranslateSkill(ctx context.Context, text string) (string, error) {
	return c.generate(ctx, skillPrompt, text, 0.3)
}

// Close releases resources held by the client.
func (c *GeminiClient) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

func (c *GeminiClient) generate(ctx context.Context, systemPrompt, text string, temperature float32) (string, error) {
	model := c.client.GenerativeModel(c.model)
	model.SetTemperature(temperature)
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(systemPrompt)},
	}

	resp, err := model.GenerateContent(ctx, genai.Text(text))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrGeneration, err)
	}

	out, err := extractTextFromResponse(resp)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrGeneration, err)
	}
	return strings.TrimSpace(out), nil
}

// extractTextFromResponse extracts text from a Gemini API response.
func extractTextFromResponse(resp *genai.GenerateContentResponse) (string, error) {
	if len(resp.Candidates) == 0 {
		return "", fmt.Errorf("no candidates in response")
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", fmt.Errorf("no content in response")
	}

	var parts []string
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			parts = append(parts, string(text))
		}
	}

	if len(parts) == 0 {
		return "", fmt.Errorf("no text parts in response")
	}

	return strings.Join(parts, ""), nil
}
