// Package gemini provides the review model client backed by the Google
// Gemini API.
package gemini

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"codesage_backend/internal/config"
	"codesage_backend/internal/feature/review/usecase"
)

const (
	// systemInstruction pins the model's role for every request.
	systemInstruction = "You are an expert code reviewer. Provide detailed, constructive feedback."

	// maxOutputTokens bounds the model's output length.
	maxOutputTokens = 1000

	// temperature sets the model's creativity parameter.
	temperature = 0.7
)

// GeminiReviewer generates code reviews through the Gemini API.
type GeminiReviewer struct {
	client *genai.Client
	model  string
}

// Compile-time check that GeminiReviewer implements Reviewer.
var _ usecase.Reviewer = (*GeminiReviewer)(nil)

// NewGeminiReviewer creates a new GeminiReviewer with an API-key backed
// client.
func NewGeminiReviewer(ctx context.Context, cfg config.GeminiConfig) (*GeminiReviewer, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	return &GeminiReviewer{client: client, model: cfg.Model}, nil
}

// Complete sends the prompt to the model and returns its raw text output.
// The response is requested as JSON; schema validation stays with the caller.
func (g *GeminiReviewer) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt),
		&genai.GenerateContentConfig{
			SystemInstruction: genai.NewContentFromText(systemInstruction, genai.RoleUser),
			Temperature:       genai.Ptr[float32](temperature),
			MaxOutputTokens:   maxOutputTokens,
			ResponseMIMEType:  "application/json",
		})
	if err != nil {
		return "", fmt.Errorf("gemini API request failed: %w", err)
	}

	return resp.Text(), nil
}
