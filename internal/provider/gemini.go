package provider

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

const geminiID = "gemini"

// Gemini calls the Google Gemini API through the genai SDK.
type Gemini struct {
	client *genai.Client
}

// NewGemini constructs the Gemini gateway. The API key is read from
// GEMINI_API_KEY or GOOGLE_API_KEY.
func NewGemini(ctx context.Context) (*Gemini, error) {
	apiKey, err := apiKeyFromEnv(geminiID, "GEMINI_API_KEY", "GOOGLE_API_KEY")
	if err != nil {
		return nil, err
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini client: %w", err)
	}
	return &Gemini{client: client}, nil
}

// Invoke implements Gateway.
func (g *Gemini) Invoke(ctx context.Context, model, prompt string) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, model, genai.Text(prompt), nil)
	if err != nil {
		return "", classify(geminiID, err)
	}
	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", refusal(geminiID, "empty candidate text")
	}
	return text, nil
}
