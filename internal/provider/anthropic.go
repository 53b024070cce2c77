package provider

import (
	"context"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

const anthropicID = "anthropic"

const anthropicMaxTokens = 8192

// Anthropic calls the Anthropic Messages API.
type Anthropic struct {
	client anthropic.Client
}

// NewAnthropic constructs the Anthropic gateway. The API key is read from
// ANTHROPIC_API_KEY.
func NewAnthropic() (*Anthropic, error) {
	apiKey, err := apiKeyFromEnv(anthropicID, "ANTHROPIC_API_KEY")
	if err != nil {
		return nil, err
	}
	client := anthropic.NewClient(option.WithAPIKey(apiKey))
	return &Anthropic{client: client}, nil
}

// Invoke implements Gateway.
func (a *Anthropic) Invoke(ctx context.Context, model, prompt string) (string, error) {
	resp, err := a.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(model),
		MaxTokens: anthropicMaxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return "", classify(anthropicID, err)
	}

	var sb strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}
	text := strings.TrimSpace(sb.String())
	if text == "" {
		return "", refusal(anthropicID, "message contained no text blocks")
	}
	return text, nil
}
