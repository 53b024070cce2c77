package provider

import (
	"context"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

const (
	zhipuID      = "zhipu"
	zhipuBaseURL = "https://open.bigmodel.cn/api/paas/v4"
)

// Zhipu calls the Zhipu GLM chat completions API, which is OpenAI-compatible.
type Zhipu struct {
	client openai.Client
}

// NewZhipu constructs the Zhipu gateway. The API key is read from
// ZHIPU_API_KEY.
func NewZhipu() (*Zhipu, error) {
	apiKey, err := apiKeyFromEnv(zhipuID, "ZHIPU_API_KEY")
	if err != nil {
		return nil, err
	}
	client := openai.NewClient(
		option.WithAPIKey(apiKey),
		option.WithBaseURL(zhipuBaseURL),
	)
	return &Zhipu{client: client}, nil
}

// Invoke implements Gateway.
func (z *Zhipu) Invoke(ctx context.Context, model, prompt string) (string, error) {
	resp, err := z.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
	})
	if err != nil {
		return "", classify(zhipuID, err)
	}
	if len(resp.Choices) == 0 {
		return "", refusal(zhipuID, "response contained no choices")
	}
	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		return "", refusal(zhipuID, "empty message content")
	}
	return text, nil
}
