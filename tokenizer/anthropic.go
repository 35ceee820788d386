package tokenizer

import (
	"context"
	"fmt"
	"os"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/botirk38/recursivesplit/types"
)

// DefaultAnthropicModel is used when no model sub-kind is given.
const DefaultAnthropicModel = "claude-3-5-sonnet-20241022"

// AnthropicTokenizer counts tokens with Anthropic's token counting endpoint
type AnthropicTokenizer struct {
	client *anthropic.Client
	model  string
}

// NewAnthropicTokenizer creates a new AnthropicTokenizer with the provided client
func NewAnthropicTokenizer(client *anthropic.Client, model string) *AnthropicTokenizer {
	if model == "" {
		model = DefaultAnthropicModel
	}
	return &AnthropicTokenizer{
		client: client,
		model:  model,
	}
}

// CountTokens counts the tokens of text sent as a single user message.
// This makes an API call, so the count includes the message framing.
func (t *AnthropicTokenizer) CountTokens(ctx context.Context, text string) (int, error) {
	if text == "" {
		return 0, nil
	}

	// Client is required for Anthropic token counting
	if t.client == nil {
		return 0, fmt.Errorf("anthropic client is required for token counting")
	}

	params := anthropic.MessageCountTokensParams{
		Model: anthropic.Model(t.model),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(text)),
		},
	}

	result, err := t.client.Messages.CountTokens(ctx, params)
	if err != nil {
		return 0, fmt.Errorf("anthropic token counting failed: %w", err)
	}

	return int(result.InputTokens), nil
}

// NewAnthropic returns a length function that counts tokens remotely for the
// given model. If cfg.APIKey is empty, it uses os.Getenv("ANTHROPIC_API_KEY").
func NewAnthropic(model string, cfg Config) (types.LengthFunc, error) {
	apiKey := cfg.APIKey
	if apiKey == "" {
		apiKey = os.Getenv("ANTHROPIC_API_KEY")
		if apiKey == "" {
			return nil, fmt.Errorf("anthropic: %w", ErrMissingAPIKey)
		}
	}

	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	client := anthropic.NewClient(opts...)
	t := NewAnthropicTokenizer(&client, model)

	return cfg.guard("anthropic/"+t.model, withTimeout(cfg, t.CountTokens)), nil
}

// withTimeout adapts a context-aware counter to a plain one, bounding each
// call by the configured timeout.
func withTimeout(cfg Config, count func(ctx context.Context, text string) (int, error)) func(string) (int, error) {
	timeout := cfg.timeout()
	return func(text string) (int, error) {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return count(ctx, text)
	}
}
