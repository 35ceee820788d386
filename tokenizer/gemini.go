package tokenizer

import (
	"context"
	"fmt"
	"os"

	"google.golang.org/genai"

	"github.com/botirk38/recursivesplit/types"
)

// DefaultGeminiModel is used when no model sub-kind is given.
const DefaultGeminiModel = "gemini-2.0-flash"

// GeminiTokenizer counts tokens with Gemini's token counting endpoint
type GeminiTokenizer struct {
	client *genai.Client
	model  string
}

// NewGeminiTokenizer creates a new GeminiTokenizer with the provided client and model
func NewGeminiTokenizer(client *genai.Client, model string) *GeminiTokenizer {
	if model == "" {
		model = DefaultGeminiModel
	}
	return &GeminiTokenizer{
		client: client,
		model:  model,
	}
}

// CountTokens counts the tokens of text as a single user content.
// This makes an API call to Gemini's token counting endpoint.
func (t *GeminiTokenizer) CountTokens(ctx context.Context, text string) (int, error) {
	if text == "" {
		return 0, nil
	}

	// Client is required for Gemini token counting
	if t.client == nil {
		return 0, fmt.Errorf("gemini client is required for token counting")
	}

	result, err := t.client.Models.CountTokens(ctx, t.model, genai.Text(text), nil)
	if err != nil {
		return 0, fmt.Errorf("gemini token counting failed: %w", err)
	}

	return int(result.TotalTokens), nil
}

// NewGemini returns a length function that counts tokens remotely for the
// given model. If cfg.APIKey is empty, it uses os.Getenv("GEMINI_API_KEY").
func NewGemini(model string, cfg Config) (types.LengthFunc, error) {
	apiKey := cfg.APIKey
	if apiKey == "" {
		apiKey = os.Getenv("GEMINI_API_KEY")
		if apiKey == "" {
			return nil, fmt.Errorf("gemini: %w", ErrMissingAPIKey)
		}
	}

	clientCfg := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.BaseURL != "" {
		clientCfg.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}

	client, err := genai.NewClient(context.Background(), clientCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	t := NewGeminiTokenizer(client, model)

	return cfg.guard("gemini/"+t.model, withTimeout(cfg, t.CountTokens)), nil
}
