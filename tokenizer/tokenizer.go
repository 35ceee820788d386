// Package tokenizer resolves a length-function kind and sub-kind into a
// single types.LengthFunc used by the splitter.
package tokenizer

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/botirk38/recursivesplit/types"
)

var (
	// ErrUnknownTokenizerKind indicates an unsupported length-function kind
	ErrUnknownTokenizerKind = errors.New("unknown tokenizer kind")

	// ErrUnknownTokenizerSubKind indicates an unsupported encoding or model
	ErrUnknownTokenizerSubKind = errors.New("unknown tokenizer subkind")

	// ErrTokenizerFailed indicates tokenization of a text failed
	ErrTokenizerFailed = errors.New("tokenization failed")

	// ErrMissingAPIKey indicates a remote tokenizer has no credentials
	ErrMissingAPIKey = errors.New("API key is required")
)

// DefaultTimeout bounds a single remote token-count request.
const DefaultTimeout = 10 * time.Second

// Config holds settings shared by the tokenizer constructors.
type Config struct {
	// APIKey authenticates remote tokenizers. When empty, the provider's
	// environment variable is used.
	APIKey string

	// BaseURL overrides the remote API endpoint.
	BaseURL string

	// Timeout bounds each remote request. Default: DefaultTimeout
	Timeout time.Duration

	// Fallback measures a text whose tokenization failed. Default: ZeroOnError
	Fallback FallbackFunc

	// Logger receives fallback events. Default: slog.Default()
	Logger *slog.Logger
}

func (c Config) timeout() time.Duration {
	if c.Timeout <= 0 {
		return DefaultTimeout
	}
	return c.Timeout
}

func (c Config) logger() *slog.Logger {
	if c.Logger == nil {
		return slog.Default()
	}
	return c.Logger
}

// New resolves kind and subKind into a length function. It fails if the kind
// or sub-kind is unknown or the backing tokenizer cannot be loaded.
func New(kind types.LengthKind, subKind string, cfg Config) (types.LengthFunc, error) {
	switch kind {
	case types.LengthBytes:
		return Bytes, nil
	case types.LengthRunes:
		return Runes, nil
	case types.LengthGraphemes:
		return Graphemes, nil
	case types.LengthWords:
		return Words, nil
	case types.LengthTikToken, types.LengthOpenAI:
		return NewTikToken(subKind, cfg)
	case types.LengthHugging:
		return NewHuggingFace(subKind, cfg)
	case types.LengthAnthropic:
		return NewAnthropic(subKind, cfg)
	case types.LengthGemini:
		return NewGemini(subKind, cfg)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownTokenizerKind, string(kind))
	}
}
