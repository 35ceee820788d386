package tokenizer

import (
	"fmt"
	"unicode/utf8"

	"github.com/botirk38/recursivesplit/types"
)

// FallbackFunc returns the size to use for text when measuring it failed.
type FallbackFunc func(text string, err error) int

// ZeroOnError measures a failed text as empty. It is the default policy:
// splitting always completes, at the cost of accuracy for that span.
func ZeroOnError(string, error) int { return 0 }

// RunesOnError measures a failed text by its rune count.
func RunesOnError(text string, _ error) int { return utf8.RuneCountInString(text) }

func (c Config) fallback() FallbackFunc {
	if c.Fallback == nil {
		return ZeroOnError
	}
	return c.Fallback
}

// guard turns a fallible counter into a LengthFunc that routes failures
// through the configured fallback.
func (c Config) guard(name string, count func(text string) (int, error)) types.LengthFunc {
	fallback := c.fallback()
	logger := c.logger()

	return func(text string) int {
		n, err := count(text)
		if err == nil {
			return n
		}

		logger.Debug("token count failed, using fallback",
			"tokenizer", name,
			"bytes", len(text),
			"error", err)
		return max(fallback(text, fmt.Errorf("%w: %v", ErrTokenizerFailed, err)), 0)
	}
}
