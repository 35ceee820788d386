// Package recursivesplit splits text into chunks no larger than a target
// size, preferring paragraph, line, sentence and word boundaries in that
// order. Size is measured by a configurable length function: bytes, runes,
// graphemes, words, or tokens from tiktoken, HuggingFace, Anthropic or Gemini
// tokenizers.
package recursivesplit

import (
	"errors"
	"log/slog"

	"github.com/botirk38/recursivesplit/chunker"
	"github.com/botirk38/recursivesplit/options"
	"github.com/botirk38/recursivesplit/types"
)

// Splitter splits text into size-bounded chunks. It is safe for concurrent
// use when its length function is.
type Splitter struct {
	chunker *chunker.RecursiveChunker
	backend types.CountBackend
}

var _ chunker.Chunker = (*Splitter)(nil)

// New creates a Splitter with functional options.
// Without options it measures bytes with chunk size 512 and no overlap.
// The Splitter owns the count backend: it is closed by Close, or right away
// when construction fails.
func New(opts ...options.Option) (s *Splitter, err error) {
	cfg := options.NewConfig()
	defer func() {
		if err != nil && cfg.CountBackend != nil {
			_ = cfg.CountBackend.Close()
		}
	}()

	if err := cfg.Apply(opts...); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	length, err := cfg.LengthFunc()
	if err != nil {
		return nil, err
	}

	s, err = NewSplitter(cfg.Chunk, length)
	if err != nil {
		return nil, err
	}
	s.backend = cfg.CountBackend

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	effective := s.chunker.Config()
	logger.Debug("splitter created",
		"chunk_size", effective.ChunkSize,
		"chunk_overlap", effective.ChunkOverlap,
		"separators", len(effective.Separators),
		"trim", effective.Trim,
		"length", string(cfg.Kind),
		"custom_length", cfg.Length != nil,
		"count_cache", cfg.CountBackend != nil)

	return s, nil
}

// NewSplitter creates a Splitter from an explicit configuration and length function.
func NewSplitter(config chunker.ChunkConfig, length types.LengthFunc) (*Splitter, error) {
	if length == nil {
		return nil, errors.New("length function cannot be nil")
	}

	c, err := chunker.NewRecursiveChunker(config, length)
	if err != nil {
		return nil, err
	}

	return &Splitter{chunker: c}, nil
}

// Config returns the effective configuration.
func (s *Splitter) Config() chunker.ChunkConfig {
	return s.chunker.Config()
}

// CountTokens measures text with the configured length function.
func (s *Splitter) CountTokens(text string) int {
	return s.chunker.CountTokens(text)
}

// SplitText splits text into ordered chunks.
func (s *Splitter) SplitText(text string) []string {
	return s.chunker.SplitText(text)
}

// ChunkText splits text and annotates each chunk with its index and size.
func (s *Splitter) ChunkText(text string) []chunker.Chunk {
	return s.chunker.ChunkText(text)
}

// Close releases the count cache backend, if any.
func (s *Splitter) Close() error {
	if s.backend == nil {
		return nil
	}
	return s.backend.Close()
}
