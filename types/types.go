package types

import (
	"context"
	"time"
)

// LengthFunc measures the size of a text span. Implementations must be
// deterministic and return a non-negative value.
type LengthFunc func(text string) int

// LengthKind names one of the built-in length function families.
type LengthKind string

const (
	LengthBytes     LengthKind = "len"
	LengthRunes     LengthKind = "chars"
	LengthGraphemes LengthKind = "graphemes"
	LengthWords     LengthKind = "words"
	LengthTikToken  LengthKind = "tiktoken"
	LengthOpenAI    LengthKind = "openai"
	LengthHugging   LengthKind = "huggingface"
	LengthAnthropic LengthKind = "anthropic"
	LengthGemini    LengthKind = "gemini"
)

// CountBackend defines the interface for token-count stores used to memoize
// length measurements outside the splitter.
type CountBackend interface {
	// Get returns the stored count for key
	Get(ctx context.Context, key string) (int, bool, error)

	// Set stores a count for key
	Set(ctx context.Context, key string, count int) error

	// Delete removes a stored count
	Delete(ctx context.Context, key string) error

	// Contains checks if a key exists without affecting recency
	Contains(ctx context.Context, key string) (bool, error)

	// Flush clears all stored counts
	Flush(ctx context.Context) error

	// Len returns the number of stored counts
	Len(ctx context.Context) (int, error)

	// Close releases resources held by the backend
	Close() error
}

// BackendConfig provides configuration options for count backends
type BackendConfig struct {
	// For in-memory stores
	Capacity int

	// For Redis
	ConnectionString string
	Username         string
	Password         string
	Database         int
	TTL              time.Duration

	// Additional options
	Options map[string]any
}

// BackendType represents the type of count backend
type BackendType string

const (
	BackendLRU   BackendType = "lru"
	BackendFIFO  BackendType = "fifo"
	BackendLFU   BackendType = "lfu"
	BackendRedis BackendType = "redis"
)

// EmbeddingProvider turns chunk texts into embedding vectors.
type EmbeddingProvider interface {
	// EmbedTexts embeds every input and returns one vector per input, in order.
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
	// Close frees any resources held by the provider.
	Close()
}
