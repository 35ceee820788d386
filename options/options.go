// Package options provides functional options for configuring Splitter instances.
package options

import (
	"errors"
	"log/slog"

	"github.com/botirk38/recursivesplit/backends"
	"github.com/botirk38/recursivesplit/chunker"
	"github.com/botirk38/recursivesplit/countcache"
	"github.com/botirk38/recursivesplit/tokenizer"
	"github.com/botirk38/recursivesplit/types"
)

// ErrCountNamespaceRequired indicates a custom length function is cached
// without a namespace to keep its counts apart from other functions.
var ErrCountNamespaceRequired = errors.New("count cache namespace is required for a custom length function - use WithCountCacheNamespace")

// Option represents a configuration option for a Splitter
type Option func(*Config) error

// Config holds the configuration for building a Splitter
type Config struct {
	Chunk chunker.ChunkConfig

	// Kind and SubKind select a built-in length function. Ignored when
	// Length is set.
	Kind    types.LengthKind
	SubKind string

	// Length is a caller-supplied length function.
	Length types.LengthFunc

	Tokenizer tokenizer.Config

	// CountBackend memoizes counts under CountNamespace. The namespace
	// defaults to "kind:subkind" for built-in kinds.
	CountBackend   types.CountBackend
	CountNamespace string

	Logger *slog.Logger
}

// NewConfig creates a new configuration with default values
func NewConfig() *Config {
	return &Config{
		Chunk: chunker.DefaultChunkConfig(),
		Kind:  types.LengthBytes,
	}
}

// Apply applies all the given options to the config
func (c *Config) Apply(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return err
		}
	}
	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if err := c.Chunk.Validate(); err != nil {
		return err
	}
	if c.Length == nil && c.Kind == "" {
		return errors.New("length function is required - use WithTokenizer or WithLengthFunction")
	}
	if c.Length != nil && c.CountBackend != nil && c.CountNamespace == "" {
		return ErrCountNamespaceRequired
	}
	return nil
}

// LengthFunc resolves the configured length function, wrapped with the
// count cache when one is set. Tokenizer files and clients are loaded here,
// once per call.
func (c *Config) LengthFunc() (types.LengthFunc, error) {
	length := c.Length
	namespace := c.CountNamespace

	if length == nil {
		tcfg := c.Tokenizer
		if tcfg.Logger == nil {
			tcfg.Logger = c.Logger
		}

		var err error
		length, err = tokenizer.New(c.Kind, c.SubKind, tcfg)
		if err != nil {
			return nil, err
		}
		if namespace == "" {
			namespace = string(c.Kind) + ":" + c.SubKind
		}
	}

	return countcache.Wrap(length, c.CountBackend, namespace, c.Logger), nil
}

// WithChunkSize sets the target maximum chunk size
func WithChunkSize(size int) Option {
	return func(cfg *Config) error {
		cfg.Chunk.ChunkSize = size
		return nil
	}
}

// WithChunkOverlap sets the desired overlap between consecutive chunks
func WithChunkOverlap(overlap int) Option {
	return func(cfg *Config) error {
		cfg.Chunk.ChunkOverlap = overlap
		return nil
	}
}

// WithSeparators replaces the separator list, highest priority first
func WithSeparators(separators ...string) Option {
	return func(cfg *Config) error {
		if len(separators) == 0 {
			return errors.New("at least one separator is required")
		}
		cfg.Chunk.Separators = append([]string(nil), separators...)
		return nil
	}
}

// WithTrim enables or disables whitespace trimming of chunks
func WithTrim(trim bool) Option {
	return func(cfg *Config) error {
		cfg.Chunk.Trim = trim
		return nil
	}
}

// WithTokenizer selects a built-in length function by kind and sub-kind
// (encoding name, model name, or tokenizer file path).
func WithTokenizer(kind types.LengthKind, subKind string) Option {
	return func(cfg *Config) error {
		cfg.Kind = kind
		cfg.SubKind = subKind
		cfg.Length = nil
		return nil
	}
}

// WithHuggingFaceFile measures text with a tokenizer.json file
func WithHuggingFaceFile(path string) Option {
	return WithTokenizer(types.LengthHugging, path)
}

// WithLengthFunction allows using a custom length function
func WithLengthFunction(fn types.LengthFunc) Option {
	return func(cfg *Config) error {
		if fn == nil {
			return errors.New("length function cannot be nil")
		}
		cfg.Length = fn
		return nil
	}
}

// WithTokenizerAPIKey sets the API key for remote tokenizers
func WithTokenizerAPIKey(apiKey string) Option {
	return func(cfg *Config) error {
		cfg.Tokenizer.APIKey = apiKey
		return nil
	}
}

// WithFallback sets how texts whose tokenization failed are measured
func WithFallback(fn tokenizer.FallbackFunc) Option {
	return func(cfg *Config) error {
		if fn == nil {
			return errors.New("fallback cannot be nil")
		}
		cfg.Tokenizer.Fallback = fn
		return nil
	}
}

// WithLRUCountCache memoizes counts in an LRU in-memory backend
func WithLRUCountCache(capacity int) Option {
	return func(cfg *Config) error {
		backend, err := backends.NewLRUBackend(types.BackendConfig{
			Capacity: capacity,
		})
		if err != nil {
			return err
		}
		cfg.setCountBackend(backend)
		return nil
	}
}

// WithFIFOCountCache memoizes counts in a FIFO in-memory backend
func WithFIFOCountCache(capacity int) Option {
	return func(cfg *Config) error {
		backend, err := backends.NewFIFOBackend(types.BackendConfig{
			Capacity: capacity,
		})
		if err != nil {
			return err
		}
		cfg.setCountBackend(backend)
		return nil
	}
}

// WithLFUCountCache memoizes counts in an LFU in-memory backend
func WithLFUCountCache(capacity int) Option {
	return func(cfg *Config) error {
		backend, err := backends.NewLFUBackend(types.BackendConfig{
			Capacity: capacity,
		})
		if err != nil {
			return err
		}
		cfg.setCountBackend(backend)
		return nil
	}
}

// WithRedisCountCache memoizes counts in Redis, shared across processes
func WithRedisCountCache(addr string, db int) Option {
	return func(cfg *Config) error {
		backend, err := backends.NewRedisBackend(types.BackendConfig{
			ConnectionString: addr,
			Database:         db,
		})
		if err != nil {
			return err
		}
		cfg.setCountBackend(backend)
		return nil
	}
}

// WithCustomCountCache allows using a pre-configured count backend
func WithCustomCountCache(backend types.CountBackend) Option {
	return func(cfg *Config) error {
		if backend == nil {
			return errors.New("backend cannot be nil")
		}
		cfg.setCountBackend(backend)
		return nil
	}
}

// WithCountCacheNamespace separates the cached counts of this length
// function from others sharing the same backend
func WithCountCacheNamespace(namespace string) Option {
	return func(cfg *Config) error {
		if namespace == "" {
			return errors.New("namespace cannot be empty")
		}
		cfg.CountNamespace = namespace
		return nil
	}
}

// setCountBackend installs backend, closing the one it replaces
func (c *Config) setCountBackend(backend types.CountBackend) {
	if c.CountBackend != nil && c.CountBackend != backend {
		_ = c.CountBackend.Close()
	}
	c.CountBackend = backend
}

// WithLogger sets the logger for splitter and tokenizer events
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *Config) error {
		if logger == nil {
			return errors.New("logger cannot be nil")
		}
		cfg.Logger = logger
		return nil
	}
}
