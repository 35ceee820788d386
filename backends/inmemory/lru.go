package inmemory

import (
	"context"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/botirk38/recursivesplit/types"
)

// LRUBackend implements CountBackend using LRU eviction policy.
// The underlying cache is synchronized, so no extra locking is needed.
type LRUBackend struct {
	cache *lru.Cache[string, int]
}

// NewLRUBackend creates a new LRU backend
func NewLRUBackend(config types.BackendConfig) (*LRUBackend, error) {
	lruCache, err := lru.New[string, int](config.Capacity)
	if err != nil {
		return nil, err
	}

	return &LRUBackend{cache: lruCache}, nil
}

// Set stores a count in the LRU cache
func (b *LRUBackend) Set(ctx context.Context, key string, count int) error {
	b.cache.Add(key, count)
	return nil
}

// Get retrieves a count from the LRU cache and marks it as recently used
func (b *LRUBackend) Get(ctx context.Context, key string) (int, bool, error) {
	count, ok := b.cache.Get(key)
	return count, ok, nil
}

// Delete removes a count from the LRU cache
func (b *LRUBackend) Delete(ctx context.Context, key string) error {
	b.cache.Remove(key)
	return nil
}

// Contains checks if a key exists in the LRU cache
func (b *LRUBackend) Contains(ctx context.Context, key string) (bool, error) {
	return b.cache.Contains(key), nil
}

// Flush clears all counts from the LRU cache
func (b *LRUBackend) Flush(ctx context.Context) error {
	b.cache.Purge()
	return nil
}

// Len returns the number of counts in the LRU cache
func (b *LRUBackend) Len(ctx context.Context) (int, error) {
	return b.cache.Len(), nil
}

// Close closes the LRU backend (no-op for in-memory)
func (b *LRUBackend) Close() error {
	return nil
}
