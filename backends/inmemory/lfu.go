package inmemory

import (
	"context"
	"math"
	"sync"

	"github.com/botirk38/recursivesplit/types"
)

// lfuEntry wraps a count with frequency tracking
type lfuEntry struct {
	count     int
	frequency int
}

// LFUBackend implements CountBackend using LFU (Least Frequently Used) eviction policy
type LFUBackend struct {
	mu       *sync.Mutex
	entries  map[string]*lfuEntry
	capacity int
}

// NewLFUBackend creates a new LFU backend. A non-positive capacity means
// the backend is unbounded.
func NewLFUBackend(config types.BackendConfig) (*LFUBackend, error) {
	return &LFUBackend{
		mu:       &sync.Mutex{},
		entries:  make(map[string]*lfuEntry),
		capacity: config.Capacity,
	}, nil
}

// Set stores a count in the LFU cache
func (b *LFUBackend) Set(ctx context.Context, key string, count int) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	// If key already exists, update it and increment frequency
	if existing, exists := b.entries[key]; exists {
		existing.count = count
		existing.frequency++
		return nil
	}

	if len(b.entries) >= b.capacity && b.capacity > 0 {
		b.evictLFU()
	}

	b.entries[key] = &lfuEntry{count: count, frequency: 1}
	return nil
}

// evictLFU removes the least frequently used entry
func (b *LFUBackend) evictLFU() {
	var lfuKey string
	minFreq := math.MaxInt

	for key, entry := range b.entries {
		if entry.frequency < minFreq {
			minFreq = entry.frequency
			lfuKey = key
		}
	}

	delete(b.entries, lfuKey)
}

// Get retrieves a count from the LFU cache and increments its frequency
func (b *LFUBackend) Get(ctx context.Context, key string) (int, bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if entry, ok := b.entries[key]; ok {
		entry.frequency++
		return entry.count, true, nil
	}
	return 0, false, nil
}

// Delete removes a count from the LFU cache
func (b *LFUBackend) Delete(ctx context.Context, key string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	delete(b.entries, key)
	return nil
}

// Contains checks if a key exists in the LFU cache (without incrementing frequency)
func (b *LFUBackend) Contains(ctx context.Context, key string) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	_, exists := b.entries[key]
	return exists, nil
}

// Flush clears all counts from the LFU cache
func (b *LFUBackend) Flush(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.entries = make(map[string]*lfuEntry)
	return nil
}

// Len returns the number of counts in the LFU cache
func (b *LFUBackend) Len(ctx context.Context) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	return len(b.entries), nil
}

// Close closes the LFU backend (no-op for in-memory)
func (b *LFUBackend) Close() error {
	return nil
}
