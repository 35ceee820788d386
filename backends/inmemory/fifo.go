package inmemory

import (
	"context"
	"sync"

	"github.com/botirk38/recursivesplit/types"
)

// FIFOBackend implements CountBackend using FIFO (First In, First Out) eviction policy
type FIFOBackend struct {
	mu       *sync.RWMutex
	counts   map[string]int
	queue    []string
	capacity int
}

// NewFIFOBackend creates a new FIFO backend. A non-positive capacity means
// the backend is unbounded.
func NewFIFOBackend(config types.BackendConfig) (*FIFOBackend, error) {
	return &FIFOBackend{
		mu:       &sync.RWMutex{},
		counts:   make(map[string]int),
		queue:    make([]string, 0, max(config.Capacity, 0)),
		capacity: config.Capacity,
	}, nil
}

// Set stores a count in the FIFO cache
func (b *FIFOBackend) Set(ctx context.Context, key string, count int) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	// Updating an existing key keeps its position in the queue
	if _, exists := b.counts[key]; exists {
		b.counts[key] = count
		return nil
	}

	// If at capacity, evict the oldest entry (FIFO)
	if len(b.counts) >= b.capacity && b.capacity > 0 {
		oldestKey := b.queue[0]
		b.queue = b.queue[1:]
		delete(b.counts, oldestKey)
	}

	b.counts[key] = count
	b.queue = append(b.queue, key)
	return nil
}

// Get retrieves a count from the FIFO cache
func (b *FIFOBackend) Get(ctx context.Context, key string) (int, bool, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	count, ok := b.counts[key]
	return count, ok, nil
}

// Delete removes a count from the FIFO cache
func (b *FIFOBackend) Delete(ctx context.Context, key string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, exists := b.counts[key]; !exists {
		return nil
	}
	delete(b.counts, key)

	for i, qKey := range b.queue {
		if qKey == key {
			b.queue = append(b.queue[:i], b.queue[i+1:]...)
			break
		}
	}
	return nil
}

// Contains checks if a key exists in the FIFO cache
func (b *FIFOBackend) Contains(ctx context.Context, key string) (bool, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	_, exists := b.counts[key]
	return exists, nil
}

// Flush clears all counts from the FIFO cache
func (b *FIFOBackend) Flush(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.counts = make(map[string]int)
	b.queue = make([]string, 0, max(b.capacity, 0))
	return nil
}

// Len returns the number of counts in the FIFO cache
func (b *FIFOBackend) Len(ctx context.Context) (int, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return len(b.counts), nil
}

// Close closes the FIFO backend (no-op for in-memory)
func (b *FIFOBackend) Close() error {
	return nil
}
