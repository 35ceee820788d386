package backends

import (
	"errors"

	"github.com/botirk38/recursivesplit/backends/inmemory"
	"github.com/botirk38/recursivesplit/backends/remote"
	"github.com/botirk38/recursivesplit/types"
)

var ErrUnsupportedBackend = errors.New("unsupported backend type")

// BackendFactory creates count backends based on type and configuration
type BackendFactory struct{}

// NewBackend creates a new count backend of the specified type
func (f *BackendFactory) NewBackend(backendType types.BackendType, config types.BackendConfig) (types.CountBackend, error) {
	switch backendType {
	case types.BackendLRU:
		return NewLRUBackend(config)
	case types.BackendFIFO:
		return NewFIFOBackend(config)
	case types.BackendLFU:
		return NewLFUBackend(config)
	case types.BackendRedis:
		return NewRedisBackend(config)
	default:
		return nil, ErrUnsupportedBackend
	}
}

// NewLRUBackend creates a new LRU backend
func NewLRUBackend(config types.BackendConfig) (types.CountBackend, error) {
	b, err := inmemory.NewLRUBackend(config)
	if err != nil {
		return nil, err
	}
	return b, nil
}

// NewFIFOBackend creates a new FIFO backend
func NewFIFOBackend(config types.BackendConfig) (types.CountBackend, error) {
	return inmemory.NewFIFOBackend(config)
}

// NewLFUBackend creates a new LFU backend
func NewLFUBackend(config types.BackendConfig) (types.CountBackend, error) {
	return inmemory.NewLFUBackend(config)
}

// NewRedisBackend creates a new Redis backend
func NewRedisBackend(config types.BackendConfig) (types.CountBackend, error) {
	b, err := remote.NewRedisBackend(config)
	if err != nil {
		return nil, err
	}
	return b, nil
}
