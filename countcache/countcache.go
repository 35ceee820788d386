// Package countcache memoizes length functions in a CountBackend.
//
// Remote tokenizers cost a network round trip per call, and the splitter
// measures the same pieces repeatedly while merging. Wrapping the length
// function with a shared backend (in-memory or Redis) avoids recounting.
package countcache

import (
	"context"
	"log/slog"
	"strconv"

	"github.com/cespare/xxhash/v2"

	"github.com/botirk38/recursivesplit/types"
)

// Key returns the backend key for text under namespace. The byte length is
// part of the key, so only texts of equal length can collide on the hash.
func Key(namespace, text string) string {
	return namespace + ":" + strconv.Itoa(len(text)) + ":" + strconv.FormatUint(xxhash.Sum64String(text), 16)
}

// Wrap returns a LengthFunc that consults backend before calling length.
// Backend failures are logged and the uncached result is returned, so the
// wrapped function never fails where length would not.
func Wrap(length types.LengthFunc, backend types.CountBackend, namespace string, logger *slog.Logger) types.LengthFunc {
	if backend == nil {
		return length
	}
	if logger == nil {
		logger = slog.Default()
	}

	return func(text string) int {
		ctx := context.Background()
		key := Key(namespace, text)

		count, found, err := backend.Get(ctx, key)
		if err != nil {
			logger.Warn("count cache lookup failed", "namespace", namespace, "error", err)
			return length(text)
		}
		if found {
			return count
		}

		count = length(text)
		if err := backend.Set(ctx, key, count); err != nil {
			logger.Warn("count cache store failed", "namespace", namespace, "error", err)
		}
		return count
	}
}
