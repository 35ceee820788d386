// Package embedding splits documents and embeds every chunk, the usual
// consumer of a recursive splitter.
package embedding

import (
	"context"
	"errors"
	"fmt"

	"github.com/botirk38/recursivesplit/chunker"
	"github.com/botirk38/recursivesplit/types"
)

// ErrNoEmbedding indicates the provider did not return one vector per chunk.
var ErrNoEmbedding = errors.New("no embedding returned for chunk")

// EmbeddedChunk is a chunk together with its embedding vector.
type EmbeddedChunk struct {
	Chunk     chunker.Chunk
	Embedding []float32
}

// Embedder chunks documents and embeds the chunks.
type Embedder struct {
	chunker  chunker.Chunker
	provider types.EmbeddingProvider
}

// NewEmbedder creates an Embedder from a chunker and an embedding provider.
func NewEmbedder(c chunker.Chunker, provider types.EmbeddingProvider) (*Embedder, error) {
	if c == nil {
		return nil, errors.New("chunker cannot be nil")
	}
	if provider == nil {
		return nil, errors.New("provider cannot be nil")
	}
	return &Embedder{chunker: c, provider: provider}, nil
}

// EmbedDocument splits text and embeds all chunks in one provider call.
// Text that produces no chunks returns nil without calling the provider.
func (e *Embedder) EmbedDocument(ctx context.Context, text string) ([]EmbeddedChunk, error) {
	chunks := e.chunker.ChunkText(text)
	if len(chunks) == 0 {
		return nil, nil
	}

	texts := make([]string, len(chunks))
	for i, c := range chunks {
		texts[i] = c.Text
	}

	vectors, err := e.provider.EmbedTexts(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("embed %d chunks: %w", len(chunks), err)
	}
	if len(vectors) != len(chunks) {
		return nil, fmt.Errorf("%w: got %d vectors for %d chunks", ErrNoEmbedding, len(vectors), len(chunks))
	}

	out := make([]EmbeddedChunk, len(chunks))
	for i, c := range chunks {
		if len(vectors[i]) == 0 {
			return nil, fmt.Errorf("%w: chunk %d", ErrNoEmbedding, i)
		}
		out[i] = EmbeddedChunk{Chunk: c, Embedding: vectors[i]}
	}
	return out, nil
}

// Close closes the underlying provider.
func (e *Embedder) Close() {
	e.provider.Close()
}
