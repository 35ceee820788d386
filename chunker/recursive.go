package chunker

import (
	"fmt"
	"strings"

	"github.com/botirk38/recursivesplit/types"
)

// RecursiveChunker implements the Chunker interface by descending through a
// prioritized separator list and re-merging small pieces into chunks close
// to the configured size.
type RecursiveChunker struct {
	config     ChunkConfig
	separators []string
	length     types.LengthFunc
}

// span is a piece of text together with its measured size.
type span struct {
	text string
	size int
}

var _ Chunker = (*RecursiveChunker)(nil)

// NewRecursiveChunker creates a new RecursiveChunker with the given
// configuration and length function.
func NewRecursiveChunker(config ChunkConfig, length types.LengthFunc) (*RecursiveChunker, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid chunk config: %w", err)
	}
	if length == nil {
		return nil, ErrNilLengthFunc
	}

	config.Separators = normalizeSeparators(config.Separators)

	return &RecursiveChunker{
		config:     config,
		separators: config.Separators,
		length:     length,
	}, nil
}

// Config returns the effective configuration, including the trailing empty
// separator.
func (c *RecursiveChunker) Config() ChunkConfig {
	cfg := c.config
	cfg.Separators = append([]string(nil), c.separators...)
	return cfg
}

// CountTokens measures text with the configured length function.
func (c *RecursiveChunker) CountTokens(text string) int {
	return c.length(text)
}

// SplitText splits text into ordered chunks. With trimming enabled, chunks
// are whitespace-trimmed and empty ones dropped.
func (c *RecursiveChunker) SplitText(text string) []string {
	chunks := c.descend(text, c.separators)
	if !c.config.Trim {
		return chunks
	}

	trimmed := chunks[:0]
	for _, chunk := range chunks {
		if s := strings.TrimSpace(chunk); s != "" {
			trimmed = append(trimmed, s)
		}
	}
	return trimmed
}

// ChunkText splits text and annotates every chunk with its index and size.
func (c *RecursiveChunker) ChunkText(text string) []Chunk {
	texts := c.SplitText(text)

	chunks := make([]Chunk, len(texts))
	for i, t := range texts {
		chunks[i] = Chunk{
			Text:   t,
			Index:  i,
			Tokens: c.length(t),
		}
	}
	return chunks
}

// descend splits text on the first usable separator among candidates,
// recursing into pieces that are still too large with the finer separators
// that follow it.
func (c *RecursiveChunker) descend(text string, candidates []string) []string {
	sep, next := selectSeparator(text, candidates)

	var chunks []string
	var good []span
	for _, piece := range splitInclusive(text, sep) {
		size := c.length(piece)
		if size < c.config.ChunkSize {
			good = append(good, span{text: piece, size: size})
			continue
		}

		if len(good) > 0 {
			chunks = c.merge(chunks, good)
			good = good[:0]
		}

		if len(next) == 0 {
			// Nothing finer to try; the piece is kept whole even though it
			// exceeds the chunk size.
			chunks = append(chunks, piece)
		} else {
			chunks = append(chunks, c.descend(piece, next)...)
		}
	}

	if len(good) > 0 {
		chunks = c.merge(chunks, good)
	}
	return chunks
}

// merge combines a run of pieces into chunks no larger than the chunk size,
// appending them to chunks. The window is run[start:i]; with a positive
// overlap, trailing pieces of a flushed window are retained to seed the
// next chunk.
func (c *RecursiveChunker) merge(chunks []string, run []span) []string {
	size, overlap := c.config.ChunkSize, c.config.ChunkOverlap

	start, total := 0, 0
	for i, d := range run {
		if total+d.size > size {
			chunks = appendJoined(chunks, run[start:i])

			if overlap == 0 {
				start, total = i, 0
			} else {
				for start < i && (total > overlap || (total+d.size > size && total > 0)) {
					total -= run[start].size
					start++
				}
			}
		}
		total += d.size
	}

	return appendJoined(chunks, run[start:])
}

// appendJoined concatenates the window and appends it unless it is empty.
func appendJoined(chunks []string, window []span) []string {
	n := 0
	for _, s := range window {
		n += len(s.text)
	}
	if n == 0 {
		return chunks
	}

	var b strings.Builder
	b.Grow(n)
	for _, s := range window {
		b.WriteString(s.text)
	}
	return append(chunks, b.String())
}
