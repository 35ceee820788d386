package chunker

// Chunker defines the interface for text splitting strategies.
type Chunker interface {
	// SplitText splits text into ordered chunk strings.
	SplitText(text string) []string

	// ChunkText splits text and annotates each chunk with its position
	// and measured size.
	ChunkText(text string) []Chunk

	// CountTokens measures text with the configured length function.
	CountTokens(text string) int
}

// ChunkConfig holds configuration for recursive splitting.
type ChunkConfig struct {
	// ChunkSize is the target maximum size of a chunk, in length-function units.
	// Default: 512
	ChunkSize int

	// ChunkOverlap is the desired overlap between consecutive chunks.
	// It must be smaller than ChunkSize.
	// Default: 0
	ChunkOverlap int

	// Separators are the split boundaries, highest priority first. The empty
	// separator is appended if not already last. When nil, DefaultSeparators
	// is used.
	Separators []string

	// Trim strips whitespace from every chunk and drops chunks that end up empty.
	Trim bool
}

// Chunk represents a single chunk of text with its metadata.
type Chunk struct {
	// Text is the chunk content
	Text string

	// Index is the chunk's position in the output (0-based)
	Index int

	// Tokens is the size of Text as measured by the length function
	Tokens int
}

// DefaultSeparators returns paragraph, line, ideographic full stop, sentence
// and word boundaries, in that order.
func DefaultSeparators() []string {
	return []string{"\n\n", "\n", "。", ". ", " "}
}

// DefaultChunkConfig returns the default splitting configuration.
func DefaultChunkConfig() ChunkConfig {
	return ChunkConfig{
		ChunkSize:    512,
		ChunkOverlap: 0,
		Separators:   DefaultSeparators(),
		Trim:         false,
	}
}

// Validate checks if the chunk configuration is valid.
func (c ChunkConfig) Validate() error {
	if c.ChunkSize <= 0 {
		return ErrInvalidChunkSize
	}

	if c.ChunkOverlap < 0 {
		return ErrInvalidOverlap
	}
	// Eviction during merge is ill-defined once the overlap can hold a whole chunk.
	if c.ChunkOverlap >= c.ChunkSize {
		return ErrOverlapTooLarge
	}

	return nil
}
