package tokenizer

import (
	"fmt"
	"sync"

	hf "github.com/sugarme/tokenizer"
	"github.com/sugarme/tokenizer/pretrained"

	"github.com/botirk38/recursivesplit/types"
)

// HuggingFaceTokenizer counts tokens with a tokenizer loaded from a
// serialized tokenizer.json file.
type HuggingFaceTokenizer struct {
	// hf.Tokenizer is not documented as safe for concurrent use.
	mu sync.Mutex
	tk *hf.Tokenizer
}

// NewHuggingFaceTokenizer loads the tokenizer file at path.
func NewHuggingFaceTokenizer(path string) (*HuggingFaceTokenizer, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: huggingface tokenizer requires a tokenizer.json path", ErrUnknownTokenizerSubKind)
	}

	tk, err := pretrained.FromFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load huggingface tokenizer %q: %w", path, err)
	}
	return &HuggingFaceTokenizer{tk: tk}, nil
}

// CountTokens counts the tokens of text without special tokens.
func (t *HuggingFaceTokenizer) CountTokens(text string) (int, error) {
	if text == "" {
		return 0, nil
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	en, err := t.tk.EncodeSingle(text, false)
	if err != nil {
		return 0, err
	}
	return len(en.Ids), nil
}

// NewHuggingFace returns a length function backed by the tokenizer file at path.
func NewHuggingFace(path string, cfg Config) (types.LengthFunc, error) {
	t, err := NewHuggingFaceTokenizer(path)
	if err != nil {
		return nil, err
	}
	return cfg.guard("huggingface", t.CountTokens), nil
}
