package tokenizer

import (
	"fmt"

	"github.com/tiktoken-go/tokenizer"

	"github.com/botirk38/recursivesplit/types"
)

// encodings maps tiktoken sub-kinds to their BPE encodings. The empty
// sub-kind selects cl100k_base, used by OpenAI's text-embedding-3 models.
var encodings = map[string]tokenizer.Encoding{
	"":            tokenizer.Cl100kBase,
	"cl100k_base": tokenizer.Cl100kBase,
	"p50k_base":   tokenizer.P50kBase,
	"p50k_edit":   tokenizer.P50kEdit,
	"r50k_base":   tokenizer.R50kBase,
	"o200k_base":  tokenizer.O200kBase,
}

// TikTokenizer counts tokens locally with a tiktoken BPE codec.
type TikTokenizer struct {
	codec tokenizer.Codec
}

// NewTikTokenizer loads the codec named by subKind: an encoding name such as
// "cl100k_base", or an OpenAI model name such as "gpt-4o".
func NewTikTokenizer(subKind string) (*TikTokenizer, error) {
	if enc, ok := encodings[subKind]; ok {
		codec, err := tokenizer.Get(enc)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize tokenizer %q: %w", subKind, err)
		}
		return &TikTokenizer{codec: codec}, nil
	}

	codec, err := tokenizer.ForModel(tokenizer.Model(subKind))
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTokenizerSubKind, subKind)
	}
	return &TikTokenizer{codec: codec}, nil
}

// Name returns the encoding name of the underlying codec.
func (t *TikTokenizer) Name() string {
	return t.codec.GetName()
}

// CountTokens counts the tokens of text. This is a local operation that
// doesn't require an API call.
func (t *TikTokenizer) CountTokens(text string) (int, error) {
	if text == "" {
		return 0, nil
	}

	return t.codec.Count(text)
}

// NewTikToken returns a length function backed by a tiktoken codec.
func NewTikToken(subKind string, cfg Config) (types.LengthFunc, error) {
	t, err := NewTikTokenizer(subKind)
	if err != nil {
		return nil, err
	}
	return cfg.guard("tiktoken/"+t.Name(), t.CountTokens), nil
}
