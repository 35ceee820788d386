package tokenizer

import (
	"bytes"
	"unicode/utf8"

	"github.com/clipperhouse/uax29/graphemes"
	"github.com/clipperhouse/uax29/words"
)

// Bytes measures text by its length in bytes.
func Bytes(text string) int {
	return len(text)
}

// Runes measures text by its number of Unicode code points.
func Runes(text string) int {
	return utf8.RuneCountInString(text)
}

// Graphemes measures text by its number of user-perceived characters
// (UAX #29 grapheme clusters).
func Graphemes(text string) int {
	if text == "" {
		return 0
	}
	return len(graphemes.SegmentAll([]byte(text)))
}

// Words measures text by its number of UAX #29 word segments, not counting
// whitespace-only segments.
func Words(text string) int {
	if text == "" {
		return 0
	}

	n := 0
	for _, seg := range words.SegmentAll([]byte(text)) {
		if len(bytes.TrimSpace(seg)) > 0 {
			n++
		}
	}
	return n
}
