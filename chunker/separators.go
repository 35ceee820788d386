package chunker

import "strings"

// normalizeSeparators copies seps, substituting the defaults for an empty
// list, and guarantees the empty separator is the last element.
func normalizeSeparators(seps []string) []string {
	if len(seps) == 0 {
		seps = DefaultSeparators()
	}

	out := make([]string, 0, len(seps)+1)
	for _, s := range seps {
		out = append(out, s)
		if s == "" {
			// Anything after the catch-all can never be selected.
			return out
		}
	}
	return append(out, "")
}

// splitInclusive cuts text after every occurrence of sep, keeping sep at the
// end of each piece. The empty separator yields one piece per character.
// Empty pieces are dropped.
func splitInclusive(text, sep string) []string {
	parts := strings.SplitAfter(text, sep)

	pieces := parts[:0]
	for _, p := range parts {
		if p != "" {
			pieces = append(pieces, p)
		}
	}
	return pieces
}

// selectSeparator returns the first candidate present in the trimmed text and
// the candidates that follow it. The empty sentinel ends the search and has
// no successors.
func selectSeparator(text string, candidates []string) (string, []string) {
	trimmed := strings.TrimSpace(text)
	for i, s := range candidates {
		if s == "" {
			return "", nil
		}
		if strings.Contains(trimmed, s) {
			return s, candidates[i+1:]
		}
	}
	return "", nil
}
