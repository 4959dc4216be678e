// Package text normalizes free text into word tokens shared by the
// lexical scorer and the embedding engine.
package text

import "strings"

// minTokenLen drops single-character noise like "a" or stray digits.
const minTokenLen = 2

// Tokenize lowercases s, treats '_' and '-' as word separators, strips
// everything outside [a-z0-9 ], and returns the remaining whitespace-split
// tokens of length >= 2, in input order. Pure and deterministic.
func Tokenize(s string) []string {
	lowered := strings.ToLower(s)

	var b strings.Builder
	b.Grow(len(lowered))
	for _, r := range lowered {
		switch {
		case r == '_' || r == '-':
			b.WriteByte(' ')
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'):
			b.WriteRune(r)
		case r == ' ' || r == '\t' || r == '\n' || r == '\r':
			b.WriteByte(' ')
			// Anything else is dropped entirely.
		}
	}

	fields := strings.Fields(b.String())
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if len(f) >= minTokenLen {
			tokens = append(tokens, f)
		}
	}
	return tokens
}

// TokenSet returns the deduplicated token set of s.
func TokenSet(s string) map[string]struct{} {
	tokens := Tokenize(s)
	set := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		set[t] = struct{}{}
	}
	return set
}

// SetOf deduplicates an already-tokenized slice.
func SetOf(tokens []string) map[string]struct{} {
	set := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		set[t] = struct{}{}
	}
	return set
}
