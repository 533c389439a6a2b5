// Package names provides canonicalization helpers for player display names.
// All functions are pure and total; garbage in yields empty strings, never errors.
package names

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	suffixPattern = regexp.MustCompile(`(?i)\s+(jr\.|sr\.|ii|iii|iv|v)$`)
	// NFD decomposition followed by removal of combining marks strips diacritics
	// (e.g. "Peña" -> "Pena") without touching base letters.
	deaccent = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
)

// Normalize lowercases the name, strips diacritics, replaces every
// non-letter/non-space rune with a space, collapses runs of whitespace and
// trims. Normalize is idempotent.
func Normalize(s string) string {
	s = strings.ToLower(s)
	if stripped, _, err := transform.String(deaccent, s); err == nil {
		s = stripped
	}

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= 'a' && r <= 'z' {
			b.WriteRune(r)
		} else {
			b.WriteByte(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// StripSuffix removes a trailing generational suffix (Jr., Sr., II-V),
// case-insensitively.
func StripSuffix(s string) string {
	return strings.TrimSpace(suffixPattern.ReplaceAllString(s, ""))
}

// SplitFirstLast normalizes the name, drops any generational suffix and
// returns the first and last tokens. A single token serves as both; an empty
// name yields two empty strings. Middle names are ignored.
func SplitFirstLast(s string) (first, last string) {
	parts := strings.Fields(Normalize(StripSuffix(s)))
	switch len(parts) {
	case 0:
		return "", ""
	case 1:
		return parts[0], parts[0]
	default:
		return parts[0], parts[len(parts)-1]
	}
}
