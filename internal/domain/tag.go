package domain

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Tag is a label attached to an element. Names are stored in normalized
// form; comparisons are case-insensitive on both sides.
type Tag struct {
	ID        int64  `json:"id"`
	ElementID int64  `json:"element_id"`
	Name      string `json:"name"`
	IsDeleted bool   `json:"is_deleted,omitempty"`
}

// NormalizeTagName folds a tag name to its canonical stored form:
// unicode-decomposed, ASCII-only, lower-cased, trimmed.
// "Sci-Fi" -> "sci-fi", "DRAMA " -> "drama".
// The same function is applied at write and at query time so lookups
// never depend on input casing.
func NormalizeTagName(name string) string {
	s := norm.NFKD.String(name)

	s = strings.Map(func(r rune) rune {
		if r > unicode.MaxASCII {
			return -1
		}
		return r
	}, s)

	return strings.ToLower(strings.TrimSpace(s))
}
