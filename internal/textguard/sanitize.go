package textguard

import (
	"strings"
	"unicode"
)

// Sanitize strips invisible formatting and control characters, collapses
// whitespace runs to a single space and trims both ends.
//
// Sanitize is idempotent: Sanitize(Sanitize(x)) == Sanitize(x).
func Sanitize(text string) string {
	if text == "" {
		return ""
	}

	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		switch {
		case isInvisible(r):
			continue
		case isControl(r):
			if unicode.IsSpace(r) {
				b.WriteByte(' ')
			}
			continue
		}
		b.WriteRune(r)
	}

	return strings.Join(strings.Fields(b.String()), " ")
}
