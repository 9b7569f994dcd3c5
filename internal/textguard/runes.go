package textguard

import (
	"unicode"

	"golang.org/x/text/unicode/bidi"
)

// isInvisible reports zero-width and bidirectional formatting characters,
// the usual tools for hiding or reordering visible text.
func isInvisible(r rune) bool {
	switch r {
	case '\u200B', '\u200C', '\u200D', '\u2060', '\uFEFF', '\u180E',
		'\u200E', '\u200F', '\u061C':
		return true
	}
	return (r >= '\u202A' && r <= '\u202E') || (r >= '\u2066' && r <= '\u2069')
}

// isControl covers the C0 range, DEL and the C1 range.
func isControl(r rune) bool {
	return r < 0x20 || (r >= 0x7F && r <= 0x9F)
}

// isSuspiciousControl is isControl minus the layout characters a multi-line
// prompt legitimately contains.
func isSuspiciousControl(r rune) bool {
	switch r {
	case '\t', '\n', '\r':
		return false
	}
	return isControl(r)
}

func isPrivateUse(r rune) bool {
	return unicode.Is(unicode.Co, r)
}

func isCombiningMark(r rune) bool {
	return unicode.In(r, unicode.Mn, unicode.Me)
}

func isRightToLeft(r rune) bool {
	if unicode.Is(unicode.Arabic, r) || unicode.Is(unicode.Hebrew, r) {
		return true
	}
	props, _ := bidi.LookupRune(r)
	switch props.Class() {
	case bidi.R, bidi.AL:
		return true
	}
	return false
}
