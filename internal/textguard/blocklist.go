package textguard

import (
	"unicode"

	goahocorasick "github.com/anknown/ahocorasick"
)

// blocklist matches configured terms with an Aho-Corasick automaton over a
// normalized form of the text, so "B.4.d-W0rd" still hits "badword".
type blocklist struct {
	matcher *goahocorasick.Machine
}

func newBlocklist(terms []string) (*blocklist, error) {
	patterns := make([][]rune, 0, len(terms))
	for _, term := range terms {
		p := normalizeRunes([]rune(term))
		if len(p) == 0 {
			continue
		}
		patterns = append(patterns, p)
	}
	if len(patterns) == 0 {
		return nil, nil
	}

	m := new(goahocorasick.Machine)
	if err := m.Build(patterns); err != nil {
		return nil, err
	}
	return &blocklist{matcher: m}, nil
}

func (b *blocklist) check(runes []rune) []Violation {
	norm := normalizeRunes(runes)
	if len(norm) == 0 {
		return nil
	}
	if len(b.matcher.MultiPatternSearch(norm, true)) == 0 {
		return nil
	}
	return []Violation{{
		Kind:    KindBlockedTerm,
		Message: "contains a blocked term",
	}}
}

// normalizeRunes lowercases, maps leet characters back to letters and drops
// punctuation, symbols, spaces and invisible characters.
func normalizeRunes(input []rune) []rune {
	out := make([]rune, 0, len(input))
	for _, r := range input {
		clean := simplifyRune(r)
		if isNoise(clean) {
			continue
		}
		out = append(out, unicode.ToLower(clean))
	}
	return out
}

func simplifyRune(r rune) rune {
	switch r {
	case '4', '@':
		return 'a'
	case '3', '€':
		return 'e'
	case '1', '!', '|':
		return 'i'
	case '0':
		return 'o'
	case '5', '$':
		return 's'
	default:
		return r
	}
}

func isNoise(r rune) bool {
	return unicode.IsPunct(r) || unicode.IsSpace(r) || unicode.IsSymbol(r) || isInvisible(r) || isControl(r)
}
