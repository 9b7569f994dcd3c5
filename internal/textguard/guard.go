// Package textguard validates and sanitizes untrusted free text.
//
// Validation and sanitization are separate on purpose: Sanitize silently
// repairs benign issues on accepted fields, while Validate rejects text whose
// content itself looks abusive (spam, script spoofing, hidden characters).
package textguard

import (
	"fmt"
	"strings"
	"unicode"
)

type Kind string

const (
	KindObfuscation     Kind = "obfuscation"
	KindDiacriticFlood  Kind = "diacritic_flood"
	KindDirectionFlood  Kind = "direction_flood"
	KindSpam            Kind = "spam"
	KindSuspiciousRunes Kind = "suspicious_codepoint"
	KindBlockedTerm     Kind = "blocked_term"
)

const (
	maxCombiningRatio = 0.30
	maxRTLRatio       = 0.40
	spamRunLength     = 11
	spamWordMinLength = 4
	spamWordMaxRepeat = 20
)

// Violation is a single reason to reject a text.
type Violation struct {
	Kind    Kind
	Message string
}

func (v Violation) String() string {
	return v.Message
}

// Guard runs every content check; a zero Guard has no blocked terms.
type Guard struct {
	blocklist *blocklist
}

// New builds a Guard rejecting the given terms in addition to the built-in
// checks. Empty terms are ignored.
func New(blockedTerms []string) (*Guard, error) {
	bl, err := newBlocklist(blockedTerms)
	if err != nil {
		return nil, fmt.Errorf("build blocklist: %w", err)
	}
	return &Guard{blocklist: bl}, nil
}

var defaultGuard = &Guard{}

// Validate runs the built-in checks with no blocked terms.
func Validate(text string) []Violation {
	return defaultGuard.Validate(text)
}

// Validate runs all checks on the raw text and reports every violation found.
// It never short-circuits and never modifies the text.
func (g *Guard) Validate(text string) []Violation {
	runes := []rune(text)
	if len(runes) == 0 {
		return nil
	}

	var out []Violation
	out = append(out, checkObfuscation(runes)...)
	out = append(out, checkRatios(runes)...)
	out = append(out, checkSpam(runes)...)
	out = append(out, checkSuspicious(runes)...)
	if g != nil && g.blocklist != nil {
		out = append(out, g.blocklist.check(runes)...)
	}
	return out
}

func checkObfuscation(runes []rune) []Violation {
	for _, r := range runes {
		if isInvisible(r) {
			return []Violation{{
				Kind:    KindObfuscation,
				Message: "contains hidden zero-width or bidirectional control characters",
			}}
		}
	}
	return nil
}

func checkRatios(runes []rune) []Violation {
	var combining, rtl int
	for _, r := range runes {
		if isCombiningMark(r) {
			combining++
		}
		if isRightToLeft(r) {
			rtl++
		}
	}

	total := float64(len(runes))
	var out []Violation
	if float64(combining)/total > maxCombiningRatio {
		out = append(out, Violation{
			Kind:    KindDiacriticFlood,
			Message: "contains too many combining diacritical marks",
		})
	}
	if float64(rtl)/total > maxRTLRatio {
		out = append(out, Violation{
			Kind:    KindDirectionFlood,
			Message: "contains too many right-to-left characters",
		})
	}
	return out
}

func checkSpam(runes []rune) []Violation {
	var out []Violation

	run := 1
	for i := 1; i < len(runes); i++ {
		if runes[i] == runes[i-1] {
			run++
			if run >= spamRunLength {
				out = append(out, Violation{
					Kind:    KindSpam,
					Message: fmt.Sprintf("character %q repeated %d or more times in a row", runes[i], spamRunLength),
				})
				break
			}
			continue
		}
		run = 1
	}

	words := strings.FieldsFunc(strings.ToLower(string(runes)), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
	counts := make(map[string]int, len(words))
	for _, w := range words {
		if len([]rune(w)) < spamWordMinLength {
			continue
		}
		counts[w]++
		if counts[w] == spamWordMaxRepeat+1 {
			out = append(out, Violation{
				Kind:    KindSpam,
				Message: fmt.Sprintf("word %q repeated more than %d times", w, spamWordMaxRepeat),
			})
			break
		}
	}
	return out
}

func checkSuspicious(runes []rune) []Violation {
	var privateUse, control bool
	for _, r := range runes {
		if isPrivateUse(r) {
			privateUse = true
		}
		if isSuspiciousControl(r) {
			control = true
		}
	}

	var out []Violation
	if privateUse {
		out = append(out, Violation{
			Kind:    KindSuspiciousRunes,
			Message: "contains private use area characters",
		})
	}
	if control {
		out = append(out, Violation{
			Kind:    KindSuspiciousRunes,
			Message: "contains control characters",
		})
	}
	return out
}
