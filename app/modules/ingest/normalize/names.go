package normalize

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// SplitStyle selects how a composite "handle / legal name" cell is split.
type SplitStyle int

const (
	// SplitBare splits on any "/" and trims both sides ("Yosam/Yohanes Samuel").
	SplitBare SplitStyle = iota
	// SplitSpaced splits only on " / "; a slash without surrounding spaces is kept.
	SplitSpaced
)

func (s SplitStyle) String() string {
	switch s {
	case SplitBare:
		return "bare"
	case SplitSpaced:
		return "spaced"
	default:
		return "unknown"
	}
}

func (s SplitStyle) separator() string {
	if s == SplitSpaced {
		return " / "
	}
	return "/"
}

// SplitName splits raw into its primary and secondary segments. ok is false when the separator
// does not occur, in which case primary is the trimmed raw name and secondary is empty. Only
// the first two segments are used.
func SplitName(raw string, style SplitStyle) (primary, secondary string, ok bool) {
	raw = strings.TrimSpace(raw)
	parts := strings.Split(raw, style.separator())
	if len(parts) < 2 {
		return raw, "", false
	}
	return strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1]), true
}

// Initials derives two display characters from a display name: the leading letter or digit of
// each of the first two whitespace-separated tokens, or the first two characters when there is
// a single token. Short names give short results ("X" -> "X"). The result is upper-cased.
func Initials(displayName string) string {
	tokens := strings.Fields(displayName)
	if len(tokens) >= 2 {
		return strings.ToUpper(string(leadingRune(tokens[0])) + string(leadingRune(tokens[1])))
	}

	name := strings.TrimSpace(displayName)
	if utf8.RuneCountInString(name) <= 2 {
		return strings.ToUpper(name)
	}
	return strings.ToUpper(string([]rune(name)[:2]))
}

// leadingRune returns the first letter or digit of token, skipping punctuation such as the
// "(" of "(rovo)". A token without any falls back to its first rune.
func leadingRune(token string) rune {
	for _, r := range token {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return r
		}
	}
	r, _ := utf8.DecodeRuneInString(token)
	return r
}

// Handle derives a machine-usable username: lower-cased with each whitespace run replaced by
// a single underscore.
func Handle(displayName string) string {
	return strings.Join(strings.Fields(strings.ToLower(displayName)), "_")
}

// Category trims and upper-cases a division label.
func Category(raw string) string {
	return strings.ToUpper(strings.TrimSpace(raw))
}
