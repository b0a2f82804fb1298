package convert

import (
	"strings"
	"unicode"
)

// standardizeSegment title-cases a project path segment and removes
// whitespace and punctuation, so "home maintenance!" becomes
// "HomeMaintenance". Underscores and digits survive; a letter following
// any non-letter starts a new word.
func standardizeSegment(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	prevLetter := false
	for _, r := range s {
		if unicode.IsLetter(r) {
			if prevLetter {
				b.WriteRune(unicode.ToLower(r))
			} else {
				b.WriteRune(unicode.ToUpper(r))
			}
			prevLetter = true
			continue
		}

		prevLetter = false
		if unicode.IsDigit(r) || r == '_' {
			b.WriteRune(r)
		}
	}

	return b.String()
}
