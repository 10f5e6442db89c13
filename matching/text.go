package matching

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// tokenPattern matches runs of Unicode letters and digits. Go's \w is
// ASCII-only and would split accented Spanish words.
var tokenPattern = regexp.MustCompile(`[\p{L}\p{N}]+`)

// diacriticStripper decomposes characters and drops combining marks,
// turning "vías" into "vias".
var diacriticStripper = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// stripDiacritics removes accent marks from text. On a transform error the
// input is returned unchanged.
func stripDiacritics(s string) string {
	stripped, _, err := transform.String(diacriticStripper, s)
	if err != nil {
		return s
	}
	return stripped
}

// normalizeText lowercases, strips diacritics, replaces punctuation with
// spaces and collapses whitespace. Used for entity and location comparison.
func normalizeText(s string) string {
	s = stripDiacritics(strings.ToLower(s))

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		} else {
			b.WriteRune(' ')
		}
	}

	return strings.Join(strings.Fields(b.String()), " ")
}

// tokenize splits lowercased, accent-stripped text into word tokens, so
// "Interventoría" and "interventoria" produce the same token.
func tokenize(s string) []string {
	return tokenPattern.FindAllString(stripDiacritics(strings.ToLower(s)), -1)
}

// truncateRunes bounds text to at most n runes.
func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
