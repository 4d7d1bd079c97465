package slug

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// MaxLength bounds generated slugs
const MaxLength = 50

// Fallback is returned when nothing usable is left of the input
const Fallback = "untitled"

var nonAlphanumeric = regexp.MustCompile(`[^a-z0-9]+`)

// Generate turns a board name into an id: lowercase ASCII, words joined by
// single hyphens, accents folded ("Équipe Café" becomes "equipe-cafe").
func Generate(s string) string {
	return GenerateN(s, MaxLength)
}

// GenerateN is Generate with a custom length limit
func GenerateN(s string, max int) string {
	folded, _, err := transform.String(
		transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC),
		s,
	)
	if err != nil {
		folded = s
	}

	out := nonAlphanumeric.ReplaceAllString(strings.ToLower(folded), "-")
	out = strings.Trim(out, "-")
	if out == "" {
		return Fallback
	}

	if max > 0 && len(out) > max {
		out = strings.TrimRight(out[:max], "-")
	}
	return out
}
