package services

import (
	"strings"
	"unicode"
)

// NormalizeName folds a borrower name into its matching form: surrounding
// whitespace dropped, internal runs collapsed to one space, lowercased.
// Running it twice gives the same result.
func NormalizeName(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

// NormalizeMobile trims a mobile number. No case folding, it is numeric.
func NormalizeMobile(s string) string {
	return strings.TrimSpace(s)
}

// NormalizeAddress trims and collapses whitespace without case folding;
// addresses are not part of the match key.
func NormalizeAddress(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// TitleCase is the read-time presentation form: whitespace-normalized with
// each word's first letter upper-cased and the rest lower-cased. Stored
// values stay normalized; this is never written back.
func TitleCase(s string) string {
	words := strings.Fields(strings.ToLower(s))
	for i, w := range words {
		r := []rune(w)
		r[0] = unicode.ToUpper(r[0])
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}
