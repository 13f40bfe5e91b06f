package intent

import (
	"strings"
	"unicode"
)

// Keywords is the token classification extracted from a message. PropertyName
// is the joined property-name-like tokens when any were found; it being
// non-empty is what triggers targeted property lookups in retrieval.
type Keywords struct {
	PropertyName      string
	PropertyNameWords []string
	SearchTerms       []string
	LocationTerms     []string
}

// propertySuffixes mark tokens that usually belong to a complex name.
var propertySuffixes = []string{
	"apartments", "apartment", "tower", "towers", "heights", "lofts",
	"place", "pointe", "commons", "village", "residences", "flats",
	"court", "crossing", "station", "square", "park",
}

// streetSuffixes mark location-like tokens.
var streetSuffixes = []string{
	"street", "st", "avenue", "ave", "road", "rd", "boulevard", "blvd",
	"drive", "dr", "lane", "ln", "way", "downtown", "district", "campus",
}

// stopWords are common question words that should never become search terms.
var stopWords = map[string]bool{
	"what": true, "whats": true, "where": true, "when": true, "which": true,
	"tell": true, "about": true, "show": true, "find": true, "have": true,
	"does": true, "this": true, "that": true, "with": true, "near": true,
	"around": true, "there": true, "some": true, "much": true, "many": true,
	"from": true, "like": true, "want": true, "need": true, "please": true,
}

// ExtractKeywords tokenizes on whitespace and sorts each token into
// property-name, location or generic search buckets. Tokens of length <= 2
// are discarded outright.
func ExtractKeywords(text string) Keywords {
	var kw Keywords

	for _, raw := range strings.Fields(text) {
		token := strings.Trim(raw, `.,!?"'()[]{}:;`)
		if len(token) <= 2 {
			continue
		}
		lower := strings.ToLower(token)

		switch {
		case (isCapitalized(token) && !stopWords[lower]) || hasSuffix(lower, propertySuffixes):
			kw.PropertyNameWords = append(kw.PropertyNameWords, token)
		case hasSuffix(lower, streetSuffixes):
			kw.LocationTerms = append(kw.LocationTerms, lower)
		case len(lower) > 3 && !stopWords[lower]:
			kw.SearchTerms = append(kw.SearchTerms, lower)
		}
	}

	if len(kw.PropertyNameWords) > 0 {
		kw.PropertyName = strings.Join(kw.PropertyNameWords, " ")
	}

	return kw
}

func isCapitalized(token string) bool {
	r := []rune(token)
	return unicode.IsUpper(r[0]) && !allUpper(r)
}

// allUpper filters shouty acronyms like "ASAP" out of the name bucket.
func allUpper(rs []rune) bool {
	for _, r := range rs {
		if unicode.IsLetter(r) && !unicode.IsUpper(r) {
			return false
		}
	}
	return true
}

func hasSuffix(lower string, suffixes []string) bool {
	for _, s := range suffixes {
		if lower == s {
			return true
		}
	}
	return false
}
