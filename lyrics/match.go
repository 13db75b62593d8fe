package lyrics

import (
	"strings"
	"unicode"

	"github.com/agnivade/levenshtein"

	"lrcfetch/model"
)

const maxLevenshteinDistance = 3

// mismatched reports whether a search result looks unrelated to the queried
// identity. Diagnostic only: the first result is always the one used.
func mismatched(identity model.TrackIdentity, result model.SearchResult) bool {
	queryKey := normalize(identity.Artist) + "|" + normalize(identity.Title)
	resultKey := normalize(result.ArtistName) + "|" + normalize(result.TrackName)
	return levenshtein.ComputeDistance(queryKey, resultKey) > maxLevenshteinDistance
}

// normalize lowercases, strips punctuation and collapses whitespace. Used
// only for comparison, never for storage or queries.
func normalize(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}

	return strings.Join(strings.Fields(b.String()), " ")
}
