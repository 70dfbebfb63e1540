package extractor

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// quotaMarker is the normalized token that identifies quota ("Cupos")
// columns in a header row.
const quotaMarker = "cupos"

var stripAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// NormalizeLabel canonicalizes a raw header or category label into a
// comparison key: diacritics stripped, lowercased, punctuation and
// whitespace runs collapsed into single spaces. Total and idempotent; the
// empty string maps to itself.
func NormalizeLabel(label string) string {
	lowered, _, _ := transform.String(stripAccents, strings.ToLower(label))

	var b strings.Builder
	b.Grow(len(lowered))
	for _, r := range lowered {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			continue
		}
		b.WriteByte(' ')
	}

	return strings.Join(strings.Fields(b.String()), " ")
}

// hasQuotaMarker reports whether the label contains the quota-column marker
// token once normalized.
func hasQuotaMarker(label string) bool {
	for _, token := range strings.Fields(NormalizeLabel(label)) {
		if token == quotaMarker {
			return true
		}
	}
	return false
}

// trimQuotaMarker drops a leading marker token from an already-normalized
// key, so header cells spelled "Cupos <category>" match the category table.
func trimQuotaMarker(key string) string {
	return strings.TrimSpace(strings.TrimPrefix(key, quotaMarker+" "))
}
