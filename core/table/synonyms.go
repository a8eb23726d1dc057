package table

import (
	"strings"
	"unicode"
)

// Synonyms maps normalized column names to canonical column names.
// Keys must already be normalized (see NormalizeColumn).
type Synonyms map[string]string

// NormalizeColumn lower-cases a header and collapses every run of
// whitespace or punctuation into a single underscore.
//
//	"Amount (Liters)" -> "amount_liters"
//	" Price/Litre "   -> "price_litre"
func NormalizeColumn(name string) string {
	var b strings.Builder
	pendingSep := false
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if pendingSep && b.Len() > 0 {
				b.WriteByte('_')
			}
			pendingSep = false
			b.WriteRune(r)
			continue
		}
		pendingSep = true
	}
	return b.String()
}

// Canonical returns the canonical name for a header, or its normalized form when
// the synonym table has no entry for it.
func (s Synonyms) Canonical(name string) string {
	n := NormalizeColumn(name)
	if c, ok := s[n]; ok {
		return c
	}
	return n
}

// Merge returns a new table containing s overlaid with other.
func (s Synonyms) Merge(other Synonyms) Synonyms {
	out := make(Synonyms, len(s)+len(other))
	for k, v := range s {
		out[k] = v
	}
	for k, v := range other {
		out[NormalizeColumn(k)] = v
	}
	return out
}
