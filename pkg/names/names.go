// Package names canonicalizes free-text courier names so that rows typed
// with different accents, casing or stray spaces group together.
package names

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripMarks decomposes to NFD and drops combining marks ("João" -> "Joao").
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize returns the canonical grouping key for a display name:
// diacritics stripped, lower-cased, surrounding whitespace trimmed.
// Empty input normalizes to the empty string. The display name itself is
// never modified; the normalized form lives alongside it.
func Normalize(name string) string {
	if name == "" {
		return ""
	}

	stripped, _, err := transform.String(stripMarks, name)
	if err != nil {
		// Transform only fails on invalid UTF-8; fall back to the raw text.
		stripped = name
	}

	return strings.TrimSpace(strings.ToLower(stripped))
}
