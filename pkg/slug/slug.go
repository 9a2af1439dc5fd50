// Package slug turns human readable option labels into the lowercase,
// hyphenated tokens stored in the storefront query string.
package slug

import (
	"strings"
	"unicode"
)

// Slugify lowercases and trims the label and collapses every run of
// whitespace and commas into a single hyphen. Commas separate multi values
// in the query string, so a slug never contains one.
// Slugify(Slugify(x)) == Slugify(x).
func Slugify(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return ""
	}
	var b strings.Builder
	b.Grow(len(label))
	inSpace := false
	for _, r := range label {
		if unicode.IsSpace(r) || r == ',' {
			inSpace = true
			continue
		}
		if inSpace && b.Len() > 0 {
			b.WriteByte('-')
			inSpace = false
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}

// Humanize is a best effort display form of a slug, used for breadcrumbs
// where the vocabulary label is not at hand. "m8-competition" -> "M8 Competition".
func Humanize(s string) string {
	parts := strings.Split(s, "-")
	for i, p := range parts {
		if p == "" {
			continue
		}
		r := []rune(p)
		r[0] = unicode.ToUpper(r[0])
		parts[i] = string(r)
	}
	return strings.Join(parts, " ")
}

// Equal reports whether two labels normalize to the same token.
func Equal(a, b string) bool {
	return Slugify(a) == Slugify(b)
}
