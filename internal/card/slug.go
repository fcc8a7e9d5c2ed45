package card

import "strings"

// latinFold maps the accented characters that show up in Spanish names to
// their ASCII equivalents before slugification.
var latinFold = map[rune]string{
	'á': "a", 'à': "a", 'ä': "a", 'â': "a", 'ã': "a",
	'é': "e", 'è': "e", 'ë': "e", 'ê': "e",
	'í': "i", 'ì': "i", 'ï': "i", 'î': "i",
	'ó': "o", 'ò': "o", 'ö': "o", 'ô': "o", 'õ': "o",
	'ú': "u", 'ù': "u", 'ü': "u", 'û': "u",
	'ñ': "n", 'ç': "c",
}

// NormalizeSlug converts any string to a URL-safe lowercase token:
// accents folded, everything outside [a-z0-9] collapsed to single hyphens,
// no leading or trailing hyphen.
func NormalizeSlug(s string) string {
	var b strings.Builder

	lastHyphen := true // suppress leading hyphen

	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		if folded, ok := latinFold[r]; ok {
			b.WriteString(folded)
			lastHyphen = false

			continue
		}

		switch {
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'):
			b.WriteRune(r)
			lastHyphen = false
		case !lastHyphen:
			b.WriteByte('-')
			lastHyphen = true
		}
	}

	return strings.TrimSuffix(b.String(), "-")
}

// SuggestSlug proposes "name-lastname"; if either part is missing it uses
// the other alone.
func SuggestSlug(name, lastName string) string {
	parts := make([]string, 0, 2)

	for _, p := range []string{name, lastName} {
		if strings.TrimSpace(p) != "" {
			parts = append(parts, p)
		}
	}

	return NormalizeSlug(strings.Join(parts, "-"))
}
