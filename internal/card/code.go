package card

import "strings"

// CodeAlphabet is the character set used when generating short codes.
// Visually ambiguous characters (0, 1, i, l, o) are excluded because codes
// are printed on physical cards and typed by hand.
const CodeAlphabet = "abcdefghjkmnpqrstuvwxyz23456789"

// CodeLength is the fixed length of generated short codes.
const CodeLength = 4

// NormalizeCode trims and lowercases a user-typed code.
func NormalizeCode(code string) string {
	return strings.ToLower(strings.TrimSpace(code))
}

// IsCode reports whether s looks like a short code: exactly CodeLength
// characters from CodeAlphabet. The public resolver uses this to decide
// between code and slug lookup.
func IsCode(s string) bool {
	if len(s) != CodeLength {
		return false
	}

	for _, r := range s {
		if !strings.ContainsRune(CodeAlphabet, r) {
			return false
		}
	}

	return true
}
