package card

import "strings"

// DefaultCountryCode is assumed when a WhatsApp number arrives without an
// international prefix. The product launched in Colombia.
const DefaultCountryCode = "57"

// NormalizeWhatsApp converts user phone input to an E.164 digit string
// ("+573001234567"). Rules:
//   - everything except digits and a leading + is stripped
//   - a "00" international prefix becomes "+"
//   - input already carrying + (or the default country code) is kept as is
//   - otherwise leading zeros are dropped and the default country code is
//     prepended
//
// The number is valid iff the total digit count is between 8 and 15. The
// returned string is always the best-effort E.164 form, even when invalid.
func NormalizeWhatsApp(input, defaultCC string) (e164 string, valid bool) {
	if defaultCC == "" {
		defaultCC = DefaultCountryCode
	}

	defaultCC = strings.TrimPrefix(defaultCC, "+")

	s := strings.TrimSpace(input)

	var b strings.Builder

	for i, r := range s {
		if r >= '0' && r <= '9' || (r == '+' && i == 0) {
			b.WriteRune(r)
		}
	}

	s = b.String()

	if strings.HasPrefix(s, "00") {
		s = "+" + s[2:]
	}

	digits := strings.TrimPrefix(s, "+")

	switch {
	case strings.HasPrefix(s, "+"):
		// explicit international form
	case strings.HasPrefix(digits, defaultCC):
		// national input that already includes the country code
	default:
		digits = defaultCC + strings.TrimLeft(digits, "0")
	}

	return "+" + digits, len(digits) >= 8 && len(digits) <= 15
}
