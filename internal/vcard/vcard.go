// Package vcard renders vCard 4.0 contact payloads so a card visitor can
// save the owner straight to their address book.
package vcard

import (
	"strings"
)

// Card holds the fields that end up in the vCard. FullName is the only
// required one; empty fields are omitted from the output.
type Card struct {
	FullName string
	Phone    string // E.164
	Email    string
	Org      string
	Title    string
	URL      string
	Note     string
	PhotoURL string
}

// Encode serializes the card as vCard 4.0 with CRLF line endings.
func (c *Card) Encode() string {
	last, first := splitName(c.FullName)

	lines := []string{
		"BEGIN:VCARD",
		"VERSION:4.0",
		"FN:" + escape(c.FullName),
		"N:" + escape(last) + ";" + escape(first) + ";;;",
	}

	appendIf := func(prefix, value string) {
		if value != "" {
			lines = append(lines, prefix+escape(value))
		}
	}

	appendIf("ORG:", c.Org)
	appendIf("TITLE:", c.Title)
	appendIf("TEL;TYPE=CELL:", c.Phone)
	appendIf("EMAIL;TYPE=INTERNET:", c.Email)
	appendIf("URL:", c.URL)
	appendIf("NOTE:", c.Note)
	appendIf("PHOTO;VALUE=URI:", c.PhotoURL)

	lines = append(lines, "END:VCARD")

	return strings.Join(lines, "\r\n")
}

// FileName derives a download-safe .vcf name from the full name.
func (c *Card) FileName() string {
	var b strings.Builder

	lastUnderscore := false

	for _, r := range c.FullName {
		switch {
		case r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' ||
			r >= '0' && r <= '9' || r == '.' || r == '-' || r == '_':
			b.WriteRune(r)
			lastUnderscore = false
		case !lastUnderscore:
			b.WriteByte('_')
			lastUnderscore = true
		}

		if b.Len() >= 60 {
			break
		}
	}

	name := b.String()
	if name == "" {
		name = "contact"
	}

	return name + ".vcf"
}

// splitName maps "Jane Middle Doe" onto N: semantics. The final word is
// the family name, the rest the given name.
func splitName(fullName string) (last, first string) {
	parts := strings.Fields(fullName)

	if len(parts) < 2 {
		return "", fullName
	}

	return parts[len(parts)-1], strings.Join(parts[:len(parts)-1], " ")
}

// escape protects the characters vCard treats as structural.
func escape(s string) string {
	r := strings.NewReplacer(
		"\\", "\\\\",
		";", "\\;",
		",", "\\,",
		"\n", "\\n",
		"\r", "",
	)

	return r.Replace(s)
}
