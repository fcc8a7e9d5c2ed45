// Package render turns a stored profile into the view model a card client
// displays. It is a pure function of stored data: layout selection, palette
// defaulting, and call-to-action assembly; no mutation, no I/O.
package render

import (
	"strings"

	"github.com/viktorhino/wowkards-mvp/internal/card"
)

// Palette is the resolved two-tone color scheme.
type Palette struct {
	Primary string `json:"primary"`
	Accent  string `json:"accent"`
}

// CTA is one actionable button on the card, in display order.
type CTA struct {
	Kind  string `json:"kind"`
	Label string `json:"label"`
	Href  string `json:"href"`
	Icon  string `json:"icon"`
}

// View is the fully resolved card, ready to display.
type View struct {
	Slug      string      `json:"slug"`
	Layout    card.Layout `json:"layout"`
	Palette   Palette     `json:"palette"`
	Name      string      `json:"name"`
	LastName  string      `json:"lastName"`
	FullName  string      `json:"fullName"`
	Position  string      `json:"position,omitempty"`
	Company   string      `json:"company,omitempty"`
	MiniBio   string      `json:"miniBio,omitempty"`
	AvatarURL string      `json:"avatarUrl,omitempty"`
	CTAs      []CTA       `json:"ctas"`
}

// Build resolves a profile into its view. Unrecognized or missing layouts
// fall back to cardA; missing brand colors fall back to the default
// palette.
func Build(p *card.Profile) *View {
	layout := card.NormalizeLayout(string(p.TemplateConfig.Layout))

	return &View{
		Slug:      p.Slug,
		Layout:    layout,
		Palette:   palette(p.TemplateConfig.Brand),
		Name:      p.Name,
		LastName:  p.LastName,
		FullName:  p.FullName(),
		Position:  p.Position,
		Company:   p.Company,
		MiniBio:   p.MiniBio,
		AvatarURL: p.AvatarURL,
		CTAs:      ctas(p, layout),
	}
}

func palette(b card.Brand) Palette {
	out := Palette{Primary: b.Primary, Accent: b.Accent}

	if out.Primary == "" {
		out.Primary = card.DefaultPrimary
	}

	if out.Accent == "" {
		out.Accent = card.DefaultAccent
	}

	return out
}

// ctas assembles the buttons in the layout's order. The layouts differ only
// in ordering; the per-kind mapping is shared.
func ctas(p *card.Profile, layout card.Layout) []CTA {
	whatsapp := whatsappCTA(p.WhatsApp)
	email := emailCTA(p.Email)
	extras := extraCTAs(p.TemplateConfig.Extras)

	out := make([]CTA, 0, len(extras)+2)

	appendSome := func(groups ...[]CTA) {
		for _, g := range groups {
			out = append(out, g...)
		}
	}

	switch layout {
	case card.LayoutCardB:
		appendSome(email, whatsapp, extras)
	case card.LayoutCardC:
		appendSome(extras, whatsapp, email)
	default:
		appendSome(whatsapp, email, extras)
	}

	return out
}

func whatsappCTA(phone string) []CTA {
	if phone == "" {
		return nil
	}

	return []CTA{{
		Kind:  "whatsapp",
		Label: "WhatsApp",
		Href:  "https://wa.me/" + strings.TrimPrefix(phone, "+"),
		Icon:  "whatsapp",
	}}
}

func emailCTA(email string) []CTA {
	if email == "" {
		return nil
	}

	return []CTA{{
		Kind:  "email",
		Label: "Email",
		Href:  "mailto:" + email,
		Icon:  "email",
	}}
}

func extraCTAs(extras []card.ExtraItem) []CTA {
	out := make([]CTA, 0, len(extras))

	for _, x := range extras {
		out = append(out, CTA{
			Kind:  x.Kind,
			Label: extraLabel(x),
			Href:  extraHref(x.Kind, x.Value),
			Icon:  extraIcon(x.Kind),
		})
	}

	return out
}

func extraLabel(x card.ExtraItem) string {
	if x.Label != "" {
		return x.Label
	}

	return strings.ToUpper(x.Kind)
}

// extraHref turns a stored value (handle, address, URL) into a clickable
// link per kind. Values that are already absolute URLs pass through.
func extraHref(kind, value string) string {
	if isHTTP(value) {
		return value
	}

	handle := strings.TrimPrefix(value, "@")

	switch kind {
	case card.KindInstagram:
		return "https://instagram.com/" + handle
	case card.KindFacebook:
		return "https://facebook.com/" + handle
	case card.KindTikTok:
		return "https://tiktok.com/@" + handle
	case card.KindX:
		return "https://x.com/" + handle
	case card.KindAddress:
		return "https://maps.google.com/?q=" + strings.ReplaceAll(value, " ", "+")
	case card.KindWebsite:
		return "https://" + value
	default:
		return value
	}
}

func extraIcon(kind string) string {
	switch kind {
	case card.KindInstagram, card.KindFacebook, card.KindTikTok,
		card.KindX, card.KindAddress, card.KindWebsite:
		return kind
	default:
		return "link"
	}
}

func isHTTP(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}
