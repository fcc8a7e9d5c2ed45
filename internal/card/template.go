package card

import "strings"

// Layout selects one of the fixed visual card templates.
type Layout string

const (
	LayoutCardA Layout = "cardA"
	LayoutCardB Layout = "cardB"
	LayoutCardC Layout = "cardC"
)

// MaxExtras bounds the auxiliary contact items on a card.
const MaxExtras = 3

// Extra kinds recognized by the renderer. KindOther may repeat; every other
// kind appears at most once per card.
const (
	KindInstagram = "instagram"
	KindFacebook  = "facebook"
	KindTikTok    = "tiktok"
	KindX         = "x"
	KindAddress   = "direccion"
	KindWebsite   = "website"
	KindOther     = "other"
)

// Brand holds the two-tone color scheme of a card.
type Brand struct {
	Primary string `json:"primary,omitempty"`
	Accent  string `json:"accent,omitempty"`
}

// ExtraItem is one auxiliary contact entry (social handle, address, ...).
type ExtraItem struct {
	Kind  string `json:"kind"`
	Label string `json:"label,omitempty"`
	Value string `json:"value"`
}

// TemplateConfig is the strict, persisted display configuration of a
// profile. It only ever contains the keys below; anything else submitted by
// a client is dropped by SanitizeTemplateConfig before write time.
type TemplateConfig struct {
	Layout Layout      `json:"layout"`
	Brand  Brand       `json:"brand"`
	Extras []ExtraItem `json:"extras,omitempty"`
}

// Default brand palette when a card carries no colors of its own.
const (
	DefaultPrimary = "#0A66FF"
	DefaultAccent  = "#4FB0FF"
)

// TemplateConfigInput is the loosely-shaped client submission. Historic
// clients sent photos and job fields inside the config; those keys are
// accepted here solely so sanitization can strip them.
type TemplateConfigInput struct {
	Layout string      `json:"layout,omitempty"`
	Brand  *Brand      `json:"brand,omitempty"`
	Extras []ExtraItem `json:"extras,omitempty"`

	// Legacy keys, never persisted.
	PhotoDataURL string `json:"photoDataUrl,omitempty"`
	PhotoURL     string `json:"photo_url,omitempty"`
	Bio          string `json:"bio,omitempty"`
}

// NormalizeLayout folds the layout spellings seen in the wild onto the
// closed set, defaulting to cardA.
func NormalizeLayout(s string) Layout {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "cardb", "card-b":
		return LayoutCardB
	case "cardc", "card-c":
		return LayoutCardC
	default:
		return LayoutCardA
	}
}

// SanitizeTemplateConfig normalizes a client submission into the strict
// persisted shape. It runs exactly once, at write time:
//   - layout folded onto the closed set (default cardA)
//   - brand colors trimmed, empty brand allowed
//   - extras truncated to MaxExtras; kinds lowercased; a non-"other" kind
//     keeps only its first occurrence; entries without a value are dropped
//   - legacy photo/bio keys discarded
func SanitizeTemplateConfig(in *TemplateConfigInput) TemplateConfig {
	out := TemplateConfig{Layout: LayoutCardA}

	if in == nil {
		return out
	}

	out.Layout = NormalizeLayout(in.Layout)

	if in.Brand != nil {
		out.Brand = Brand{
			Primary: strings.TrimSpace(in.Brand.Primary),
			Accent:  strings.TrimSpace(in.Brand.Accent),
		}
	}

	seen := make(map[string]bool, len(in.Extras))

	for _, x := range in.Extras {
		if len(out.Extras) == MaxExtras {
			break
		}

		kind := strings.ToLower(strings.TrimSpace(x.Kind))
		value := strings.TrimSpace(x.Value)

		if value == "" {
			continue
		}

		if kind == "" {
			kind = KindOther
		}

		if kind != KindOther {
			if seen[kind] {
				continue
			}

			seen[kind] = true
		}

		out.Extras = append(out.Extras, ExtraItem{
			Kind:  kind,
			Label: strings.TrimSpace(x.Label),
			Value: value,
		})
	}

	return out
}

// LegacyPhoto extracts the photo a historic client may have tucked inside
// the template config. The claim flow prefers an explicit photo field and
// falls back to this.
func (in *TemplateConfigInput) LegacyPhoto() string {
	if in == nil {
		return ""
	}

	if in.PhotoDataURL != "" {
		return in.PhotoDataURL
	}

	return in.PhotoURL
}
