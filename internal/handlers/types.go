package handlers

import (
	"github.com/viktorhino/wowkards-mvp/internal/card"
	"github.com/viktorhino/wowkards-mvp/internal/render"
)

// ClaimRequest is the claim form submission.
type ClaimRequest struct {
	Body struct {
		Code     string `doc:"Short code being redeemed" example:"ab3k"      json:"code"`
		Slug     string `doc:"Requested public slug"     example:"john-doe"  json:"slug"`
		Name     string `doc:"First name"                example:"John"      json:"name"`
		LastName string `doc:"Last name"                 example:"Doe"       json:"last_name"`
		Position string `doc:"Job title"                 json:"position,omitempty"`
		Company  string `doc:"Company name"              json:"company,omitempty"`
		WhatsApp string `doc:"WhatsApp number"           example:"3001234567" json:"whatsapp"`
		Email    string `doc:"Contact email"             json:"email"`
		MiniBio  string `doc:"Short free-text bio"       json:"mini_bio,omitempty"`

		PhotoDataURL   string                    `doc:"Avatar as public URL or base64 data URI" json:"photoDataUrl,omitempty"`
		TemplateConfig *card.TemplateConfigInput `doc:"Display configuration"                   json:"template_config,omitempty"`
	}
}

// ClaimResponse returns the public slug and the edit credential.
type ClaimResponse struct {
	Body struct {
		OK        bool   `json:"ok"`
		Slug      string `json:"slug"`
		EditToken string `json:"edit_token"`
	}
}

// SlugCheckRequest asks whether a slug is still free.
type SlugCheckRequest struct {
	Slug string `doc:"Slug to check" example:"john-doe" query:"slug"`
}

// SlugCheckResponse reports slug availability.
type SlugCheckResponse struct {
	Body struct {
		OK        bool `json:"ok"`
		Available bool `json:"available"`
	}
}

// EmailCheckRequest asks whether an email is already registered.
type EmailCheckRequest struct {
	Email string `doc:"Email to check" query:"email"`
}

// EmailCheckResponse reports whether the email is taken.
type EmailCheckResponse struct {
	Body struct {
		OK    bool `json:"ok"`
		Taken bool `json:"taken"`
	}
}

// UpdateProfileRequest is an edit-token-authenticated partial update.
// Pointer fields distinguish "leave unchanged" from "set empty". Both
// token spellings are accepted for historic clients.
type UpdateProfileRequest struct {
	Body struct {
		Token     string `doc:"Edit token"                    json:"token,omitempty"`
		EditToken string `doc:"Edit token (legacy field name)" json:"edit_token,omitempty"`

		Name     *string `json:"name,omitempty"`
		LastName *string `json:"last_name,omitempty"`
		Position *string `json:"position,omitempty"`
		Company  *string `json:"company,omitempty"`
		WhatsApp *string `json:"whatsapp,omitempty"`
		Email    *string `json:"email,omitempty"`
		MiniBio  *string `json:"mini_bio,omitempty"`

		PhotoDataURL   string                    `json:"photoDataUrl,omitempty"`
		TemplateConfig *card.TemplateConfigInput `json:"template_config,omitempty"`
	}
}

// UpdateProfileResponse confirms the update and echoes the public slug.
type UpdateProfileResponse struct {
	Body struct {
		OK   bool   `json:"ok"`
		Slug string `json:"slug"`
	}
}

// ProfileByTokenRequest resolves a profile for the editor view.
type ProfileByTokenRequest struct {
	Token string `doc:"Edit token" query:"token"`
}

// ProfilePayload is the editor's view of a profile.
type ProfilePayload struct {
	Slug           string              `json:"slug"`
	Name           string              `json:"name"`
	LastName       string              `json:"last_name"`
	Position       string              `json:"position,omitempty"`
	Company        string              `json:"company,omitempty"`
	WhatsApp       string              `json:"whatsapp"`
	Email          string              `json:"email"`
	MiniBio        string              `json:"mini_bio,omitempty"`
	AvatarURL      string              `json:"avatar_url,omitempty"`
	TemplateConfig card.TemplateConfig `json:"template_config"`
	EditToken      string              `json:"edit_token"`
}

// ProfileByTokenResponse wraps the editor payload.
type ProfileByTokenResponse struct {
	Body struct {
		OK      bool           `json:"ok"`
		Profile ProfilePayload `json:"profile"`
	}
}

// VCardRequest holds the contact fields for a downloadable vCard.
type VCardRequest struct {
	FullName string `doc:"Contact full name (required)" query:"fullName"`
	Phone    string `doc:"Phone in international format" query:"phone"`
	Email    string `query:"email"`
	Org      string `query:"org"`
	Title    string `query:"title"`
	URL      string `query:"url"`
	Note     string `query:"note"`
	Photo    string `doc:"Public photo URL" query:"photo"`
}

// VCardResponse carries the raw vCard body with contact-type headers so
// phones open it as a contact.
type VCardResponse struct {
	ContentType        string `header:"Content-Type"`
	ContentDisposition string `header:"Content-Disposition"`
	CacheControl       string `header:"Cache-Control"`
	Body               []byte
}

// ResolveRequest is the public path lookup: slug or short code.
type ResolveRequest struct {
	Path string `doc:"Profile slug or short code" example:"john-doe" path:"path"`
}

// ResolveResponse is either a rendered card, a claim prompt for an
// unclaimed code, or a redirect to the canonical slug of a claimed one.
type ResolveResponse struct {
	Status  int
	Headers struct {
		Location string `doc:"Canonical profile URL for claimed codes" header:"Location"`
	}
	Body struct {
		Kind string       `doc:"profile or claim" enum:"profile,claim" json:"kind"`
		Card *render.View `json:"card,omitempty"`
		Code string       `doc:"Unclaimed code ready to be claimed" json:"code,omitempty"`
	}
}

// FreeCodeResponse redirects to the oldest unclaimed code.
type FreeCodeResponse struct {
	Status  int
	Headers struct {
		Location string `header:"Location"`
	}
}
