package handlers

import (
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/viktorhino/wowkards-mvp/internal/ratelimit"
)

// RegisterRoutes registers the card API with per-endpoint rate limit
// configuration. Claims are strictly budgeted because each one burns a
// code; the public resolver runs relaxed because every card view hits it.
func RegisterRoutes(api huma.API, h *CardHandler) {
	huma.Register(api, huma.Operation{
		Method:      http.MethodPost,
		Path:        "/claim",
		Summary:     "Claim a short code",
		Description: "Redeems an unclaimed short code into a public profile and returns the edit token.",
		Tags:        []string{"Claim"},
		Metadata: map[string]any{
			ratelimit.MetadataKey: ratelimit.EndpointConfig{
				Limits: []ratelimit.LimitConfig{
					{Window: time.Minute, Max: 5},
					{Window: time.Hour, Max: 20},
				},
			},
		},
	}, h.Claim)

	huma.Register(api, huma.Operation{
		Method:      http.MethodGet,
		Path:        "/claim/free",
		Summary:     "Redirect to a free code",
		Description: "Sends the walk-up flow to the oldest unclaimed short code.",
		Tags:        []string{"Claim"},
	}, h.FreeCode)

	huma.Register(api, huma.Operation{
		Method:      http.MethodGet,
		Path:        "/slug/check",
		Summary:     "Check slug availability",
		Tags:        []string{"Claim"},
		Metadata: map[string]any{
			ratelimit.MetadataKey: ratelimit.EndpointConfig{
				Limits: []ratelimit.LimitConfig{
					{Window: time.Minute, Max: 60},
				},
			},
		},
	}, h.SlugCheck)

	huma.Register(api, huma.Operation{
		Method:      http.MethodGet,
		Path:        "/email/check",
		Summary:     "Check email registration",
		Tags:        []string{"Claim"},
		Metadata: map[string]any{
			ratelimit.MetadataKey: ratelimit.EndpointConfig{
				Limits: []ratelimit.LimitConfig{
					{Window: time.Minute, Max: 60},
				},
			},
		},
	}, h.EmailCheck)

	huma.Register(api, huma.Operation{
		Method:      http.MethodPost,
		Path:        "/profile/update",
		Summary:     "Update a profile",
		Description: "Applies a partial update authenticated by the edit token. The slug is immutable.",
		Tags:        []string{"Profile"},
		Metadata: map[string]any{
			ratelimit.MetadataKey: ratelimit.EndpointConfig{
				Limits: []ratelimit.LimitConfig{
					{Window: time.Minute, Max: 10},
				},
			},
		},
	}, h.UpdateProfile)

	huma.Register(api, huma.Operation{
		Method:      http.MethodGet,
		Path:        "/profile/by-token",
		Summary:     "Load a profile for editing",
		Tags:        []string{"Profile"},
	}, h.ProfileByToken)

	huma.Register(api, huma.Operation{
		Method:      http.MethodGet,
		Path:        "/vcard",
		Summary:     "Download a vCard",
		Description: "Serves a vCard 4.0 contact built from the query parameters.",
		Tags:        []string{"Profile"},
	}, h.VCard)

	// Registered last: catch-all public resolver for slugs and codes.
	huma.Register(api, huma.Operation{
		Method:      http.MethodGet,
		Path:        "/{path}",
		Summary:     "Resolve a slug or short code",
		Description: "Renders the card for a slug, prompts claiming for an unclaimed code, or redirects a claimed code to its canonical profile.",
		Tags:        []string{"Public"},
		Metadata: map[string]any{
			ratelimit.MetadataKey: ratelimit.EndpointConfig{
				Limits: []ratelimit.LimitConfig{
					{Window: time.Minute, Max: 600},
				},
			},
		},
	}, h.Resolve)
}
