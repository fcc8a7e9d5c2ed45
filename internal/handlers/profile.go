package handlers

import (
	"context"
	"strings"

	"github.com/viktorhino/wowkards-mvp/internal/claim"
)

// UpdateProfile applies an edit-token-authenticated partial update.
func (h *CardHandler) UpdateProfile(ctx context.Context, req *UpdateProfileRequest) (*UpdateProfileResponse, error) {
	token := req.Body.Token
	if strings.TrimSpace(token) == "" {
		token = req.Body.EditToken
	}

	slug, err := h.allocator.Update(ctx, &claim.UpdateRequest{
		Token:          token,
		Name:           req.Body.Name,
		LastName:       req.Body.LastName,
		Position:       req.Body.Position,
		Company:        req.Body.Company,
		WhatsApp:       req.Body.WhatsApp,
		Email:          req.Body.Email,
		MiniBio:        req.Body.MiniBio,
		Photo:          req.Body.PhotoDataURL,
		TemplateConfig: req.Body.TemplateConfig,
	})
	if err != nil {
		return nil, h.mapDomainError("profile update", err)
	}

	resp := &UpdateProfileResponse{}
	resp.Body.OK = true
	resp.Body.Slug = slug

	return resp, nil
}

// ProfileByToken returns the editor's view of a profile.
func (h *CardHandler) ProfileByToken(ctx context.Context, req *ProfileByTokenRequest) (*ProfileByTokenResponse, error) {
	token := strings.TrimSpace(req.Token)
	if token == "" {
		return nil, h.mapDomainError("profile by token",
			claimValidationError("missing token"))
	}

	profile, err := h.profiles.GetByToken(ctx, token)
	if err != nil {
		return nil, h.mapDomainError("profile by token", err)
	}

	resp := &ProfileByTokenResponse{}
	resp.Body.OK = true
	resp.Body.Profile = ProfilePayload{
		Slug:           profile.Slug,
		Name:           profile.Name,
		LastName:       profile.LastName,
		Position:       profile.Position,
		Company:        profile.Company,
		WhatsApp:       profile.WhatsApp,
		Email:          profile.Email,
		MiniBio:        profile.MiniBio,
		AvatarURL:      profile.AvatarURL,
		TemplateConfig: profile.TemplateConfig,
		EditToken:      profile.EditToken,
	}

	return resp, nil
}
