package claim

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/viktorhino/wowkards-mvp/internal/card"
	"go.uber.org/zap"
)

// UpdateRequest carries a profile edit. Nil pointers leave fields
// untouched; the slug is immutable after claim time and deliberately
// absent.
type UpdateRequest struct {
	Token string

	Name     *string
	LastName *string
	Position *string
	Company  *string
	WhatsApp *string
	Email    *string
	MiniBio  *string

	Photo          string
	TemplateConfig *card.TemplateConfigInput
}

// Update mutates the profile identified by the edit token. Returns the
// profile's slug so the client can link back to the public card.
func (a *Allocator) Update(ctx context.Context, req *UpdateRequest) (string, error) {
	token := strings.TrimSpace(req.Token)
	if token == "" {
		return "", fmt.Errorf("%w: missing token", ErrValidation)
	}

	current, err := a.profiles.GetByToken(ctx, token)
	if err != nil {
		return "", err
	}

	patch, err := a.buildPatch(req)
	if err != nil {
		return "", err
	}

	if photo := photoSourceUpdate(req); photo != "" {
		if publicURL := a.ingestForUpdate(ctx, current, photo); publicURL != "" {
			patch.AvatarURL = &publicURL
		}
	}

	if patch.Empty() {
		return current.Slug, nil
	}

	if err := a.profiles.Update(ctx, current.ID, patch); err != nil {
		return "", err
	}

	a.logger.Info("profile updated", zap.String("slug", current.Slug))

	return current.Slug, nil
}

func (a *Allocator) buildPatch(req *UpdateRequest) (card.ProfilePatch, error) {
	var patch card.ProfilePatch

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return patch, fmt.Errorf("%w: name cannot be empty", ErrValidation)
		}

		patch.Name = &name
	}

	if req.LastName != nil {
		lastName := strings.TrimSpace(*req.LastName)
		if lastName == "" {
			return patch, fmt.Errorf("%w: last_name cannot be empty", ErrValidation)
		}

		patch.LastName = &lastName
	}

	if req.Position != nil {
		position := strings.TrimSpace(*req.Position)
		patch.Position = &position
	}

	if req.Company != nil {
		company := strings.TrimSpace(*req.Company)
		patch.Company = &company
	}

	if req.WhatsApp != nil {
		phone, err := a.normalizePhone(*req.WhatsApp)
		if err != nil {
			return patch, err
		}

		patch.WhatsApp = &phone
	}

	if req.Email != nil {
		email, err := normalizeEmail(*req.Email)
		if err != nil {
			return patch, err
		}

		patch.Email = &email
	}

	if req.MiniBio != nil {
		miniBio := strings.TrimSpace(*req.MiniBio)
		if utf8.RuneCountInString(miniBio) > MaxMiniBioLen {
			return patch, fmt.Errorf("%w: mini_bio exceeds %d characters", ErrValidation, MaxMiniBioLen)
		}

		patch.MiniBio = &miniBio
	}

	if req.TemplateConfig != nil {
		cfg := card.SanitizeTemplateConfig(req.TemplateConfig)
		patch.TemplateConfig = &cfg
	}

	return patch, nil
}

func (a *Allocator) ingestForUpdate(ctx context.Context, current *card.Profile, source string) string {
	if a.avatars == nil {
		return ""
	}

	publicURL, err := a.avatars.Ingest(ctx, source, "profiles/"+current.ID)
	if err != nil {
		a.logger.Warn("avatar upload failed",
			zap.String("slug", current.Slug),
			zap.Error(err),
		)

		return ""
	}

	return publicURL
}

func photoSourceUpdate(req *UpdateRequest) string {
	if strings.TrimSpace(req.Photo) != "" {
		return strings.TrimSpace(req.Photo)
	}

	return req.TemplateConfig.LegacyPhoto()
}
