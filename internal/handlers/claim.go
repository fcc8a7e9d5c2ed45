package handlers

import (
	"context"
	"strings"
	"time"

	"github.com/viktorhino/wowkards-mvp/internal/analytics"
	"github.com/viktorhino/wowkards-mvp/internal/card"
	"github.com/viktorhino/wowkards-mvp/internal/claim"
	"go.uber.org/zap"
)

// Claim redeems a short code into a profile.
func (h *CardHandler) Claim(ctx context.Context, req *ClaimRequest) (*ClaimResponse, error) {
	result, err := h.allocator.Claim(ctx, &claim.Request{
		Code:           req.Body.Code,
		Slug:           req.Body.Slug,
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
		return nil, h.mapDomainError("claim", err)
	}

	meta := RequestMetaFromContext(ctx)
	event := &analytics.ProfileClaimedEvent{
		Code:      card.NormalizeCode(req.Body.Code),
		Slug:      result.Slug,
		Layout:    string(card.SanitizeTemplateConfig(req.Body.TemplateConfig).Layout),
		ClaimedAt: time.Now(),
		ClientIP:  meta.ClientIP,
		UserAgent: meta.UserAgent,
	}

	if err := h.publishClaimed(event); err != nil {
		h.logger.Error("failed to publish claim event",
			zap.String("slug", result.Slug),
			zap.Error(err),
		)
	}

	resp := &ClaimResponse{}
	resp.Body.OK = true
	resp.Body.Slug = result.Slug
	resp.Body.EditToken = result.EditToken

	return resp, nil
}

// SlugCheck reports whether a slug is still free. Two calls without an
// intervening claim return the same answer.
func (h *CardHandler) SlugCheck(ctx context.Context, req *SlugCheckRequest) (*SlugCheckResponse, error) {
	resp := &SlugCheckResponse{}

	slug := card.NormalizeSlug(req.Slug)
	if slug == "" {
		resp.Body.OK = false

		return resp, nil
	}

	taken, err := h.profiles.SlugTaken(ctx, slug)
	if err != nil {
		return nil, h.mapDomainError("slug check", err)
	}

	resp.Body.OK = true
	resp.Body.Available = !taken

	return resp, nil
}

// EmailCheck reports whether an email already belongs to a profile.
func (h *CardHandler) EmailCheck(ctx context.Context, req *EmailCheckRequest) (*EmailCheckResponse, error) {
	resp := &EmailCheckResponse{}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" {
		resp.Body.OK = false

		return resp, nil
	}

	taken, err := h.profiles.EmailTaken(ctx, email)
	if err != nil {
		return nil, h.mapDomainError("email check", err)
	}

	resp.Body.OK = true
	resp.Body.Taken = taken

	return resp, nil
}

// FreeCode redirects the walk-up flow to the oldest unclaimed code.
func (h *CardHandler) FreeCode(ctx context.Context, _ *struct{}) (*FreeCodeResponse, error) {
	sc, err := h.allocator.FreeCode(ctx)
	if err != nil {
		return nil, h.mapDomainError("free code", err)
	}

	resp := &FreeCodeResponse{Status: 302}
	resp.Headers.Location = "/" + sc.Code

	return resp, nil
}
