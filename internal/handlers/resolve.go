package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/viktorhino/wowkards-mvp/internal/analytics"
	"github.com/viktorhino/wowkards-mvp/internal/card"
	"github.com/viktorhino/wowkards-mvp/internal/render"
	"go.uber.org/zap"
)

// Resolve handles the public catch-all path. Slugs win over codes: a
// profile match renders the card, an unclaimed code returns the claim
// prompt, a claimed code redirects to its canonical slug.
func (h *CardHandler) Resolve(ctx context.Context, req *ResolveRequest) (*ResolveResponse, error) {
	path := card.NormalizeCode(req.Path)

	profile, err := h.profiles.GetBySlug(ctx, path)
	if err == nil {
		return h.renderProfile(ctx, profile), nil
	}

	if !errors.Is(err, card.ErrProfileNotFound) {
		return nil, h.mapDomainError("resolve", err)
	}

	if !card.IsCode(path) {
		return nil, huma.Error404NotFound("not found")
	}

	sc, err := h.codes.GetCode(ctx, path)
	if err != nil {
		if errors.Is(err, card.ErrCodeNotFound) {
			return nil, huma.Error404NotFound("not found")
		}

		return nil, h.mapDomainError("resolve", err)
	}

	resp := &ResolveResponse{Status: http.StatusOK}

	if sc.Status == card.StatusUnclaimed {
		resp.Body.Kind = "claim"
		resp.Body.Code = sc.Code

		return resp, nil
	}

	resp.Status = http.StatusMovedPermanently
	resp.Headers.Location = "/" + sc.Slug

	return resp, nil
}

func (h *CardHandler) renderProfile(ctx context.Context, profile *card.Profile) *ResolveResponse {
	meta := RequestMetaFromContext(ctx)
	event := &analytics.ProfileViewedEvent{
		Slug:      profile.Slug,
		ViewedAt:  time.Now(),
		ClientIP:  meta.ClientIP,
		UserAgent: meta.UserAgent,
		Referrer:  meta.Referrer,
	}

	if err := h.publishViewed(event); err != nil {
		h.logger.Error("failed to publish view event",
			zap.String("slug", profile.Slug),
			zap.Error(err),
		)
	}

	resp := &ResolveResponse{Status: http.StatusOK}
	resp.Body.Kind = "profile"
	resp.Body.Card = render.Build(profile)

	return resp
}
