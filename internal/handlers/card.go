package handlers

import (
	"errors"
	"fmt"
	"strings"

	"github.com/danielgtaylor/huma/v2"
	"github.com/viktorhino/wowkards-mvp/internal/analytics"
	"github.com/viktorhino/wowkards-mvp/internal/card"
	"github.com/viktorhino/wowkards-mvp/internal/claim"
	"github.com/viktorhino/wowkards-mvp/internal/messaging"
	"go.uber.org/zap"
)

// CardHandler serves the claim, edit, and public render endpoints.
type CardHandler struct {
	allocator      *claim.Allocator
	profiles       card.ProfileRepository
	codes          card.CodeRepository
	publishClaimed messaging.Publish[analytics.ProfileClaimedEvent]
	publishViewed  messaging.Publish[analytics.ProfileViewedEvent]
	logger         *zap.Logger
}

// NewCardHandler creates the handler with injected collaborators.
func NewCardHandler(
	allocator *claim.Allocator,
	profiles card.ProfileRepository,
	codes card.CodeRepository,
	publishClaimed messaging.Publish[analytics.ProfileClaimedEvent],
	publishViewed messaging.Publish[analytics.ProfileViewedEvent],
	logger *zap.Logger,
) *CardHandler {
	return &CardHandler{
		allocator:      allocator,
		profiles:       profiles,
		codes:          codes,
		publishClaimed: publishClaimed,
		publishViewed:  publishViewed,
		logger:         logger,
	}
}

// mapDomainError translates domain sentinels into HTTP errors. Validation
// and conflict messages go to the client verbatim; anything unexpected is
// logged in full and surfaced as a generic server error so storage details
// never leak.
func (h *CardHandler) mapDomainError(op string, err error) error {
	switch {
	case errors.Is(err, claim.ErrValidation):
		return huma.Error400BadRequest(strings.TrimPrefix(err.Error(), claim.ErrValidation.Error()+": "))
	case errors.Is(err, card.ErrCodeNotFound):
		return huma.Error404NotFound("code not found")
	case errors.Is(err, card.ErrTokenNotFound):
		return huma.Error404NotFound("token not found")
	case errors.Is(err, card.ErrProfileNotFound):
		return huma.Error404NotFound("profile not found")
	case errors.Is(err, card.ErrCodeClaimed):
		return huma.Error409Conflict("code already claimed")
	case errors.Is(err, card.ErrSlugTaken):
		return huma.Error409Conflict("slug already taken")
	default:
		h.logger.Error("request failed", zap.String("op", op), zap.Error(err))

		return huma.Error500InternalServerError("server error")
	}
}

func claimValidationError(msg string) error {
	return fmt.Errorf("%w: %s", claim.ErrValidation, msg)
}
