package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/danielgtaylor/huma/v2"
	"github.com/viktorhino/wowkards-mvp/internal/vcard"
)

// VCard serves a downloadable vCard 4.0 contact for the card owner.
func (h *CardHandler) VCard(_ context.Context, req *VCardRequest) (*VCardResponse, error) {
	fullName := strings.TrimSpace(req.FullName)
	if fullName == "" {
		return nil, huma.Error400BadRequest("missing fullName")
	}

	contact := &vcard.Card{
		FullName: fullName,
		Phone:    strings.TrimSpace(req.Phone),
		Email:    strings.TrimSpace(req.Email),
		Org:      strings.TrimSpace(req.Org),
		Title:    strings.TrimSpace(req.Title),
		URL:      strings.TrimSpace(req.URL),
		Note:     strings.TrimSpace(req.Note),
		PhotoURL: strings.TrimSpace(req.Photo),
	}

	return &VCardResponse{
		ContentType:        "text/x-vcard; charset=utf-8",
		ContentDisposition: fmt.Sprintf("inline; filename=%q", contact.FileName()),
		CacheControl:       "no-store",
		Body:               []byte(contact.Encode()),
	}, nil
}
