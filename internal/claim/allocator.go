package claim

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/viktorhino/wowkards-mvp/internal/avatar"
	"github.com/viktorhino/wowkards-mvp/internal/card"
	"go.uber.org/zap"
)

// ErrValidation marks a rejected input. Handlers map it to 400 and surface
// the wrapped message verbatim; everything behind the other sentinels stays
// server-side.
var ErrValidation = errors.New("validation")

// MaxMiniBioLen bounds the free-text bio, in runes.
const MaxMiniBioLen = 280

// Request carries the claim form submission. Code and Slug arrive as typed
// by the user; the allocator normalizes both.
type Request struct {
	Code     string
	Slug     string
	Name     string
	LastName string
	Position string
	Company  string
	WhatsApp string
	Email    string
	MiniBio  string

	// Photo is a public URL or a base64 data URI; TemplateConfig may carry
	// a legacy photo which is used as fallback and stripped.
	Photo          string
	TemplateConfig *card.TemplateConfigInput
}

// Result is what a successful claim hands back to the client: the public
// slug and the credential for later edits.
type Result struct {
	Slug      string
	EditToken string
}

// Allocator performs the one irreversible, uniqueness-sensitive transition
// in the system: unclaimed code + form submission -> profile + claimed code.
type Allocator struct {
	codes     card.CodeRepository
	profiles  card.ProfileRepository
	avatars   *avatar.Ingester
	defaultCC string
	logger    *zap.Logger
	now       func() time.Time
}

// NewAllocator wires the allocator with its injected dependencies.
func NewAllocator(
	codes card.CodeRepository,
	profiles card.ProfileRepository,
	avatars *avatar.Ingester,
	defaultCC string,
	logger *zap.Logger,
) *Allocator {
	return &Allocator{
		codes:     codes,
		profiles:  profiles,
		avatars:   avatars,
		defaultCC: defaultCC,
		logger:    logger,
		now:       time.Now,
	}
}

// Claim validates the request, creates the profile, ingests the avatar
// best-effort, and marks the code claimed with a conditional update. If the
// final step loses a race the freshly inserted profile is rolled back; the
// system never ends with a claimed code that has no profile, nor the
// reverse.
func (a *Allocator) Claim(ctx context.Context, req *Request) (*Result, error) {
	code := card.NormalizeCode(req.Code)
	if code == "" {
		return nil, fmt.Errorf("%w: missing code", ErrValidation)
	}

	profile, err := a.buildProfile(req)
	if err != nil {
		return nil, err
	}

	sc, err := a.codes.GetCode(ctx, code)
	if err != nil {
		return nil, err
	}

	if sc.Status != card.StatusUnclaimed {
		return nil, card.ErrCodeClaimed
	}

	// Pre-check only; the unique index behind Insert is the guarantee.
	taken, err := a.profiles.SlugTaken(ctx, profile.Slug)
	if err != nil {
		return nil, err
	}

	if taken {
		return nil, card.ErrSlugTaken
	}

	if err := a.insertWithTokenRetry(ctx, profile); err != nil {
		return nil, err
	}

	a.ingestAvatar(ctx, profile, photoSource(req))

	if err := a.codes.MarkClaimed(ctx, code, profile.Slug, a.now()); err != nil {
		// Lost the race (or the code vanished): roll the profile back so
		// no partial claim survives.
		if delErr := a.profiles.Delete(ctx, profile.ID); delErr != nil {
			a.logger.Error("claim rollback failed",
				zap.String("code", code),
				zap.String("slug", profile.Slug),
				zap.Error(delErr),
			)
		}

		return nil, err
	}

	a.logger.Info("code claimed",
		zap.String("code", code),
		zap.String("slug", profile.Slug),
	)

	return &Result{Slug: profile.Slug, EditToken: profile.EditToken}, nil
}

func (a *Allocator) buildProfile(req *Request) (*card.Profile, error) {
	name := strings.TrimSpace(req.Name)
	lastName := strings.TrimSpace(req.LastName)

	if name == "" || lastName == "" {
		return nil, fmt.Errorf("%w: name and last_name are required", ErrValidation)
	}

	slug := card.NormalizeSlug(req.Slug)
	if slug == "" {
		return nil, fmt.Errorf("%w: missing slug", ErrValidation)
	}

	phone, err := a.normalizePhone(req.WhatsApp)
	if err != nil {
		return nil, err
	}

	email, err := normalizeEmail(req.Email)
	if err != nil {
		return nil, err
	}

	miniBio := strings.TrimSpace(req.MiniBio)
	if utf8.RuneCountInString(miniBio) > MaxMiniBioLen {
		return nil, fmt.Errorf("%w: mini_bio exceeds %d characters", ErrValidation, MaxMiniBioLen)
	}

	return &card.Profile{
		ID:             uuid.NewString(),
		Slug:           slug,
		Name:           name,
		LastName:       lastName,
		Position:       strings.TrimSpace(req.Position),
		Company:        strings.TrimSpace(req.Company),
		WhatsApp:       phone,
		Email:          email,
		MiniBio:        miniBio,
		TemplateConfig: card.SanitizeTemplateConfig(req.TemplateConfig),
		EditToken:      card.NewEditToken(),
		CreatedAt:      a.now(),
	}, nil
}

// insertWithTokenRetry retries exactly once with a fresh token when the
// edit-token unique index fires. A second collision in a row is not a
// coincidence, it is a bug, so it surfaces.
func (a *Allocator) insertWithTokenRetry(ctx context.Context, profile *card.Profile) error {
	err := a.profiles.Insert(ctx, profile)
	if !errors.Is(err, card.ErrTokenConflict) {
		return err
	}

	profile.EditToken = card.NewEditToken()

	return a.profiles.Insert(ctx, profile)
}

// ingestAvatar uploads the photo and patches avatar_url. Failures are
// logged and swallowed: the profile is usable without a photo.
func (a *Allocator) ingestAvatar(ctx context.Context, profile *card.Profile, source string) {
	if source == "" || a.avatars == nil {
		return
	}

	publicURL, err := a.avatars.Ingest(ctx, source, "profiles/"+profile.ID)
	if err != nil {
		a.logger.Warn("avatar upload failed",
			zap.String("slug", profile.Slug),
			zap.Error(err),
		)

		return
	}

	if publicURL == "" {
		return
	}

	if err := a.profiles.SetAvatarURL(ctx, profile.ID, publicURL); err != nil {
		a.logger.Warn("avatar url update failed",
			zap.String("slug", profile.Slug),
			zap.Error(err),
		)

		return
	}

	profile.AvatarURL = publicURL
}

func (a *Allocator) normalizePhone(input string) (string, error) {
	if strings.TrimSpace(input) == "" {
		return "", fmt.Errorf("%w: missing whatsapp", ErrValidation)
	}

	phone, valid := card.NormalizeWhatsApp(input, a.defaultCC)
	if !valid {
		return "", fmt.Errorf("%w: whatsapp must normalize to 8-15 digits", ErrValidation)
	}

	return phone, nil
}

func normalizeEmail(input string) (string, error) {
	email := strings.ToLower(strings.TrimSpace(input))
	if email == "" {
		return "", fmt.Errorf("%w: missing email", ErrValidation)
	}

	if _, err := mail.ParseAddress(email); err != nil {
		return "", fmt.Errorf("%w: invalid email", ErrValidation)
	}

	return email, nil
}

func photoSource(req *Request) string {
	if strings.TrimSpace(req.Photo) != "" {
		return strings.TrimSpace(req.Photo)
	}

	return req.TemplateConfig.LegacyPhoto()
}
