package card

import (
	"context"
	"time"
)

// CodeRepository is the persistent view of the short-code pool.
type CodeRepository interface {
	// GetCode looks a code up by its normalized value.
	// Returns ErrCodeNotFound when it does not exist.
	GetCode(ctx context.Context, code string) (*ShortCode, error)

	// MarkClaimed transitions a code unclaimed -> claimed and records the
	// owning slug. The transition is conditional on the current status;
	// when the code was already claimed (or vanished) it returns
	// ErrCodeClaimed and writes nothing. This conditional write, not any
	// prior read, is what arbitrates concurrent claims.
	MarkClaimed(ctx context.Context, code, slug string, at time.Time) error

	// OldestUnclaimed returns the longest-waiting free code, or
	// ErrCodeNotFound when the pool is exhausted.
	OldestUnclaimed(ctx context.Context) (*ShortCode, error)

	// InsertCodes bulk-inserts freshly generated codes as unclaimed,
	// skipping values that already exist. Returns the number inserted.
	InsertCodes(ctx context.Context, codes []string) (int64, error)
}

// ProfilePatch is the field subset a profile owner may change after claim
// time. Nil pointers mean "leave unchanged"; Slug is deliberately absent.
type ProfilePatch struct {
	Name           *string
	LastName       *string
	Position       *string
	Company        *string
	WhatsApp       *string
	Email          *string
	MiniBio        *string
	AvatarURL      *string
	TemplateConfig *TemplateConfig
}

// Empty reports whether the patch would change nothing.
func (p ProfilePatch) Empty() bool {
	return p.Name == nil && p.LastName == nil && p.Position == nil &&
		p.Company == nil && p.WhatsApp == nil && p.Email == nil &&
		p.MiniBio == nil && p.AvatarURL == nil && p.TemplateConfig == nil
}

// ProfileRepository is the persistent view of claimed profiles.
type ProfileRepository interface {
	// Insert persists a new profile. Returns ErrSlugTaken when the slug
	// unique index rejects the row and ErrTokenConflict when the edit
	// token index does.
	Insert(ctx context.Context, p *Profile) error

	// GetBySlug returns ErrProfileNotFound when no profile owns the slug.
	GetBySlug(ctx context.Context, slug string) (*Profile, error)

	// GetByToken resolves a profile by its edit token.
	// Returns ErrTokenNotFound on a miss.
	GetByToken(ctx context.Context, token string) (*Profile, error)

	// Update applies a patch to the identified profile.
	Update(ctx context.Context, id string, patch ProfilePatch) error

	// SetAvatarURL records the public URL of an ingested avatar.
	SetAvatarURL(ctx context.Context, id, url string) error

	// Delete removes a profile. Only the claim allocator's compensation
	// path uses this; profiles are never deleted in normal operation.
	Delete(ctx context.Context, id string) error

	// SlugTaken reports whether any profile owns the slug.
	SlugTaken(ctx context.Context, slug string) (bool, error)

	// EmailTaken reports whether any profile registered the email.
	EmailTaken(ctx context.Context, email string) (bool, error)
}
