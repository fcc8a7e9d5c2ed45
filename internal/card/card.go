package card

import (
	"errors"
	"time"
)

// CodeStatus is the lifecycle state of a short code.
type CodeStatus string

const (
	StatusUnclaimed CodeStatus = "unclaimed"
	StatusClaimed   CodeStatus = "claimed"
)

var (
	ErrCodeNotFound    = errors.New("code not found")
	ErrCodeClaimed     = errors.New("code already claimed")
	ErrSlugTaken       = errors.New("slug already taken")
	ErrProfileNotFound = errors.New("profile not found")
	ErrTokenNotFound   = errors.New("edit token not found")
	ErrTokenConflict   = errors.New("edit token already exists")
)

// ShortCode is a physically distributed, human-typable token that can be
// redeemed exactly once to create a profile.
type ShortCode struct {
	Code      string
	Status    CodeStatus
	Slug      string // set when claimed, references the owning profile
	CreatedAt time.Time
	ClaimedAt *time.Time
}

// Profile is a claimed digital business card.
type Profile struct {
	ID             string
	Slug           string
	Name           string
	LastName       string
	Position       string
	Company        string
	WhatsApp       string // E.164
	Email          string
	MiniBio        string
	AvatarURL      string
	TemplateConfig TemplateConfig
	EditToken      string
	CreatedAt      time.Time
}

// FullName joins name and last name for display and vCard generation.
func (p *Profile) FullName() string {
	switch {
	case p.Name == "":
		return p.LastName
	case p.LastName == "":
		return p.Name
	default:
		return p.Name + " " + p.LastName
	}
}
