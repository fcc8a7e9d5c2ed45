package analytics

import "time"

// Topics for card lifecycle events.
const (
	TopicProfileClaimed = "profile.claimed"
	TopicProfileViewed  = "profile.viewed"
)

// ProfileClaimedEvent is emitted when a short code is redeemed into a
// profile.
type ProfileClaimedEvent struct {
	Code      string    `json:"code"`
	Slug      string    `json:"slug"`
	Layout    string    `json:"layout"`
	ClaimedAt time.Time `json:"claimedAt"`
	ClientIP  string    `json:"clientIp"`
	UserAgent string    `json:"userAgent"`
}

// ProfileViewedEvent is emitted on every public card render.
type ProfileViewedEvent struct {
	Slug      string    `json:"slug"`
	ViewedAt  time.Time `json:"viewedAt"`
	ClientIP  string    `json:"clientIp"`
	UserAgent string    `json:"userAgent"`
	Referrer  string    `json:"referrer,omitempty"`
}
