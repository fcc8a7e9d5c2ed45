package card

import (
	"strings"

	"github.com/google/uuid"
)

// NewEditToken mints the opaque credential that grants write access to a
// profile without a login system. Two concatenated v4 UUIDs (64 hex chars)
// keep the collision probability negligible; the unique index on
// profiles.edit_token turns the astronomically unlikely collision into a
// retryable conflict instead of silent corruption.
func NewEditToken() string {
	return strings.ReplaceAll(uuid.NewString()+uuid.NewString(), "-", "")
}
