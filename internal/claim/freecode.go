package claim

import (
	"context"

	"github.com/viktorhino/wowkards-mvp/internal/card"
)

// FreeCode hands out the longest-waiting unclaimed code for the walk-up
// claim flow. Nothing is reserved: two visitors can receive the same code
// and the conditional update inside Claim arbitrates whoever submits first.
func (a *Allocator) FreeCode(ctx context.Context) (*card.ShortCode, error) {
	return a.codes.OldestUnclaimed(ctx)
}
