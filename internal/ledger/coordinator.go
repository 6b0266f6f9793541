package ledger

import (
	"time"

	"github.com/yourname/habitquest/internal"
)

// ToggleCompletion is the single entry point external callers use. It
// sequences the item transition and the user transition as one logical
// unit and returns the new state of both. Callers own the per-user
// critical section that makes the pair atomic (see internal/service).
//
// A toggle that changes nothing (completing an already-counted item,
// revoking an item that is not done) returns both aggregates exactly
// as they came in, so retries of the same logical event are always
// safe.
func ToggleCompletion(item internal.Item, user internal.User, targetState bool, observedAt time.Time, rewards Rewards) (internal.Item, internal.User, error) {
	if item.UserID != user.ID {
		return item, user, internal.ErrPermissionDenied
	}

	if targetState {
		updated, delta := ApplyCompletion(item, observedAt, rewards)
		if delta == 0 {
			return item, user, nil
		}
		// Only a fresh completion qualifies toward the global streak.
		return updated, ApplyPoints(user, delta, &observedAt), nil
	}

	updated, delta := RevokeCompletion(item, rewards)
	if delta == 0 {
		return item, user, nil
	}
	// Revocation reverses points only, never the global streak.
	return updated, ApplyPoints(user, delta, nil), nil
}
