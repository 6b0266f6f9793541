package ledger

import (
	"time"

	"github.com/yourname/habitquest/internal"
	"github.com/yourname/habitquest/internal/clock"
)

// pointsPerLevel spaces the derived level: level = points/100 + 1.
const pointsPerLevel = 100

// ApplyPoints adds delta to the user's points (saturating at zero,
// never failing) and recomputes the level. A positive delta with a
// qualifying completion timestamp also advances the global day-streak:
// first ever completion starts it at 1, a completion the day after the
// previous one extends it, a completion after a gap restarts it at 1,
// and a second completion on the same day changes nothing (the earlier
// timestamp of that day is kept). Negative deltas only reverse points;
// the global streak is deliberately never rewound on revocation.
func ApplyPoints(user internal.User, delta int, qualifyingCompletionAt *time.Time) internal.User {
	user.Points += delta
	if user.Points < 0 {
		user.Points = 0
	}
	user.Level = user.Points/pointsPerLevel + 1

	if delta > 0 && qualifyingCompletionAt != nil {
		advanceGlobalStreak(&user, *qualifyingCompletionAt)
	}
	return user
}

func advanceGlobalStreak(user *internal.User, completedAt time.Time) {
	if user.LastCompletedAt == nil {
		user.GlobalStreak = 1
		t := completedAt
		user.LastCompletedAt = &t
	} else {
		switch days := clock.DaysBetween(*user.LastCompletedAt, completedAt); {
		case days == 0:
			// Already credited today; keep the earlier timestamp.
		case days == 1:
			user.GlobalStreak++
			t := completedAt
			user.LastCompletedAt = &t
		default:
			user.GlobalStreak = 1
			t := completedAt
			user.LastCompletedAt = &t
		}
	}

	if user.GlobalStreak > user.BestGlobalStreak {
		user.BestGlobalStreak = user.GlobalStreak
	}
}
