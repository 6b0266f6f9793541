package ledger

import (
	"time"

	"github.com/yourname/habitquest/internal"
)

// ApplyCompletion marks item done for the current period and returns
// the updated item plus the point reward earned. When the policy says
// the completion does not count (already counted, or not due today),
// the item comes back unchanged with a zero delta; repeating the same
// check is always a no-op.
func ApplyCompletion(item internal.Item, observedAt time.Time, rewards Rewards) (internal.Item, int) {
	if Evaluate(item.Frequency, item.CustomDays, item.LastCompletedAt, observedAt) != EligibleToComplete {
		return item, 0
	}

	// A completion landing more than one period after the previous one
	// means a period went uncompleted: the streak restarts at 1.
	if item.LastCompletedAt != nil && streakBroken(item.Frequency, item.CustomDays, *item.LastCompletedAt, observedAt) {
		item.CurrentStreak = 0
	}

	item.IsDone = true
	t := observedAt
	item.LastCompletedAt = &t
	item.CurrentStreak++
	if item.CurrentStreak > item.BestStreak {
		item.BestStreak = item.CurrentStreak
	}
	return item, rewards.ForItem(item)
}

// RevokeCompletion undoes the current period's completion: the done
// flag clears, the streak steps back (never below zero) and the earned
// reward is returned negated. BestStreak and LastCompletedAt are
// high-water marks and history; neither is touched. Revoking an item
// that is not done is a no-op with a zero delta.
func RevokeCompletion(item internal.Item, rewards Rewards) (internal.Item, int) {
	if !item.IsDone {
		return item, 0
	}
	item.IsDone = false
	if item.CurrentStreak > 0 {
		item.CurrentStreak--
	}
	return item, -rewards.ForItem(item)
}

// ReconcilePeriod lazily clears a stale done flag once the item's
// period has rolled over. The streak counters stay exactly as they
// were: the rollover is not a voluntary undo, and a broken streak is
// only detected (and reset) by the next ApplyCompletion.
func ReconcilePeriod(item internal.Item, now time.Time) internal.Item {
	if RolledOver(item, now) {
		item.IsDone = false
	}
	return item
}
