package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/yourname/habitquest/internal"
)

func dailyHabit() internal.Item {
	return internal.Item{
		ID:        "h1",
		UserID:    "u1",
		Kind:      internal.ItemKindHabit,
		Name:      "read",
		Frequency: internal.FrequencyDaily,
	}
}

func TestApplyCompletionFresh(t *testing.T) {
	now := ts(2024, 3, 6, 9, 0)

	item, delta := ApplyCompletion(dailyHabit(), now, DefaultRewards())

	assert.True(t, item.IsDone)
	assert.Equal(t, 1, item.CurrentStreak)
	assert.Equal(t, 1, item.BestStreak)
	assert.Equal(t, now, *item.LastCompletedAt)
	assert.Equal(t, 5, delta)
}

func TestApplyCompletionIdempotent(t *testing.T) {
	now := ts(2024, 3, 6, 9, 0)
	rewards := DefaultRewards()

	once, delta := ApplyCompletion(dailyHabit(), now, rewards)
	assert.Equal(t, 5, delta)

	twice, delta := ApplyCompletion(once, now, rewards)
	assert.Equal(t, 0, delta, "second check the same day must not count")
	assert.Equal(t, once, twice)

	later, delta := ApplyCompletion(once, ts(2024, 3, 6, 22, 0), rewards)
	assert.Equal(t, 0, delta, "still the same day")
	assert.Equal(t, once, later)
}

func TestApplyCompletionConsecutiveDays(t *testing.T) {
	rewards := DefaultRewards()
	item := dailyHabit()

	var delta int
	for day := 4; day <= 6; day++ {
		item, delta = ApplyCompletion(item, ts(2024, 3, day, 9, 0), rewards)
		assert.Equal(t, 5, delta)
	}
	assert.Equal(t, 3, item.CurrentStreak)
	assert.Equal(t, 3, item.BestStreak)
}

func TestApplyCompletionGapResetsStreak(t *testing.T) {
	rewards := DefaultRewards()
	item := dailyHabit()
	item, _ = ApplyCompletion(item, ts(2024, 3, 4, 9, 0), rewards)
	item, _ = ApplyCompletion(item, ts(2024, 3, 5, 9, 0), rewards)
	assert.Equal(t, 2, item.CurrentStreak)

	// Two days skipped: the streak restarts, counted from 1.
	item, delta := ApplyCompletion(item, ts(2024, 3, 8, 9, 0), rewards)
	assert.Equal(t, 5, delta)
	assert.Equal(t, 1, item.CurrentStreak)
	assert.Equal(t, 2, item.BestStreak, "best streak is a high-water mark")
}

func TestRevokeCompletion(t *testing.T) {
	rewards := DefaultRewards()
	now := ts(2024, 3, 6, 9, 0)

	item, _ := ApplyCompletion(dailyHabit(), now, rewards)
	revoked, delta := RevokeCompletion(item, rewards)

	assert.False(t, revoked.IsDone)
	assert.Equal(t, 0, revoked.CurrentStreak)
	assert.Equal(t, 1, revoked.BestStreak, "best streak never reduced")
	assert.Equal(t, now, *revoked.LastCompletedAt, "history kept for the UI")
	assert.Equal(t, -5, delta)

	// Revoking again is a no-op: no negative streak, no double deduction.
	again, delta := RevokeCompletion(revoked, rewards)
	assert.Equal(t, 0, delta)
	assert.Equal(t, revoked, again)
}

func TestTaskRewardsByPriority(t *testing.T) {
	rewards := DefaultRewards()
	task := internal.Item{
		ID:        "t1",
		UserID:    "u1",
		Kind:      internal.ItemKindTask,
		Frequency: internal.FrequencyDaily,
	}

	for _, tc := range []struct {
		priority internal.Priority
		want     int
	}{
		{internal.PriorityLow, 10},
		{internal.PriorityMedium, 20},
		{internal.PriorityHigh, 30},
	} {
		task.Priority = tc.priority
		_, delta := ApplyCompletion(task, ts(2024, 3, 6, 9, 0), rewards)
		assert.Equal(t, tc.want, delta, "priority %s", tc.priority)
	}
}

func TestReconcilePeriodDailyRollover(t *testing.T) {
	rewards := DefaultRewards()
	item, _ := ApplyCompletion(dailyHabit(), ts(2024, 3, 6, 9, 0), rewards)
	item.CurrentStreak = 4
	item.BestStreak = 6

	next := ReconcilePeriod(item, ts(2024, 3, 7, 0, 30))

	assert.False(t, next.IsDone, "done flag cleared on the new day")
	assert.Equal(t, 4, next.CurrentStreak, "rollover is not an undo")
	assert.Equal(t, 6, next.BestStreak)
	assert.Equal(t, *item.LastCompletedAt, *next.LastCompletedAt)

	// Same day: nothing to reconcile.
	same := ReconcilePeriod(item, ts(2024, 3, 6, 23, 0))
	assert.True(t, same.IsDone)
}

func TestReconcilePeriodWeekly(t *testing.T) {
	item := dailyHabit()
	item.Frequency = internal.FrequencyWeekly
	item, _ = ApplyCompletion(item, ts(2024, 3, 6, 9, 0), DefaultRewards()) // Wednesday

	// Sunday of the same ISO week: still done.
	sun := ReconcilePeriod(item, ts(2024, 3, 10, 20, 0))
	assert.True(t, sun.IsDone)

	// Following Monday: new ISO week, flag cleared, streak untouched.
	mon := ReconcilePeriod(item, ts(2024, 3, 11, 8, 0))
	assert.False(t, mon.IsDone)
	assert.Equal(t, item.CurrentStreak, mon.CurrentStreak)
}
