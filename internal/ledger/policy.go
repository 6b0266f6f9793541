// Package ledger implements the gamification core: the streak policy,
// the per-item and per-user state transitions, and the coordinator that
// sequences them. Everything here is a pure function over the domain
// values; persistence and locking live with the callers.
package ledger

import (
	"time"

	"github.com/yourname/habitquest/internal"
	"github.com/yourname/habitquest/internal/clock"
)

// PolicyResult classifies a completion attempt against an item's
// tracking period.
type PolicyResult int

const (
	// EligibleToComplete: no prior completion, or the prior completion
	// is in a strictly earlier period.
	EligibleToComplete PolicyResult = iota

	// AlreadyCountedThisPeriod: the last completion falls within the
	// same period as now, so another completion must not count.
	AlreadyCountedThisPeriod

	// NotDueToday: custom-frequency item whose weekday set does not
	// include today. The item is inert; neither completion nor
	// rollover reset applies.
	NotDueToday
)

// Evaluate applies the streak policy for the given frequency. An
// instant at exactly midnight counts toward the new period, which
// SameDay/SameWeek give for free since both compare period starts.
func Evaluate(freq internal.Frequency, customDays []int, lastCompletedAt *time.Time, now time.Time) PolicyResult {
	if freq == internal.FrequencyCustom && !weekdayListed(customDays, now) {
		return NotDueToday
	}
	if lastCompletedAt == nil {
		return EligibleToComplete
	}

	switch freq {
	case internal.FrequencyWeekly:
		if clock.SameWeek(*lastCompletedAt, now) {
			return AlreadyCountedThisPeriod
		}
	default:
		// Daily and custom frequencies both count one completion per
		// calendar day.
		if clock.SameDay(*lastCompletedAt, now) {
			return AlreadyCountedThisPeriod
		}
	}
	return EligibleToComplete
}

// RolledOver reports whether an item currently flagged done has seen
// its period end: the last completion is no longer in the period
// containing now. Used by ReconcilePeriod for the lazy auto-reset.
func RolledOver(item internal.Item, now time.Time) bool {
	if !item.IsDone {
		return false
	}
	return Evaluate(item.Frequency, item.CustomDays, item.LastCompletedAt, now) == EligibleToComplete
}

// streakBroken reports whether observedAt lands more than one period
// after the last completion, i.e. at least one full period in between
// went uncompleted.
func streakBroken(freq internal.Frequency, customDays []int, last, observedAt time.Time) bool {
	switch freq {
	case internal.FrequencyWeekly:
		return clock.WeeksBetween(last, observedAt) > 1
	case internal.FrequencyCustom:
		// Broken if any listed weekday was skipped strictly between the
		// two completions. The weekday cycle repeats after seven days,
		// so scanning one week of intermediate days is enough.
		gap := clock.DaysBetween(last, observedAt)
		if gap > 7 && len(customDays) > 0 {
			return true
		}
		day := clock.StartOfDay(last)
		for i := 1; i < gap; i++ {
			if weekdayListed(customDays, day.AddDate(0, 0, i)) {
				return true
			}
		}
		return false
	default:
		return clock.DaysBetween(last, observedAt) > 1
	}
}

func weekdayListed(days []int, t time.Time) bool {
	wd := int(t.Weekday())
	for _, d := range days {
		if d == wd {
			return true
		}
	}
	return false
}
