package ledger

import "github.com/yourname/habitquest/internal"

// Rewards is the point table the ledger consults. It is configuration
// supplied by the caller, not a constant of the core.
type Rewards struct {
	Habit int
	Task  map[internal.Priority]int
}

// DefaultRewards mirrors the point values the product shipped with:
// a flat award per habit, priority-scaled awards per task.
func DefaultRewards() Rewards {
	return Rewards{
		Habit: 5,
		Task: map[internal.Priority]int{
			internal.PriorityLow:    10,
			internal.PriorityMedium: 20,
			internal.PriorityHigh:   30,
		},
	}
}

// ForItem returns the reward a completion of item grants. Tasks with an
// unknown priority fall back to the medium tier.
func (r Rewards) ForItem(item internal.Item) int {
	if item.Kind == internal.ItemKindTask {
		if v, ok := r.Task[item.Priority]; ok {
			return v
		}
		return r.Task[internal.PriorityMedium]
	}
	return r.Habit
}
