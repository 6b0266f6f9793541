package internal

import "time"

type ItemKind string

const (
	ItemKindHabit ItemKind = "habit"
	ItemKindTask  ItemKind = "task"
)

type Frequency string

const (
	FrequencyDaily  Frequency = "daily"
	FrequencyWeekly Frequency = "weekly"
	FrequencyCustom Frequency = "custom"
)

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Item is a trackable habit or one-off task. Both kinds share the same
// completion state and streak counters; tasks are created with a daily
// frequency.
type Item struct {
	ID          string     `json:"id"`
	UserID      string     `json:"user_id"`
	Kind        ItemKind   `json:"kind"`
	Name        string     `json:"name"`
	Category    string     `json:"category,omitempty"`
	Description string     `json:"description,omitempty"`
	Priority    Priority   `json:"priority,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	Frequency   Frequency  `json:"frequency"`
	CustomDays  []int      `json:"custom_days,omitempty"` // 0=Sunday .. 6=Saturday
	IsDone      bool       `json:"is_done"`
	// LastCompletedAt stays in place when IsDone is cleared by a period
	// rollover, so completion history survives for the UI.
	LastCompletedAt *time.Time `json:"last_completed_at,omitempty"`
	CurrentStreak   int        `json:"current_streak"`
	BestStreak      int        `json:"best_streak"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// User carries the per-user gamification aggregate. Level is derived
// from Points and recomputed on every point change, never set directly.
type User struct {
	ID               string     `json:"id"`
	Token            string     `json:"token"`
	Name             string     `json:"name"`
	Points           int        `json:"points"`
	Level            int        `json:"level"`
	GlobalStreak     int        `json:"global_streak"`
	BestGlobalStreak int        `json:"best_global_streak"`
	LastCompletedAt  *time.Time `json:"last_completed_at,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
}
