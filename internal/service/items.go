package service

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/yourname/habitquest/internal"
	"github.com/yourname/habitquest/internal/ledger"
	"github.com/yourname/habitquest/internal/storage"
)

var validate = validator.New()

type CreateHabitRequest struct {
	Name       string `json:"name" validate:"required"`
	Category   string `json:"category,omitempty" validate:"omitempty"`
	Frequency  string `json:"frequency,omitempty" validate:"omitempty,oneof=daily weekly custom"`
	CustomDays []int  `json:"custom_days,omitempty" validate:"omitempty,max=7,dive,gte=0,lte=6"`
}

type CreateTaskRequest struct {
	Name        string     `json:"name" validate:"required"`
	Description string     `json:"description,omitempty" validate:"omitempty"`
	Priority    string     `json:"priority,omitempty" validate:"omitempty,oneof=low medium high"`
	DueDate     *time.Time `json:"due_date,omitempty"`
}

func ValidateCreateHabitRequest(req *CreateHabitRequest) error {
	if err := validate.Struct(req); err != nil {
		return err
	}
	if req.Frequency == string(internal.FrequencyCustom) && len(req.CustomDays) == 0 {
		return fmt.Errorf("custom frequency requires at least one weekday")
	}
	return nil
}

func ValidateCreateTaskRequest(req *CreateTaskRequest) error {
	return validate.Struct(req)
}

func CreateHabit(ctx context.Context, items storage.ItemRepository, user *internal.User, req *CreateHabitRequest, now time.Time) (*internal.Item, error) {
	freq := internal.Frequency(req.Frequency)
	if freq == "" {
		freq = internal.FrequencyDaily
	}
	category := req.Category
	if category == "" {
		category = "General"
	}
	item := &internal.Item{
		ID:         uuid.NewString(),
		UserID:     user.ID,
		Kind:       internal.ItemKindHabit,
		Name:       req.Name,
		Category:   category,
		Frequency:  freq,
		CustomDays: req.CustomDays,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := items.SaveItem(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func CreateTask(ctx context.Context, items storage.ItemRepository, user *internal.User, req *CreateTaskRequest, now time.Time) (*internal.Item, error) {
	priority := internal.Priority(req.Priority)
	if priority == "" {
		priority = internal.PriorityMedium
	}
	item := &internal.Item{
		ID:          uuid.NewString(),
		UserID:      user.ID,
		Kind:        internal.ItemKindTask,
		Name:        req.Name,
		Description: req.Description,
		Priority:    priority,
		DueDate:     req.DueDate,
		Frequency:   internal.FrequencyDaily,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := items.SaveItem(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// ListItems returns the user's items with stale done flags lazily
// cleared: any item whose period rolled over since its last completion
// is reconciled and the cleared flag persisted, so the stale state is
// never observable. The read-reconcile-save runs inside the user's
// critical section so it cannot clobber a concurrent toggle.
func (g *Gamification) ListItems(ctx context.Context, userID string, now time.Time) ([]internal.Item, error) {
	lock := g.lockFor(userID)
	lock.Lock()
	defer lock.Unlock()

	list, err := g.items.ListItems(ctx, userID)
	if err != nil {
		return nil, err
	}
	for i := range list {
		reconciled := ledger.ReconcilePeriod(list[i], now)
		if reconciled.IsDone != list[i].IsDone {
			reconciled.UpdatedAt = now
			if err := g.items.SaveItem(ctx, &reconciled); err != nil {
				return nil, err
			}
		}
		list[i] = reconciled
	}
	return list, nil
}

// DeleteItem removes an item the user owns. Deletion has no ledger
// effects; earned points and streaks stay as they are.
func DeleteItem(ctx context.Context, items storage.ItemRepository, user *internal.User, itemID string) error {
	item, err := items.GetItem(ctx, itemID)
	if err != nil {
		return err
	}
	if item.UserID != user.ID {
		return internal.ErrPermissionDenied
	}
	return items.DeleteItem(ctx, itemID)
}
