package service

import (
	"context"
	"sync"
	"time"

	"github.com/yourname/habitquest/internal"
	"github.com/yourname/habitquest/internal/ledger"
	"github.com/yourname/habitquest/internal/storage"
)

// Gamification runs completion toggles and list-time reconciliation
// through the ledger under a per-user critical section. The item and
// user aggregates are read-modify-written, so two concurrent writes
// for the same user must not interleave; operations for different
// users run fully in parallel.
type Gamification struct {
	items   storage.ItemRepository
	users   storage.UserRepository
	rewards ledger.Rewards

	mu        sync.Mutex
	userLocks map[string]*sync.Mutex
}

func NewGamification(items storage.ItemRepository, users storage.UserRepository, rewards ledger.Rewards) *Gamification {
	return &Gamification{
		items:     items,
		users:     users,
		rewards:   rewards,
		userLocks: make(map[string]*sync.Mutex),
	}
}

func (g *Gamification) lockFor(userID string) *sync.Mutex {
	g.mu.Lock()
	defer g.mu.Unlock()
	l, ok := g.userLocks[userID]
	if !ok {
		l = &sync.Mutex{}
		g.userLocks[userID] = l
	}
	return l
}

// CompleteItem marks the item done for the current period on behalf of
// userID and credits points and streaks. Completing an item that is
// already counted this period is a no-op end to end.
func (g *Gamification) CompleteItem(ctx context.Context, userID, itemID string, now time.Time) (*internal.Item, *internal.User, error) {
	return g.toggle(ctx, userID, itemID, true, now)
}

// UncompleteItem undoes the current period's completion, reversing the
// points. The global streak is deliberately not rewound.
func (g *Gamification) UncompleteItem(ctx context.Context, userID, itemID string, now time.Time) (*internal.Item, *internal.User, error) {
	return g.toggle(ctx, userID, itemID, false, now)
}

func (g *Gamification) toggle(ctx context.Context, userID, itemID string, targetState bool, now time.Time) (*internal.Item, *internal.User, error) {
	lock := g.lockFor(userID)
	lock.Lock()
	defer lock.Unlock()

	user, err := g.users.GetUser(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	item, err := g.items.GetItem(ctx, itemID)
	if err != nil {
		return nil, nil, err
	}

	updatedItem, updatedUser, err := ledger.ToggleCompletion(*item, *user, targetState, now, g.rewards)
	if err != nil {
		return nil, nil, err
	}

	if updatedItem.IsDone != item.IsDone {
		updatedItem.UpdatedAt = now
	}
	if err := g.items.SaveItem(ctx, &updatedItem); err != nil {
		return nil, nil, err
	}
	if err := g.users.SaveUser(ctx, &updatedUser); err != nil {
		return nil, nil, err
	}
	return &updatedItem, &updatedUser, nil
}
