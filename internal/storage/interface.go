package storage

import (
	"context"

	"github.com/yourname/habitquest/internal"
)

// ItemRepository persists trackable items. SaveItem is an upsert: the
// service layer read-modify-writes items under its per-user lock.
type ItemRepository interface {
	SaveItem(ctx context.Context, item *internal.Item) error
	GetItem(ctx context.Context, id string) (*internal.Item, error)
	ListItems(ctx context.Context, userID string) ([]internal.Item, error)
	DeleteItem(ctx context.Context, id string) error
}

// UserRepository persists user aggregates. GetUserByToken backs the
// local auth provider; ListTopUsers backs the leaderboard.
type UserRepository interface {
	SaveUser(ctx context.Context, user *internal.User) error
	GetUser(ctx context.Context, id string) (*internal.User, error)
	GetUserByToken(ctx context.Context, token string) (*internal.User, error)
	ListTopUsers(ctx context.Context, limit int) ([]internal.User, error)
}
