package auth

import (
	"context"
	"fmt"

	"github.com/yourname/habitquest/internal"
	"github.com/yourname/habitquest/internal/storage"
)

// LocalAuthProvider validates tokens against the local user table.
// Used in development, where no auth service is running.
type LocalAuthProvider struct {
	users  storage.UserRepository
	logger internal.Logger
}

func NewLocalAuthProvider(users storage.UserRepository, logger internal.Logger) *LocalAuthProvider {
	return &LocalAuthProvider{users: users, logger: logger}
}

func (a *LocalAuthProvider) ValidateToken(ctx context.Context, token string) (*internal.User, error) {
	user, err := a.users.GetUserByToken(ctx, token)
	if err != nil {
		a.logger.Warnf("invalid token")
		return nil, fmt.Errorf("auth: %w", err)
	}
	return user, nil
}

var _ Provider = (*LocalAuthProvider)(nil)
