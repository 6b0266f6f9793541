package auth

import (
	"context"

	"github.com/yourname/habitquest/internal"
)

// Provider resolves an opaque bearer token to a user. Password and
// session management live in an external auth service; this package
// only validates tokens it is handed.
type Provider interface {
	ValidateToken(ctx context.Context, token string) (*internal.User, error)
}
