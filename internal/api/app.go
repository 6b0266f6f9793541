package api

import (
	"github.com/yourname/habitquest/internal"
	"github.com/yourname/habitquest/internal/service"
	"github.com/yourname/habitquest/internal/storage"
)

// App is what the handlers need from the wired application.
type App interface {
	Logger() internal.Logger
	Items() storage.ItemRepository
	Users() storage.UserRepository
	Game() *service.Gamification
}
