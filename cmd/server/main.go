package main

import (
	"context"
	"log"
	"os"
	"path/filepath"

	"github.com/yourname/habitquest/internal"
	"github.com/yourname/habitquest/internal/api"
	"github.com/yourname/habitquest/internal/auth"
	"github.com/yourname/habitquest/internal/config"
	"github.com/yourname/habitquest/internal/ledger"
	"github.com/yourname/habitquest/internal/service"
	"github.com/yourname/habitquest/internal/storage"
)

type app struct {
	logger internal.Logger
	repos  *storage.Repositories
	game   *service.Gamification
}

func (a *app) Logger() internal.Logger       { return a.logger }
func (a *app) Items() storage.ItemRepository { return a.repos.Items }
func (a *app) Users() storage.UserRepository { return a.repos.Users }
func (a *app) Game() *service.Gamification   { return a.game }

var _ api.App = (*app)(nil)

func main() {
	cfg := config.Load()

	logger, err := internal.NewLogger(cfg.Env, cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}

	repos, err := buildRepositories(cfg, logger)
	if err != nil {
		logger.Fatalf("failed to init storage: %v", err)
	}
	seedDevUser(cfg, logger, repos)
	defer func() {
		if err := repos.Close(); err != nil {
			logger.Errorf("failed to close storage: %v", err)
		}
	}()

	rewards := ledger.Rewards{
		Habit: cfg.HabitReward,
		Task: map[internal.Priority]int{
			internal.PriorityLow:    cfg.TaskRewardLow,
			internal.PriorityMedium: cfg.TaskRewardMedium,
			internal.PriorityHigh:   cfg.TaskRewardHigh,
		},
	}

	a := &app{
		logger: logger,
		repos:  repos,
		game:   service.NewGamification(repos.Items, repos.Users, rewards),
	}

	var provider auth.Provider
	if cfg.Env == "development" {
		provider = auth.NewLocalAuthProvider(repos.Users, logger)
	} else {
		provider = auth.NewRemoteAuthProvider(cfg.AuthServiceURL, logger)
	}

	r := api.NewRouter(a, provider)

	logger.Infof("server running on :%s (backend=%s)", cfg.Port, cfg.DBType)
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Fatalf("failed to start server: %v", err)
	}
}

func buildRepositories(cfg *config.Config, logger internal.Logger) (*storage.Repositories, error) {
	if cfg.DBType == "postgres" {
		return storage.NewPostgresRepositories(cfg.DBDSN, logger)
	}

	for _, f := range []string{cfg.FileUsers, cfg.FileItems} {
		if dir := filepath.Dir(f); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, err
			}
		}
	}
	return storage.NewFileRepositories(cfg.FileUsers, cfg.FileItems, logger)
}

// seedDevUser makes sure a development deployment starts with one
// usable account, matching the token the auth middleware expects.
func seedDevUser(cfg *config.Config, logger internal.Logger, repos *storage.Repositories) {
	if cfg.Env != "development" {
		return
	}
	ctx := context.Background()
	if _, err := repos.Users.GetUserByToken(ctx, cfg.DevToken); err == nil {
		return
	}
	demo := &internal.User{ID: "u1", Token: cfg.DevToken, Name: "Demo User", Level: 1}
	if err := repos.Users.SaveUser(ctx, demo); err != nil {
		logger.Warnf("failed to seed demo user: %v", err)
	}
}
