package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/yourname/habitquest/internal"
	"github.com/yourname/habitquest/internal/config"
	"github.com/yourname/habitquest/internal/storage"
)

func testLogger() internal.Logger {
	return internal.NewZapLogger(zap.NewNop().Sugar())
}

func fileConfig(t *testing.T, env string) *config.Config {
	t.Helper()
	dir := t.TempDir()
	return &config.Config{
		Env:       env,
		DBType:    "file",
		DevToken:  "MOCK-TOKEN",
		FileUsers: filepath.Join(dir, "users", "users.json"),
		FileItems: filepath.Join(dir, "items", "items.json"),
	}
}

func openRepos(t *testing.T, cfg *config.Config) *storage.Repositories {
	t.Helper()
	repos, err := buildRepositories(cfg, testLogger())
	require.NoError(t, err)
	return repos
}

func TestBuildRepositoriesCreatesBothFileDirs(t *testing.T) {
	cfg := fileConfig(t, "development")
	repos := openRepos(t, cfg)

	ctx := context.Background()
	require.NoError(t, repos.Users.SaveUser(ctx, &internal.User{ID: "u1", Token: "t1", Level: 1}))
	require.NoError(t, repos.Items.SaveItem(ctx, &internal.Item{
		ID:        "h1",
		UserID:    "u1",
		Kind:      internal.ItemKindHabit,
		Name:      "read",
		Frequency: internal.FrequencyDaily,
	}))
	require.NoError(t, repos.Close())

	// Users and items may live in different directories; both flushes
	// must land on disk.
	_, err := os.Stat(cfg.FileUsers)
	assert.NoError(t, err)
	_, err = os.Stat(cfg.FileItems)
	assert.NoError(t, err)
}

func TestSeedDevUser(t *testing.T) {
	cfg := fileConfig(t, "development")
	repos := openRepos(t, cfg)
	t.Cleanup(func() { _ = repos.Close() })
	ctx := context.Background()

	seedDevUser(cfg, testLogger(), repos)
	u, err := repos.Users.GetUserByToken(ctx, cfg.DevToken)
	require.NoError(t, err)

	// Reruns keep the existing account.
	seedDevUser(cfg, testLogger(), repos)
	again, err := repos.Users.GetUserByToken(ctx, cfg.DevToken)
	require.NoError(t, err)
	assert.Equal(t, u.ID, again.ID)
}

func TestSeedDevUserSkippedOutsideDevelopment(t *testing.T) {
	cfg := fileConfig(t, "production")
	repos := openRepos(t, cfg)
	t.Cleanup(func() { _ = repos.Close() })

	seedDevUser(cfg, testLogger(), repos)
	_, err := repos.Users.GetUserByToken(context.Background(), cfg.DevToken)
	assert.ErrorIs(t, err, internal.ErrNotFound)
}
