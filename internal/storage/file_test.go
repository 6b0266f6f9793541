package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/yourname/habitquest/internal"
)

func newTestStore(t *testing.T, dir string) *FileStorage {
	t.Helper()
	logger := internal.NewZapLogger(zap.NewNop().Sugar())
	s, err := NewFileStorage(
		filepath.Join(dir, "users.json"),
		filepath.Join(dir, "items.json"),
		logger,
	)
	require.NoError(t, err)
	return s
}

func TestItemRoundTrip(t *testing.T) {
	s := newTestStore(t, t.TempDir())
	defer s.Close()
	ctx := context.Background()

	item := &internal.Item{
		ID:        "h1",
		UserID:    "u1",
		Kind:      internal.ItemKindHabit,
		Name:      "run",
		Frequency: internal.FrequencyDaily,
		CreatedAt: time.Now(),
	}
	require.NoError(t, s.SaveItem(ctx, item))

	got, err := s.GetItem(ctx, "h1")
	require.NoError(t, err)
	assert.Equal(t, "run", got.Name)

	// Mutating the returned copy must not leak into the store.
	got.Name = "changed"
	again, err := s.GetItem(ctx, "h1")
	require.NoError(t, err)
	assert.Equal(t, "run", again.Name)

	_, err = s.GetItem(ctx, "nope")
	assert.ErrorIs(t, err, internal.ErrNotFound)
}

func TestListItemsKeepsCreationOrder(t *testing.T) {
	s := newTestStore(t, t.TempDir())
	defer s.Close()
	ctx := context.Background()

	base := time.Date(2024, 3, 6, 9, 0, 0, 0, time.UTC)
	for i, id := range []string{"a", "b", "c"} {
		require.NoError(t, s.SaveItem(ctx, &internal.Item{
			ID: id, UserID: "u1", Kind: internal.ItemKindHabit,
			Frequency: internal.FrequencyDaily,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}))
	}

	items, err := s.ListItems(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, "a", items[0].ID)
	assert.Equal(t, "c", items[2].ID)

	require.NoError(t, s.DeleteItem(ctx, "b"))
	items, err = s.ListItems(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, []string{items[0].ID, items[1].ID}, []string{"a", "c"})

	assert.ErrorIs(t, s.DeleteItem(ctx, "b"), internal.ErrNotFound)
}

func TestUserTokenLookup(t *testing.T) {
	s := newTestStore(t, t.TempDir())
	defer s.Close()
	ctx := context.Background()

	u := &internal.User{ID: "u1", Token: "secret", Name: "A", Level: 1}
	require.NoError(t, s.SaveUser(ctx, u))

	got, err := s.GetUserByToken(ctx, "secret")
	require.NoError(t, err)
	assert.Equal(t, "u1", got.ID)

	// Rotating the token drops the old index entry.
	u.Token = "rotated"
	require.NoError(t, s.SaveUser(ctx, u))
	_, err = s.GetUserByToken(ctx, "secret")
	assert.ErrorIs(t, err, internal.ErrNotFound)
	got, err = s.GetUserByToken(ctx, "rotated")
	require.NoError(t, err)
	assert.Equal(t, "u1", got.ID)
}

func TestListTopUsers(t *testing.T) {
	s := newTestStore(t, t.TempDir())
	defer s.Close()
	ctx := context.Background()

	for _, u := range []internal.User{
		{ID: "u1", Token: "t1", Points: 40, Level: 1},
		{ID: "u2", Token: "t2", Points: 120, Level: 2},
		{ID: "u3", Token: "t3", Points: 40, Level: 1},
	} {
		cp := u
		require.NoError(t, s.SaveUser(ctx, &cp))
	}

	top, err := s.ListTopUsers(ctx, 2)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, "u2", top[0].ID)
	assert.Equal(t, "u1", top[1].ID, "points tie broken by id for stable ranking")
}

func TestPersistenceAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	s := newTestStore(t, dir)
	require.NoError(t, s.SaveUser(ctx, &internal.User{ID: "u1", Token: "t", Points: 55, Level: 1}))
	last := time.Date(2024, 3, 6, 9, 0, 0, 0, time.UTC)
	require.NoError(t, s.SaveItem(ctx, &internal.Item{
		ID: "h1", UserID: "u1", Kind: internal.ItemKindHabit,
		Frequency: internal.FrequencyDaily, IsDone: true,
		LastCompletedAt: &last, CurrentStreak: 3, BestStreak: 5,
		CreatedAt: last,
	}))
	require.NoError(t, s.Close(), "close flushes pending writes synchronously")

	reopened := newTestStore(t, dir)
	defer reopened.Close()

	u, err := reopened.GetUser(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 55, u.Points)

	it, err := reopened.GetItem(ctx, "h1")
	require.NoError(t, err)
	assert.True(t, it.IsDone)
	assert.Equal(t, 3, it.CurrentStreak)
	assert.Equal(t, 5, it.BestStreak)
	require.NotNil(t, it.LastCompletedAt)
	assert.True(t, it.LastCompletedAt.Equal(last))
}
