package service

import (
	"context"

	"github.com/yourname/habitquest/internal/storage"
)

type LeaderboardEntry struct {
	Rank   int    `json:"rank"`
	UserID string `json:"user_id"`
	Name   string `json:"name"`
	Points int    `json:"points"`
	Level  int    `json:"level"`
}

// Leaderboard returns the top users by points.
func Leaderboard(ctx context.Context, users storage.UserRepository, limit int) ([]LeaderboardEntry, error) {
	top, err := users.ListTopUsers(ctx, limit)
	if err != nil {
		return nil, err
	}
	entries := make([]LeaderboardEntry, 0, len(top))
	for i, u := range top {
		entries = append(entries, LeaderboardEntry{
			Rank:   i + 1,
			UserID: u.ID,
			Name:   u.Name,
			Points: u.Points,
			Level:  u.Level,
		})
	}
	return entries, nil
}
