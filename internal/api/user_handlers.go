package api

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yourname/habitquest/internal"
	"github.com/yourname/habitquest/internal/service"
)

const defaultLeaderboardSize = 10

func GetMe(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := c.MustGet("user").(*internal.User)

		// Re-read so the response reflects toggles from other requests.
		fresh, err := app.Users().GetUser(c.Request.Context(), user.ID)
		if err != nil {
			HandleError(c, app.Logger(), err, statusFor(err), "Failed to fetch user")
			return
		}
		HandleSuccess(c, app.Logger(), fresh, nil)
	}
}

func GetLeaderboard(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit := defaultLeaderboardSize
		if raw := c.Query("limit"); raw != "" {
			if n, err := strconv.Atoi(raw); err == nil && n > 0 && n <= 100 {
				limit = n
			}
		}

		entries, err := service.Leaderboard(c.Request.Context(), app.Users(), limit)
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to fetch leaderboard")
			return
		}
		HandleSuccess(c, app.Logger(), entries, nil)
	}
}
